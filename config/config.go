package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"nataliestudio/models"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Comma-separated proxy IPs/CIDRs allowed to set X-Forwarded-For.
	TrustedProxies string `mapstructure:"TRUSTED_PROXIES"`

	// Booking backend. An empty or wrong URL is not rejected; requests simply fail.
	APIURL            string        `mapstructure:"API_URL"`
	RequestTimeout    time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	KeepAliveInterval time.Duration `mapstructure:"KEEP_ALIVE_INTERVAL"`

	// View-model behaviour.
	WindowDays      int           `mapstructure:"WINDOW_DAYS"`
	ConfirmationTTL time.Duration `mapstructure:"CONFIRMATION_TTL"`
	ErrorPolicy     string        `mapstructure:"ERROR_POLICY"`
	Services        string        `mapstructure:"SERVICES"`
	LocalTimezone   string        `mapstructure:"LOCAL_TIMEZONE"`

	// Snapshot store: "memory" or "redis".
	SnapshotStore   string `mapstructure:"SNAPSHOT_STORE"`
	RedisAddr       string `mapstructure:"REDIS_ADDR"`
	RedisPassword   string `mapstructure:"REDIS_PASSWORD"`
	RedisSnapshotDB int    `mapstructure:"REDIS_SNAPSHOT_DB"`
}

var AppConfig Config

func LoadConfig() {
	// A local .env is optional; real environment variables still win.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("TRUSTED_PROXIES", "")
	viper.SetDefault("API_URL", "")
	viper.SetDefault("REQUEST_TIMEOUT", 15*time.Second)
	viper.SetDefault("KEEP_ALIVE_INTERVAL", 5*time.Minute)
	viper.SetDefault("WINDOW_DAYS", 90)
	viper.SetDefault("CONFIRMATION_TTL", 3*time.Second)
	viper.SetDefault("ERROR_POLICY", "swallow")
	viper.SetDefault("SERVICES", "")
	viper.SetDefault("LOCAL_TIMEZONE", "Local")
	viper.SetDefault("SNAPSHOT_STORE", "memory")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SNAPSHOT_DB", 0)
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// ServiceOptions parses SERVICES ("value[:label],...") and falls back to the
// salon's default catalogue when it is empty.
func (c Config) ServiceOptions() []models.ServiceOption {
	return ParseServiceOptions(c.Services)
}

func ParseServiceOptions(raw string) []models.ServiceOption {
	var opts []models.ServiceOption
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		value, label, found := strings.Cut(item, ":")
		value = strings.TrimSpace(value)
		label = strings.TrimSpace(label)
		if !found || label == "" {
			label = value
		}
		if value == "" {
			continue
		}
		opts = append(opts, models.ServiceOption{Value: value, Label: label})
	}
	if len(opts) == 0 {
		return models.DefaultServiceOptions()
	}
	return opts
}

// TrustedProxyList splits TRUSTED_PROXIES. An empty list means no proxy is
// trusted and client IPs come from the socket.
func (c Config) TrustedProxyList() []string {
	var out []string
	for _, p := range strings.Split(c.TrustedProxies, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Location resolves LOCAL_TIMEZONE, falling back to the process's local zone.
func (c Config) Location() *time.Location {
	name := strings.TrimSpace(c.LocalTimezone)
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("Unknown LOCAL_TIMEZONE %q, using local time", name)
		return time.Local
	}
	return loc
}
