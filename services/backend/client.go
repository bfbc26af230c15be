package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"nataliestudio/metrics"
	"nataliestudio/models"
)

const (
	defaultTimeout = 15 * time.Second
	maxErrorBody   = 300
)

const (
	OpList      = "list"
	OpCreate    = "create"
	OpDelete    = "delete"
	OpKeepAlive = "keep_alive"
)

var _ Client = (*RESTClient)(nil)

// RESTClient talks to the booking backend over plain JSON/HTTP.
type RESTClient struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
	metrics    *metrics.BackendMetrics
}

// Option customises a RESTClient.
type Option func(*RESTClient)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *RESTClient) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *RESTClient) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

func WithMetrics(m *metrics.BackendMetrics) Option {
	return func(c *RESTClient) { c.metrics = m }
}

// NewRESTClient builds a client for baseURL. The URL is not validated; a
// missing or wrong value surfaces later as failed requests.
func NewRESTClient(baseURL string, logger *zap.Logger, opts ...Option) *RESTClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &RESTClient{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListAppointments fetches the full appointment collection.
func (c *RESTClient) ListAppointments(ctx context.Context) ([]models.Appointment, error) {
	var out []models.Appointment
	if err := c.do(ctx, OpList, http.MethodGet, "/appointments", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Appointment{}
	}
	return out, nil
}

// CreateAppointment posts the four-field payload and returns the stored record.
func (c *RESTClient) CreateAppointment(ctx context.Context, in models.AppointmentInput) (*models.Appointment, error) {
	var out models.Appointment
	if err := c.do(ctx, OpCreate, http.MethodPost, "/appointments", in, &out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		c.logger.Warn("backend create response carried no appointment", zap.String("op", OpCreate))
		return nil, fmt.Errorf("%s: decode response: %w", OpCreate, ErrNoRecord)
	}
	return &out, nil
}

// DeleteAppointment removes the appointment with the given identifier.
func (c *RESTClient) DeleteAppointment(ctx context.Context, id string) error {
	return c.do(ctx, OpDelete, http.MethodDelete, "/appointments/"+url.PathEscape(id), nil, nil)
}

// KeepAlive pings the liveness endpoint; the response body is ignored.
func (c *RESTClient) KeepAlive(ctx context.Context) error {
	return c.do(ctx, OpKeepAlive, http.MethodGet, "/keep-alive", nil, nil)
}

func (c *RESTClient) do(ctx context.Context, op, method, path string, body interface{}, out interface{}) (err error) {
	start := time.Now()
	defer func() { c.metrics.Observe(op, err, time.Since(start)) }()

	endpoint := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: marshal request: %w", op, err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: http request: %w", op, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: read response: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := truncateBody(respBody)
		c.logger.Warn("backend non-2xx response",
			zap.String("op", op),
			zap.Int("status", resp.StatusCode),
			zap.String("path", path),
			zap.String("body", msg),
		)
		return &StatusError{Op: op, StatusCode: resp.StatusCode, Body: msg}
	}

	if len(respBody) == 0 || out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

// truncateBody caps an error body at maxErrorBody bytes without splitting a
// UTF-8 sequence.
func truncateBody(b []byte) string {
	if len(b) <= maxErrorBody {
		return string(b)
	}
	cut := maxErrorBody
	for cut > 0 && !utf8.RuneStart(b[cut]) {
		cut--
	}
	return string(b[:cut])
}
