package utils

import (
	"sync"
	"time"
)

// HealthStatus is the latest known state of the booking backend, as seen by
// the keep-alive pinger.
type HealthStatus struct {
	BackendReachable bool      `json:"backendReachable"`
	LastError        string    `json:"lastError,omitempty"`
	CheckedAt        time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	mu            sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

// RecordBackendHealth stores the outcome of a liveness probe.
func RecordBackendHealth(err error, at time.Time) {
	status := HealthStatus{BackendReachable: err == nil, CheckedAt: at}
	if err != nil {
		status.LastError = err.Error()
	}
	mu.Lock()
	currentHealth = status
	mu.Unlock()
}
