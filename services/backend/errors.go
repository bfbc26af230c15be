package backend

import (
	"errors"
	"fmt"
)

// ErrNoRecord is returned when a create succeeds at the HTTP level but the
// body holds no stored appointment.
var ErrNoRecord = errors.New("backend returned no appointment record")

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: backend returned %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: backend returned %d: %s", e.Op, e.StatusCode, e.Body)
}
