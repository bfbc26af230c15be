package appointments

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrFormIncomplete is returned by Submit and Create while any of the four fields is empty.
	ErrFormIncomplete = errors.New("appointment form is incomplete")
	// ErrUnknownField is returned by SetField for a name outside name/date/time/service.
	ErrUnknownField = errors.New("unknown form field")
	// ErrMissingID is returned by Delete for an empty identifier.
	ErrMissingID = errors.New("appointment id is required")
)

// ErrorPolicy decides whether backend failures reach the caller.
type ErrorPolicy string

const (
	// PolicySwallow logs backend failures and reports success to the caller;
	// the user only notices the missing confirmation.
	PolicySwallow ErrorPolicy = "swallow"
	// PolicySurface logs backend failures and also returns them.
	PolicySurface ErrorPolicy = "surface"
)

func ParseErrorPolicy(s string) (ErrorPolicy, error) {
	switch ErrorPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicySwallow:
		return PolicySwallow, nil
	case PolicySurface:
		return PolicySurface, nil
	default:
		return PolicySwallow, fmt.Errorf("unknown error policy %q", s)
	}
}
