package backend

import (
	"errors"
	"fmt"
)

// Kind classifies a failed backend call
type Kind int

const (
	KindUnknown Kind = iota
	// KindNetwork means the request never produced an HTTP response
	KindNetwork
	// KindServer means the backend answered with a non-2xx status
	KindServer
	// KindDecode means the response body was not the expected JSON
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindServer:
		return "server"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Error is returned by every Client method on failure
type Error struct {
	Op     string
	Kind   Kind
	Status int
	Body   string
	Err    error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindServer:
		if e.Body != "" {
			return fmt.Sprintf("%s: backend returned status %d: %s", e.Op, e.Status, e.Body)
		}
		return fmt.Sprintf("%s: backend returned status %d", e.Op, e.Status)
	case KindDecode:
		return fmt.Sprintf("%s: failed to decode response: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: failed to reach backend: %v", e.Op, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the failure kind from err, KindUnknown when err is not a backend error
func KindOf(err error) Kind {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindUnknown
}

// Message renders err as a short banner line for staff
func Message(err error) string {
	var be *Error
	if !errors.As(err, &be) {
		return err.Error()
	}
	switch be.Kind {
	case KindNetwork:
		return "Could not reach the backend (" + be.Op + ")"
	case KindServer:
		return fmt.Sprintf("Backend error %d (%s)", be.Status, be.Op)
	case KindDecode:
		return "Unexpected response from the backend (" + be.Op + ")"
	default:
		return be.Error()
	}
}
