package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrorKind tells transport, service and payload failures apart.
type ErrorKind string

const (
	KindTransport ErrorKind = "transport"
	KindService   ErrorKind = "service"
	KindMalformed ErrorKind = "malformed"
)

// GenerationError is the single error type returned by every Client.
type GenerationError struct {
	Kind ErrorKind
	// StatusCode is set for KindService; zero when the backend does not expose one.
	StatusCode int
	// Detail is the upstream message or parse failure, kept for diagnostics.
	Detail string
	Err    error
}

func (e *GenerationError) Error() string {
	switch e.Kind {
	case KindService:
		if e.Detail == "" {
			return fmt.Sprintf("generation service returned status %d", e.StatusCode)
		}
		return fmt.Sprintf("generation service returned status %d: %s", e.StatusCode, e.Detail)
	case KindMalformed:
		return fmt.Sprintf("malformed generation response: %s", e.Detail)
	default:
		if e.Err != nil {
			return fmt.Sprintf("generation request failed: %v", e.Err)
		}
		return fmt.Sprintf("generation request failed: %s", e.Detail)
	}
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Timeout reports whether a transport failure was caused by a deadline.
func (e *GenerationError) Timeout() bool {
	if e.Kind != KindTransport || e.Err == nil {
		return false
	}
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

func transportError(err error) *GenerationError {
	return &GenerationError{Kind: KindTransport, Err: err}
}

func serviceError(status int, detail string) *GenerationError {
	return &GenerationError{Kind: KindService, StatusCode: status, Detail: detail}
}

func malformedError(detail string, err error) *GenerationError {
	return &GenerationError{Kind: KindMalformed, Detail: detail, Err: err}
}

// KindOf returns the kind of a *GenerationError anywhere in err's chain, or "".
func KindOf(err error) ErrorKind {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr.Kind
	}
	return ""
}
