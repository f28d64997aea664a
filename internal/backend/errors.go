package backend

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
)

// ErrTimeout marks requests that got no response within the client timeout.
// Callers distinguish it from backend-reported errors with errors.Is.
var ErrTimeout = errors.New("backend request timed out")

// APIError is the structured error payload the backend returns alongside a
// non-2xx status. Code, Hint and Details are optional.
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
	Code       string `json:"code"`
	Hint       string `json:"hint"`
	Details    string `json:"details"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.StatusCode)
	}
	if e.Code != "" {
		return fmt.Sprintf("backend error %s: %s", e.Code, e.Message)
	}
	return "backend error: " + e.Message
}

// classify wraps transport errors, folding timeouts into ErrTimeout so the
// fetcher can tell them apart from backend failures.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return err
}
