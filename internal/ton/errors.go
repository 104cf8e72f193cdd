package ton

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound is returned when the upstream has no such block, account or transaction.
	ErrNotFound = errors.New("not found")
	// ErrUnavailable is returned when the upstream could not be reached after retrying.
	ErrUnavailable = errors.New("upstream unavailable")
)

// UpstreamError is a request the upstream answered with ok=false.
type UpstreamError struct {
	Method  string
	Code    int
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: upstream error %d: %s", e.Method, e.Code, e.Message)
}

func (e *UpstreamError) Is(target error) bool {
	return target == ErrNotFound && e.Code == http.StatusNotFound
}
