package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnreachable wraps transport failures: refused connections, DNS errors, timeouts.
	ErrUnreachable = errors.New("remote service unreachable")
	// ErrMalformed wraps responses that could not be decoded.
	ErrMalformed = errors.New("malformed response")
)

// StatusError is returned when the service answers with a non-2xx status.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
}

// IsNotFound reports whether err is a StatusError carrying 404.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}
