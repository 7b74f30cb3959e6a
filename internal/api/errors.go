package api

import (
	"errors"
	"fmt"
	"net"
	"net/url"
)

// ErrMalformedResponse covers the misbehaving-server cases: an HTML error
// page where JSON was expected (any status, including 200), or a body that
// does not decode as JSON.
var ErrMalformedResponse = errors.New("could not parse server response")

// ServerError is a non-2xx response whose JSON body carried a message.
// Message falls back to the HTTP status text when the body has none.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string { return e.Message }

// AsServerError unwraps err into a *ServerError, or nil.
func AsServerError(err error) *ServerError {
	var se *ServerError
	if errors.As(err, &se) {
		return se
	}
	return nil
}

// IsTransport reports whether err is a network-level failure: the request
// never produced a usable response. Marshal and request-construction
// errors are not transport failures.
func IsTransport(err error) bool {
	var ue *url.Error
	if errors.As(err, &ue) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne)
}

// Notified reports whether err already produced a user-visible
// notification through the client's ErrorObserver. Callers showing errors
// themselves should skip these to avoid presenting the same failure twice.
func Notified(err error) bool {
	return AsServerError(err) != nil || errors.Is(err, ErrMalformedResponse)
}

func transportErr(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
