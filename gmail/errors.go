package gmail

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"

	"google.golang.org/api/googleapi"
)

// ErrTokenExpired is returned when the API rejects the bearer token.
var ErrTokenExpired = errors.New("access token expired")

var errMissingID = errors.New("message summary has no id")

// StatusError reports a non-success HTTP status from the API.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("gmail API returned status %d", e.Code)
}

// NetworkError wraps a transport failure (timeout, refused connection, ...).
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return "network error: " + e.Err.Error() }

func (e *NetworkError) Unwrap() error { return e.Err }

// classify maps errors from the generated API client onto the error types above.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusUnauthorized {
			return ErrTokenExpired
		}
		return &StatusError{Code: apiErr.Code}
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &NetworkError{Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return &NetworkError{Err: err}
	}
	return err
}
