package geolocations

import (
	"errors"
	"fmt"
)

// Error kinds. Match them with errors.Is on any error returned by a Client.
var (
	ErrTransport = errors.New("transport failure")
	ErrStatus    = errors.New("unexpected status")
	ErrDecode    = errors.New("malformed response body")
)

// Error describes a failed call.
type Error struct {
	// Kind is one of ErrTransport, ErrStatus or ErrDecode.
	Kind error
	// Op is the client method that failed, e.g. "CountryByCode".
	Op  string
	URL string
	// StatusCode is set for ErrStatus and ErrDecode.
	StatusCode int
	// Body holds at most 1 KiB of the response body for ErrStatus.
	Body string
	Err  error
}

func (e *Error) Error() string {
	if e.Kind == ErrStatus {
		return fmt.Sprintf("%s GET %s: %v %d: %s", e.Op, e.URL, e.Kind, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s GET %s: %v: %v", e.Op, e.URL, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the underlying cause (e.g. context.DeadlineExceeded).
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}
