package cups

import (
	"errors"
	"fmt"

	"github.com/enthus-golang/cups/ipp"
)

var (
	// ErrNotFound is returned when a response that should describe one
	// printer or job carries none.
	ErrNotFound = errors.New("not found")

	ErrRequestIDExhausted = errors.New("request id space exhausted")
	ErrRequestIDMismatch  = errors.New("response request-id does not match request")
	ErrNoPrinterURI       = errors.New("printer uri is required")
	ErrNoJobTarget        = errors.New("job uri or printer uri and job id are required")
	ErrUnsupportedAuth    = errors.New("auth type not supported")
)

// TransportError wraps a failure to deliver a request or receive its
// response. The Manager never retries.
type TransportError struct {
	Op  ipp.Op
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ProtocolError is a well-formed response whose status-code is outside the
// successful band.
type ProtocolError struct {
	Op      ipp.Op
	Code    ipp.Status
	Message string
}

func (e *ProtocolError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s failed: %s (%s)", e.Op, e.Code, e.Message)
	}
	return fmt.Sprintf("%s failed: %s", e.Op, e.Code)
}

// Retryable reports whether the status falls in the client-error band. Server
// errors are treated as fatal.
func (e *ProtocolError) Retryable() bool {
	return e.Code.Class() == ipp.StatusClassClientError
}

// Is lets client-error-not-found match ErrNotFound.
func (e *ProtocolError) Is(target error) bool {
	return target == ErrNotFound && e.Code == ipp.StatusErrorNotFound
}
