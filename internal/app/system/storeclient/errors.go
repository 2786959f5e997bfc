// internal/app/system/storeclient/errors.go
package storeclient

import (
	"fmt"
	"net/http"
)

// TransportError means no response reached the client: dial failure,
// timeout or cancellation.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// RejectedError means the store answered with a non-2xx status.
// Detail is the server's "detail" field when it was a JSON string.
type RejectedError struct {
	Op        string
	Status    int
	Detail    string
	HasDetail bool
}

func (e *RejectedError) Error() string {
	if e.HasDetail {
		return fmt.Sprintf("%s: %d %s: %s", e.Op, e.Status, http.StatusText(e.Status), e.Detail)
	}
	return fmt.Sprintf("%s: %d %s", e.Op, e.Status, http.StatusText(e.Status))
}

// MalformedError means a 2xx response carried a body that is not the
// expected JSON.
type MalformedError struct {
	Op  string
	Err error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("%s: malformed response: %v", e.Op, e.Err)
}

func (e *MalformedError) Unwrap() error { return e.Err }
