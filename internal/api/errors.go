package api

import (
	"errors"
	"fmt"
)

// RemoteError is any failed API call: transport failure, timeout, a bad
// HTTP status, an unreadable body, or success=false from the API.
type RemoteError struct {
	Op      string // "generate PDF", "export invoice", "send email"
	Message string // what to show the user
	Status  int    // HTTP status, 0 if no response
	Err     error  // underlying transport error, if any
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// IsRemoteError reports whether err came from the remote API.
func IsRemoteError(err error) bool {
	var re *RemoteError
	return errors.As(err, &re)
}
