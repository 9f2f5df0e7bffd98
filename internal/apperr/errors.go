package apperr

import (
	"fmt"

	"github.com/pkg/errors"
)

// GenericNetworkMessage is what the admin sees for transport failures.
const GenericNetworkMessage = "Network error - is the backend running?"

// ValidationError is detected locally and never reaches the network.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// RemoteRejection is a backend reply with success=false. Message is shown verbatim.
type RemoteRejection struct {
	Status  int
	Message string
}

func (e *RemoteRejection) Error() string {
	return e.Message
}

// NetworkFailure covers unreachable backends, timeouts and malformed responses.
type NetworkFailure struct {
	Op  string
	Err error
}

func (e *NetworkFailure) Error() string {
	if e.Err == nil {
		return e.Op + ": network failure"
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *NetworkFailure) Unwrap() error { return e.Err }

func Validation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func Rejected(status int, message string) error {
	return &RemoteRejection{Status: status, Message: message}
}

func Network(op string, err error) error {
	return &NetworkFailure{Op: op, Err: err}
}

// UserMessage is the single line shown in a toast for err.
func UserMessage(err error) string {
	var v *ValidationError
	if errors.As(err, &v) {
		return v.Message
	}
	var r *RemoteRejection
	if errors.As(err, &r) {
		return r.Message
	}
	return GenericNetworkMessage
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsRejection(err error) bool {
	var r *RemoteRejection
	return errors.As(err, &r)
}

func IsNetwork(err error) bool {
	var n *NetworkFailure
	return errors.As(err, &n)
}
