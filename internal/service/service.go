package service

import "go-storefront-admin/internal/apperr"

// Notifier is the toast sink every service reports its outcome to, once per operation.
type Notifier interface {
	Success(message string)
	Error(message string)
}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Error(string)   {}

func notifierOrNop(n Notifier) Notifier {
	if n == nil {
		return nopNotifier{}
	}
	return n
}

// Result is the outcome of a controller operation as the UI receives it.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func ResultOf(err error) Result {
	if err == nil {
		return Result{Success: true}
	}
	return Result{Error: apperr.UserMessage(err)}
}
