// internal/errkind/errkind.go
package errkind

import "errors"

// Kind is the closed set of failure categories surfaced by the gateway and
// controller. Callers branch on the kind, never on message content.
type Kind string

const (
	WalletUnavailable Kind = "wallet_unavailable"
	ConnectionError   Kind = "connection_error"
	NotConnected      Kind = "not_connected"
	QueryError        Kind = "query_error"
	ExecutionError    Kind = "execution_error"
	Internal          Kind = "internal"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind from an error chain. Errors that did not originate
// here are reported as Internal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Kind
	}
	return Internal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
