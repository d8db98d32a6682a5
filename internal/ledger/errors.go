package ledger

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no trade matches the requested state, e.g.
// closing a symbol with no open position.
var ErrNotFound = errors.New("trade not found")

// ValidationError reports a rejected field value. It is always converted to
// a user-facing reply, never propagated past the interpreter.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
