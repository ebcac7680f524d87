package scroll

import (
	"errors"
	"fmt"

	"github.com/zjrosen/scrollview/internal/log"
)

var (
	// ErrHost wraps every failure reported by the host window system.
	ErrHost = errors.New("host failure")

	// ErrPrecondition is matched by PreconditionError.
	ErrPrecondition = errors.New("precondition violated")
)

// PreconditionError describes a programmer error caught by an assertion.
// In strict mode it is the panic value.
type PreconditionError struct {
	Op     string
	Detail string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Detail)
}

// Unwrap makes errors.Is(err, ErrPrecondition) true.
func (e *PreconditionError) Unwrap() error {
	return ErrPrecondition
}

// assert reports whether cond holds. A failed assertion panics in strict mode and is
// logged otherwise; callers fall back to clamping when it returns false.
func (v *View) assert(cond bool, op, format string, args ...any) bool {
	if cond {
		return true
	}
	perr := &PreconditionError{Op: op, Detail: fmt.Sprintf(format, args...)}
	if v.strict {
		panic(perr)
	}
	log.Error(log.CatScroll, "assertion failed", "view", v.id, "op", op, "detail", perr.Detail)
	return false
}

// hostErr tags err as a host failure for op.
func hostErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrHost, err)
}
