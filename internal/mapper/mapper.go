package mapper

import (
	"errors"
	"fmt"

	"github.com/roach88/dsmap/internal/value"
)

// Mapper converts between one model type and one store value kind.
// Implementations are stateless after construction and safe for
// concurrent use.
type Mapper interface {
	// ToStore converts a model value to a store value.
	// A nil input yields value.Null.
	ToStore(v any) (value.Value, error)

	// ToModel converts a store value to a model value.
	// value.Null yields nil. A value of the wrong kind yields *MappingError.
	ToModel(v value.Value) (any, error)
}

var (
	// ErrUnsupportedType is returned when ToStore receives a Go type the
	// mapper does not handle.
	ErrUnsupportedType = errors.New("mapper: unsupported model type")

	// ErrOutOfRange is returned when an instant cannot be represented by
	// the store (outside 0001-01-01 through 9999-12-31).
	ErrOutOfRange = errors.New("mapper: instant out of store range")

	// ErrNoMapper is returned by Registry when no mapper is registered for
	// a type.
	ErrNoMapper = errors.New("mapper: no mapper registered")
)

// MappingError reports a store value of the wrong kind on decode.
//
// Err holds the narrowing failure (a *value.NarrowError) so callers can
// chain diagnostics with errors.As.
type MappingError struct {
	// Expected is the store kind the mapper handles, e.g. "TimestampValue".
	Expected string

	// Actual is the store kind that was found.
	Actual string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *MappingError) Error() string {
	return fmt.Sprintf("expecting %s, but found %s", e.Expected, e.Actual)
}

// Unwrap returns the underlying cause.
func (e *MappingError) Unwrap() error {
	return e.Err
}

// IsMappingError returns true if err is or wraps a MappingError.
func IsMappingError(err error) bool {
	var me *MappingError
	return errors.As(err, &me)
}

// mismatch builds the MappingError for a failed narrowing of v.
func mismatch(expected string, v value.Value, cause error) *MappingError {
	return &MappingError{
		Expected: expected,
		Actual:   value.KindOf(v),
		Err:      cause,
	}
}

func unsupported(m string, v any) error {
	return fmt.Errorf("%w: %s cannot map %T", ErrUnsupportedType, m, v)
}
