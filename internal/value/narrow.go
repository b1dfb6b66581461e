package value

import (
	"errors"
	"fmt"
)

// NarrowError reports that a Value was not of the requested kind.
type NarrowError struct {
	// Want is the kind the caller asked for.
	Want string

	// Got is the kind actually present.
	Got string
}

// Error implements the error interface.
func (e *NarrowError) Error() string {
	return fmt.Sprintf("value: cannot narrow %s to %s", e.Got, e.Want)
}

// IsNarrowError returns true if err is or wraps a NarrowError.
func IsNarrowError(err error) bool {
	var ne *NarrowError
	return errors.As(err, &ne)
}

func narrowErr(want string, v Value) *NarrowError {
	return &NarrowError{Want: want, Got: KindOf(v)}
}

// AsTimestamp narrows v to a Timestamp.
func AsTimestamp(v Value) (Timestamp, error) {
	ts, ok := v.(Timestamp)
	if !ok {
		return Timestamp{}, narrowErr(KindTimestamp, v)
	}
	return ts, nil
}

// AsString narrows v to a String.
func AsString(v Value) (String, error) {
	s, ok := v.(String)
	if !ok {
		return "", narrowErr(KindString, v)
	}
	return s, nil
}

// AsInteger narrows v to an Integer.
func AsInteger(v Value) (Integer, error) {
	n, ok := v.(Integer)
	if !ok {
		return 0, narrowErr(KindInteger, v)
	}
	return n, nil
}

// AsBoolean narrows v to a Boolean.
func AsBoolean(v Value) (Boolean, error) {
	b, ok := v.(Boolean)
	if !ok {
		return false, narrowErr(KindBoolean, v)
	}
	return b, nil
}
