package value

import (
	"slices"
	"time"
	"unicode/utf16"

	"google.golang.org/protobuf/types/known/timestamppb"
)

// Kind names reported by Value.Kind. They match the store client's type
// names so error messages read the same on both sides.
const (
	KindNull      = "NullValue"
	KindBoolean   = "BooleanValue"
	KindInteger   = "IntegerValue"
	KindDouble    = "DoubleValue"
	KindString    = "StringValue"
	KindTimestamp = "TimestampValue"
	KindArray     = "ArrayValue"
	KindEntity    = "EntityValue"
)

// Value is a sealed interface over the store's value kinds.
// Only Null, Boolean, Integer, Double, String, Timestamp, Array and Entity
// implement it.
type Value interface {
	// Kind returns the store kind name, e.g. "TimestampValue".
	Kind() string
	storeValue() // Sealed
}

// Null marks an absent value at the store boundary.
type Null struct{}

func (Null) Kind() string { return KindNull }
func (Null) storeValue()  {}

// Boolean is a store boolean.
type Boolean bool

func (Boolean) Kind() string { return KindBoolean }
func (Boolean) storeValue()  {}

// Integer is a store integer. Always int64.
type Integer int64

func (Integer) Kind() string { return KindInteger }
func (Integer) storeValue()  {}

// Double is a store floating point number.
type Double float64

func (Double) Kind() string { return KindDouble }
func (Double) storeValue()  {}

// String is a store text value.
type String string

func (String) Kind() string { return KindString }
func (String) storeValue()  {}

// Timestamp is the store's native instant: seconds and nanoseconds since the
// Unix epoch, with no offset attached.
type Timestamp struct {
	seconds int64
	nanos   int32
}

func (Timestamp) Kind() string { return KindTimestamp }
func (Timestamp) storeValue()  {}

// Time returns the instant in UTC.
// A zero Timestamp reports the Unix epoch.
func (t Timestamp) Time() time.Time {
	return t.Proto().AsTime()
}

// Proto returns the instant as a protobuf timestamp, the form the store
// client puts on the wire.
func (t Timestamp) Proto() *timestamppb.Timestamp {
	return &timestamppb.Timestamp{Seconds: t.seconds, Nanos: t.nanos}
}

// Seconds returns whole seconds since the Unix epoch.
func (t Timestamp) Seconds() int64 { return t.seconds }

// Nanos returns the non-negative nanosecond fraction.
func (t Timestamp) Nanos() int32 { return t.nanos }

// Valid reports whether the instant lies inside the store's representable
// range, 0001-01-01 through 9999-12-31.
func (t Timestamp) Valid() bool {
	return t.Proto().CheckValid() == nil
}

// Equal reports whether two timestamps denote the same instant.
func (t Timestamp) Equal(other Timestamp) bool {
	return t == other
}

// Array is an ordered list of values.
type Array []Value

func (Array) Kind() string { return KindArray }
func (Array) storeValue()  {}

// Entity is an embedded entity: named properties without a key.
// Use SortedKeys for deterministic iteration.
type Entity map[string]Value

func (Entity) Kind() string { return KindEntity }
func (Entity) storeValue()  {}

// NewTimestamp wraps t as a store Timestamp. The location of t is dropped.
func NewTimestamp(t time.Time) Timestamp {
	return NewTimestampProto(timestamppb.New(t))
}

// NewTimestampProto wraps an existing protobuf timestamp.
// A nil ts yields the Unix epoch.
func NewTimestampProto(ts *timestamppb.Timestamp) Timestamp {
	return Timestamp{seconds: ts.GetSeconds(), nanos: ts.GetNanos()}
}

// NewString creates a String value.
func NewString(s string) String {
	return String(s)
}

// NewInteger creates an Integer value.
func NewInteger(n int64) Integer {
	return Integer(n)
}

// NewBoolean creates a Boolean value.
func NewBoolean(b bool) Boolean {
	return Boolean(b)
}

// NewArray creates an Array from values.
func NewArray(vals ...Value) Array {
	return Array(vals)
}

// IsNull reports whether v is absent. A nil interface counts as absent so
// callers that received nothing from a record can pass it straight through.
func IsNull(v Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.(Null)
	return ok
}

// KindOf returns v.Kind(), or KindNull for a nil interface.
func KindOf(v Value) string {
	if v == nil {
		return KindNull
	}
	return v.Kind()
}

// SortedKeys returns property names in UTF-16 code unit order, the order
// the store uses when it lists properties.
func (e Entity) SortedKeys() []string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeys)
	return keys
}

// compareKeys compares strings by UTF-16 code units.
// Go's native string comparison is by UTF-8 bytes, which orders
// supplementary-plane characters differently.
func compareKeys(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))

	n := min(len(a16), len(b16))
	for i := 0; i < n; i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}

	switch {
	case len(a16) < len(b16):
		return -1
	case len(a16) > len(b16):
		return 1
	}
	return 0
}
