package mapper

import (
	"fmt"
	"strings"
	"time"

	"github.com/roach88/dsmap/internal/value"
)

// OffsetPolicy selects the offset attached to decoded instants.
type OffsetPolicy int

const (
	// OffsetLocal pairs the instant with the offset the configured location
	// has at that instant. This is the default and matches data already
	// written by earlier releases.
	OffsetLocal OffsetPolicy = iota

	// OffsetUTC always returns the instant at offset +00:00.
	OffsetUTC
)

// String returns the config spelling of the policy.
func (p OffsetPolicy) String() string {
	switch p {
	case OffsetLocal:
		return "local"
	case OffsetUTC:
		return "utc"
	default:
		return fmt.Sprintf("OffsetPolicy(%d)", int(p))
	}
}

// ParseOffsetPolicy parses "local" or "utc" (case-insensitive).
// An empty string means OffsetLocal.
func ParseOffsetPolicy(s string) (OffsetPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "local":
		return OffsetLocal, nil
	case "utc":
		return OffsetUTC, nil
	default:
		return 0, fmt.Errorf("unknown offset policy %q: must be local or utc", s)
	}
}

// Option configures an OffsetDateTimeMapper.
type Option func(*OffsetDateTimeMapper)

// WithOffsetPolicy sets the decode offset policy.
func WithOffsetPolicy(p OffsetPolicy) Option {
	return func(m *OffsetDateTimeMapper) {
		m.policy = p
	}
}

// WithLocation sets the location whose offset OffsetLocal attaches.
// A nil loc leaves the default, time.Local.
func WithLocation(loc *time.Location) Option {
	return func(m *OffsetDateTimeMapper) {
		if loc != nil {
			m.loc = loc
		}
	}
}

// OffsetDateTimeMapper maps offset date-times to store timestamps.
//
// Encode keeps the absolute instant only, truncated to the millisecond.
// Decode re-attaches an offset chosen by the OffsetPolicy, so
// Decode(Encode(t)) equals t as an instant but may differ in offset.
type OffsetDateTimeMapper struct {
	policy OffsetPolicy
	loc    *time.Location
}

// NewOffsetDateTimeMapper creates a mapper with OffsetLocal and time.Local
// unless overridden by opts.
func NewOffsetDateTimeMapper(opts ...Option) *OffsetDateTimeMapper {
	m := &OffsetDateTimeMapper{
		policy: OffsetLocal,
		loc:    time.Local,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Policy returns the decode offset policy.
func (m *OffsetDateTimeMapper) Policy() OffsetPolicy {
	return m.policy
}

// Location returns the location used by OffsetLocal.
func (m *OffsetDateTimeMapper) Location() *time.Location {
	return m.loc
}

// Encode converts t to a store value. A nil t yields value.Null.
func (m *OffsetDateTimeMapper) Encode(t *time.Time) (value.Value, error) {
	if t == nil {
		return value.Null{}, nil
	}

	ts := value.NewTimestamp(t.Truncate(time.Millisecond))
	if !ts.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrOutOfRange, t.Format(time.RFC3339Nano))
	}
	return ts, nil
}

// Decode converts a store value to an offset date-time.
// value.Null (or a nil interface) yields a nil *time.Time.
func (m *OffsetDateTimeMapper) Decode(v value.Value) (*time.Time, error) {
	if value.IsNull(v) {
		return nil, nil
	}

	ts, err := value.AsTimestamp(v)
	if err != nil {
		return nil, mismatch(value.KindTimestamp, v, err)
	}

	t := m.withOffset(ts.Time())
	return &t, nil
}

// withOffset pins instant to a fixed zone according to the policy.
// The zone is unnamed, so it formats as a numeric offset.
func (m *OffsetDateTimeMapper) withOffset(instant time.Time) time.Time {
	if m.policy == OffsetUTC {
		return instant.UTC()
	}
	_, offset := instant.In(m.loc).Zone()
	return instant.In(time.FixedZone("", offset))
}

// ToStore implements Mapper. It accepts nil, time.Time and *time.Time.
func (m *OffsetDateTimeMapper) ToStore(v any) (value.Value, error) {
	switch t := v.(type) {
	case nil:
		return value.Null{}, nil
	case time.Time:
		return m.Encode(&t)
	case *time.Time:
		return m.Encode(t)
	default:
		return nil, unsupported("OffsetDateTimeMapper", v)
	}
}

// ToModel implements Mapper. It returns nil for value.Null and a time.Time
// otherwise.
func (m *OffsetDateTimeMapper) ToModel(v value.Value) (any, error) {
	t, err := m.Decode(v)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, nil
	}
	return *t, nil
}
