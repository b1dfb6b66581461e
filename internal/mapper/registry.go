package mapper

import (
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/roach88/dsmap/internal/value"
)

// Registry maps Go types to the Mapper that serves them.
//
// Thread-safety: all methods are safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	mappers map[reflect.Type]Mapper
}

// NewRegistry creates a registry with the built-in mappers.
// opts configure the OffsetDateTimeMapper registered for time.Time and
// *time.Time.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{mappers: make(map[reflect.Type]Mapper)}

	odt := NewOffsetDateTimeMapper(opts...)
	r.mappers[reflect.TypeFor[time.Time]()] = odt
	r.mappers[reflect.TypeFor[*time.Time]()] = odt

	r.mappers[reflect.TypeFor[string]()] = StringMapper{}
	r.mappers[reflect.TypeFor[*string]()] = StringMapper{}

	r.mappers[reflect.TypeFor[int]()] = IntegerMapper{}
	r.mappers[reflect.TypeFor[int32]()] = IntegerMapper{}
	r.mappers[reflect.TypeFor[int64]()] = IntegerMapper{}
	r.mappers[reflect.TypeFor[*int]()] = IntegerMapper{}
	r.mappers[reflect.TypeFor[*int32]()] = IntegerMapper{}
	r.mappers[reflect.TypeFor[*int64]()] = IntegerMapper{}

	r.mappers[reflect.TypeFor[bool]()] = BooleanMapper{}
	r.mappers[reflect.TypeFor[*bool]()] = BooleanMapper{}

	return r
}

// Register adds or replaces the mapper for t.
func (r *Registry) Register(t reflect.Type, m Mapper) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mappers[t] = m
}

// Lookup returns the mapper for t, or an error wrapping ErrNoMapper.
func (r *Registry) Lookup(t reflect.Type) (Mapper, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.mappers[t]
	if !ok {
		return nil, fmt.Errorf("%w for %v", ErrNoMapper, t)
	}
	return m, nil
}

// ToStore converts v with the mapper for its dynamic type.
// An untyped nil yields value.Null.
func (r *Registry) ToStore(v any) (value.Value, error) {
	if v == nil {
		return value.Null{}, nil
	}
	m, err := r.Lookup(reflect.TypeOf(v))
	if err != nil {
		return nil, err
	}
	return m.ToStore(v)
}

// ToModel converts v with the mapper registered for t.
func (r *Registry) ToModel(t reflect.Type, v value.Value) (any, error) {
	m, err := r.Lookup(t)
	if err != nil {
		return nil, err
	}
	return m.ToModel(v)
}

// EncodeProperties converts each model value in props to a store value.
// Errors name the offending property.
func (r *Registry) EncodeProperties(props map[string]any) (map[string]value.Value, error) {
	out := make(map[string]value.Value, len(props))
	for name, v := range props {
		sv, err := r.ToStore(v)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", name, err)
		}
		out[name] = sv
	}
	return out, nil
}

// DecodeProperties converts each store value in props to the model type
// given for it in types. A property without an entry in types is an error
// wrapping ErrNoMapper.
func (r *Registry) DecodeProperties(props map[string]value.Value, types map[string]reflect.Type) (map[string]any, error) {
	out := make(map[string]any, len(props))
	for name, v := range props {
		t, ok := types[name]
		if !ok {
			return nil, fmt.Errorf("property %q: %w: no model type", name, ErrNoMapper)
		}
		mv, err := r.ToModel(t, v)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", name, err)
		}
		out[name] = mv
	}
	return out, nil
}
