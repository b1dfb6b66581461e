package mapper

import (
	"github.com/roach88/dsmap/internal/value"
)

// StringMapper maps string and *string to value.String.
type StringMapper struct{}

// ToStore implements Mapper.
func (StringMapper) ToStore(v any) (value.Value, error) {
	switch s := v.(type) {
	case nil:
		return value.Null{}, nil
	case string:
		return value.NewString(s), nil
	case *string:
		if s == nil {
			return value.Null{}, nil
		}
		return value.NewString(*s), nil
	default:
		return nil, unsupported("StringMapper", v)
	}
}

// ToModel implements Mapper. It returns a string or nil.
func (StringMapper) ToModel(v value.Value) (any, error) {
	if value.IsNull(v) {
		return nil, nil
	}
	s, err := value.AsString(v)
	if err != nil {
		return nil, mismatch(value.KindString, v, err)
	}
	return string(s), nil
}

// IntegerMapper maps Go signed integers to value.Integer.
// ToModel always returns int64.
type IntegerMapper struct{}

// ToStore implements Mapper.
func (IntegerMapper) ToStore(v any) (value.Value, error) {
	switch n := v.(type) {
	case nil:
		return value.Null{}, nil
	case int:
		return value.NewInteger(int64(n)), nil
	case int32:
		return value.NewInteger(int64(n)), nil
	case int64:
		return value.NewInteger(n), nil
	case *int:
		if n == nil {
			return value.Null{}, nil
		}
		return value.NewInteger(int64(*n)), nil
	case *int32:
		if n == nil {
			return value.Null{}, nil
		}
		return value.NewInteger(int64(*n)), nil
	case *int64:
		if n == nil {
			return value.Null{}, nil
		}
		return value.NewInteger(*n), nil
	default:
		return nil, unsupported("IntegerMapper", v)
	}
}

// ToModel implements Mapper.
func (IntegerMapper) ToModel(v value.Value) (any, error) {
	if value.IsNull(v) {
		return nil, nil
	}
	n, err := value.AsInteger(v)
	if err != nil {
		return nil, mismatch(value.KindInteger, v, err)
	}
	return int64(n), nil
}

// BooleanMapper maps bool and *bool to value.Boolean.
type BooleanMapper struct{}

// ToStore implements Mapper.
func (BooleanMapper) ToStore(v any) (value.Value, error) {
	switch b := v.(type) {
	case nil:
		return value.Null{}, nil
	case bool:
		return value.NewBoolean(b), nil
	case *bool:
		if b == nil {
			return value.Null{}, nil
		}
		return value.NewBoolean(*b), nil
	default:
		return nil, unsupported("BooleanMapper", v)
	}
}

// ToModel implements Mapper.
func (BooleanMapper) ToModel(v value.Value) (any, error) {
	if value.IsNull(v) {
		return nil, nil
	}
	b, err := value.AsBoolean(v)
	if err != nil {
		return nil, mismatch(value.KindBoolean, v, err)
	}
	return bool(b), nil
}
