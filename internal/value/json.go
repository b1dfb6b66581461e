package value

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"
)

// ErrInvalidJSON is returned when data is not a valid store JSON value.
var ErrInvalidJSON = errors.New("value: invalid store JSON")

// Store JSON field names, one per kind.
const (
	fieldNull      = "nullValue"
	fieldBoolean   = "booleanValue"
	fieldInteger   = "integerValue"
	fieldDouble    = "doubleValue"
	fieldString    = "stringValue"
	fieldTimestamp = "timestampValue"
	fieldArray     = "arrayValue"
	fieldEntity    = "entityValue"
)

type arrayBody struct {
	Values []json.RawMessage `json:"values"`
}

type entityBody struct {
	Properties map[string]json.RawMessage `json:"properties"`
}

// Marshal encodes v in the store's JSON form, e.g.
// {"timestampValue":"2024-01-15T05:00:00Z"}.
// A nil interface encodes as Null.
func Marshal(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeValue(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalProperties encodes a property map as a JSON object with keys in
// SortedKeys order.
func MarshalProperties(props map[string]Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeProperties(&buf, Entity(props)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeValue(buf *bytes.Buffer, v Value) error {
	switch val := v.(type) {
	case nil, Null:
		buf.WriteString(`{"` + fieldNull + `":null}`)
	case Boolean:
		fmt.Fprintf(buf, `{"%s":%t}`, fieldBoolean, bool(val))
	case Integer:
		fmt.Fprintf(buf, `{"%s":"%d"}`, fieldInteger, int64(val))
	case Double:
		b, err := json.Marshal(float64(val))
		if err != nil {
			return fmt.Errorf("marshal %s: %w", KindDouble, err)
		}
		fmt.Fprintf(buf, `{"%s":%s}`, fieldDouble, b)
	case String:
		b, err := marshalString(string(val))
		if err != nil {
			return fmt.Errorf("marshal %s: %w", KindString, err)
		}
		fmt.Fprintf(buf, `{"%s":%s}`, fieldString, b)
	case Timestamp:
		if !val.Valid() {
			return fmt.Errorf("marshal %s: instant %d.%09d out of range", KindTimestamp, val.seconds, val.nanos)
		}
		fmt.Fprintf(buf, `{"%s":"%s"}`, fieldTimestamp, formatTimestamp(val))
	case Array:
		buf.WriteString(`{"` + fieldArray + `":{"values":[`)
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeValue(buf, elem); err != nil {
				return fmt.Errorf("array[%d]: %w", i, err)
			}
		}
		buf.WriteString(`]}}`)
	case Entity:
		buf.WriteString(`{"` + fieldEntity + `":{"properties":`)
		if err := writeProperties(buf, val); err != nil {
			return err
		}
		buf.WriteString(`}}`)
	default:
		return fmt.Errorf("unknown Value type: %T", v)
	}
	return nil
}

func writeProperties(buf *bytes.Buffer, e Entity) error {
	buf.WriteByte('{')
	for i, k := range e.SortedKeys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := marshalString(k)
		if err != nil {
			return fmt.Errorf("marshal key %q: %w", k, err)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		if err := writeValue(buf, e[k]); err != nil {
			return fmt.Errorf("property %q: %w", k, err)
		}
	}
	buf.WriteByte('}')
	return nil
}

// marshalString encodes s without HTML escaping.
func marshalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	// Encoder appends a newline
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// formatTimestamp renders t as RFC 3339 in UTC with trailing zero
// fraction digits trimmed.
func formatTimestamp(t Timestamp) string {
	return t.Time().Format(time.RFC3339Nano)
}

// Unmarshal decodes a single store JSON value.
func Unmarshal(data []byte) (Value, error) {
	v, err := unmarshalValue(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return v, nil
}

// UnmarshalProperties decodes a JSON object of store values.
// Empty input or "{}" yields an empty, non-nil map.
func UnmarshalProperties(data []byte) (map[string]Value, error) {
	props, err := unmarshalProperties(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return props, nil
}

func unmarshalProperties(data []byte) (map[string]Value, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]Value{}, nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	props := make(map[string]Value, len(raw))
	for k, r := range raw {
		v, err := unmarshalValue(r)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", k, err)
		}
		props[k] = v
	}
	return props, nil
}

func unmarshalValue(data []byte) (Value, error) {
	field, body, err := singleField(data)
	if err != nil {
		return nil, err
	}

	switch field {
	case fieldNull:
		if string(bytes.TrimSpace(body)) != "null" {
			return nil, fmt.Errorf("%s must be null", fieldNull)
		}
		return Null{}, nil

	case fieldBoolean:
		var b bool
		if err := json.Unmarshal(body, &b); err != nil {
			return nil, fmt.Errorf("%s: %w", fieldBoolean, err)
		}
		return Boolean(b), nil

	case fieldInteger:
		return unmarshalInteger(body)

	case fieldDouble:
		var f float64
		if err := json.Unmarshal(body, &f); err != nil {
			return nil, fmt.Errorf("%s: %w", fieldDouble, err)
		}
		return Double(f), nil

	case fieldString:
		var s string
		if err := json.Unmarshal(body, &s); err != nil {
			return nil, fmt.Errorf("%s: %w", fieldString, err)
		}
		return String(s), nil

	case fieldTimestamp:
		return unmarshalTimestamp(body)

	case fieldArray:
		var ab arrayBody
		if err := json.Unmarshal(body, &ab); err != nil {
			return nil, fmt.Errorf("%s: %w", fieldArray, err)
		}
		arr := make(Array, len(ab.Values))
		for i, elem := range ab.Values {
			v, err := unmarshalValue(elem)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			arr[i] = v
		}
		return arr, nil

	case fieldEntity:
		var eb entityBody
		if err := json.Unmarshal(body, &eb); err != nil {
			return nil, fmt.Errorf("%s: %w", fieldEntity, err)
		}
		ent := make(Entity, len(eb.Properties))
		for k, elem := range eb.Properties {
			v, err := unmarshalValue(elem)
			if err != nil {
				return nil, fmt.Errorf("property %q: %w", k, err)
			}
			ent[k] = v
		}
		return ent, nil

	default:
		return nil, fmt.Errorf("unknown value field %q", field)
	}
}

// singleField reads a JSON object that must hold exactly one member.
// Repeated keys count separately, so {"a":1,"a":2} is rejected.
func singleField(data []byte) (string, json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return "", nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return "", nil, fmt.Errorf("expected object, got %v", tok)
	}

	var (
		field string
		body  json.RawMessage
		n     int
	)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return "", nil, err
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return "", nil, err
		}
		if n == 0 {
			field, body = keyTok.(string), raw
		}
		n++
	}
	if _, err := dec.Token(); err != nil {
		return "", nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return "", nil, fmt.Errorf("unexpected data after value")
	}

	if n != 1 {
		return "", nil, fmt.Errorf("expected exactly one value field, got %d", n)
	}
	return field, body, nil
}

// unmarshalInteger accepts the decimal-string form the store emits and a
// bare JSON integer.
func unmarshalInteger(body []byte) (Value, error) {
	var s string
	if err := json.Unmarshal(body, &s); err != nil {
		var n json.Number
		if err := json.Unmarshal(body, &n); err != nil {
			return nil, fmt.Errorf("%s: %w", fieldInteger, err)
		}
		s = n.String()
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fieldInteger, err)
	}
	return Integer(n), nil
}

func unmarshalTimestamp(body []byte) (Value, error) {
	var s string
	if err := json.Unmarshal(body, &s); err != nil {
		return nil, fmt.Errorf("%s: %w", fieldTimestamp, err)
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fieldTimestamp, err)
	}
	ts := NewTimestamp(t)
	if !ts.Valid() {
		return nil, fmt.Errorf("%s: %q out of range", fieldTimestamp, s)
	}
	return ts, nil
}
