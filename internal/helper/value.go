package helper

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type ValueKind uint8

const (
	KindUndefined ValueKind = iota
	KindSingle
	KindMany
)

func (k ValueKind) String() string {
	switch k {
	case KindSingle:
		return "single"
	case KindMany:
		return "many"
	default:
		return "undefined"
	}
}

// Value is what compiled call sites pass to the helper: a single token, a
// sequence of values, or undefined. The zero Value is undefined.
type Value struct {
	kind  ValueKind
	token string
	items []Value
}

func Undefined() Value { return Value{} }

func Single(s string) Value { return Value{kind: KindSingle, token: s} }

// Many builds a sequence; the slice is copied.
func Many(items ...Value) Value {
	return Value{kind: KindMany, items: append([]Value{}, items...)}
}

// Strings is Many over plain tokens.
func Strings(tokens ...string) Value {
	items := make([]Value, len(tokens))
	for i, s := range tokens {
		items[i] = Single(s)
	}
	return Value{kind: KindMany, items: items}
}

func (v Value) Kind() ValueKind   { return v.kind }
func (v Value) IsUndefined() bool { return v.kind == KindUndefined }
func (v Value) Token() string     { return v.token }
func (v Value) Items() []Value    { return v.items }

// String renders the value the way the JS runtime stringifies it when
// joining: nested sequences are comma-joined, undefined becomes "".
func (v Value) String() string {
	switch v.kind {
	case KindSingle:
		return v.token
	case KindMany:
		parts := make([]string, len(v.items))
		for i, it := range v.items {
			parts[i] = it.String()
		}
		return strings.Join(parts, ",")
	default:
		return ""
	}
}

// ParseJSON decodes a value from JSON: strings and numbers are tokens,
// arrays are sequences and null is undefined.
func ParseJSON(data []byte) (Value, error) {
	var raw any
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return Value{}, fmt.Errorf("parse value: %w", err)
	}
	if dec.More() {
		return Value{}, fmt.Errorf("parse value: trailing data after the first value")
	}
	return fromJSON(raw)
}

func fromJSON(raw any) (Value, error) {
	switch x := raw.(type) {
	case nil:
		return Undefined(), nil
	case string:
		return Single(x), nil
	case json.Number:
		return Single(x.String()), nil
	case bool:
		return Single(strconv.FormatBool(x)), nil
	case []any:
		items := make([]Value, len(x))
		for i, el := range x {
			v, err := fromJSON(el)
			if err != nil {
				return Value{}, err
			}
			items[i] = v
		}
		return Value{kind: KindMany, items: items}, nil
	default:
		return Value{}, fmt.Errorf("unsupported value of type %T", raw)
	}
}
