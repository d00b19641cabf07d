package template

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
)

// Kind discriminates the variants a Value can hold.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns a human readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Member is a single key/value pair inside an object Value. Objects keep
// their members as a slice so encoding preserves the order the document was
// authored in.
type Member struct {
	Key   string
	Value Value
}

// Value is a parsed JSON-like document: null, boolean, number, string,
// array, or object. The zero value is null. Values are immutable once built;
// transformations return fresh trees. Numbers carry their literal text so
// round-tripping never loses precision.
type Value struct {
	kind Kind
	b    bool
	num  json.Number
	str  string
	arr  []Value
	obj  []Member
}

// Null returns the null Value.
func Null() Value {
	return Value{kind: KindNull}
}

// Bool wraps a boolean.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Number wraps a numeric literal.
func Number(n json.Number) Value {
	return Value{kind: KindNumber, num: n}
}

// String wraps a string leaf.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Array builds an array Value from the supplied items.
func Array(items ...Value) Value {
	return Value{kind: KindArray, arr: items}
}

// Object builds an object Value from the supplied members, preserving order.
func Object(members ...Member) Value {
	return Value{kind: KindObject, obj: members}
}

// Kind reports which variant the Value holds.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the Value is null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Bool returns the wrapped boolean; false unless Kind is KindBool.
func (v Value) Bool() bool {
	return v.b
}

// Number returns the numeric literal; empty unless Kind is KindNumber.
func (v Value) Number() json.Number {
	return v.num
}

// Text returns the string leaf content; empty unless Kind is KindString.
func (v Value) Text() string {
	return v.str
}

// Items returns the elements of an array Value. Callers must not mutate the
// returned slice.
func (v Value) Items() []Value {
	return v.arr
}

// Members returns the ordered members of an object Value. Callers must not
// mutate the returned slice.
func (v Value) Members() []Member {
	return v.obj
}

// Len returns the element count for arrays and the member count for objects.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.obj)
	default:
		return 0
	}
}

// Field looks up an object member by key. The second return reports whether
// the key exists.
func (v Value) Field(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	for _, m := range v.obj {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// WithoutField returns a copy of an object Value with the named member
// removed. Non-object values are returned unchanged.
func (v Value) WithoutField(key string) Value {
	if v.kind != KindObject {
		return v
	}
	members := make([]Member, 0, len(v.obj))
	for _, m := range v.obj {
		if m.Key == key {
			continue
		}
		members = append(members, m)
	}
	return Object(members...)
}

// Equal reports deep structural equality. Numbers compare by their literal
// text, so 1 and 1.0 are distinct.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindNumber:
		return v.num == other.num
	case KindString:
		return v.str == other.str
	case KindArray:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.obj) != len(other.obj) {
			return false
		}
		for i := range v.obj {
			if v.obj[i].Key != other.obj[i].Key {
				return false
			}
			if !v.obj[i].Value.Equal(other.obj[i].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Interface converts the Value into plain Go values (nil, bool, int64,
// float64, string, []any, map[string]any). Object key order is lost; use the
// Value tree itself when order matters.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		if i, err := v.num.Int64(); err == nil {
			return i
		}
		if f, err := v.num.Float64(); err == nil {
			return f
		}
		return v.num.String()
	case KindString:
		return v.str
	case KindArray:
		out := make([]any, len(v.arr))
		for i, item := range v.arr {
			out[i] = item.Interface()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.obj))
		for _, m := range v.obj {
			out[m.Key] = m.Value.Interface()
		}
		return out
	default:
		return nil
	}
}

// FromGo builds a Value from plain Go data (the shapes encoding/json
// produces, plus the integer and float primitives). Map keys are sorted so
// the resulting object order is deterministic.
func FromGo(data any) (Value, error) {
	switch t := data.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case json.Number:
		return Number(t), nil
	case int:
		return Number(json.Number(strconv.FormatInt(int64(t), 10))), nil
	case int64:
		return Number(json.Number(strconv.FormatInt(t, 10))), nil
	case float64:
		return Number(json.Number(strconv.FormatFloat(t, 'g', -1, 64))), nil
	case []any:
		items := make([]Value, len(t))
		for i, item := range t {
			val, err := FromGo(item)
			if err != nil {
				return Value{}, err
			}
			items[i] = val
		}
		return Array(items...), nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for key := range t {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		members := make([]Member, 0, len(t))
		for _, key := range keys {
			val, err := FromGo(t[key])
			if err != nil {
				return Value{}, err
			}
			members = append(members, Member{Key: key, Value: val})
		}
		return Object(members...), nil
	default:
		return Value{}, fmt.Errorf("template: unsupported value type %T", data)
	}
}

// MustFromGo panics when the conversion fails. Useful for tests.
func MustFromGo(data any) Value {
	val, err := FromGo(data)
	if err != nil {
		panic(err)
	}
	return val
}

// ParseJSON decodes a JSON document into a Value, preserving object member
// order and numeric literals.
func ParseJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	val, err := decodeValue(dec)
	if err != nil {
		return Value{}, err
	}
	if dec.More() {
		return Value{}, errors.New("template: trailing data after document")
	}
	return val, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	return decodeFromToken(dec, tok)
}

func decodeFromToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			var members []Member
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("template: object key is %T, expected string", keyTok)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				members = append(members, Member{Key: key, Value: val})
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return Object(members...), nil
		case '[':
			var items []Value
			for dec.More() {
				val, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				items = append(items, val)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return Array(items...), nil
		default:
			return Value{}, fmt.Errorf("template: unexpected delimiter %q", t)
		}
	case bool:
		return Bool(t), nil
	case json.Number:
		return Number(t), nil
	case string:
		return String(t), nil
	case nil:
		return Null(), nil
	default:
		return Value{}, fmt.Errorf("template: unexpected token %v", tok)
	}
}

// MarshalJSON encodes the Value back to JSON, emitting object members in
// their original order.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes JSON into the Value via ParseJSON.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := ParseJSON(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func (v Value) encode(buf *bytes.Buffer) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.b))
	case KindNumber:
		lit := v.num.String()
		if lit == "" {
			lit = "0"
		}
		buf.WriteString(lit)
	case KindString:
		encoded, err := json.Marshal(v.str)
		if err != nil {
			return err
		}
		buf.Write(encoded)
	case KindArray:
		buf.WriteByte('[')
		for i, item := range v.arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		for i, m := range v.obj {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(m.Key)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := m.Value.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("template: cannot encode kind %v", v.kind)
	}
	return nil
}
