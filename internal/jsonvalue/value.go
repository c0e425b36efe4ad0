// Package jsonvalue provides a tagged representation of a decoded JSON
// document so callers can switch on the kind of each node instead of
// type-asserting on interface{} values.
package jsonvalue

import (
	"encoding/json"
	"math/big"
	"sort"
	"strconv"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	Null Kind = iota
	Bool
	Integer
	Float
	String
	Array
	Object
)

var kindNames = map[Kind]string{
	Null:    "null",
	Bool:    "boolean",
	Integer: "integer",
	Float:   "float",
	String:  "string",
	Array:   "array",
	Object:  "object",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Value is a single node of a JSON document.
// The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	num  string // literal text for Integer and Float
	str  string
	arr  []Value
	obj  map[string]Value
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// Is reports whether v holds one of the given kinds.
func (v Value) Is(kinds ...Kind) bool {
	for _, k := range kinds {
		if v.kind == k {
			return true
		}
	}
	return false
}

// Bool returns the boolean held by v and whether v is a boolean.
func (v Value) Bool() (bool, bool) {
	return v.b, v.kind == Bool
}

// Str returns the string held by v and whether v is a string.
func (v Value) Str() (string, bool) {
	return v.str, v.kind == String
}

// Int returns the arbitrary-precision integer held by v.
// The second result is false when v is not an integer.
func (v Value) Int() (*big.Int, bool) {
	if v.kind != Integer {
		return nil, false
	}
	n, ok := new(big.Int).SetString(v.num, 10)
	if !ok {
		return nil, false
	}
	return n, true
}

// Len returns the number of elements of an array or members of an object.
// It returns 0 for every other kind.
func (v Value) Len() int {
	switch v.kind {
	case Array:
		return len(v.arr)
	case Object:
		return len(v.obj)
	}
	return 0
}

// Elems returns the elements of an array, or nil for any other kind.
func (v Value) Elems() []Value {
	if v.kind != Array {
		return nil
	}
	return v.arr
}

// Lookup returns the member named key of an object.
// The second result is false when v is not an object or has no such member.
func (v Value) Lookup(key string) (Value, bool) {
	if v.kind != Object {
		return Value{}, false
	}
	m, ok := v.obj[key]
	return m, ok
}

// Keys returns the member names of an object in sorted order.
func (v Value) Keys() []string {
	if v.kind != Object {
		return nil
	}
	keys := make([]string, 0, len(v.obj))
	for k := range v.obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String renders v as compact JSON. Object members are emitted in sorted
// key order.
func (v Value) String() string {
	var sb strings.Builder
	v.write(&sb)
	return sb.String()
}

func (v Value) write(sb *strings.Builder) {
	switch v.kind {
	case Null:
		sb.WriteString("null")
	case Bool:
		sb.WriteString(strconv.FormatBool(v.b))
	case Integer, Float:
		sb.WriteString(v.num)
	case String:
		quoted, _ := json.Marshal(v.str)
		sb.Write(quoted)
	case Array:
		sb.WriteByte('[')
		for i, e := range v.arr {
			if i > 0 {
				sb.WriteByte(',')
			}
			e.write(sb)
		}
		sb.WriteByte(']')
	case Object:
		sb.WriteByte('{')
		for i, k := range v.Keys() {
			if i > 0 {
				sb.WriteByte(',')
			}
			quoted, _ := json.Marshal(k)
			sb.Write(quoted)
			sb.WriteByte(':')
			v.obj[k].write(sb)
		}
		sb.WriteByte('}')
	}
}
