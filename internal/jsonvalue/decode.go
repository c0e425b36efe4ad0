package jsonvalue

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrEmpty is returned when the input holds no JSON value at all.
var ErrEmpty = errors.New("empty input")

// Decode reads exactly one JSON value from r. Anything other than
// whitespace after the value is an error.
func Decode(r io.Reader) (Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return Value{}, ErrEmpty
		}
		return Value{}, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return Value{}, err
		}
		return Value{}, fmt.Errorf("extra data after top-level value at offset %d", dec.InputOffset())
	}

	return fromRaw(raw), nil
}

// Parse decodes data as a single JSON value.
func Parse(data []byte) (Value, error) {
	return Decode(bytes.NewReader(data))
}

// MustParse is like Parse but panics on error. Intended for tests and
// package-level fixtures.
func MustParse(s string) Value {
	v, err := Parse([]byte(s))
	if err != nil {
		panic("jsonvalue: " + err.Error())
	}
	return v
}

func fromRaw(raw any) Value {
	switch x := raw.(type) {
	case nil:
		return Value{kind: Null}
	case bool:
		return Value{kind: Bool, b: x}
	case json.Number:
		s := x.String()
		if strings.ContainsAny(s, ".eE") {
			return Value{kind: Float, num: s}
		}
		return Value{kind: Integer, num: s}
	case string:
		return Value{kind: String, str: x}
	case []any:
		arr := make([]Value, len(x))
		for i, e := range x {
			arr[i] = fromRaw(e)
		}
		return Value{kind: Array, arr: arr}
	case map[string]any:
		obj := make(map[string]Value, len(x))
		for k, e := range x {
			obj[k] = fromRaw(e)
		}
		return Value{kind: Object, obj: obj}
	}
	// encoding/json only produces the types above when decoding into any.
	panic(fmt.Sprintf("jsonvalue: unexpected decoded type %T", raw))
}
