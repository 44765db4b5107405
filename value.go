package llmjson

import (
	"bytes"
	"encoding/json"
	"iter"
	"math"
	"strconv"
)

// Number holds a numeric value as its original lexeme, so integers and
// floating-point values round-trip without precision loss. The sentinel
// lexemes "NaN", "Infinity" and "-Infinity" represent the non-finite
// values some inputs carry; they serialize as null.
type Number string

// String returns the lexeme.
func (n Number) String() string { return string(n) }

// Float64 returns the value as a float64. Non-finite sentinels yield
// NaN and the infinities.
func (n Number) Float64() (float64, error) {
	return strconv.ParseFloat(string(n), 64)
}

// Int64 returns the value as an int64, if the lexeme is an integer that
// fits.
func (n Number) Int64() (int64, error) {
	return strconv.ParseInt(string(n), 10, 64)
}

// IsFinite reports whether the value is an ordinary finite number.
func (n Number) IsFinite() bool {
	f, err := n.Float64()
	return err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
}

// MarshalJSON writes the lexeme verbatim when it is a valid JSON number,
// and null for the non-finite sentinels.
func (n Number) MarshalJSON() ([]byte, error) {
	if isJSONNumber(string(n)) {
		return []byte(n), nil
	}
	f, err := n.Float64()
	if err != nil {
		return nil, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return []byte(formatFloat(f)), nil
}

// Member is a single key/value pair of an Object.
type Member struct {
	Key   string
	Value any
}

// Object is a JSON object that preserves member insertion order. A
// repeated key keeps the position of its first occurrence and takes the
// most recent value.
type Object struct {
	members []Member
	index   map[string]int
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{index: map[string]int{}}
}

// Set stores value under key, appending a new member for a first-seen key
// and overwriting the value in place for a repeated one.
func (o *Object) Set(key string, value any) {
	if idx, ok := o.index[key]; ok {
		o.members[idx].Value = value
		return
	}
	o.index[key] = len(o.members)
	o.members = append(o.members, Member{Key: key, Value: value})
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	idx, ok := o.index[key]
	if !ok {
		return nil, false
	}
	return o.members[idx].Value, true
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.index[key]
	return ok
}

// Len returns the number of members.
func (o *Object) Len() int { return len(o.members) }

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.members))
	for i, m := range o.members {
		keys[i] = m.Key
	}
	return keys
}

// Members returns a copy of the members in insertion order.
func (o *Object) Members() []Member {
	members := make([]Member, len(o.members))
	copy(members, o.members)
	return members
}

// All iterates the members in insertion order.
func (o *Object) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, m := range o.members {
			if !yield(m.Key, m.Value) {
				return
			}
		}
	}
}

// MarshalJSON encodes the object with its members in insertion order.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o.members {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(m.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(m.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
