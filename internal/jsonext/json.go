// Package jsonext holds small JSON helpers shared by the library and
// the command line tool.
package jsonext

import (
	"encoding/json"
	"reflect"
)

func IsValidJSON[T string | []byte](data T) bool {
	if len(data) == 0 { // hot path
		return false
	}
	var m json.RawMessage
	err := json.Unmarshal([]byte(data), &m)
	return err == nil
}

// Equal reports whether a and b decode to the same JSON value, ignoring
// formatting differences.
func Equal[T string | []byte](a, b T) bool {
	var va, vb any
	if err := json.Unmarshal([]byte(a), &va); err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(b), &vb); err != nil {
		return false
	}
	return reflect.DeepEqual(va, vb)
}
