package annotation

import (
	"encoding/json"
	"reflect"
)

// InferFromLiteral returns the raw type annotation implied by a default value's shape.
//
//	bool            -> "bool"
//	string          -> "string"
//	nil             -> "mixed"
//	slice or array  -> "array"
//	any number      -> "number"
//
// Other shapes (maps, structs, ...) report false.
func InferFromLiteral(v any) (string, bool) {
	switch v.(type) {
	case nil:
		return Unresolved, true
	case bool:
		return "bool", true
	case string:
		return "string", true
	case json.Number:
		return "number", true
	}

	switch reflect.TypeOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return "array", true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number", true
	}
	return "", false
}
