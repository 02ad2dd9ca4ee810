package reflectx

import "reflect"

// IsNilValue reports whether v is absent: either a nil interface or a typed
// nil (pointer, map, slice, channel, func or unsafe pointer holding nil).
// Zero values that are real values, like 0, "" or false, are not nil.
func IsNilValue(v any) bool {
	if v == nil {
		return true
	}

	val := reflect.ValueOf(v)
	switch val.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map,
		reflect.Pointer, reflect.Slice, reflect.UnsafePointer:
		return val.IsNil()
	}

	return false
}
