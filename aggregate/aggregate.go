// Package aggregate folds the per-implementation results of a hook
// invocation into a single value.
//
// A Func receives the results exactly as dispatch collected them, in
// registration order, and returns the combined value. Every built-in
// tolerates the empty result list, so aggregating an unknown hook is
// well defined. Built-ins are also registered by name (see Register)
// so callers can select one at runtime.
package aggregate

import (
	"fmt"
	"math"
	"reflect"

	"github.com/casualjim/talon/pkg/reflectx"
)

// Func combines the results of a hook invocation into a single value.
// Returning an error aborts the aggregate call; the error reaches the
// invoking caller unchanged.
type Func func(results []any) (any, error)

// Sum adds up numeric results. Integer kinds accumulate into an int64;
// as soon as one float shows up the whole sum becomes a float64. An
// empty input sums to int64(0). Any non-numeric result is an error, as
// is an unsigned result too large for the integer accumulator.
func Sum(results []any) (any, error) {
	var (
		ints    int64
		floats  float64
		isFloat bool
	)
	for i, res := range results {
		v := reflect.ValueOf(res)
		if !v.IsValid() {
			return nil, fmt.Errorf("sum: result %d is nil, not numeric", i)
		}
		switch v.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			ints += v.Int()
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			u := v.Uint()
			if u > math.MaxInt64 {
				return nil, fmt.Errorf("sum: result %d (%d) overflows the integer accumulator", i, u)
			}
			ints += int64(u)
		case reflect.Float32, reflect.Float64:
			isFloat = true
			floats += v.Float()
		default:
			return nil, fmt.Errorf("sum: result %d is %T, not numeric", i, res)
		}
	}
	if isFloat {
		return floats + float64(ints), nil
	}
	return ints, nil
}

// Flatten splices slice and array results into one flat list and appends
// everything else as a single element. Only one level is flattened;
// nested slices inside a result survive as-is.
func Flatten(results []any) (any, error) {
	flat := make([]any, 0, len(results))
	for _, res := range results {
		v := reflect.ValueOf(res)
		if v.IsValid() && (v.Kind() == reflect.Slice || v.Kind() == reflect.Array) {
			for i := range v.Len() {
				flat = append(flat, v.Index(i).Interface())
			}
			continue
		}
		flat = append(flat, res)
	}
	return flat, nil
}

// MergeMap merges string-keyed map results into a single map[string]any.
// Results merge in collection order, so on key conflicts the entry from
// the later registration wins. Results that are not string-keyed maps are
// skipped. An empty input yields an empty map.
func MergeMap(results []any) (any, error) {
	merged := make(map[string]any)
	for _, res := range results {
		v := reflect.ValueOf(res)
		if !v.IsValid() || v.Kind() != reflect.Map || v.Type().Key().Kind() != reflect.String {
			continue
		}
		iter := v.MapRange()
		for iter.Next() {
			merged[iter.Key().String()] = iter.Value().Interface()
		}
	}
	return merged, nil
}

// FirstNonEmpty returns the first result that is present: not a nil
// interface and not a typed nil. Present-but-falsy values count, so a
// false, an empty string or a zero are all returned rather than skipped.
// When every result is absent the combined value is nil.
func FirstNonEmpty(results []any) (any, error) {
	for _, res := range results {
		if reflectx.IsNilValue(res) {
			continue
		}
		return res, nil
	}
	return nil, nil
}

// CollectAll hands the result list back unchanged. It is the identity
// aggregator, useful when a call site wants aggregate-shaped plumbing
// without combining anything.
func CollectAll(results []any) (any, error) {
	return results, nil
}
