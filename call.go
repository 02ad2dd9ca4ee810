package talon

import (
	"context"
	"fmt"
	"reflect"
)

var (
	ctxType = reflect.TypeFor[context.Context]()
	errType = reflect.TypeFor[error]()
)

// call invokes one registered callable with the invocation arguments.
//
// Parameters fill positionally from args. A parameter of type
// context.Context receives the invocation context instead of consuming an
// argument, wherever it appears in the signature. Arguments convert to the
// parameter type when reflect considers them convertible, and a trailing
// variadic parameter receives every remaining argument. Supplying more
// args than a callable declares is fine, the surplus is ignored; supplying
// fewer is an error.
//
// The first return value not declared as error becomes the result, so a
// callable with no such return contributes nil. A non-nil error return, an
// unusable argument or a panic inside the callable surfaces as the
// returned error.
func call(ctx context.Context, fn any, args []any) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	val := reflect.ValueOf(fn)
	vtpe := val.Type()

	numIn := vtpe.NumIn()
	callArgs := make([]reflect.Value, 0, numIn)

	ai := 0
	for fi := 0; fi < numIn; fi++ {
		paramType := vtpe.In(fi)

		if vtpe.IsVariadic() && fi == numIn-1 {
			elemType := paramType.Elem()
			for ; ai < len(args); ai++ {
				av, aerr := argValue(ai, args[ai], elemType)
				if aerr != nil {
					return nil, aerr
				}
				callArgs = append(callArgs, av)
			}
			break
		}

		if paramType == ctxType {
			callArgs = append(callArgs, reflect.ValueOf(ctx))
			continue
		}

		if ai >= len(args) {
			return nil, fmt.Errorf("not enough arguments: parameter %d (%s) has no value", fi, paramType)
		}
		av, aerr := argValue(ai, args[ai], paramType)
		if aerr != nil {
			return nil, aerr
		}
		callArgs = append(callArgs, av)
		ai++
	}

	results := val.Call(callArgs)

	var out any
	haveOut := false
	for oi := 0; oi < vtpe.NumOut(); oi++ {
		if vtpe.Out(oi) == errType {
			if !results[oi].IsNil() {
				return nil, results[oi].Interface().(error)
			}
			continue
		}
		if !haveOut {
			out = results[oi].Interface()
			haveOut = true
		}
	}
	return out, nil
}

// argValue adapts one invocation argument to the parameter type it is
// about to fill. A nil argument becomes the zero value for nilable
// parameter kinds and an error for everything else.
func argValue(index int, arg any, paramType reflect.Type) (reflect.Value, error) {
	if arg == nil {
		switch paramType.Kind() {
		case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
			return reflect.Zero(paramType), nil
		}
		return reflect.Value{}, fmt.Errorf("argument %d: cannot use nil as %s", index, paramType)
	}

	vv := reflect.ValueOf(arg)
	if !vv.Type().ConvertibleTo(paramType) {
		return reflect.Value{}, fmt.Errorf("argument %d: cannot use %T as %s", index, arg, paramType)
	}
	return vv.Convert(paramType), nil
}
