package talon

import (
	"context"

	"github.com/casualjim/talon/aggregate"
	"github.com/casualjim/talon/registry"
)

// Default is the process-wide dispatcher the package-level functions
// delegate to. Components that just want to publish implementations
// against shared hook names can use it without wiring anything.
var Default = New()

// Register binds callable to the named hook on the Default dispatcher.
func Register(hook string, callable any, owner string) error {
	return Default.Register(hook, callable, owner)
}

// Invoke runs the named hook on the Default dispatcher.
func Invoke(ctx context.Context, hook string, args ...any) []any {
	return Default.Invoke(ctx, hook, args...)
}

// InvokeAggregate runs the named hook on the Default dispatcher and folds
// the results with fn.
func InvokeAggregate(ctx context.Context, hook string, fn aggregate.Func, args ...any) (any, error) {
	return Default.InvokeAggregate(ctx, hook, fn, args...)
}

// InvokeAggregateNamed runs the named hook on the Default dispatcher and
// folds the results with the aggregator registered under name.
func InvokeAggregateNamed(ctx context.Context, hook, name string, args ...any) (any, error) {
	return Default.InvokeAggregateNamed(ctx, hook, name, args...)
}

// Implementations reports who is registered for the named hook on the
// Default dispatcher.
func Implementations(hook string) []registry.Registration {
	return Default.Implementations(hook)
}

// Clear empties the Default dispatcher's registry. Mostly useful to reset
// state between tests.
func Clear() {
	Default.Registry().Clear()
}
