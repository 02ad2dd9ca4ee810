package talon

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/fogfish/opts"
	"github.com/go-openapi/strfmt"

	"github.com/casualjim/talon/aggregate"
	"github.com/casualjim/talon/pkg/reflectx"
	"github.com/casualjim/talon/pkg/uuidx"
	"github.com/casualjim/talon/registry"
)

// Dispatcher connects hook invocations to the registrations in a Registry.
//
// Invoke fans a call out to every registered implementation in
// registration order, on the calling goroutine, and isolates their
// failures: an implementation that returns an error or panics is reported
// and skipped while the rest still run. Aggregate variants fold the
// collected results into a single value.
type Dispatcher struct {
	registry *registry.Registry
	reporter Reporter
}

// WithRegistry points the dispatcher at an existing hook table, so several
// dispatchers can share one set of registrations.
func WithRegistry(r *registry.Registry) opts.Option[Dispatcher] {
	return opts.Type[Dispatcher](func(o *Dispatcher) error {
		if r == nil {
			return fmt.Errorf("registry is required")
		}
		o.registry = r
		return nil
	})
}

// WithReporter replaces the default logging reporter. Combine several
// reporters with NewCompositeReporter.
func WithReporter(rep Reporter) opts.Option[Dispatcher] {
	return opts.Type[Dispatcher](func(o *Dispatcher) error {
		if rep == nil {
			return fmt.Errorf("reporter is required")
		}
		o.reporter = rep
		return nil
	})
}

// New creates a Dispatcher. Without options it owns a fresh registry and
// reports failures through LoggingReporter.
func New(options ...opts.Option[Dispatcher]) *Dispatcher {
	d := &Dispatcher{
		registry: registry.New(),
		reporter: LoggingReporter(),
	}
	if err := opts.Apply(d, options); err != nil {
		panic(err)
	}
	return d
}

// Registry returns the hook table this dispatcher reads from.
func (d *Dispatcher) Registry() *registry.Registry {
	return d.registry
}

// Register binds callable to the named hook. When owner is empty it is
// derived from the callable's defining package, the way a component
// usually wants to be identified anyway. Everything else follows
// Registry.Register: silent no-op on duplicates, error on bad input.
func (d *Dispatcher) Register(hook string, callable any, owner string) error {
	if owner == "" {
		owner = reflectx.FunctionPackage(callable)
	}
	return d.registry.Register(hook, callable, owner)
}

// Invoke calls every implementation registered for hook in registration
// order and returns their results, also in that order. A failing
// implementation contributes no result: the failure goes to the reporter
// and the remaining implementations still run. Invoking a hook nobody
// registered for yields an empty result.
//
// The registrations are snapshotted up front, so an implementation that
// registers more callables mid-flight only affects later invocations.
func (d *Dispatcher) Invoke(ctx context.Context, hook string, args ...any) []any {
	regs := d.registry.Hooks(hook)
	if len(regs) == 0 {
		return nil
	}

	invocationID := uuidx.New()
	results := make([]any, 0, len(regs))
	for reg := range slices.Values(regs) {
		res, err := call(ctx, reg.Callable, args)
		if err != nil {
			d.report(ctx, Failure{
				InvocationID: invocationID,
				Hook:         hook,
				Owner:        reg.Owner,
				Err:          err,
				Timestamp:    strfmt.DateTime(time.Now()),
			})
			continue
		}
		results = append(results, res)
	}
	return results
}

// InvokeAggregate invokes the hook and folds the collected results with
// fn. Implementation failures are still isolated and reported; only the
// aggregator's own error reaches the caller.
func (d *Dispatcher) InvokeAggregate(ctx context.Context, hook string, fn aggregate.Func, args ...any) (any, error) {
	if fn == nil {
		return nil, fmt.Errorf("hook %q: aggregator is required", hook)
	}
	return fn(d.Invoke(ctx, hook, args...))
}

// InvokeAggregateNamed invokes the hook and folds the results with the
// aggregator registered under name, either one of the built-ins or
// anything installed with aggregate.Register.
func (d *Dispatcher) InvokeAggregateNamed(ctx context.Context, hook, name string, args ...any) (any, error) {
	fn, ok := aggregate.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("hook %q: no aggregator registered as %q", hook, name)
	}
	return fn(d.Invoke(ctx, hook, args...))
}

// Implementations reports who is registered for the named hook, in the
// order dispatch would run them.
func (d *Dispatcher) Implementations(hook string) []registry.Registration {
	return d.registry.Hooks(hook)
}

func (d *Dispatcher) report(ctx context.Context, failure Failure) {
	if d.reporter == nil {
		return
	}
	d.reporter.OnFailure(ctx, failure)
}
