/*
Package talon provides named extension points, called hooks, that let
independently-initialized components in one process extend each other
without depending on each other.

A component publishes implementations against a shared hook name; a caller
invokes that name once and receives the results of every implementation,
with per-implementation failures isolated and reported instead of
propagated. The package is built from three pieces:

  - Registry: an ordered, deduplicated table of hook registrations
  - Dispatcher: fan-out invocation with failure isolation and reporting
  - Aggregators: fold the collected results into a single value

# Basic Usage

Components register ordinary functions against a hook name, usually during
their own initialization:

	func ShippingOptions(region string) []string {
		return []string{"standard", "express"}
	}

	func init() {
		stdx.Must0(talon.Register("checkout.shipping-options", ShippingOptions, "shipping"))
	}

Callers invoke the hook without knowing who registered for it:

	options := talon.Invoke(ctx, "checkout.shipping-options", "EU")

	fees, err := talon.InvokeAggregate(ctx, "checkout.fees", aggregate.Sum, order)

# Architecture

The package is built around a few core files and subpackages:

1. Dispatcher (dispatcher.go)
  - Snapshots the registrations, then runs them in registration order
  - Recovers per-implementation errors and panics
  - Hands failures to a Reporter and keeps going

2. Callable adaptation (call.go)
  - Fills parameters positionally from the invocation arguments
  - Injects context.Context parameters from the invocation context
  - Extracts the first non-error return value as the result

3. Failure reporting (failure.go, reporter.go)
  - Failure carries hook, owner, error, invocation id and timestamp
  - LoggingReporter writes failures to slog; CompositeReporter fans out

4. Registry (registry package)
  - Ordered registrations, deduplicated by owner and callable identity
  - Copy-on-read snapshots guarded by an RWMutex

5. Aggregators (aggregate package)
  - Sum, Flatten, MergeMap, FirstNonEmpty and CollectAll built-ins
  - A name registry so call sites can pick an aggregator at runtime

6. Bindings (binding package)
  - Builds registrations from functions with inferred hook name and owner
  - Bundles a component's registrations into modules

# Thread Safety

The package is designed to be thread-safe when used correctly:
  - Registration and invocation may happen concurrently from any goroutine
  - Implementations run sequentially on the goroutine that invoked the hook
  - An implementation registering mid-invocation affects later invocations only

For more information about specific components, see their respective
documentation:
  - registry.Registry for storage semantics
  - aggregate.Func for writing custom aggregators
  - binding.Definition for registration sugar
*/
package talon
