/*
Package binding provides a declarative way to describe hook implementations
before a dispatcher exists. A Definition pairs a function with the hook name
it answers to and the component that owns it, with both inferred from the
function itself when not given explicitly.

# Key Concepts

 1. Definition
    A single hook implementation and its metadata:
    - Hook: the extension point name (defaults to the function name)
    - Owner: the registering component (defaults to the function's package)
    - Description: human-readable documentation
    - Parameters: friendly names for the schema
    - Function: the implementation

 2. Module
    A bundle of definitions. Plugins expose one Module and hosts wire it
    with a single Apply call instead of registering functions one by one.

 3. Schema Generation
    ToNameAndSchema reflects over the function signature and produces a
    JSON schema for its parameters. Context parameters and method
    receivers are excluded because the dispatcher supplies those itself.

# Usage

Inferred names:

	// Binds to hook "shippingOptions", owner "shipping".
	package shipping

	func shippingOptions(order Order) []Option { ... }

	var Bindings = binding.Of(
		binding.Must(shippingOptions),
	)

Explicit configuration:

	def := binding.Must(quote,
		binding.Hook("checkout.total"),
		binding.Owner("pricing"),
		binding.Description("applies the partner discount"),
		binding.Parameters("total"),
	)

Wiring into a dispatcher:

	d := talon.New()
	if err := binding.Apply(d, shipping.Bindings, pricing.Bindings); err != nil {
		log.Fatal(err)
	}

Use Must only for package-level declarations where a malformed definition
is a programming error; prefer New where the function comes from outside
the process.
*/
package binding
