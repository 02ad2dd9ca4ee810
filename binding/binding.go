package binding

import (
	"context"
	"fmt"
	"reflect"

	"github.com/fogfish/opts"
	"github.com/invopop/jsonschema"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/casualjim/talon/pkg/reflectx"
	"github.com/casualjim/talon/pkg/stdx"
)

// Registrar accepts hook registrations. *talon.Dispatcher satisfies it, as
// does any other sink that wants to collect bindings.
type Registrar interface {
	Register(hook string, callable any, owner string) error
}

// Definition describes one hook implementation declaratively: which hook it
// answers to, which component owns it, and the function that runs when the
// hook fires. Definitions are inert until handed to a Registrar.
type Definition struct {
	Hook        string
	Owner       string
	Description string
	Parameters  map[string]string
	Function    any
}

// Apply registers the definition's function with r under its hook name and
// owner. Owner derivation for an empty owner is left to the registrar.
func (d Definition) Apply(r Registrar) error {
	return r.Register(d.Hook, d.Function, d.Owner)
}

var definitionReflector = jsonschema.Reflector{
	AllowAdditionalProperties: true,
	DoNotReference:            true,
}

// ToNameAndSchema returns the definition's hook name together with a JSON
// schema describing the function's parameters. Context parameters and the
// receiver of a method expression are not part of the callable surface and
// are left out of the schema.
func (d Definition) ToNameAndSchema() (string, *jsonschema.Schema) {
	return definitionJSON(&definitionReflector, d)
}

var ctxType = reflect.TypeFor[context.Context]()

func definitionJSON(reflector *jsonschema.Reflector, d Definition) (string, *jsonschema.Schema) {
	name := d.Hook
	if name == "" {
		name = reflectx.FunctionName(d.Function)
	}

	schema := &jsonschema.Schema{
		Type:       "object",
		Properties: orderedmap.New[string, *jsonschema.Schema](),
	}

	typ := reflect.TypeOf(d.Function)
	if typ == nil || typ.Kind() != reflect.Func {
		return name, schema
	}

	startIdx := 0
	if reflectx.IsStructMethod(d.Function) {
		startIdx = 1
	}

	var required []string
	argIdx := 0
	for i := startIdx; i < typ.NumIn(); i++ {
		paramType := typ.In(i)
		if paramType == ctxType {
			continue
		}

		paramName := fmt.Sprintf("param%d", argIdx)
		argIdx++
		if p, ok := d.Parameters[paramName]; ok {
			paramName = p
		}

		propSchema := reflector.ReflectFromType(paramType)
		propSchema.Version = ""
		schema.Properties.Set(paramName, propSchema)
		required = append(required, paramName)
	}
	if len(required) > 0 {
		schema.Required = required
	}

	return name, schema
}

// Option configures a Definition during construction.
type Option = opts.Option[Definition]

// Hook sets the hook name the definition responds to. Without it the
// function's own name is used, so a func named "shippingOptions" binds to
// the "shippingOptions" hook.
var Hook = opts.ForName[Definition, string]("Hook")

// Owner sets the component name the registration is attributed to. Without
// it the function's package name is used.
var Owner = opts.ForName[Definition, string]("Owner")

// Description attaches human-readable documentation to the definition. It
// is carried for tooling and has no effect on dispatch.
var Description = opts.ForName[Definition, string]("Description")

// Parameters names the function's parameters in declaration order. The
// names replace the generated "paramN" keys in the schema produced by
// ToNameAndSchema.
func Parameters(parameters ...string) Option {
	return opts.Type[Definition](func(o *Definition) error {
		o.Parameters = make(map[string]string, len(parameters))
		for i, p := range parameters {
			o.Parameters[fmt.Sprintf("param%d", i)] = p
		}
		return nil
	})
}

// New creates a Definition from the provided function and options. The hook
// name defaults to the function's name and the owner to its package, which
// keeps the common case down to binding.New(shippingOptions).
func New(f any, options ...Option) (Definition, error) {
	if !reflectx.IsFunction(f) {
		return Definition{}, fmt.Errorf("provided value is not a function")
	}

	var def Definition
	if err := opts.Apply(&def, options); err != nil {
		return Definition{}, err
	}
	if def.Hook == "" {
		def.Hook = reflectx.FunctionName(f)
	}
	if def.Owner == "" {
		def.Owner = reflectx.FunctionPackage(f)
	}

	def.Function = f
	return def, nil
}

// Must is New with errors turned into panics. Use it for package-level
// variable declarations where a bad definition is a programming error.
func Must(f any, options ...Option) Definition {
	return stdx.Must1(New(f, options...))
}
