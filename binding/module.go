package binding

import "slices"

// Module is a named bundle of hook definitions. A plugin implements it once
// and hands its entire hook surface to a dispatcher in a single Apply call.
type Module interface {
	Bindings() []Definition
}

type definitionList []Definition

func (m definitionList) Bindings() []Definition {
	return slices.Clone(m)
}

// Of bundles a fixed set of definitions into a Module.
func Of(defs ...Definition) Module {
	return definitionList(defs)
}

// Apply registers every binding of every module with r, in module order and
// then declaration order. It stops at the first registration error.
func Apply(r Registrar, modules ...Module) error {
	for m := range slices.Values(modules) {
		for def := range slices.Values(m.Bindings()) {
			if err := def.Apply(r); err != nil {
				return err
			}
		}
	}
	return nil
}
