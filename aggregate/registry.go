package aggregate

import (
	"github.com/casualjim/talon/internal/registry"
)

// Global is the process-wide aggregator registry. The built-ins are
// pre-registered under "sum", "flatten", "merge-map", "first-non-empty"
// and "collect-all".
var Global = registry.New[Func]()

func init() {
	Register("sum", Sum)
	Register("flatten", Flatten)
	Register("merge-map", MergeMap)
	Register("first-non-empty", FirstNonEmpty)
	Register("collect-all", CollectAll)
}

// Register makes fn available for lookup under the given name.
// Registering an existing name replaces the previous aggregator.
func Register(name string, fn Func) {
	Global.Add(name, fn)
}

// Lookup returns the aggregator registered under name.
func Lookup(name string) (Func, bool) {
	return Global.Get(name)
}

// Del removes the aggregator registered under name.
func Del(name string) {
	Global.Del(name)
}

// Names returns the names of all registered aggregators in sorted order.
func Names() []string {
	return Global.Keys()
}
