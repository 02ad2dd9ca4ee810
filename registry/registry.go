// Package registry stores hook registrations: for every hook name an
// ordered list of callables, each tagged with the component that owns it.
//
// The registry is safe for concurrent use. Writers take the write lock,
// readers get copy-on-read snapshots, so a caller can walk a result while
// other goroutines keep registering.
package registry

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"sync"

	"github.com/casualjim/talon/pkg/reflectx"
)

// Registration is a single callable bound to a hook by an owning component.
//
// Identity is the pair (Owner, callable code pointer), captured once at
// registration time. Two registrations are the same when both parts match;
// the same function registered by two owners yields two registrations.
type Registration struct {
	// Owner identifies the component that registered the callable.
	Owner string
	// Callable is the registered function value.
	Callable any

	key uintptr
}

// Registry is the hook table. The zero value is not usable, construct
// instances with New.
type Registry struct {
	mu    sync.RWMutex
	hooks map[string][]Registration
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{hooks: make(map[string][]Registration)}
}

// Register binds callable to the named hook on behalf of owner.
//
// The hook name and owner must be non-empty and callable must be a function
// value. Registering the same callable for the same hook and owner again is
// a silent no-op: the first registration wins, no error is reported and the
// table is untouched. Later invocations run callables in registration order.
func (r *Registry) Register(hook string, callable any, owner string) error {
	if hook == "" {
		return fmt.Errorf("hook name is required")
	}
	if callable == nil {
		return fmt.Errorf("hook %q: callable is required", hook)
	}
	if !reflectx.IsFunction(callable) {
		return fmt.Errorf("hook %q: callable must be a function, got %T", hook, callable)
	}
	if owner == "" {
		return fmt.Errorf("hook %q: owner is required", hook)
	}

	reg := Registration{
		Owner:    owner,
		Callable: callable,
		key:      reflect.ValueOf(callable).Pointer(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.hooks[hook] {
		if existing.Owner == reg.Owner && existing.key == reg.key {
			return nil
		}
	}

	r.hooks[hook] = append(r.hooks[hook], reg)
	return nil
}

// Hooks returns the registrations for the named hook in registration order.
// The result is a copy; mutating it does not affect the registry. Unknown
// hooks yield an empty result.
func (r *Registry) Hooks(hook string) []Registration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	regs := r.hooks[hook]
	if len(regs) == 0 {
		return nil
	}
	out := make([]Registration, len(regs))
	copy(out, regs)
	return out
}

// All returns a copy of the entire table, keyed by hook name.
func (r *Registry) All() map[string][]Registration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string][]Registration, len(r.hooks))
	for name, regs := range r.hooks {
		cp := make([]Registration, len(regs))
		copy(cp, regs)
		out[name] = cp
	}
	return out
}

// Names returns the names of all hooks that have at least one registration,
// sorted alphabetically.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.hooks))
}

// Count returns the number of registrations for the named hook.
func (r *Registry) Count(hook string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.hooks[hook])
}

// Clear removes every registration for every hook.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.hooks = make(map[string][]Registration)
}
