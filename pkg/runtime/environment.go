// Package runtime holds minilang's runtime values and value environments.
package runtime

import (
	"fmt"

	"github.com/benbjohnson/immutable"
)

// Environment provides lexical scoping for runtime values. It is persistent:
// Extend builds a new environment sharing structure with the receiver, which
// is never modified. Closures keep their definition-time environment this way
// without copying it. The nil *Environment is empty.
type Environment struct {
	values *immutable.SortedMap[string, Value]
}

// NewEnvironment returns an empty environment.
func NewEnvironment() *Environment {
	return &Environment{values: immutable.NewSortedMap[string, Value](nil)}
}

// Extend returns a new environment with name bound to value, shadowing any
// earlier binding of name.
func (e *Environment) Extend(name string, value Value) *Environment {
	return &Environment{values: e.table().Set(name, value)}
}

// Get retrieves a binding.
func (e *Environment) Get(name string) (Value, error) {
	if v, ok := e.table().Get(name); ok {
		return v, nil
	}
	return nil, fmt.Errorf("%s not bound", name)
}

// Lookup is Get without an error.
func (e *Environment) Lookup(name string) (Value, bool) {
	return e.table().Get(name)
}

// Len returns the number of visible bindings.
func (e *Environment) Len() int {
	return e.table().Len()
}

// Names returns the bound names in sorted order.
func (e *Environment) Names() []string {
	names := make([]string, 0, e.Len())
	itr := e.table().Iterator()
	for !itr.Done() {
		name, _, _ := itr.Next()
		names = append(names, name)
	}
	return names
}

func (e *Environment) table() *immutable.SortedMap[string, Value] {
	if e == nil || e.values == nil {
		return immutable.NewSortedMap[string, Value](nil)
	}
	return e.values
}
