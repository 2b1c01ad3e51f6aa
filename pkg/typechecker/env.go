package typechecker

import "github.com/benbjohnson/immutable"

// Environment is a persistent name -> type mapping. Extend returns a new
// environment and leaves the receiver untouched, so sibling scopes never
// observe each other's bindings. The nil *Environment is empty.
type Environment struct {
	symbols *immutable.SortedMap[string, Type]
}

// NewEnvironment returns an empty environment.
func NewEnvironment() *Environment {
	return &Environment{symbols: immutable.NewSortedMap[string, Type](nil)}
}

// Extend returns a new environment with name bound to typ, shadowing any
// earlier binding of name.
func (e *Environment) Extend(name string, typ Type) *Environment {
	symbols := e.table()
	return &Environment{symbols: symbols.Set(name, typ)}
}

// Lookup returns the type bound to name.
func (e *Environment) Lookup(name string) (Type, bool) {
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

func (e *Environment) table() *immutable.SortedMap[string, Type] {
	if e == nil || e.symbols == nil {
		return immutable.NewSortedMap[string, Type](nil)
	}
	return e.symbols
}
