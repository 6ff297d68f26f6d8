package interpreter

import (
	"strings"

	"lasm/value"
)

// Environment is a named scope holding name->value bindings plus a pointer
// to its parent (spec §3). The interpreter keeps two parallel chains built
// from this same type: the variable environment (let/parameters) and the
// label environment (addresses); variables shadow labels only at the
// lookup call site, not structurally, so both chains are ordinary
// Environments.
type Environment struct {
	name   string
	parent *Environment
	values map[string]value.Value
}

// MakeEnvironment creates a fresh scope chained to parent. parent is nil
// only for the two globals (the root variable and root label environment).
func MakeEnvironment(parent *Environment) *Environment {
	return &Environment{parent: parent, values: make(map[string]value.Value)}
}

func (e *Environment) Parent() *Environment { return e.parent }

func (e *Environment) Name() string { return e.name }

// SetName implements the setScopeName built-in: it names the environment
// for symbol-qualification purposes (spec §4.4).
func (e *Environment) SetName(name string) { e.name = name }

// Define binds name directly in this environment, shadowing (but not
// disturbing) any same-named binding further up the chain.
func (e *Environment) Define(name string, v value.Value) {
	e.values[name] = v
}

// DefinedLocally reports whether name is bound in this environment
// specifically, without walking to the parent. Used by let/label to raise
// DUPLICATE_LABEL only against same-scope collisions.
func (e *Environment) DefinedLocally(name string) (value.Value, bool) {
	v, ok := e.values[name]
	return v, ok
}

// Get walks the chain from e outward, returning the first binding found.
func (e *Environment) Get(name string) (value.Value, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.values[name]; ok {
			return v, true
		}
	}
	return value.NilValue, false
}

// Assign rebinds an existing name found by walking the chain. It reports
// false if the name is undefined anywhere in the chain.
func (e *Environment) Assign(name string, v value.Value) bool {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.values[name]; ok {
			env.values[name] = v
			return true
		}
	}
	return false
}

// QualifiedName joins every ancestor's non-empty name with delim, root
// first, for the symbols writer (spec §4.5).
func (e *Environment) QualifiedName(delim string) string {
	var parts []string
	for env := e; env != nil; env = env.parent {
		if env.name != "" {
			parts = append(parts, env.name)
		}
	}
	for l, r := 0, len(parts)-1; l < r; l, r = l+1, r-1 {
		parts[l], parts[r] = parts[r], parts[l]
	}
	return strings.Join(parts, delim)
}

// Bindings returns this environment's own bindings (not its ancestors'),
// for the symbols writer to enumerate.
func (e *Environment) Bindings() map[string]value.Value { return e.values }
