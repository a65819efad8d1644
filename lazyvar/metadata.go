package lazyvar

import (
	"reflect"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const sharedExamplesPrefix = "__SH_EX:"

// Suite is the host framework's representation of a suite. It is only used as an identity, so
// it must be comparable; pointers to the host's suite objects are the usual choice.
type Suite interface{}

// VariableMetadata is one definition: a literal value or a thunk, plus every name it answers to.
type VariableMetadata struct {
	value any
	owner *Metadata
	names map[string]struct{}
}

func newVariableMetadata(name string, definition any, owner *Metadata) *VariableMetadata {
	return &VariableMetadata{value: definition, owner: owner, names: map[string]struct{}{name: {}}}
}

// AddName makes the definition answer to one more name.
func (v *VariableMetadata) AddName(name string) *VariableMetadata {
	v.names[name] = struct{}{}
	return v
}

// IsNamedAs reports whether name is the definition's canonical name or one of its aliases.
func (v *VariableMetadata) IsNamedAs(name string) bool {
	_, ok := v.names[name]
	return ok
}

// Names returns all names of the definition in sorted order.
func (v *VariableMetadata) Names() []string {
	names := maps.Keys(v.names)
	slices.Sort(names)
	return names
}

// Owner returns the Metadata the definition was added to.
func (v *VariableMetadata) Owner() *Metadata { return v.owner }

// Definition returns the value or thunk as it was defined.
func (v *VariableMetadata) Definition() any { return v.value }

// Evaluate produces the variable's value. A thunk is called with no arguments; anything else is
// returned as it is.
func (v *VariableMetadata) Evaluate() any {
	return evaluateDefinition(v.value)
}

// evaluateDefinition treats any function with no parameters and exactly one result as a thunk.
// Functions of other shapes are ordinary values.
func evaluateDefinition(definition any) any {
	switch fn := definition.(type) {
	case nil:
		return nil
	case func() any:
		return fn()
	}
	rv := reflect.ValueOf(definition)
	if rv.Kind() == reflect.Func && !rv.IsNil() && rv.Type().NumIn() == 0 && rv.Type().NumOut() == 1 {
		return rv.Call(nil)[0].Interface()
	}
	return definition
}

// Metadata holds the lazy variables of one suite.
//
// Definitions are looked up through a chain: a suite's own definitions first, then those visible
// from the suite it was added to with AddChild, and so on. Adding a definition never changes what
// an ancestor sees.
type Metadata struct {
	defs      map[string]*VariableMetadata
	proto     *Metadata
	values    map[string]any
	hasValues bool
	defined   bool
	parent    *Metadata
}

func newMetadata() *Metadata {
	return &Metadata{
		defs:   make(map[string]*VariableMetadata),
		values: make(map[string]any),
	}
}

// Lookup returns the definition visible under name from this suite, or nil.
func (m *Metadata) Lookup(name string) *VariableMetadata {
	for c := m; c != nil; c = c.proto {
		if vm, ok := c.defs[name]; ok {
			return vm
		}
	}
	return nil
}

// HasOwn reports whether name was defined directly on this suite.
func (m *Metadata) HasOwn(name string) bool {
	_, ok := m.defs[name]
	return ok
}

// Defined reports whether AddVar was ever called on this Metadata.
func (m *Metadata) Defined() bool { return m.defined }

// Parent returns the nearest ancestor Metadata that has definitions of its own, or nil.
func (m *Metadata) Parent() *Metadata { return m.parent }

// VariableNames returns every variable name visible from this suite, sorted. Shared examples
// are not included.
func (m *Metadata) VariableNames() []string {
	seen := make(map[string]struct{})
	for c := m; c != nil; c = c.proto {
		for name := range c.defs {
			if !strings.HasPrefix(name, sharedExamplesPrefix) {
				seen[name] = struct{}{}
			}
		}
	}
	names := maps.Keys(seen)
	slices.Sort(names)
	return names
}

// GetVar returns the cached value of name, evaluating and caching it first if needed. The
// value is cached only once evaluation returns, so a definition that panics is evaluated
// again on the next call.
func (m *Metadata) GetVar(name string) any {
	if _, ok := m.values[name]; !ok {
		if vm := m.Lookup(name); vm != nil {
			m.hasValues = true
			m.values[name] = vm.Evaluate()
		}
	}
	return m.values[name]
}

// Evaluate produces a fresh value of name without consulting or filling the cache.
func (m *Metadata) Evaluate(name string) any {
	if vm := m.Lookup(name); vm != nil {
		return vm.Evaluate()
	}
	return nil
}

// AddChild makes the definitions of this suite visible from child.
func (m *Metadata) AddChild(child *Metadata) {
	child.proto = m
	if m.defined {
		child.parent = m
	} else {
		child.parent = m.parent
	}
}

// AddVar adds a definition. A name can only be defined once per suite.
func (m *Metadata) AddVar(name string, definition any) error {
	if m.HasOwn(name) {
		return newError(ErrDuplicateDefinition, name,
			"cannot define %q variable twice in the same suite", name)
	}
	m.defined = true
	m.defs[name] = newVariableMetadata(name, definition, m)
	return nil
}

// AddAliasFor makes alias resolve to the same definition as name.
func (m *Metadata) AddAliasFor(name, alias string) {
	if vm := m.Lookup(name); vm != nil {
		m.defs[alias] = vm.AddName(alias)
	}
}

// ReleaseVars clears the value cache.
func (m *Metadata) ReleaseVars() {
	if m.hasValues {
		m.values = make(map[string]any)
		m.hasValues = false
	}
}

// LookupMetadataFor finds the Metadata that holds the previous definition of name: the one that
// the definition visible from here overrides. It fails if no ancestor defines name.
func (m *Metadata) LookupMetadataFor(name string) (*Metadata, error) {
	vm := m.Lookup(name)
	if vm == nil || vm.owner.parent == nil || vm.owner.parent.Lookup(name) == nil {
		return nil, newError(ErrUnknownParentVariable, name, "unknown parent variable %q", name)
	}
	return vm.owner.parent, nil
}

// AddExamplesFor registers a shared example group under name.
func (m *Metadata) AddExamplesFor(name string, body func(args ...any)) error {
	if m.HasOwn(sharedExamplesPrefix + name) {
		return newError(ErrDuplicateSharedBehavior, name, "attempt to override %q shared example", name)
	}
	return m.AddVar(sharedExamplesPrefix+name, body)
}

// RunExamplesFor calls the shared example group registered under name, here or in an ancestor.
func (m *Metadata) RunExamplesFor(name string, args []any) error {
	vm := m.Lookup(sharedExamplesPrefix + name)
	if vm == nil {
		return newError(ErrUndefinedSharedBehavior, name,
			"attempt to include not defined shared behavior %q", name)
	}
	vm.value.(func(args ...any))(args...)
	return nil
}

// Registry attaches Metadata to host suites and keeps the per-suite stacks of variables that are
// being evaluated. A Registry belongs to one SuiteTracker.
type Registry struct {
	metadata map[Suite]*Metadata
	stacks   map[Suite][]*Variable
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		metadata: make(map[Suite]*Metadata),
		stacks:   make(map[Suite][]*Variable),
	}
}

// Of returns the Metadata attached to suite, or nil.
func (r *Registry) Of(suite Suite) *Metadata {
	if suite == nil {
		return nil
	}
	return r.metadata[suite]
}

// VariableOf returns the definition of name visible from suite, or nil.
func (r *Registry) VariableOf(suite Suite, name string) *VariableMetadata {
	if m := r.Of(suite); m != nil {
		return m.Lookup(name)
	}
	return nil
}

// EnsureDefinedOn returns the Metadata attached to suite, attaching a new one if there is none.
// Metadata is never inherited implicitly; linking to a parent suite is done with AddChild.
func (r *Registry) EnsureDefinedOn(suite Suite) *Metadata {
	m, ok := r.metadata[suite]
	if !ok {
		m = newMetadata()
		r.metadata[suite] = m
	}
	return m
}
