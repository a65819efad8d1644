package lazyvar

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Properties is a table of named values, some of which may be lazy variable accessors installed
// by DefineGetter.
type Properties struct {
	values map[string]func() any
	lazy   map[string]bool
}

// NewProperties creates an empty table.
func NewProperties() *Properties {
	return &Properties{values: make(map[string]func() any), lazy: make(map[string]bool)}
}

// Set stores a plain value under name, replacing any accessor.
func (p *Properties) Set(name string, value any) {
	p.values[name] = func() any { return value }
	delete(p.lazy, name)
}

// Has reports whether name is present.
func (p *Properties) Has(name string) bool {
	_, ok := p.values[name]
	return ok
}

// Lookup returns the value of name. For an accessor this evaluates the lazy variable.
func (p *Properties) Lookup(name string) (any, bool) {
	fn, ok := p.values[name]
	if !ok {
		return nil, false
	}
	return fn(), true
}

// Get is Lookup without the presence flag.
func (p *Properties) Get(name string) any {
	value, _ := p.Lookup(name)
	return value
}

// Names returns the property names in sorted order.
func (p *Properties) Names() []string {
	names := maps.Keys(p.values)
	slices.Sort(names)
	return names
}

// DefineGetterOptions customizes DefineGetter.
type DefineGetterOptions struct {
	// GetterPrefix is prepended to the variable name to form the property name.
	GetterPrefix string

	// DefineOn is the table that receives the accessor. It defaults to the Interface's Getters.
	DefineOn *Properties
}

// DefineGetter installs a property that evaluates the lazy variable varName of ui when read.
// Installing the same accessor twice does nothing; a property of the same name that was not
// installed by DefineGetter makes it fail with ErrContextCollision.
func DefineGetter(ui *Interface, varName string, options DefineGetterOptions) error {
	target := options.DefineOn
	if target == nil {
		target = ui.Getters()
	}
	accessorName := options.GetterPrefix + varName

	if target.lazy[accessorName] {
		return nil
	}
	if target.Has(accessorName) {
		return newError(ErrContextCollision, varName,
			"cannot create lazy variable %q as variable with the same name exists on the provided context", varName)
	}

	target.lazy[accessorName] = true
	target.values[accessorName] = func() any { return ui.Get(varName) }
	return nil
}
