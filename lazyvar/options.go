package lazyvar

import (
	"errors"

	"github.com/kcsujeet/bdd-lazy-var-next/framework/helpers"
)

// Options configures an Interface.
type Options struct {
	// OnDefineVariable is called for every name and alias added with Def or Subject.
	OnDefineVariable func(suite Suite, name string, ui *Interface) error
}

// Option is a functional option for NewInterface.
type Option = helpers.ConfigOption[Options]

// OnDefineVariable sets Options.OnDefineVariable.
func OnDefineVariable(fn func(suite Suite, name string, ui *Interface) error) Option {
	return helpers.ConfigOptionFunc[Options](func(o *Options) error {
		o.OnDefineVariable = fn
		return nil
	})
}

// WithGetterDialect exposes every variable as a property of Interface.Getters, so that
// ui.Getters().Get("name") is the same as ui.Get("name").
func WithGetterDialect() Option {
	return OnDefineVariable(func(_ Suite, name string, ui *Interface) error {
		return DefineGetter(ui, name, DefineGetterOptions{DefineOn: ui.Getters()})
	})
}

// WithGlobalDialect exposes every variable as a "$"-prefixed property of a shared table.
func WithGlobalDialect(global *Properties) Option {
	return helpers.ConfigOptionFunc[Options](func(o *Options) error {
		if global == nil {
			return errors.New("lazyvar: the global dialect requires a Properties table")
		}
		o.OnDefineVariable = func(_ Suite, name string, ui *Interface) error {
			return DefineGetter(ui, name, DefineGetterOptions{GetterPrefix: "$", DefineOn: global})
		}
		return nil
	})
}
