package lazyvar

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"runtime"
	"strings"

	"github.com/kcsujeet/bdd-lazy-var-next/framework/helpers"
)

const subjectName = "subject"

// Interface is the API used by test code. Definitions (Def, Subject, SharedExamplesFor) apply to
// the suite currently being defined; Get and Subject with no arguments evaluate in the innermost
// running suite.
//
// Misuse is reported by panicking with an *Error, the same way a host's own describe functions
// report misuse. Lookup is the non-panicking form of Get.
type Interface struct {
	tracker  *SuiteTracker
	describe DescribeFunc
	options  Options
	getters  *Properties
}

// NewInterface creates an Interface. The describe function is used by ItBehavesLike to create
// its wrapping suite, so it should be the tracked version returned by SuiteTracker.WrapSuite or
// an equivalent.
func NewInterface(tracker *SuiteTracker, describe DescribeFunc, options ...Option) (*Interface, error) {
	if tracker == nil {
		return nil, errors.New("lazyvar: an Interface requires a SuiteTracker")
	}
	if describe == nil {
		return nil, errors.New("lazyvar: an Interface requires a describe function")
	}
	ui := &Interface{tracker: tracker, describe: describe, getters: NewProperties()}
	if err := helpers.ApplyOptions(&ui.options, options...); err != nil {
		return nil, err
	}
	return ui, nil
}

// Tracker returns the SuiteTracker the Interface was created with.
func (ui *Interface) Tracker() *SuiteTracker { return ui.tracker }

// Getters returns the property table used by the getter dialect.
func (ui *Interface) Getters() *Properties { return ui.getters }

// Get returns the value of a lazy variable, evaluating it if this is the first access in the
// current test. It returns nil for a name that has no definition.
func (ui *Interface) Get(name string) any {
	value, err := ui.evaluate(name)
	if err != nil {
		panic(err)
	}
	return value
}

// Lookup is like Get, but returns errors from this package instead of panicking, including
// errors raised by Get calls inside the variable's definition. Other panics propagate.
func (ui *Interface) Lookup(name string) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			var lazyErr *Error
			if e, ok := r.(error); ok && errors.As(e, &lazyErr) {
				value, err = nil, lazyErr
				return
			}
			panic(r)
		}
	}()
	return ui.evaluate(name)
}

func (ui *Interface) evaluate(name string) (any, error) {
	return ui.tracker.registry.Evaluate(name, ui.tracker.CurrentContext())
}

// Variable returns a function that calls Get(name) each time it is called.
func (ui *Interface) Variable(name string) func() any {
	return func() any { return ui.Get(name) }
}

// DefinitionOf is another name for Variable.
func (ui *Interface) DefinitionOf(name string) func() any {
	return ui.Variable(name)
}

// Def defines a lazy variable on the suite being defined. The definition is either a value or a
// thunk: any function that takes no parameters and returns one value. A thunk is called on the
// first Get in each test and its result is cached until the test ends.
func (ui *Interface) Def(name string, definition any) {
	suite := ui.tracker.CurrentlyDefinedSuite()
	if err := ui.tracker.registry.EnsureDefinedOn(suite).AddVar(name, definition); err != nil {
		panic(err)
	}
	ui.runDefineHook(suite, name)
}

// DefAliases defines a lazy variable under several names. The first name is the canonical one.
func (ui *Interface) DefAliases(names []string, definition any) {
	if len(names) == 0 {
		panic(errors.New("lazyvar: DefAliases requires at least one name"))
	}
	name, aliases := names[0], names[1:]
	ui.Def(name, definition)

	suite := ui.tracker.CurrentlyDefinedSuite()
	meta := ui.tracker.registry.Of(suite)
	for _, alias := range aliases {
		meta.AddAliasFor(name, alias)
		ui.runDefineHook(suite, alias)
	}
}

func (ui *Interface) runDefineHook(suite Suite, name string) {
	if ui.options.OnDefineVariable == nil {
		return
	}
	if err := ui.options.OnDefineVariable(suite, name, ui); err != nil {
		panic(err)
	}
}

// Subject has three forms:
//
//	ui.Subject()                 // returns the value of "subject"
//	ui.Subject(definition)       // defines "subject"
//	ui.Subject(name, definition) // defines name, with "subject" as an alias
func (ui *Interface) Subject(args ...any) any {
	switch len(args) {
	case 0:
		return ui.Get(subjectName)
	case 1:
		ui.Def(subjectName, args[0])
	case 2:
		name, ok := args[0].(string)
		if !ok {
			panic(fmt.Errorf("lazyvar: subject name must be a string, not %T", args[0]))
		}
		ui.DefAliases([]string{name, subjectName}, args[1])
	default:
		panic(fmt.Errorf("lazyvar: Subject takes at most 2 arguments, got %d", len(args)))
	}
	return nil
}

// SharedExamplesFor registers a reusable group of definitions under name. It is visible from the
// suite being defined and its descendants.
func (ui *Interface) SharedExamplesFor(name string, body func(args ...any)) {
	meta := ui.tracker.registry.EnsureDefinedOn(ui.tracker.CurrentlyDefinedSuite())
	if err := meta.AddExamplesFor(name, body); err != nil {
		panic(err)
	}
}

// IncludeExamplesFor runs a shared example group in the suite being defined. nameOrFn is either
// the name of a group registered with SharedExamplesFor, or a function (func(...any) or func())
// which is called directly.
func (ui *Interface) IncludeExamplesFor(nameOrFn any, args ...any) {
	meta := ui.tracker.registry.EnsureDefinedOn(ui.tracker.CurrentlyDefinedSuite())
	switch x := nameOrFn.(type) {
	case string:
		if err := meta.RunExamplesFor(x, args); err != nil {
			panic(err)
		}
	case func(args ...any):
		x(args...)
	case func():
		x()
	default:
		panic(fmt.Errorf("lazyvar: cannot include examples from a %T", nameOrFn))
	}
}

// ItBehavesLike includes a shared example group inside a new suite titled "behaves like X",
// where X is the group name, or the humanized name of the function for a function.
func (ui *Interface) ItBehavesLike(nameOrFn any, args ...any) {
	title, ok := nameOrFn.(string)
	if !ok {
		title = Humanize(functionName(nameOrFn))
	}
	ui.describe("behaves like "+title, func() {
		ui.IncludeExamplesFor(nameOrFn, args...)
	})
}

var anonymousFuncName = regexp.MustCompile(`^(func)?\d+$`)

// functionName returns the declared name of fn, or "this" for an anonymous function.
func functionName(fn any) string {
	rv := reflect.ValueOf(fn)
	if rv.Kind() != reflect.Func || rv.IsNil() {
		return "this"
	}
	f := runtime.FuncForPC(rv.Pointer())
	if f == nil {
		return "this"
	}
	name := f.Name()
	name = name[strings.LastIndex(name, "/")+1:]
	name = strings.TrimSuffix(name[strings.LastIndex(name, ".")+1:], "-fm")
	if name == "" || anonymousFuncName.MatchString(name) {
		return "this"
	}
	return name
}
