package lazyvar

import (
	"fmt"
	"reflect"

	"github.com/kcsujeet/bdd-lazy-var-next/framework/matchers"

	"github.com/jmespath/go-jmespath"
	"github.com/stretchr/testify/assert"
)

const itsPrefix = "its:"

// Expectation is a test body that checks the subject, or a path inside it, against matchers.
// Because it is data rather than code, a test title can be generated from it.
type Expectation struct {
	path     string
	matchers []matchers.Matcher
}

// IsExpected creates an Expectation about the subject.
func IsExpected(ms ...matchers.Matcher) Expectation {
	return Expectation{matchers: ms}
}

// Title describes the Expectation, for instance "is expected to equal 3" or, for a path,
// "name is expected to equal "x"".
func (e Expectation) Title() string {
	phrases := make([]string, 0, len(e.matchers))
	for _, m := range e.matchers {
		phrases = append(phrases, "to "+m.Describe())
	}
	message := ParseMessage(phrases...)
	if e.path == "" {
		return message
	}
	if message == "" {
		return e.path
	}
	return e.path + " " + message
}

// Verify evaluates the subject (or the path inside it) and asserts every matcher against it.
func (ui *Interface) Verify(t assert.TestingT, e Expectation) bool {
	var value any
	if e.path == "" {
		value = ui.Subject()
	} else {
		value = ui.Get(itsPrefix + e.path)
	}
	ok := true
	for _, m := range e.matchers {
		if !matchers.AssertThat(t, value, m) {
			ok = false
		}
	}
	return ok
}

// WrapIt decorates a host's it function. The returned function accepts a func(T), a func() or an
// Expectation as the body; with an Expectation and an empty title, the title is generated from
// the Expectation. A nil body is passed through as a nil func(T).
func WrapIt[T assert.TestingT](ui *Interface, it func(title string, body func(T))) func(title string, body any) {
	return func(title string, body any) {
		switch b := body.(type) {
		case Expectation:
			if title == "" {
				title = b.Title()
			}
			it(title, func(t T) { ui.Verify(t, b) })
		case func(T):
			it(title, b)
		case func():
			it(title, func(T) { b() })
		case nil:
			it(title, nil)
		default:
			it(title, convertTestBody[T](body))
		}
	}
}

// convertTestBody accepts named function types such as a host's TestFunc.
func convertTestBody[T assert.TestingT](body any) func(T) {
	target := reflect.TypeOf((func(T))(nil))
	rv := reflect.ValueOf(body)
	if rv.Kind() != reflect.Func || !rv.Type().ConvertibleTo(target) {
		panic(fmt.Errorf("lazyvar: unsupported test body %T", body))
	}
	return rv.Convert(target).Interface().(func(T))
}

// WrapIts builds an "its" function on top of a host's it function: its(path, expectation)
// defines an implicit variable holding the value at path inside the subject, and adds a test
// asserting the expectation against that value. The path is a JMESPath expression, so
// "Address.City" reads a nested struct field or map entry. The expectation is a
// matchers.Matcher or an Expectation created with IsExpected.
func WrapIts[T assert.TestingT](ui *Interface, it func(title string, body func(T))) func(path string, expectation any) {
	wrapped := WrapIt(ui, it)
	return func(path string, expectation any) {
		var e Expectation
		switch x := expectation.(type) {
		case matchers.Matcher:
			e = IsExpected(x)
		case Expectation:
			e = x
		default:
			panic(fmt.Errorf("lazyvar: its expects a matcher or an Expectation, not %T", expectation))
		}
		ui.defineIts(path)
		e.path = path
		wrapped("", e)
	}
}

func (ui *Interface) defineIts(path string) {
	expr, err := jmespath.Compile(path)
	if err != nil {
		panic(fmt.Errorf("lazyvar: invalid its path %q: %w", path, err))
	}
	meta := ui.tracker.registry.EnsureDefinedOn(ui.tracker.CurrentlyDefinedSuite())
	if meta.HasOwn(itsPrefix + path) {
		return
	}
	err = meta.AddVar(itsPrefix+path, func() any {
		value, err := expr.Search(ui.Subject())
		if err != nil {
			panic(fmt.Errorf("lazyvar: cannot resolve %q in subject: %w", path, err))
		}
		return value
	})
	if err != nil {
		panic(err)
	}
}
