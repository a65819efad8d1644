package lazyvar

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSharedExamplesForRejectsRedefinition(t *testing.T) {
	f := newFixture(t)
	f.ui.SharedExamplesFor("__test", func(...any) {})
	err := catch(func() { f.ui.SharedExamplesFor("__test", func(...any) {}) })
	assert.True(t, errors.Is(err, ErrDuplicateSharedBehavior))
}

func TestIncludeExamplesFor(t *testing.T) {
	f := newFixture(t)
	args := []any{&struct{}{}, &struct{}{}}

	err := catch(func() { f.ui.IncludeExamplesFor("__non_existing") })
	assert.True(t, errors.Is(err, ErrUndefinedSharedBehavior))

	var called []any
	f.ui.SharedExamplesFor("__call", func(a ...any) { called = a })
	f.ui.IncludeExamplesFor("__call", args[0], args[1])
	assert.Equal(t, args, called)

	var fnCalled []any
	f.ui.IncludeExamplesFor(func(a ...any) { fnCalled = a }, args[0])
	assert.Equal(t, args[:1], fnCalled)

	plainCalled := false
	f.ui.IncludeExamplesFor(func() { plainCalled = true })
	assert.True(t, plainCalled)

	assert.Panics(t, func() { f.ui.IncludeExamplesFor(42) })
}

func TestSharedExamplesAreScopedToSuiteTree(t *testing.T) {
	f := newFixture(t)
	defined := false
	f.describe("with examples", func() {
		f.ui.SharedExamplesFor("__test__", func(...any) { defined = true })
		f.describe("nested", func() {
			f.ui.IncludeExamplesFor("__test__")
		})
	})
	var missing error
	f.describe("sibling", func() {
		missing = catch(func() { f.ui.IncludeExamplesFor("__test__") })
	})

	assert.True(t, defined)
	assert.True(t, errors.Is(missing, ErrUndefinedSharedBehavior))
}

func TestSharedExamplesDefineVariablesInIncludingSuite(t *testing.T) {
	f := newFixture(t)
	f.ui.SharedExamplesFor("named thing", func(args ...any) {
		f.ui.Def("thing", args[0])
	})
	f.describe("a", func() { f.ui.IncludeExamplesFor("named thing", "A") })
	f.describe("b", func() { f.ui.IncludeExamplesFor("named thing", "B") })

	f.inTest(func() { assert.Equal(t, "A", f.ui.Get("thing")) }, "a")
	f.inTest(func() { assert.Equal(t, "B", f.ui.Get("thing")) }, "b")
}

func myCollectionBehavior(args ...any) {}

func TestItBehavesLikeWrapsExamplesInSuite(t *testing.T) {
	f := newFixture(t)
	var received []any
	var definingSuite Suite
	f.ui.SharedExamplesFor("__Collection", func(args ...any) {
		received = args
		definingSuite = f.tracker.CurrentlyDefinedSuite()
	})

	f.ui.ItBehavesLike("__Collection", 1, 2)
	assert.Equal(t, []any{1, 2}, received)
	require.Contains(t, f.suites, "behaves like __Collection")
	assert.Same(t, f.suites["behaves like __Collection"], definingSuite)

	f.ui.ItBehavesLike(myCollectionBehavior)
	assert.Contains(t, f.suites, "behaves like my collection behavior")

	f.ui.ItBehavesLike(func(...any) {})
	assert.Contains(t, f.suites, "behaves like this")
}

func TestFunctionName(t *testing.T) {
	assert.Equal(t, "myCollectionBehavior", functionName(myCollectionBehavior))
	assert.Equal(t, "this", functionName(func() {}))
	assert.Equal(t, "this", functionName(nil))
	assert.Equal(t, "this", functionName("not a function"))

	f := newFixture(t)
	assert.Equal(t, "Get", functionName(f.ui.Get))
}
