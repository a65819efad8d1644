package bddui

import (
	"testing"

	"github.com/kcsujeet/bdd-lazy-var-next/framework"
	"github.com/kcsujeet/bdd-lazy-var-next/framework/bdd"
	"github.com/kcsujeet/bdd-lazy-var-next/framework/ldtest"
	"github.com/kcsujeet/bdd-lazy-var-next/framework/matchers"
	"github.com/kcsujeet/bdd-lazy-var-next/lazyvar"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUI(t *testing.T, config Config, options ...lazyvar.Option) *UI {
	ui, err := New(bdd.New(), config, options...)
	require.NoError(t, err)
	return ui
}

func requireOK(t *testing.T, results ldtest.Results) {
	for _, f := range results.Failures {
		t.Errorf("%s: %v", f.TestID, f.Errors)
	}
	require.True(t, results.OK())
}

func TestValuesAreCachedPerTest(t *testing.T) {
	ui := newUI(t, Config{})
	var index int
	var seen []any

	ui.Describe("suite", func() {
		ui.Def("value", func() any {
			index++
			return index
		})
		ui.AfterEach(func(*ldtest.T) {
			seen = append(seen, ui.Get("value"))
		})
		ui.It("first", func(t *ldtest.T) {
			assert.Equal(t, 1, ui.Get("value"))
			assert.Equal(t, 1, ui.Get("value"))
		})
		ui.It("second", func(t *ldtest.T) {
			assert.Equal(t, 2, ui.Get("value"))
		})
	})

	requireOK(t, ui.RunAll(ldtest.TestConfiguration{}))
	assert.Equal(t, []any{1, 2}, seen)
}

func TestValuesCachedInBeforeAllAreReleasedBeforeFirstTest(t *testing.T) {
	ui := newUI(t, Config{})
	var index int
	var inBeforeAll, inTest any

	ui.Describe("suite", func() {
		ui.Def("value", func() any {
			index++
			return index
		})
		ui.BeforeAll(func(*ldtest.T) {
			inBeforeAll = ui.Get("value")
		})
		ui.It("test", func() {
			inTest = ui.Get("value")
		})
	})

	requireOK(t, ui.RunAll(ldtest.TestConfiguration{}))
	assert.Equal(t, 1, inBeforeAll)
	assert.Equal(t, 2, inTest)
}

func TestContextFollowsRunningSuites(t *testing.T) {
	ui := newUI(t, Config{})
	var contexts []string
	record := func(*ldtest.T) {
		contexts = append(contexts, ui.Tracker().CurrentContext().(*bdd.Suite).String())
	}

	ui.Describe("a", func() {
		ui.BeforeEach(record)
		ui.Describe("b", func() {
			ui.It("test", record)
		})
		ui.AfterAll(record)
	})
	ui.It("root test", record)

	requireOK(t, ui.RunAll(ldtest.TestConfiguration{}))
	assert.Equal(t, []string{"a b", "a b", "a", "<root>"}, contexts)
}

func TestDebugLoggerTracesSuites(t *testing.T) {
	logger := &framework.CapturingLogger{}
	ui := newUI(t, Config{DebugLogger: logger})

	ui.Describe("a", func() {
		ui.It("test", func() {})
	})

	requireOK(t, ui.RunAll(ldtest.TestConfiguration{}))
	output := logger.Output()
	require.Len(t, output, 2)
	assert.Equal(t, "lazyvar: entering a", output[0].Message)
	assert.Equal(t, "lazyvar: leaving a", output[1].Message)
}

func TestSuitesWithoutRunnableTestsAreNotRegistered(t *testing.T) {
	logger := &framework.CapturingLogger{}
	ui := newUI(t, Config{DebugLogger: logger})
	var value any

	ui.XDescribe("skipped", func() {
		ui.Def("value", 1)
		ui.It("test", func() { value = ui.Get("value") })
	})

	results := ui.RunAll(ldtest.TestConfiguration{})
	requireOK(t, results)
	assert.Equal(t, []ldtest.TestID{{"skipped", "test"}}, results.Skipped)
	assert.Nil(t, value)
	assert.Empty(t, logger.Output())
}

func TestFocusedTests(t *testing.T) {
	ui := newUI(t, Config{})
	var ran []string

	ui.Describe("a", func() {
		ui.Def("name", "a")
		ui.FIt("focused", func() { ran = append(ran, ui.Get("name").(string)) })
		ui.It("not focused", func() { ran = append(ran, "unexpected") })
	})
	ui.FDescribe("b", func() {
		ui.Def("name", "b")
		ui.It("in focused suite", func() { ran = append(ran, ui.Get("name").(string)) })
	})

	requireOK(t, ui.RunAll(ldtest.TestConfiguration{}))
	assert.Equal(t, []string{"a", "b"}, ran)
}

func TestItWithExpectation(t *testing.T) {
	ui := newUI(t, Config{})

	ui.Describe("user", func() {
		ui.Subject(map[string]interface{}{"name": "John", "roles": []interface{}{"admin"}})

		ui.It("", lazyvar.IsExpected(matchers.Not(matchers.BeNil())))
		ui.Its("name", matchers.Equal("John"))
		ui.Its("roles", lazyvar.IsExpected(matchers.HaveLen(1)))
		ui.XIts("missing", matchers.Equal("never checked"))
	})

	results := ui.RunAll(ldtest.TestConfiguration{})
	requireOK(t, results)
	var ids []string
	for _, r := range results.Tests {
		ids = append(ids, r.TestID.String())
	}
	assert.Contains(t, ids, "user/is expected to not be nil")
	assert.Contains(t, ids, "user/name is expected to equal John")
	assert.Contains(t, ids, "user/roles is expected to have length 1")
	assert.Equal(t, []ldtest.TestID{{"user", "missing is expected to equal never checked"}}, results.Skipped)
}

func TestFailingExpectationFailsTest(t *testing.T) {
	ui := newUI(t, Config{})

	ui.Describe("user", func() {
		ui.Subject(map[string]interface{}{"name": "John"})
		ui.Its("name", matchers.Equal("Jane"))
	})

	results := ui.RunAll(ldtest.TestConfiguration{})
	require.Len(t, results.Failures, 1)
	assert.Equal(t, ldtest.TestID{"user", "name is expected to equal Jane"}, results.Failures[0].TestID)
}

func TestItBehavesLikeCreatesTrackedSuite(t *testing.T) {
	ui := newUI(t, Config{})
	var got any

	ui.Describe("collection", func() {
		ui.SharedExamplesFor("a sized thing", func(args ...any) {
			ui.Def("size", args[0])
			ui.It("has size", func() { got = ui.Get("size") })
		})
		ui.ItBehavesLike("a sized thing", 3)
	})

	results := ui.RunAll(ldtest.TestConfiguration{})
	requireOK(t, results)
	assert.Equal(t, 3, got)
	var ids []string
	for _, r := range results.Tests {
		ids = append(ids, r.TestID.String())
	}
	assert.Contains(t, ids, "collection/behaves like a sized thing/has size")
}

func TestGetterDialect(t *testing.T) {
	ui := newUI(t, Config{}, lazyvar.WithGetterDialect())
	var got any

	ui.Describe("suite", func() {
		ui.Def("firstName", "John")
		ui.It("test", func() { got = ui.Getters().Get("firstName") })
	})

	requireOK(t, ui.RunAll(ldtest.TestConfiguration{}))
	assert.Equal(t, "John", got)
}

func TestFragileTrackingConfig(t *testing.T) {
	ui := newUI(t, Config{FragileTracking: true})

	assert.Panics(t, func() {
		ui.Describe("broken", func() { panic("oops") })
	})
	assert.NotSame(t, ui.Runner().Root(), ui.Tracker().CurrentlyDefinedSuite())

	ui = newUI(t, Config{})
	assert.Panics(t, func() {
		ui.Describe("broken", func() { panic("oops") })
	})
	assert.Same(t, ui.Runner().Root(), ui.Tracker().CurrentlyDefinedSuite())
}

func TestContextAndXContextAliases(t *testing.T) {
	ui := newUI(t, Config{})
	var ran bool

	ui.Context("ctx", func() {
		ui.Def("v", true)
		ui.It("runs", func() { ran = ui.Get("v").(bool) })
		ui.XContext("skipped", func() {
			ui.XIt("never", func() {})
		})
	})

	results := ui.RunAll(ldtest.TestConfiguration{})
	requireOK(t, results)
	assert.True(t, ran)
	assert.Len(t, results.Skipped, 1)
}
