package lazyvar

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ignoreDescribe(string, func()) {}

func TestNewInterfaceRequiresTracker(t *testing.T) {
	_, err := NewInterface(nil, ignoreDescribe)
	assert.Error(t, err)
}

func TestNewInterfaceRequiresDescribe(t *testing.T) {
	tracker, err := NewSuiteTracker(TrackerConfig{Host: &fakeHost{}})
	require.NoError(t, err)
	_, err = NewInterface(tracker, nil)
	assert.EqualError(t, err, "lazyvar: an Interface requires a describe function")
}

func TestDefinitionIsEvaluatedOncePerTest(t *testing.T) {
	f := newFixture(t)
	calls := 0
	f.ui.Def("x", func() any {
		calls++
		return calls
	})

	f.inTest(func() {})
	assert.Equal(t, 0, calls)

	f.inTest(func() {
		assert.Equal(t, 1, f.ui.Get("x"))
		assert.Equal(t, 1, f.ui.Get("x"))
	})
	f.inTest(func() {
		assert.Equal(t, 2, f.ui.Get("x"))
	})
	assert.Equal(t, 2, calls)
}

func TestStaticDefinitionAndMissingName(t *testing.T) {
	f := newFixture(t)
	value := &struct{}{}
	f.ui.Def("static", value)

	f.inTest(func() {
		assert.Same(t, value, f.ui.Get("static"))
		assert.Nil(t, f.ui.Get("notDefined"))
	})
}

func TestChildSuiteFallsBackToParentDefinition(t *testing.T) {
	f := newFixture(t)
	ui := f.ui
	ui.Def("firstName", "John")
	ui.Def("lastName", "Doe")
	ui.Def("fullName", func() any { return ui.Get("firstName").(string) + " " + ui.Get("lastName").(string) })
	f.describe("nested", func() {
		ui.Def("lastName", "Smith")
	})

	f.inTest(func() { assert.Equal(t, "John Smith", ui.Get("fullName")) }, "nested")
	f.inTest(func() { assert.Equal(t, "John Doe", ui.Get("fullName")) })
}

func TestDefTwiceInSameSuitePanics(t *testing.T) {
	f := newFixture(t)
	f.ui.Def("x", 1)
	err := catch(func() { f.ui.Def("x", 2) })
	assert.True(t, errors.Is(err, ErrDuplicateDefinition))

	f.describe("child", func() {
		assert.NoError(t, catch(func() { f.ui.Def("x", 3) }))
	})
	f.inTest(func() { assert.Equal(t, 3, f.ui.Get("x")) }, "child")
}

func TestGetBeforeAnySuiteIsActive(t *testing.T) {
	host := &fakeHost{}
	tracker, err := NewSuiteTracker(TrackerConfig{Host: host})
	require.NoError(t, err)
	ui, err := NewInterface(tracker, ignoreDescribe)
	require.NoError(t, err)

	err = catch(func() { ui.Get("x") })
	assert.True(t, errors.Is(err, ErrPrematureEvaluation))

	_, err = ui.Lookup("x")
	assert.True(t, errors.Is(err, ErrPrematureEvaluation))
}

func TestLookupLetsOtherPanicsThrough(t *testing.T) {
	f := newFixture(t)
	f.ui.Def("boom", func() any { panic("boom") })
	assert.PanicsWithValue(t, "boom", func() { _, _ = f.ui.Lookup("boom") })
}

func TestVariableBuilder(t *testing.T) {
	f := newFixture(t)
	f.ui.Def("static", "value")

	f.inTest(func() {
		assert.Equal(t, "value", f.ui.Variable("static")())
		assert.Equal(t, "value", f.ui.DefinitionOf("static")())
	})
}

func TestAliases(t *testing.T) {
	f := newFixture(t)
	calls := 0
	f.ui.DefAliases([]string{"a", "b"}, func() any {
		calls++
		return calls
	})
	f.ui.DefAliases([]string{"c", "d"}, "static")

	f.inTest(func() {
		assert.Equal(t, f.ui.Get("c"), f.ui.Get("d"))
		assert.Equal(t, 1, f.ui.Get("a"))
		assert.Equal(t, 1, f.ui.Get("a"))
		assert.Equal(t, 2, f.ui.Get("b"))
	})
	assert.Panics(t, func() { f.ui.DefAliases(nil, 1) })
}

func TestSubjectForms(t *testing.T) {
	f := newFixture(t)
	ui := f.ui
	f.describe("anonymous", func() {
		ui.Subject(func() any { return []int{1} })
	})
	f.describe("named", func() {
		ui.Subject("named", "value")
		f.describe("nested", func() {
			ui.Subject("nested", "nested value")
		})
	})

	f.inTest(func() { assert.Equal(t, []int{1}, ui.Subject()) }, "anonymous")
	f.inTest(func() {
		assert.Equal(t, "value", ui.Get("subject"))
		assert.Equal(t, "value", ui.Get("named"))
	}, "named")
	f.inTest(func() {
		assert.Equal(t, "nested value", ui.Subject())
		assert.Equal(t, "value", ui.Get("named"))
	}, "named", "nested")

	assert.Panics(t, func() { ui.Subject(1, 2) })
	assert.Panics(t, func() { ui.Subject("a", 1, 2) })
}

func TestSubjectIsSharedBetweenParentAndChildAfterEach(t *testing.T) {
	f := newFixture(t)
	ui := f.ui
	f.describe("outer", func() {
		ui.Subject(func() any { return &struct{}{} })
		f.describe("parent suite", func() {
			f.describe("child suite", func() {})
		})
	})

	f.inTest(func() {
		inChild := ui.Subject()
		// an AfterEach hook of "parent suite" runs while "child suite" is still current
		assert.Same(t, inChild, ui.Subject())
	}, "outer", "parent suite", "child suite")
}

func TestReferencingChildVariableFromParentDefinition(t *testing.T) {
	f := newFixture(t)
	ui := f.ui
	f.describe("referencing", func() {
		ui.Def("model", func() any { return map[string]any{"value": ui.Get("value")} })
		f.describe("nested", func() {
			ui.Subject(func() any { return ui.Get("model").(map[string]any)["value"] })
			f.describe("defines value", func() {
				ui.Def("value", func() any { return map[string]int{"x": 5} })
				ui.Subject(func() any { return ui.Get("subject").(map[string]int)["x"] })
			})
		})
	})

	f.inTest(func() { assert.Equal(t, 5, ui.Subject()) }, "referencing", "nested", "defines value")
}

func TestParentVariableAccessedTwiceInsideChildDefinition(t *testing.T) {
	type thing struct {
		IsParent bool
		Name     string
	}
	f := newFixture(t)
	ui := f.ui
	f.describe("parent", func() {
		ui.Subject(func() any { return thing{IsParent: true, Name: "test"} })
		f.describe("child", func() {
			ui.Subject(func() any {
				return thing{
					IsParent: !ui.Subject().(thing).IsParent,
					Name:     ui.Subject().(thing).Name + " child",
				}
			})
		})
	})

	f.inTest(func() {
		assert.Equal(t, thing{IsParent: false, Name: "test child"}, ui.Subject())
	}, "parent", "child")
}

func TestParentDefinitionSeesRedefinedDependency(t *testing.T) {
	f := newFixture(t)
	ui := f.ui
	f.describe("calls", func() {
		ui.Subject(func() any { return map[string]any{"isRoot": ui.Get("isRoot")} })
		ui.Def("isRoot", true)
		f.describe("overrides", func() {
			ui.Subject(func() any { return ui.Get("subject").(map[string]any)["isRoot"] })
			f.describe("redefines", func() {
				ui.Def("isRoot", false)
			})
			f.describe("inherits", func() {})
		})
	})

	f.inTest(func() { assert.Equal(t, false, ui.Subject()) }, "calls", "overrides", "redefines")
	f.inTest(func() { assert.Equal(t, true, ui.Subject()) }, "calls", "overrides", "inherits")
}

func TestOnDefineVariableHook(t *testing.T) {
	var seen []string
	f := newFixture(t, OnDefineVariable(func(suite Suite, name string, ui *Interface) error {
		seen = append(seen, suite.(*fakeSuite).name+":"+name)
		return nil
	}))
	f.ui.Def("a", 1)
	f.describe("s", func() {
		f.ui.Subject("named", 2)
	})
	assert.Equal(t, []string{"root:a", "s:named", "s:subject"}, seen)
}

func TestOnDefineVariableHookErrorPanics(t *testing.T) {
	hookErr := errors.New("no")
	f := newFixture(t, OnDefineVariable(func(Suite, string, *Interface) error { return hookErr }))
	assert.Equal(t, hookErr, catch(func() { f.ui.Def("a", 1) }))
}
