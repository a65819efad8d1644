package bdd

import (
	"errors"

	"github.com/kcsujeet/bdd-lazy-var-next/framework/ldtest"
)

var errDefinitionAfterRun = errors.New("bdd: suites, tests and hooks cannot be added while tests are running")

const (
	pendingReason    = "pending"
	notFocusedReason = "not focused"
)

// Runner owns a suite tree. The zero value is not usable; call New.
type Runner struct {
	root     *Suite
	current  *Suite
	hasFocus bool
	running  bool
}

// New creates a Runner with an empty root suite.
func New() *Runner {
	root := &Suite{}
	return &Runner{root: root, current: root}
}

// Root returns the root suite. Hooks added to it apply to every test.
func (r *Runner) Root() *Suite { return r.root }

// CurrentSuite returns the suite whose Describe body is being executed, or the root suite
// outside of any Describe body.
func (r *Runner) CurrentSuite() *Suite { return r.current }

// Describe adds a nested suite and immediately runs its body, so that anything the body declares
// is attached to the new suite.
func (r *Runner) Describe(title string, body func()) {
	r.describe(title, body, false, false)
}

// Context is an alias for Describe.
func (r *Runner) Context(title string, body func()) {
	r.describe(title, body, false, false)
}

// XDescribe adds a pending suite. Its body still runs, but none of its tests do.
func (r *Runner) XDescribe(title string, body func()) {
	r.describe(title, body, true, false)
}

// FDescribe adds a focused suite. Once anything is focused, only focused tests run.
func (r *Runner) FDescribe(title string, body func()) {
	r.describe(title, body, false, true)
}

func (r *Runner) describe(title string, body func(), pending, focused bool) {
	r.checkDefining()
	s := &Suite{title: title, parent: r.current, pending: pending, focused: focused}
	r.current.children = append(r.current.children, s)
	if focused {
		r.hasFocus = true
	}
	previous := r.current
	r.current = s
	defer func() { r.current = previous }()
	if body != nil {
		body()
	}
}

// It adds a test to the current suite. A nil body makes the test pending.
func (r *Runner) It(title string, body TestFunc) {
	r.it(title, body, body == nil, false)
}

// XIt adds a pending test.
func (r *Runner) XIt(title string, body TestFunc) {
	r.it(title, body, true, false)
}

// FIt adds a focused test.
func (r *Runner) FIt(title string, body TestFunc) {
	r.it(title, body, body == nil, true)
}

func (r *Runner) it(title string, body TestFunc, pending, focused bool) {
	r.checkDefining()
	r.current.children = append(r.current.children,
		&spec{title: title, suite: r.current, body: body, pending: pending, focused: focused})
	if focused {
		r.hasFocus = true
	}
}

// BeforeAll adds a BeforeAll hook to the current suite.
func (r *Runner) BeforeAll(fn HookFunc) {
	r.checkDefining()
	r.current.BeforeAll(fn)
}

// AfterAll adds an AfterAll hook to the current suite.
func (r *Runner) AfterAll(fn HookFunc) {
	r.checkDefining()
	r.current.AfterAll(fn)
}

// BeforeEach adds a BeforeEach hook to the current suite.
func (r *Runner) BeforeEach(fn HookFunc) {
	r.checkDefining()
	r.current.BeforeEach(fn)
}

// AfterEach adds an AfterEach hook to the current suite.
func (r *Runner) AfterEach(fn HookFunc) {
	r.checkDefining()
	r.current.AfterEach(fn)
}

func (r *Runner) checkDefining() {
	if r.running {
		panic(errDefinitionAfterRun)
	}
}

// Run executes the whole tree inside the given scope. Each suite becomes a subtest of its
// parent's scope and each test a subtest of its suite's scope; the root suite's own hooks run in
// t itself.
func (r *Runner) Run(t *ldtest.T) {
	r.running = true
	defer func() { r.running = false }()
	r.runSuite(t, r.root)
}

// RunAll is a shortcut for calling Run inside ldtest.Run.
func (r *Runner) RunAll(config ldtest.TestConfiguration) ldtest.Results {
	return ldtest.Run(config, r.Run)
}

func (r *Runner) runSuite(t *ldtest.T, s *Suite) {
	active := r.hasRunnableSpecs(s)
	if active {
		t.Defer(func() {
			for _, h := range s.afterAll {
				h(t)
			}
		})
		for _, h := range s.beforeAll {
			h(t)
		}
	}
	for _, child := range s.children {
		switch c := child.(type) {
		case *Suite:
			t.Run(c.title, func(t *ldtest.T) { r.runSuite(t, c) })
		case *spec:
			t.Run(c.title, func(t *ldtest.T) { r.runSpec(t, c) })
		}
	}
}

func (r *Runner) runSpec(t *ldtest.T, sp *spec) {
	if reason := r.skipReason(sp); reason != "" {
		t.SkipWithReason(reason)
	}
	chain := sp.suite.chain()
	// Deferred in reverse, so that they execute innermost suite first and in registration order
	// within a suite. Each hook is its own cleanup, so one failing hook does not stop the rest.
	for _, s := range chain {
		for i := len(s.afterEach) - 1; i >= 0; i-- {
			h := s.afterEach[i]
			t.Defer(func() { h(t) })
		}
	}
	for _, s := range chain {
		for _, h := range s.beforeEach {
			h(t)
		}
	}
	sp.body(t)
}

func (r *Runner) skipReason(sp *spec) string {
	if sp.pending || sp.body == nil || sp.suite.isPending() {
		return pendingReason
	}
	if r.hasFocus && !sp.focused && !sp.suite.isFocused() {
		return notFocusedReason
	}
	return ""
}

func (r *Runner) hasRunnableSpecs(s *Suite) bool {
	for _, child := range s.children {
		switch c := child.(type) {
		case *Suite:
			if r.hasRunnableSpecs(c) {
				return true
			}
		case *spec:
			if r.skipReason(c) == "" {
				return true
			}
		}
	}
	return false
}
