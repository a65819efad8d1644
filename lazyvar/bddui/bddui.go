// Package bddui binds lazy variables to the framework/bdd test host.
//
// Every suite created through the UI registers itself as the current context in its first
// BeforeAll hook, releases values cached by its own BeforeAll hooks just before its first test,
// and pops itself in its last AfterAll hook. A root AfterEach hook releases the values cached by
// each test.
package bddui

import (
	"github.com/kcsujeet/bdd-lazy-var-next/framework"
	"github.com/kcsujeet/bdd-lazy-var-next/framework/bdd"
	"github.com/kcsujeet/bdd-lazy-var-next/framework/ldtest"
	"github.com/kcsujeet/bdd-lazy-var-next/lazyvar"
)

// Config contains tracker settings for New.
type Config struct {
	DebugLogger     framework.Logger
	FragileTracking bool
}

// UI is the test author's view: the bdd Runner's describe/it/hook functions, tracked for lazy
// variables, plus everything from lazyvar.Interface.
type UI struct {
	*lazyvar.Interface
	runner *bdd.Runner

	describe, xdescribe, fdescribe lazyvar.DescribeFunc
	it, xit, fit                   func(title string, body any)
	its, xits, fits                func(path string, expectation any)
}

type host struct{}

func (host) Parent(suite lazyvar.Suite) lazyvar.Suite {
	if parent := suite.(*bdd.Suite).Parent(); parent != nil {
		return parent
	}
	return nil
}

func (host) Before(tracker *lazyvar.SuiteTracker, suite lazyvar.Suite) {
	suite.(*bdd.Suite).BeforeAll(func(*ldtest.T) { tracker.RegisterSuite(suite) })
}

func (host) After(tracker *lazyvar.SuiteTracker, suite lazyvar.Suite) {
	s := suite.(*bdd.Suite)
	s.BeforeAll(func(*ldtest.T) { tracker.CleanUpCurrentContext() })
	s.AfterAll(func(*ldtest.T) { tracker.CleanUpCurrentAndRestorePrevContext() })
}

// New creates a UI for runner. Suites must be created through the UI, not the Runner, for their
// variables to be tracked.
func New(runner *bdd.Runner, config Config, options ...lazyvar.Option) (*UI, error) {
	tracker, err := lazyvar.NewSuiteTracker(lazyvar.TrackerConfig{
		RootSuite:       runner.Root(),
		Host:            host{},
		DebugLogger:     config.DebugLogger,
		FragileTracking: config.FragileTracking,
	})
	if err != nil {
		return nil, err
	}
	tracker.Registry().EnsureDefinedOn(runner.Root())
	currentSuite := func() lazyvar.Suite { return runner.CurrentSuite() }

	u := &UI{
		runner:    runner,
		describe:  tracker.WrapSuite(runner.Describe, currentSuite),
		xdescribe: tracker.WrapSuite(runner.XDescribe, currentSuite),
		fdescribe: tracker.WrapSuite(runner.FDescribe, currentSuite),
	}
	u.Interface, err = lazyvar.NewInterface(tracker, u.describe, options...)
	if err != nil {
		return nil, err
	}
	u.it = lazyvar.WrapIt(u.Interface, itFunc(runner.It))
	u.xit = lazyvar.WrapIt(u.Interface, itFunc(runner.XIt))
	u.fit = lazyvar.WrapIt(u.Interface, itFunc(runner.FIt))
	u.its = lazyvar.WrapIts(u.Interface, itFunc(runner.It))
	u.xits = lazyvar.WrapIts(u.Interface, itFunc(runner.XIt))
	u.fits = lazyvar.WrapIts(u.Interface, itFunc(runner.FIt))

	runner.Root().AfterEach(func(*ldtest.T) { tracker.CleanUpCurrentContext() })
	return u, nil
}

func itFunc(it func(string, bdd.TestFunc)) func(string, func(*ldtest.T)) {
	return func(title string, body func(*ldtest.T)) { it(title, body) }
}

// Runner returns the underlying Runner.
func (u *UI) Runner() *bdd.Runner { return u.runner }

func (u *UI) Describe(title string, body func())  { u.describe(title, body) }
func (u *UI) Context(title string, body func())   { u.describe(title, body) }
func (u *UI) XDescribe(title string, body func()) { u.xdescribe(title, body) }
func (u *UI) XContext(title string, body func())  { u.xdescribe(title, body) }
func (u *UI) FDescribe(title string, body func()) { u.fdescribe(title, body) }

// It adds a test. The body is a func(*ldtest.T), a func() or a lazyvar.Expectation; with an
// Expectation the title may be empty.
func (u *UI) It(title string, body any)  { u.it(title, body) }
func (u *UI) XIt(title string, body any) { u.xit(title, body) }
func (u *UI) FIt(title string, body any) { u.fit(title, body) }

// Its adds a test about a path inside the subject. See lazyvar.WrapIts.
func (u *UI) Its(path string, expectation any)  { u.its(path, expectation) }
func (u *UI) XIts(path string, expectation any) { u.xits(path, expectation) }
func (u *UI) FIts(path string, expectation any) { u.fits(path, expectation) }

func (u *UI) BeforeAll(fn bdd.HookFunc)  { u.runner.BeforeAll(fn) }
func (u *UI) AfterAll(fn bdd.HookFunc)   { u.runner.AfterAll(fn) }
func (u *UI) BeforeEach(fn bdd.HookFunc) { u.runner.BeforeEach(fn) }
func (u *UI) AfterEach(fn bdd.HookFunc)  { u.runner.AfterEach(fn) }

// Run runs all suites inside t.
func (u *UI) Run(t *ldtest.T) { u.runner.Run(t) }

// RunAll runs all suites in a new ldtest run.
func (u *UI) RunAll(config ldtest.TestConfiguration) ldtest.Results {
	return u.runner.RunAll(config)
}
