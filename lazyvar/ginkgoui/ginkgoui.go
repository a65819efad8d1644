// Package ginkgoui binds lazy variables to Ginkgo v2.
//
// Ginkgo has no BeforeAll outside Ordered containers, so suites are tracked per spec. The UI
// remembers the innermost tracked container of every spec it registers. A top-level BeforeEach
// added by New looks the running spec up, releases the values cached in its chain of suites and
// registers the whole chain as the current context, outermost first, before any container's
// BeforeEach runs. Deferred cleanups run after AfterEach nodes, so AfterEach bodies still see the
// values cached by the spec.
//
// Create the UI at the top level of a test package, before RunSpecs and before any other
// top-level BeforeEach:
//
//	var ui = ginkgoui.MustNew(ginkgoui.Config{})
//
//	var _ = ui.Describe("cart", func() {
//		ui.Subject(func() any { return NewCart() })
//		ui.It("is empty", func() { Expect(ui.Subject().(*Cart).Items).To(BeEmpty()) })
//	})
package ginkgoui

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"

	"github.com/kcsujeet/bdd-lazy-var-next/framework"
	"github.com/kcsujeet/bdd-lazy-var-next/lazyvar"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/ginkgo/v2/types"
)

// Suite stands in for a Ginkgo container, which Ginkgo does not expose as an object.
type Suite struct {
	title    string
	location types.CodeLocation
	parent   *Suite
}

// Title returns the container text.
func (s *Suite) Title() string { return s.title }

// Parent returns the enclosing container, or nil for the root.
func (s *Suite) Parent() *Suite { return s.parent }

// chain returns the tracked containers from the outermost one down to s, without the root.
func (s *Suite) chain() []*Suite {
	var ret []*Suite
	for current := s; current.parent != nil; current = current.parent {
		ret = append([]*Suite{current}, ret...)
	}
	return ret
}

func (s *Suite) String() string {
	if s.parent == nil {
		return "<root>"
	}
	if s.parent.parent == nil {
		return s.title
	}
	return s.parent.String() + " " + s.title
}

// Config contains tracker settings for New.
type Config struct {
	DebugLogger     framework.Logger
	FragileTracking bool
}

// UI is the test author's view: Ginkgo's container and subject functions, tracked for lazy
// variables, plus everything from lazyvar.Interface.
type UI struct {
	*lazyvar.Interface
	root  *Suite
	specs map[specKey][]*Suite
}

// specKey identifies a spec the way Ginkgo reports it while the spec runs.
type specKey struct {
	location types.CodeLocation
	text     string
}

type host struct{}

func (host) Parent(suite lazyvar.Suite) lazyvar.Suite {
	if parent := suite.(*Suite).parent; parent != nil {
		return parent
	}
	return nil
}

// Contexts are registered per spec by the UI, so containers need no hooks of their own.
func (host) Before(*lazyvar.SuiteTracker, lazyvar.Suite) {}
func (host) After(*lazyvar.SuiteTracker, lazyvar.Suite)  {}

// New creates a UI. It adds a top-level BeforeEach, so it must be called outside any container
// and before RunSpecs, typically to initialize a package variable.
func New(config Config, options ...lazyvar.Option) (*UI, error) {
	root := &Suite{}
	tracker, err := lazyvar.NewSuiteTracker(lazyvar.TrackerConfig{
		RootSuite:       root,
		Host:            host{},
		DebugLogger:     config.DebugLogger,
		FragileTracking: config.FragileTracking,
	})
	if err != nil {
		return nil, err
	}
	tracker.Registry().EnsureDefinedOn(root)

	u := &UI{root: root, specs: make(map[specKey][]*Suite)}
	u.Interface, err = lazyvar.NewInterface(tracker, func(title string, body func()) { u.Describe(title, body) }, options...)
	if err != nil {
		return nil, err
	}

	ginkgo.BeforeEach(func() {
		suite, err := u.suiteOf(ginkgo.CurrentSpecReport())
		if err != nil {
			ginkgo.Fail(err.Error())
		}
		chain := suite.chain()
		tracker.CleanUpChain(suite)
		for _, s := range chain {
			tracker.RegisterSuite(s)
		}
		ginkgo.DeferCleanup(func() {
			for range chain {
				tracker.CleanUpCurrentAndRestorePrevContext()
			}
			tracker.CleanUp(root)
		})
	})
	return u, nil
}

// suiteOf returns the innermost tracked container of a running spec, or the root for a spec
// that was not registered through the UI.
func (u *UI) suiteOf(report ginkgo.SpecReport) (*Suite, error) {
	candidates := u.specs[specKey{location: report.LeafNodeLocation, text: report.LeafNodeText}]
	if len(candidates) == 1 {
		return candidates[0], nil
	}
	var found []*Suite
	for _, suite := range candidates {
		if containedIn(suite.chain(), report.ContainerHierarchyLocations, report.ContainerHierarchyTexts) {
			found = append(found, suite)
		}
	}
	switch len(found) {
	case 0:
		if len(candidates) == 0 {
			return u.root, nil
		}
		return nil, fmt.Errorf("lazyvar: cannot find the suite of spec %q", report.FullText())
	case 1:
		return found[0], nil
	default:
		return nil, fmt.Errorf("lazyvar: spec %q is registered more than once with the same text at %s;"+
			" give the specs distinct texts", report.FullText(), report.LeafNodeLocation)
	}
}

// containedIn reports whether the tracked chain appears, in order, among a spec's containers.
// Containers created directly with Ginkgo are interleaved with tracked ones.
func containedIn(chain []*Suite, locations []types.CodeLocation, texts []string) bool {
	i := 0
	for j := range locations {
		if i < len(chain) && chain[i].location == locations[j] && chain[i].title == texts[j] {
			i++
		}
	}
	return i == len(chain)
}

var ownPackages = map[string]bool{ //nolint:gochecknoglobals
	reflect.TypeOf(Suite{}).PkgPath():               true,
	reflect.TypeOf(lazyvar.Expectation{}).PkgPath(): true,
}

// callerLocation returns the location of the first caller outside the lazyvar packages, so that
// Ginkgo reports containers and specs where the test author wrote them.
func callerLocation() types.CodeLocation {
	pc := make([]uintptr, 40)
	frames := runtime.CallersFrames(pc[:runtime.Callers(2, pc)])
	for {
		frame, more := frames.Next()
		if !ownPackages[packageOf(frame.Function)] {
			return types.CodeLocation{FileName: frame.File, LineNumber: frame.Line}
		}
		if !more {
			return types.CodeLocation{}
		}
	}
}

func packageOf(function string) string {
	slash := strings.LastIndex(function, "/")
	if dot := strings.Index(function[slash+1:], "."); dot >= 0 {
		return function[:slash+1+dot]
	}
	return function
}

// MustNew is like New but panics on error.
func MustNew(config Config, options ...lazyvar.Option) *UI {
	u, err := New(config, options...)
	if err != nil {
		panic(err)
	}
	return u
}

// Root returns the placeholder for the top level of the spec tree.
func (u *UI) Root() *Suite { return u.root }

// track replaces the container body in args with one that tracks a new Suite.
func (u *UI) track(text string, args []interface{}) []interface{} {
	tracker := u.Tracker()
	parent := u.currentSuite()
	location := callerLocation()
	ret := make([]interface{}, 0, len(args)+1)
	for _, arg := range args {
		if body, ok := arg.(func()); ok {
			arg = func() {
				tracker.TrackSuite(&Suite{title: text, location: location, parent: parent}, body)
			}
		}
		ret = append(ret, arg)
	}
	return append(ret, location)
}

func (u *UI) currentSuite() *Suite {
	if suite, ok := u.Tracker().CurrentlyDefinedSuite().(*Suite); ok {
		return suite
	}
	return u.root
}

// Describe is ginkgo.Describe for a tracked container.
func (u *UI) Describe(text string, args ...interface{}) bool {
	return ginkgo.Describe(text, u.track(text, args)...)
}

// Context is ginkgo.Context for a tracked container.
func (u *UI) Context(text string, args ...interface{}) bool {
	return ginkgo.Context(text, u.track(text, args)...)
}

// When is ginkgo.When for a tracked container. As in Ginkgo, the container text starts with
// "when ".
func (u *UI) When(text string, args ...interface{}) bool {
	text = "when " + text
	return ginkgo.Describe(text, u.track(text, args)...)
}

// FDescribe is ginkgo.FDescribe for a tracked container.
func (u *UI) FDescribe(text string, args ...interface{}) bool {
	return ginkgo.FDescribe(text, u.track(text, args)...)
}

// XDescribe is ginkgo.XDescribe for a tracked container. Its body still runs when the tree is
// built, so its definitions are tracked.
func (u *UI) XDescribe(text string, args ...interface{}) bool {
	return ginkgo.XDescribe(text, u.track(text, args)...)
}

type specFunc func(text string, args ...interface{}) bool

// It adds a spec. The body is a func(), a func(ginkgo.GinkgoTInterface) or a
// lazyvar.Expectation; with an Expectation the text may be empty. Decorators are passed to
// Ginkgo unchanged.
func (u *UI) It(text string, body any, decorators ...interface{}) bool {
	return u.spec(ginkgo.It, text, body, decorators)
}

// FIt is the focused form of It.
func (u *UI) FIt(text string, body any, decorators ...interface{}) bool {
	return u.spec(ginkgo.FIt, text, body, decorators)
}

// XIt is the pending form of It.
func (u *UI) XIt(text string, body any, decorators ...interface{}) bool {
	return u.spec(ginkgo.XIt, text, body, decorators)
}

// Its adds a spec about a path inside the subject. See lazyvar.WrapIts.
func (u *UI) Its(path string, expectation any, decorators ...interface{}) bool {
	var ret bool
	lazyvar.WrapIts(u.Interface, u.specBody(ginkgo.It, decorators, &ret))(path, expectation)
	return ret
}

// XIts is the pending form of Its.
func (u *UI) XIts(path string, expectation any, decorators ...interface{}) bool {
	var ret bool
	lazyvar.WrapIts(u.Interface, u.specBody(ginkgo.XIt, decorators, &ret))(path, expectation)
	return ret
}

func (u *UI) spec(fn specFunc, text string, body any, decorators []interface{}) bool {
	var ret bool
	lazyvar.WrapIt(u.Interface, u.specBody(fn, decorators, &ret))(text, body)
	return ret
}

func (u *UI) specBody(fn specFunc, decorators []interface{}, ret *bool) func(string, func(ginkgo.GinkgoTInterface)) {
	return func(title string, body func(ginkgo.GinkgoTInterface)) {
		location := callerLocation()
		key := specKey{location: location, text: title}
		u.specs[key] = append(u.specs[key], u.currentSuite())
		args := append([]interface{}{location}, decorators...)
		if body != nil {
			args = append(args, func() { body(ginkgo.GinkgoT()) })
		}
		*ret = fn(title, args...)
	}
}

// Must is a convenience for Interface.Lookup inside specs: it fails the spec instead of
// panicking when the variable cannot be evaluated.
func (u *UI) Must(name string) any {
	value, err := u.Lookup(name)
	if err != nil {
		ginkgo.Fail(fmt.Sprintf("cannot get lazy variable %q: %s", name, err), 1)
	}
	return value
}
