package lazyvar

import (
	"errors"

	"github.com/kcsujeet/bdd-lazy-var-next/framework"
)

// DescribeFunc is the shape of a host's describe function once bound to a runner.
type DescribeFunc func(title string, body func())

// Host connects a SuiteTracker to a test framework.
//
// Before and After are called while a suite is being defined, before and after its body runs.
// They must register hooks with the host so that, at run time, RegisterSuite is called when the
// suite starts, CleanUpCurrentContext after each of its tests, and
// CleanUpCurrentAndRestorePrevContext when the suite ends.
type Host interface {
	// Parent returns the structural parent of suite, or an untyped nil for the root suite.
	Parent(suite Suite) Suite
	Before(tracker *SuiteTracker, suite Suite)
	After(tracker *SuiteTracker, suite Suite)
}

// TrackerConfig contains the options for NewSuiteTracker.
type TrackerConfig struct {
	// RootSuite is the host's top-level suite. It is the initial defining suite and the bottom of
	// the run-time context stack.
	RootSuite Suite

	// Host is required.
	Host Host

	// DebugLogger, if set, receives a line for every suite registration and cleanup.
	DebugLogger framework.Logger

	// FragileTracking disables restoring the defining suite when a suite body panics. This is
	// only useful for reproducing the behavior of older trackers.
	FragileTracking bool
}

// SuiteTracker knows which suite is being defined and which suites are running, and ties the two
// to the Registry that stores the variables.
type SuiteTracker struct {
	registry              *Registry
	host                  Host
	logger                framework.Logger
	fragile               bool
	currentlyDefinedSuite Suite
	contexts              []Suite
}

// NewSuiteTracker creates a SuiteTracker with an empty Registry.
func NewSuiteTracker(config TrackerConfig) (*SuiteTracker, error) {
	if config.Host == nil {
		return nil, errors.New("lazyvar: a suite tracker requires a Host")
	}
	logger := config.DebugLogger
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &SuiteTracker{
		registry:              NewRegistry(),
		host:                  config.Host,
		logger:                logger,
		fragile:               config.FragileTracking,
		currentlyDefinedSuite: config.RootSuite,
		contexts:              []Suite{config.RootSuite},
	}, nil
}

// Registry returns the tracker's Registry.
func (t *SuiteTracker) Registry() *Registry { return t.registry }

// CurrentContext returns the innermost running suite, or nil if there is none.
func (t *SuiteTracker) CurrentContext() Suite {
	if len(t.contexts) == 0 {
		return nil
	}
	return t.contexts[len(t.contexts)-1]
}

// CurrentlyDefinedSuite returns the suite whose body is being executed.
func (t *SuiteTracker) CurrentlyDefinedSuite() Suite { return t.currentlyDefinedSuite }

// WrapSuite decorates a host describe function so that every suite it creates is tracked.
// currentSuite must return the host's suite object while the body of that suite is running.
func (t *SuiteTracker) WrapSuite(describe DescribeFunc, currentSuite func() Suite) DescribeFunc {
	return func(title string, body func()) {
		describe(title, func() {
			t.TrackSuite(currentSuite(), body)
		})
	}
}

// TrackSuite runs the body of suite with suite as the defining suite, linking its Metadata to
// the parent's and letting the Host register the run-time hooks.
func (t *SuiteTracker) TrackSuite(suite Suite, defineTests func()) {
	previous := t.currentlyDefinedSuite

	t.defineMetaFor(suite)
	t.currentlyDefinedSuite = suite
	if t.fragile {
		t.execute(defineTests, suite)
		t.currentlyDefinedSuite = previous
		return
	}
	defer func() { t.currentlyDefinedSuite = previous }()
	t.execute(defineTests, suite)
}

func (t *SuiteTracker) defineMetaFor(suite Suite) {
	meta := t.registry.EnsureDefinedOn(suite)
	if parentMeta := t.registry.Of(t.host.Parent(suite)); parentMeta != nil {
		parentMeta.AddChild(meta)
	}
}

func (t *SuiteTracker) execute(defineTests func(), suite Suite) {
	t.host.Before(t, suite)
	if defineTests != nil {
		defineTests()
	}
	if t.registry.Of(suite) != nil {
		t.host.After(t, suite)
	}
}

// IsRoot reports whether suite is the root suite or a direct child of it.
func (t *SuiteTracker) IsRoot(suite Suite) bool {
	parent := t.host.Parent(suite)
	return parent == nil || t.host.Parent(parent) == nil
}

// RegisterSuite pushes a suite that has started running.
func (t *SuiteTracker) RegisterSuite(context Suite) {
	t.logger.Printf("lazyvar: entering %v", context)
	t.contexts = append(t.contexts, context)
}

// CleanUp releases the cached values of one suite.
func (t *SuiteTracker) CleanUp(context Suite) {
	if m := t.registry.Of(context); m != nil {
		m.ReleaseVars()
	}
}

// CleanUpCurrentContext releases the cached values of the innermost running suite.
func (t *SuiteTracker) CleanUpCurrentContext() {
	t.CleanUp(t.CurrentContext())
}

// CleanUpCurrentAndRestorePrevContext releases the cached values of the innermost running suite
// and pops it.
func (t *SuiteTracker) CleanUpCurrentAndRestorePrevContext() {
	t.CleanUpCurrentContext()
	if len(t.contexts) != 0 {
		t.logger.Printf("lazyvar: leaving %v", t.CurrentContext())
		t.contexts = t.contexts[:len(t.contexts)-1]
	}
}

// CleanUpChain releases the cached values of suite and all of its ancestors.
func (t *SuiteTracker) CleanUpChain(suite Suite) {
	for current := suite; current != nil; current = t.host.Parent(current) {
		t.CleanUp(current)
	}
}
