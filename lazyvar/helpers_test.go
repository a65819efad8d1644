package lazyvar

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeSuite struct {
	name   string
	parent *fakeSuite
}

func (s *fakeSuite) String() string { return s.name }

// fakeHost records the hooks the tracker asks for instead of registering them anywhere; tests
// drive the run-time side of the tracker by hand.
type fakeHost struct {
	events []string
}

func (h *fakeHost) Parent(suite Suite) Suite {
	if s := suite.(*fakeSuite); s.parent != nil {
		return s.parent
	}
	return nil
}

func (h *fakeHost) Before(_ *SuiteTracker, suite Suite) {
	h.events = append(h.events, "before "+suite.(*fakeSuite).name)
}

func (h *fakeHost) After(_ *SuiteTracker, suite Suite) {
	h.events = append(h.events, "after "+suite.(*fakeSuite).name)
}

type fixture struct {
	root    *fakeSuite
	host    *fakeHost
	tracker *SuiteTracker
	ui      *Interface
	suites  map[string]*fakeSuite
}

func newFixture(t *testing.T, options ...Option) *fixture {
	f := &fixture{root: &fakeSuite{name: "root"}, host: &fakeHost{}, suites: make(map[string]*fakeSuite)}
	tracker, err := NewSuiteTracker(TrackerConfig{RootSuite: f.root, Host: f.host})
	require.NoError(t, err)
	f.tracker = tracker
	ui, err := NewInterface(tracker, f.describe, options...)
	require.NoError(t, err)
	f.ui = ui
	return f
}

func (f *fixture) describe(title string, body func()) {
	parent := f.tracker.CurrentlyDefinedSuite().(*fakeSuite)
	s := &fakeSuite{name: title, parent: parent}
	f.suites[title] = s
	f.tracker.TrackSuite(s, body)
}

// inTest simulates running one test inside the named suites, outermost first: each suite is
// registered, the body runs, and then the per-test and per-suite cleanups happen.
func (f *fixture) inTest(body func(), path ...string) {
	for _, name := range path {
		f.tracker.RegisterSuite(f.suites[name])
	}
	body()
	f.tracker.CleanUpCurrentContext()
	for range path {
		f.tracker.CleanUpCurrentAndRestorePrevContext()
	}
}

func catch(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = r.(error)
		}
	}()
	fn()
	return nil
}
