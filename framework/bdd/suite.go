package bdd

import (
	"strings"

	"github.com/kcsujeet/bdd-lazy-var-next/framework/ldtest"
)

// HookFunc is the signature of BeforeAll, AfterAll, BeforeEach and AfterEach hooks. The test
// scope is the suite's scope for the "all" hooks and the current test's scope for the "each" hooks.
type HookFunc func(t *ldtest.T)

// TestFunc is the body of a test.
type TestFunc func(t *ldtest.T)

// Suite is one node of the suite tree. Its identity is stable for the lifetime of the Runner,
// so it can be used as a map key by code that attaches state to suites.
type Suite struct {
	title    string
	parent   *Suite
	children []node
	pending  bool
	focused  bool

	beforeAll  []HookFunc
	afterAll   []HookFunc
	beforeEach []HookFunc
	afterEach  []HookFunc
}

type node interface {
	isNode()
}

type spec struct {
	title   string
	suite   *Suite
	body    TestFunc
	pending bool
	focused bool
}

func (s *Suite) isNode() {}
func (s *spec) isNode()  {}

// Title returns the suite's own title. The root suite's title is empty.
func (s *Suite) Title() string { return s.title }

// Parent returns the enclosing suite, or nil for the root suite.
func (s *Suite) Parent() *Suite { return s.parent }

// IsRoot is true only for the Runner's root suite.
func (s *Suite) IsRoot() bool { return s.parent == nil }

// FullTitle returns the titles of all enclosing suites, outermost first, ending with this one.
func (s *Suite) FullTitle() []string {
	if s.parent == nil {
		return nil
	}
	return append(s.parent.FullTitle(), s.title)
}

func (s *Suite) String() string {
	if s.parent == nil {
		return "<root>"
	}
	return strings.Join(s.FullTitle(), " ")
}

// BeforeAll adds a hook that runs once before the first test of the suite.
func (s *Suite) BeforeAll(fn HookFunc) { s.beforeAll = append(s.beforeAll, fn) }

// AfterAll adds a hook that runs once after the last test of the suite.
func (s *Suite) AfterAll(fn HookFunc) { s.afterAll = append(s.afterAll, fn) }

// BeforeEach adds a hook that runs before every test in the suite, including nested suites.
func (s *Suite) BeforeEach(fn HookFunc) { s.beforeEach = append(s.beforeEach, fn) }

// AfterEach adds a hook that runs after every test in the suite, including nested suites.
func (s *Suite) AfterEach(fn HookFunc) { s.afterEach = append(s.afterEach, fn) }

func (s *Suite) isPending() bool {
	for c := s; c != nil; c = c.parent {
		if c.pending {
			return true
		}
	}
	return false
}

func (s *Suite) isFocused() bool {
	for c := s; c != nil; c = c.parent {
		if c.focused {
			return true
		}
	}
	return false
}

// chain returns the suite and its ancestors, outermost first.
func (s *Suite) chain() []*Suite {
	if s == nil {
		return nil
	}
	return append(s.parent.chain(), s)
}
