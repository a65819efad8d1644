package ldtest

import (
	"fmt"
	"strings"
)

// Results is the outcome of a whole test run.
type Results struct {
	Tests    []TestResult
	Failures []TestResult
	Skipped  []TestID
}

// TestResult is the outcome of one test scope.
type TestResult struct {
	TestID TestID
	Failed bool
	Errors []error
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// TestID is the full path of a test scope: one name per nesting level.
type TestID []string

func (t TestID) String() string {
	return strings.Join(t, "/")
}

func (t TestID) Plus(name string) TestID {
	return append(append(TestID(nil), t...), name)
}

// Last returns the innermost name, or "" for the root scope.
func (t TestID) Last() string {
	if len(t) == 0 {
		return ""
	}
	return t[len(t)-1]
}

type TestFailure struct {
	ID  TestID
	Err error
}

func (f TestFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}
