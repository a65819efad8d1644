// Package matchers provides a flexible test assertion API similar to Java's Hamcrest. Matchers are
// constructed separately from the values being tested, and can then be applied to any value, or
// negated, or combined in various ways.
//
// Every Matcher can describe itself without a value (see Matcher.Describe). The lazy variable
// layer uses that description to generate test titles such as "is expected to equal 3".
package matchers

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFunc is a function used in defining a new Matcher. It returns true if the value passes
// the test or false for failure.
type TestFunc func(value interface{}) bool

// DescribeFunc is a function used in defining a new Matcher. It returns a verb phrase describing
// the expectation, such as "equal 3". The parameter is the function to use for making a string
// description of any value mentioned in the phrase.
type DescribeFunc func(describeValue DescribeValueFunc) string

// DescribeFailureFunc can optionally be added to a Matcher with WithFailureDescription. Given the
// value that was tested, and assuming that the test failed, it returns a descriptive string. If
// there is none, the Matcher's DescribeFunc is used.
type DescribeFailureFunc func(value interface{}, describeValue DescribeValueFunc) string

// DescribeValueFunc is a function that can optionally be added to a Matcher. It returns a
// string description of the value. If you don't provide one, the default logic is
// DefaultDescription.
type DescribeValueFunc func(value interface{}) string

// Matcher is a general mechanism for declaring expectations about a value. Expectations can be combined,
// and they self-describe on failure.
type Matcher struct {
	maybeTest            TestFunc
	maybeDescribe        DescribeFunc
	maybeDescribeFailure DescribeFailureFunc
	maybeDescribeValue   DescribeValueFunc
}

// New creates a Matcher.
func New(test TestFunc, describe DescribeFunc) Matcher {
	return Matcher{maybeTest: test, maybeDescribe: describe}
}

// Test executes the expectation for a specific value. It returns true if the value passes the
// test or false for failure, plus a string describing the expectation that failed.
func (m Matcher) Test(value interface{}) (pass bool, failDescription string) {
	if m.test(value) {
		return true, ""
	}
	return false, fmt.Sprintf("expected: %s\nactual value was: %s",
		m.describeFailure(value), m.describeValue(value))
}

// Describe returns the expectation as a verb phrase, without reference to any tested value.
func (m Matcher) Describe() string {
	if m.maybeDescribe == nil {
		return "no test description given"
	}
	return m.maybeDescribe(m.describeValue)
}

func (m Matcher) test(value interface{}) bool {
	if m.maybeTest == nil {
		return true
	}
	return m.maybeTest(value)
}

func (m Matcher) describeFailure(value interface{}) string {
	if m.maybeDescribeFailure != nil {
		return m.maybeDescribeFailure(value, m.describeValue)
	}
	return m.Describe()
}

func (m Matcher) describeValue(value interface{}) string {
	if m.maybeDescribeValue != nil {
		return m.maybeDescribeValue(value)
	}
	return DefaultDescription(value)
}

// Assert is for use with the testify/assert package (or any API with a compatible interface). It
// tests a value and, on failure, calls assert.Fail with the appropriate message.
func (m Matcher) Assert(t assert.TestingT, value interface{}) bool {
	if pass, desc := m.Test(value); !pass {
		assert.Fail(t, desc)
		return false
	}
	return true
}

// Require is for use with the testify/require package (or any API with a compatible interface). It
// tests a value and, on failure, calls require.Fail with the appropriate message.
func (m Matcher) Require(t require.TestingT, value interface{}) bool {
	if pass, desc := m.Test(value); !pass {
		require.Fail(t, desc)
		return false
	}
	return true
}

// AssertThat is a shortcut for matcher.Assert(t, value).
func AssertThat(t assert.TestingT, value interface{}, matcher Matcher) bool {
	return matcher.Assert(t, value)
}

// RequireThat is a shortcut for matcher.Require(t, value).
func RequireThat(t require.TestingT, value interface{}, matcher Matcher) {
	matcher.Require(t, value)
}

// EnsureType adds type safety to a matcher. The valueOfType parameter should be any value of the
// expected type. The returned Matcher will guarantee that the value is of that type before calling
// the original test function, so it is safe for the test function to cast the value.
func (m Matcher) EnsureType(valueOfType interface{}) Matcher {
	if valueOfType == nil {
		return m
	}
	wrongType := func(value interface{}) bool {
		return reflect.TypeOf(value) != reflect.TypeOf(valueOfType)
	}
	ret := m
	ret.maybeTest = func(value interface{}) bool {
		return !wrongType(value) && m.test(value)
	}
	ret.maybeDescribeFailure = func(value interface{}, desc DescribeValueFunc) string {
		if wrongType(value) {
			return fmt.Sprintf("value of type %T, was %T", valueOfType, value)
		}
		return m.describeFailure(value)
	}
	return ret
}

// WithValueDescription adds custom behavior for rendering the input value as a string in
// failure messages. If not specified, the default behavior is DefaultDescription. Another
// useful behavior is JSONDescription.
func (m Matcher) WithValueDescription(describeValue DescribeValueFunc) Matcher {
	ret := m
	ret.maybeDescribeValue = describeValue
	return ret
}

// WithFailureDescription adds a value-specific failure description, for matchers that can say
// more about a failure than their general description.
func (m Matcher) WithFailureDescription(describeFailure DescribeFailureFunc) Matcher {
	ret := m
	ret.maybeDescribeFailure = describeFailure
	return ret
}

// DefaultDescription is the default behavior for rendering an input value as a string in
// failure messages. It checks whether the value implements the fmt.Stringer interface, and
// if so, calls its String method. If not, it calls fmt.Sprintf with the "%+v" format.
func DefaultDescription(value interface{}) string {
	if s, ok := value.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%+v", value)
}

// JSONDescription is an optional behavior that can be passed to WithValueDescription. It
// renders the input value by calling JSON.Marshal on it.
func JSONDescription(value interface{}) string {
	data, _ := json.Marshal(value)
	return string(data)
}
