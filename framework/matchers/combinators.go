package matchers

import (
	"fmt"
	"strings"
)

// Not negates the result of another Matcher.
//
//	matchers.Not(Equal(3)).Assert(t, 3)
//	// failure message will describe expectation as "not (equal 3)"
func Not(matcher Matcher) Matcher {
	return New(
		func(value interface{}) bool {
			return !matcher.test(value)
		},
		func(DescribeValueFunc) string {
			return "not " + matcher.Describe()
		},
	).WithFailureDescription(func(value interface{}, desc DescribeValueFunc) string {
		return fmt.Sprintf("not (%s)", matcher.Describe())
	}).WithValueDescription(matcher.describeValue)
}

// AllOf requires that the input value passes all of the specified Matchers. If it fails,
// the failure message describes all of the Matchers that failed.
func AllOf(matchers ...Matcher) Matcher {
	return combine(matchers, " and ", func(passed, total int) bool { return passed == total })
}

// AnyOf requires that the input value does not fail any of the specified Matchers. If it fails,
// the failure message describes all of the Matchers that failed.
func AnyOf(matchers ...Matcher) Matcher {
	return combine(matchers, " or ", func(passed, total int) bool { return passed > 0 || total == 0 })
}

func combine(matchers []Matcher, separator string, ok func(passed, total int) bool) Matcher {
	var describeValueFn DescribeValueFunc
	if len(matchers) != 0 {
		describeValueFn = matchers[0].describeValue
	}
	return New(
		func(value interface{}) bool {
			passed := 0
			for _, m := range matchers {
				if m.test(value) {
					passed++
				}
			}
			return ok(passed, len(matchers))
		},
		func(DescribeValueFunc) string {
			parts := make([]string, 0, len(matchers))
			for _, m := range matchers {
				parts = append(parts, m.Describe())
			}
			return strings.Join(parts, separator)
		},
	).WithFailureDescription(func(value interface{}, desc DescribeValueFunc) string {
		var fails []Matcher
		for _, m := range matchers {
			if !m.test(value) {
				fails = append(fails, m)
			}
		}
		return describeMatchersList(fails, value, separator)
	}).WithValueDescription(describeValueFn)
}

func describeMatchersList(matchers []Matcher, value interface{}, separator string) string {
	if len(matchers) == 1 {
		return matchers[0].describeFailure(value)
	}
	parts := make([]string, 0, len(matchers))
	for _, m := range matchers {
		parts = append(parts, "("+m.describeFailure(value)+")")
	}
	return strings.Join(parts, separator)
}
