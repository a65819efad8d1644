package matchers

import (
	"fmt"
	"reflect"
)

// HaveLen is a matcher for anything that reflect can measure (slice, array, map, string, channel).
func HaveLen(length int) Matcher {
	return New(
		func(value interface{}) bool {
			n, ok := lengthOf(value)
			return ok && n == length
		},
		func(DescribeValueFunc) string { return fmt.Sprintf("have length %d", length) },
	)
}

// ItemsInAnyOrder is a matcher for a slice value. It tests that the slice contains the same number of
// elements as the number of parameters, and that each parameter is a matcher that matches one item in
// the slice.
//
//	s := []int{6,2}
//	matchers.ItemsInAnyOrder(matchers.Equal(2), matchers.Equal(6)).Test(s) // pass
func ItemsInAnyOrder(matchers ...Matcher) Matcher {
	return New(
		func(value interface{}) bool {
			v := reflect.ValueOf(value)
			if v.Kind() != reflect.Slice || v.Len() != len(matchers) {
				return false
			}
			for _, m := range matchers {
				found := false
				for j := 0; j < v.Len() && !found; j++ {
					found = m.test(v.Index(j).Interface())
				}
				if !found {
					return false
				}
			}
			return true
		},
		func(DescribeValueFunc) string {
			return "contain in any order: " + describeMatcherPhrases(matchers)
		},
	).WithFailureDescription(func(value interface{}, desc DescribeValueFunc) string {
		v := reflect.ValueOf(value)
		if v.Kind() != reflect.Slice {
			return "a slice"
		}
		if v.Len() != len(matchers) {
			return fmt.Sprintf("should have %d item(s) (had %d)", len(matchers), v.Len())
		}
		return "contain in any order: " + describeMatcherPhrases(matchers)
	})
}

func describeMatcherPhrases(matchers []Matcher) string {
	s := ""
	for i, m := range matchers {
		if i > 0 {
			s += ", "
		}
		s += "(" + m.Describe() + ")"
	}
	return s
}

func lengthOf(value interface{}) (int, bool) {
	if value == nil {
		return 0, false
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.String, reflect.Chan:
		return v.Len(), true
	default:
		return 0, false
	}
}
