package matchers

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/google/go-cmp/cmp"
)

// Equal is a matcher that tests whether the input value matches the expected value according
// to reflect.DeepEqual. When a composite value does not match, the failure message includes a
// diff of the two values.
func Equal(expectedValue interface{}) Matcher {
	return New(
		func(value interface{}) bool {
			return reflect.DeepEqual(value, expectedValue)
		},
		func(desc DescribeValueFunc) string {
			return fmt.Sprintf("equal %s", desc(expectedValue))
		},
	).WithFailureDescription(func(value interface{}, desc DescribeValueFunc) string {
		ret := fmt.Sprintf("equal %s", desc(expectedValue))
		if diff := diffOf(expectedValue, value); diff != "" {
			ret += "\ndiff (-expected +actual):\n" + strings.TrimRight(diff, "\n")
		}
		return ret
	})
}

// BeNil is a matcher that passes for nil and for typed nil pointers, maps, slices, channels,
// functions and interfaces.
func BeNil() Matcher {
	return New(
		func(value interface{}) bool {
			if value == nil {
				return true
			}
			v := reflect.ValueOf(value)
			switch v.Kind() {
			case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
				return v.IsNil()
			default:
				return false
			}
		},
		func(DescribeValueFunc) string { return "be nil" },
	)
}

// BeTrue is shorthand for Equal(true).
func BeTrue() Matcher { return Equal(true) }

// BeFalse is shorthand for Equal(false).
func BeFalse() Matcher { return Equal(false) }

// diffOf only produces output for composite values of the same type; go-cmp panics on
// unexported struct fields, in which case there is no diff.
func diffOf(expected, actual interface{}) (diff string) {
	if expected == nil || actual == nil || reflect.TypeOf(expected) != reflect.TypeOf(actual) {
		return ""
	}
	switch reflect.TypeOf(expected).Kind() {
	case reflect.Struct, reflect.Map, reflect.Slice, reflect.Array, reflect.Ptr:
	default:
		return ""
	}
	defer func() {
		if r := recover(); r != nil {
			diff = ""
		}
	}()
	return cmp.Diff(expected, actual)
}
