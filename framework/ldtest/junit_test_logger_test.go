package ldtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJUnitTestLoggerGroupsTestsByTopLevelScope(t *testing.T) {
	logger := NewJUnitTestLogger("unused.xml", "lazy vars", map[string]string{
		"b.prop": "2",
		"a.prop": "1",
	})

	_ = Run(TestConfiguration{TestLogger: logger}, func(ldt *T) {
		ldt.Run("first", func(ldt0 *T) {
			ldt0.Run("passes", func(*T) {})
			ldt0.Run("fails", func(ldt1 *T) { ldt1.Errorf("bad <value>") })
		})
		ldt.Run("second", func(ldt0 *T) {
			ldt0.SkipWithReason("pending")
		})
	})

	bytes, err := logger.render()
	require.NoError(t, err)
	xml := string(bytes)

	assert.Contains(t, xml, `<testsuite tests="3" failures="1"`)
	assert.Contains(t, xml, `name="lazy vars: first"`)
	assert.Contains(t, xml, `name="lazy vars: second"`)
	assert.Contains(t, xml, `<property name="a.prop" value="1"></property>`)
	assert.Regexp(t, `(?s)a\.prop.*b\.prop`, xml)
	assert.Contains(t, xml, `<failure message="bad &lt;value&gt;"`)
	assert.Contains(t, xml, `<skipped message="pending"></skipped>`)
}

func TestJUnitTestLoggerWithoutTitleUsesScopeName(t *testing.T) {
	logger := NewJUnitTestLogger("unused.xml", "", nil)
	_ = Run(TestConfiguration{TestLogger: logger}, func(ldt *T) {
		ldt.Run("only", func(*T) {})
	})
	bytes, err := logger.render()
	require.NoError(t, err)
	assert.Contains(t, string(bytes), `name="only"`)
}
