package lazyvar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHumanize(t *testing.T) {
	for input, expected := range map[string]string{
		"myBehavior":        "my behavior",
		"itBehavesLike":     "it behaves like",
		"HTTPServer":        "HTTPServer",
		"aBC":               "a bC",
		"already humanized": "already humanized",
		"":                  "",
		"haveLength":        "have length",
		"withÜmlautAndMore": "withÜmlaut and more",
	} {
		assert.Equal(t, expected, Humanize(input), input)
	}
}

func TestParseMessage(t *testing.T) {
	assert.Equal(t, "", ParseMessage())
	assert.Equal(t, "is expected to equal 5", ParseMessage("to equal 5"))
	assert.Equal(t, "is expected to be nil, to have length 2",
		ParseMessage("to be nil", "to   have\nlength 2"))
	assert.Equal(t, "is expected to equal 1, have length 2",
		ParseMessage("to equal 1 and have length 2"))
	assert.Equal(t, "is expected to be empty", ParseMessage("toBe empty"))
}
