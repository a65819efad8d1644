package framework

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapturingLoggerChildReceivesParentOutput(t *testing.T) {
	var parent, child CapturingLogger
	parent.Printf("before %d", 1)
	parent.AddChildLogger(&child)
	parent.Println("during")
	parent.RemoveChildLogger(&child)
	parent.Println("after")

	childOut := child.Output()
	require.Len(t, childOut, 2)
	assert.Equal(t, "before 1", childOut[0].Message)
	assert.Equal(t, "during", childOut[1].Message)

	parentOut := parent.Output()
	require.Len(t, parentOut, 2)
	assert.Equal(t, "before 1", parentOut[0].Message)
	assert.Equal(t, "after", parentOut[1].Message)
}

func TestLoggerWithPrefix(t *testing.T) {
	var buf bytes.Buffer
	logger := LoggerWithPrefix(WriterLogger(&buf, ""), "[tracker] ")
	logger.Printf("entered %s", "suite")
	assert.Contains(t, buf.String(), "[tracker] entered suite")
}

func TestCapturedOutputToString(t *testing.T) {
	var l CapturingLogger
	l.Println("a")
	l.Println("b")
	s := l.Output().ToString("  ")
	assert.Regexp(t, `^  \[.*\] a\n  \[.*\] b$`, s)
}
