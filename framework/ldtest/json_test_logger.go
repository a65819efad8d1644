package ldtest

import (
	"io"
	"sync"

	"github.com/kcsujeet/bdd-lazy-var-next/framework"

	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
)

// JSONTestLogger writes one JSON object per line for every test event, for consumption by
// other tools. Each object has an "event" property and, except for the final summary, a "test"
// property holding the slash-separated TestID.
type JSONTestLogger struct {
	target io.Writer
	lock   sync.Mutex
}

func NewJSONTestLogger(target io.Writer) *JSONTestLogger {
	return &JSONTestLogger{target: target}
}

func (j *JSONTestLogger) TestStarted(id TestID) {
	j.emit("started", id, nil)
}

func (j *JSONTestLogger) TestError(id TestID, err error) {
	j.emit("error", id, func(obj *jwriter.ObjectState) {
		obj.Name("message").String(err.Error())
		if es, ok := err.(ErrorWithStacktrace); ok && len(es.Stacktrace) != 0 {
			arr := obj.Name("stacktrace").Array()
			for _, s := range es.Stacktrace {
				arr.String(s.String())
			}
			arr.End()
		}
	})
}

func (j *JSONTestLogger) TestFinished(id TestID, result TestResult, debugOutput framework.CapturedOutput) {
	j.emit("finished", id, func(obj *jwriter.ObjectState) {
		obj.Name("failed").Bool(result.Failed)
		if len(debugOutput) != 0 {
			obj.Name("output").String(debugOutput.ToString(""))
		}
	})
}

func (j *JSONTestLogger) TestSkipped(id TestID, reason string) {
	j.emit("skipped", id, func(obj *jwriter.ObjectState) {
		obj.Maybe("reason", reason != "").String(reason)
	})
}

func (j *JSONTestLogger) EndLog(results Results) error {
	w := jwriter.NewWriter()
	obj := w.Object()
	obj.Name("event").String("end")
	obj.Name("tests").Int(len(results.Tests))
	obj.Name("failures").Int(len(results.Failures))
	obj.Name("skipped").Int(len(results.Skipped))
	obj.End()
	return j.writeLine(&w)
}

func (j *JSONTestLogger) emit(event string, id TestID, props func(*jwriter.ObjectState)) {
	w := jwriter.NewWriter()
	obj := w.Object()
	obj.Name("event").String(event)
	obj.Name("test").String(id.String())
	if props != nil {
		props(&obj)
	}
	obj.End()
	_ = j.writeLine(&w)
}

func (j *JSONTestLogger) writeLine(w *jwriter.Writer) error {
	if err := w.Error(); err != nil {
		return err
	}
	j.lock.Lock()
	defer j.lock.Unlock()
	_, err := j.target.Write(append(w.Bytes(), '\n'))
	return err
}
