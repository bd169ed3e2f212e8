package logger

import "testing"

var _ Logger = Test{}

// Test is a Logger that prints through testing.T.
type Test struct{ t *testing.T }

func NewTest(t *testing.T) Test {
	return Test{t: t}
}

func (t Test) Info(msg string, fields ...Field) {
	t.t.Logf("[info] %s %+v", msg, fields)
}

func (t Test) Debug(msg string, fields ...Field) {
	t.t.Logf("[debug] %s %+v", msg, fields)
}

func (t Test) Error(msg string, fields ...Field) {
	t.t.Logf("[error] %s %+v", msg, fields)
}
