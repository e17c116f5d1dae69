package logger

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func TestStandardLogger_Prefixes(t *testing.T) {
	var buf bytes.Buffer
	l := NewStandardLogger(log.New(&buf, "", 0))

	l.Info("hello %s", "world")
	l.Warning("watch out")
	l.Error("broke: %d", 42)

	out := buf.String()
	for _, want := range []string{"[INFO] hello world", "[WARNING] watch out", "[ERROR] broke: 42"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if err := l.Close(); err != nil {
		t.Errorf("Close() = %v, want nil", err)
	}
}

func TestNopLogger_DiscardsEverything(t *testing.T) {
	l := NewNopLogger()
	l.Info("a")
	l.Warning("b")
	l.Error("c")
	if err := l.Close(); err != nil {
		t.Errorf("Close() = %v, want nil", err)
	}
}

func TestMockLogger_RecordsCalls(t *testing.T) {
	m := NewMockLogger()
	m.Info("i %d", 1)
	m.Warning("w %d", 2)
	m.Error("e %d", 3)
	_ = m.Close()

	if len(m.InfoCalls) != 1 || m.InfoCalls[0] != "i 1" {
		t.Errorf("InfoCalls = %v", m.InfoCalls)
	}
	if len(m.WarningCalls) != 1 || m.WarningCalls[0] != "w 2" {
		t.Errorf("WarningCalls = %v", m.WarningCalls)
	}
	if len(m.ErrorCalls) != 1 || m.ErrorCalls[0] != "e 3" {
		t.Errorf("ErrorCalls = %v", m.ErrorCalls)
	}
	if !m.CloseCalled {
		t.Error("CloseCalled = false, want true")
	}
}

func TestMultiLogger_Broadcasts(t *testing.T) {
	a := NewMockLogger()
	b := NewMockLogger()
	m := NewMultiLogger(a, b)

	m.Info("x")
	m.Warning("y")
	m.Error("z")
	_ = m.Close()

	for _, mock := range []*MockLogger{a, b} {
		if len(mock.InfoCalls) != 1 || len(mock.WarningCalls) != 1 || len(mock.ErrorCalls) != 1 {
			t.Errorf("backend did not receive all messages: %+v", mock)
		}
		if !mock.CloseCalled {
			t.Error("backend not closed")
		}
	}
}
