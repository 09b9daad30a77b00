package multi

import (
	"errors"
	"testing"

	"github.com/crimson-sun/wisp/internal/model"
	"github.com/crimson-sun/wisp/internal/render"
)

type spy struct {
	render.Nop
	appended int
	evicted  int
	states   int
	closeErr error
	closed   bool
}

func (s *spy) MessageAppended(model.Message)           { s.appended++ }
func (s *spy) MessageEvicted(model.Message)            { s.evicted++ }
func (s *spy) StateChanged(_, _ model.ConnectionState) { s.states++ }
func (s *spy) Close() error {
	s.closed = true
	return s.closeErr
}

func TestFanOut(t *testing.T) {
	a, b := &spy{}, &spy{}
	m := New(a, b)

	m.MessageAppended(model.Message{Text: "x"})
	m.MessageEvicted(model.Message{Text: "y"})
	m.StateChanged(model.Connecting, model.Connected)

	for i, s := range []*spy{a, b} {
		if s.appended != 1 || s.evicted != 1 || s.states != 1 {
			t.Fatalf("renderer %d missed notifications: %+v", i, s)
		}
	}
}

func TestClose_CollectsErrors(t *testing.T) {
	a := &spy{closeErr: errors.New("a failed")}
	b := &spy{}
	m := New(a, b)

	err := m.Close()
	if err == nil {
		t.Fatal("expected joined close error")
	}
	if !a.closed || !b.closed {
		t.Fatal("all renderers must be closed even when one fails")
	}
}
