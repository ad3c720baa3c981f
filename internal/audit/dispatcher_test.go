package audit

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/appointment-scheduler/internal/logging"
)

type memSink struct {
	mu     sync.Mutex
	events []Event
	fail   bool
}

func (s *memSink) Log(_ context.Context, ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("db down")
	}
	s.events = append(s.events, ev)
	return nil
}

func TestDispatcher_DeliversInOrder(t *testing.T) {
	sink := &memSink{}
	d := NewDispatcher(sink, logging.Discard())

	for _, action := range []string{"appointment_created", "appointment_moved", "appointment_rolled_back"} {
		d.Dispatch(Event{OperatorID: 1, Action: action, Entity: "appointment"})
	}
	d.Close()
	d.Close()

	assert.Len(t, sink.events, 3)
	assert.Equal(t, "appointment_rolled_back", sink.events[2].Action)
}

func TestDispatcher_SinkErrorsAreSwallowed(t *testing.T) {
	d := NewDispatcher(&memSink{fail: true}, logging.Discard())

	assert.NotPanics(t, func() {
		d.Dispatch(Event{Action: "appointment_deleted"})
		d.Close()
	})
}

func TestDispatcher_NilIsNoop(t *testing.T) {
	var d *Dispatcher

	assert.NotPanics(t, func() {
		d.Dispatch(Event{Action: "x"})
		d.Close()
	})
}

func TestDispatcher_DispatchAfterCloseIsDropped(t *testing.T) {
	sink := &memSink{}
	d := NewDispatcher(sink, logging.Discard())
	d.Close()

	assert.NotPanics(t, func() {
		d.Dispatch(Event{Action: "appointment_reconciled"})
	})
	assert.Empty(t, sink.events)
}
