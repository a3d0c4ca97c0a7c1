package event

import (
	"testing"
	"time"
)

type testEvent struct{ N int }
type otherEvent struct{}

func TestSubscribePost(t *testing.T) {
	dispatcher := NewDispatcher()
	defer dispatcher.Stop()

	sub, err := dispatcher.Subscribe(testEvent{})
	if err != nil {
		t.Fatal(err)
	}

	if err := dispatcher.Post(testEvent{N: 7}); err != nil {
		t.Fatal(err)
	}
	if err := dispatcher.Post(otherEvent{}); err != nil {
		t.Fatal(err)
	}

	select {
	case msg := <-sub.Chan():
		ev, ok := msg.Data.(testEvent)
		if !ok || ev.N != 7 {
			t.Errorf("unexpected event %#v", msg.Data)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}

	select {
	case msg := <-sub.Chan():
		t.Errorf("received event of unsubscribed type: %#v", msg.Data)
	default:
	}
}

func TestPostAfterStop(t *testing.T) {
	dispatcher := NewDispatcher()
	dispatcher.Stop()

	if err := dispatcher.Post(testEvent{}); err != ErrMuxClosed {
		t.Errorf("Post after Stop = %v want ErrMuxClosed", err)
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	dispatcher := NewDispatcher()
	defer dispatcher.Stop()

	sub, err := dispatcher.Subscribe(testEvent{})
	if err != nil {
		t.Fatal(err)
	}
	sub.Unsubscribe()

	if _, ok := <-sub.Chan(); ok {
		t.Error("channel should be closed after Unsubscribe")
	}

	// posting to a fully unsubscribed type must not panic
	if err := dispatcher.Post(testEvent{}); err != nil {
		t.Fatal(err)
	}
}
