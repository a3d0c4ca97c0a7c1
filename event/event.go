// Package event implements an event dispatcher for decoupled
// subscription to domain events.
package event

import (
	"reflect"
	"sync"

	"github.com/shenzhen-arrom/kitties/errors"
)

const maxEventChSize = 65536

var (
	// ErrMuxClosed is returned when Posting on a closed dispatcher.
	ErrMuxClosed = errors.New("event dispatcher closed")
	// ErrDuplicateSubscribe is returned on subscribing twice to one type.
	ErrDuplicateSubscribe = errors.New("event: duplicate type in Subscribe")
)

// Msg carries one posted event to a subscriber.
type Msg struct {
	Data interface{}
}

// A Dispatcher dispatches events to registered receivers. Receivers can
// be registered to handle events of certain type. Any operation called
// after the dispatcher is stopped returns ErrMuxClosed.
type Dispatcher struct {
	mutex   sync.RWMutex
	subm    map[reflect.Type][]*Subscription
	stopped bool
}

// NewDispatcher returns a ready-to-use dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{subm: make(map[reflect.Type][]*Subscription)}
}

// Subscribe creates a subscription for events of the given types. The
// subscription's channel is closed when it is unsubscribed or the
// dispatcher is stopped.
func (d *Dispatcher) Subscribe(types ...interface{}) (*Subscription, error) {
	sub := &Subscription{dispatcher: d, channel: make(chan Msg, maxEventChSize)}

	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.stopped {
		// set the status to closed so that calling Unsubscribe after this
		// call will short circuit.
		sub.closed = true
		close(sub.channel)
		return sub, nil
	}

	for _, t := range types {
		rtyp := reflect.TypeOf(t)
		oldsubs := d.subm[rtyp]
		for _, oldsub := range oldsubs {
			if oldsub == sub {
				return nil, errors.Wrapf(ErrDuplicateSubscribe, "%v", rtyp)
			}
		}

		subs := make([]*Subscription, len(oldsubs)+1)
		copy(subs, oldsubs)
		subs[len(oldsubs)] = sub
		d.subm[rtyp] = subs
		sub.types = append(sub.types, rtyp)
	}
	return sub, nil
}

// Post sends an event to all receivers registered for the event's type.
// It returns ErrMuxClosed if the dispatcher has been stopped.
func (d *Dispatcher) Post(ev interface{}) error {
	rtyp := reflect.TypeOf(ev)

	d.mutex.RLock()
	if d.stopped {
		d.mutex.RUnlock()
		return ErrMuxClosed
	}
	subs := d.subm[rtyp]
	d.mutex.RUnlock()

	for _, sub := range subs {
		sub.deliver(Msg{Data: ev})
	}
	return nil
}

// Stop closes the dispatcher. The dispatcher can no longer be used after
// stopping; all current subscriptions are closed.
func (d *Dispatcher) Stop() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.stopped {
		return
	}

	d.stopped = true
	for _, subs := range d.subm {
		for _, sub := range subs {
			sub.close()
		}
	}
	d.subm = nil
}

func (d *Dispatcher) del(sub *Subscription) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	for _, rtyp := range sub.types {
		subs := d.subm[rtyp]
		for i, s := range subs {
			if s == sub {
				d.subm[rtyp] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// A Subscription is established by Subscribe and delivers events of the
// subscribed types on its channel.
type Subscription struct {
	dispatcher *Dispatcher
	types      []reflect.Type
	channel    chan Msg

	mutex  sync.Mutex
	closed bool
}

// Chan returns the receive channel of the subscription.
func (s *Subscription) Chan() <-chan Msg {
	return s.channel
}

// Unsubscribe removes the subscription from its dispatcher and closes
// the channel.
func (s *Subscription) Unsubscribe() {
	s.dispatcher.del(s)
	s.close()
}

func (s *Subscription) close() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.closed {
		s.closed = true
		close(s.channel)
	}
}

func (s *Subscription) deliver(msg Msg) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.closed {
		return
	}

	select {
	case s.channel <- msg:
	default:
		// drop rather than block a committed operation on a slow reader
	}
}
