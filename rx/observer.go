package rx

import "sync/atomic"

// Observer receives lifecycle notifications from publishers. Implementations
// must not call back into the publisher that notified them.
type Observer interface {
	Created(kind string)
	Emitted(kind string, event EventKind, fanout int)
	Subscribed(kind string)
	Unsubscribed(kind string)
}

type nopObserver struct{}

func (nopObserver) Created(string)                 {}
func (nopObserver) Emitted(string, EventKind, int) {}
func (nopObserver) Subscribed(string)              {}
func (nopObserver) Unsubscribed(string)            {}

type observerHolder struct{ Observer }

var globalObserver atomic.Pointer[observerHolder]

// SetObserver installs the observer used by publishers created afterwards
// without WithObserver. Passing nil restores the no-op observer.
func SetObserver(o Observer) {
	if o == nil {
		o = nopObserver{}
	}
	globalObserver.Store(&observerHolder{o})
}

func defaultObserver() Observer {
	if h := globalObserver.Load(); h != nil {
		return h.Observer
	}
	return nopObserver{}
}
