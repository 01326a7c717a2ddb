package controller

import "sync"

var _ SelectionNotifier = (*Notifier)(nil)

// Notifier is an in-process selection change event. Notify runs the
// subscribers synchronously, in subscription order.
type Notifier struct {
	mutex       sync.Mutex
	subscribers []func()
}

func NewNotifier() *Notifier {
	return &Notifier{}
}

func (n *Notifier) Subscribe(fn func()) {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	n.subscribers = append(n.subscribers, fn)
}

func (n *Notifier) Notify() {
	n.mutex.Lock()
	subscribers := make([]func(), len(n.subscribers))
	copy(subscribers, n.subscribers)
	n.mutex.Unlock()

	for _, fn := range subscribers {
		fn()
	}
}
