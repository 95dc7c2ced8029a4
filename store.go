package formz

import "sync"

// notifier delivers versioned values to subscribers in version order.
//
// Publishing never blocks on a concurrent delivery: the goroutine already
// draining the queue delivers on behalf of everyone else, and values older
// than the last delivered version are dropped. Subscribers may therefore call
// back into the publisher without deadlocking.
type notifier[S any] struct {
	mu        sync.Mutex
	subs      []subscription[S]
	nextID    uint64
	queue     []versioned[S]
	draining  bool
	delivered uint64
}

type subscription[S any] struct {
	id uint64
	fn func(S)
}

type versioned[S any] struct {
	version uint64
	value   S
}

// subscribe registers fn and returns a function that removes it.
func (n *notifier[S]) subscribe(fn func(S)) func() {
	n.mu.Lock()
	n.nextID++
	id := n.nextID
	n.subs = append(n.subs, subscription[S]{id: id, fn: fn})
	n.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			n.mu.Lock()
			defer n.mu.Unlock()
			for i, s := range n.subs {
				if s.id == id {
					n.subs = append(n.subs[:i:i], n.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// publish queues a value and drains the queue unless another goroutine is
// already doing so. A panicking subscriber releases the drain before the
// panic propagates, so later publishes are still delivered.
func (n *notifier[S]) publish(version uint64, value S) {
	n.mu.Lock()
	n.queue = append(n.queue, versioned[S]{version: version, value: value})
	if n.draining {
		n.mu.Unlock()
		return
	}
	n.draining = true
	n.mu.Unlock()

	delivered := false
	defer func() {
		if delivered {
			return
		}
		n.mu.Lock()
		n.draining = false
		n.mu.Unlock()
	}()

	n.drain()
	delivered = true
}

// drain delivers queued values in order and clears the draining flag. The
// lock is released while subscribers run.
func (n *notifier[S]) drain() {
	n.mu.Lock()
	for len(n.queue) > 0 {
		next := n.queue[0]
		n.queue = n.queue[1:]
		if next.version <= n.delivered {
			continue
		}
		n.delivered = next.version
		subs := make([]subscription[S], len(n.subs))
		copy(subs, n.subs)

		n.mu.Unlock()
		for _, s := range subs {
			s.fn(next.value)
		}
		n.mu.Lock()
	}
	n.draining = false
	n.mu.Unlock()
}

// Watch registers fn to be called with a fresh Snapshot after every state
// change of the field. Snapshots are delivered in order and a snapshot older
// than one already delivered is never delivered. The returned function
// cancels the subscription.
func (f *Field) Watch(fn func(Snapshot)) (cancel func()) {
	return f.notify.subscribe(fn)
}

// Select derives a value from the field and calls fn only when the derived
// value changes. The baseline is the value at subscription time.
//
//	cancel := formz.Select(email, formz.Snapshot.ErrorMessage, func(msg string) {
//	    render(msg)
//	})
func Select[T comparable](f *Field, selector func(Snapshot) T, fn func(T)) (cancel func()) {
	var mu sync.Mutex
	last := selector(f.Snapshot())
	return f.Watch(func(s Snapshot) {
		next := selector(s)
		mu.Lock()
		if next == last {
			mu.Unlock()
			return
		}
		last = next
		mu.Unlock()
		fn(next)
	})
}
