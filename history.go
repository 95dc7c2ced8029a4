package formz

import "sync"

// failureLog keeps the most recent validation failures of a field, oldest
// first. A nil log records nothing; see WithErrorHistory.
type failureLog struct {
	mu      sync.Mutex
	limit   int
	entries []*ValidationError
}

func newFailureLog(limit int) *failureLog {
	if limit <= 0 {
		return nil
	}
	return &failureLog{limit: limit, entries: make([]*ValidationError, 0, limit)}
}

// push records a failure, dropping the oldest once the limit is reached.
// A nil failure is a cleared error, not a failure, and is not recorded.
func (l *failureLog) push(verr *ValidationError) {
	if l == nil || verr == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.entries) == l.limit {
		copy(l.entries, l.entries[1:])
		l.entries = l.entries[:l.limit-1]
	}
	l.entries = append(l.entries, verr)
}

// clear forgets every failure. Called when the field validates or resets.
func (l *failureLog) clear() {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	clear(l.entries)
	l.entries = l.entries[:0]
}

// all returns a copy of the recorded failures, or nil when there are none.
func (l *failureLog) all() []*ValidationError {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.entries) == 0 {
		return nil
	}
	return append([]*ValidationError(nil), l.entries...)
}
