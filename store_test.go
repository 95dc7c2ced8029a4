package formz

import (
	"context"
	"sync"
	"testing"
)

func TestNotifier_DropsOlderVersions(t *testing.T) {
	var n notifier[int]
	var got []int
	n.subscribe(func(v int) { got = append(got, v) })

	n.publish(2, 20)
	n.publish(1, 10)
	n.publish(3, 30)

	if len(got) != 2 || got[0] != 20 || got[1] != 30 {
		t.Errorf("expected [20 30], got %v", got)
	}
}

func TestNotifier_Unsubscribe(t *testing.T) {
	var n notifier[int]
	calls := 0
	cancel := n.subscribe(func(int) { calls++ })

	n.publish(1, 1)
	cancel()
	cancel()
	n.publish(2, 2)

	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestNotifier_ReentrantPublish(t *testing.T) {
	var n notifier[int]
	var got []int
	n.subscribe(func(v int) {
		got = append(got, v)
		if v == 1 {
			// Delivered after this callback returns, not recursively
			n.publish(2, 2)
			if len(got) != 1 {
				t.Error("expected re-entrant publish to be queued")
			}
		}
	})

	n.publish(1, 1)

	if len(got) != 2 || got[1] != 2 {
		t.Errorf("expected [1 2], got %v", got)
	}
}

func TestNotifier_RecoversAfterSubscriberPanic(t *testing.T) {
	var n notifier[int]
	var got []int
	n.subscribe(func(v int) {
		if v == 1 {
			panic("subscriber failed")
		}
		got = append(got, v)
	})

	func() {
		defer func() {
			if recover() == nil {
				t.Error("expected subscriber panic to propagate")
			}
		}()
		n.publish(1, 1)
	}()

	n.publish(2, 2)

	if len(got) != 1 || got[0] != 2 {
		t.Errorf("expected delivery after panic, got %v", got)
	}
}

func TestField_WatchCanMutateField(t *testing.T) {
	ctx := context.Background()
	f := NewField("email", WithSyncMode())

	cancel := f.Watch(func(s Snapshot) {
		if s.IsDirty && !s.IsTouched {
			f.Blur(ctx)
		}
	})
	defer cancel()

	f.Change(ctx, "x")

	if !f.IsTouched() {
		t.Error("expected watcher mutation to apply")
	}
}

func TestField_WatchOrdering(t *testing.T) {
	ctx := context.Background()
	f := NewField("n")

	var mu sync.Mutex
	var last uint64
	ordered := true
	cancel := f.Watch(func(s Snapshot) {
		mu.Lock()
		defer mu.Unlock()
		if s.version <= last {
			ordered = false
		}
		last = s.version
	})
	defer cancel()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.Change(ctx, "v")
			f.Blur(ctx)
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if !ordered {
		t.Error("expected snapshots delivered in version order")
	}
	if last != f.Snapshot().version {
		t.Errorf("expected latest snapshot delivered, got version %d", last)
	}
}

func TestSelect_NotifiesOnlyOnChange(t *testing.T) {
	ctx := context.Background()
	f := NewField("pass", WithValidator(lengthSchema()), WithSyncMode())

	var messages []string
	cancel := Select(f, Snapshot.ErrorMessage, func(msg string) {
		messages = append(messages, msg)
	})
	defer cancel()

	f.Change(ctx, "a")
	f.Blur(ctx)
	f.Validate(ctx)
	f.Change(ctx, "ab")
	f.Validate(ctx)
	f.Change(ctx, "abcdef")
	f.Validate(ctx)

	want := []string{"must be at least 5 characters", ""}
	if len(messages) != len(want) {
		t.Fatalf("expected %v, got %v", want, messages)
	}
	for i := range want {
		if messages[i] != want[i] {
			t.Errorf("message %d: expected %q, got %q", i, want[i], messages[i])
		}
	}
}
