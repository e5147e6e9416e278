package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/nimbusworks/user-directory/internal/core/domain"
)

type collectingProcessor struct {
	mu     sync.Mutex
	events []domain.AuditEvent
	done   chan struct{}
	want   int
}

func newCollectingProcessor(want int) *collectingProcessor {
	return &collectingProcessor{done: make(chan struct{}), want: want}
}

func (p *collectingProcessor) Process(_ context.Context, event domain.AuditEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	if len(p.events) == p.want {
		close(p.done)
	}
	return nil
}

func (p *collectingProcessor) wait(t *testing.T) []domain.AuditEvent {
	t.Helper()
	select {
	case <-p.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for events")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.AuditEvent(nil), p.events...)
}

func TestDispatcher_DeliversEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	proc := newCollectingProcessor(3)
	d := NewDispatcher(2, proc, zerolog.Nop())
	d.Start(ctx)

	d.Record(domain.AuditEvent{Actor: "alice", Action: "user.create"})
	d.Record(domain.AuditEvent{Actor: "bob", Action: "user.delete"})
	d.Record(domain.AuditEvent{Actor: "alice", Action: "auth.login"})

	events := proc.wait(t)
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}

	seen := map[string]int{}
	for _, ev := range events {
		seen[ev.Action]++
	}
	for _, action := range []string{"user.create", "user.delete", "auth.login"} {
		if seen[action] != 1 {
			t.Fatalf("action %s delivered %d times", action, seen[action])
		}
	}
}

func TestDispatcher_PerActorOrdering(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	const n = 50
	proc := newCollectingProcessor(n)
	d := NewDispatcher(4, proc, zerolog.Nop())
	d.Start(ctx)

	for i := 0; i < n; i++ {
		d.Record(domain.AuditEvent{Actor: "alice", Action: "step", TargetID: string(rune('a' + i%26)), Timestamp: time.Unix(int64(i), 0)})
	}

	events := proc.wait(t)
	for i := 1; i < len(events); i++ {
		if !events[i].Timestamp.After(events[i-1].Timestamp) {
			t.Fatalf("events for one actor arrived out of order at index %d", i)
		}
	}
}

func TestDispatcher_ShardIsStablePerActor(t *testing.T) {
	d := NewDispatcher(4, nil, zerolog.Nop())

	for _, actor := range []string{"alice", "bob", "", "6616a1f1f53b4a1d9e6f2c01"} {
		first := d.shardIndex(actor)
		for i := 0; i < 10; i++ {
			if got := d.shardIndex(actor); got != first {
				t.Fatalf("actor %q: shard changed from %d to %d", actor, first, got)
			}
		}
		if first < 0 || first >= 4 {
			t.Fatalf("actor %q: shard %d out of range", actor, first)
		}
	}
}

func TestDispatcher_RecordDoesNotBlockWhenSaturated(t *testing.T) {
	// Workers never started, so channels only fill up.
	d := NewDispatcher(1, nil, zerolog.Nop())

	done := make(chan struct{})
	go func() {
		for i := 0; i < channelBuffer+10; i++ {
			d.Record(domain.AuditEvent{Actor: "alice", Action: "user.create"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Record blocked on a full queue")
	}
}
