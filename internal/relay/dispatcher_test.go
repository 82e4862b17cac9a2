package relay

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telegram-relay-bot/internal/domain"
)

type handlerFunc func(ctx context.Context, ev domain.Event) error

func (f handlerFunc) Handle(ctx context.Context, ev domain.Event) error { return f(ctx, ev) }

func TestDispatcher_PerSenderOrder(t *testing.T) {
	var mu sync.Mutex
	seen := map[domain.Identity][]string{}
	ids := map[string]bool{}

	handler := handlerFunc(func(ctx context.Context, ev domain.Event) error {
		time.Sleep(time.Millisecond)
		mu.Lock()
		defer mu.Unlock()
		seen[ev.Sender.ID] = append(seen[ev.Sender.ID], ev.Payload.Text)
		ids[EventIDFromContext(ctx)] = true
		return nil
	})
	d := NewDispatcher(handler, &fakeReporter{}, discardLogger())

	texts := []string{"a", "b", "c", "d", "e"}
	for _, text := range texts {
		for sender := domain.Identity(1); sender <= 3; sender++ {
			d.Dispatch(context.Background(), domain.Event{Sender: domain.Profile{ID: sender}, Payload: domain.TextPayload(text)})
		}
	}
	d.Wait()

	for sender := domain.Identity(1); sender <= 3; sender++ {
		assert.Equal(t, texts, seen[sender])
	}
	assert.Len(t, ids, 15)
	assert.NotContains(t, ids, "")
}

func TestDispatcher_SurvivesCancellation(t *testing.T) {
	started := make(chan struct{})
	finish := make(chan struct{})
	var handledErr error

	handler := handlerFunc(func(ctx context.Context, ev domain.Event) error {
		close(started)
		<-finish
		handledErr = ctx.Err()
		return nil
	})
	d := NewDispatcher(handler, &fakeReporter{}, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	d.Dispatch(ctx, domain.Event{Sender: domain.Profile{ID: 1}})
	<-started
	cancel()
	close(finish)
	d.Wait()

	assert.NoError(t, handledErr)
}

func TestDispatcher_RecoversPanic(t *testing.T) {
	reporter := &fakeReporter{}
	handler := handlerFunc(func(ctx context.Context, ev domain.Event) error {
		if ev.Payload.Text == "boom" {
			panic("unexpected")
		}
		return nil
	})
	d := NewDispatcher(handler, reporter, discardLogger())

	d.Dispatch(context.Background(), domain.Event{Sender: domain.Profile{ID: 1}, Payload: domain.TextPayload("boom")})
	d.Dispatch(context.Background(), domain.Event{Sender: domain.Profile{ID: 1}, Payload: domain.TextPayload("fine")})
	d.Wait()

	reports := reporter.Reports()
	require.Len(t, reports, 1)
	assert.Equal(t, "dispatch", reports[0].Op)
	assert.Contains(t, reports[0].Err.Error(), "unexpected")
}

func TestEventID(t *testing.T) {
	assert.Equal(t, "", EventIDFromContext(context.Background()))
	assert.Equal(t, "abc", EventIDFromContext(WithEventID(context.Background(), "abc")))
}
