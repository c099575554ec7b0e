package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type stubNotifier struct {
	calls int
	err   error
}

func (s *stubNotifier) Notify(ctx context.Context, event Event) error {
	s.calls++
	return s.err
}

func TestMulti_AttemptsEveryNotifier(t *testing.T) {
	failing := &stubNotifier{err: errors.New("boom")}
	healthy := &stubNotifier{}

	err := Multi{failing, healthy}.Notify(context.Background(), Event{Kind: KindDailyReport})

	// A failing notifier must not prevent the others from being attempted.
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 1, healthy.calls)
}

func TestMulti_AllHealthy(t *testing.T) {
	a, b := &stubNotifier{}, &stubNotifier{}

	err := Multi{a, b}.Notify(context.Background(), Event{Kind: KindOpportunity})

	assert.NoError(t, err)
	assert.Equal(t, 1, a.calls)
	assert.Equal(t, 1, b.calls)
}

func TestBody_RendersEventFields(t *testing.T) {
	delta48 := -3.21
	event := Event{
		Kind:       KindOrderExecutionError,
		Price:      60123.45,
		Delta:      -2.52,
		Delta48h:   &delta48,
		At:         time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		OrderType:  "buy",
		SnapshotID: 42,
		Detail:     "insufficient balance",
	}

	text := body(event)

	assert.Contains(t, text, "BUY order FAILED")
	assert.Contains(t, text, "$60123.45")
	assert.Contains(t, text, "-2.52%")
	assert.Contains(t, text, "-3.21%")
	assert.Contains(t, text, "Snapshot ID: 42")
	assert.Contains(t, text, "insufficient balance")
	assert.Contains(t, text, "2025-06-01T09:00:00Z")
}

func TestSubject_PerKind(t *testing.T) {
	assert.Contains(t, subject(Event{Kind: KindDailyReport, Price: 100}), "Daily report")
	assert.Contains(t, subject(Event{Kind: KindOpportunity, Price: 100}), "opportunity")
	assert.Contains(t, subject(Event{Kind: KindOrderExecuted, OrderType: "sell", Price: 100}), "SELL order executed")
}
