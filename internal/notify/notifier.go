package notify

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// EventKind classifies an alert event.
type EventKind string

const (
	KindDailyReport         EventKind = "daily_report"
	KindOpportunity         EventKind = "opportunity"
	KindOrderExecuted       EventKind = "order_executed"
	KindOrderExecutionError EventKind = "order_execution_error"
)

// Event is the structured payload handed to notifiers. Rendering and
// delivery are the notifier's concern; the engine treats every call as
// fire-and-forget.
type Event struct {
	Kind       EventKind
	Price      float64
	Delta      float64
	Delta48h   *float64
	At         time.Time
	OrderType  string // "buy" or "sell" for order events
	SnapshotID uint
	Detail     string // failure detail for error events
}

// Notifier delivers alert events. Implementations must be safe for
// sequential reuse across cycles.
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// Nop is a Notifier that discards all events.
type Nop struct{}

func (Nop) Notify(ctx context.Context, event Event) error { return nil }

// Multi fans an event out to several notifiers. All of them are attempted;
// their errors are joined.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, event Event) error {
	var errs []string
	for _, n := range m {
		if err := n.Notify(ctx, event); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("notify failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// subject returns a short human-readable headline for an event.
func subject(event Event) string {
	switch event.Kind {
	case KindDailyReport:
		return fmt.Sprintf("Daily report - $%.2f (%+.2f%% 24h)", event.Price, event.Delta)
	case KindOpportunity:
		return fmt.Sprintf("Possible sell opportunity - $%.2f (%+.2f%% 24h)", event.Price, event.Delta)
	case KindOrderExecuted:
		return fmt.Sprintf("%s order executed - $%.2f", strings.ToUpper(event.OrderType), event.Price)
	case KindOrderExecutionError:
		return fmt.Sprintf("%s order FAILED - $%.2f", strings.ToUpper(event.OrderType), event.Price)
	default:
		return fmt.Sprintf("%s - $%.2f", event.Kind, event.Price)
	}
}

// body returns a plain-text rendering of an event.
func body(event Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", subject(event))
	fmt.Fprintf(&b, "Price: $%.2f\n", event.Price)
	fmt.Fprintf(&b, "24h change: %+.2f%%\n", event.Delta)
	if event.Delta48h != nil {
		fmt.Fprintf(&b, "48h change: %+.2f%%\n", *event.Delta48h)
	}
	if event.SnapshotID != 0 {
		fmt.Fprintf(&b, "Snapshot ID: %d\n", event.SnapshotID)
	}
	if event.Detail != "" {
		fmt.Fprintf(&b, "Detail: %s\n", event.Detail)
	}
	fmt.Fprintf(&b, "Timestamp: %s\n", event.At.Format(time.RFC3339))
	return b.String()
}
