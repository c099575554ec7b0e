package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"btc-tracker-go/internal/binance"
	"btc-tracker-go/internal/models"
	"btc-tracker-go/internal/notify"
	"go.uber.org/zap"
)

// Act carries out the side effects for a decision. For buy/sell it attempts
// venue execution, persists the order record and emits a notification; for
// opportunity it only notifies; for none it is a no-op.
func (e *Engine) Act(ctx context.Context, decision Decision, snapshot *models.Snapshot, cfg *models.Config) error {
	switch decision {
	case DecisionNone:
		return nil

	case DecisionOpportunity:
		e.emit(ctx, notify.Event{
			Kind:       notify.KindOpportunity,
			Price:      snapshot.Price,
			Delta:      snapshot.Delta,
			Delta48h:   snapshot.Delta48h,
			At:         snapshot.CreatedAt,
			SnapshotID: snapshot.ID,
		})
		return nil

	case DecisionBuy:
		return e.executeOrder(ctx, models.OrderTypeBuy, binance.OrderSideBuy, cfg.AmountBuy, snapshot)

	case DecisionSell:
		return e.executeOrder(ctx, models.OrderTypeSell, binance.OrderSideSell, cfg.AmountSell, snapshot)
	}
	return nil
}

// executeOrder attempts one venue execution and records the resulting order.
//
// Policy: a venue failure writes no order row. An order record implies a
// real or simulated fill, and a failed call must not fabricate one. When the
// venue is not configured the order is recorded with all venue fields unset
// so the system can run in alert-only mode.
func (e *Engine) executeOrder(ctx context.Context, orderType, side string, quoteNotional float64, snapshot *models.Snapshot) error {
	l := e.logger.With(
		zap.String("order_type", orderType),
		zap.Uint("snapshot_id", snapshot.ID),
		zap.Float64("price", snapshot.Price),
		zap.Float64("quote_notional", quoteNotional),
	)

	order := models.Order{
		Price:      snapshot.Price,
		Type:       orderType,
		SnapshotID: snapshot.ID,
	}

	if e.venue.IsConfigured() {
		l.Info("Executing order on venue...")

		resp, err := e.venue.ExecuteOrder(ctx, side, quoteNotional)
		if err == nil {
			err = applyVenueResponse(&order, resp)
		}
		if err != nil {
			l.Error("Venue execution failed, no order will be recorded", zap.Error(err))
			e.emit(ctx, notify.Event{
				Kind:       notify.KindOrderExecutionError,
				Price:      snapshot.Price,
				Delta:      snapshot.Delta,
				At:         snapshot.CreatedAt,
				OrderType:  orderType,
				SnapshotID: snapshot.ID,
				Detail:     err.Error(),
			})
			return fmt.Errorf("%w: %v", ErrVenue, err)
		}

		l.Info("Venue execution succeeded",
			zap.Int64p("venue_order_id", order.VenueOrderID),
			zap.Stringp("venue_status", order.VenueStatus),
		)
	} else {
		l.Warn("Venue not configured, recording order in database only")
	}

	if err := e.repo.CreateOrder(&order); err != nil {
		if order.VenueOrderID != nil {
			// Funds moved on the venue with no local record. This must be
			// flagged loudly for operator reconciliation.
			l.Error("ORPHANED EXECUTION: venue filled the order but the record could not be saved",
				zap.Int64p("venue_order_id", order.VenueOrderID),
				zap.Error(err),
			)
			return fmt.Errorf("%w: venue order %d: %v", ErrOrphanedExecution, *order.VenueOrderID, err)
		}
		return fmt.Errorf("%w: failed to create order: %v", ErrStorage, err)
	}
	l.Info("Order recorded", zap.Uint("order_id", order.ID))

	e.emit(ctx, notify.Event{
		Kind:       notify.KindOrderExecuted,
		Price:      snapshot.Price,
		Delta:      snapshot.Delta,
		Delta48h:   snapshot.Delta48h,
		At:         snapshot.CreatedAt,
		OrderType:  orderType,
		SnapshotID: snapshot.ID,
	})
	return nil
}

// applyVenueResponse copies the venue fill details onto the order record.
// A fill payload with unparseable quantities is treated as a venue failure
// rather than recorded as a zero fill.
func applyVenueResponse(order *models.Order, resp *binance.CreateOrderResponse) error {
	executedQty, err := strconv.ParseFloat(resp.ExecutedQuantity, 64)
	if err != nil {
		return fmt.Errorf("unparseable executedQty %q in fill for order %d: %w", resp.ExecutedQuantity, resp.OrderID, err)
	}
	quoteQty, err := strconv.ParseFloat(resp.CummulativeQuoteQty, 64)
	if err != nil {
		return fmt.Errorf("unparseable cummulativeQuoteQty %q in fill for order %d: %w", resp.CummulativeQuoteQty, resp.OrderID, err)
	}

	order.VenueOrderID = &resp.OrderID
	order.VenueClientOrderID = &resp.ClientOrderID
	order.VenueStatus = &resp.Status
	order.ExecutedQty = &executedQty
	order.CumulativeQuoteQty = &quoteQty

	if raw, err := json.Marshal(resp); err == nil {
		s := string(raw)
		order.VenueResponseRaw = &s
	}
	return nil
}
