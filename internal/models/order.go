package models

import "gorm.io/gorm"

const (
	OrderTypeBuy  = "buy"
	OrderTypeSell = "sell"
)

// Order is the durable record of an attempted or completed buy/sell action.
// The venue fields are nil when the order was recorded in DB-only bookkeeping
// mode (venue not configured). If VenueOrderID is set, the remaining fill
// fields are set too. Rows are append-only ledger entries.
type Order struct {
	gorm.Model
	Price      float64 `json:"price" gorm:"not null"`
	Type       string  `json:"type" gorm:"not null"` // "buy" or "sell"
	SnapshotID uint    `json:"snapshot_id" gorm:"not null;index"`

	VenueOrderID       *int64   `json:"venue_order_id"`
	VenueClientOrderID *string  `json:"venue_client_order_id"`
	VenueStatus        *string  `json:"venue_status"`
	ExecutedQty        *float64 `json:"executed_qty"`
	CumulativeQuoteQty *float64 `json:"cumulative_quote_qty"`
	VenueResponseRaw   *string  `json:"venue_response_raw"`
}
