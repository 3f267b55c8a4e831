package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem is the derived per-supply-name stock view. It is rebuilt in
// full on every reconciliation pass and never persisted. RemainingQuantity
// may go negative when recorded consumption exceeds the received quantity;
// that is surfaced as a low-stock signal, not corrected.
type InventoryItem struct {
	ID                string          `json:"id"` // underlying supply id
	Name              string          `json:"name"`
	TotalQuantity     int             `json:"total_quantity"`
	UsedQuantity      int             `json:"used_quantity"`
	RemainingQuantity int             `json:"remaining_quantity"`
	LastUsedDate      *time.Time      `json:"last_used_date,omitempty"`
	Price             decimal.Decimal `json:"price"`
	MappedNames       []string        `json:"mapped_names"`
	Settled           bool            `json:"settled"`
}
