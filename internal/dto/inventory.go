package dto

import (
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MovementRequest is one staged stock movement.
type MovementRequest struct {
	ItemID             string                   `json:"itemID" binding:"required"`
	Direction          domain.MovementDirection `json:"direction" binding:"required,oneof=IN OUT"`
	Quantity           decimal.Decimal          `json:"quantity" binding:"required"`
	UnitCost           decimal.Decimal          `json:"unitCost" binding:"required"`
	InventoryAccountID string                   `json:"inventoryAccountID" binding:"required"`
	OffsetAccountID    string                   `json:"offsetAccountID" binding:"required"`
	Memo               string                   `json:"memo"`
}

// RecordMovementsRequest stages movements against a new draft transaction set.
type RecordMovementsRequest struct {
	BusinessDate time.Time         `json:"businessDate" binding:"required"`
	Notes        string            `json:"notes"`
	Movements    []MovementRequest `json:"movements" binding:"required,min=1,dive"`
}

// RecordMovementsResponse returns the draft set and the staged movement IDs.
type RecordMovementsResponse struct {
	TransactionSetID string   `json:"transactionSetID"`
	MovementIDs      []string `json:"movementIDs"`
}
