package domain

import "github.com/shopspring/decimal"

// MovementDirection says whether stock moved into or out of inventory.
type MovementDirection string

const (
	MovementIn  MovementDirection = "IN"
	MovementOut MovementDirection = "OUT"
)

// IsValid reports whether the direction is known.
func (d MovementDirection) IsValid() bool {
	return d == MovementIn || d == MovementOut
}

// InventoryMovement is one staged stock movement attached to a draft
// transaction set. An inbound movement debits the inventory account and
// credits the offset (GRNI/clearing) account for quantity x unit cost; an
// outbound movement does the opposite (COGS leg).
type InventoryMovement struct {
	MovementID         string            `json:"movementID"`
	TenantID           string            `json:"tenantID"`
	TransactionSetID   string            `json:"transactionSetID"`
	ItemID             string            `json:"itemID"`
	Direction          MovementDirection `json:"direction"`
	Quantity           decimal.Decimal   `json:"quantity"`
	UnitCost           decimal.Decimal   `json:"unitCost"`
	InventoryAccountID string            `json:"inventoryAccountID"`
	OffsetAccountID    string            `json:"offsetAccountID"`
	Memo               string            `json:"memo"`
	AuditFields
}

// Value returns the monetary value of the movement (quantity x unit cost).
func (m InventoryMovement) Value() decimal.Decimal {
	return m.Quantity.Mul(m.UnitCost)
}
