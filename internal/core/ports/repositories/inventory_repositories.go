package repositories

import (
	"context"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
)

// InventoryReader defines read operations for staged inventory movements.
type InventoryReader interface {
	// FindMovementsByTransactionSetID retrieves the movements staged against a set.
	FindMovementsByTransactionSetID(ctx context.Context, tenantID, setID string) ([]domain.InventoryMovement, error)
}

// InventoryWriter defines write operations for staged inventory movements.
type InventoryWriter interface {
	// SaveMovements appends movement rows against a draft set.
	SaveMovements(ctx context.Context, movements []domain.InventoryMovement) error
}

// InventoryRepositoryFacade combines all inventory repository interfaces.
type InventoryRepositoryFacade interface {
	InventoryReader
	InventoryWriter
}
