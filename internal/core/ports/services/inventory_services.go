package services

import (
	"context"

	"github.com/bizbooks/bizbooks_backend/internal/dto"
)

// InventorySvcFacade stages stock movements and posts them through the
// posting engine.
type InventorySvcFacade interface {
	// RecordMovements opens a draft transaction set and stages the movements
	// against it.
	RecordMovements(ctx context.Context, tenantID, actorID string, req dto.RecordMovementsRequest) (*dto.RecordMovementsResponse, error)

	// PostInventoryMovements posts the staged movements of a set.
	PostInventoryMovements(ctx context.Context, tenantID, actorID, setID string) (*dto.PostingResult, error)
}
