package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bizbooks/bizbooks_backend/internal/apperrors"
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
	"github.com/bizbooks/bizbooks_backend/internal/middleware"
)

type inventoryService struct {
	inventoryRepo portsrepo.InventoryRepositoryFacade
	setRepo       portsrepo.TransactionSetRepositoryFacade
	postingSvc    portssvc.PostingSvcFacade
}

// NewInventoryService creates the inventory movement service.
func NewInventoryService(
	inventoryRepo portsrepo.InventoryRepositoryFacade,
	setRepo portsrepo.TransactionSetRepositoryFacade,
	postingSvc portssvc.PostingSvcFacade,
) portssvc.InventorySvcFacade {
	return &inventoryService{
		inventoryRepo: inventoryRepo,
		setRepo:       setRepo,
		postingSvc:    postingSvc,
	}
}

var _ portssvc.InventorySvcFacade = (*inventoryService)(nil)

// RecordMovements opens a draft inventory set and stages the movements
// against it. Nothing touches the ledger until the set posts.
func (s *inventoryService) RecordMovements(ctx context.Context, tenantID, actorID string, req dto.RecordMovementsRequest) (*dto.RecordMovementsResponse, error) {
	for _, m := range req.Movements {
		if !m.Direction.IsValid() {
			return nil, fmt.Errorf("%w: unknown movement direction %s", apperrors.ErrValidation, m.Direction)
		}
		if !m.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: movement quantity must be positive", apperrors.ErrValidation)
		}
		if m.UnitCost.IsNegative() {
			return nil, fmt.Errorf("%w: movement unit cost cannot be negative", apperrors.ErrValidation)
		}
	}

	now := time.Now().UTC()
	set := domain.TransactionSet{
		TransactionSetID: uuid.NewString(),
		TenantID:         tenantID,
		Status:           domain.SetDraft,
		Source:           domain.SourceInventory,
		BusinessDate:     req.BusinessDate,
		Notes:            req.Notes,
		AuditFields:      domain.NewAuditFields(actorID, now),
	}
	if err := s.setRepo.SaveSet(ctx, set); err != nil {
		return nil, err
	}

	movements := make([]domain.InventoryMovement, len(req.Movements))
	movementIDs := make([]string, len(req.Movements))
	for i, m := range req.Movements {
		movements[i] = domain.InventoryMovement{
			MovementID:         uuid.NewString(),
			TenantID:           tenantID,
			TransactionSetID:   set.TransactionSetID,
			ItemID:             m.ItemID,
			Direction:          m.Direction,
			Quantity:           m.Quantity,
			UnitCost:           m.UnitCost,
			InventoryAccountID: m.InventoryAccountID,
			OffsetAccountID:    m.OffsetAccountID,
			Memo:               m.Memo,
			AuditFields:        domain.NewAuditFields(actorID, now),
		}
		movementIDs[i] = movements[i].MovementID
	}
	if err := s.inventoryRepo.SaveMovements(ctx, movements); err != nil {
		return nil, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Inventory movements staged",
		slog.String("transaction_set_id", set.TransactionSetID),
		slog.Int("movement_count", len(movements)),
	)
	return &dto.RecordMovementsResponse{
		TransactionSetID: set.TransactionSetID,
		MovementIDs:      movementIDs,
	}, nil
}

// PostInventoryMovements posts a staged inventory set through the engine.
func (s *inventoryService) PostInventoryMovements(ctx context.Context, tenantID, actorID, setID string) (*dto.PostingResult, error) {
	set, err := s.setRepo.FindSetByID(ctx, tenantID, setID)
	if err != nil {
		return nil, err
	}
	if set.Source != domain.SourceInventory {
		return nil, fmt.Errorf("%w: set %s is a %s set", apperrors.ErrValidation, setID, set.Source)
	}
	return s.postingSvc.PostTransactionSet(ctx, tenantID, actorID, setID)
}
