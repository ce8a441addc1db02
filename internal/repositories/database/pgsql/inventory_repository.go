package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bizbooks/bizbooks_backend/internal/apperrors"
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
)

type PgxInventoryRepository struct {
	pool *pgxpool.Pool
}

// newPgxInventoryRepository creates a new repository for staged inventory movements.
func newPgxInventoryRepository(pool *pgxpool.Pool) portsrepo.InventoryRepositoryFacade {
	return &PgxInventoryRepository{pool: pool}
}

var _ portsrepo.InventoryRepositoryFacade = (*PgxInventoryRepository)(nil)

func (r *PgxInventoryRepository) SaveMovements(ctx context.Context, movements []domain.InventoryMovement) error {
	if len(movements) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	query := `
		INSERT INTO inventory_movements (movement_id, tenant_id, transaction_set_id, item_id, direction,
		                                 quantity, unit_cost, inventory_account_id, offset_account_id, memo,
		                                 created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	for _, m := range movements {
		batch.Queue(query,
			m.MovementID, m.TenantID, m.TransactionSetID, m.ItemID, m.Direction,
			m.Quantity, m.UnitCost, m.InventoryAccountID, m.OffsetAccountID, m.Memo,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
	}
	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()
	for range movements {
		if _, err := results.Exec(); err != nil {
			return apperrors.NewAppError(500, "failed to insert inventory movement", err)
		}
	}
	return nil
}

func (r *PgxInventoryRepository) FindMovementsByTransactionSetID(ctx context.Context, tenantID, setID string) ([]domain.InventoryMovement, error) {
	query := `
		SELECT movement_id, tenant_id, transaction_set_id, item_id, direction,
		       quantity, unit_cost, inventory_account_id, offset_account_id, memo,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM inventory_movements
		WHERE tenant_id = $1 AND transaction_set_id = $2
		ORDER BY created_at, movement_id;
	`
	rows, err := r.pool.Query(ctx, query, tenantID, setID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query movements for set "+setID, err)
	}
	defer rows.Close()

	var movements []domain.InventoryMovement
	for rows.Next() {
		var m domain.InventoryMovement
		if err := rows.Scan(
			&m.MovementID, &m.TenantID, &m.TransactionSetID, &m.ItemID, &m.Direction,
			&m.Quantity, &m.UnitCost, &m.InventoryAccountID, &m.OffsetAccountID, &m.Memo,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan inventory movement", err)
		}
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate inventory movements", err)
	}
	return movements, nil
}
