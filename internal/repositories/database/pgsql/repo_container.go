package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider constructs all pgx-backed repositories over one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		AccountRepo:        newPgxAccountRepository(dbPool),
		LedgerRepo:         newPgxLedgerRepository(dbPool),
		TransactionSetRepo: newPgxTransactionSetRepository(dbPool),
		PaymentRepo:        newPgxPaymentRepository(dbPool),
		DocumentRepo:       newPgxDocumentRepository(dbPool),
		InventoryRepo:      newPgxInventoryRepository(dbPool),
		PeriodRepo:         newPgxPeriodRepository(dbPool),
	}
}
