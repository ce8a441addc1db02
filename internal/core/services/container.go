package services

import (
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
)

// NewServiceContainer wires all services over the repository provider. The
// posting engine is constructed first because payments and inventory post
// through it.
func NewServiceContainer(repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	posting := NewPostingService(
		repos.LedgerRepo,
		repos.TransactionSetRepo,
		repos.PaymentRepo,
		repos.InventoryRepo,
		repos.PeriodRepo,
		repos.AccountRepo,
	)
	return &portssvc.ServiceContainer{
		Account:        NewAccountService(repos.AccountRepo),
		TransactionSet: NewTransactionSetService(repos.TransactionSetRepo),
		Posting:        posting,
		Payment:        NewPaymentService(repos.PaymentRepo, repos.DocumentRepo, repos.TransactionSetRepo, posting),
		Document:       NewDocumentService(repos.DocumentRepo),
		Inventory:      NewInventoryService(repos.InventoryRepo, repos.TransactionSetRepo, posting),
		Period:         NewPeriodService(repos.PeriodRepo, repos.TransactionSetRepo, repos.PaymentRepo, repos.LedgerRepo),
		Reporting:      NewReportingService(repos.DocumentRepo, repos.LedgerRepo),
	}
}
