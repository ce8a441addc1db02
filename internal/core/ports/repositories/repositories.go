package repositories

// RepositoryProvider bundles all repository facades for dependency injection.
type RepositoryProvider struct {
	AccountRepo        AccountRepositoryFacade
	LedgerRepo         LedgerRepositoryWithTx
	TransactionSetRepo TransactionSetRepositoryFacade
	PaymentRepo        PaymentRepositoryFacade
	DocumentRepo       DocumentRepositoryFacade
	InventoryRepo      InventoryRepositoryFacade
	PeriodRepo         PeriodRepositoryFacade
}
