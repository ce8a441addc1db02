package services

// ServiceContainer bundles all service facades for handler injection.
type ServiceContainer struct {
	Account        AccountSvcFacade
	TransactionSet TransactionSetSvcFacade
	Posting        PostingSvcFacade
	Payment        PaymentSvcFacade
	Document       DocumentSvcFacade
	Inventory      InventorySvcFacade
	Period         PeriodSvcFacade
	Reporting      ReportingSvcFacade
}
