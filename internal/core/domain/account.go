package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// IsValid reports whether the account type is one of the five fundamental types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// Account is a node in the chart of accounts. Accounts are created during
// setup, rarely mutated, and never deleted because historical journal lines
// reference them; deactivation is the only retirement path.
type Account struct {
	AccountID       string      `json:"accountID"`
	TenantID        string      `json:"tenantID"`
	Code            string      `json:"code"` // Sortable, hierarchical by convention (e.g. "1010" = cash). Unique per tenant.
	Name            string      `json:"name"`
	AccountType     AccountType `json:"accountType"`
	ParentAccountID *string     `json:"parentAccountID,omitempty"` // Optional roll-up parent
	Description     string      `json:"description"`
	IsActive        bool        `json:"isActive"`
	AuditFields
}
