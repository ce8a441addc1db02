package domain

import "github.com/shopspring/decimal"

// TrialBalanceRow is one account's activity summary over a date range.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debits      decimal.Decimal `json:"debits"`
	Credits     decimal.Decimal `json:"credits"`
	Net         decimal.Decimal `json:"net"` // Debits - Credits
}
