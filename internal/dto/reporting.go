package dto

import (
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DateRange bounds a reporting or listing query by posting date.
type DateRange struct {
	From time.Time `form:"from" time_format:"2006-01-02"`
	To   time.Time `form:"to" time_format:"2006-01-02"`
}

// AgingBucket labels how overdue an open document is.
type AgingBucket string

const (
	BucketCurrent AgingBucket = "CURRENT"
	Bucket1To30   AgingBucket = "1_30"
	Bucket31To60  AgingBucket = "31_60"
	Bucket61To90  AgingBucket = "61_90"
	BucketOver90  AgingBucket = "OVER_90"
)

// OpenDocumentRow is one open document with settlement and aging detail.
type OpenDocumentRow struct {
	DocumentID  string          `json:"documentID"`
	PartyID     string          `json:"partyID"`
	DocDate     time.Time       `json:"docDate"`
	DueDate     time.Time       `json:"dueDate"`
	Total       decimal.Decimal `json:"total"`
	Allocated   decimal.Decimal `json:"allocated"`
	Open        decimal.Decimal `json:"open"`
	DaysOverdue int             `json:"daysOverdue"`
	Bucket      AgingBucket     `json:"bucket"`
}

// AgingSummary totals open amounts per overdue bucket.
type AgingSummary struct {
	Current    decimal.Decimal `json:"current"`
	Days1To30  decimal.Decimal `json:"days1To30"`
	Days31To60 decimal.Decimal `json:"days31To60"`
	Days61To90 decimal.Decimal `json:"days61To90"`
	Over90     decimal.Decimal `json:"over90"`
}

// OpenBalanceReport lists open receivables or payables as of a date.
type OpenBalanceReport struct {
	DocumentType domain.DocumentType `json:"documentType"`
	AsOf         time.Time           `json:"asOf"`
	Rows         []OpenDocumentRow   `json:"rows"`
	TotalOpen    decimal.Decimal     `json:"totalOpen"`
	Aging        AgingSummary        `json:"aging"`
}

// ARStatement is the receivables statement for one party.
type ARStatement struct {
	PartyID   string            `json:"partyID"`
	AsOf      time.Time         `json:"asOf"`
	Rows      []OpenDocumentRow `json:"rows"`
	TotalOpen decimal.Decimal   `json:"totalOpen"`
	Aging     AgingSummary      `json:"aging"`
}

// TrialBalanceResponse sums per-account activity over a date range.
type TrialBalanceResponse struct {
	From time.Time                `json:"from"`
	To   time.Time                `json:"to"`
	Rows []domain.TrialBalanceRow `json:"rows"`
}
