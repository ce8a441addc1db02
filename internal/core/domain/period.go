package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodStatus is the escalating lock level of an accounting period.
type PeriodStatus string

const (
	PeriodOpen       PeriodStatus = "OPEN"
	PeriodSoftClosed PeriodStatus = "SOFT_CLOSED" // Advisory; posting is still allowed
	PeriodHardClosed PeriodStatus = "HARD_CLOSED" // Rejects all postings dated within the period
)

// PeriodChecklist snapshots the loose ends counted at close time.
type PeriodChecklist struct {
	DraftTransactionSets  int `json:"draftTransactionSets"`
	ReviewTransactionSets int `json:"reviewTransactionSets"`
	DraftPayments         int `json:"draftPayments"`
}

// Outstanding returns the total count of blocking items.
func (c PeriodChecklist) Outstanding() int {
	return c.DraftTransactionSets + c.ReviewTransactionSets + c.DraftPayments
}

// PeriodTotals is the frozen activity snapshot taken at hard close.
type PeriodTotals struct {
	TotalDebits  decimal.Decimal `json:"totalDebits"`
	TotalCredits decimal.Decimal `json:"totalCredits"`
	EntryCount   int             `json:"entryCount"`
}

// AccountingPeriod gates postability for a date range, normally a calendar
// month. Hard-closed periods reject all new postings whose business date
// falls inside the range, regardless of actor.
type AccountingPeriod struct {
	PeriodID     string           `json:"periodID"`
	TenantID     string           `json:"tenantID"`
	Label        string           `json:"label"`
	StartDate    time.Time        `json:"startDate"`
	EndDate      time.Time        `json:"endDate"` // Inclusive
	Status       PeriodStatus     `json:"status"`
	SoftClosedAt *time.Time       `json:"softClosedAt,omitempty"`
	SoftClosedBy *string          `json:"softClosedBy,omitempty"`
	HardClosedAt *time.Time       `json:"hardClosedAt,omitempty"`
	HardClosedBy *string          `json:"hardClosedBy,omitempty"`
	ReopenedAt   *time.Time       `json:"reopenedAt,omitempty"`
	ReopenedBy   *string          `json:"reopenedBy,omitempty"`
	ReopenReason *string          `json:"reopenReason,omitempty"`
	Checklist    *PeriodChecklist `json:"checklist,omitempty"` // Snapshot from soft/hard close
	Totals       *PeriodTotals    `json:"totals,omitempty"`    // Frozen at hard close
	AuditFields
}

// Contains reports whether the business date falls inside the period,
// comparing calendar dates and ignoring time-of-day.
func (p AccountingPeriod) Contains(date time.Time) bool {
	d := date.Truncate(24 * time.Hour)
	start := p.StartDate.Truncate(24 * time.Hour)
	end := p.EndDate.Truncate(24 * time.Hour)
	return !d.Before(start) && !d.After(end)
}

// Overlaps reports whether two period date ranges intersect.
func (p AccountingPeriod) Overlaps(start, end time.Time) bool {
	return !p.EndDate.Before(start) && !p.StartDate.After(end)
}
