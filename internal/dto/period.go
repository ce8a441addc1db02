package dto

import (
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
)

// CreatePeriodRequest opens a new accounting period.
type CreatePeriodRequest struct {
	Label     string    `json:"label" binding:"required"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
}

// HardCloseRequest hard-closes a period. Force allows closing straight from
// open and overrides outstanding checklist items.
type HardCloseRequest struct {
	Force bool `json:"force"`
}

// ReopenRequest reopens a closed period. The reason is mandatory and must
// carry at least 10 characters for the audit trail.
type ReopenRequest struct {
	Reason string `json:"reason" binding:"required,min=10"`
}

// PeriodResponse is the API shape of an accounting period.
type PeriodResponse struct {
	PeriodID     string                  `json:"periodID"`
	Label        string                  `json:"label"`
	StartDate    time.Time               `json:"startDate"`
	EndDate      time.Time               `json:"endDate"`
	Status       domain.PeriodStatus     `json:"status"`
	SoftClosedAt *time.Time              `json:"softClosedAt,omitempty"`
	HardClosedAt *time.Time              `json:"hardClosedAt,omitempty"`
	ReopenedAt   *time.Time              `json:"reopenedAt,omitempty"`
	ReopenReason *string                 `json:"reopenReason,omitempty"`
	Checklist    *domain.PeriodChecklist `json:"checklist,omitempty"`
	Totals       *domain.PeriodTotals    `json:"totals,omitempty"`
}

// ToPeriodResponse maps a domain period to its API shape.
func ToPeriodResponse(p *domain.AccountingPeriod) PeriodResponse {
	return PeriodResponse{
		PeriodID:     p.PeriodID,
		Label:        p.Label,
		StartDate:    p.StartDate,
		EndDate:      p.EndDate,
		Status:       p.Status,
		SoftClosedAt: p.SoftClosedAt,
		HardClosedAt: p.HardClosedAt,
		ReopenedAt:   p.ReopenedAt,
		ReopenReason: p.ReopenReason,
		Checklist:    p.Checklist,
		Totals:       p.Totals,
	}
}
