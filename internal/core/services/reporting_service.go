package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
)

type reportingService struct {
	documentRepo portsrepo.DocumentRepositoryFacade
	ledgerRepo   portsrepo.LedgerRepositoryWithTx
}

// NewReportingService creates the read-side reporting service.
func NewReportingService(
	documentRepo portsrepo.DocumentRepositoryFacade,
	ledgerRepo portsrepo.LedgerRepositoryWithTx,
) portssvc.ReportingSvcFacade {
	return &reportingService{documentRepo: documentRepo, ledgerRepo: ledgerRepo}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func (s *reportingService) GetOpenAR(ctx context.Context, tenantID string, partyID *string, asOf time.Time) (*dto.OpenBalanceReport, error) {
	return s.openBalances(ctx, tenantID, domain.SalesDoc, partyID, asOf)
}

func (s *reportingService) GetOpenAP(ctx context.Context, tenantID string, partyID *string, asOf time.Time) (*dto.OpenBalanceReport, error) {
	return s.openBalances(ctx, tenantID, domain.PurchaseDoc, partyID, asOf)
}

func (s *reportingService) GetARStatement(ctx context.Context, tenantID, partyID string, asOf time.Time) (*dto.ARStatement, error) {
	report, err := s.openBalances(ctx, tenantID, domain.SalesDoc, &partyID, asOf)
	if err != nil {
		return nil, err
	}
	return &dto.ARStatement{
		PartyID:   partyID,
		AsOf:      asOf,
		Rows:      report.Rows,
		TotalOpen: report.TotalOpen,
		Aging:     report.Aging,
	}, nil
}

func (s *reportingService) GetTrialBalance(ctx context.Context, tenantID string, rng dto.DateRange) (*dto.TrialBalanceResponse, error) {
	rows, err := s.ledgerRepo.TrialBalance(ctx, tenantID, rng.From, rng.To)
	if err != nil {
		return nil, err
	}
	return &dto.TrialBalanceResponse{From: rng.From, To: rng.To, Rows: rows}, nil
}

func (s *reportingService) openBalances(ctx context.Context, tenantID string, docType domain.DocumentType, partyID *string, asOf time.Time) (*dto.OpenBalanceReport, error) {
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}
	docs, err := s.documentRepo.ListOpenDocuments(ctx, tenantID, docType, partyID, asOf)
	if err != nil {
		return nil, err
	}

	report := &dto.OpenBalanceReport{
		DocumentType: docType,
		AsOf:         asOf,
		Rows:         make([]dto.OpenDocumentRow, 0, len(docs)),
		TotalOpen:    decimal.Zero,
	}
	for _, d := range docs {
		if d.Open.LessThanOrEqual(decimal.Zero) {
			continue // Fully settled documents drop out of the report.
		}
		overdue := daysOverdue(d.DueDate, asOf)
		row := dto.OpenDocumentRow{
			DocumentID:  d.DocumentID,
			PartyID:     d.PartyID,
			DocDate:     d.DocDate,
			DueDate:     d.DueDate,
			Total:       d.Total,
			Allocated:   d.Allocated,
			Open:        d.Open,
			DaysOverdue: overdue,
			Bucket:      bucketFor(overdue),
		}
		report.Rows = append(report.Rows, row)
		report.TotalOpen = report.TotalOpen.Add(d.Open)
		addToBucket(&report.Aging, row.Bucket, d.Open)
	}
	return report, nil
}

// daysOverdue counts whole days past due as of the reporting date. Documents
// due on or after asOf are current (zero).
func daysOverdue(dueDate, asOf time.Time) int {
	due := dueDate.Truncate(24 * time.Hour)
	at := asOf.Truncate(24 * time.Hour)
	if !at.After(due) {
		return 0
	}
	return int(at.Sub(due).Hours() / 24)
}

func bucketFor(overdue int) dto.AgingBucket {
	switch {
	case overdue <= 0:
		return dto.BucketCurrent
	case overdue <= 30:
		return dto.Bucket1To30
	case overdue <= 60:
		return dto.Bucket31To60
	case overdue <= 90:
		return dto.Bucket61To90
	}
	return dto.BucketOver90
}

func addToBucket(aging *dto.AgingSummary, bucket dto.AgingBucket, amount decimal.Decimal) {
	switch bucket {
	case dto.BucketCurrent:
		aging.Current = aging.Current.Add(amount)
	case dto.Bucket1To30:
		aging.Days1To30 = aging.Days1To30.Add(amount)
	case dto.Bucket31To60:
		aging.Days31To60 = aging.Days31To60.Add(amount)
	case dto.Bucket61To90:
		aging.Days61To90 = aging.Days61To90.Add(amount)
	case dto.BucketOver90:
		aging.Over90 = aging.Over90.Add(amount)
	}
}
