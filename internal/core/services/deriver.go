package services

import (
	"context"
	"fmt"

	"github.com/bizbooks/bizbooks_backend/internal/apperrors"
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
)

// LineDeriver turns one domain event into balanced journal lines. Every
// source type funnels through one implementation here so the atomic commit
// logic in the posting engine stays in a single place.
type LineDeriver interface {
	Derive(ctx context.Context, set domain.TransactionSet) ([]domain.JournalLine, error)
}

// paymentLineDeriver books a payment against its allocations: a receipt
// debits the bank account for the full amount and credits the AR control per
// allocation; a vendor payment debits the AP control per allocation and
// credits the bank account. Any unallocated remainder lands on the counter
// account as an on-account leg so the entry still balances.
type paymentLineDeriver struct {
	payments portsrepo.PaymentReader
}

func (d *paymentLineDeriver) Derive(ctx context.Context, set domain.TransactionSet) ([]domain.JournalLine, error) {
	payment, err := d.payments.FindPaymentByTransactionSetID(ctx, set.TenantID, set.TransactionSetID)
	if err != nil {
		return nil, fmt.Errorf("failed to load payment for set %s: %w", set.TransactionSetID, err)
	}
	if !payment.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}

	allocations, err := d.payments.FindAllocationsByPaymentID(ctx, payment.PaymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load allocations for payment %s: %w", payment.PaymentID, err)
	}

	allocated := domain.SumAllocations(allocations)
	if allocated.GreaterThan(payment.Amount) {
		return nil, fmt.Errorf("%w: allocations %s exceed payment amount %s", apperrors.ErrValidation, allocated.String(), payment.Amount.String())
	}
	remainder := payment.Amount.Sub(allocated)

	var lines []domain.JournalLine
	switch payment.PaymentType {
	case domain.Receipt:
		lines = append(lines, domain.JournalLine{
			AccountID:   payment.BankAccountID,
			Debit:       payment.Amount,
			Description: fmt.Sprintf("Receipt from %s", payment.PartyID),
		})
		for _, a := range allocations {
			lines = append(lines, domain.JournalLine{
				AccountID:   payment.CounterAccountID,
				Credit:      a.Amount,
				Description: fmt.Sprintf("Settles %s", a.TargetID),
			})
		}
		if remainder.IsPositive() {
			lines = append(lines, domain.JournalLine{
				AccountID:   payment.CounterAccountID,
				Credit:      remainder,
				Description: "On account",
			})
		}
	case domain.VendorPayment:
		for _, a := range allocations {
			lines = append(lines, domain.JournalLine{
				AccountID:   payment.CounterAccountID,
				Debit:       a.Amount,
				Description: fmt.Sprintf("Settles %s", a.TargetID),
			})
		}
		if remainder.IsPositive() {
			lines = append(lines, domain.JournalLine{
				AccountID:   payment.CounterAccountID,
				Debit:       remainder,
				Description: "On account",
			})
		}
		lines = append(lines, domain.JournalLine{
			AccountID:   payment.BankAccountID,
			Credit:      payment.Amount,
			Description: fmt.Sprintf("Payment to %s", payment.PartyID),
		})
	default:
		return nil, fmt.Errorf("%w: unknown payment type %s", apperrors.ErrValidation, payment.PaymentType)
	}

	return lines, nil
}

// inventoryLineDeriver books staged stock movements: inbound movements debit
// the inventory account and credit the offset (GRNI/clearing) account for
// quantity x unit cost; outbound movements are the mirror image (COGS leg).
type inventoryLineDeriver struct {
	inventory portsrepo.InventoryReader
}

func (d *inventoryLineDeriver) Derive(ctx context.Context, set domain.TransactionSet) ([]domain.JournalLine, error) {
	movements, err := d.inventory.FindMovementsByTransactionSetID(ctx, set.TenantID, set.TransactionSetID)
	if err != nil {
		return nil, fmt.Errorf("failed to load movements for set %s: %w", set.TransactionSetID, err)
	}
	if len(movements) == 0 {
		return nil, fmt.Errorf("%w: no inventory movements staged for set %s", apperrors.ErrValidation, set.TransactionSetID)
	}

	var lines []domain.JournalLine
	for _, m := range movements {
		value := m.Value()
		if !value.IsPositive() {
			return nil, fmt.Errorf("%w: movement %s has non-positive value", apperrors.ErrValidation, m.MovementID)
		}
		desc := fmt.Sprintf("%s %s x %s", m.Direction, m.Quantity.String(), m.ItemID)
		switch m.Direction {
		case domain.MovementIn:
			lines = append(lines,
				domain.JournalLine{AccountID: m.InventoryAccountID, Debit: value, Description: desc},
				domain.JournalLine{AccountID: m.OffsetAccountID, Credit: value, Description: desc},
			)
		case domain.MovementOut:
			lines = append(lines,
				domain.JournalLine{AccountID: m.OffsetAccountID, Debit: value, Description: desc},
				domain.JournalLine{AccountID: m.InventoryAccountID, Credit: value, Description: desc},
			)
		default:
			return nil, fmt.Errorf("%w: unknown movement direction %s", apperrors.ErrValidation, m.Direction)
		}
	}
	return lines, nil
}

// stagedLineDeriver lifts caller-supplied staged lines verbatim. Manual,
// transfer, expense and capital sources all resolve here.
type stagedLineDeriver struct {
	sets portsrepo.TransactionSetReader
}

func (d *stagedLineDeriver) Derive(ctx context.Context, set domain.TransactionSet) ([]domain.JournalLine, error) {
	staged, err := d.sets.FindStagedLines(ctx, set.TransactionSetID)
	if err != nil {
		return nil, fmt.Errorf("failed to load staged lines for set %s: %w", set.TransactionSetID, err)
	}
	if len(staged) == 0 {
		return nil, fmt.Errorf("%w: no lines staged for set %s", apperrors.ErrValidation, set.TransactionSetID)
	}

	lines := make([]domain.JournalLine, len(staged))
	for i, s := range staged {
		lines[i] = domain.JournalLine{
			AccountID:   s.AccountID,
			Debit:       s.Debit,
			Credit:      s.Credit,
			Description: s.Description,
			LineNumber:  s.LineNumber,
		}
	}
	return lines, nil
}
