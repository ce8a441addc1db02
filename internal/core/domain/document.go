package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentType identifies which side of the ledger a document sits on.
type DocumentType string

const (
	SalesDoc    DocumentType = "SALES_DOC"    // Receivable (AR) target
	PurchaseDoc DocumentType = "PURCHASE_DOC" // Payable (AP) target
)

// IsValid reports whether the document type is known.
func (t DocumentType) IsValid() bool {
	return t == SalesDoc || t == PurchaseDoc
}

// Document is an open receivable or payable that payments allocate against.
// The document's open amount is its total minus the allocations of posted
// payments; the document row itself never stores a running balance.
type Document struct {
	DocumentID   string          `json:"documentID"`
	TenantID     string          `json:"tenantID"`
	DocumentType DocumentType    `json:"documentType"`
	PartyID      string          `json:"partyID"`
	DocDate      time.Time       `json:"docDate"`
	DueDate      time.Time       `json:"dueDate"`
	Total        decimal.Decimal `json:"total"`
	Memo         string          `json:"memo"`
	AuditFields
}

// OpenDocument pairs a document with its settled and open amounts as of a
// reporting date.
type OpenDocument struct {
	Document
	Allocated decimal.Decimal `json:"allocated"` // Sum of allocations from posted payments
	Open      decimal.Decimal `json:"open"`      // Total - Allocated
}
