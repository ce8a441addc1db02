package dto

import (
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateDocumentRequest registers a receivable or payable document.
type CreateDocumentRequest struct {
	DocumentType domain.DocumentType `json:"documentType" binding:"required,oneof=SALES_DOC PURCHASE_DOC"`
	PartyID      string              `json:"partyID" binding:"required"`
	DocDate      time.Time           `json:"docDate" binding:"required"`
	DueDate      time.Time           `json:"dueDate" binding:"required"`
	Total        decimal.Decimal     `json:"total" binding:"required"`
	Memo         string              `json:"memo"`
}

// DocumentResponse is the API shape of a document.
type DocumentResponse struct {
	DocumentID   string              `json:"documentID"`
	DocumentType domain.DocumentType `json:"documentType"`
	PartyID      string              `json:"partyID"`
	DocDate      time.Time           `json:"docDate"`
	DueDate      time.Time           `json:"dueDate"`
	Total        decimal.Decimal     `json:"total"`
	Memo         string              `json:"memo"`
}

// ToDocumentResponse maps a domain document to its API shape.
func ToDocumentResponse(d *domain.Document) DocumentResponse {
	return DocumentResponse{
		DocumentID:   d.DocumentID,
		DocumentType: d.DocumentType,
		PartyID:      d.PartyID,
		DocDate:      d.DocDate,
		DueDate:      d.DueDate,
		Total:        d.Total,
		Memo:         d.Memo,
	}
}
