package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bizbooks/bizbooks_backend/internal/apperrors"
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
)

type PgxDocumentRepository struct {
	pool *pgxpool.Pool
}

// newPgxDocumentRepository creates a new repository for AR/AP documents.
func newPgxDocumentRepository(pool *pgxpool.Pool) portsrepo.DocumentRepositoryFacade {
	return &PgxDocumentRepository{pool: pool}
}

var _ portsrepo.DocumentRepositoryFacade = (*PgxDocumentRepository)(nil)

const documentColumns = `document_id, tenant_id, document_type, party_id, doc_date, due_date, total, memo, created_at, created_by, last_updated_at, last_updated_by`

func scanDocument(row pgx.Row) (domain.Document, error) {
	var d domain.Document
	err := row.Scan(
		&d.DocumentID, &d.TenantID, &d.DocumentType, &d.PartyID, &d.DocDate, &d.DueDate,
		&d.Total, &d.Memo,
		&d.CreatedAt, &d.CreatedBy, &d.LastUpdatedAt, &d.LastUpdatedBy,
	)
	return d, err
}

func (r *PgxDocumentRepository) SaveDocument(ctx context.Context, document domain.Document) error {
	query := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.pool.Exec(ctx, query,
		document.DocumentID, document.TenantID, document.DocumentType, document.PartyID,
		document.DocDate, document.DueDate, document.Total, document.Memo,
		document.CreatedAt, document.CreatedBy, document.LastUpdatedAt, document.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert document "+document.DocumentID, err)
	}
	return nil
}

func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, tenantID, documentID string) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE tenant_id = $1 AND document_id = $2;`
	document, err := scanDocument(r.pool.QueryRow(ctx, query, tenantID, documentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: document %s", apperrors.ErrNotFound, documentID)
		}
		return nil, apperrors.NewAppError(500, "failed to find document "+documentID, err)
	}
	return &document, nil
}

func (r *PgxDocumentRepository) FindDocumentsByIDs(ctx context.Context, tenantID string, documentIDs []string) (map[string]domain.Document, error) {
	if len(documentIDs) == 0 {
		return map[string]domain.Document{}, nil
	}
	query := `SELECT ` + documentColumns + ` FROM documents WHERE tenant_id = $1 AND document_id = ANY($2);`
	rows, err := r.pool.Query(ctx, query, tenantID, documentIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query documents by IDs", err)
	}
	defer rows.Close()

	documents := make(map[string]domain.Document, len(documentIDs))
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan document row", err)
		}
		documents[d.DocumentID] = d
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate document rows", err)
	}
	return documents, nil
}

// ListOpenDocuments computes open balances on the fly: total minus the
// allocations of posted payments dated on or before asOf. Documents never
// store a running balance.
func (r *PgxDocumentRepository) ListOpenDocuments(ctx context.Context, tenantID string, docType domain.DocumentType, partyID *string, asOf time.Time) ([]domain.OpenDocument, error) {
	query := `
		SELECT ` + qualify(documentColumns, "d") + `,
		       COALESCE(SUM(a.amount) FILTER (WHERE p.status = 'POSTED' AND p.payment_date <= $3), 0) AS allocated
		FROM documents d
		LEFT JOIN payment_allocations a ON a.target_id = d.document_id AND a.target_type = d.document_type
		LEFT JOIN payments p ON p.payment_id = a.payment_id
		WHERE d.tenant_id = $1 AND d.document_type = $2 AND d.doc_date <= $3
		  AND ($4::text IS NULL OR d.party_id = $4)
		GROUP BY d.document_id
		ORDER BY d.due_date, d.document_id;
	`
	rows, err := r.pool.Query(ctx, query, tenantID, docType, asOf, partyID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query open documents", err)
	}
	defer rows.Close()

	var out []domain.OpenDocument
	for rows.Next() {
		var d domain.OpenDocument
		if err := rows.Scan(
			&d.DocumentID, &d.TenantID, &d.DocumentType, &d.PartyID, &d.DocDate, &d.DueDate,
			&d.Total, &d.Memo,
			&d.CreatedAt, &d.CreatedBy, &d.LastUpdatedAt, &d.LastUpdatedBy,
			&d.Allocated,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan open document row", err)
		}
		d.Open = d.Total.Sub(d.Allocated)
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate open document rows", err)
	}
	return out, nil
}
