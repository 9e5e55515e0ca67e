package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"internhub/internal/app/models"
	"internhub/internal/pkg/apperrors"
)

// DocumentRepository handles uploaded document metadata
type DocumentRepository struct {
	db *pgxpool.Pool
}

// NewDocumentRepository creates a new DocumentRepository
func NewDocumentRepository(db *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// CreateDocumentTx inserts document metadata inside the caller's
// transaction. A nil q falls back to the pool for standalone uploads.
func (r *DocumentRepository) CreateDocumentTx(ctx context.Context, q DBTX, d *models.Document) (int64, error) {
	if q == nil {
		q = r.db
	}
	var id int64
	err := q.QueryRow(ctx, `
		INSERT INTO documents (student_id, file_path, file_name, doc_type)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		d.StudentID, d.FilePath, d.FileName, d.DocType).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error creating document: %w", err)
	}
	return id, nil
}

// GetDocumentByID retrieves a document
func (r *DocumentRepository) GetDocumentByID(ctx context.Context, id int64) (*models.Document, error) {
	d := &models.Document{}
	err := r.db.QueryRow(ctx, `
		SELECT id, student_id, file_path, file_name, doc_type, upload_date
		FROM documents
		WHERE id = $1`,
		id).Scan(&d.ID, &d.StudentID, &d.FilePath, &d.FileName, &d.DocType, &d.UploadDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving document: %w", err)
	}
	return d, nil
}

// ListByStudent returns a student's documents, newest first
func (r *DocumentRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.Document, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, student_id, file_path, file_name, doc_type, upload_date
		FROM documents
		WHERE student_id = $1
		ORDER BY upload_date DESC`,
		studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing documents: %w", err)
	}
	defer rows.Close()

	var docs []*models.Document
	for rows.Next() {
		d := &models.Document{}
		if err := rows.Scan(&d.ID, &d.StudentID, &d.FilePath, &d.FileName, &d.DocType, &d.UploadDate); err != nil {
			return nil, fmt.Errorf("error scanning document row: %w", err)
		}
		docs = append(docs, d)
	}

	return docs, rows.Err()
}

// UpdateDocument replaces the stored file reference
func (r *DocumentRepository) UpdateDocument(ctx context.Context, d *models.Document) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE documents
		SET file_path = $1, file_name = $2, doc_type = $3, upload_date = NOW()
		WHERE id = $4`,
		d.FilePath, d.FileName, d.DocType, d.ID)
	if err != nil {
		return fmt.Errorf("error updating document: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// DeleteDocument removes a document record
func (r *DocumentRepository) DeleteDocument(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting document: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}
