package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/TsubasaHiga/fe-xanthiccoffee-sub000/internal/persistence"
)

// DocumentRepository implements persistence.DocumentRepository using SQLite.
type DocumentRepository struct {
	helper *QueryHelper
	mapper *ErrorMapper
	now    func() time.Time
}

// NewDocumentRepository creates a SQLite document repository. A nil clock
// falls back to time.Now.
func NewDocumentRepository(pool *ConnectionPool, now func() time.Time) *DocumentRepository {
	if now == nil {
		now = time.Now
	}
	return &DocumentRepository{
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
		now:    now,
	}
}

// CreateDocument inserts a generated document.
func (r *DocumentRepository) CreateDocument(ctx context.Context, doc persistence.Document) error {
	if doc.ID == "" {
		return persistence.ErrConstraintViolation
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = r.now().UTC()
	}

	query := `
		INSERT INTO documents (id, title, body, created_at)
		VALUES (?, ?, ?, ?)
	`
	if _, err := r.helper.Exec(ctx, query, doc.ID, doc.Title, doc.Body, doc.CreatedAt.Format(time.RFC3339)); err != nil {
		return r.mapper.MapError(err)
	}
	return nil
}

// GetDocument retrieves a document by id.
func (r *DocumentRepository) GetDocument(ctx context.Context, id string) (persistence.Document, error) {
	if id == "" {
		return persistence.Document{}, persistence.ErrNotFound
	}

	query := `SELECT id, title, body, created_at FROM documents WHERE id = ?`

	var doc persistence.Document
	var createdAt string
	err := r.helper.QueryRow(ctx, query, id).Scan(&doc.ID, &doc.Title, &doc.Body, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.Document{}, persistence.ErrNotFound
		}
		return persistence.Document{}, r.mapper.MapError(err)
	}

	if doc.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return persistence.Document{}, fmt.Errorf("sqlite: parse created_at: %w", err)
	}
	return doc, nil
}

// ListDocuments returns documents newest first.
func (r *DocumentRepository) ListDocuments(ctx context.Context, limit int) ([]persistence.Document, error) {
	query := `SELECT id, title, body, created_at FROM documents ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.helper.Query(ctx, query, args...)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	var docs []persistence.Document
	for rows.Next() {
		var doc persistence.Document
		var createdAt string
		if err := rows.Scan(&doc.ID, &doc.Title, &doc.Body, &createdAt); err != nil {
			return nil, r.mapper.MapError(err)
		}
		if doc.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("sqlite: parse created_at: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}
	return docs, nil
}

// DeleteDocument removes a document by id.
func (r *DocumentRepository) DeleteDocument(ctx context.Context, id string) error {
	result, err := r.helper.Exec(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return r.mapper.MapError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: rows affected: %w", err)
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}
