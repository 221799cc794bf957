package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/theirongolddev/wayfare/internal/model"
)

// Listing columns leave out the payload.
const documentColumns = `id, trip_id, title, doc_type, filename, content_type, size_bytes, added_at`

// CreateDocument stores a document and its payload.
func (s *Store) CreateDocument(ctx context.Context, d model.Document) (model.Document, error) {
	d.ID = newID(d.ID)
	if d.AddedAt.IsZero() {
		d.AddedAt = s.now().UTC()
	}
	if d.Data == nil {
		d.Data = []byte{}
	}
	d.Size = int64(len(d.Data))
	_, err := s.db.ExecContext(ctx, `INSERT INTO documents (`+documentColumns+`, data)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.TripID, d.Title, string(d.Type), d.Filename, d.ContentType, d.Size,
		fmtTime(d.AddedAt), d.Data)
	if err != nil {
		return model.Document{}, fmt.Errorf("inserting document: %w", err)
	}
	return d, nil
}

// GetDocument loads a document including its payload.
func (s *Store) GetDocument(ctx context.Context, id uuid.UUID) (model.Document, error) {
	var r documentRow
	if err := s.db.GetContext(ctx, &r, `SELECT `+documentColumns+`, data FROM documents WHERE id = ?`, id); err != nil {
		return model.Document{}, notFound(err, "document "+id.String())
	}
	return r.model()
}

// ListDocuments returns a trip's documents without payloads, newest first.
func (s *Store) ListDocuments(ctx context.Context, tripID uuid.UUID) ([]model.Document, error) {
	var rows []documentRow
	err := s.db.SelectContext(ctx, &rows, `SELECT `+documentColumns+` FROM documents
		WHERE trip_id = ? ORDER BY added_at DESC, title`, tripID)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	out := make([]model.Document, 0, len(rows))
	for _, r := range rows {
		d, err := r.model()
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// DeleteDocument removes a document.
func (s *Store) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	return s.execOne(ctx, "deleting document "+id.String(), `DELETE FROM documents WHERE id = ?`, id)
}
