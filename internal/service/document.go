package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/theirongolddev/wayfare/internal/model"
	"github.com/theirongolddev/wayfare/internal/store"
)

// MaxDocumentSize caps a stored payload.
const MaxDocumentSize = 25 << 20

// DocumentService implements document rules.
type DocumentService struct {
	repo  DocumentRepo
	trips TripRepo
	ids   Resolver
	log   *zap.Logger
}

// NewDocumentService constructs a DocumentService.
func NewDocumentService(r DocumentRepo, trips TripRepo, ids Resolver, log *zap.Logger) *DocumentService {
	return &DocumentService{repo: r, trips: trips, ids: ids, log: orNop(log)}
}

// Add validates and stores a document. The content type is sniffed from
// the payload; the title defaults to the file name.
func (s *DocumentService) Add(ctx context.Context, d model.Document) (model.Document, error) {
	if d.TripID == uuid.Nil {
		return model.Document{}, fmt.Errorf("%w: trip id is required", ErrValidation)
	}
	d.Filename = filepath.Base(strings.TrimSpace(d.Filename))
	if d.Filename == "." || d.Filename == string(filepath.Separator) {
		return model.Document{}, fmt.Errorf("%w: filename is required", ErrValidation)
	}
	if strings.TrimSpace(d.Title) == "" {
		d.Title = d.Filename
	}
	var err error
	if d.Title, err = required("title", d.Title); err != nil {
		return model.Document{}, err
	}
	if d.Type == "" {
		d.Type = model.DocOther
	}
	if !d.Type.Valid() {
		return model.Document{}, fmt.Errorf("%w: unknown document type %q", ErrValidation, d.Type)
	}
	if len(d.Data) == 0 {
		return model.Document{}, fmt.Errorf("%w: document is empty", ErrValidation)
	}
	if len(d.Data) > MaxDocumentSize {
		return model.Document{}, fmt.Errorf("%w: document is %s, limit is %s", ErrValidation,
			humanize.IBytes(uint64(len(d.Data))), humanize.IBytes(MaxDocumentSize))
	}
	d.ContentType = http.DetectContentType(d.Data)

	if _, err := s.trips.GetTrip(ctx, d.TripID); err != nil {
		return model.Document{}, err
	}
	created, err := s.repo.CreateDocument(ctx, d)
	if err != nil {
		return model.Document{}, fmt.Errorf("storing document: %w", err)
	}
	s.log.Info("document added",
		zap.Stringer("id", created.ID),
		zap.String("filename", created.Filename),
		zap.Int64("size", created.Size),
		zap.String("content_type", created.ContentType))
	return created, nil
}

// AddFile reads a file from disk and stores it as a document.
func (s *DocumentService) AddFile(ctx context.Context, tripID uuid.UUID, title string, typ model.DocumentType, path string) (model.Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return model.Document{}, fmt.Errorf("reading document: %w", err)
	}
	if info.IsDir() {
		return model.Document{}, fmt.Errorf("%w: %s is a directory", ErrValidation, path)
	}
	if info.Size() > MaxDocumentSize {
		return model.Document{}, fmt.Errorf("%w: %s is %s, limit is %s", ErrValidation, path,
			humanize.IBytes(uint64(info.Size())), humanize.IBytes(MaxDocumentSize))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Document{}, fmt.Errorf("reading document: %w", err)
	}
	return s.Add(ctx, model.Document{
		TripID:   tripID,
		Title:    title,
		Type:     typ,
		Filename: filepath.Base(path),
		Data:     data,
	})
}

// Get loads a document with its payload.
func (s *DocumentService) Get(ctx context.Context, id uuid.UUID) (model.Document, error) {
	return s.repo.GetDocument(ctx, id)
}

// List returns a trip's documents without payloads.
func (s *DocumentService) List(ctx context.Context, tripID uuid.UUID) ([]model.Document, error) {
	return s.repo.ListDocuments(ctx, tripID)
}

// Export writes a document's payload into dir under its original file
// name and returns the written path. Existing files are not overwritten.
func (s *DocumentService) Export(ctx context.Context, id uuid.UUID, dir string) (string, error) {
	d, err := s.repo.GetDocument(ctx, id)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("creating export dir: %w", err)
	}
	path := filepath.Join(dir, filepath.Base(d.Filename))
	if err := writeNew(path, bytes.NewReader(d.Data)); err != nil {
		return "", err
	}
	s.log.Info("document exported", zap.Stringer("id", id), zap.String("path", path))
	return path, nil
}

// writeNew copies r into a file that must not exist yet. A failed copy
// leaves nothing behind.
func writeNew(path string, r io.Reader) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s already exists", ErrValidation, path)
		}
		return fmt.Errorf("exporting document: %w", err)
	}
	_, err = io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("exporting document: %w", err)
	}
	return nil
}

// Delete removes a document.
func (s *DocumentService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteDocument(ctx, id); err != nil {
		return err
	}
	s.log.Info("document deleted", zap.Stringer("id", id))
	return nil
}

// Resolve expands an abbreviated document id.
func (s *DocumentService) Resolve(ctx context.Context, prefix string) (uuid.UUID, error) {
	return s.ids.Resolve(ctx, store.TableDocuments, prefix)
}
