package service_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/wayfare/internal/model"
	"github.com/theirongolddev/wayfare/internal/service"
)

func newDocumentService(trip model.Trip, saved *model.Document) *service.DocumentService {
	repo := &mockDocumentRepo{
		create: func(_ context.Context, d model.Document) (model.Document, error) {
			d.ID = uuid.New()
			d.Size = int64(len(d.Data))
			*saved = d
			return d, nil
		},
		get: func(_ context.Context, id uuid.UUID) (model.Document, error) {
			return *saved, nil
		},
	}
	return service.NewDocumentService(repo, tripsWith(trip), nil, nil)
}

func TestDocumentService_Add_SniffsContentType(t *testing.T) {
	trip := tenDayTrip()
	trip.ID = uuid.New()
	var saved model.Document
	svc := newDocumentService(trip, &saved)

	got, err := svc.Add(context.Background(), model.Document{
		TripID:   trip.ID,
		Type:     model.DocTicket,
		Filename: "../tickets/boarding.pdf",
		Data:     []byte("%PDF-1.7\n1 0 obj"),
	})

	require.NoError(t, err)
	assert.Equal(t, "application/pdf", got.ContentType)
	assert.Equal(t, "boarding.pdf", got.Filename, "directories are stripped from the name")
	assert.Equal(t, "boarding.pdf", got.Title, "title defaults to the file name")
}

func TestDocumentService_Add_Rejects(t *testing.T) {
	trip := tenDayTrip()
	trip.ID = uuid.New()
	var saved model.Document
	svc := newDocumentService(trip, &saved)

	tests := []struct {
		name string
		doc  model.Document
	}{
		{"missing trip", model.Document{Filename: "a.txt", Data: []byte("x")}},
		{"missing filename", model.Document{TripID: trip.ID, Data: []byte("x")}},
		{"empty payload", model.Document{TripID: trip.ID, Filename: "a.txt"}},
		{"unknown type", model.Document{TripID: trip.ID, Filename: "a.txt", Type: "diary", Data: []byte("x")}},
		{"too large", model.Document{TripID: trip.ID, Filename: "a.bin", Data: make([]byte, service.MaxDocumentSize+1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Add(context.Background(), tt.doc)
			assert.ErrorIs(t, err, service.ErrValidation)
		})
	}
}

func TestDocumentService_AddFileAndExport(t *testing.T) {
	trip := tenDayTrip()
	trip.ID = uuid.New()
	var saved model.Document
	svc := newDocumentService(trip, &saved)

	src := filepath.Join(t.TempDir(), "insurance.txt")
	payload := []byte("policy 42, valid worldwide")
	require.NoError(t, os.WriteFile(src, payload, 0o600))

	doc, err := svc.AddFile(context.Background(), trip.ID, "Insurance", model.DocInsurance, src)
	require.NoError(t, err)
	assert.Equal(t, "insurance.txt", doc.Filename)
	assert.Equal(t, "text/plain; charset=utf-8", doc.ContentType)

	outDir := filepath.Join(t.TempDir(), "export")
	path, err := svc.Export(context.Background(), doc.ID, outDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "insurance.txt"), path)

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(payload, written))

	_, err = svc.Export(context.Background(), doc.ID, outDir)
	assert.ErrorIs(t, err, service.ErrValidation, "existing files are not overwritten")
}

func TestDocumentService_AddFile_Directory(t *testing.T) {
	trip := tenDayTrip()
	trip.ID = uuid.New()
	var saved model.Document
	svc := newDocumentService(trip, &saved)

	_, err := svc.AddFile(context.Background(), trip.ID, "", model.DocOther, t.TempDir())
	assert.ErrorIs(t, err, service.ErrValidation)
}
