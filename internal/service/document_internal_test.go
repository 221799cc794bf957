package service

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }

func TestWriteNew_FailedCopyLeavesNoFile(t *testing.T) {
	boom := errors.New("device full")
	path := filepath.Join(t.TempDir(), "ticket.pdf")

	err := writeNew(path, io.MultiReader(strings.NewReader("%PDF-1.7"), failingReader{boom}))
	require.ErrorIs(t, err, boom)
	_, statErr := os.Stat(path)
	assert.True(t, errors.Is(statErr, os.ErrNotExist), "partial file removed")

	// A retry is not blocked by the earlier attempt.
	require.NoError(t, writeNew(path, strings.NewReader("%PDF-1.7")))
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7", string(got))
}

func TestWriteNew_RefusesToOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "visa.txt")
	require.NoError(t, os.WriteFile(path, []byte("original"), 0o600))

	err := writeNew(path, strings.NewReader("new"))
	assert.ErrorIs(t, err, ErrValidation)
	got, _ := os.ReadFile(path)
	assert.Equal(t, "original", string(got))
}
