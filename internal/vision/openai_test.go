package vision

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spok95/site-inventory/internal/domain/errs"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	c, err := New("test-key", "", time.Second, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	return c
}

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New("", "", 0, slog.New(slog.DiscardHandler))
	require.Error(t, err)
}

func TestAnalyzeImageRejectsPDF(t *testing.T) {
	c := newTestClient(t)
	_, err := c.AnalyzeImage(context.Background(), "invoice.pdf", []byte("%PDF"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrValidation))
	assert.Contains(t, err.Error(), "PDF")
}

func TestAnalyzeImageRejectsUnknownExtension(t *testing.T) {
	c := newTestClient(t)
	for _, name := range []string{"doc.txt", "archive.zip", "noextension", "invoice.PDF.exe"} {
		_, err := c.AnalyzeImage(context.Background(), name, []byte("data"))
		require.Error(t, err, name)
		assert.True(t, errors.Is(err, errs.ErrValidation), name)
	}
}

func TestFileExtension(t *testing.T) {
	cases := map[string]string{
		"invoice.jpg":     "jpg",
		"Invoice.JPG":     "jpg",
		"a.b.c.png":       "png",
		"noextension":     "",
		"trailing.dot.":   "",
	}
	for in, want := range cases {
		assert.Equal(t, want, fileExtension(in), in)
	}
}
