// Package extract turns uploaded PDF streams into plain text.
package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// ErrExtraction marks any failure to read text out of an uploaded document.
var ErrExtraction = errors.New("pdf extraction failed")

const (
	BackendFitz = "fitz"
	BackendPure = "pure"
)

// pdfHeaderWindow is how far into the stream the %PDF- marker may appear.
const pdfHeaderWindow = 1024

// Extractor returns the text of every page, concatenated in page order.
type Extractor interface {
	Extract(ctx context.Context, r io.Reader) (string, error)
}

// New returns the extractor for the named backend. An empty name selects MuPDF.
func New(backend string, logger *zap.Logger) (Extractor, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendFitz:
		return &FitzExtractor{logger: logger}, nil
	case BackendPure:
		return &PureExtractor{logger: logger}, nil
	default:
		return nil, fmt.Errorf("unsupported pdf extractor: %s", backend)
	}
}

// readPDF buffers the stream and rejects anything without a PDF header, so
// MuPDF does not silently accept images or EPUBs.
func readPDF(ctx context.Context, r io.Reader) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("%w: no input stream", ErrExtraction)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: read stream: %w", ErrExtraction, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrExtraction)
	}

	head := data
	if len(head) > pdfHeaderWindow {
		head = head[:pdfHeaderWindow]
	}
	if !bytes.Contains(head, []byte("%PDF-")) {
		return nil, fmt.Errorf("%w: missing PDF header", ErrExtraction)
	}
	return data, nil
}
