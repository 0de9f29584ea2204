package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// PureExtractor reads PDFs without cgo.
type PureExtractor struct {
	logger *zap.Logger
}

func (e *PureExtractor) Extract(ctx context.Context, r io.Reader) (text string, err error) {
	data, err := readPDF(ctx, r)
	if err != nil {
		return "", err
	}

	// the parser panics on some malformed objects
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("%w: %v", ErrExtraction, rec)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: open pdf: %w", ErrExtraction, err)
	}

	pages := reader.NumPage()
	if pages == 0 {
		return "", fmt.Errorf("%w: document has no pages", ErrExtraction)
	}

	var fullText strings.Builder
	for i := 1; i <= pages; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			return "", fmt.Errorf("%w: page %d is missing", ErrExtraction, i)
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("%w: page %d: %w", ErrExtraction, i, err)
		}
		fullText.WriteString(pageText)
	}

	e.logger.Debug("pdf text extracted",
		zap.String("backend", BackendPure),
		zap.Int("pages", pages),
		zap.Int("chars", fullText.Len()),
	)
	return fullText.String(), nil
}
