package extract

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/gen2brain/go-fitz"
	"go.uber.org/zap"
)

// FitzExtractor reads PDFs with MuPDF.
type FitzExtractor struct {
	logger *zap.Logger
}

func (e *FitzExtractor) Extract(ctx context.Context, r io.Reader) (string, error) {
	data, err := readPDF(ctx, r)
	if err != nil {
		return "", err
	}

	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("%w: open pdf: %w", ErrExtraction, err)
	}
	defer doc.Close()

	pages := doc.NumPage()
	if pages == 0 {
		return "", fmt.Errorf("%w: document has no pages", ErrExtraction)
	}

	var fullText strings.Builder
	for n := 0; n < pages; n++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		pageText, err := doc.Text(n)
		if err != nil {
			return "", fmt.Errorf("%w: page %d: %w", ErrExtraction, n+1, err)
		}
		fullText.WriteString(pageText)
	}

	e.logger.Debug("pdf text extracted",
		zap.String("backend", BackendFitz),
		zap.Int("pages", pages),
		zap.Int("chars", fullText.Len()),
	)
	return fullText.String(), nil
}
