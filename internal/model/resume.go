package model

import (
	"strconv"
	"strings"

	"github.com/fadilmartias/resume-ats-scanner/internal/fingerprint"
)

const (
	// MaxInputLength is the number of characters of resume text sent to the model.
	MaxInputLength = 2000
	// PreviewLength is the number of characters shown as the extracted-text preview.
	PreviewLength  = 1000
	WordsPerMinute = 200
)

// Resume is an uploaded resume after text extraction.
type Resume struct {
	ID             string  `json:"id"`
	FileName       string  `json:"file_name"`
	Text           string  `json:"-"`
	PromptText     string  `json:"-"`
	Truncated      bool    `json:"truncated"`
	ReadingMinutes float64 `json:"reading_minutes"`
}

// NewResume fingerprints and measures the full text, then keeps the first
// MaxInputLength characters for prompts.
func NewResume(fileName, text string) *Resume {
	promptText, truncated := Truncate(text, MaxInputLength)
	return &Resume{
		ID:             fingerprint.Of(text),
		FileName:       fileName,
		Text:           text,
		PromptText:     promptText,
		Truncated:      truncated,
		ReadingMinutes: ReadingTime(text),
	}
}

// Preview returns the start of the prompt text for display.
func (r *Resume) Preview() string {
	preview, _ := Truncate(r.PromptText, PreviewLength)
	return preview
}

// ReadingTime estimates minutes at WordsPerMinute, rounded to two decimals.
// Rounding works on the exact value of the float, so 3 words (0.015) give
// 0.01.
func ReadingTime(text string) float64 {
	words := len(strings.Fields(text))
	minutes := float64(words) / WordsPerMinute
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(minutes, 'f', 2, 64), 64)
	if err != nil {
		return minutes
	}
	return rounded
}

// Truncate keeps the first n characters (code points) of s.
func Truncate(s string, n int) (string, bool) {
	if n < 0 {
		n = 0
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i], true
		}
		count++
	}
	return s, false
}
