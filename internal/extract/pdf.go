package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/veridoc/veridoc/internal/model"
	"github.com/veridoc/veridoc/internal/util"
)

// TextExtractor converts PDF bytes into a single plain-text string,
// one page after another in page order. Deterministic for identical input.
type TextExtractor struct {
	maxBytes int // Cap on returned text; 0 = unlimited
}

// NewTextExtractor creates a new text extractor
func NewTextExtractor(maxBytes int) *TextExtractor {
	return &TextExtractor{maxBytes: maxBytes}
}

// Extract returns the concatenated text of every page, separated by newlines.
// Fails with model.ExtractionError when the input is not a valid PDF or has
// no extractable text layer (e.g. scanned-image-only pages).
func (e *TextExtractor) Extract(data []byte) (text string, err error) {
	// The pdf package panics on some malformed cross-reference tables
	// instead of returning an error.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &model.ExtractionError{Reason: "malformed PDF", Err: fmt.Errorf("%v", r)}
		}
	}()

	if len(data) == 0 {
		return "", &model.ExtractionError{Reason: "empty input"}
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &model.ExtractionError{Reason: "not a valid PDF structure", Err: err}
	}

	var buf strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page does not fail the document;
			// a document with zero readable pages does, below.
			continue
		}

		pageText = strings.TrimSpace(pageText)
		if pageText == "" {
			continue
		}

		buf.WriteString(pageText)
		buf.WriteString("\n")
	}

	result := strings.TrimSpace(buf.String())
	if result == "" {
		return "", &model.ExtractionError{Reason: "no extractable text layer"}
	}

	if e.maxBytes > 0 && len(result) > e.maxBytes {
		result = util.TruncateUTF8(result, e.maxBytes)
	}

	return result, nil
}
