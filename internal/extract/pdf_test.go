package extract

import (
	"errors"
	"testing"

	"github.com/veridoc/veridoc/internal/model"
)

func TestTextExtractor_EmptyInput(t *testing.T) {
	extractor := NewTextExtractor(0)

	_, err := extractor.Extract(nil)
	if err == nil {
		t.Fatal("Expected error for empty input")
	}

	var extractionErr *model.ExtractionError
	if !errors.As(err, &extractionErr) {
		t.Fatalf("Expected ExtractionError, got %T: %v", err, err)
	}
}

func TestTextExtractor_NotAPDF(t *testing.T) {
	extractor := NewTextExtractor(0)

	for _, data := range [][]byte{
		[]byte("plain text file"),
		[]byte("<html><body>web page</body></html>"),
		[]byte("%PDF-1.4 truncated garbage"),
	} {
		_, err := extractor.Extract(data)
		if err == nil {
			t.Errorf("Expected error for input %q", string(data))
			continue
		}
		var extractionErr *model.ExtractionError
		if !errors.As(err, &extractionErr) {
			t.Errorf("Expected ExtractionError for input %q, got %T", string(data), err)
		}
	}
}
