package ocr

import (
	"context"
	"strings"
	"testing"

	"github.com/taxforge/tax-filing-assistant/internal/core/domain"
)

func TestRecognizePlainTextPassthrough(t *testing.T) {
	r := New()

	text, err := r.RecognizeText(context.Background(), "notes.txt", "text/plain", strings.NewReader("1 Wages $45,000.00"))
	if err != nil {
		t.Fatalf("RecognizeText() error = %v", err)
	}
	if text != "1 Wages $45,000.00" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestRecognizeUnsupportedType(t *testing.T) {
	r := New()

	_, err := r.RecognizeText(context.Background(), "archive.zip", "application/zip", strings.NewReader("x"))
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRecognizeHonorsCanceledContext(t *testing.T) {
	r := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := r.RecognizeText(ctx, "w2.pdf", "application/pdf", strings.NewReader("x")); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestFormatDetection(t *testing.T) {
	if !isPDF("W2.PDF", "application/octet-stream") {
		t.Fatalf("expected .pdf extension to be detected")
	}
	if !isImage("scan.JPEG", "application/octet-stream") {
		t.Fatalf("expected .jpeg extension to be detected")
	}
	if !isImage("blob", "image/png") {
		t.Fatalf("expected image mime type to be detected")
	}
	if isImage("doc.pdf", "application/pdf") {
		t.Fatalf("pdf misdetected as image")
	}
}
