// Package ocr turns uploaded document bytes into plain text. PDFs go
// through the embedded text layer, images through the Tesseract engine,
// and plain text passes straight through.
package ocr

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/otiai10/gosseract/v2"

	"github.com/taxforge/tax-filing-assistant/internal/core/domain"
)

type Recognizer struct {
	tessdataPrefix string
	language       string
}

type Option func(*Recognizer)

// WithTessdataPrefix overrides the traineddata directory. Needed on hosts
// where Tesseract is installed outside the default prefix.
func WithTessdataPrefix(prefix string) Option {
	return func(r *Recognizer) {
		r.tessdataPrefix = prefix
	}
}

func WithLanguage(lang string) Option {
	return func(r *Recognizer) {
		r.language = lang
	}
}

func New(opts ...Option) *Recognizer {
	r := &Recognizer{language: "eng"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Recognizer) RecognizeText(ctx context.Context, filename, mimeType string, data io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	raw, err := io.ReadAll(data)
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}

	switch {
	case isPDF(filename, mimeType):
		return r.pdfText(raw)
	case isImage(filename, mimeType):
		return r.imageText(filename, raw)
	case strings.HasPrefix(mimeType, "text/"):
		return string(raw), nil
	default:
		return "", domain.WrapError(domain.ErrInvalidInput, "recognize text",
			fmt.Errorf("unsupported document type %q (%s)", filepath.Ext(filename), mimeType))
	}
}

func (r *Recognizer) pdfText(raw []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return buf.String(), nil
}

func (r *Recognizer) imageText(filename string, raw []byte) (string, error) {
	// gosseract reads from disk, so the upload goes through a temp file.
	tempFile, err := os.CreateTemp("", "ocr-*"+filepath.Ext(filename))
	if err != nil {
		return "", fmt.Errorf("create temp image: %w", err)
	}
	defer os.Remove(tempFile.Name())

	if _, err := tempFile.Write(raw); err != nil {
		tempFile.Close()
		return "", fmt.Errorf("write temp image: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return "", fmt.Errorf("close temp image: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if r.tessdataPrefix != "" {
		client.SetTessdataPrefix(r.tessdataPrefix)
	}
	if err := client.SetLanguage(r.language); err != nil {
		return "", fmt.Errorf("set ocr language: %w", err)
	}
	if err := client.SetImage(tempFile.Name()); err != nil {
		return "", fmt.Errorf("set ocr image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("run ocr: %w", err)
	}
	return text, nil
}

func isPDF(filename, mimeType string) bool {
	return mimeType == "application/pdf" || strings.EqualFold(filepath.Ext(filename), ".pdf")
}

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".tif":  true,
	".tiff": true,
	".bmp":  true,
}

func isImage(filename, mimeType string) bool {
	if strings.HasPrefix(mimeType, "image/") {
		return true
	}
	return imageExtensions[strings.ToLower(filepath.Ext(filename))]
}
