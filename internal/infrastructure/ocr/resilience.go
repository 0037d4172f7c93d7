package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/taxforge/tax-filing-assistant/internal/core/domain"
	"github.com/taxforge/tax-filing-assistant/internal/core/ports"
	"github.com/taxforge/tax-filing-assistant/internal/infrastructure/resilience"
)

// resilientRecognizer routes recognition calls through the retry and circuit
// breaker executor. The document bytes are buffered once so every retry
// attempt reads from the start.
type resilientRecognizer struct {
	inner    ports.TextRecognizer
	executor *resilience.Executor
}

// WithResilience wraps a recognizer with bounded retries and a circuit
// breaker. A nil executor returns the recognizer unchanged.
func WithResilience(inner ports.TextRecognizer, executor *resilience.Executor) ports.TextRecognizer {
	if executor == nil {
		return inner
	}
	return &resilientRecognizer{inner: inner, executor: executor}
}

func (r *resilientRecognizer) RecognizeText(ctx context.Context, filename, mimeType string, data io.Reader) (string, error) {
	raw, err := io.ReadAll(data)
	if err != nil {
		return "", fmt.Errorf("read document bytes: %w", err)
	}

	var text string
	err = r.executor.Execute(ctx, "ocr_recognize", func(attemptCtx context.Context) error {
		out, recognizeErr := r.inner.RecognizeText(attemptCtx, filename, mimeType, bytes.NewReader(raw))
		if recognizeErr != nil {
			return recognizeErr
		}
		text = out
		return nil
	}, classifyRecognitionError)
	if err != nil {
		return "", err
	}
	return text, nil
}

func classifyRecognitionError(err error) resilience.ErrorClassification {
	if err == nil {
		return resilience.ErrorClassification{}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return resilience.ErrorClassification{
			Retryable:     false,
			RecordFailure: false,
		}
	}
	// An unsupported format never recovers on retry and says nothing about
	// the OCR engine's health.
	if domain.IsKind(err, domain.ErrInvalidInput) {
		return resilience.ErrorClassification{
			Retryable:     false,
			RecordFailure: false,
		}
	}
	if resilience.IsCircuitOpen(err) {
		return resilience.ErrorClassification{
			Retryable:     true,
			RecordFailure: true,
		}
	}

	return resilience.ErrorClassification{
		Retryable:     true,
		RecordFailure: true,
	}
}
