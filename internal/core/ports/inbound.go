package ports

import (
	"context"
	"io"

	"github.com/taxforge/tax-filing-assistant/internal/core/domain"
)

// DocumentIngestor is the inbound contract for document upload orchestration.
type DocumentIngestor interface {
	Upload(ctx context.Context, userID, filename, mimeType string, body io.Reader) (*domain.Document, error)
}

// DocumentProcessor is the inbound contract for asynchronous document
// processing: OCR, classification, extraction, mapping and draft ingest.
type DocumentProcessor interface {
	ProcessByID(ctx context.Context, documentID string) error
}

// DocumentReader is the inbound read model for uploaded documents and their
// stored extraction results.
type DocumentReader interface {
	GetByID(ctx context.Context, userID, documentID string) (*domain.Document, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Document, error)
}

// CalculationRequest carries the caller's form sections. Sections merge in
// order (1040, then A, then C) before the draft gap-fills the result.
type CalculationRequest struct {
	Form1040     domain.CanonicalFields
	ScheduleA    domain.CanonicalFields
	ScheduleC    domain.CanonicalFields
	FilingStatus string
	State        string
}

// CalculationResponse is the ephemeral calculation outcome plus the draft
// fields that were available for gap-filling.
type CalculationResponse struct {
	Result        domain.TaxResult
	AutoPopulated domain.CanonicalFields
}

// ReturnCalculator is the inbound contract for tax calculation.
type ReturnCalculator interface {
	Calculate(ctx context.Context, userID string, req CalculationRequest) (*CalculationResponse, error)
}

// FormService saves explicit form sections into the draft and reads the
// draft back.
type FormService interface {
	SaveForm(ctx context.Context, userID, formType string, fields domain.CanonicalFields) (*domain.Draft, error)
	GetDraft(ctx context.Context, userID string) (*domain.Draft, error)
}

// ReturnSubmitter freezes a return into an immutable submitted record.
type ReturnSubmitter interface {
	Submit(ctx context.Context, userID, filingType string, fields domain.CanonicalFields, result *domain.TaxResult) (*domain.Submission, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Submission, error)
	GetByID(ctx context.Context, userID, submissionID string) (*domain.Submission, error)
}
