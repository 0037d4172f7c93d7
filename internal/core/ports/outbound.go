package ports

import (
	"context"
	"io"

	"github.com/taxforge/tax-filing-assistant/internal/core/domain"
)

// DocumentRepository persists uploaded document state and extraction output.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	GetByUserAndID(ctx context.Context, userID, id string) (*domain.Document, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Document, error)
	UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, errMessage string) error
	SaveExtraction(ctx context.Context, id string, docType domain.DocumentType, extracted *domain.ExtractionResult) error
}

// DraftRepository persists the single mutable draft per user. Update is a
// compare-and-swap on Draft.Version and returns domain.ErrConflict when the
// stored version moved underneath the caller.
type DraftRepository interface {
	GetByUser(ctx context.Context, userID string) (*domain.Draft, error)
	Create(ctx context.Context, draft *domain.Draft) error
	Update(ctx context.Context, draft *domain.Draft) error
}

// SubmissionRepository persists immutable submitted returns.
type SubmissionRepository interface {
	Create(ctx context.Context, submission *domain.Submission) error
	ListByUser(ctx context.Context, userID string) ([]domain.Submission, error)
	GetByUserAndID(ctx context.Context, userID, id string) (*domain.Submission, error)
}

// ObjectStorage stores source documents.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// MessageQueue publishes/consumes ingestion events.
type MessageQueue interface {
	PublishDocumentIngested(ctx context.Context, documentID string) error
	SubscribeDocumentIngested(ctx context.Context, handler func(context.Context, string) error) error
}

// TextRecognizer is the OCR collaborator: it turns stored file bytes into a
// single text blob covering all pages. The core only consumes the text.
type TextRecognizer interface {
	RecognizeText(ctx context.Context, filename, mimeType string, data io.Reader) (string, error)
}

// DocumentClassifier decides a document type from available signal. The
// shipped variant is a filename heuristic; content- or model-based
// classifiers can replace it without touching extraction or mapping.
type DocumentClassifier interface {
	Classify(filename string) domain.DocumentType
}

// FieldExtractor applies per-type field patterns to recognized text.
// Extraction is pure: misses surface as absent fields, never as errors.
type FieldExtractor interface {
	Extract(text string, docType domain.DocumentType) *domain.ExtractionResult
}

// SubmissionExporter renders a submitted return into a downloadable report.
type SubmissionExporter interface {
	Export(submission *domain.Submission) ([]byte, error)
}
