package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/taxforge/tax-filing-assistant/internal/core/domain"
)

type ingestRepoFake struct {
	created *domain.Document
	err     error

	updatedID      string
	updatedStatus  domain.DocumentStatus
	updatedMessage string
}

func (f *ingestRepoFake) Create(_ context.Context, doc *domain.Document) error {
	if f.err != nil {
		return f.err
	}
	copyDoc := *doc
	f.created = &copyDoc
	return nil
}

func (f *ingestRepoFake) GetByID(context.Context, string) (*domain.Document, error) {
	return nil, errors.New("not implemented")
}

func (f *ingestRepoFake) GetByUserAndID(context.Context, string, string) (*domain.Document, error) {
	return nil, errors.New("not implemented")
}

func (f *ingestRepoFake) ListByUser(context.Context, string) ([]domain.Document, error) {
	return nil, errors.New("not implemented")
}

func (f *ingestRepoFake) UpdateStatus(_ context.Context, id string, status domain.DocumentStatus, message string) error {
	f.updatedID = id
	f.updatedStatus = status
	f.updatedMessage = message
	return nil
}

func (f *ingestRepoFake) SaveExtraction(context.Context, string, domain.DocumentType, *domain.ExtractionResult) error {
	return errors.New("not implemented")
}

type ingestStorageFake struct {
	savedKey  string
	savedBody string
	err       error
}

func (f *ingestStorageFake) Save(_ context.Context, key string, data io.Reader) error {
	if f.err != nil {
		return f.err
	}
	raw, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	f.savedKey = key
	f.savedBody = string(raw)
	return nil
}

func (f *ingestStorageFake) Open(context.Context, string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("")), nil
}

type ingestQueueFake struct {
	documentID string
	err        error
}

func (f *ingestQueueFake) PublishDocumentIngested(_ context.Context, documentID string) error {
	if f.err != nil {
		return f.err
	}
	f.documentID = documentID
	return nil
}

func (f *ingestQueueFake) SubscribeDocumentIngested(context.Context, func(context.Context, string) error) error {
	return errors.New("not implemented")
}

func TestIngestUploadSuccess(t *testing.T) {
	repo := &ingestRepoFake{}
	storage := &ingestStorageFake{}
	queue := &ingestQueueFake{}
	uc := NewIngestDocumentUseCase(repo, storage, queue)

	doc, err := uc.Upload(context.Background(), "user-1", "my w2 2024.pdf", "application/pdf", bytes.NewBufferString("scan"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if doc.ID == "" {
		t.Fatalf("expected document id")
	}
	if doc.UserID != "user-1" {
		t.Fatalf("user id = %s, want user-1", doc.UserID)
	}
	if doc.Status != domain.StatusUploaded {
		t.Fatalf("expected status uploaded, got %s", doc.Status)
	}
	if repo.created == nil {
		t.Fatalf("expected repo.Create call")
	}
	if queue.documentID != doc.ID {
		t.Fatalf("expected queued doc id %s, got %s", doc.ID, queue.documentID)
	}
	if !strings.Contains(storage.savedKey, "_my_w2_2024.pdf") {
		t.Fatalf("expected sanitized key suffix, got %s", storage.savedKey)
	}
	if storage.savedBody != "scan" {
		t.Fatalf("expected saved body, got %s", storage.savedBody)
	}
}

func TestIngestUploadRequiresUser(t *testing.T) {
	uc := NewIngestDocumentUseCase(&ingestRepoFake{}, &ingestStorageFake{}, &ingestQueueFake{})

	_, err := uc.Upload(context.Background(), "  ", "w2.pdf", "application/pdf", bytes.NewBufferString("scan"))
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestIngestUploadQueueErrorMarksDocumentFailed(t *testing.T) {
	repo := &ingestRepoFake{}
	uc := NewIngestDocumentUseCase(repo, &ingestStorageFake{}, &ingestQueueFake{err: errors.New("queue down")})

	_, err := uc.Upload(context.Background(), "user-1", "w2.pdf", "application/pdf", bytes.NewBufferString("scan"))
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "publish ingestion event") {
		t.Fatalf("expected publish error, got %v", err)
	}
	if repo.created == nil {
		t.Fatalf("expected repo.Create call")
	}
	if repo.updatedID != repo.created.ID {
		t.Fatalf("expected status update for %s, got %s", repo.created.ID, repo.updatedID)
	}
	if repo.updatedStatus != domain.StatusFailed {
		t.Fatalf("expected status failed, got %s", repo.updatedStatus)
	}
	if !strings.Contains(repo.updatedMessage, "queue down") {
		t.Fatalf("expected publish failure in error message, got %q", repo.updatedMessage)
	}
}
