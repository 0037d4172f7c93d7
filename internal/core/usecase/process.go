package usecase

import (
	"context"
	"fmt"

	"github.com/taxforge/tax-filing-assistant/internal/core/domain"
	"github.com/taxforge/tax-filing-assistant/internal/core/ports"
)

// ProcessDocumentUseCase runs the upload side of the pipeline for one
// document: recover text, classify, extract fields, map to the canonical
// vocabulary and overlay-merge into the owner's draft.
type ProcessDocumentUseCase struct {
	repo        ports.DocumentRepository
	storage     ports.ObjectStorage
	recognizer  ports.TextRecognizer
	classifier  ports.DocumentClassifier
	extractor   ports.FieldExtractor
	accumulator *DraftAccumulator
}

func NewProcessDocumentUseCase(
	repo ports.DocumentRepository,
	storage ports.ObjectStorage,
	recognizer ports.TextRecognizer,
	classifier ports.DocumentClassifier,
	extractor ports.FieldExtractor,
	accumulator *DraftAccumulator,
) *ProcessDocumentUseCase {
	return &ProcessDocumentUseCase{
		repo:        repo,
		storage:     storage,
		recognizer:  recognizer,
		classifier:  classifier,
		extractor:   extractor,
		accumulator: accumulator,
	}
}

func (uc *ProcessDocumentUseCase) ProcessByID(ctx context.Context, documentID string) error {
	if err := uc.markStatus(ctx, documentID, domain.StatusProcessing, ""); err != nil {
		return fmt.Errorf("set status=processing: %w", err)
	}

	if err := uc.processPipeline(ctx, documentID); err != nil {
		if failErr := uc.markFailed(ctx, documentID, err); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return err
	}

	if err := uc.markStatus(ctx, documentID, domain.StatusProcessed, ""); err != nil {
		return fmt.Errorf("set status=processed: %w", err)
	}
	return nil
}

func (uc *ProcessDocumentUseCase) processPipeline(ctx context.Context, documentID string) error {
	doc, err := uc.repo.GetByID(ctx, documentID)
	if err != nil {
		return fmt.Errorf("fetch document by id: %w", err)
	}

	text, err := uc.recognizeText(ctx, doc)
	if err != nil {
		return err
	}

	// Classification is a naming heuristic; a miss is not an error, it
	// routes the document down the Unknown path.
	docType := uc.classifier.Classify(doc.Filename)
	extracted := uc.extractor.Extract(text, docType)

	if err := uc.repo.SaveExtraction(ctx, doc.ID, extracted.DocumentType, extracted); err != nil {
		return fmt.Errorf("save extraction result: %w", err)
	}

	// Only touch the draft when mapping produced canonical fields. W-9 and
	// Unknown documents map to an empty set and leave the draft alone.
	autoFields := domain.MapToForm1040(extracted)
	if len(autoFields) == 0 {
		return nil
	}

	if _, err := uc.accumulator.ApplyOverlay(ctx, doc.UserID, autoFields); err != nil {
		return fmt.Errorf("merge extracted fields into draft: %w", err)
	}
	return nil
}

func (uc *ProcessDocumentUseCase) recognizeText(ctx context.Context, doc *domain.Document) (string, error) {
	reader, err := uc.storage.Open(ctx, doc.StoragePath)
	if err != nil {
		return "", fmt.Errorf("open source document: %w", err)
	}
	defer reader.Close()

	text, err := uc.recognizer.RecognizeText(ctx, doc.Filename, doc.MimeType, reader)
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return text, nil
}

func (uc *ProcessDocumentUseCase) markStatus(ctx context.Context, documentID string, status domain.DocumentStatus, errMessage string) error {
	return uc.repo.UpdateStatus(ctx, documentID, status, errMessage)
}

func (uc *ProcessDocumentUseCase) markFailed(ctx context.Context, documentID string, processErr error) error {
	if processErr == nil {
		return nil
	}
	return uc.markStatus(ctx, documentID, domain.StatusFailed, processErr.Error())
}
