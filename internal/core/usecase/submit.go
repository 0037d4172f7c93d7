package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/taxforge/tax-filing-assistant/internal/core/domain"
	"github.com/taxforge/tax-filing-assistant/internal/core/ports"
)

// SubmitReturnUseCase freezes the caller's full form payload into a new
// immutable submitted record. The live draft is intentionally left alone:
// submitting does not clear or transition it.
type SubmitReturnUseCase struct {
	submissions ports.SubmissionRepository
}

func NewSubmitReturnUseCase(submissions ports.SubmissionRepository) *SubmitReturnUseCase {
	return &SubmitReturnUseCase{submissions: submissions}
}

func (uc *SubmitReturnUseCase) Submit(
	ctx context.Context,
	userID, filingType string,
	fields domain.CanonicalFields,
	result *domain.TaxResult,
) (*domain.Submission, error) {
	if len(fields) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "submit return", fmt.Errorf("form data is required"))
	}

	submission := &domain.Submission{
		ID:          uuid.NewString(),
		UserID:      userID,
		Fields:      fields.Clone(),
		Status:      domain.ReturnSubmitted,
		FilingType:  filingType,
		SubmittedAt: time.Now().UTC(),
	}
	if result != nil {
		submission.TaxOwed = result.TaxOwed
		submission.RefundAmount = result.RefundAmount
	}

	if err := uc.submissions.Create(ctx, submission); err != nil {
		return nil, fmt.Errorf("create submission: %w", err)
	}
	return submission, nil
}

func (uc *SubmitReturnUseCase) ListByUser(ctx context.Context, userID string) ([]domain.Submission, error) {
	subs, err := uc.submissions.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return subs, nil
}

func (uc *SubmitReturnUseCase) GetByID(ctx context.Context, userID, submissionID string) (*domain.Submission, error) {
	sub, err := uc.submissions.GetByUserAndID(ctx, userID, submissionID)
	if err != nil {
		return nil, fmt.Errorf("fetch submission by id: %w", err)
	}
	return sub, nil
}
