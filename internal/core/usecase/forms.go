package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/taxforge/tax-filing-assistant/internal/core/domain"
)

// FormUseCase saves explicitly entered form sections into the draft with the
// same overlay semantics as document ingest, and reads the draft back.
type FormUseCase struct {
	accumulator *DraftAccumulator
}

func NewFormUseCase(accumulator *DraftAccumulator) *FormUseCase {
	return &FormUseCase{accumulator: accumulator}
}

func (uc *FormUseCase) SaveForm(ctx context.Context, userID, formType string, fields domain.CanonicalFields) (*domain.Draft, error) {
	if strings.TrimSpace(formType) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "save form", fmt.Errorf("form type is required"))
	}
	if len(fields) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "save form", fmt.Errorf("form data is required"))
	}

	draft, err := uc.accumulator.ApplyOverlay(ctx, userID, fields)
	if err != nil {
		return nil, fmt.Errorf("save %s form: %w", formType, err)
	}
	return draft, nil
}

func (uc *FormUseCase) GetDraft(ctx context.Context, userID string) (*domain.Draft, error) {
	draft, err := uc.accumulator.Current(ctx, userID)
	if err != nil {
		return nil, err
	}
	return draft, nil
}
