package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/taxforge/tax-filing-assistant/internal/core/domain"
	"github.com/taxforge/tax-filing-assistant/internal/core/ports"
)

// casAttempts bounds the create-or-update retry loop when a concurrent
// upload or save moved the draft version underneath us.
const casAttempts = 3

// DraftAccumulator owns the one mutable draft per user. Every write goes
// through ApplyOverlay; gap-filling at calculation time reads the draft but
// never writes it.
type DraftAccumulator struct {
	drafts ports.DraftRepository
}

func NewDraftAccumulator(drafts ports.DraftRepository) *DraftAccumulator {
	return &DraftAccumulator{drafts: drafts}
}

// ApplyOverlay merges fields into the user's draft with overlay semantics,
// creating the draft lazily on first write. The compare-and-swap update
// retries a bounded number of times on version conflicts.
func (a *DraftAccumulator) ApplyOverlay(ctx context.Context, userID string, fields domain.CanonicalFields) (*domain.Draft, error) {
	if len(fields) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "apply overlay", fmt.Errorf("no fields to merge"))
	}

	for attempt := 0; attempt < casAttempts; attempt++ {
		draft, err := a.drafts.GetByUser(ctx, userID)
		switch {
		case domain.IsKind(err, domain.ErrNotFound):
			now := time.Now().UTC()
			draft = &domain.Draft{
				ID:        uuid.NewString(),
				UserID:    userID,
				Fields:    fields.Clone(),
				Status:    domain.ReturnDraft,
				Version:   1,
				CreatedAt: now,
				UpdatedAt: now,
			}
			createErr := a.drafts.Create(ctx, draft)
			if domain.IsKind(createErr, domain.ErrConflict) {
				// Another request created the draft first; merge into it.
				continue
			}
			if createErr != nil {
				return nil, fmt.Errorf("create draft: %w", createErr)
			}
			return draft, nil
		case err != nil:
			return nil, fmt.Errorf("load draft: %w", err)
		}

		draft.Fields = domain.Merge(draft.Fields, fields, domain.MergeOverlay)
		draft.UpdatedAt = time.Now().UTC()

		updateErr := a.drafts.Update(ctx, draft)
		if domain.IsKind(updateErr, domain.ErrConflict) {
			continue
		}
		if updateErr != nil {
			return nil, fmt.Errorf("update draft: %w", updateErr)
		}
		draft.Version++
		return draft, nil
	}

	return nil, domain.WrapError(domain.ErrConflict, "apply overlay", fmt.Errorf("draft contended after %d attempts", casAttempts))
}

// Current returns the user's live draft, or ErrNotFound when none exists.
func (a *DraftAccumulator) Current(ctx context.Context, userID string) (*domain.Draft, error) {
	draft, err := a.drafts.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return draft, nil
}
