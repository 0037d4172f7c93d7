package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taxforge/tax-filing-assistant/internal/core/domain"
	"github.com/taxforge/tax-filing-assistant/internal/core/ports"
	"github.com/taxforge/tax-filing-assistant/internal/core/tax"
)

const (
	defaultFilingStatus = "single"
	defaultState        = "CA"
)

// CalculateReturnUseCase combines caller-supplied form sections with the
// stored draft (gap-fill), normalizes the result and computes liability.
// The draft is read-only here; calculation never writes.
type CalculateReturnUseCase struct {
	accumulator *DraftAccumulator
}

func NewCalculateReturnUseCase(accumulator *DraftAccumulator) *CalculateReturnUseCase {
	return &CalculateReturnUseCase{accumulator: accumulator}
}

func (uc *CalculateReturnUseCase) Calculate(
	ctx context.Context,
	userID string,
	req ports.CalculationRequest,
) (*ports.CalculationResponse, error) {
	// Caller sections overlay each other in a fixed order before the draft
	// fills the gaps.
	combined := domain.CanonicalFields{}
	for _, section := range []domain.CanonicalFields{req.Form1040, req.ScheduleA, req.ScheduleC} {
		combined = domain.Merge(combined, section, domain.MergeOverlay)
	}

	autoPopulated := domain.CanonicalFields{}
	draft, err := uc.accumulator.Current(ctx, userID)
	switch {
	case domain.IsKind(err, domain.ErrNotFound):
		// No draft yet: calculate from the request alone.
	case err != nil:
		return nil, fmt.Errorf("load draft for calculation: %w", err)
	default:
		autoPopulated = draft.Fields.Clone()
		combined = domain.Merge(draft.Fields, combined, domain.MergeGapFill)
	}

	normalized, outcomes := domain.Normalize(combined)
	for field, outcome := range outcomes {
		if outcome == domain.OutcomeMalformed {
			// Malformed values become zero; the log line is the only trace.
			slog.Warn("malformed field value coerced to zero", "field", field, "user_id", userID)
		}
	}

	filingStatus := req.FilingStatus
	if filingStatus == "" {
		filingStatus = defaultFilingStatus
	}
	state := req.State
	if state == "" {
		state = defaultState
	}

	result := tax.Compute(normalized, filingStatus, state)
	return &ports.CalculationResponse{
		Result:        result,
		AutoPopulated: autoPopulated,
	}, nil
}
