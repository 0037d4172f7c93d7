package usecase

import (
	"context"
	"testing"

	"github.com/taxforge/tax-filing-assistant/internal/core/domain"
	"github.com/taxforge/tax-filing-assistant/internal/core/ports"
)

func TestCalculateGapFillsFromDraft(t *testing.T) {
	drafts := &draftRepoFake{
		draft: &domain.Draft{
			ID:     "draft-1",
			UserID: "user-1",
			Fields: domain.CanonicalFields{
				domain.FieldWages:              float64(50000),
				domain.FieldFederalWithholding: float64(6000),
			},
			Status:  domain.ReturnDraft,
			Version: 1,
		},
	}
	uc := NewCalculateReturnUseCase(NewDraftAccumulator(drafts))

	resp, err := uc.Calculate(context.Background(), "user-1", ports.CalculationRequest{
		Form1040: domain.CanonicalFields{domain.FieldWages: float64(0)},
	})
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	// Caller's zero is a gap: the draft's wages fill in, and from 50000 of
	// wages the 2024 single schedule owes 4388.00 against 6000 withheld.
	result := resp.Result
	if result.TaxableIncome != 38400 {
		t.Fatalf("taxable income = %v, want 38400", result.TaxableIncome)
	}
	if result.TaxOwed != 4388.00 {
		t.Fatalf("tax owed = %v, want 4388.00", result.TaxOwed)
	}
	if result.RefundAmount != 1612.00 || result.AmountDue != 0 {
		t.Fatalf("refund/due = %v/%v, want 1612.00/0", result.RefundAmount, result.AmountDue)
	}
	if result.FilingStatus != "single" || result.State != "CA" {
		t.Fatalf("expected defaults echoed, got %s/%s", result.FilingStatus, result.State)
	}
	if resp.AutoPopulated[domain.FieldWages] != float64(50000) {
		t.Fatalf("auto populated wages = %v, want 50000", resp.AutoPopulated[domain.FieldWages])
	}
}

func TestCalculateCallerDataOverridesDraft(t *testing.T) {
	drafts := &draftRepoFake{
		draft: &domain.Draft{
			ID:      "draft-1",
			UserID:  "user-1",
			Fields:  domain.CanonicalFields{domain.FieldWages: float64(50000)},
			Status:  domain.ReturnDraft,
			Version: 1,
		},
	}
	uc := NewCalculateReturnUseCase(NewDraftAccumulator(drafts))

	resp, err := uc.Calculate(context.Background(), "user-1", ports.CalculationRequest{
		Form1040: domain.CanonicalFields{domain.FieldWages: float64(80000)},
	})
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	if resp.Result.TotalIncome != 80000 {
		t.Fatalf("total income = %v, want caller-supplied 80000", resp.Result.TotalIncome)
	}
}

func TestCalculateWithoutDraftUsesRequestAlone(t *testing.T) {
	uc := NewCalculateReturnUseCase(NewDraftAccumulator(&draftRepoFake{}))

	resp, err := uc.Calculate(context.Background(), "user-1", ports.CalculationRequest{
		Form1040:     domain.CanonicalFields{domain.FieldWages: float64(0), domain.FieldBusinessIncome: float64(0)},
		FilingStatus: "married_filing_jointly",
		State:        "NY",
	})
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	result := resp.Result
	if result.TotalIncome != 0 || result.TaxableIncome != 0 || result.TaxOwed != 0 {
		t.Fatalf("expected zero-valued result, got %+v", result)
	}
	if result.RefundAmount != 0 || result.AmountDue != 0 {
		t.Fatalf("expected no refund and no amount due, got %+v", result)
	}
	if result.FilingStatus != "married_filing_jointly" || result.State != "NY" {
		t.Fatalf("expected request values echoed, got %s/%s", result.FilingStatus, result.State)
	}
	if len(resp.AutoPopulated) != 0 {
		t.Fatalf("expected empty auto populated data, got %v", resp.AutoPopulated)
	}
}

func TestCalculateNormalizesMessyValues(t *testing.T) {
	drafts := &draftRepoFake{
		draft: &domain.Draft{
			ID:     "draft-1",
			UserID: "user-1",
			Fields: domain.CanonicalFields{
				domain.FieldWages:              "45,000.00",
				domain.FieldFederalWithholding: nil,
				domain.FieldStateWithholding:   "not a number",
			},
			Status:  domain.ReturnDraft,
			Version: 1,
		},
	}
	uc := NewCalculateReturnUseCase(NewDraftAccumulator(drafts))

	resp, err := uc.Calculate(context.Background(), "user-1", ports.CalculationRequest{})
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	if resp.Result.TotalIncome != 45000 {
		t.Fatalf("total income = %v, want 45000 from comma-grouped string", resp.Result.TotalIncome)
	}
	if resp.Result.TotalWithholding != 0 {
		t.Fatalf("withholding = %v, want 0 after lenient coercion", resp.Result.TotalWithholding)
	}
}

func TestCalculateSectionsMergeInOrder(t *testing.T) {
	uc := NewCalculateReturnUseCase(NewDraftAccumulator(&draftRepoFake{}))

	resp, err := uc.Calculate(context.Background(), "user-1", ports.CalculationRequest{
		Form1040:  domain.CanonicalFields{"gross_receipts": float64(1000)},
		ScheduleC: domain.CanonicalFields{"gross_receipts": float64(2500)},
	})
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	if resp.Result.TotalIncome != 2500 {
		t.Fatalf("total income = %v, want schedule C override 2500", resp.Result.TotalIncome)
	}
}
