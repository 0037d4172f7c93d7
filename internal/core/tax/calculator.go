// Package tax computes federal liability from normalized canonical fields
// using the 2024 single-filer progressive schedule.
package tax

import (
	"math"

	"github.com/taxforge/tax-filing-assistant/internal/core/domain"
)

type Bracket struct {
	Lower float64
	Upper float64
	Rate  float64
}

// 2024 single-filer schedule. Other filing statuses are accepted by the API
// and echoed back but calculated against this table.
var brackets2024Single = []Bracket{
	{0, 11000, 0.10},
	{11000, 44725, 0.12},
	{44725, 95375, 0.22},
	{95375, 182100, 0.24},
	{182100, 231250, 0.32},
	{231250, 578125, 0.35},
	{578125, math.Inf(1), 0.37},
}

// StandardDeduction2024 is the single-filer standard deduction.
const StandardDeduction2024 = 11600

// ForBrackets accumulates marginal tax bracket by bracket. The loop stops
// before a bracket whose lower bound the income does not reach, and after
// the bracket that contains the income, so boundary amounts are charged
// exactly once.
func ForBrackets(taxable float64) float64 {
	var total float64
	for _, b := range brackets2024Single {
		if taxable <= b.Lower {
			break
		}
		total += (math.Min(taxable, b.Upper) - b.Lower) * b.Rate
		if taxable < b.Upper {
			break
		}
	}
	return round2(total)
}

// Compute derives income, deduction and liability figures from normalized
// fields. Every field except the two withholding fields counts as income;
// that catch-all is deliberate, so caller-supplied line items with no
// dedicated handling still land in the total.
func Compute(fields domain.NormalizedFields, filingStatus, state string) domain.TaxResult {
	var totalIncome float64
	for key, amount := range fields {
		if key == domain.FieldFederalWithholding || key == domain.FieldStateWithholding {
			continue
		}
		totalIncome += amount
	}

	taxable := math.Max(totalIncome-StandardDeduction2024, 0)
	owed := ForBrackets(taxable)

	result := domain.TaxResult{
		TotalIncome:        round2(totalIncome),
		TotalDeductions:    StandardDeduction2024,
		TaxableIncome:      taxable,
		TaxOwed:            owed,
		FederalWithholding: fields[domain.FieldFederalWithholding],
		StateWithholding:   fields[domain.FieldStateWithholding],
		AGI:                round2(totalIncome),
		FilingStatus:       filingStatus,
		State:              state,
	}
	return Reconcile(result)
}

// Reconcile folds total withholding against tax owed into a refund or an
// amount due. At most one of the two is non-zero.
func Reconcile(result domain.TaxResult) domain.TaxResult {
	result.TotalWithholding = result.FederalWithholding + result.StateWithholding
	if result.TotalWithholding > result.TaxOwed {
		result.RefundAmount = round2(result.TotalWithholding - result.TaxOwed)
		result.AmountDue = 0
	} else {
		result.RefundAmount = 0
		result.AmountDue = round2(result.TaxOwed - result.TotalWithholding)
	}
	return result
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
