package domain

import "time"

// Canonical form vocabulary. Any other key a caller supplies is kept as an
// additional line item and counted as income by the calculator.
const (
	FieldWages              = "wages"
	FieldFederalWithholding = "federal_withholding"
	FieldBusinessIncome     = "business_income"
	FieldStateWithholding   = "state_withholding"
)

// CanonicalFields maps form-vocabulary keys to untyped values. Values stay
// raw (string, number or nil) until normalization runs right before a
// calculation; merge policies deliberately operate on raw values.
type CanonicalFields map[string]any

func (f CanonicalFields) Clone() CanonicalFields {
	if f == nil {
		return CanonicalFields{}
	}
	out := make(CanonicalFields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

type ReturnStatus string

const (
	ReturnDraft     ReturnStatus = "draft"
	ReturnSubmitted ReturnStatus = "submitted"
)

// Draft is the single mutable, unsubmitted return per user. Version guards
// the read-modify-write cycle: repository updates compare-and-swap on it.
type Draft struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Fields    CanonicalFields `json:"form_data"`
	Status    ReturnStatus    `json:"status"`
	Version   int64           `json:"version"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Submission is an immutable frozen copy of a return. Submitting never
// mutates or clears the live draft.
type Submission struct {
	ID           string          `json:"id"`
	UserID       string          `json:"user_id"`
	Fields       CanonicalFields `json:"form_data"`
	Status       ReturnStatus    `json:"status"`
	FilingType   string          `json:"filing_type"`
	TaxOwed      float64         `json:"tax_owed"`
	RefundAmount float64         `json:"refund_amount"`
	SubmittedAt  time.Time       `json:"submitted_at"`
}

// TaxResult is ephemeral: recomputed on every calculation request and never
// persisted outside an explicit submission.
type TaxResult struct {
	TotalIncome        float64 `json:"total_income"`
	TotalDeductions    float64 `json:"total_deductions"`
	TaxableIncome      float64 `json:"taxable_income"`
	TaxOwed            float64 `json:"tax_owed"`
	TotalWithholding   float64 `json:"total_withholding"`
	FederalWithholding float64 `json:"federal_withholding"`
	StateWithholding   float64 `json:"state_withholding"`
	RefundAmount       float64 `json:"refund_amount"`
	AmountDue          float64 `json:"amount_due"`
	AGI                float64 `json:"agi"`
	FilingStatus       string  `json:"filing_status"`
	State              string  `json:"state"`
}
