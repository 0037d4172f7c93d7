package domain

// Type-specific field names produced by extraction.
const (
	ExtractedEmployerEIN     = "employer_ein"
	ExtractedWages           = "wages"
	ExtractedFederalWithheld = "federal_withholding"
	ExtractedPayerTIN        = "payer_tin"
	ExtractedNonemployeeComp = "nonemployee_compensation"
	ExtractedTaxpayerID      = "taxpayer_id"
)

// MapToForm1040 translates a type-specific extraction result into canonical
// form fields. W-9 and Unknown documents map to an empty set: W-9 data is
// identity information, not income, and must not touch the draft. The
// function never fails; unmapped fields default to zero.
func MapToForm1040(extracted *ExtractionResult) CanonicalFields {
	if extracted == nil {
		return CanonicalFields{}
	}
	switch extracted.DocumentType {
	case TypeW2:
		return CanonicalFields{
			FieldWages:              fieldOrZero(extracted, ExtractedWages),
			FieldFederalWithholding: fieldOrZero(extracted, ExtractedFederalWithheld),
		}
	case Type1099NEC:
		return CanonicalFields{
			FieldBusinessIncome:     fieldOrZero(extracted, ExtractedNonemployeeComp),
			FieldFederalWithholding: fieldOrZero(extracted, ExtractedFederalWithheld),
		}
	default:
		return CanonicalFields{}
	}
}

func fieldOrZero(extracted *ExtractionResult, name string) any {
	if v := extracted.Field(name); v != nil {
		return v
	}
	return float64(0)
}
