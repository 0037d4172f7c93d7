package domain

import (
	"reflect"
	"testing"
)

func TestMapToForm1040W2(t *testing.T) {
	extracted := &ExtractionResult{
		DocumentType: TypeW2,
		Fields: map[string]any{
			ExtractedEmployerEIN:     "12-3456789",
			ExtractedWages:           float64(45000),
			ExtractedFederalWithheld: float64(5200),
		},
	}

	fields := MapToForm1040(extracted)

	want := CanonicalFields{
		FieldWages:              float64(45000),
		FieldFederalWithholding: float64(5200),
	}
	if !reflect.DeepEqual(fields, want) {
		t.Fatalf("MapToForm1040() = %v, want %v", fields, want)
	}
}

func TestMapToForm1040NECDefaultsMissingFieldsToZero(t *testing.T) {
	extracted := &ExtractionResult{
		DocumentType: Type1099NEC,
		Fields: map[string]any{
			ExtractedNonemployeeComp: float64(18000),
		},
	}

	fields := MapToForm1040(extracted)

	if fields[FieldBusinessIncome] != float64(18000) {
		t.Fatalf("business_income = %v, want 18000", fields[FieldBusinessIncome])
	}
	if fields[FieldFederalWithholding] != float64(0) {
		t.Fatalf("federal_withholding = %v, want 0", fields[FieldFederalWithholding])
	}
}

func TestMapToForm1040W9AndUnknownAreEmpty(t *testing.T) {
	for _, docType := range []DocumentType{TypeW9, TypeUnknown} {
		fields := MapToForm1040(&ExtractionResult{
			DocumentType: docType,
			Fields:       map[string]any{ExtractedTaxpayerID: "12-3456789"},
		})
		if len(fields) != 0 {
			t.Fatalf("%s mapping = %v, want empty", docType, fields)
		}
	}
}

func TestMapToForm1040Pure(t *testing.T) {
	extracted := &ExtractionResult{
		DocumentType: TypeW2,
		Fields:       map[string]any{ExtractedWages: float64(1000)},
	}

	first := MapToForm1040(extracted)
	second := MapToForm1040(extracted)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("mapping not deterministic: %v vs %v", first, second)
	}
	if extracted.Fields[ExtractedWages] != float64(1000) {
		t.Fatalf("mapping mutated its input: %v", extracted.Fields)
	}
}

func TestMapToForm1040NilResult(t *testing.T) {
	if fields := MapToForm1040(nil); len(fields) != 0 {
		t.Fatalf("nil result mapping = %v, want empty", fields)
	}
}
