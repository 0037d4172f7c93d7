package extraction

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taxforge/tax-filing-assistant/internal/core/domain"
)

func TestExtractW2(t *testing.T) {
	text := `
		Form W-2 Wage and Tax Statement 2024
		Employer identification number EIN 12-3456789
		1 Wages $45,000.00
		2 Federal income tax withheld $5,200.00
	`

	result := NewPatternExtractor().Extract(text, domain.TypeW2)

	assert.Equal(t, domain.TypeW2, result.DocumentType)
	assert.Equal(t, 45000.0, result.Fields[domain.ExtractedWages])
	assert.Equal(t, 5200.0, result.Fields[domain.ExtractedFederalWithheld])
	// EIN contains a hyphen inside the digit group and must stay a string.
	assert.Equal(t, "12-3456789", result.Fields[domain.ExtractedEmployerEIN])
}

func TestExtractW2FullBoxLabelStopsAtComma(t *testing.T) {
	// The lazy wages pattern stops at the first comma-class character, which
	// on the full IRS box label is the comma right after "Wages". The capture
	// cleans down to an empty string rather than the dollar amount.
	text := `1 Wages, tips, other compensation $45,000.00`

	result := NewPatternExtractor().Extract(text, domain.TypeW2)

	assert.Equal(t, "", result.Fields[domain.ExtractedWages])
}

func TestExtract1099NEC(t *testing.T) {
	text := `
		Form 1099-NEC Nonemployee Compensation
		PAYER'S TIN 98-7654321
		1 Nonemployee compensation $18,500.00
	`

	result := NewPatternExtractor().Extract(text, domain.Type1099NEC)

	assert.Equal(t, domain.Type1099NEC, result.DocumentType)
	assert.Equal(t, "98-7654321", result.Fields[domain.ExtractedPayerTIN])
	assert.Equal(t, 18500.0, result.Fields[domain.ExtractedNonemployeeComp])
}

func TestExtractW9(t *testing.T) {
	text := `Part I Taxpayer Identification Number TIN 12-3456789`

	result := NewPatternExtractor().Extract(text, domain.TypeW9)

	assert.Equal(t, domain.TypeW9, result.DocumentType)
	assert.Equal(t, "12-3456789", result.Fields[domain.ExtractedTaxpayerID])
}

func TestExtractMissingFieldIsAbsentNotError(t *testing.T) {
	text := `1 Wages $45,000.00` // no withholding, no EIN

	result := NewPatternExtractor().Extract(text, domain.TypeW2)

	assert.Equal(t, 45000.0, result.Fields[domain.ExtractedWages])
	assert.NotContains(t, result.Fields, domain.ExtractedFederalWithheld)
	assert.NotContains(t, result.Fields, domain.ExtractedEmployerEIN)
}

func TestExtractUnknownCarriesBoundedExcerpt(t *testing.T) {
	text := strings.Repeat("lorem ipsum ", 100)

	result := NewPatternExtractor().Extract(text, domain.TypeUnknown)

	assert.Equal(t, domain.TypeUnknown, result.DocumentType)
	assert.Empty(t, result.Fields)
	assert.Len(t, []rune(result.RawText), 500)
	assert.Equal(t, text[:500], result.RawText)
}

func TestExtractIsPure(t *testing.T) {
	text := `1 Wages $45,000.00`
	extractor := NewPatternExtractor()

	first := extractor.Extract(text, domain.TypeW2)
	second := extractor.Extract(text, domain.TypeW2)

	assert.Equal(t, first, second)
}

func TestCoerceValue(t *testing.T) {
	assert.Equal(t, 45000.0, coerceValue("45,000.00"))
	assert.Equal(t, 500.0, coerceValue("500"))
	assert.Equal(t, "12-3456789", coerceValue("12-3456789"))
	assert.Equal(t, "n/a", coerceValue("n/a"))
}

func TestClassifyByFilename(t *testing.T) {
	cases := []struct {
		filename string
		want     domain.DocumentType
	}{
		{"my_w2_2024.pdf", domain.TypeW2},
		{"W-2 acme corp.png", domain.TypeW2},
		{"1099-nec-freelance.pdf", domain.Type1099NEC},
		{"contractor_w9.jpg", domain.TypeW9},
		{"W-9_signed.pdf", domain.TypeW9},
		{"receipt.pdf", domain.TypeUnknown},
		// W-2 substrings take priority over 1099 and W-9.
		{"w2_and_1099_bundle.pdf", domain.TypeW2},
	}

	classifier := NewFilenameClassifier()
	for _, tc := range cases {
		assert.Equal(t, tc.want, classifier.Classify(tc.filename), tc.filename)
	}
}
