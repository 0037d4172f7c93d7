package extraction

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/taxforge/tax-filing-assistant/internal/core/domain"
)

// rawTextLimit bounds the excerpt stored for unrecognized documents.
const rawTextLimit = 500

type fieldPattern struct {
	field    string
	patterns []*regexp.Regexp
}

// Box-number anchored patterns against the concatenated OCR text of all
// pages. The first pattern that matches wins and its first capture group is
// the raw value.
var (
	w2Patterns = []fieldPattern{
		{domain.ExtractedEmployerEIN, compileAll(`(?i)Employer.*EIN.*?(\d{2}-\d{7})`)},
		{domain.ExtractedWages, compileAll(`(?i)1\s+wages.*?\$?([\d,\.]+)`)},
		{domain.ExtractedFederalWithheld, compileAll(`(?i)2\s+federal.*?\$?([\d,\.]+)`)},
	}
	necPatterns = []fieldPattern{
		{domain.ExtractedPayerTIN, compileAll(`(?i)PAYER.*TIN.*?(\d{2}-\d{7})`)},
		{domain.ExtractedNonemployeeComp, compileAll(`(?i)1\s+Nonemployee.*?\$?([\d,\.]+)`)},
	}
	w9Patterns = []fieldPattern{
		{domain.ExtractedTaxpayerID, compileAll(`(?i)Part\s+I.*?TIN.*?(\d{2}-\d{7})`)},
	}
)

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		out = append(out, regexp.MustCompile(expr))
	}
	return out
}

// PatternExtractor applies a fixed pattern table per document type. It is a
// pure function of (text, type): misses leave fields absent, never error.
type PatternExtractor struct{}

func NewPatternExtractor() *PatternExtractor {
	return &PatternExtractor{}
}

func (e *PatternExtractor) Extract(text string, docType domain.DocumentType) *domain.ExtractionResult {
	var table []fieldPattern
	switch docType {
	case domain.TypeW2:
		table = w2Patterns
	case domain.Type1099NEC:
		table = necPatterns
	case domain.TypeW9:
		table = w9Patterns
	default:
		return &domain.ExtractionResult{
			DocumentType: domain.TypeUnknown,
			RawText:      excerpt(text, rawTextLimit),
		}
	}

	fields := make(map[string]any, len(table))
	for _, fp := range table {
		for _, pattern := range fp.patterns {
			match := pattern.FindStringSubmatch(text)
			if len(match) < 2 {
				continue
			}
			fields[fp.field] = coerceValue(match[1])
			break
		}
	}
	return &domain.ExtractionResult{
		DocumentType: docType,
		Fields:       fields,
	}
}

// coerceValue strips grouping commas and converts to float64 when the value
// is digits with at most one decimal point. Hyphenated identifiers such as
// EINs stay strings.
func coerceValue(raw string) any {
	cleaned := strings.ReplaceAll(raw, ",", "")
	if !numericValue.MatchString(cleaned) {
		return cleaned
	}
	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return cleaned
	}
	return parsed
}

var numericValue = regexp.MustCompile(`^[0-9]+(\.[0-9]*)?$`)

func excerpt(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
