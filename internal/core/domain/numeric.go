package domain

import (
	"regexp"
	"strconv"
	"strings"
)

// ParseOutcome tags how a field value became a number, so callers can tell
// "zero because missing" from "zero because malformed" even though both
// default to zero today.
type ParseOutcome string

const (
	OutcomeParsed    ParseOutcome = "parsed"
	OutcomeMissing   ParseOutcome = "missing"
	OutcomeMalformed ParseOutcome = "malformed"
)

// NormalizedFields holds canonical fields after numeric coercion.
type NormalizedFields map[string]float64

var amountPattern = regexp.MustCompile(`^[+-]?[0-9]+(\.[0-9]*)?$`)

// NormalizeAmount coerces an untrusted field value into a float64.
// nil and empty strings are missing; numbers pass through; strings may carry
// grouping commas, an optional leading sign and at most one decimal point.
// Everything else silently becomes zero. Leniency over strictness here is
// deliberate and load-bearing: extraction output and stored drafts mix
// strings, numbers and nulls freely.
func NormalizeAmount(v any) (float64, ParseOutcome) {
	switch value := v.(type) {
	case nil:
		return 0, OutcomeMissing
	case float64:
		return value, OutcomeParsed
	case float32:
		return float64(value), OutcomeParsed
	case int:
		return float64(value), OutcomeParsed
	case int32:
		return float64(value), OutcomeParsed
	case int64:
		return float64(value), OutcomeParsed
	case string:
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return 0, OutcomeMissing
		}
		cleaned := strings.ReplaceAll(trimmed, ",", "")
		if !amountPattern.MatchString(cleaned) {
			return 0, OutcomeMalformed
		}
		parsed, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, OutcomeMalformed
		}
		return parsed, OutcomeParsed
	default:
		return 0, OutcomeMalformed
	}
}

// Normalize coerces every field. It must run after merging and before
// calculation; the returned outcomes keep per-field provenance for logging.
func Normalize(fields CanonicalFields) (NormalizedFields, map[string]ParseOutcome) {
	out := make(NormalizedFields, len(fields))
	outcomes := make(map[string]ParseOutcome, len(fields))
	for key, value := range fields {
		amount, outcome := NormalizeAmount(value)
		out[key] = amount
		outcomes[key] = outcome
	}
	return out, outcomes
}
