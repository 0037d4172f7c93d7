package domain

import "testing"

func TestNormalizeAmount(t *testing.T) {
	cases := []struct {
		name    string
		in      any
		want    float64
		outcome ParseOutcome
	}{
		{"nil", nil, 0, OutcomeMissing},
		{"empty string", "", 0, OutcomeMissing},
		{"whitespace", "   ", 0, OutcomeMissing},
		{"float", float64(45000.5), 45000.5, OutcomeParsed},
		{"int", 42, 42, OutcomeParsed},
		{"plain string", "45000", 45000, OutcomeParsed},
		{"comma grouped", "45,000.00", 45000, OutcomeParsed},
		{"negative", "-1,250.75", -1250.75, OutcomeParsed},
		{"leading plus", "+300", 300, OutcomeParsed},
		{"ein stays malformed", "12-3456789", 0, OutcomeMalformed},
		{"two decimal points", "1.2.3", 0, OutcomeMalformed},
		{"words", "about 5000", 0, OutcomeMalformed},
		{"bool", true, 0, OutcomeMalformed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, outcome := NormalizeAmount(tc.in)
			if got != tc.want {
				t.Fatalf("NormalizeAmount(%v) = %v, want %v", tc.in, got, tc.want)
			}
			if outcome != tc.outcome {
				t.Fatalf("outcome = %s, want %s", outcome, tc.outcome)
			}
		})
	}
}

func TestNormalizeCoercesEveryField(t *testing.T) {
	fields := CanonicalFields{
		"wages":               "50,000",
		"federal_withholding": float64(6000),
		"business_income":     nil,
		"state_withholding":   "oops",
	}

	normalized, outcomes := Normalize(fields)

	if normalized["wages"] != 50000 {
		t.Fatalf("wages = %v, want 50000", normalized["wages"])
	}
	if normalized["federal_withholding"] != 6000 {
		t.Fatalf("federal_withholding = %v, want 6000", normalized["federal_withholding"])
	}
	if normalized["business_income"] != 0 || outcomes["business_income"] != OutcomeMissing {
		t.Fatalf("business_income = %v (%s), want 0 missing",
			normalized["business_income"], outcomes["business_income"])
	}
	if normalized["state_withholding"] != 0 || outcomes["state_withholding"] != OutcomeMalformed {
		t.Fatalf("state_withholding = %v (%s), want 0 malformed",
			normalized["state_withholding"], outcomes["state_withholding"])
	}
}
