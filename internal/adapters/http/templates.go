package httpadapter

// Form template metadata served to the frontend. Field definitions drive
// form rendering only; the calculator accepts any key and treats unknown
// numeric line items as income.

type TemplateField struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Type     string   `json:"type"`
	Required bool     `json:"required"`
	Options  []string `json:"options,omitempty"`
}

type FormTemplate struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Fields      []TemplateField `json:"fields"`
}

var formTemplates = map[string]FormTemplate{
	"1040": {
		Name:        "Form 1040 - U.S. Individual Income Tax Return",
		Description: "Main tax form for individual income tax returns",
		Fields: []TemplateField{
			{Name: "wages", Label: "Wages, salaries, tips (W-2)", Type: "number"},
			{Name: "interest_income", Label: "Taxable interest", Type: "number"},
			{Name: "dividend_income", Label: "Ordinary dividends", Type: "number"},
			{Name: "business_income", Label: "Business income (1099-NEC)", Type: "number"},
			{Name: "federal_withholding", Label: "Federal income tax withheld", Type: "number"},
			{Name: "state_withholding", Label: "State income tax withheld", Type: "number"},
		},
	},
	"schedule_a": {
		Name:        "Schedule A - Itemized Deductions",
		Description: "Use this form to itemize deductions instead of taking the standard deduction",
		Fields: []TemplateField{
			{Name: "medical_expenses", Label: "Medical and dental expenses", Type: "number"},
			{Name: "state_local_taxes", Label: "State and local income taxes or sales taxes", Type: "number"},
			{Name: "mortgage_interest", Label: "Home mortgage interest", Type: "number"},
			{Name: "charitable_contributions", Label: "Gifts to charity", Type: "number"},
		},
	},
	"schedule_c": {
		Name:        "Schedule C - Profit or Loss From Business",
		Description: "Use this form to report income or loss from a business you operated",
		Fields: []TemplateField{
			{Name: "gross_receipts", Label: "Gross receipts or sales", Type: "number"},
			{Name: "business_expenses", Label: "Total expenses", Type: "number"},
			{Name: "home_office", Label: "Home office deduction", Type: "number"},
			{Name: "vehicle_expenses", Label: "Car and truck expenses", Type: "number"},
		},
	},
	"w9": {
		Name:        "Form W-9 - Request for Taxpayer Identification Number",
		Description: "Give this form to the requester to provide your correct TIN",
		Fields: []TemplateField{
			{Name: "name", Label: "Name (as shown on your income tax return)", Type: "text", Required: true},
			{Name: "business_name", Label: "Business name/disregarded entity name", Type: "text"},
			{Name: "tax_classification", Label: "Federal tax classification", Type: "select", Required: true,
				Options: []string{"Individual/sole proprietor", "C Corporation", "S Corporation", "Partnership", "Trust/estate", "LLC"}},
			{Name: "address", Label: "Address (number, street, and apt. or suite no.)", Type: "text", Required: true},
			{Name: "city", Label: "City", Type: "text", Required: true},
			{Name: "state", Label: "State", Type: "text", Required: true},
			{Name: "zip_code", Label: "ZIP code", Type: "text", Required: true},
			{Name: "taxpayer_id", Label: "Taxpayer Identification Number (TIN)", Type: "text", Required: true},
			{Name: "ssn", Label: "Social Security Number", Type: "text"},
			{Name: "ein", Label: "Employer Identification Number", Type: "text"},
			{Name: "account_numbers", Label: "Account number(s) (optional)", Type: "text"},
			{Name: "requester_name", Label: "Requester's name and address", Type: "text"},
			{Name: "requester_address", Label: "Requester's address", Type: "textarea"},
		},
	},
}

type formListing struct {
	Type     string `json:"type"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

var availableForms = []formListing{
	{Type: "1040", Name: "Form 1040", Category: "Individual"},
	{Type: "schedule_a", Name: "Schedule A", Category: "Deductions"},
	{Type: "schedule_c", Name: "Schedule C", Category: "Business"},
	{Type: "w9", Name: "Form W-9", Category: "Information"},
}

type option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var filingStatusOptions = []option{
	{Value: "single", Label: "Single"},
	{Value: "married_filing_jointly", Label: "Married Filing Jointly"},
	{Value: "married_filing_separately", Label: "Married Filing Separately"},
	{Value: "head_of_household", Label: "Head of Household"},
	{Value: "qualifying_widow", Label: "Qualifying Widow(er)"},
}

var stateOptions = []option{
	{Value: "AL", Label: "Alabama"}, {Value: "AK", Label: "Alaska"},
	{Value: "AZ", Label: "Arizona"}, {Value: "AR", Label: "Arkansas"},
	{Value: "CA", Label: "California"}, {Value: "CO", Label: "Colorado"},
	{Value: "CT", Label: "Connecticut"}, {Value: "DE", Label: "Delaware"},
	{Value: "FL", Label: "Florida"}, {Value: "GA", Label: "Georgia"},
	{Value: "HI", Label: "Hawaii"}, {Value: "ID", Label: "Idaho"},
	{Value: "IL", Label: "Illinois"}, {Value: "IN", Label: "Indiana"},
	{Value: "IA", Label: "Iowa"}, {Value: "KS", Label: "Kansas"},
	{Value: "KY", Label: "Kentucky"}, {Value: "LA", Label: "Louisiana"},
	{Value: "ME", Label: "Maine"}, {Value: "MD", Label: "Maryland"},
	{Value: "MA", Label: "Massachusetts"}, {Value: "MI", Label: "Michigan"},
	{Value: "MN", Label: "Minnesota"}, {Value: "MS", Label: "Mississippi"},
	{Value: "MO", Label: "Missouri"}, {Value: "MT", Label: "Montana"},
	{Value: "NE", Label: "Nebraska"}, {Value: "NV", Label: "Nevada"},
	{Value: "NH", Label: "New Hampshire"}, {Value: "NJ", Label: "New Jersey"},
	{Value: "NM", Label: "New Mexico"}, {Value: "NY", Label: "New York"},
	{Value: "NC", Label: "North Carolina"}, {Value: "ND", Label: "North Dakota"},
	{Value: "OH", Label: "Ohio"}, {Value: "OK", Label: "Oklahoma"},
	{Value: "OR", Label: "Oregon"}, {Value: "PA", Label: "Pennsylvania"},
	{Value: "RI", Label: "Rhode Island"}, {Value: "SC", Label: "South Carolina"},
	{Value: "SD", Label: "South Dakota"}, {Value: "TN", Label: "Tennessee"},
	{Value: "TX", Label: "Texas"}, {Value: "UT", Label: "Utah"},
	{Value: "VT", Label: "Vermont"}, {Value: "VA", Label: "Virginia"},
	{Value: "WA", Label: "Washington"}, {Value: "WV", Label: "West Virginia"},
	{Value: "WI", Label: "Wisconsin"}, {Value: "WY", Label: "Wyoming"},
}
