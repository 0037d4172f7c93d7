package domain

import "time"

type DocumentType string

const (
	TypeW2      DocumentType = "W-2"
	Type1099NEC DocumentType = "1099-NEC"
	TypeW9      DocumentType = "W-9"
	TypeUnknown DocumentType = "Unknown"
)

type DocumentStatus string

const (
	StatusUploaded   DocumentStatus = "uploaded"
	StatusProcessing DocumentStatus = "processing"
	StatusProcessed  DocumentStatus = "processed"
	StatusFailed     DocumentStatus = "failed"
)

type Document struct {
	ID          string            `json:"id"`
	UserID      string            `json:"user_id"`
	Filename    string            `json:"filename"`
	MimeType    string            `json:"mime_type"`
	StoragePath string            `json:"storage_path"`
	Type        DocumentType      `json:"document_type,omitempty"`
	Extracted   *ExtractionResult `json:"extracted_data,omitempty"`
	Status      DocumentStatus    `json:"status"`
	Error       string            `json:"error,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// ExtractionResult holds whatever the field patterns recovered from one
// document. Values are either float64 (plain amounts) or string (identifiers
// such as EINs that must not be coerced to numbers). A field the patterns
// did not match is simply absent. Unknown documents carry a bounded text
// excerpt for manual review instead of structured fields.
type ExtractionResult struct {
	DocumentType DocumentType   `json:"document_type"`
	Fields       map[string]any `json:"fields,omitempty"`
	RawText      string         `json:"raw_text,omitempty"`
}

// Field returns the extracted value for name, or nil when absent.
func (r *ExtractionResult) Field(name string) any {
	if r == nil || r.Fields == nil {
		return nil
	}
	return r.Fields[name]
}
