// Package extraction implements the filename classifier and the per-type
// field pattern extractor that turn OCR text into structured fields.
package extraction

import (
	"strings"

	"github.com/taxforge/tax-filing-assistant/internal/core/domain"
)

// FilenameClassifier decides the document type from the uploaded filename.
// Purely a naming convention: W-2 patterns win over 1099, which win over
// W-9, and anything else is Unknown. It implements the classifier port so a
// content-based or model-based variant can replace it later.
type FilenameClassifier struct{}

func NewFilenameClassifier() *FilenameClassifier {
	return &FilenameClassifier{}
}

func (c *FilenameClassifier) Classify(filename string) domain.DocumentType {
	name := strings.ToLower(filename)
	switch {
	case strings.Contains(name, "w2") || strings.Contains(name, "w-2"):
		return domain.TypeW2
	case strings.Contains(name, "1099"):
		return domain.Type1099NEC
	case strings.Contains(name, "w9") || strings.Contains(name, "w-9"):
		return domain.TypeW9
	default:
		return domain.TypeUnknown
	}
}
