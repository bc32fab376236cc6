package domain

import "stockroom/internal/schema"

// ExtractionPayload is the raw output of an external page-extraction
// source for one prospective item. ExtractedData keys are
// source-specific and loosely structured; the mapper reconciles them
// against an inventory schema.
type ExtractionPayload struct {
	URL           string         `json:"url"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	ExtractedData map[string]any `json:"extractedData"`
}

// Draft is a best-effort item produced by mapping an extraction
// payload against a schema. Fields that could not be resolved are
// listed in Unmapped and left absent from Values, to be completed
// manually before commit. Coverage is informational only.
type Draft struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Values      schema.ValueMap `json:"fieldValues"`
	Unmapped    []string        `json:"unmappedFields"`
	Coverage    float64         `json:"coverage"`
}
