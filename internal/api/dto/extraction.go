package dto

import (
	"stockroom/internal/domain"
	"stockroom/internal/schema"
)

type PopulateRequest struct {
	URL string `json:"url" validate:"required,url"`
}

type Draft struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	FieldValues schema.ValueMap `json:"fieldValues"`
	Unmapped    []string        `json:"unmappedFields"`
	Coverage    float64         `json:"coverage"`
}

func DraftFromDomain(draft *domain.Draft) *Draft {
	if draft == nil {
		return nil
	}

	unmapped := draft.Unmapped
	if unmapped == nil {
		unmapped = []string{}
	}

	values := draft.Values
	if values == nil {
		values = schema.ValueMap{}
	}

	return &Draft{
		Name:        draft.Name,
		Description: draft.Description,
		FieldValues: values,
		Unmapped:    unmapped,
		Coverage:    draft.Coverage,
	}
}
