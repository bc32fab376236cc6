package dto

import (
	"stockroom/internal/domain"
)

type Field struct {
	ID       string   `json:"id"`
	Key      string   `json:"key"`
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Required bool     `json:"required"`
	Options  []string `json:"options,omitempty"`
	Position int      `json:"position"`
}

type CreateFieldRequest struct {
	Name     string   `json:"name" validate:"required"`
	Type     string   `json:"type" validate:"required,oneof=text number date select"`
	Required bool     `json:"required"`
	Options  []string `json:"options"`
}

type UpdateFieldRequest struct {
	Name     string   `json:"name" validate:"required"`
	Required bool     `json:"required"`
	Options  []string `json:"options"`
}

func FieldFromDomain(field *domain.Field) *Field {
	if field == nil {
		return nil
	}
	return &Field{
		ID:       field.ID.String(),
		Key:      field.Slug,
		Name:     field.Name,
		Type:     string(field.Type),
		Required: field.Required,
		Options:  field.Options,
		Position: field.Position,
	}
}

func FieldsFromDomain(fields []domain.Field) []*Field {
	result := make([]*Field, len(fields))
	for i := range fields {
		result[i] = FieldFromDomain(&fields[i])
	}
	return result
}
