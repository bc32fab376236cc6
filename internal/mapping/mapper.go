package mapping

import (
	"stockroom/internal/domain"
	"stockroom/internal/schema"
)

// Mapper reconciles a raw extraction payload against an inventory's
// custom-field schema, producing a best-effort item draft. Mapping
// never fails on bad input values: a field that cannot be filled
// correctly is reported unmapped instead.
type Mapper struct {
	resolver *Resolver
}

func NewMapper(resolver *Resolver) *Mapper {
	return &Mapper{resolver: resolver}
}

// Map runs, for each field in schema order: alias resolution, type
// coercion, select option guessing, then required-field last-resort
// defaults. Unresolved fields are absent from Values, never
// null-filled. Coverage is mappedCount/totalFields, informational
// only.
func (m *Mapper) Map(payload *domain.ExtractionPayload, fields []domain.Field) *domain.Draft {
	draft := &domain.Draft{
		Name:        payload.Name,
		Description: payload.Description,
		Values:      schema.ValueMap{},
		Unmapped:    []string{},
	}

	for _, field := range fields {
		if value, ok := m.mapField(payload, field); ok {
			draft.Values[field.Slug] = value
		} else {
			draft.Unmapped = append(draft.Unmapped, field.Slug)
		}
	}

	if len(fields) > 0 {
		draft.Coverage = float64(len(draft.Values)) / float64(len(fields))
	}
	return draft
}

func (m *Mapper) mapField(payload *domain.ExtractionPayload, field domain.Field) (schema.Value, bool) {
	concept, _ := m.resolver.ConceptFor(field.Slug, field.Name)

	raw, found := m.resolver.Resolve(field.Slug, field.Name, payload.ExtractedData)
	if found {
		if value, ok := schema.Coerce(field.Type, raw, field.Options); ok {
			return value, true
		}
		// Select coercion missed every option; keyword heuristics get
		// a shot at the raw text before giving up.
		if field.Type == schema.FieldTypeSelect {
			if option, ok := guessOption(concept, schema.Stringify(raw), field.Options); ok {
				return schema.OptionValue(option), true
			}
		}
	}

	if field.Required {
		return requiredDefault(concept, field.Type, field.Options, payload.URL)
	}
	return schema.Value{}, false
}
