package domain

import (
	"github.com/google/uuid"

	"stockroom/internal/schema"
)

// Field is one custom field definition in an inventory's schema.
// Slug is the stable identifier items key their values by; it is
// derived from Name and recomputed whenever the name changes.
// Position is display order only and carries no mapping semantics.
type Field struct {
	Model
	InventoryID uuid.UUID        `db:"inventory_id"`
	Slug        string           `db:"slug"`
	Name        string           `db:"name"`
	Type        schema.FieldType `db:"type"`
	Required    bool             `db:"required"`
	Options     schema.Options   `db:"options"`
	Position    int              `db:"position"`
}
