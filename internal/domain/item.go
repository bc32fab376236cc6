package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"stockroom/internal/schema"
)

// Item is one record in an inventory. Name, description and quantity
// are fixed attributes present regardless of schema; Values carries
// the custom field payload keyed by field slug. Absent keys mean
// "N/A", never empty string.
type Item struct {
	Model
	InventoryID uuid.UUID       `db:"inventory_id"`
	Name        string          `db:"name"`
	Description string          `db:"description"`
	Quantity    int             `db:"quantity"`
	MinStock    int             `db:"min_stock"`
	MaxStock    int             `db:"max_stock"`
	Tags        pq.StringArray  `db:"tags"`
	Values      schema.ValueMap `db:"field_values"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

// ApplyQuantityDelta returns the quantity after applying delta,
// clamped at zero.
func (i *Item) ApplyQuantityDelta(delta int) int {
	q := i.Quantity + delta
	if q < 0 {
		q = 0
	}
	return q
}

// LowStock reports whether the item is at or below its minimum
// stock level. A zero MinStock disables the check.
func (i *Item) LowStock() bool {
	return i.MinStock > 0 && i.Quantity <= i.MinStock
}
