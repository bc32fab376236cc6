package dto

import (
	"time"

	"stockroom/internal/domain"
	"stockroom/internal/schema"
)

type Item struct {
	ID          string          `json:"id"`
	InventoryID string          `json:"inventoryId"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Quantity    int             `json:"quantity"`
	MinStock    int             `json:"minStock"`
	MaxStock    int             `json:"maxStock"`
	Tags        []string        `json:"tags"`
	FieldValues schema.ValueMap `json:"fieldValues"`
	LowStock    bool            `json:"lowStock"`
	CreatedAt   time.Time       `json:"createdAt"`
	LastUpdated time.Time       `json:"lastUpdated"`
}

type ItemRequest struct {
	Name        string         `json:"name" validate:"required"`
	Description string         `json:"description"`
	Quantity    int            `json:"quantity" validate:"gte=0"`
	MinStock    int            `json:"minStock" validate:"gte=0"`
	MaxStock    int            `json:"maxStock" validate:"gte=0"`
	Tags        []string       `json:"tags"`
	FieldValues map[string]any `json:"fieldValues"`
}

type ChangeQuantityRequest struct {
	Delta int `json:"delta" validate:"required"`
}

func ItemFromDomain(item *domain.Item) *Item {
	if item == nil {
		return nil
	}

	tags := item.Tags
	if tags == nil {
		tags = []string{}
	}

	values := item.Values
	if values == nil {
		values = schema.ValueMap{}
	}

	return &Item{
		ID:          item.ID.String(),
		InventoryID: item.InventoryID.String(),
		Name:        item.Name,
		Description: item.Description,
		Quantity:    item.Quantity,
		MinStock:    item.MinStock,
		MaxStock:    item.MaxStock,
		Tags:        tags,
		FieldValues: values,
		LowStock:    item.LowStock(),
		CreatedAt:   item.CreatedAt,
		LastUpdated: item.UpdatedAt,
	}
}

func ItemsFromDomain(items []domain.Item) []*Item {
	result := make([]*Item, len(items))
	for i := range items {
		result[i] = ItemFromDomain(&items[i])
	}
	return result
}
