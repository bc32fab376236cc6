package dto

import (
	"time"

	"stockroom/internal/domain"
)

type Inventory struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type InventoryStats struct {
	ItemCount     int `json:"itemCount"`
	TotalQuantity int `json:"totalQuantity"`
	LowStockCount int `json:"lowStockCount"`
}

func InventoryFromDomain(inv *domain.Inventory) *Inventory {
	if inv == nil {
		return nil
	}
	return &Inventory{
		ID:          inv.ID.String(),
		Name:        inv.Name,
		Description: inv.Description,
		CreatedAt:   inv.CreatedAt,
	}
}

func InventoriesFromDomain(inventories []domain.Inventory) []*Inventory {
	result := make([]*Inventory, len(inventories))
	for i := range inventories {
		result[i] = InventoryFromDomain(&inventories[i])
	}
	return result
}

func StatsFromDomain(stats *domain.InventoryStats) *InventoryStats {
	if stats == nil {
		return nil
	}
	return &InventoryStats{
		ItemCount:     stats.ItemCount,
		TotalQuantity: stats.TotalQuantity,
		LowStockCount: stats.LowStockCount,
	}
}
