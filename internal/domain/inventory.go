package domain

// Inventory is a catalog location. Each inventory owns exactly one
// custom-field schema and the items typed against it.
type Inventory struct {
	Model
	Name        string `db:"name"`
	Description string `db:"description"`
}

// InventoryStats is the dashboard summary for one inventory.
type InventoryStats struct {
	ItemCount     int `db:"item_count"`
	TotalQuantity int `db:"total_quantity"`
	LowStockCount int `db:"low_stock_count"`
}
