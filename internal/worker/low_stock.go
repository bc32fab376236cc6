package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"stockroom/internal/api/ws"
	"stockroom/internal/repository"
)

// LowStockWorker periodically scans for items at or below their
// minimum stock level and pushes low_stock events to connected
// clients.
type LowStockWorker struct {
	itemRepo *repository.ItemRepository
	hub      *ws.Hub
	ticker   *time.Ticker
}

func NewLowStockWorker(db *sqlx.DB, interval time.Duration) *LowStockWorker {
	return &LowStockWorker{
		itemRepo: repository.NewItemRepository(db),
		hub:      ws.GetHub(),
		ticker:   time.NewTicker(interval),
	}
}

func (w *LowStockWorker) StartWorker(ctx context.Context) {
	defer w.ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.ticker.C:
			w.scan()
		}
	}
}

func (w *LowStockWorker) scan() {
	if w.hub.ConnectionCount() == 0 {
		return
	}

	items, err := w.itemRepo.ListLowStock()
	if err != nil {
		fmt.Printf("[LowStockWorker] Error listing low stock items: %v\n", err)
		return
	}

	for _, item := range items {
		w.hub.BroadcastLowStock(item.ID, item.InventoryID, item.Name, item.Quantity, item.MinStock)
	}

	if len(items) > 0 {
		fmt.Printf("[LowStockWorker] Notified %d low stock items\n", len(items))
	}
}
