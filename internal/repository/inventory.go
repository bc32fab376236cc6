package repository

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"stockroom/internal/domain"
)

var ErrInventoryNotFound = errors.New("inventory not found")

type InventoryRepository struct {
	db *sqlx.DB
}

func NewInventoryRepository(db *sqlx.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

func (r *InventoryRepository) Create(inv *domain.Inventory) error {
	query := `
		INSERT INTO inventories (name, description)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	return r.db.QueryRow(query, inv.Name, inv.Description).
		Scan(&inv.ID, &inv.CreatedAt)
}

func (r *InventoryRepository) FindByID(id uuid.UUID) (*domain.Inventory, error) {
	query := `
		SELECT id, created_at, deleted_at, name, description
		FROM inventories
		WHERE id = $1 AND deleted_at IS NULL
	`

	inv := &domain.Inventory{}
	err := r.db.Get(inv, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInventoryNotFound
		}
		return nil, err
	}

	return inv, nil
}

func (r *InventoryRepository) List() ([]domain.Inventory, error) {
	query := `
		SELECT id, created_at, deleted_at, name, description
		FROM inventories
		WHERE deleted_at IS NULL
		ORDER BY created_at
	`

	inventories := []domain.Inventory{}
	if err := r.db.Select(&inventories, query); err != nil {
		return nil, err
	}
	return inventories, nil
}

func (r *InventoryRepository) Update(inv *domain.Inventory) error {
	query := `
		UPDATE inventories
		SET name = $1, description = $2
		WHERE id = $3 AND deleted_at IS NULL
	`

	res, err := r.db.Exec(query, inv.Name, inv.Description, inv.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrInventoryNotFound
	}
	return nil
}

// Delete soft-deletes the inventory along with its fields and items.
func (r *InventoryRepository) Delete(id uuid.UUID) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`UPDATE inventories SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrInventoryNotFound
	}

	if _, err := tx.Exec(`UPDATE fields SET deleted_at = NOW() WHERE inventory_id = $1 AND deleted_at IS NULL`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`UPDATE items SET deleted_at = NOW() WHERE inventory_id = $1 AND deleted_at IS NULL`, id); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *InventoryRepository) Stats(id uuid.UUID) (*domain.InventoryStats, error) {
	query := `
		SELECT
			COUNT(*) AS item_count,
			COALESCE(SUM(quantity), 0) AS total_quantity,
			COUNT(*) FILTER (WHERE min_stock > 0 AND quantity <= min_stock) AS low_stock_count
		FROM items
		WHERE inventory_id = $1 AND deleted_at IS NULL
	`

	stats := &domain.InventoryStats{}
	if err := r.db.Get(stats, query, id); err != nil {
		return nil, err
	}
	return stats, nil
}
