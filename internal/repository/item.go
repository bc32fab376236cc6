package repository

import (
	"database/sql"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"stockroom/internal/domain"
)

var ErrItemNotFound = errors.New("item not found")

type ItemRepository struct {
	db *sqlx.DB
}

func NewItemRepository(db *sqlx.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// Begin starts a transaction for multi-statement schema changes.
func (r *ItemRepository) Begin() (*sqlx.Tx, error) {
	return r.db.Beginx()
}

func (r *ItemRepository) Create(item *domain.Item) error {
	query := `
		INSERT INTO items (inventory_id, name, description, quantity, min_stock, max_stock, tags, field_values)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	return r.db.QueryRow(query,
		item.InventoryID, item.Name, item.Description, item.Quantity,
		item.MinStock, item.MaxStock, item.Tags, item.Values,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
}

func (r *ItemRepository) FindByID(id uuid.UUID) (*domain.Item, error) {
	query := `
		SELECT id, created_at, updated_at, deleted_at, inventory_id, name, description,
			quantity, min_stock, max_stock, tags, field_values
		FROM items
		WHERE id = $1 AND deleted_at IS NULL
	`

	item := &domain.Item{}
	err := r.db.Get(item, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	return item, nil
}

type ItemFilter struct {
	Search string
	Tag    string
}

func (r *ItemRepository) ListByInventory(inventoryID uuid.UUID, filter ItemFilter) ([]domain.Item, error) {
	query := `
		SELECT id, created_at, updated_at, deleted_at, inventory_id, name, description,
			quantity, min_stock, max_stock, tags, field_values
		FROM items
		WHERE inventory_id = $1 AND deleted_at IS NULL
	`
	args := []any{inventoryID}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += ` AND (name ILIKE $2 OR description ILIKE $2)`
	}
	if filter.Tag != "" {
		args = append(args, filter.Tag)
		query += ` AND $` + strconv.Itoa(len(args)) + ` = ANY(tags)`
	}
	query += ` ORDER BY created_at`

	items := []domain.Item{}
	if err := r.db.Select(&items, query, args...); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *ItemRepository) Update(item *domain.Item) error {
	query := `
		UPDATE items
		SET name = $1, description = $2, quantity = $3, min_stock = $4,
			max_stock = $5, tags = $6, field_values = $7, updated_at = NOW()
		WHERE id = $8 AND deleted_at IS NULL
		RETURNING updated_at
	`

	err := r.db.QueryRow(query,
		item.Name, item.Description, item.Quantity, item.MinStock,
		item.MaxStock, item.Tags, item.Values, item.ID,
	).Scan(&item.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrItemNotFound
	}
	return err
}

func (r *ItemRepository) UpdateQuantity(id uuid.UUID, quantity int) (*domain.Item, error) {
	query := `
		UPDATE items
		SET quantity = $1, updated_at = NOW()
		WHERE id = $2 AND deleted_at IS NULL
		RETURNING id, created_at, updated_at, deleted_at, inventory_id, name, description,
			quantity, min_stock, max_stock, tags, field_values
	`

	item := &domain.Item{}
	err := r.db.Get(item, query, quantity, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (r *ItemRepository) Delete(id uuid.UUID) error {
	query := `UPDATE items SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	res, err := r.db.Exec(query, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrItemNotFound
	}
	return nil
}

// PruneValueKey drops a field key from every item of the inventory.
func (r *ItemRepository) PruneValueKey(h ExtHandle, inventoryID uuid.UUID, slug string) error {
	query := `
		UPDATE items
		SET field_values = field_values - $1, updated_at = NOW()
		WHERE inventory_id = $2 AND deleted_at IS NULL AND field_values ? $1
	`
	_, err := h.Exec(query, slug, inventoryID)
	return err
}

// RenameValueKey moves stored values from an old field key to a new one.
func (r *ItemRepository) RenameValueKey(h ExtHandle, inventoryID uuid.UUID, oldSlug, newSlug string) error {
	query := `
		UPDATE items
		SET field_values = (field_values - $1) || jsonb_build_object($2::text, field_values -> $1),
			updated_at = NOW()
		WHERE inventory_id = $3 AND deleted_at IS NULL AND field_values ? $1
	`
	_, err := h.Exec(query, oldSlug, newSlug, inventoryID)
	return err
}

type LowStockItem struct {
	ID          uuid.UUID `db:"id"`
	InventoryID uuid.UUID `db:"inventory_id"`
	Name        string    `db:"name"`
	Quantity    int       `db:"quantity"`
	MinStock    int       `db:"min_stock"`
}

func (r *ItemRepository) ListLowStock() ([]LowStockItem, error) {
	query := `
		SELECT id, inventory_id, name, quantity, min_stock
		FROM items
		WHERE deleted_at IS NULL AND min_stock > 0 AND quantity <= min_stock
		ORDER BY inventory_id, name
	`

	items := []LowStockItem{}
	if err := r.db.Select(&items, query); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *ItemRepository) ListByIDs(ids []uuid.UUID) ([]domain.Item, error) {
	if len(ids) == 0 {
		return []domain.Item{}, nil
	}

	query, args, err := sqlx.In(`
		SELECT id, created_at, updated_at, deleted_at, inventory_id, name, description,
			quantity, min_stock, max_stock, tags, field_values
		FROM items
		WHERE id IN (?) AND deleted_at IS NULL
	`, ids)
	if err != nil {
		return nil, err
	}

	query = r.db.Rebind(query)
	items := []domain.Item{}
	if err := r.db.Select(&items, query, args...); err != nil {
		return nil, err
	}
	return items, nil
}

