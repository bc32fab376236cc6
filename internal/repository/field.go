package repository

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"stockroom/internal/domain"
)

var (
	ErrFieldNotFound = errors.New("field not found")
	ErrFieldExists   = errors.New("field already exists")
)

type FieldRepository struct {
	db *sqlx.DB
}

func NewFieldRepository(db *sqlx.DB) *FieldRepository {
	return &FieldRepository{db: db}
}

func (r *FieldRepository) Create(field *domain.Field) error {
	return r.CreateWithExt(r.db, field)
}

func (r *FieldRepository) CreateWithExt(h ExtHandle, field *domain.Field) error {
	query := `
		INSERT INTO fields (inventory_id, slug, name, type, required, options, position)
		VALUES ($1, $2, $3, $4, $5, $6,
			COALESCE((SELECT MAX(position) + 1 FROM fields WHERE inventory_id = $1 AND deleted_at IS NULL), 0))
		RETURNING id, created_at, position
	`

	err := h.QueryRowx(query,
		field.InventoryID, field.Slug, field.Name, field.Type, field.Required, field.Options,
	).Scan(&field.ID, &field.CreatedAt, &field.Position)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrFieldExists
		}
		return err
	}
	return nil
}

func (r *FieldRepository) FindByID(id uuid.UUID) (*domain.Field, error) {
	query := `
		SELECT id, created_at, deleted_at, inventory_id, slug, name, type, required, options, position
		FROM fields
		WHERE id = $1 AND deleted_at IS NULL
	`

	field := &domain.Field{}
	err := r.db.Get(field, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFieldNotFound
		}
		return nil, err
	}

	return field, nil
}

func (r *FieldRepository) ListByInventory(inventoryID uuid.UUID) ([]domain.Field, error) {
	return r.ListByInventoryWithExt(r.db, inventoryID)
}

func (r *FieldRepository) ListByInventoryWithExt(h ExtHandle, inventoryID uuid.UUID) ([]domain.Field, error) {
	query := `
		SELECT id, created_at, deleted_at, inventory_id, slug, name, type, required, options, position
		FROM fields
		WHERE inventory_id = $1 AND deleted_at IS NULL
		ORDER BY position
	`

	fields := []domain.Field{}
	if err := h.Select(&fields, query, inventoryID); err != nil {
		return nil, err
	}
	return fields, nil
}

func (r *FieldRepository) UpdateWithExt(h ExtHandle, field *domain.Field) error {
	query := `
		UPDATE fields
		SET slug = $1, name = $2, required = $3, options = $4
		WHERE id = $5 AND deleted_at IS NULL
	`

	res, err := h.Exec(query, field.Slug, field.Name, field.Required, field.Options, field.ID)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrFieldExists
		}
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrFieldNotFound
	}
	return nil
}

func (r *FieldRepository) DeleteWithExt(h ExtHandle, id uuid.UUID) error {
	query := `UPDATE fields SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	res, err := h.Exec(query, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrFieldNotFound
	}
	return nil
}
