package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"stockroom/internal/domain"
	r "stockroom/internal/redis"
	"stockroom/internal/repository"
	"stockroom/internal/schema"
)

var (
	ErrFieldNotFound  = errors.New("field not found")
	ErrDuplicateField = errors.New("field with this id already exists")
)

type FieldInput struct {
	Name     string
	Type     string
	Required bool
	Options  []string
}

type FieldUpdateInput struct {
	Name     string
	Required bool
	Options  []string
}

// SchemaService owns per-inventory field definitions. Field ids are
// derived from names, so renames migrate stored item values and every
// edit invalidates the cached schema.
type SchemaService struct {
	invRepo   *repository.InventoryRepository
	fieldRepo *repository.FieldRepository
	itemRepo  *repository.ItemRepository
	cache     r.Cache[[]domain.Field]
}

func NewSchemaService(
	invRepo *repository.InventoryRepository,
	fieldRepo *repository.FieldRepository,
	itemRepo *repository.ItemRepository,
	rdb *goredis.Client,
) *SchemaService {
	return &SchemaService{
		invRepo:   invRepo,
		fieldRepo: fieldRepo,
		itemRepo:  itemRepo,
		cache:     r.NewJSONCache[[]domain.Field](rdb, "schema", 5*time.Minute),
	}
}

func (s *SchemaService) Fields(ctx context.Context, inventoryID uuid.UUID) ([]domain.Field, error) {
	if cached, err := s.cache.Get(ctx, inventoryID.String()); err == nil && cached != nil {
		return *cached, nil
	}

	if _, err := s.invRepo.FindByID(inventoryID); err != nil {
		if errors.Is(err, repository.ErrInventoryNotFound) {
			return nil, ErrInventoryNotFound
		}
		return nil, err
	}

	fields, err := s.fieldRepo.ListByInventory(inventoryID)
	if err != nil {
		return nil, err
	}

	_ = s.cache.Set(ctx, inventoryID.String(), &fields)
	return fields, nil
}

func (s *SchemaService) AddField(ctx context.Context, inventoryID uuid.UUID, input FieldInput) (*domain.Field, error) {
	fieldType, err := schema.ParseFieldType(input.Type)
	if err != nil {
		return nil, err
	}
	if err := schema.ValidateDefinition(input.Name, fieldType, input.Options); err != nil {
		return nil, err
	}

	if _, err := s.invRepo.FindByID(inventoryID); err != nil {
		if errors.Is(err, repository.ErrInventoryNotFound) {
			return nil, ErrInventoryNotFound
		}
		return nil, err
	}

	field := &domain.Field{
		InventoryID: inventoryID,
		Slug:        schema.Slugify(input.Name),
		Name:        input.Name,
		Type:        fieldType,
		Required:    input.Required,
		Options:     input.Options,
	}

	if err := s.fieldRepo.Create(field); err != nil {
		if errors.Is(err, repository.ErrFieldExists) {
			return nil, ErrDuplicateField
		}
		return nil, err
	}

	_ = s.cache.Delete(ctx, inventoryID.String())
	return field, nil
}

// UpdateField recomputes the field id from the new name. When the id
// changes, stored item values are moved from the old id to the new one
// in the same transaction as the field row update.
func (s *SchemaService) UpdateField(ctx context.Context, fieldID uuid.UUID, input FieldUpdateInput) (*domain.Field, error) {
	field, err := s.fieldRepo.FindByID(fieldID)
	if err != nil {
		if errors.Is(err, repository.ErrFieldNotFound) {
			return nil, ErrFieldNotFound
		}
		return nil, err
	}

	if err := schema.ValidateDefinition(input.Name, field.Type, input.Options); err != nil {
		return nil, err
	}

	oldSlug := field.Slug
	field.Name = input.Name
	field.Slug = schema.Slugify(input.Name)
	field.Required = input.Required
	if field.Type == schema.FieldTypeSelect {
		field.Options = input.Options
	}

	tx, err := s.itemRepo.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := s.fieldRepo.UpdateWithExt(tx, field); err != nil {
		if errors.Is(err, repository.ErrFieldExists) {
			return nil, ErrDuplicateField
		}
		if errors.Is(err, repository.ErrFieldNotFound) {
			return nil, ErrFieldNotFound
		}
		return nil, err
	}

	if field.Slug != oldSlug {
		if err := s.itemRepo.RenameValueKey(tx, field.InventoryID, oldSlug, field.Slug); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, field.InventoryID.String())
	return field, nil
}

// DeleteField removes the definition and strips its key from every
// item of the inventory atomically.
func (s *SchemaService) DeleteField(ctx context.Context, fieldID uuid.UUID) error {
	field, err := s.fieldRepo.FindByID(fieldID)
	if err != nil {
		if errors.Is(err, repository.ErrFieldNotFound) {
			return ErrFieldNotFound
		}
		return err
	}

	tx, err := s.itemRepo.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.fieldRepo.DeleteWithExt(tx, field.ID); err != nil {
		if errors.Is(err, repository.ErrFieldNotFound) {
			return ErrFieldNotFound
		}
		return err
	}

	if err := s.itemRepo.PruneValueKey(tx, field.InventoryID, field.Slug); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	_ = s.cache.Delete(ctx, field.InventoryID.String())
	return nil
}
