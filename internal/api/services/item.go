package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"stockroom/internal/api/ws"
	"stockroom/internal/domain"
	"stockroom/internal/repository"
	"stockroom/internal/schema"
)

var (
	ErrItemNotFound         = errors.New("item not found")
	ErrBlankItemName        = errors.New("item name must not be blank")
	ErrUnknownFieldKey      = errors.New("unknown field key")
	ErrRequiredFieldMissing = errors.New("required field missing")
	ErrInvalidFieldValue    = errors.New("value not valid for field type")
)

type ItemInput struct {
	Name        string
	Description string
	Quantity    int
	MinStock    int
	MaxStock    int
	Tags        []string
	Values      map[string]any
}

type ItemService struct {
	itemRepo  *repository.ItemRepository
	schemaSvc *SchemaService
	hub       *ws.Hub
}

func NewItemService(itemRepo *repository.ItemRepository, schemaSvc *SchemaService) *ItemService {
	return &ItemService{
		itemRepo:  itemRepo,
		schemaSvc: schemaSvc,
		hub:       ws.GetHub(),
	}
}

func (s *ItemService) Create(ctx context.Context, inventoryID uuid.UUID, input ItemInput) (*domain.Item, error) {
	if input.Name == "" {
		return nil, ErrBlankItemName
	}

	values, err := s.validateValues(ctx, inventoryID, input.Values)
	if err != nil {
		return nil, err
	}

	item := &domain.Item{
		InventoryID: inventoryID,
		Name:        input.Name,
		Description: input.Description,
		Quantity:    input.Quantity,
		MinStock:    input.MinStock,
		MaxStock:    input.MaxStock,
		Tags:        input.Tags,
		Values:      values,
	}
	if item.Quantity < 0 {
		item.Quantity = 0
	}

	if err := s.itemRepo.Create(item); err != nil {
		return nil, err
	}

	s.notify(item)
	return item, nil
}

func (s *ItemService) Update(ctx context.Context, itemID uuid.UUID, input ItemInput) (*domain.Item, error) {
	if input.Name == "" {
		return nil, ErrBlankItemName
	}

	item, err := s.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}

	values, err := s.validateValues(ctx, item.InventoryID, input.Values)
	if err != nil {
		return nil, err
	}

	item.Name = input.Name
	item.Description = input.Description
	item.Quantity = input.Quantity
	if item.Quantity < 0 {
		item.Quantity = 0
	}
	item.MinStock = input.MinStock
	item.MaxStock = input.MaxStock
	item.Tags = input.Tags
	item.Values = values

	if err := s.itemRepo.Update(item); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	s.notify(item)
	return item, nil
}

func (s *ItemService) Get(ctx context.Context, itemID uuid.UUID) (*domain.Item, error) {
	item, err := s.itemRepo.FindByID(itemID)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *ItemService) List(ctx context.Context, inventoryID uuid.UUID, filter repository.ItemFilter) ([]domain.Item, error) {
	return s.itemRepo.ListByInventory(inventoryID, filter)
}

func (s *ItemService) Delete(ctx context.Context, itemID uuid.UUID) error {
	if err := s.itemRepo.Delete(itemID); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return ErrItemNotFound
		}
		return err
	}
	return nil
}

// ChangeQuantity applies a signed delta, clamping the result at zero.
func (s *ItemService) ChangeQuantity(ctx context.Context, itemID uuid.UUID, delta int) (*domain.Item, error) {
	item, err := s.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}

	item.Quantity = item.ApplyQuantityDelta(delta)

	updated, err := s.itemRepo.UpdateQuantity(item.ID, item.Quantity)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	s.notify(updated)
	return updated, nil
}

// validateValues checks supplied keys against the current schema and
// re-coerces every value to its field type. Unknown keys and missing
// required fields reject the whole write.
func (s *ItemService) validateValues(ctx context.Context, inventoryID uuid.UUID, raw map[string]any) (schema.ValueMap, error) {
	fields, err := s.schemaSvc.Fields(ctx, inventoryID)
	if err != nil {
		return nil, err
	}

	bySlug := make(map[string]domain.Field, len(fields))
	for _, f := range fields {
		bySlug[f.Slug] = f
	}

	values := schema.ValueMap{}
	for key, rawValue := range raw {
		field, ok := bySlug[key]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownFieldKey, key)
		}
		if rawValue == nil {
			continue
		}

		value, ok := schema.Coerce(field.Type, rawValue, field.Options)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidFieldValue, key)
		}
		values[key] = value
	}

	for _, f := range fields {
		if !f.Required {
			continue
		}
		if v, ok := values[f.Slug]; !ok || v.IsZero() {
			return nil, fmt.Errorf("%w: %q", ErrRequiredFieldMissing, f.Slug)
		}
	}

	return values, nil
}

func (s *ItemService) notify(item *domain.Item) {
	s.hub.BroadcastItemUpdate(item.ID, item.InventoryID, item.Quantity)
	if item.LowStock() {
		s.hub.BroadcastLowStock(item.ID, item.InventoryID, item.Name, item.Quantity, item.MinStock)
	}
}
