package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockroom/internal/domain"
	"stockroom/internal/repository"
	"stockroom/internal/schema"
	"stockroom/internal/testutil"
)

func newTestSchemaService() *SchemaService {
	db := testDB.DB()
	return NewSchemaService(
		repository.NewInventoryRepository(db),
		repository.NewFieldRepository(db),
		repository.NewItemRepository(db),
		nil,
	)
}

func createTestInventory(t *testing.T) *domain.Inventory {
	t.Helper()

	invRepo := repository.NewInventoryRepository(testDB.DB())
	inv := &domain.Inventory{
		Name: fmt.Sprintf("Warehouse %d", time.Now().UnixNano()),
	}
	require.NoError(t, invRepo.Create(inv))
	return inv
}

func TestSchemaService_AddField(t *testing.T) {
	testutil.RequireDB(t, testDB)

	service := newTestSchemaService()
	inv := createTestInventory(t)
	ctx := context.Background()

	t.Run("derives id from name", func(t *testing.T) {
		field, err := service.AddField(ctx, inv.ID, FieldInput{
			Name: "Shoe Size",
			Type: "number",
		})
		require.NoError(t, err)
		assert.Equal(t, "shoe_size", field.Slug)
		assert.Equal(t, schema.FieldTypeNumber, field.Type)
	})

	t.Run("blank name rejected", func(t *testing.T) {
		_, err := service.AddField(ctx, inv.ID, FieldInput{
			Name: "   ",
			Type: "text",
		})
		assert.ErrorIs(t, err, schema.ErrBlankFieldName)
	})

	t.Run("select without options rejected", func(t *testing.T) {
		_, err := service.AddField(ctx, inv.ID, FieldInput{
			Name: "Status",
			Type: "select",
		})
		assert.ErrorIs(t, err, schema.ErrNoSelectOptions)
	})

	t.Run("unknown type rejected", func(t *testing.T) {
		_, err := service.AddField(ctx, inv.ID, FieldInput{
			Name: "Blob",
			Type: "binary",
		})
		assert.ErrorIs(t, err, schema.ErrInvalidFieldType)
	})

	t.Run("options on non-select rejected", func(t *testing.T) {
		_, err := service.AddField(ctx, inv.ID, FieldInput{
			Name:    "Brand",
			Type:    "text",
			Options: []string{"Acme"},
		})
		assert.ErrorIs(t, err, schema.ErrUnexpectedOptions)
	})

	t.Run("duplicate id rejected", func(t *testing.T) {
		_, err := service.AddField(ctx, inv.ID, FieldInput{
			Name: "Color",
			Type: "text",
		})
		require.NoError(t, err)

		// "color" and "Color" slugify to the same id
		_, err = service.AddField(ctx, inv.ID, FieldInput{
			Name: "color",
			Type: "text",
		})
		assert.ErrorIs(t, err, ErrDuplicateField)
	})

	t.Run("unknown inventory", func(t *testing.T) {
		_, err := service.AddField(ctx, uuid.New(), FieldInput{
			Name: "Color",
			Type: "text",
		})
		assert.ErrorIs(t, err, ErrInventoryNotFound)
	})
}

func TestSchemaService_UpdateField_RenameMigratesValues(t *testing.T) {
	testutil.RequireDB(t, testDB)

	service := newTestSchemaService()
	itemRepo := repository.NewItemRepository(testDB.DB())
	inv := createTestInventory(t)
	ctx := context.Background()

	field, err := service.AddField(ctx, inv.ID, FieldInput{Name: "Color", Type: "text"})
	require.NoError(t, err)

	item := &domain.Item{
		InventoryID: inv.ID,
		Name:        "Sneaker",
		Values:      schema.ValueMap{"color": schema.TextValue("Red")},
	}
	require.NoError(t, itemRepo.Create(item))

	updated, err := service.UpdateField(ctx, field.ID, FieldUpdateInput{Name: "Colour"})
	require.NoError(t, err)
	assert.Equal(t, "colour", updated.Slug)

	stored, err := itemRepo.FindByID(item.ID)
	require.NoError(t, err)
	assert.NotContains(t, stored.Values, "color")
	require.Contains(t, stored.Values, "colour")
	assert.Equal(t, "Red", stored.Values["colour"].String())
}

func TestSchemaService_DeleteField_PrunesValues(t *testing.T) {
	testutil.RequireDB(t, testDB)

	service := newTestSchemaService()
	itemRepo := repository.NewItemRepository(testDB.DB())
	inv := createTestInventory(t)
	ctx := context.Background()

	colorField, err := service.AddField(ctx, inv.ID, FieldInput{Name: "Color", Type: "text"})
	require.NoError(t, err)
	_, err = service.AddField(ctx, inv.ID, FieldInput{Name: "Weight", Type: "number"})
	require.NoError(t, err)

	first := &domain.Item{
		InventoryID: inv.ID,
		Name:        "Crate A",
		Values: schema.ValueMap{
			"color":  schema.TextValue("Blue"),
			"weight": schema.NumberValue(2.5),
		},
	}
	second := &domain.Item{
		InventoryID: inv.ID,
		Name:        "Crate B",
		Values:      schema.ValueMap{"color": schema.TextValue("Green")},
	}
	require.NoError(t, itemRepo.Create(first))
	require.NoError(t, itemRepo.Create(second))

	require.NoError(t, service.DeleteField(ctx, colorField.ID))

	fields, err := service.Fields(ctx, inv.ID)
	require.NoError(t, err)
	for _, f := range fields {
		assert.NotEqual(t, "color", f.Slug)
	}

	storedFirst, err := itemRepo.FindByID(first.ID)
	require.NoError(t, err)
	assert.NotContains(t, storedFirst.Values, "color")
	assert.Contains(t, storedFirst.Values, "weight")

	storedSecond, err := itemRepo.FindByID(second.ID)
	require.NoError(t, err)
	assert.NotContains(t, storedSecond.Values, "color")
}
