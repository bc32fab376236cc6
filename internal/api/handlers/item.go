package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"stockroom/internal/api/dto"
	"stockroom/internal/api/services"
	"stockroom/internal/repository"
)

type ItemHandler struct {
	itemService *services.ItemService
}

func NewItemHandler(db *sqlx.DB, rdb *redis.Client) *ItemHandler {
	schemaService := services.NewSchemaService(
		repository.NewInventoryRepository(db),
		repository.NewFieldRepository(db),
		repository.NewItemRepository(db),
		rdb,
	)
	return &ItemHandler{
		itemService: services.NewItemService(repository.NewItemRepository(db), schemaService),
	}
}

func (h *ItemHandler) List(c echo.Context) error {
	inventoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return ErrBadRequest(c, "invalid inventory ID")
	}

	filter := repository.ItemFilter{
		Search: c.QueryParam("search"),
		Tag:    c.QueryParam("tag"),
	}

	items, err := h.itemService.List(c.Request().Context(), inventoryID, filter)
	if err != nil {
		return ErrInternalServerError(c)
	}
	return c.JSON(http.StatusOK, dto.ItemsFromDomain(items))
}

func (h *ItemHandler) Get(c echo.Context) error {
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		return ErrBadRequest(c, "invalid item ID")
	}

	item, err := h.itemService.Get(c.Request().Context(), itemID)
	if err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			return ErrNotFound(c, "item not found")
		}
		return ErrInternalServerError(c)
	}
	return c.JSON(http.StatusOK, dto.ItemFromDomain(item))
}

func (h *ItemHandler) Create(c echo.Context) error {
	inventoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return ErrBadRequest(c, "invalid inventory ID")
	}

	var req dto.ItemRequest
	if err := c.Bind(&req); err != nil {
		return ErrBadRequest(c, "invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return ErrBadRequest(c, err.Error())
	}

	item, err := h.itemService.Create(c.Request().Context(), inventoryID, itemInput(req))
	if err != nil {
		return itemError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.ItemFromDomain(item))
}

func (h *ItemHandler) Update(c echo.Context) error {
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		return ErrBadRequest(c, "invalid item ID")
	}

	var req dto.ItemRequest
	if err := c.Bind(&req); err != nil {
		return ErrBadRequest(c, "invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return ErrBadRequest(c, err.Error())
	}

	item, err := h.itemService.Update(c.Request().Context(), itemID, itemInput(req))
	if err != nil {
		return itemError(c, err)
	}
	return c.JSON(http.StatusOK, dto.ItemFromDomain(item))
}

func (h *ItemHandler) Delete(c echo.Context) error {
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		return ErrBadRequest(c, "invalid item ID")
	}

	if err := h.itemService.Delete(c.Request().Context(), itemID); err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			return ErrNotFound(c, "item not found")
		}
		return ErrInternalServerError(c)
	}
	return SuccessResponse(c, "item deleted")
}

func (h *ItemHandler) ChangeQuantity(c echo.Context) error {
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		return ErrBadRequest(c, "invalid item ID")
	}

	var req dto.ChangeQuantityRequest
	if err := c.Bind(&req); err != nil {
		return ErrBadRequest(c, "invalid request")
	}

	item, err := h.itemService.ChangeQuantity(c.Request().Context(), itemID, req.Delta)
	if err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			return ErrNotFound(c, "item not found")
		}
		return ErrInternalServerError(c)
	}
	return c.JSON(http.StatusOK, dto.ItemFromDomain(item))
}

func itemInput(req dto.ItemRequest) services.ItemInput {
	return services.ItemInput{
		Name:        req.Name,
		Description: req.Description,
		Quantity:    req.Quantity,
		MinStock:    req.MinStock,
		MaxStock:    req.MaxStock,
		Tags:        req.Tags,
		Values:      req.FieldValues,
	}
}

func itemError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrItemNotFound):
		return ErrNotFound(c, "item not found")
	case errors.Is(err, services.ErrInventoryNotFound):
		return ErrNotFound(c, "inventory not found")
	case errors.Is(err, services.ErrBlankItemName):
		return ErrBadRequest(c, "item name must not be blank")
	case errors.Is(err, services.ErrUnknownFieldKey):
		return ErrUnprocessable(c, err.Error())
	case errors.Is(err, services.ErrRequiredFieldMissing):
		return ErrUnprocessable(c, err.Error())
	case errors.Is(err, services.ErrInvalidFieldValue):
		return ErrUnprocessable(c, err.Error())
	default:
		return ErrInternalServerError(c)
	}
}
