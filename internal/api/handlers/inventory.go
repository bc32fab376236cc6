package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"

	"stockroom/internal/api/dto"
	"stockroom/internal/api/services"
	"stockroom/internal/repository"
)

type InventoryHandler struct {
	inventoryService *services.InventoryService
}

func NewInventoryHandler(db *sqlx.DB) *InventoryHandler {
	invRepo := repository.NewInventoryRepository(db)
	return &InventoryHandler{
		inventoryService: services.NewInventoryService(invRepo),
	}
}

type InventoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

func (h *InventoryHandler) List(c echo.Context) error {
	inventories, err := h.inventoryService.List(c.Request().Context())
	if err != nil {
		return ErrInternalServerError(c)
	}
	return c.JSON(http.StatusOK, dto.InventoriesFromDomain(inventories))
}

func (h *InventoryHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return ErrBadRequest(c, "invalid inventory ID")
	}

	inv, err := h.inventoryService.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrInventoryNotFound) {
			return ErrNotFound(c, "inventory not found")
		}
		return ErrInternalServerError(c)
	}
	return c.JSON(http.StatusOK, dto.InventoryFromDomain(inv))
}

func (h *InventoryHandler) Create(c echo.Context) error {
	var req InventoryRequest
	if err := c.Bind(&req); err != nil {
		return ErrBadRequest(c, "invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return ErrBadRequest(c, err.Error())
	}

	inv, err := h.inventoryService.Create(c.Request().Context(), services.InventoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, services.ErrBlankInventory) {
			return ErrBadRequest(c, "inventory name must not be blank")
		}
		return ErrInternalServerError(c)
	}
	return c.JSON(http.StatusCreated, dto.InventoryFromDomain(inv))
}

func (h *InventoryHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return ErrBadRequest(c, "invalid inventory ID")
	}

	var req InventoryRequest
	if err := c.Bind(&req); err != nil {
		return ErrBadRequest(c, "invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return ErrBadRequest(c, err.Error())
	}

	inv, err := h.inventoryService.Update(c.Request().Context(), id, services.InventoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInventoryNotFound):
			return ErrNotFound(c, "inventory not found")
		case errors.Is(err, services.ErrBlankInventory):
			return ErrBadRequest(c, "inventory name must not be blank")
		default:
			return ErrInternalServerError(c)
		}
	}
	return c.JSON(http.StatusOK, dto.InventoryFromDomain(inv))
}

func (h *InventoryHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return ErrBadRequest(c, "invalid inventory ID")
	}

	if err := h.inventoryService.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, services.ErrInventoryNotFound) {
			return ErrNotFound(c, "inventory not found")
		}
		return ErrInternalServerError(c)
	}
	return SuccessResponse(c, "inventory deleted")
}

func (h *InventoryHandler) Stats(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return ErrBadRequest(c, "invalid inventory ID")
	}

	stats, err := h.inventoryService.Stats(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrInventoryNotFound) {
			return ErrNotFound(c, "inventory not found")
		}
		return ErrInternalServerError(c)
	}
	return c.JSON(http.StatusOK, dto.StatsFromDomain(stats))
}
