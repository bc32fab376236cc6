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
	"stockroom/internal/schema"
)

type FieldHandler struct {
	schemaService *services.SchemaService
}

func NewFieldHandler(db *sqlx.DB, rdb *redis.Client) *FieldHandler {
	schemaService := services.NewSchemaService(
		repository.NewInventoryRepository(db),
		repository.NewFieldRepository(db),
		repository.NewItemRepository(db),
		rdb,
	)
	return &FieldHandler{schemaService: schemaService}
}

func (h *FieldHandler) List(c echo.Context) error {
	inventoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return ErrBadRequest(c, "invalid inventory ID")
	}

	fields, err := h.schemaService.Fields(c.Request().Context(), inventoryID)
	if err != nil {
		if errors.Is(err, services.ErrInventoryNotFound) {
			return ErrNotFound(c, "inventory not found")
		}
		return ErrInternalServerError(c)
	}
	return c.JSON(http.StatusOK, dto.FieldsFromDomain(fields))
}

func (h *FieldHandler) Create(c echo.Context) error {
	inventoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return ErrBadRequest(c, "invalid inventory ID")
	}

	var req dto.CreateFieldRequest
	if err := c.Bind(&req); err != nil {
		return ErrBadRequest(c, "invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return ErrBadRequest(c, err.Error())
	}

	field, err := h.schemaService.AddField(c.Request().Context(), inventoryID, services.FieldInput{
		Name:     req.Name,
		Type:     req.Type,
		Required: req.Required,
		Options:  req.Options,
	})
	if err != nil {
		return fieldError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.FieldFromDomain(field))
}

func (h *FieldHandler) Update(c echo.Context) error {
	fieldID, err := uuid.Parse(c.Param("fieldId"))
	if err != nil {
		return ErrBadRequest(c, "invalid field ID")
	}

	var req dto.UpdateFieldRequest
	if err := c.Bind(&req); err != nil {
		return ErrBadRequest(c, "invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return ErrBadRequest(c, err.Error())
	}

	field, err := h.schemaService.UpdateField(c.Request().Context(), fieldID, services.FieldUpdateInput{
		Name:     req.Name,
		Required: req.Required,
		Options:  req.Options,
	})
	if err != nil {
		return fieldError(c, err)
	}
	return c.JSON(http.StatusOK, dto.FieldFromDomain(field))
}

func (h *FieldHandler) Delete(c echo.Context) error {
	fieldID, err := uuid.Parse(c.Param("fieldId"))
	if err != nil {
		return ErrBadRequest(c, "invalid field ID")
	}

	if err := h.schemaService.DeleteField(c.Request().Context(), fieldID); err != nil {
		return fieldError(c, err)
	}
	return SuccessResponse(c, "field deleted")
}

func fieldError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, schema.ErrBlankFieldName):
		return ErrUnprocessable(c, "field name must not be blank")
	case errors.Is(err, schema.ErrNoSelectOptions):
		return ErrUnprocessable(c, "select field requires options")
	case errors.Is(err, schema.ErrUnexpectedOptions):
		return ErrUnprocessable(c, "only select fields may have options")
	case errors.Is(err, schema.ErrInvalidFieldType):
		return ErrUnprocessable(c, "unknown field type")
	case errors.Is(err, services.ErrDuplicateField):
		return ErrConflict(c, "field with this id already exists")
	case errors.Is(err, services.ErrFieldNotFound):
		return ErrNotFound(c, "field not found")
	case errors.Is(err, services.ErrInventoryNotFound):
		return ErrNotFound(c, "inventory not found")
	default:
		return ErrInternalServerError(c)
	}
}
