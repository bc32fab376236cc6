package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"stockroom/internal/api/dto"
	"stockroom/internal/api/services"
	"stockroom/internal/config"
	"stockroom/internal/mapping"
	"stockroom/internal/repository"
)

type ExtractionHandler struct {
	extractionService *services.ExtractionService
}

func NewExtractionHandler(db *sqlx.DB, rdb *redis.Client, cfg *config.Config) *ExtractionHandler {
	table := mapping.DefaultAliasTable()
	if cfg.AliasTable != "" {
		loaded, err := mapping.LoadAliasTable(cfg.AliasTable)
		if err != nil {
			log.Printf("Warning: failed to load alias table %s, using defaults: %v", cfg.AliasTable, err)
		} else {
			table = loaded
		}
	}

	schemaService := services.NewSchemaService(
		repository.NewInventoryRepository(db),
		repository.NewFieldRepository(db),
		repository.NewItemRepository(db),
		rdb,
	)
	mapper := mapping.NewMapper(mapping.NewResolver(table))

	return &ExtractionHandler{
		extractionService: services.NewExtractionService(mapper, schemaService, cfg.Extraction.Timeout),
	}
}

// Populate fetches an extracted payload from the supplied URL and maps
// it onto the inventory's schema, returning an editable draft. Nothing
// is stored; the caller reviews the draft and submits it as an item.
func (h *ExtractionHandler) Populate(c echo.Context) error {
	inventoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return ErrBadRequest(c, "invalid inventory ID")
	}

	var req dto.PopulateRequest
	if err := c.Bind(&req); err != nil {
		return ErrBadRequest(c, "invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return ErrBadRequest(c, err.Error())
	}

	draft, err := h.extractionService.PopulateFromURL(c.Request().Context(), inventoryID, req.URL)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrExtractionUnavailable):
			return ErrBadGateway(c, "extraction payload unavailable")
		case errors.Is(err, services.ErrInventoryNotFound):
			return ErrNotFound(c, "inventory not found")
		default:
			return ErrInternalServerError(c)
		}
	}

	return c.JSON(http.StatusOK, dto.DraftFromDomain(draft))
}
