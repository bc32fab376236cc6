package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"stockroom/internal/domain"
	"stockroom/internal/mapping"
	"stockroom/internal/metrics"
)

var ErrExtractionUnavailable = errors.New("extraction payload unavailable")

// ExtractionService fetches an already-extracted product payload from
// a caller-supplied URL and maps it onto an inventory's schema. The
// fetch is a single awaited call with a bounded timeout; when it
// fails the mapper is never invoked.
type ExtractionService struct {
	client    *http.Client
	mapper    *mapping.Mapper
	schemaSvc *SchemaService
}

func NewExtractionService(mapper *mapping.Mapper, schemaSvc *SchemaService, timeout time.Duration) *ExtractionService {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ExtractionService{
		client:    &http.Client{Timeout: timeout},
		mapper:    mapper,
		schemaSvc: schemaSvc,
	}
}

func (s *ExtractionService) Fetch(ctx context.Context, url string) (*domain.ExtractionPayload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionUnavailable, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		metrics.CountExtractionFetch("error")
		return nil, fmt.Errorf("%w: %v", ErrExtractionUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.CountExtractionFetch("error")
		return nil, fmt.Errorf("%w: status %d", ErrExtractionUnavailable, resp.StatusCode)
	}

	payload := &domain.ExtractionPayload{}
	if err := json.NewDecoder(resp.Body).Decode(payload); err != nil {
		metrics.CountExtractionFetch("error")
		return nil, fmt.Errorf("%w: %v", ErrExtractionUnavailable, err)
	}
	if payload.URL == "" {
		payload.URL = url
	}

	metrics.CountExtractionFetch("ok")
	return payload, nil
}

// Populate maps a payload onto the inventory's current schema and
// returns an editable draft. Mapping itself never fails; a payload
// that matches nothing just yields an empty draft with every field
// reported unmapped.
func (s *ExtractionService) Populate(ctx context.Context, inventoryID uuid.UUID, payload *domain.ExtractionPayload) (*domain.Draft, error) {
	fields, err := s.schemaSvc.Fields(ctx, inventoryID)
	if err != nil {
		return nil, err
	}

	draft := s.mapper.Map(payload, fields)
	metrics.ObserveMappingCoverage(draft.Coverage)
	return draft, nil
}

// PopulateFromURL is Fetch followed by Populate.
func (s *ExtractionService) PopulateFromURL(ctx context.Context, inventoryID uuid.UUID, url string) (*domain.Draft, error) {
	payload, err := s.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return s.Populate(ctx, inventoryID, payload)
}
