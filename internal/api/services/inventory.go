package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"stockroom/internal/domain"
	"stockroom/internal/repository"
)

var (
	ErrInventoryNotFound = errors.New("inventory not found")
	ErrBlankInventory    = errors.New("inventory name must not be blank")
)

type InventoryInput struct {
	Name        string
	Description string
}

type InventoryService struct {
	invRepo *repository.InventoryRepository
}

func NewInventoryService(invRepo *repository.InventoryRepository) *InventoryService {
	return &InventoryService{invRepo: invRepo}
}

func (s *InventoryService) Create(ctx context.Context, input InventoryInput) (*domain.Inventory, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrBlankInventory
	}

	inv := &domain.Inventory{
		Name:        name,
		Description: input.Description,
	}
	if err := s.invRepo.Create(inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *InventoryService) Get(ctx context.Context, id uuid.UUID) (*domain.Inventory, error) {
	inv, err := s.invRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrInventoryNotFound) {
			return nil, ErrInventoryNotFound
		}
		return nil, err
	}
	return inv, nil
}

func (s *InventoryService) List(ctx context.Context) ([]domain.Inventory, error) {
	return s.invRepo.List()
}

func (s *InventoryService) Update(ctx context.Context, id uuid.UUID, input InventoryInput) (*domain.Inventory, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrBlankInventory
	}

	inv, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	inv.Name = name
	inv.Description = input.Description

	if err := s.invRepo.Update(inv); err != nil {
		if errors.Is(err, repository.ErrInventoryNotFound) {
			return nil, ErrInventoryNotFound
		}
		return nil, err
	}
	return inv, nil
}

func (s *InventoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.invRepo.Delete(id); err != nil {
		if errors.Is(err, repository.ErrInventoryNotFound) {
			return ErrInventoryNotFound
		}
		return err
	}
	return nil
}

func (s *InventoryService) Stats(ctx context.Context, id uuid.UUID) (*domain.InventoryStats, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.invRepo.Stats(id)
}
