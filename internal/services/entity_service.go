package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/core"
)

// EntityStore is the storage surface the entity service needs.
type EntityStore interface {
	CreateEntity(ctx context.Context, name string) (int64, error)
	ListEntities(ctx context.Context) ([]core.Entity, error)
	CreateCategory(ctx context.Context, c core.Category) (int64, error)
	ListCategories(ctx context.Context, entityID int64) ([]core.Category, error)
}

// EntityService manages the entities records belong to and their categories.
type EntityService struct {
	store EntityStore
}

func NewEntityService(store EntityStore) *EntityService {
	return &EntityService{store: store}
}

func (s *EntityService) Create(ctx context.Context, name string) (int64, error) {
	e := core.Entity{Name: strings.TrimSpace(name)}
	if err := e.Validate(); err != nil {
		return 0, fmt.Errorf("validate entity: %w", err)
	}

	id, err := s.store.CreateEntity(ctx, e.Name)
	if err != nil {
		return 0, fmt.Errorf("save entity: %w", err)
	}
	return id, nil
}

func (s *EntityService) List(ctx context.Context) ([]core.Entity, error) {
	return s.store.ListEntities(ctx)
}

func (s *EntityService) CreateCategory(ctx context.Context, c core.Category) (int64, error) {
	c.Name = strings.TrimSpace(c.Name)
	if err := c.Validate(); err != nil {
		return 0, fmt.Errorf("validate category: %w", err)
	}

	id, err := s.store.CreateCategory(ctx, c)
	if err != nil {
		return 0, fmt.Errorf("save category: %w", err)
	}
	return id, nil
}

func (s *EntityService) ListCategories(ctx context.Context, entityID int64) ([]core.Category, error) {
	return s.store.ListCategories(ctx, entityID)
}
