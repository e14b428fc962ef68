package services

import (
	"context"
	"errors"
	"testing"

	"github.com/felippe-lahr/sistema-gestao-financeira-sub000/internal/core"
)

type fakeEntityStore struct {
	entities   []core.Entity
	categories []core.Category
}

func (f *fakeEntityStore) CreateEntity(_ context.Context, name string) (int64, error) {
	f.entities = append(f.entities, core.Entity{ID: int64(len(f.entities) + 1), Name: name})
	return int64(len(f.entities)), nil
}

func (f *fakeEntityStore) ListEntities(_ context.Context) ([]core.Entity, error) {
	return f.entities, nil
}

func (f *fakeEntityStore) CreateCategory(_ context.Context, c core.Category) (int64, error) {
	c.ID = int64(len(f.categories) + 1)
	f.categories = append(f.categories, c)
	return c.ID, nil
}

func (f *fakeEntityStore) ListCategories(_ context.Context, entityID int64) ([]core.Category, error) {
	var out []core.Category
	for _, c := range f.categories {
		if c.EntityID == entityID {
			out = append(out, c)
		}
	}
	return out, nil
}

func TestEntityService_Create(t *testing.T) {
	store := &fakeEntityStore{}
	svc := NewEntityService(store)

	id, err := svc.Create(context.Background(), "  Sitio Recanto  ")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if id != 1 {
		t.Errorf("id = %d, want 1", id)
	}
	if store.entities[0].Name != "Sitio Recanto" {
		t.Errorf("name = %q, want trimmed", store.entities[0].Name)
	}
}

func TestEntityService_Create_EmptyName(t *testing.T) {
	svc := NewEntityService(&fakeEntityStore{})

	if _, err := svc.Create(context.Background(), "   "); !errors.Is(err, core.ErrEmptyName) {
		t.Errorf("Create() error = %v, want ErrEmptyName", err)
	}
}

func TestEntityService_CreateCategory(t *testing.T) {
	store := &fakeEntityStore{}
	svc := NewEntityService(store)

	id, err := svc.CreateCategory(context.Background(), core.Category{
		EntityID: 1, Name: "Utilities", Color: "#ff8800",
	})
	if err != nil {
		t.Fatalf("CreateCategory() error = %v", err)
	}
	if id != 1 {
		t.Errorf("id = %d, want 1", id)
	}

	tests := []struct {
		name     string
		category core.Category
		want     error
	}{
		{name: "missing entity", category: core.Category{Name: "x"}, want: core.ErrMissingEntity},
		{name: "empty name", category: core.Category{EntityID: 1, Name: " "}, want: core.ErrEmptyName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.CreateCategory(context.Background(), tt.category); !errors.Is(err, tt.want) {
				t.Errorf("CreateCategory() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestEntityService_ListCategories(t *testing.T) {
	store := &fakeEntityStore{categories: []core.Category{
		{ID: 1, EntityID: 1, Name: "Utilities"},
		{ID: 2, EntityID: 2, Name: "Cleaning"},
	}}
	svc := NewEntityService(store)

	cats, err := svc.ListCategories(context.Background(), 2)
	if err != nil {
		t.Fatalf("ListCategories() error = %v", err)
	}
	if len(cats) != 1 || cats[0].Name != "Cleaning" {
		t.Errorf("categories = %+v", cats)
	}
}
