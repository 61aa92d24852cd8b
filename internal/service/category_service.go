package service

import (
	"context"
	"fmt"
	"log/slog"

	"go-inventory-catalog/internal/event"
	"go-inventory-catalog/internal/model"
	"go-inventory-catalog/internal/repository"

	"github.com/google/uuid"
)

type CategoryService interface {
	GetAll(ctx context.Context) ([]model.Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.CategoryDetail, error)
	Create(ctx context.Context, req *CreateCategoryRequest, by model.Principal) (*model.Category, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateCategoryRequest, by model.Principal) (*model.Category, error)
	Delete(ctx context.Context, id uuid.UUID, by model.Principal) error
}

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"required,max=500"`
	// Products lists products that should reference the new category.
	Products []uuid.UUID `json:"products"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	// Products, when present, replaces the set of products referencing the category.
	Products *[]uuid.UUID `json:"products"`
}

type categoryService struct {
	store  *repository.Store
	events event.Publisher
	log    *slog.Logger
}

func NewCategoryService(store *repository.Store, events event.Publisher, log *slog.Logger) CategoryService {
	return &categoryService{store: store, events: events, log: logger(log)}
}

func (s *categoryService) GetAll(ctx context.Context) ([]model.Category, error) {
	return s.store.Categories.FindAll(ctx)
}

func (s *categoryService) GetByID(ctx context.Context, id uuid.UUID) (*model.CategoryDetail, error) {
	category, err := s.store.Categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	products, err := s.store.Categories.ProductsOf(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.CategoryDetail{Category: *category, Products: products}, nil
}

func (s *categoryService) Create(ctx context.Context, req *CreateCategoryRequest, by model.Principal) (*model.Category, error) {
	if err := validateInput(req); err != nil {
		return nil, err
	}

	category := &model.Category{Name: req.Name, Description: req.Description}
	category.Stamp(by.Actor())

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Categories.Create(ctx, category); err != nil {
			return err
		}
		return tx.Categories.AttachProducts(ctx, category.ID, dedupe(req.Products))
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "category created", slog.String("id", category.ID.String()), slog.String("name", category.Name))
	notify(ctx, s.events, event.CategoryCreated, category, by,
		fmt.Sprintf("%s created category '%s'", actorName(by), category.Name))
	return category, nil
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req *UpdateCategoryRequest, by model.Principal) (*model.Category, error) {
	var category *model.Category

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		existing, err := tx.Categories.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if req.Name != nil {
			existing.Name = *req.Name
		}
		if req.Description != nil {
			existing.Description = *req.Description
		}
		existing.Stamp(by.Actor())

		if err := tx.Categories.Update(ctx, existing); err != nil {
			return err
		}
		if req.Products != nil {
			if err := tx.Categories.DetachProducts(ctx, id); err != nil {
				return err
			}
			if err := tx.Categories.AttachProducts(ctx, id, dedupe(*req.Products)); err != nil {
				return err
			}
		}
		category = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	notify(ctx, s.events, event.CategoryUpdated, category, by,
		fmt.Sprintf("%s updated category '%s'", actorName(by), category.Name))
	return category, nil
}

// Delete removes the category and prunes it from every product; the products stay.
func (s *categoryService) Delete(ctx context.Context, id uuid.UUID, by model.Principal) error {
	if err := s.store.Categories.Delete(ctx, id); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "category deleted", slog.String("id", id.String()))
	notify(ctx, s.events, event.CategoryDeleted, map[string]any{"id": id}, by,
		fmt.Sprintf("%s deleted a category", actorName(by)))
	return nil
}
