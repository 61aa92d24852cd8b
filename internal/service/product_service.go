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

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

type ProductService interface {
	GetPage(ctx context.Context, page, limit int) (*model.ProductPage, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	Create(ctx context.Context, req *CreateProductRequest, by model.Principal) (*model.Product, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateProductRequest, by model.Principal) (*model.Product, error)
	Delete(ctx context.Context, id uuid.UUID, by model.Principal) error
}

type CreateProductRequest struct {
	Name        string      `json:"name" validate:"required,max=200"`
	Description string      `json:"description" validate:"required,max=1000"`
	Price       *float64    `json:"price" validate:"required"`
	Stock       *int        `json:"stock" validate:"required"`
	Categories  []uuid.UUID `json:"categories"`
}

type UpdateProductRequest struct {
	Name        *string      `json:"name"`
	Description *string      `json:"description"`
	Price       *float64     `json:"price"`
	Stock       *int         `json:"stock"`
	Categories  *[]uuid.UUID `json:"categories"`
}

type productService struct {
	store  *repository.Store
	events event.Publisher
	log    *slog.Logger
}

func NewProductService(store *repository.Store, events event.Publisher, log *slog.Logger) ProductService {
	return &productService{store: store, events: events, log: logger(log)}
}

// GetPage falls back to the default page and limit for non-positive values.
func (s *productService) GetPage(ctx context.Context, page, limit int) (*model.ProductPage, error) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	products, total, err := s.store.Products.FindPage(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	return &model.ProductPage{Products: products, Pagination: model.NewPagination(page, limit, total)}, nil
}

func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	return s.store.Products.FindByID(ctx, id)
}

// Create stores the product and its inventory record (available = stock, sold = 0)
// in one transaction.
func (s *productService) Create(ctx context.Context, req *CreateProductRequest, by model.Principal) (*model.Product, error) {
	if err := validateInput(req); err != nil {
		return nil, err
	}

	var created *model.Product
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		categories, err := findCategories(ctx, tx, req.Categories)
		if err != nil {
			return err
		}

		product := &model.Product{
			Name:        req.Name,
			Description: req.Description,
			Price:       *req.Price,
			Stock:       *req.Stock,
			Categories:  categories,
		}
		product.Stamp(by.Actor())
		if err := tx.Products.Create(ctx, product); err != nil {
			return err
		}

		inventory := &model.Inventory{ProductID: product.ID, Available: product.Stock}
		inventory.Stamp(by.Actor())
		if err := tx.Inventory.Create(ctx, inventory); err != nil {
			return err
		}

		created, err = tx.Products.FindByID(ctx, product.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "product created", slog.String("id", created.ID.String()), slog.String("name", created.Name))
	notify(ctx, s.events, event.ProductCreated, created, by,
		fmt.Sprintf("%s created product '%s'", actorName(by), created.Name))
	return created, nil
}

// Update applies the present fields. A new stock value is also written to
// the product's inventory as available units, creating the record if needed.
func (s *productService) Update(ctx context.Context, id uuid.UUID, req *UpdateProductRequest, by model.Principal) (*model.Product, error) {
	var updated *model.Product
	var oldStock int

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		product, err := tx.Products.FindByID(ctx, id)
		if err != nil {
			return err
		}
		oldStock = product.Stock

		if req.Name != nil {
			product.Name = *req.Name
		}
		if req.Description != nil {
			product.Description = *req.Description
		}
		if req.Price != nil {
			product.Price = *req.Price
		}
		if req.Stock != nil {
			product.Stock = *req.Stock
		}
		product.Stamp(by.Actor())

		if err := tx.Products.Update(ctx, product); err != nil {
			return err
		}

		if req.Categories != nil {
			categories, err := findCategories(ctx, tx, *req.Categories)
			if err != nil {
				return err
			}
			ids := make([]uuid.UUID, len(categories))
			for i, c := range categories {
				ids[i] = c.ID
			}
			if err := tx.Products.ReplaceCategories(ctx, id, ids); err != nil {
				return err
			}
		}

		if req.Stock != nil {
			if err := upsertAvailable(ctx, tx, product.ID, product.Stock, by); err != nil {
				return err
			}
		}

		updated, err = tx.Products.FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	notify(ctx, s.events, event.ProductUpdated, map[string]any{
		"product":   updated,
		"old_stock": oldStock,
		"new_stock": updated.Stock,
	}, by, fmt.Sprintf("%s updated product '%s'", actorName(by), updated.Name))
	return updated, nil
}

// Delete removes the product with its inventory record.
func (s *productService) Delete(ctx context.Context, id uuid.UUID, by model.Principal) error {
	if err := s.store.Products.Delete(ctx, id); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "product deleted", slog.String("id", id.String()))
	notify(ctx, s.events, event.ProductDeleted, map[string]any{"id": id}, by,
		fmt.Sprintf("%s deleted a product", actorName(by)))
	return nil
}

// findCategories loads every referenced category and fails if any is unknown.
func findCategories(ctx context.Context, tx *repository.Store, ids []uuid.UUID) ([]model.Category, error) {
	ids = dedupe(ids)
	categories, err := tx.Categories.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(categories) != len(ids) {
		return nil, repository.ErrCategoryNotFound
	}
	return categories, nil
}

func upsertAvailable(ctx context.Context, tx *repository.Store, productID uuid.UUID, available int, by model.Principal) error {
	inventory, err := tx.Inventory.FindByProductID(ctx, productID)
	if err == nil {
		inventory.Available = available
		inventory.Stamp(by.Actor())
		return tx.Inventory.Update(ctx, inventory)
	}
	if !errorsIsNotFound(err) {
		return err
	}
	inventory = &model.Inventory{ProductID: productID, Available: available}
	inventory.Stamp(by.Actor())
	return tx.Inventory.Create(ctx, inventory)
}
