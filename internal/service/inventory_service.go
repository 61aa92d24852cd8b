package service

import (
	"context"
	"fmt"
	"log/slog"

	"go-inventory-catalog/internal/apperr"
	"go-inventory-catalog/internal/event"
	"go-inventory-catalog/internal/model"
	"go-inventory-catalog/internal/repository"

	"github.com/google/uuid"
)

var ErrInventoryFieldsRequired = apperr.BadRequest("INVENTORY_FIELDS_REQUIRED", "Product ID, available, and sold quantities are required")

type InventoryService interface {
	GetAll(ctx context.Context) ([]model.Inventory, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Inventory, error)
	Create(ctx context.Context, req *CreateInventoryRequest, by model.Principal) (*model.Inventory, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateInventoryRequest, by model.Principal) (*model.Inventory, error)
	Delete(ctx context.Context, id uuid.UUID, by model.Principal) error
}

type CreateInventoryRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Available *int      `json:"available"`
	Sold      *int      `json:"sold"`
}

type UpdateInventoryRequest struct {
	Available *int `json:"available"`
	Sold      *int `json:"sold"`
}

type inventoryService struct {
	store  *repository.Store
	events event.Publisher
	log    *slog.Logger
}

func NewInventoryService(store *repository.Store, events event.Publisher, log *slog.Logger) InventoryService {
	return &inventoryService{store: store, events: events, log: logger(log)}
}

func (s *inventoryService) GetAll(ctx context.Context) ([]model.Inventory, error) {
	return s.store.Inventory.FindAll(ctx)
}

func (s *inventoryService) GetByID(ctx context.Context, id uuid.UUID) (*model.Inventory, error) {
	return s.store.Inventory.FindByID(ctx, id)
}

// Create requires an existing product without an inventory record.
func (s *inventoryService) Create(ctx context.Context, req *CreateInventoryRequest, by model.Principal) (*model.Inventory, error) {
	if req.ProductID == uuid.Nil || req.Available == nil || req.Sold == nil {
		return nil, ErrInventoryFieldsRequired
	}

	var created *model.Inventory
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if _, err := tx.Products.FindByID(ctx, req.ProductID); err != nil {
			return err
		}
		if _, err := tx.Inventory.FindByProductID(ctx, req.ProductID); err == nil {
			return repository.ErrInventoryExists
		} else if !errorsIsNotFound(err) {
			return err
		}

		inventory := &model.Inventory{ProductID: req.ProductID, Available: *req.Available, Sold: *req.Sold}
		inventory.Stamp(by.Actor())
		if err := tx.Inventory.Create(ctx, inventory); err != nil {
			return err
		}

		var err error
		created, err = tx.Inventory.FindByID(ctx, inventory.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	notify(ctx, s.events, event.InventoryCreated, created, by,
		fmt.Sprintf("%s created inventory for '%s'", actorName(by), productName(created)))
	return created, nil
}

func (s *inventoryService) Update(ctx context.Context, id uuid.UUID, req *UpdateInventoryRequest, by model.Principal) (*model.Inventory, error) {
	var updated *model.Inventory

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		inventory, err := tx.Inventory.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if req.Available != nil {
			inventory.Available = *req.Available
		}
		if req.Sold != nil {
			inventory.Sold = *req.Sold
		}
		inventory.Stamp(by.Actor())
		if err := tx.Inventory.Update(ctx, inventory); err != nil {
			return err
		}
		updated = inventory
		return nil
	})
	if err != nil {
		return nil, err
	}

	notify(ctx, s.events, event.InventoryUpdated, updated, by,
		fmt.Sprintf("%s updated inventory for '%s'", actorName(by), productName(updated)))
	return updated, nil
}

func (s *inventoryService) Delete(ctx context.Context, id uuid.UUID, by model.Principal) error {
	if err := s.store.Inventory.Delete(ctx, id); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "inventory deleted", slog.String("id", id.String()))
	notify(ctx, s.events, event.InventoryDeleted, map[string]any{"id": id}, by,
		fmt.Sprintf("%s deleted an inventory record", actorName(by)))
	return nil
}

func productName(i *model.Inventory) string {
	if i.Product == nil {
		return i.ProductID.String()
	}
	return i.Product.Name
}
