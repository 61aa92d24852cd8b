package repository

import (
	"context"

	"go-inventory-catalog/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InventoryRepository interface {
	FindAll(ctx context.Context) ([]model.Inventory, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Inventory, error)
	FindByProductID(ctx context.Context, productID uuid.UUID) (*model.Inventory, error)
	Create(ctx context.Context, inventory *model.Inventory) error
	Update(ctx context.Context, inventory *model.Inventory) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type inventoryRepo struct {
	db *gorm.DB
}

func NewInventoryRepo(db *gorm.DB) InventoryRepository {
	return &inventoryRepo{db}
}

func preloadProductSummary(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "description", "price", "stock", "created_at", "updated_at")
}

func (r *inventoryRepo) FindAll(ctx context.Context) ([]model.Inventory, error) {
	inventory := []model.Inventory{}
	err := r.db.WithContext(ctx).
		Preload("Product", preloadProductSummary).
		Order("created_at DESC").
		Find(&inventory).Error
	return inventory, err
}

func (r *inventoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Inventory, error) {
	var inventory model.Inventory
	err := r.db.WithContext(ctx).Preload("Product", preloadProductSummary).First(&inventory, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, ErrInventoryNotFound, ErrInventoryExists)
	}
	return &inventory, nil
}

func (r *inventoryRepo) FindByProductID(ctx context.Context, productID uuid.UUID) (*model.Inventory, error) {
	var inventory model.Inventory
	if err := r.db.WithContext(ctx).Where("product_id = ?", productID).First(&inventory).Error; err != nil {
		return nil, translate(err, ErrInventoryNotFound, ErrInventoryExists)
	}
	return &inventory, nil
}

func (r *inventoryRepo) Create(ctx context.Context, inventory *model.Inventory) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(inventory).Error
	return translate(err, ErrInventoryNotFound, ErrInventoryExists)
}

func (r *inventoryRepo) Update(ctx context.Context, inventory *model.Inventory) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Save(inventory).Error
	return translate(err, ErrInventoryNotFound, ErrInventoryExists)
}

func (r *inventoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Inventory{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInventoryNotFound
	}
	return nil
}
