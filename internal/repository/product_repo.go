package repository

import (
	"context"

	"go-inventory-catalog/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	FindPage(ctx context.Context, page, limit int) ([]model.Product, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindByName(ctx context.Context, name string) (*model.Product, error)
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product) error
	AddCategory(ctx context.Context, productID, categoryID uuid.UUID) error
	ReplaceCategories(ctx context.Context, productID uuid.UUID, categoryIDs []uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

// FindPage returns one page of products, newest first, and the total count.
func (r *productRepo) FindPage(ctx context.Context, page, limit int) ([]model.Product, int64, error) {
	db := r.db.WithContext(ctx)

	var total int64
	if err := db.Model(&model.Product{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	products := []model.Product{}
	err := db.Preload("Categories", func(db *gorm.DB) *gorm.DB {
		return db.Order("name ASC")
	}).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&products).Error
	return products, total, err
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).Preload("Categories").First(&product, "id = ?", id).Error; err != nil {
		return nil, translate(err, ErrProductNotFound, ErrProductExists)
	}
	return &product, nil
}

// FindByName matches the exact, case-sensitive name.
func (r *productRepo) FindByName(ctx context.Context, name string) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).Preload("Categories").Where("name = ?", name).First(&product).Error; err != nil {
		return nil, translate(err, ErrProductNotFound, ErrProductExists)
	}
	return &product, nil
}

// Create inserts the product and links the categories it carries.
// The categories themselves must already exist.
func (r *productRepo) Create(ctx context.Context, product *model.Product) error {
	err := r.db.WithContext(ctx).Omit("Categories.*").Create(product).Error
	return translate(err, ErrProductNotFound, ErrProductExists)
}

// Update saves the product columns only; category links are managed separately.
func (r *productRepo) Update(ctx context.Context, product *model.Product) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Save(product).Error
	return translate(err, ErrProductNotFound, ErrProductExists)
}

// AddCategory links the category to the product; an existing link is left as is.
func (r *productRepo) AddCategory(ctx context.Context, productID, categoryID uuid.UUID) error {
	return link(r.db.WithContext(ctx), []productCategory{{ProductID: productID, CategoryID: categoryID}})
}

func (r *productRepo) ReplaceCategories(ctx context.Context, productID uuid.UUID, categoryIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).Delete(&productCategory{}).Error; err != nil {
			return err
		}
		seen := make(map[uuid.UUID]bool, len(categoryIDs))
		rows := make([]productCategory, 0, len(categoryIDs))
		for _, cid := range categoryIDs {
			if seen[cid] {
				continue
			}
			seen[cid] = true
			rows = append(rows, productCategory{ProductID: productID, CategoryID: cid})
		}
		return link(tx, rows)
	})
}

// Delete removes the product together with its inventory record and category links.
func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&model.Inventory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&productCategory{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Product{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrProductNotFound
		}
		return nil
	})
}
