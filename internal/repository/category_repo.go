package repository

import (
	"context"

	"go-inventory-catalog/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	FindAll(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	FindByName(ctx context.Context, name string) (*model.Category, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Category, error)
	Create(ctx context.Context, category *model.Category) error
	Update(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	ProductsOf(ctx context.Context, id uuid.UUID) ([]model.ProductSummary, error)
	AttachProducts(ctx context.Context, id uuid.UUID, productIDs []uuid.UUID) error
	DetachProducts(ctx context.Context, id uuid.UUID) error
}

type categoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db}
}

func (r *categoryRepo) FindAll(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *categoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, translate(err, ErrCategoryNotFound, ErrCategoryExists)
	}
	return &category, nil
}

// FindByName matches the exact, case-sensitive name.
func (r *categoryRepo) FindByName(ctx context.Context, name string) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&category).Error; err != nil {
		return nil, translate(err, ErrCategoryNotFound, ErrCategoryExists)
	}
	return &category, nil
}

// FindByIDs returns the categories that exist among ids, in no particular order.
func (r *categoryRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Category, error) {
	categories := []model.Category{}
	if len(ids) == 0 {
		return categories, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&categories).Error
	return categories, err
}

func (r *categoryRepo) Create(ctx context.Context, category *model.Category) error {
	return translate(r.db.WithContext(ctx).Create(category).Error, ErrCategoryNotFound, ErrCategoryExists)
}

func (r *categoryRepo) Update(ctx context.Context, category *model.Category) error {
	return translate(r.db.WithContext(ctx).Save(category).Error, ErrCategoryNotFound, ErrCategoryExists)
}

// Delete removes the category and prunes it from every product that referenced it.
func (r *categoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&productCategory{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Category{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrCategoryNotFound
		}
		return nil
	})
}

func (r *categoryRepo) ProductsOf(ctx context.Context, id uuid.UUID) ([]model.ProductSummary, error) {
	products := []model.ProductSummary{}
	err := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Select("products.id, products.name, products.description, products.price").
		Joins("JOIN product_categories pc ON pc.product_id = products.id").
		Where("pc.category_id = ?", id).
		Order("products.name ASC").
		Scan(&products).Error
	return products, err
}

// AttachProducts adds the category to each existing product in productIDs.
// Unknown product IDs are ignored.
func (r *categoryRepo) AttachProducts(ctx context.Context, id uuid.UUID, productIDs []uuid.UUID) error {
	if len(productIDs) == 0 {
		return nil
	}
	db := r.db.WithContext(ctx)

	var existing []uuid.UUID
	if err := db.Model(&model.Product{}).Where("id IN ?", productIDs).Pluck("id", &existing).Error; err != nil {
		return err
	}
	rows := make([]productCategory, 0, len(existing))
	for _, pid := range existing {
		rows = append(rows, productCategory{ProductID: pid, CategoryID: id})
	}
	return link(db, rows)
}

// DetachProducts removes the category from every product.
func (r *categoryRepo) DetachProducts(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("category_id = ?", id).Delete(&productCategory{}).Error
}
