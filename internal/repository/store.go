package repository

import (
	"context"

	"go-inventory-catalog/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store bundles the repositories that share one *gorm.DB, so a caller can
// run several of them inside a single transaction.
type Store struct {
	db         *gorm.DB
	Categories CategoryRepository
	Products   ProductRepository
	Inventory  InventoryRepository
	Users      UserRepository
	Stats      StatsRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:         db,
		Categories: NewCategoryRepo(db),
		Products:   NewProductRepo(db),
		Inventory:  NewInventoryRepo(db),
		Users:      NewUserRepo(db),
		Stats:      NewStatsRepo(db),
	}
}

// Transaction runs fn with a Store bound to one database transaction.
// Returning an error from fn rolls every write back.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// AutoMigrate creates or updates every table the catalog needs.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.Category{}, &model.Product{}, &model.Inventory{}, &model.User{})
}

// productCategory is a row of the many2many join table declared on model.Product.
type productCategory struct {
	ProductID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	CategoryID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (productCategory) TableName() string {
	return "product_categories"
}

// link inserts join rows, ignoring pairs that already exist.
func link(db *gorm.DB, rows []productCategory) error {
	if len(rows) == 0 {
		return nil
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}
