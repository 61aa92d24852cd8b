package repository

import (
	"context"

	"go-inventory-catalog/internal/model"

	"gorm.io/gorm"
)

type StatsRepository interface {
	GetDashboardStats(ctx context.Context, lowStockThreshold int) (*DashboardStats, error)
}

// DashboardStats untuk overview stats
type DashboardStats struct {
	TotalProducts   int64   `json:"total_products"`
	TotalCategories int64   `json:"total_categories"`
	LowStockCount   int64   `json:"low_stock_count"`
	TotalAvailable  int64   `json:"total_available"`
	TotalSold       int64   `json:"total_sold"`
	TotalValuation  float64 `json:"total_valuation"`
}

type statsRepo struct {
	db *gorm.DB
}

func NewStatsRepo(db *gorm.DB) StatsRepository {
	return &statsRepo{db}
}

func (r *statsRepo) GetDashboardStats(ctx context.Context, lowStockThreshold int) (*DashboardStats, error) {
	var stats DashboardStats
	db := r.db.WithContext(ctx)

	if err := db.Model(&model.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Category{}).Count(&stats.TotalCategories).Error; err != nil {
		return nil, err
	}

	// Low Stock Count (available < threshold)
	if err := db.Model(&model.Inventory{}).Where("available < ?", lowStockThreshold).Count(&stats.LowStockCount).Error; err != nil {
		return nil, err
	}

	var totals struct {
		Available int64
		Sold      int64
		Valuation float64
	}
	err := db.Model(&model.Inventory{}).
		Select(`
			COALESCE(SUM(inventory.available), 0) AS available,
			COALESCE(SUM(inventory.sold), 0) AS sold,
			COALESCE(SUM(inventory.available * products.price), 0) AS valuation
		`).
		Joins("JOIN products ON products.id = inventory.product_id").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	stats.TotalAvailable = totals.Available
	stats.TotalSold = totals.Sold
	stats.TotalValuation = totals.Valuation

	return &stats, nil
}
