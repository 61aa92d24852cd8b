package service

import (
	"context"

	"go-inventory-catalog/internal/repository"
)

// LowStockThreshold is the available-units level below which an item counts as low stock.
const LowStockThreshold = 10

type DashboardService interface {
	GetDashboardStats(ctx context.Context) (*repository.DashboardStats, error)
}

type dashboardService struct {
	stats repository.StatsRepository
}

func NewDashboardService(stats repository.StatsRepository) DashboardService {
	return &dashboardService{stats: stats}
}

func (s *dashboardService) GetDashboardStats(ctx context.Context) (*repository.DashboardStats, error) {
	return s.stats.GetDashboardStats(ctx, LowStockThreshold)
}
