package service

import "context"

const DefaultLowStockLimit = 10

type DashboardStats struct {
	TotalProducts  int     `json:"total_products"`
	LowStock       int     `json:"low_stock"`
	TotalValue     float64 `json:"total_value"`
	BackendHealthy bool    `json:"backend_healthy"`
}

type HealthChecker interface {
	CheckHealth(ctx context.Context) bool
}

type DashboardService interface {
	GetDashboardStats(ctx context.Context) DashboardStats
}

type dashboardService struct {
	inventory     InventoryService
	health        HealthChecker
	lowStockLimit int
}

func NewDashboardService(inventory InventoryService, health HealthChecker, lowStockLimit int) DashboardService {
	if lowStockLimit <= 0 {
		lowStockLimit = DefaultLowStockLimit
	}
	return &dashboardService{inventory: inventory, health: health, lowStockLimit: lowStockLimit}
}

// GetDashboardStats works off the loaded product list, so quantities include edits not yet
// committed.
func (s *dashboardService) GetDashboardStats(ctx context.Context) DashboardStats {
	var stats DashboardStats
	for _, p := range s.inventory.Products() {
		stats.TotalProducts++
		if p.Quantity < s.lowStockLimit {
			stats.LowStock++
		}
		stats.TotalValue += p.Price * float64(p.Quantity)
	}
	if s.health != nil {
		stats.BackendHealthy = s.health.CheckHealth(ctx)
	}
	return stats
}
