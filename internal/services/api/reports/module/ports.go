package module

import (
	"context"

	"posbridge/internal/services/api/reports/domain"
	reportssvc "posbridge/internal/services/api/reports/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptReportsPort struct{ svc reportssvc.Service }

// Revenue returns per-day revenue over sales in range
func (a adaptReportsPort) Revenue(ctx context.Context, in domain.RevenueInput) ([]domain.RevenueRow, error) {
	return a.svc.Revenue(ctx, in)
}

// TopItems returns top dishes by amount and revenue
func (a adaptReportsPort) TopItems(ctx context.Context, in domain.TopItemsInput) ([]domain.TopItemRow, error) {
	return a.svc.TopItems(ctx, in)
}

// Hourly returns revenue bucketed by opening hour
func (a adaptReportsPort) Hourly(ctx context.Context, in domain.HourlyInput) ([]domain.HourlyRow, error) {
	return a.svc.Hourly(ctx, in)
}

// Cashflow returns incoming and outgoing sums by account
func (a adaptReportsPort) Cashflow(ctx context.Context, in domain.CashflowInput) ([]domain.CashflowRow, error) {
	return a.svc.Cashflow(ctx, in)
}
