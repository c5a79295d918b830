package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Revenue(ctx context.Context, in RevenueInput) ([]RevenueRow, error)
	TopItems(ctx context.Context, in TopItemsInput) ([]TopItemRow, error)
	Hourly(ctx context.Context, in HourlyInput) ([]HourlyRow, error)
	Cashflow(ctx context.Context, in CashflowInput) ([]CashflowRow, error)
}
