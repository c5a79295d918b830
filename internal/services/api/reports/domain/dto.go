// Package domain holds DTOs for reports http and service contracts
package domain

// Query window and filters kept small and explicit
// Dates are calendar days, half open on the upper bound

// DateRange defines a start and end day for report queries
type DateRange struct {
	Start string `json:"start" validate:"required,datetime=2006-01-02" example:"2026-08-01"`
	End   string `json:"end" validate:"required,datetime=2006-01-02" example:"2026-08-31"`
}

// RevenueInput buckets sales revenue by day
type RevenueInput struct {
	Range DateRange `json:"range"`
	// optional filters
	Department string `json:"department,omitempty" validate:"omitempty,min=1,max=200" example:"Main Hall"`
}

// RevenueRow represents one day of revenue
type RevenueRow struct {
	Day      string  `json:"day" example:"2026-08-01"`
	Revenue  float64 `json:"revenue" example:"45210.50"`
	FullSum  float64 `json:"full_sum" example:"48100.00"`
	Orders   int64   `json:"orders" example:"131"`
	AvgCheck float64 `json:"avg_check" example:"345.12"`
}

// Top items

// TopItemsInput ranks dishes by amount and revenue
type TopItemsInput struct {
	Range DateRange `json:"range"`
	Limit int       `json:"limit,omitempty" validate:"omitempty,min=1,max=500" example:"20"`
}

// TopItemRow represents one ranked dish
type TopItemRow struct {
	ProductExternalID string  `json:"product_external_id" example:"4087"`
	DishName          string  `json:"dish_name" example:"Carbonara"`
	Amount            float64 `json:"amount" example:"412"`
	Revenue           float64 `json:"revenue" example:"123600.00"`
}

// Hourly buckets

// HourlyInput buckets sales revenue by opening hour
type HourlyInput struct {
	Range DateRange `json:"range"`
}

// HourlyRow represents one hour bucket
type HourlyRow struct {
	Hour    int     `json:"hour" example:"13"`
	Revenue float64 `json:"revenue" example:"9120.00"`
	Orders  int64   `json:"orders" example:"27"`
}

// Cashflow

// CashflowInput sums transactions by account
type CashflowInput struct {
	Range DateRange `json:"range"`
	// optional filter on the account group
	AccountGroup string `json:"account_group,omitempty" validate:"omitempty,min=1,max=200" example:"Revenue"`
}

// CashflowRow represents incoming and outgoing sums for one account
type CashflowRow struct {
	Account  string  `json:"account" example:"Cash"`
	Incoming float64 `json:"incoming" example:"80210.00"`
	Outgoing float64 `json:"outgoing" example:"1200.00"`
}
