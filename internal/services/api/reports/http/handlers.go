// Package http provides http transport for reports
package http

import (
	stdhttp "net/http"

	"posbridge/internal/modkit/httpkit"
	"posbridge/internal/services/api/reports/domain"
	svc "posbridge/internal/services/api/reports/service"
)

// Register mounts report endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// per-day revenue with orders and average check
	httpkit.PostJSON[domain.RevenueInput](r, "/revenue", h.revenue)

	// top dishes by amount and revenue
	httpkit.PostJSON[domain.TopItemsInput](r, "/top-items", h.topItems)

	// revenue bucketed by opening hour
	httpkit.PostJSON[domain.HourlyInput](r, "/hourly", h.hourly)

	// transaction sums by account
	httpkit.PostJSON[domain.CashflowInput](r, "/cashflow", h.cashflow)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /reports/revenue Reports reportsRevenue
// @Summary Revenue by day
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body domain.RevenueInput true "Query"
// @Success 200 {array} domain.RevenueRow "ok"
// @Router /reports/revenue [post]
func (h *handlers) revenue(r *stdhttp.Request, in domain.RevenueInput) (any, error) {
	return h.svc.Revenue(r.Context(), in)
}

// swagger:route POST /reports/top-items Reports reportsTopItems
// @Summary Top dishes by amount and revenue
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body domain.TopItemsInput true "Query"
// @Success 200 {array} domain.TopItemRow "ok"
// @Router /reports/top-items [post]
func (h *handlers) topItems(r *stdhttp.Request, in domain.TopItemsInput) (any, error) {
	return h.svc.TopItems(r.Context(), in)
}

// swagger:route POST /reports/hourly Reports reportsHourly
// @Summary Revenue by opening hour
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body domain.HourlyInput true "Query"
// @Success 200 {array} domain.HourlyRow "ok"
// @Router /reports/hourly [post]
func (h *handlers) hourly(r *stdhttp.Request, in domain.HourlyInput) (any, error) {
	return h.svc.Hourly(r.Context(), in)
}

// swagger:route POST /reports/cashflow Reports reportsCashflow
// @Summary Transaction sums by account
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body domain.CashflowInput true "Query"
// @Success 200 {array} domain.CashflowRow "ok"
// @Router /reports/cashflow [post]
func (h *handlers) cashflow(r *stdhttp.Request, in domain.CashflowInput) (any, error) {
	return h.svc.Cashflow(r.Context(), in)
}
