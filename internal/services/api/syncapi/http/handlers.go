// Package http provides http transport for sync triggers
package http

import (
	stdhttp "net/http"

	"posbridge/internal/modkit/httpkit"
	"posbridge/internal/services/api/syncapi/domain"
	svc "posbridge/internal/services/api/syncapi/service"
	syncdomain "posbridge/internal/services/sync/domain"
)

// Register mounts sync trigger endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// one entity per route keeps the surface explicit
	httpkit.PostJSON[domain.TriggerInput](r, "/organizations", h.organizations)
	httpkit.PostJSON[domain.TriggerInput](r, "/products", h.products)
	httpkit.PostJSON[domain.TriggerInput](r, "/sales", h.sales)
	httpkit.PostJSON[domain.TriggerInput](r, "/transactions", h.transactions)

	// every entity in declared order
	httpkit.PostJSON[domain.TriggerInput](r, "/all", h.all)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /sync/organizations Sync syncOrganizations
// @Summary Sync organizations from the vendor API
// @Tags Sync
// @Accept json
// @Produce json
// @Param payload body domain.TriggerInput true "Range"
// @Success 200 {object} domain.TriggerResponse "ok"
// @Router /sync/organizations [post]
func (h *handlers) organizations(r *stdhttp.Request, in domain.TriggerInput) (any, error) {
	return h.svc.Trigger(r.Context(), syncdomain.EntityOrganizations, in)
}

// swagger:route POST /sync/products Sync syncProducts
// @Summary Sync products and their modifiers from the vendor API
// @Tags Sync
// @Accept json
// @Produce json
// @Param payload body domain.TriggerInput true "Range"
// @Success 200 {object} domain.TriggerResponse "ok"
// @Router /sync/products [post]
func (h *handlers) products(r *stdhttp.Request, in domain.TriggerInput) (any, error) {
	return h.svc.Trigger(r.Context(), syncdomain.EntityProducts, in)
}

// swagger:route POST /sync/sales Sync syncSales
// @Summary Sync sales rows over the requested range
// @Tags Sync
// @Accept json
// @Produce json
// @Param payload body domain.TriggerInput true "Range"
// @Success 200 {object} domain.TriggerResponse "ok"
// @Router /sync/sales [post]
func (h *handlers) sales(r *stdhttp.Request, in domain.TriggerInput) (any, error) {
	return h.svc.Trigger(r.Context(), syncdomain.EntitySales, in)
}

// swagger:route POST /sync/transactions Sync syncTransactions
// @Summary Sync cashflow transactions over the requested range
// @Tags Sync
// @Accept json
// @Produce json
// @Param payload body domain.TriggerInput true "Range"
// @Success 200 {object} domain.TriggerResponse "ok"
// @Router /sync/transactions [post]
func (h *handlers) transactions(r *stdhttp.Request, in domain.TriggerInput) (any, error) {
	return h.svc.Trigger(r.Context(), syncdomain.EntityTransactions, in)
}

// swagger:route POST /sync/all Sync syncAll
// @Summary Sync every entity sequentially
// @Tags Sync
// @Accept json
// @Produce json
// @Param payload body domain.TriggerInput true "Range"
// @Success 200 {object} domain.TriggerResponse "ok"
// @Router /sync/all [post]
func (h *handlers) all(r *stdhttp.Request, in domain.TriggerInput) (any, error) {
	return h.svc.TriggerAll(r.Context(), in)
}
