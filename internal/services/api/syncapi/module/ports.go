package module

import (
	"context"

	"posbridge/internal/services/api/syncapi/domain"
	syncsvc "posbridge/internal/services/api/syncapi/service"
	syncdomain "posbridge/internal/services/sync/domain"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptTriggerPort struct{ svc syncsvc.Service }

// Trigger runs one entity sync over the requested range
func (a adaptTriggerPort) Trigger(ctx context.Context, entity syncdomain.Entity, in domain.TriggerInput) (domain.TriggerResponse, error) {
	return a.svc.Trigger(ctx, entity, in)
}

// TriggerAll runs every entity sequentially over the requested range
func (a adaptTriggerPort) TriggerAll(ctx context.Context, in domain.TriggerInput) (domain.TriggerResponse, error) {
	return a.svc.TriggerAll(ctx, in)
}
