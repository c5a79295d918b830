package domain

import (
	"context"

	syncdomain "posbridge/internal/services/sync/domain"
)

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Trigger(ctx context.Context, entity syncdomain.Entity, in TriggerInput) (TriggerResponse, error)
	TriggerAll(ctx context.Context, in TriggerInput) (TriggerResponse, error)
}
