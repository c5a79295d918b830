// Package service adapts the sync runner to the trigger surface
package service

import (
	"context"
	"time"

	"posbridge/internal/services/api/syncapi/domain"
	syncdomain "posbridge/internal/services/sync/domain"
)

// Service defines the syncapi service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the syncapi service
type Svc struct {
	runner syncdomain.RunnerPort
	now    func() time.Time
}

// New constructs a syncapi service
func New(runner syncdomain.RunnerPort) *Svc {
	if runner == nil {
		panic("syncapi.Service requires a non nil RunnerPort")
	}
	return &Svc{runner: runner, now: time.Now}
}

// Trigger runs one entity sync and wraps the outcome in the wire shape.
// Window-level trouble keeps success true; only a run that could not
// start at all reports success false with a null data field.
func (s *Svc) Trigger(ctx context.Context, entity syncdomain.Entity, in domain.TriggerInput) (domain.TriggerResponse, error) {
	from, to, err := in.Range(s.now())
	if err != nil {
		return domain.TriggerResponse{}, err
	}
	res, err := s.runner.Run(ctx, entity, from, to)
	return wrap(res, err), nil
}

// TriggerAll runs every entity sequentially and sums the results
func (s *Svc) TriggerAll(ctx context.Context, in domain.TriggerInput) (domain.TriggerResponse, error) {
	from, to, err := in.Range(s.now())
	if err != nil {
		return domain.TriggerResponse{}, err
	}
	res, err := s.runner.RunAll(ctx, from, to)
	return wrap(res, err), nil
}

func wrap(res syncdomain.Result, err error) domain.TriggerResponse {
	if err != nil {
		return domain.TriggerResponse{Success: false, Message: err.Error(), Data: nil}
	}
	msg := "sync completed"
	if !res.Clean() {
		msg = "sync completed with errors"
	}
	return domain.TriggerResponse{Success: true, Message: msg, Data: &res}
}
