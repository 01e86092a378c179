package usage

import (
	"context"
	"time"

	"sales-intel-be/internal/pkg/logger"
	"sales-intel-be/internal/repository/specification"
	"sales-intel-be/internal/repository/unitofwork"
	"sales-intel-be/pkg/events"

	"github.com/google/uuid"
)

// EventPublisher is the subset of the NATS publisher the meter needs.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Meter bumps per-user daily AI usage counters. Every operation is best
// effort: a metering failure never fails the request that triggered it.
type Meter struct {
	factory   unitofwork.RepositoryFactory
	publisher EventPublisher
	log       logger.ILogger
}

func NewMeter(factory unitofwork.RepositoryFactory, publisher EventPublisher, log logger.ILogger) *Meter {
	return &Meter{
		factory:   factory,
		publisher: publisher,
		log:       log,
	}
}

// Track adds one request and the given token counts to the user's daily
// counters, rolling them over when the last reset was on a previous day.
func (m *Meter) Track(ctx context.Context, userId uuid.UUID, promptTokens int, completionTokens int, model string) {
	tokens := promptTokens + completionTokens
	uow := m.factory.NewUnitOfWork(ctx)
	repo := uow.UserRepository()

	user, err := repo.FindOne(ctx, specification.ByID{ID: userId})
	if err != nil || user == nil {
		m.log.Warn("usage", "failed to load user for metering", map[string]interface{}{
			"user_id": userId.String(),
			"error":   errString(err),
		})
		return
	}

	if !sameDay(user.AiDailyUsageLastReset, time.Now()) {
		if err := repo.ResetDailyUsage(ctx, userId); err != nil {
			m.log.Warn("usage", "failed to reset daily usage", map[string]interface{}{
				"user_id": userId.String(),
				"error":   err.Error(),
			})
			return
		}
	}

	if err := repo.IncrementDailyUsage(ctx, userId, 1, tokens); err != nil {
		m.log.Warn("usage", "failed to increment daily usage", map[string]interface{}{
			"user_id": userId.String(),
			"error":   err.Error(),
		})
		return
	}

	if m.publisher != nil {
		if err := m.publisher.Publish(ctx, events.NewAgentUsageTracked(userId, 1, tokens, model)); err != nil {
			m.log.Warn("usage", "failed to publish usage event", map[string]interface{}{
				"user_id": userId.String(),
				"error":   err.Error(),
			})
		}
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func errString(err error) string {
	if err == nil {
		return "record not found"
	}
	return err.Error()
}
