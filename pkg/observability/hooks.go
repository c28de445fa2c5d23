package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/aura/pkg/domain"
)

// LogHooks logs every request and transition at debug level, and failed
// requests at warn level.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTransition: func(ctx context.Context, e *domain.TransitionEvent) {
			logger.DebugContext(ctx, "transition",
				"screen", e.Screen,
				"user_id", e.UserID,
				"from", e.From,
				"to", e.To,
				"message", e.Message,
			)
		},
		OnRequest: func(ctx context.Context, e *domain.RequestEvent) {
			if e.Err != nil {
				logger.WarnContext(ctx, "request_failed",
					"op", e.Op,
					"request_id", e.RequestID,
					"status", e.StatusCode,
					"duration", e.Duration,
					"err", e.Err,
				)
				return
			}
			logger.DebugContext(ctx, "request",
				"op", e.Op,
				"request_id", e.RequestID,
				"status", e.StatusCode,
				"duration", e.Duration,
			)
		},
	}
}
