// Package watcher runs the portfolio alert loop: it follows live property
// changes, re-derives each property's status and fans out alerts when one
// crosses into a critical state.
package watcher

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"vendorwatch/config"
	"vendorwatch/internal/delivery"
	"vendorwatch/internal/domain/entity"
	"vendorwatch/internal/domain/repository"
	"vendorwatch/internal/domain/service"
	"vendorwatch/internal/domain/status"

	"go.uber.org/fx"
)

// Params holds dependencies for the watcher delivery, injected by Fx.
type Params struct {
	fx.In
	fx.Lifecycle

	Config          *config.Config
	Logger          *slog.Logger
	PropertyWatcher repository.PropertyWatcher
	Publisher       service.EventPublisher

	// Notifier is nil when Firebase is not configured; alerts then only go to
	// the event stream.
	Notifier service.NotificationService `optional:"true"`
}

type alertWatcher struct {
	cfg       *config.Config
	logger    *slog.Logger
	watcher   repository.PropertyWatcher
	publisher service.EventPublisher
	notifier  service.NotificationService
	now       func() time.Time

	cancel context.CancelFunc

	mu         sync.Mutex
	lastStatus map[string]entity.PropertyStatus
}

// NewWatcher creates the alert loop delivery.
func NewWatcher(params Params) delivery.Delivery {
	w := &alertWatcher{
		cfg:        params.Config,
		logger:     params.Logger,
		watcher:    params.PropertyWatcher,
		publisher:  params.Publisher,
		notifier:   params.Notifier,
		now:        time.Now,
		lastStatus: make(map[string]entity.PropertyStatus),
	}

	params.Append(fx.Hook{
		OnStop: func(context.Context) error {
			if w.cancel != nil {
				w.cancel()
			}

			return nil
		},
	})

	return w
}

// Serve follows the property change stream until the context is cancelled.
func (w *alertWatcher) Serve(ctx context.Context) error {
	ctx, w.cancel = context.WithCancel(ctx)

	changes, err := w.watcher.Watch(ctx)
	if err != nil {
		return err
	}

	w.logger.Info("Starting property alert watcher")

	for {
		select {
		case <-ctx.Done():
			return nil
		case batch, ok := <-changes:
			if !ok {
				w.logger.Info("property change stream closed")

				return nil
			}
			for _, change := range batch {
				w.handleChange(ctx, change)
			}
		}
	}
}

func (w *alertWatcher) handleChange(ctx context.Context, change repository.PropertyChange) {
	p := change.Property
	if p == nil {
		return
	}

	if change.Kind == repository.ChangeRemoved {
		w.mu.Lock()
		delete(w.lastStatus, p.ID)
		w.mu.Unlock()

		return
	}

	current := status.Classify(p, w.now())

	w.mu.Lock()
	previous, seen := w.lastStatus[p.ID]
	w.lastStatus[p.ID] = current
	w.mu.Unlock()

	// The first snapshot delivers the whole portfolio as "added"; that
	// bootstrap pass seeds lastStatus without alerting anyone.
	if !seen || previous == current {
		return
	}

	event := &service.PropertyEvent{
		PropertyID:     p.ID,
		Name:           p.Name,
		EventType:      service.EventStatusChanged,
		PreviousStatus: previous.String(),
		Status:         current.String(),
		OccurredAt:     w.now().UTC(),
	}
	if err := w.publisher.PublishPropertyEvent(ctx, event); err != nil {
		w.logger.Warn("failed to publish status event",
			slog.String("property_id", p.ID),
			slog.Any("error", err),
		)
	}

	if current == entity.StatusCriticalActionRequired {
		w.notifyCritical(ctx, p, previous)
	}
}

func (w *alertWatcher) notifyCritical(ctx context.Context, p *entity.Property, previous entity.PropertyStatus) {
	if w.notifier == nil || w.cfg.Firebase == nil || w.cfg.Firebase.AlertTopic == "" {
		return
	}

	err := w.notifier.SendTopicNotification(ctx, w.cfg.Firebase.AlertTopic,
		"Critical contract action required",
		p.Name+" needs immediate attention",
		map[string]string{
			"property_id":     p.ID,
			"previous_status": previous.String(),
			"status":          entity.StatusCriticalActionRequired.String(),
		},
	)
	if err != nil {
		w.logger.Warn("failed to send critical alert",
			slog.String("property_id", p.ID),
			slog.Any("error", err),
		)

		return
	}

	w.logger.Info("critical alert sent",
		slog.String("property_id", p.ID),
		slog.String("name", p.Name),
	)
}
