package watcher

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"vendorwatch/config"
	"vendorwatch/internal/domain/entity"
	"vendorwatch/internal/domain/repository"
	"vendorwatch/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedAlert struct {
	topic string
	title string
	data  map[string]string
}

type fakeNotifier struct {
	mu     sync.Mutex
	alerts []capturedAlert
}

func (f *fakeNotifier) SendTopicNotification(_ context.Context, topic, title, _ string, data map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alerts = append(f.alerts, capturedAlert{topic: topic, title: title, data: data})

	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []*service.PropertyEvent
}

func (f *fakePublisher) PublishPropertyEvent(_ context.Context, event *service.PropertyEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)

	return nil
}

func (f *fakePublisher) Close() error { return nil }

func alertConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Firebase = &config.FirebaseConfig{AlertTopic: "portfolio-alerts"}

	return cfg
}

func newTestWatcher(publisher *fakePublisher, notifier *fakeNotifier) *alertWatcher {
	return &alertWatcher{
		cfg:        alertConfig(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		publisher:  publisher,
		notifier:   notifier,
		now:        time.Now,
		lastStatus: make(map[string]entity.PropertyStatus),
	}
}

// criticalProperty ends soon enough that its window close is inside the
// critical threshold.
func criticalProperty(id string) *entity.Property {
	return &entity.Property{
		ID:        id,
		Name:      "Building " + id,
		Address:   "12 Shore Dr",
		City:      "Austin",
		State:     "TX",
		Zip:       "78701",
		Region:    "Southeast",
		UnitCount: 4,
		Vendor:    entity.Vendor{Name: "Otis", CurrentPrice: 1250},
		Terms: entity.ContractTerms{
			EndDate:            time.Now().AddDate(0, 0, 100).Format("2006-01-02"),
			CancellationWindow: "120 - 90 Days",
		},
	}
}

// healthyProperty has its window far in the future.
func healthyProperty(id string) *entity.Property {
	p := criticalProperty(id)
	p.Terms.EndDate = time.Now().AddDate(0, 0, 300).Format("2006-01-02")

	return p
}

func TestHandleChange_BootstrapDoesNotAlert(t *testing.T) {
	publisher := &fakePublisher{}
	notifier := &fakeNotifier{}
	w := newTestWatcher(publisher, notifier)

	// First sight of a property, even a critical one, only seeds state.
	w.handleChange(context.Background(), repository.PropertyChange{
		Kind:     repository.ChangeAdded,
		Property: criticalProperty("p1"),
	})

	assert.Empty(t, publisher.events)
	assert.Empty(t, notifier.alerts)
	assert.Equal(t, entity.StatusCriticalActionRequired, w.lastStatus["p1"])
}

func TestHandleChange_TransitionIntoCriticalAlerts(t *testing.T) {
	publisher := &fakePublisher{}
	notifier := &fakeNotifier{}
	w := newTestWatcher(publisher, notifier)

	w.handleChange(context.Background(), repository.PropertyChange{
		Kind:     repository.ChangeAdded,
		Property: healthyProperty("p1"),
	})
	w.handleChange(context.Background(), repository.PropertyChange{
		Kind:     repository.ChangeModified,
		Property: criticalProperty("p1"),
	})

	require.Len(t, publisher.events, 1)
	event := publisher.events[0]
	assert.Equal(t, service.EventStatusChanged, event.EventType)
	assert.Equal(t, entity.StatusActiveContract.String(), event.PreviousStatus)
	assert.Equal(t, entity.StatusCriticalActionRequired.String(), event.Status)

	require.Len(t, notifier.alerts, 1)
	assert.Equal(t, "portfolio-alerts", notifier.alerts[0].topic)
	assert.Equal(t, "p1", notifier.alerts[0].data["property_id"])
}

func TestHandleChange_UnchangedStatusStaysQuiet(t *testing.T) {
	publisher := &fakePublisher{}
	w := newTestWatcher(publisher, &fakeNotifier{})

	p := healthyProperty("p1")
	w.handleChange(context.Background(), repository.PropertyChange{Kind: repository.ChangeAdded, Property: p})

	p.Name = "Renamed"
	w.handleChange(context.Background(), repository.PropertyChange{Kind: repository.ChangeModified, Property: p})

	assert.Empty(t, publisher.events)
}

func TestHandleChange_RemovalForgetsTheProperty(t *testing.T) {
	publisher := &fakePublisher{}
	w := newTestWatcher(publisher, &fakeNotifier{})

	w.handleChange(context.Background(), repository.PropertyChange{
		Kind:     repository.ChangeAdded,
		Property: criticalProperty("p1"),
	})
	w.handleChange(context.Background(), repository.PropertyChange{
		Kind:     repository.ChangeRemoved,
		Property: criticalProperty("p1"),
	})

	assert.NotContains(t, w.lastStatus, "p1")

	// Re-adding after removal is a fresh bootstrap, not a transition.
	w.handleChange(context.Background(), repository.PropertyChange{
		Kind:     repository.ChangeAdded,
		Property: criticalProperty("p1"),
	})
	assert.Empty(t, publisher.events)
}

func TestHandleChange_NoNotifierStillPublishes(t *testing.T) {
	publisher := &fakePublisher{}
	w := newTestWatcher(publisher, nil)
	w.notifier = nil

	w.handleChange(context.Background(), repository.PropertyChange{
		Kind:     repository.ChangeAdded,
		Property: healthyProperty("p1"),
	})
	w.handleChange(context.Background(), repository.PropertyChange{
		Kind:     repository.ChangeModified,
		Property: criticalProperty("p1"),
	})

	assert.Len(t, publisher.events, 1)
}
