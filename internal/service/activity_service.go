package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/metropower/dashboard/internal/events"
)

const recentActivityLimit = 50

// ActivityService records domain events in the log and keeps the most recent ones.
type ActivityService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger

	mu     sync.Mutex
	recent []events.Event
}

// NewActivityService creates the service.
func NewActivityService(dispatcher events.Dispatcher, logger *zap.Logger) *ActivityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActivityService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to every event type.
func (a *ActivityService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	for _, t := range events.AllTypes {
		a.dispatcher.Subscribe(t, a.handle)
	}
}

func (a *ActivityService) handle(_ context.Context, event events.Event) error {
	a.logger.Info("activity",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.String("subject", event.Subject),
		zap.String("actor", event.Actor),
		zap.Any("payload", event.Payload))

	a.mu.Lock()
	defer a.mu.Unlock()
	a.recent = append(a.recent, event)
	if len(a.recent) > recentActivityLimit {
		a.recent = a.recent[len(a.recent)-recentActivityLimit:]
	}
	return nil
}

// Recent returns the latest events, newest first.
func (a *ActivityService) Recent() []events.Event {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]events.Event, len(a.recent))
	for i, e := range a.recent {
		out[len(a.recent)-1-i] = e
	}
	return out
}
