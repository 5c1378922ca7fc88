package worker

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/devfolio/portfolio-api/internal/events"
)

const defaultQueueSize = 64

// Notifier consumes events off the request path.
type Notifier interface {
	Handle(ctx context.Context, event events.Event) error
}

// NotificationWorker buffers published events and hands them to a Notifier
// on a single background goroutine.
type NotificationWorker struct {
	notifier Notifier
	logger   *zap.Logger
	queue    chan events.Event

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewNotificationWorker builds a worker with the given queue size.
func NewNotificationWorker(notifier Notifier, logger *zap.Logger, queueSize int) *NotificationWorker {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	return &NotificationWorker{
		notifier: notifier,
		logger:   logger,
		queue:    make(chan events.Event, queueSize),
	}
}

// Subscribe routes the given event types from the dispatcher into the queue.
func (w *NotificationWorker) Subscribe(dispatcher events.Dispatcher, types ...events.EventType) {
	for _, t := range types {
		dispatcher.Subscribe(t, w.enqueue)
	}
}

// Start launches the consumer loop. It exits once Stop has drained the queue.
func (w *NotificationWorker) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for event := range w.queue {
			if err := w.notifier.Handle(ctx, event); err != nil {
				w.logger.Warn("notification failed",
					zap.String("event_id", event.ID),
					zap.String("event_type", string(event.Type)),
					zap.Error(err))
			}
		}
	}()
}

// Stop refuses new events, waits for queued ones to be handled, then returns.
func (w *NotificationWorker) Stop() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	close(w.queue)
	w.mu.Unlock()

	w.wg.Wait()
}

func (w *NotificationWorker) enqueue(_ context.Context, event events.Event) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		w.logger.Warn("notification worker stopped, dropping event", zap.String("event_type", string(event.Type)))
		return nil
	}
	select {
	case w.queue <- event:
	default:
		w.logger.Warn("notification queue full, dropping event", zap.String("event_type", string(event.Type)))
	}
	return nil
}

// StartNotificationWorker wires a notifier to the dispatcher and starts consuming.
func StartNotificationWorker(ctx context.Context, dispatcher events.Dispatcher, notifier Notifier, types []events.EventType, logger *zap.Logger) *NotificationWorker {
	w := NewNotificationWorker(notifier, logger, defaultQueueSize)
	w.Subscribe(dispatcher, types...)
	w.Start(ctx)
	return w
}
