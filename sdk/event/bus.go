package event

import (
	"context"
	"runtime/debug"
	"sync"

	"github.com/gaslessrelay/relaysdk/sdk/log"
)

const defaultMaxWorkers = 16

// Handler is a function that processes events
type Handler func(Event)

// Bus fans events out to subscribers on a bounded pool of goroutines.
type Bus struct {
	subscribers      map[EventType][]Handler
	wildcardHandlers []Handler
	mu               sync.RWMutex
	logger           log.Logger
	workerPool       chan struct{}
	maxWorkers       int
}

// NewBus creates a new event bus. maxWorkers <= 0 selects the default.
func NewBus(logger log.Logger, maxWorkers int) *Bus {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	if maxWorkers <= 0 {
		maxWorkers = defaultMaxWorkers
	}

	return &Bus{
		subscribers: make(map[EventType][]Handler),
		logger:      logger,
		workerPool:  make(chan struct{}, maxWorkers),
		maxWorkers:  maxWorkers,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	if handler == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	b.logger.Debug(context.Background(), "Subscribing handler to event type", "eventType", eventType)
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// SubscribeAll registers a handler for all event types
func (b *Bus) SubscribeAll(handler Handler) {
	if handler == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	b.logger.Debug(context.Background(), "Subscribing handler to all event types")
	b.wildcardHandlers = append(b.wildcardHandlers, handler)
}

// Publish sends an event to all relevant subscribers. Handlers run
// asynchronously; Publish blocks only while the worker pool is saturated.
func (b *Bus) Publish(ctx context.Context, e Event) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.subscribers[e.Type])+len(b.wildcardHandlers))
	handlers = append(handlers, b.subscribers[e.Type]...)
	handlers = append(handlers, b.wildcardHandlers...)
	b.mu.RUnlock()

	if len(handlers) == 0 {
		return
	}

	b.logger.Debug(ctx, "Publishing event", "type", e.Type, "handlerCount", len(handlers))
	for _, h := range handlers {
		b.dispatch(h, e)
	}
}

func (b *Bus) dispatch(handler Handler, e Event) {
	b.workerPool <- struct{}{}

	go func() {
		defer func() {
			<-b.workerPool
			if r := recover(); r != nil {
				b.logger.Error(context.Background(), "Event handler panicked",
					"error", r,
					"eventType", e.Type,
					"stackTrace", string(debug.Stack()),
				)
			}
		}()

		handler(copyEvent(e))
	}()
}

// copyEvent gives each handler its own Data map.
func copyEvent(e Event) Event {
	copied := Event{
		Type:      e.Type,
		Timestamp: e.Timestamp,
		Data:      make(EventData, len(e.Data)),
	}
	for k, v := range e.Data {
		copied.Data[k] = v
	}
	return copied
}

// WaitForHandlers blocks until every in-flight handler has returned.
func (b *Bus) WaitForHandlers() {
	for i := 0; i < b.maxWorkers; i++ {
		b.workerPool <- struct{}{}
	}
	for i := 0; i < b.maxWorkers; i++ {
		<-b.workerPool
	}
}

// Close releases resources used by the event bus
func (b *Bus) Close() {
	b.WaitForHandlers()
}
