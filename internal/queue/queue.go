package queue

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	ErrQueueFull   = errors.New("queue is full")
	ErrQueueClosed = errors.New("queue is closed")
)

// RefreshQueue buffers batches of listing keys between the staleness scan
// and the hero cache workers. Capacity is fixed at construction; overflow is
// reported to the producer rather than absorbed, since a skipped batch is
// rediscovered by the next scan anyway.
type RefreshQueue struct {
	items    chan []string
	done     chan struct{}
	maxSize  int
	closed   bool
	mu       sync.RWMutex
	logger   *logrus.Logger
	handlers []func([]string) error
}

func NewRefreshQueue(bufferSize int, logger *logrus.Logger) *RefreshQueue {
	if logger == nil {
		logger = logrus.New()
	}
	return &RefreshQueue{
		items:    make(chan []string, bufferSize),
		done:     make(chan struct{}),
		maxSize:  bufferSize,
		logger:   logger,
		handlers: make([]func([]string) error, 0),
	}
}

// Push enqueues one batch of listing keys. The send never blocks: a full
// buffer comes back as ErrQueueFull so the scheduler can stop enqueueing
// and leave the remainder for its next pass.
func (q *RefreshQueue) Push(listingKeys []string) error {
	q.mu.RLock()
	if q.closed {
		q.mu.RUnlock()
		return ErrQueueClosed
	}
	q.mu.RUnlock()

	select {
	case q.items <- listingKeys:
		q.logger.WithField("batch_size", len(listingKeys)).Debug("Queued refresh batch")
		return nil
	default:
		return ErrQueueFull
	}
}

// Subscribe registers a consumer for drained batches. Every registered
// handler sees every batch, in registration order; a handler error is
// logged and does not stop delivery to the rest.
func (q *RefreshQueue) Subscribe(handler func([]string) error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers = append(q.handlers, handler)
}

// Start launches the drain loop. Batches pushed before Start sit in the
// buffer until it runs.
func (q *RefreshQueue) Start() {
	go q.drain()
}

func (q *RefreshQueue) drain() {
	for {
		select {
		case <-q.done:
			return
		case batch := <-q.items:
			q.dispatch(batch)
		}
	}
}

func (q *RefreshQueue) dispatch(batch []string) {
	q.mu.RLock()
	handlers := q.handlers
	q.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(batch); err != nil {
			q.logger.WithError(err).Error("Refresh batch handler failed")
		}
	}
}

// Close rejects further pushes and stops the drain loop. Closing twice is a
// no-op.
func (q *RefreshQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}

	q.closed = true
	close(q.done)
	close(q.items)
	return nil
}

// Len returns the number of batches currently buffered.
func (q *RefreshQueue) Len() int {
	return len(q.items)
}

// HandlerCount returns the number of subscribed consumers.
func (q *RefreshQueue) HandlerCount() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return len(q.handlers)
}

// IsClosed reports whether Close has been called.
func (q *RefreshQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
