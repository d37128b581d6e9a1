package handlers

import (
	"context"
	"log/slog"
	"sync"

	"github.com/edgard/dualcoach/internal/chat"
)

// UserQueue passes events to the next dispatcher in the order they were
// queued for each user, while different users are processed concurrently.
// Handle only enqueues, so it must be called in arrival order; the Telegram
// client guarantees that when built with bot.WithNotAsyncHandlers.
type UserQueue struct {
	next Dispatcher
	log  *slog.Logger

	mu      sync.Mutex
	pending map[int64][]queuedEvent
	wg      sync.WaitGroup
}

type queuedEvent struct {
	ctx context.Context
	in  chat.Inbound
}

// NewUserQueue creates a queue in front of next.
func NewUserQueue(next Dispatcher, log *slog.Logger) *UserQueue {
	return &UserQueue{
		next:    next,
		log:     log.With("component", "user_queue"),
		pending: make(map[int64][]queuedEvent),
	}
}

// Handle enqueues in and returns immediately. A worker per user with a
// non-empty backlog drains it; the worker exits once the backlog is empty.
func (q *UserQueue) Handle(ctx context.Context, in chat.Inbound) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	backlog, busy := q.pending[in.UserID]
	q.pending[in.UserID] = append(backlog, queuedEvent{ctx: ctx, in: in})
	if !busy {
		q.wg.Add(1)
		go q.drain(in.UserID)
	}
	return nil
}

func (q *UserQueue) drain(userID int64) {
	defer q.wg.Done()
	for {
		q.mu.Lock()
		backlog := q.pending[userID]
		if len(backlog) == 0 {
			delete(q.pending, userID)
			q.mu.Unlock()
			return
		}
		ev := backlog[0]
		q.pending[userID] = backlog[1:]
		q.mu.Unlock()

		if err := q.next.Handle(ev.ctx, ev.in); err != nil {
			q.log.ErrorContext(ev.ctx, "Failed to handle event",
				"error", err, "chat_id", ev.in.ChatID, "user_id", userID, "event_kind", ev.in.Event.Kind)
		}
	}
}

// Wait blocks until every queued event has been handled.
func (q *UserQueue) Wait() {
	q.wg.Wait()
}
