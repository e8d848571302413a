// Package notify schedules the daily "time for a healthy bowl" reminder.
// Scheduling again cancels the prior schedule, so at most one reminder fires
// per day regardless of restarts within the process.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const day = 24 * time.Hour

// Notifier delivers one reminder. The default implementation only logs;
// a push-gateway implementation can be swapped in.
type Notifier func(title, body string)

// Reminder fires a daily notification at a fixed hour.
type Reminder struct {
	hour   int
	notify Notifier
	log    zerolog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewReminder creates a reminder firing daily at hour (0–23). A nil notifier
// falls back to logging.
func NewReminder(hour int, notify Notifier, log zerolog.Logger) *Reminder {
	r := &Reminder{hour: hour, notify: notify, log: log}
	if r.notify == nil {
		r.notify = func(title, body string) {
			log.Info().Str("title", title).Str("body", body).Msg("daily reminder")
		}
	}
	return r
}

// Schedule starts the daily schedule, cancelling any prior one first so
// reminders never double up.
func (r *Reminder) Schedule(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancel != nil {
		r.cancel()
	}
	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	go r.run(runCtx)
	r.log.Info().Int("hour", r.hour).Msg("daily reminder scheduled")
}

// Stop cancels the active schedule, if any.
func (r *Reminder) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}

func (r *Reminder) run(ctx context.Context) {
	for {
		wait := r.untilNext(time.Now())
		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
			r.notify("Time for a healthy bowl!", "Check your favorite bowls or try something new today!")
		}
	}
}

// untilNext returns the duration until the next occurrence of the configured
// hour, strictly in the future.
func (r *Reminder) untilNext(now time.Time) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), r.hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.Add(day)
	}
	return next.Sub(now)
}
