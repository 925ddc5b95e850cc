package monitoring

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/gamescape/gamescape-be/internal/store"
)

// SessionReaper periodically removes expired session records. Only
// deployments using the session verifier run one; bearer tokens expire
// on their own.
type SessionReaper struct {
	sessions store.SessionStore
	schedule cron.Schedule
	done     chan bool
}

// NewSessionReaper creates a reaper driven by a standard cron
// expression.
func NewSessionReaper(sessions store.SessionStore, cronExpr string) (*SessionReaper, error) {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, err
	}
	return &SessionReaper{
		sessions: sessions,
		schedule: schedule,
		done:     make(chan bool),
	}, nil
}

// Run starts the reaping loop. It reaps once immediately, then follows
// the cron schedule until Stop is called.
func (r *SessionReaper) Run() {
	log.Info().Msg("Starting session reaper")
	r.reap()

	for {
		timer := time.NewTimer(time.Until(r.schedule.Next(time.Now())))
		select {
		case <-r.done:
			timer.Stop()
			log.Info().Msg("Stopping session reaper")
			return
		case <-timer.C:
			r.reap()
		}
	}
}

// Stop halts the reaping loop.
func (r *SessionReaper) Stop() {
	r.done <- true
}

func (r *SessionReaper) reap() {
	removed, err := r.sessions.DeleteExpired(time.Now())
	if err != nil {
		log.Error().Err(err).Msg("Failed to delete expired sessions")
		return
	}
	if removed > 0 {
		log.Info().Int64("removed", removed).Msg("Deleted expired sessions")
	}
}
