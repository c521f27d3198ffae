package reminder

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/mamacare/mamacare/internal/domain/account"
	"github.com/mamacare/mamacare/internal/platform/metrics"
	"github.com/mamacare/mamacare/internal/platform/notify"
)

// Sweeper periodically delivers due reminders. Each sweep finds unsent
// reminders whose due date has passed, sends them through the configured
// notify.Sender, and marks them sent so they are delivered at most once.
type Sweeper struct {
	reminders Repository
	accounts  account.Repository
	sender    notify.Sender
	metrics   *metrics.Registry
	logger    zerolog.Logger
	now       func() time.Time

	cron *cron.Cron
}

func NewSweeper(reminders Repository, accounts account.Repository, sender notify.Sender, reg *metrics.Registry, logger zerolog.Logger) *Sweeper {
	return &Sweeper{
		reminders: reminders,
		accounts:  accounts,
		sender:    sender,
		metrics:   reg,
		logger:    logger,
		now:       time.Now,
	}
}

// Start schedules sweeps according to spec (standard cron syntax) and runs
// one sweep immediately so reminders that came due while the server was
// down are not delayed until the next tick.
func (s *Sweeper) Start(spec string) error {
	s.cron = cron.New(cron.WithLocation(time.UTC))
	if _, err := s.cron.AddFunc(spec, func() {
		s.Sweep(context.Background())
	}); err != nil {
		return err
	}
	s.cron.Start()
	go s.Sweep(context.Background())
	return nil
}

func (s *Sweeper) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
}

// Sweep delivers every due unsent reminder. Failures are logged and counted
// but do not stop the sweep; failed reminders stay unsent and are retried
// on the next run.
func (s *Sweeper) Sweep(ctx context.Context) {
	due, err := s.reminders.ListDueUnsent(ctx, s.now())
	if err != nil {
		s.logger.Error().Err(err).Msg("reminder sweep: listing due reminders failed")
		return
	}
	if len(due) == 0 {
		return
	}
	s.logger.Info().Int("count", len(due)).Msg("reminder sweep started")

	for _, r := range due {
		a, err := s.accounts.GetByID(ctx, r.AccountID)
		if err != nil {
			s.logger.Warn().Err(err).Str("reminder_id", r.ID.String()).Msg("reminder sweep: account lookup failed")
			continue
		}
		if !a.Reminders {
			// Opted out. Mark sent so the reminder is not retried forever.
			if err := s.reminders.MarkSent(ctx, r.ID, s.now()); err != nil {
				s.logger.Error().Err(err).Str("reminder_id", r.ID.String()).Msg("reminder sweep: mark sent failed")
			}
			continue
		}

		msg := notify.Message{
			ToEmail: a.Email,
			ToName:  a.FullName,
			Subject: r.Title,
			Body:    r.Body,
		}
		if err := s.sender.Send(ctx, msg); err != nil {
			s.logger.Error().Err(err).
				Str("reminder_id", r.ID.String()).
				Str("kind", r.Kind).
				Msg("reminder sweep: send failed")
			if s.metrics != nil {
				s.metrics.ReminderFailed()
			}
			continue
		}
		if err := s.reminders.MarkSent(ctx, r.ID, s.now()); err != nil {
			s.logger.Error().Err(err).Str("reminder_id", r.ID.String()).Msg("reminder sweep: mark sent failed")
			continue
		}
		if s.metrics != nil {
			s.metrics.ReminderSent()
		}
	}
}
