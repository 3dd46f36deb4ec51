package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const tokenSweepJob = "token_sweep"

// TokenStore is the part of the session store the sweep needs.
type TokenStore interface {
	PurgeBlacklist(ctx context.Context, before time.Time) (int64, error)
	PurgeExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

// SweepTokens drops blacklist entries older than retention and sessions whose
// token has expired.
func SweepTokens(ctx context.Context, store TokenStore, retention time.Duration, now time.Time) (blacklisted, sessions int64, err error) {
	if blacklisted, err = store.PurgeBlacklist(ctx, now.Add(-retention)); err != nil {
		return 0, 0, err
	}
	if sessions, err = store.PurgeExpiredSessions(ctx, now); err != nil {
		return blacklisted, 0, err
	}
	return blacklisted, sessions, nil
}

// RegisterTokenSweep schedules SweepTokens every interval.
func RegisterTokenSweep(s *Service, store TokenStore, retention, every time.Duration, log *zap.SugaredLogger) error {
	_, err := s.AddIntervalJob(tokenSweepJob, every, func() error {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		blacklisted, sessions, err := SweepTokens(ctx, store, retention, time.Now())
		if err != nil {
			return err
		}
		if blacklisted > 0 || sessions > 0 {
			log.Infow("token sweep finished", "blacklist_purged", blacklisted, "sessions_purged", sessions)
		}
		return nil
	})
	return err
}
