package sweeper

import (
	"context"
	"log/slog"
	"time"

	"zynetra/backend/store"
)

// Sweeper periodically purges unverified accounts whose OTP expired. Single
// instance, no coordination; a failed tick is logged and retried on the
// next one.
type Sweeper struct {
	accounts *store.Accounts
	interval time.Duration
}

func New(accounts *store.Accounts, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Sweeper{accounts: accounts, interval: interval}
}

// Run ticks until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(time.Now())
		}
	}
}

func (s *Sweeper) sweep(now time.Time) {
	removed, err := s.accounts.DeleteExpiredUnverified(now)
	if err != nil {
		slog.Warn("sweep failed", "source", "sweeper", "error", err.Error())
		return
	}
	if removed > 0 {
		slog.Info("expired unverified accounts removed", "source", "sweeper", "count", removed)
	}
}
