package jobs

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Ved-Chandrakar/gpy-backup-sub000/config"
	"github.com/Ved-Chandrakar/gpy-backup-sub000/internal/dto"
)

const (
	sweepJob     = "overdue_sweep"
	sweepLockKey = "lock:overdue_sweep"
)

// ErrNotStarted is returned by Stop before Start.
var ErrNotStarted = errors.New("overdue sweep not started")

// Sweeper marks overdue checkpoints.
type Sweeper interface {
	MarkOverdue(ctx context.Context, asOf time.Time) (int64, error)
	Today() time.Time
}

// Locker hands out a cluster-wide lock so one replica sweeps per tick.
type Locker interface {
	AcquireLock(ctx context.Context, name string, ttl time.Duration) (token string, ok bool, err error)
	ReleaseLock(ctx context.Context, name, token string) error
}

// OverdueSweep runs MarkOverdue(today) on a cron schedule.
type OverdueSweep struct {
	svc     Sweeper
	locker  Locker
	spec    string
	lockTTL time.Duration
	loc     *time.Location
	logger  *zap.Logger
	report  func(error)

	mu   sync.Mutex
	cron *cron.Cron
}

// NewOverdueSweep builds the job. locker may be nil, in which case every
// replica sweeps; report receives run failures and may be nil.
func NewOverdueSweep(svc Sweeper, locker Locker, cfg *config.TrackingConfig, loc *time.Location, logger *zap.Logger, report func(error)) *OverdueSweep {
	if loc == nil {
		loc = time.UTC
	}
	ttl := cfg.SweepLockTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if report == nil {
		report = func(error) {}
	}
	return &OverdueSweep{
		svc:     svc,
		locker:  locker,
		spec:    cfg.SweepSpec,
		lockTTL: ttl,
		loc:     loc,
		logger:  logger.With(zap.String("job", sweepJob)),
		report:  report,
	}
}

// RunOnce sweeps once. It returns 0 without sweeping when another replica
// holds the lock. A lock backend failure does not block the sweep.
func (s *OverdueSweep) RunOnce(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.lockTTL)
	defer cancel()

	if s.locker != nil {
		token, ok, err := s.locker.AcquireLock(ctx, sweepLockKey, s.lockTTL)
		switch {
		case err != nil:
			s.logger.Warn("sweep lock unavailable, sweeping unlocked", zap.Error(err))
		case !ok:
			jobSkips.WithLabelValues(sweepJob).Inc()
			s.logger.Debug("sweep held by another replica")
			return 0, nil
		default:
			defer func() {
				if err := s.locker.ReleaseLock(context.Background(), sweepLockKey, token); err != nil {
					s.logger.Warn("release sweep lock failed", zap.Error(err))
				}
			}()
		}
	}

	start := time.Now()
	asOf := s.svc.Today()
	n, err := s.svc.MarkOverdue(ctx, asOf)

	jobRuns.WithLabelValues(sweepJob).Inc()
	jobDuration.WithLabelValues(sweepJob).Observe(time.Since(start).Seconds())
	if err != nil {
		jobErrors.WithLabelValues(sweepJob).Inc()
		s.logger.Error("overdue sweep failed, retrying next tick", zap.Error(err))
		s.report(err)
		return 0, err
	}

	s.logger.Info("overdue sweep done",
		zap.String("as_of", asOf.Format(dto.DateLayout)),
		zap.Int64("affected", n),
		zap.Duration("took", time.Since(start)),
	)
	return n, nil
}

// Start registers the cron entry in the tracking timezone and starts the
// scheduler. Runs never overlap.
func (s *OverdueSweep) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron != nil {
		return nil
	}

	c := cron.New(
		cron.WithLocation(s.loc),
		cron.WithChain(cron.Recover(cron.DiscardLogger), cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	if _, err := c.AddFunc(s.spec, func() {
		_, _ = s.RunOnce(ctx) // failures are logged and reported inside
	}); err != nil {
		return err
	}
	c.Start()
	s.cron = c

	s.logger.Info("overdue sweep scheduled", zap.String("spec", s.spec), zap.String("tz", s.loc.String()))
	return nil
}

// Stop stops the scheduler and waits for a running sweep to return.
func (s *OverdueSweep) Stop() error {
	s.mu.Lock()
	c := s.cron
	s.cron = nil
	s.mu.Unlock()

	if c == nil {
		return ErrNotStarted
	}
	<-c.Stop().Done()
	s.logger.Info("overdue sweep stopped")
	return nil
}
