// Package daemon runs the compiled trigger set in-process, for hosts where
// touching the system scheduler is unwanted (or during development). It is
// the same expansion the OS backends consume: one cron entry per trigger
// instant, firing on the exact weekday/hour/minute match.
package daemon

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/time/rate"

	"autoselfcontrol/internal/config"
	"autoselfcontrol/internal/schedule"
	"autoselfcontrol/internal/selfcontrol"
	"autoselfcontrol/pkg/logx"
)

// launchTimeout bounds one tool invocation; SelfControl can take minutes to
// set its firewall rules up.
const launchTimeout = 10 * time.Minute

type Service struct {
	mgr *config.Manager
	log logx.Logger

	mu      sync.Mutex
	c       *cron.Cron
	tool    *selfcontrol.Tool
	cfg     *config.Config
	limiter *rate.Limiter
}

func New(mgr *config.Manager, log logx.Logger) *Service {
	return &Service{
		mgr: mgr,
		log: log.With(logx.String("component", "daemon")),
	}
}

// Run blocks until ctx is done, firing triggers in-process and hot-swapping
// the trigger set whenever the config file changes.
func (s *Service) Run(ctx context.Context) error {
	cfg := s.mgr.Get()
	if cfg == nil {
		return fmt.Errorf("daemon started without a loaded config")
	}
	if err := s.apply(ctx, cfg); err != nil {
		return err
	}

	sub := s.mgr.Subscribe(1)
	defer s.mgr.Unsubscribe(sub)

	watchErr := make(chan error, 1)
	go func() { watchErr <- s.mgr.Watch(ctx) }()

	for {
		select {
		case <-ctx.Done():
			s.stop()
			<-watchErr
			return nil
		case err := <-watchErr:
			s.stop()
			return err
		case cfg := <-sub:
			if err := s.apply(ctx, cfg); err != nil {
				// Manager validation makes this unlikely; keep the old
				// trigger set if it happens anyway.
				s.log.Error("reload failed; keeping previous triggers", logx.Err(err))
			}
		}
	}
}

// apply compiles cfg and atomically replaces the running cron set.
func (s *Service) apply(ctx context.Context, cfg *config.Config) error {
	plan, err := schedule.Compile(cfg.Schedules())
	if err != nil {
		return err
	}

	loc := time.Local
	if cfg.Daemon.Timezone != "" {
		loc, err = time.LoadLocation(cfg.Daemon.Timezone)
		if err != nil {
			return fmt.Errorf("daemon.timezone: %w", err)
		}
	}

	minInterval, err := config.ParseDurationField("daemon.min-launch-interval", cfg.Daemon.MinLaunchInterval)
	if err != nil {
		return err
	}
	var limiter *rate.Limiter
	if minInterval > 0 {
		limiter = rate.NewLimiter(rate.Every(minInterval), 1)
	}

	c := cron.New(cron.WithLocation(loc))
	for _, tr := range plan.Triggers() {
		tr := tr
		if _, err := c.AddFunc(cronSpec(tr), func() { s.fire(ctx, tr) }); err != nil {
			return fmt.Errorf("register trigger %s %02d:%02d: %w", tr.Weekday, tr.Hour, tr.Minute, err)
		}
	}

	s.mu.Lock()
	old := s.c
	s.c = c
	s.tool = selfcontrol.New(cfg, s.log)
	s.cfg = cfg
	s.limiter = limiter
	s.mu.Unlock()

	if old != nil {
		<-old.Stop().Done()
	}
	c.Start()

	s.log.Info("trigger set active",
		logx.Int("triggers", len(plan.Triggers())),
		logx.Int("blocked_min_per_week", plan.TotalMinutes()),
		logx.String("tz", loc.String()),
	)
	return nil
}

func (s *Service) stop() {
	s.mu.Lock()
	c := s.c
	s.c = nil
	s.mu.Unlock()
	if c != nil {
		<-c.Stop().Done()
	}
}

// fire handles one trigger instant.
func (s *Service) fire(ctx context.Context, tr schedule.Trigger) {
	s.mu.Lock()
	tool := s.tool
	cfg := s.cfg
	limiter := s.limiter
	s.mu.Unlock()

	if tr.Action == schedule.ActionStop {
		s.log.Info("block window ended",
			logx.String("weekday", tr.Weekday.String()),
			logx.String("at", fmt.Sprintf("%02d:%02d", tr.Hour, tr.Minute)),
		)
		return
	}

	if limiter != nil && !limiter.Allow() {
		s.log.Warn("tool launch rate-limited; skipping trigger",
			logx.String("weekday", tr.Weekday.String()),
			logx.String("at", fmt.Sprintf("%02d:%02d", tr.Hour, tr.Minute)),
		)
		return
	}

	lctx, cancel := context.WithTimeout(ctx, launchTimeout)
	defer cancel()

	entry := cfg.BlockSchedules[tr.Entry]
	err := tool.Block(lctx, selfcontrol.Settings{
		DurationMinutes: tr.DurationMinutes,
		Whitelist:       entry.BlockAsWhitelist,
		HostBlacklist:   cfg.BlacklistFor(tr.Entry),
	})
	if err != nil {
		s.log.Error("tool launch failed", logx.Err(err),
			logx.Int("duration_min", tr.DurationMinutes))
		return
	}
	s.log.Info("block started",
		logx.Int("duration_min", tr.DurationMinutes),
		logx.String("weekday", tr.Weekday.String()),
	)
}

// cronSpec renders a trigger as a standard 5-field cron expression.
// cron numbers weekdays with Sunday as 0.
func cronSpec(tr schedule.Trigger) string {
	return fmt.Sprintf("%d %d * * %d", tr.Minute, tr.Hour, (int(tr.Weekday)+1)%7)
}
