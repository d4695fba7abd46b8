package alert

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dojolanza/cuotas/go-api-server/internal/config"
	"github.com/dojolanza/cuotas/go-api-server/internal/model"
	"github.com/robfig/cron/v3"
)

// OverdueFinder yields the members owing dues for a period.
type OverdueFinder interface {
	FindOverdue(ctx context.Context, period string) ([]model.Member, error)
}

// BulkSender delivers reminders and reports the per-recipient accounting.
type BulkSender interface {
	SendBulk(ctx context.Context, members []model.Member, period string) Outcome
}

var (
	_ OverdueFinder = (*Resolver)(nil)
	_ BulkSender    = (*Dispatcher)(nil)
)

// Scheduler owns the two recurring reminder jobs: the daily overdue check
// and the weekly reminder. Start and Stop affect future firings only; a run
// already in flight completes. Start is idempotent, so calling it twice
// never double-registers the jobs.
type Scheduler struct {
	finder     OverdueFinder
	sender     BulkSender
	dailySpec  string
	weeklySpec string

	mu      sync.Mutex
	cron    *cron.Cron
	running bool
}

func NewScheduler(finder OverdueFinder, sender BulkSender, cfg config.AlertsConfig) *Scheduler {
	return &Scheduler{
		finder:     finder,
		sender:     sender,
		dailySpec:  cfg.DailySpec,
		weeklySpec: cfg.WeeklySpec,
	}
}

// Start registers both jobs and begins firing them. A scheduler that is
// already running is left untouched.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	c := cron.New()
	if _, err := c.AddFunc(s.dailySpec, func() { s.run("daily") }); err != nil {
		return fmt.Errorf("schedule daily job (%q): %w", s.dailySpec, err)
	}
	if _, err := c.AddFunc(s.weeklySpec, func() { s.run("weekly") }); err != nil {
		return fmt.Errorf("schedule weekly job (%q): %w", s.weeklySpec, err)
	}

	c.Start()
	s.cron = c
	s.running = true

	slog.Info("Alertas automáticas activadas", "daily", s.dailySpec, "weekly", s.weeklySpec)
	return nil
}

// Stop cancels future firings. In-flight runs finish on their own.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.cron.Stop()
	s.cron = nil
	s.running = false

	slog.Info("Alertas automáticas desactivadas")
}

func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// entryCount reports how many cron entries are registered.
func (s *Scheduler) entryCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron == nil {
		return 0
	}
	return len(s.cron.Entries())
}

// run is one scheduled firing. Errors and panics are contained here so one
// failed run never prevents the next: a lost run is retried at the next
// scheduled time, never mid-run.
func (s *Scheduler) run(job string) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("Pánico en la tarea de alertas", "job", job, "panic", rec)
		}
	}()

	ctx := context.Background()
	period := CurrentPeriod(time.Now())
	log := slog.With("job", job, "period", period)

	log.Info("Ejecutando verificación de pagos atrasados")

	members, err := s.finder.FindOverdue(ctx, period)
	if err != nil {
		log.Error("No se pudo calcular la morosidad", "error", err)
		return
	}

	if len(members) == 0 {
		log.Info("Sin pagos atrasados")
		return
	}

	outcome := s.sender.SendBulk(ctx, members, period)
	log.Info("Recordatorios procesados",
		"total", len(members),
		"sent", outcome.Sent,
		"failed", outcome.Failed,
		"no_email", outcome.NoEmail,
	)
}
