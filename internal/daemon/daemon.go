package daemon

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/daybreak-app/daybreak/internal/api"
	"github.com/daybreak-app/daybreak/internal/app/progress"
	"github.com/daybreak-app/daybreak/internal/app/rollover"
	"github.com/daybreak-app/daybreak/internal/domain"
	"github.com/daybreak-app/daybreak/internal/health"
	"github.com/daybreak-app/daybreak/internal/infra/metrics"
	"github.com/daybreak-app/daybreak/internal/infra/sqlite"
)

// Daemon is the core Daybreak runtime. It wires together the store, the
// progress engine, the per-user midnight-rollover sessions, and the API.
type Daemon struct {
	Config   Config
	DB       *sqlite.DB
	Engine   *progress.Engine
	Sessions *rollover.SessionManager
	Server   *api.Server
	Health   *health.Checker
	cancel   context.CancelFunc
}

// New creates and initializes a Daemon with all services wired.
func New() (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return NewWithConfig(cfg)
}

// NewWithConfig creates a Daemon with the given configuration.
func NewWithConfig(cfg Config) (*Daemon, error) {
	db, err := sqlite.Open(cfg.Store.Dir)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	d := &Daemon{
		Config: cfg,
		DB:     db,
	}

	d.Engine = progress.NewEngineWithCatalog(db, loadCatalog(cfg))
	d.Sessions = rollover.NewSessionManager(d.onRollover)
	d.Health = health.NewChecker(db, cfg.Store.Dir, cfg.Engine.DefaultTimezone)

	d.Server = api.NewServer(db, d.Engine, d.Sessions, d.Health)
	if cfg.Telemetry.Prometheus {
		d.Server.EnableMetrics()
	}

	return d, nil
}

// loadCatalog reads the user's milestone catalog override from the data
// directory, falling back to the built-in catalog.
func loadCatalog(cfg Config) []domain.Milestone {
	path := filepath.Join(cfg.Store.Dir, "milestones")
	catalog, err := progress.LoadCatalogFile(path)
	if os.IsNotExist(err) {
		return progress.DefaultMilestones()
	}
	if err != nil {
		log.Printf("[daemon] milestone catalog: %v (using built-in catalog)", err)
		return progress.DefaultMilestones()
	}
	log.Printf("[daemon] loaded %d custom milestones from %s", len(catalog), path)
	return catalog
}

// onRollover runs at each user's local midnight: refetch, recompute all
// derived values, and record what changed. The scheduler re-arms itself;
// this callback only has to handle the new day.
func (d *Daemon) onRollover(userID, newDay string) {
	metrics.RolloversFired.Inc()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	summary, err := d.Engine.Summary(ctx, userID, time.Now())
	if err != nil {
		log.Printf("[daemon] rollover recompute for %s failed: %v", userID, err)
		return
	}

	metrics.SummariesComputed.Inc()
	if summary.Pattern != nil {
		metrics.PatternsFlagged.WithLabelValues(string(summary.Pattern.MetricType)).Inc()
	}
	log.Printf("[daemon] rollover user=%s day=%s sobriety_days=%d", userID, newDay, summary.SobrietyDays)
}

// attachSessions arms a midnight scheduler for every stored profile.
func (d *Daemon) attachSessions(ctx context.Context) error {
	profiles, err := d.DB.ListProfiles(ctx)
	if err != nil {
		return fmt.Errorf("list profiles: %w", err)
	}

	for _, p := range profiles {
		tz := p.Timezone
		if tz == "" {
			tz = d.Config.Engine.DefaultTimezone
		}
		if err := d.Sessions.Attach(p.UserID, progress.LoadLocation(tz)); err != nil && err != domain.ErrSessionExists {
			log.Printf("[daemon] attach session for %s: %v", p.UserID, err)
		}
	}
	metrics.SessionsActive.Set(float64(d.Sessions.Active()))
	return nil
}

// openLogFile opens the configured log file for appending. Returns nil
// with no error when no file is configured.
func openLogFile(cfg LoggingConfig) (*os.File, error) {
	if cfg.File == "" {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0700); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// Serve starts the HTTP server and blocks until shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	// Mirror the log to the configured file alongside stderr.
	if f, err := openLogFile(d.Config.Logging); err != nil {
		log.Printf("[daemon] %v (logging to stderr only)", err)
	} else if f != nil {
		defer f.Close()
		log.SetOutput(io.MultiWriter(os.Stderr, f))
	}

	// Health checker (always runs)
	go d.Health.Run(ctx)

	// One rollover session per stored profile
	if err := d.attachSessions(ctx); err != nil {
		log.Printf("[daemon] WARNING: %v (rollover sessions disabled)", err)
	}

	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	// Graceful shutdown on signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		d.Sessions.Close()
		_ = httpServer.Shutdown(shutdownCtx)
		_ = d.DB.Close()
	}()

	fmt.Printf("Daybreak serving on http://%s\n", addr)
	fmt.Printf("  Rollover sessions: %d attached\n", d.Sessions.Active())
	if d.Config.Telemetry.Prometheus {
		fmt.Printf("  Metrics: http://%s/metrics\n", addr)
	}

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close shuts down all daemon resources.
func (d *Daemon) Close() {
	if d.cancel != nil {
		d.cancel()
	}
	if d.Sessions != nil {
		d.Sessions.Close()
	}
	if d.DB != nil {
		_ = d.DB.Close()
	}
}
