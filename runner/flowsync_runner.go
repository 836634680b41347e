// Package runner wires the process together: config, logging, stats,
// the metadata database, the coordination store and the HTTP trigger
// surface.
package runner

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"github.com/rudderlabs/rudder-go-kit/config"
	"github.com/rudderlabs/rudder-go-kit/logger"
	"github.com/rudderlabs/rudder-go-kit/stats"
	svcMetric "github.com/rudderlabs/rudder-go-kit/stats/metric"

	"github.com/streamforge/flowsync/gateway"
	"github.com/streamforge/flowsync/internal/repo"
	"github.com/streamforge/flowsync/internal/sqlmw"
	"github.com/streamforge/flowsync/rruntime"
	"github.com/streamforge/flowsync/services/coordinator"
	"github.com/streamforge/flowsync/sortconfig"
)

// ReleaseInfo holds the release information
type ReleaseInfo struct {
	Version   string
	Commit    string
	BuildDate string
}

type Runner struct {
	releaseInfo ReleaseInfo
	logger      logger.Logger
}

func New(releaseInfo ReleaseInfo) *Runner {
	return &Runner{
		releaseInfo: releaseInfo,
		logger:      logger.NewLogger().Child("runner"),
	}
}

// Run blocks until ctx is canceled or startup fails, and returns the
// process exit code.
func (r *Runner) Run(ctx context.Context) int {
	conf := config.Default

	stats.Default = stats.NewStats(conf, logger.Default, svcMetric.Instance,
		stats.WithServiceName("flowsync"),
		stats.WithServiceVersion(r.releaseInfo.Version),
	)
	if err := stats.Default.Start(ctx, rruntime.GoRoutineFactory); err != nil {
		r.logger.Errorf("failed to start stats: %v", err)
		return 1
	}
	defer stats.Default.Stop()

	db, err := r.setupDatabase(ctx, conf)
	if err != nil {
		r.logger.Errorf("failed to set up metadata database: %v", err)
		return 1
	}
	defer func() { _ = db.Close() }()

	store, err := coordinator.New(conf, r.logger)
	if err != nil {
		r.logger.Errorf("failed to set up coordination store: %v", err)
		return 1
	}
	defer func() { _ = store.Close() }()

	sourceBuilder := sortconfig.NewSourceBuilder(conf, r.logger)
	synthesizer := sortconfig.NewSynthesizer(r.logger, repo.NewField(db), sourceBuilder)
	publisher := sortconfig.NewPublisher(r.logger, stats.Default, store)
	listener := sortconfig.NewListener(conf, r.logger, stats.Default,
		repo.NewGroup(db), repo.NewSink(db), synthesizer, publisher)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", conf.GetInt("Gateway.webPort", 8090)),
		Handler:           gateway.New(r.logger, listener).Handler(),
		ReadHeaderTimeout: conf.GetDuration("Gateway.readHeaderTimeout", 3, time.Second),
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r.logger.Infof("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), conf.GetDuration("Gateway.shutdownTimeout", 10, time.Second))
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		r.logger.Errorf("server terminated: %v", err)
		return 1
	}
	return 0
}

func (r *Runner) setupDatabase(ctx context.Context, conf *config.Config) (*sqlmw.DB, error) {
	psqlInfo := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		conf.GetString("DB.host", "localhost"),
		conf.GetInt("DB.port", 5432),
		conf.GetString("DB.user", "flowsync"),
		conf.GetString("DB.password", ""),
		conf.GetString("DB.name", "flowsync"),
		conf.GetString("DB.sslMode", "disable"),
	)
	db, err := sql.Open("postgres", psqlInfo)
	if err != nil {
		return nil, fmt.Errorf("opening postgres connection: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, conf.GetDuration("DB.connTimeout", 5, time.Second))
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	return sqlmw.New(db,
		sqlmw.WithLogger(r.logger.Child("db")),
		sqlmw.WithSlowQueryThreshold(conf.GetDuration("DB.slowQueryThreshold", 30, time.Second)),
	), nil
}
