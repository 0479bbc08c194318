package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"go.uber.org/fx"

	"github.com/thegab/tiktok-scraper/internal/apify"
	"github.com/thegab/tiktok-scraper/internal/apify/apifyimpl"
	"github.com/thegab/tiktok-scraper/internal/extractor"
	_ "github.com/thegab/tiktok-scraper/internal/migrations"
	"github.com/thegab/tiktok-scraper/internal/notifier/notifierimpl"
	"github.com/thegab/tiktok-scraper/internal/pipeline"
	"github.com/thegab/tiktok-scraper/internal/pipeline/pipelineimpl"
	repositories "github.com/thegab/tiktok-scraper/internal/repositories/fx"
	"github.com/thegab/tiktok-scraper/internal/sink"
	"github.com/thegab/tiktok-scraper/internal/uploader"
	"github.com/thegab/tiktok-scraper/pkg/config"
	"github.com/thegab/tiktok-scraper/pkg/logger"
	"github.com/thegab/tiktok-scraper/pkg/pgx"
)

var Module = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
		pgx.New,
	),
	fx.Provide(
		fx.Annotate(
			apifyimpl.New,
			fx.As(new(apify.Client)),
		),
		fx.Annotate(
			pipelineimpl.New,
			fx.As(new(pipeline.Client)),
		),
		notifierimpl.New,
		uploader.New,
		sink.New,
		newExtractor,
	),
	repositories.Module,
	fx.Invoke(migrate),
	fx.Invoke(run),
)

func newExtractor() *extractor.Extractor {
	return extractor.New(extractor.DefaultLexicon())
}

// migrate applies pending goose migrations before the pipeline starts. The
// migration definitions live in internal/migrations and register themselves
// through the blank import above.
func migrate(cfg *config.Config, log logger.Logger) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return err
	}
	defer db.Close()

	wd, err := os.Getwd()
	if err != nil {
		return err
	}

	if err := goose.Up(db, filepath.Join(wd, "internal", "migrations")); err != nil {
		return err
	}

	log.Info("Migrations applied")
	return nil
}

func run(lc fx.Lifecycle, shutdowner fx.Shutdowner, log logger.Logger, cfg *config.Config, p pipeline.Client) {
	runCtx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			if cfg.App.Mode == "daemon" {
				go startHttpServer(log, cfg)
				return p.ScheduleRuns(runCtx)
			}

			// One-shot mode: run the pipeline and ask fx to wind down.
			go func() {
				if _, err := p.Run(runCtx); err != nil {
					log.Error("Pipeline run failed", "error", err)
				}
				if err := shutdowner.Shutdown(); err != nil {
					log.Error("Failed to trigger shutdown", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}

func startHttpServer(log logger.Logger, cfg *config.Config) {
	http.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		healthCheckHandler(w, r, log)
	})

	log.Info(fmt.Sprintf("Starting server on :%d", cfg.App.Port))

	if err := http.ListenAndServe(fmt.Sprintf(":%d", cfg.App.Port), nil); err != nil {
		log.Error("Server failed to start", "error", err)
	}
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request, logger logger.Logger) {
	logger.Debug("Health check request received", "method", r.Method, "url", r.URL.String())
	w.Header().Set("Content-Type", "text/plain")
	if _, err := w.Write([]byte("ok")); err != nil {
		logger.Error("Failed to write response", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
