package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"NewsGuard/internal/config"
	"NewsGuard/internal/domain"
	"NewsGuard/internal/features"
	"NewsGuard/internal/infrastructure/corpus"
	"NewsGuard/internal/infrastructure/extractor"
	"NewsGuard/internal/infrastructure/scheduler"
	"NewsGuard/internal/infrastructure/storage"
	"NewsGuard/internal/logging"
	"NewsGuard/internal/model"
	"NewsGuard/internal/ports"
	"NewsGuard/internal/textproc"
	"NewsGuard/internal/transport/httpapi"
	"NewsGuard/internal/usecase"
)

// Application wires configuration into the detection and training use
// cases and runs the HTTP server.
type Application struct {
	cfg       config.Config
	logger    *slog.Logger
	server    *http.Server
	scheduler *usecase.RetrainScheduler
	history   *storage.SQLiteHistory
}

// New builds a runnable application instance. It loads the persisted
// model when one exists; a missing model just means detection returns
// "not trained" until the first training run.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	cleaner := textproc.NewCleaner(textproc.DefaultOptions())
	lexical := features.NewLexicalExtractor()
	store := model.NewFileStore(cfg.Model.Path)
	models := model.NewHandle()

	switch m, err := store.Load(); {
	case err == nil:
		models.Swap(m)
		baseLogger.Info("model loaded", "trained_at", m.Meta.TrainedAt, "accuracy", m.Meta.Accuracy)
	case errors.Is(err, domain.ErrModelNotFound):
		baseLogger.Info("no trained model yet", "path", cfg.Model.Path)
	default:
		return nil, fmt.Errorf("load model: %w", err)
	}

	var history *storage.SQLiteHistory
	if cfg.History.Path != "" {
		var err error
		history, err = storage.Open(cfg.History.Path)
		if err != nil {
			return nil, fmt.Errorf("open history: %w", err)
		}
	}

	detector := usecase.NewDetector(
		usecase.DetectorConfig{
			MinTextLength:    cfg.Detection.MinTextLength,
			MaxTextLength:    cfg.Detection.MaxTextLength,
			RejectNonEnglish: cfg.Detection.RejectNonEnglish,
		},
		cleaner, lexical, models, historyOrNil(history),
		baseLogger.With("component", "detector"),
	)

	trainer := usecase.NewTrainer(
		usecase.TrainerConfig{
			Vectorizer:    cfg.Model.VectorizerOptions(),
			Forest:        cfg.Model.ForestParams(),
			EvalRatio:     cfg.Training.EvalRatio,
			Seed:          cfg.Model.Seed,
			AppendLexical: cfg.Model.AppendLexicalFeatures,
		},
		corpus.NewCSVSource(cfg.Training.FakeCSV, cfg.Training.TrueCSV),
		cleaner, lexical, store, models,
		baseLogger.With("component", "trainer"),
	)

	if cfg.Server.APIKey == "" {
		baseLogger.Warn("api key not configured, authentication disabled")
	}

	api := httpapi.NewServer(
		httpapi.ServerConfig{
			APIKey:        cfg.Server.APIKey,
			RatePerMinute: cfg.Server.RatePerMinute,
			RateBurst:     cfg.Server.RateBurst,
		},
		detector, trainer,
		extractor.NewHTTPExtractor(nil),
		historyOrNil(history),
		models,
		baseLogger.With("component", "httpapi"),
	)

	var retrain *usecase.RetrainScheduler
	if cfg.Scheduler.CronExpression != "" {
		driver := scheduler.NewCronScheduler(cfg.Scheduler.CronExpression, cfg.Scheduler.Location())
		retrain = usecase.NewRetrainScheduler(driver, trainer, baseLogger.With("component", "scheduler"))
	}

	return &Application{
		cfg:       cfg,
		logger:    baseLogger,
		server:    &http.Server{Addr: cfg.Server.Addr, Handler: api.Handler()},
		scheduler: retrain,
		history:   history,
	}, nil
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (a *Application) Run(ctx context.Context) error {
	if a.scheduler != nil {
		if err := a.scheduler.Start(ctx); err != nil {
			return fmt.Errorf("start scheduler: %w", err)
		}
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("listening", "addr", a.cfg.Server.Addr)
		errCh <- a.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if a.scheduler != nil {
		_ = a.scheduler.Stop(shutdownCtx)
	}
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if a.history != nil {
		_ = a.history.Close()
	}
	return nil
}

// historyOrNil keeps a typed-nil *SQLiteHistory out of the interface.
func historyOrNil(h *storage.SQLiteHistory) ports.DetectionHistory {
	if h == nil {
		return nil
	}
	return h
}
