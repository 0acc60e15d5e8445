// Package app builds the bot process from configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/jackwardell/partypeople/external/footballapi"
	"github.com/jackwardell/partypeople/external/telegram"
	"github.com/jackwardell/partypeople/internal/config"
	"github.com/jackwardell/partypeople/internal/domain/digest"
	"github.com/jackwardell/partypeople/internal/domain/sweepstake"
	"github.com/jackwardell/partypeople/internal/infrastructure/drawfile"
	"github.com/jackwardell/partypeople/internal/interfaces/bot"
	"github.com/jackwardell/partypeople/internal/interfaces/httpapi"
	"github.com/jackwardell/partypeople/internal/interfaces/scheduler"
	"github.com/jackwardell/partypeople/internal/platform/logging"
	"github.com/jackwardell/partypeople/internal/platform/resilience"
	"github.com/jackwardell/partypeople/internal/usecase"
)

const (
	telegramMaxRetries = 2
	shutdownTimeout    = 10 * time.Second
)

// App owns the long-running parts of the bot: the HTTP server, the cron
// scheduler and, when Telegram is enabled, the update poller.
type App struct {
	cfg       config.Config
	logger    *logging.Logger
	repos     repositories
	jobs      *usecase.JobService
	server    *http.Server
	scheduler *scheduler.Scheduler
	poller    *bot.Poller
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	prizes, err := sweepstake.PrizesWithOverrides(cfg.PrizeByKind)
	if err != nil {
		return nil, fmt.Errorf("prizes: %w", err)
	}

	repos, err := openRepositories(cfg)
	if err != nil {
		return nil, err
	}

	provider := footballapi.NewClient(footballapi.ClientConfig{
		BaseURL:    cfg.FootballAPIBaseURL,
		Host:       cfg.FootballAPIHost,
		APIKey:     cfg.FootballAPIKey,
		LeagueID:   cfg.FootballAPILeagueID,
		Season:     cfg.FootballAPISeason,
		Timeout:    cfg.FootballAPITimeout,
		MaxRetries: cfg.FootballAPIMaxRetries,
		PageDelay:  cfg.FootballAPIPageDelay,
		Logger:     logger.Named("footballapi"),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FootballAPICircuitEnabled,
			FailureThreshold: cfg.FootballAPICircuitFailures,
			OpenTimeout:      cfg.FootballAPICircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FootballAPICircuitHalfOpenMax,
		},
	})

	// Interface values stay nil without Telegram so services report the
	// dependency as unavailable.
	var (
		tg        *telegram.Client
		members   usecase.MemberSource
		publisher usecase.ChatPublisher
	)
	if cfg.TelegramEnabled {
		tg = telegram.NewClient(telegram.ClientConfig{
			BaseURL:    cfg.TelegramBaseURL,
			Token:      cfg.TelegramBotToken,
			ChatID:     cfg.TelegramChatID,
			MaxRetries: telegramMaxRetries,
			Logger:     logger.Named("telegram"),
		})
		members, publisher = tg, tg
	}

	calendar := digest.NewCalendar(nil, cfg.DisplayLocation)
	digests := usecase.NewDigestService(repos.teams, repos.fixtures, repos.users, calendar, digest.RandomInsult, logger)
	sweepstakes := usecase.NewSweepstakeService(repos.teams, repos.players, repos.fixtures, repos.draws, repos.users, prizes, logger)
	ingestion := usecase.NewIngestionService(
		provider,
		members,
		drawfile.NewLoader(cfg.DrawsFile),
		repos.users,
		repos.teams,
		repos.draws,
		repos.fixtures,
		repos.players,
		repos.flusher,
		usecase.IngestionConfig{Workers: cfg.IngestWorkers},
		logger,
	)
	jobs := usecase.NewJobService(ingestion, digests, publisher, logger)

	sched, err := scheduler.New(jobs, scheduler.Config{
		MorningSpec: cfg.MorningCron,
		EveningSpec: cfg.EveningCron,
		IngestSpec:  cfg.IngestCron,
		Debug:       cfg.SchedulerDebug,
	}, logger.Named("scheduler"))
	if err != nil {
		_ = repos.close()
		return nil, fmt.Errorf("scheduler: %w", err)
	}

	handler := httpapi.NewHandler(digests, sweepstakes, jobs, logger)
	router := httpapi.NewRouter(handler, httpapi.RouterConfig{
		ServiceName:        cfg.ServiceName,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		InternalJobToken:   cfg.InternalJobToken,
	}, logger.Named("http"))

	a := &App{
		cfg:    cfg,
		logger: logger,
		repos:  repos,
		jobs:   jobs,
		server: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		scheduler: sched,
	}

	if tg != nil {
		commands := bot.NewRouter(digests, sweepstakes, digest.RandomInsult, logger.Named("bot"))
		a.poller = bot.NewPoller(tg, commands, ingestion, bot.PollerConfig{
			ChatID:      cfg.TelegramChatID,
			PollTimeout: cfg.TelegramPollTimeout,
		}, logger.Named("bot"))
	}

	return a, nil
}

// Run blocks until ctx is cancelled or a component fails, then drains the
// HTTP server. Call Close afterwards.
func (a *App) Run(ctx context.Context) error {
	if a.cfg.IngestOnStart {
		if _, err := a.jobs.Ingest(ctx); err != nil {
			a.logger.ErrorContext(ctx, "startup ingest failed", "error", err)
		}
	}

	a.scheduler.Start(ctx)

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		a.logger.InfoContext(ctx, "http server starting", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	if a.poller != nil {
		p.Go(a.poller.Run)
	}
	p.Go(func(ctx context.Context) error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		a.logger.InfoContext(shutdownCtx, "http server stopped")
		return nil
	})

	return p.Wait()
}

// Close waits for in-flight jobs until ctx expires and releases storage.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if err := a.scheduler.Stop(ctx); err != nil {
		errs = append(errs, fmt.Errorf("scheduler stop: %w", err))
	}
	if err := a.repos.close(); err != nil {
		errs = append(errs, fmt.Errorf("close db: %w", err))
	}
	return errors.Join(errs...)
}
