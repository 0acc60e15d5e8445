package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackwardell/partypeople/internal/config"
	"github.com/jackwardell/partypeople/internal/domain/sweepstake"
	"github.com/jackwardell/partypeople/internal/platform/logging"
	"github.com/jackwardell/partypeople/internal/usecase"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:          config.EnvDev,
		ServiceName:     "partypeople-bot",
		HTTPAddr:        "127.0.0.1:0",
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    5 * time.Second,
		StorageDriver:   config.StorageDriverMemory,
		CacheEnabled:    true,
		CacheTTL:        time.Minute,
		DisplayLocation: time.UTC,
		MorningCron:     "0 8 * * *",
		EveningCron:     "0 22 * * *",
		IngestWorkers:   2,
	}
}

func TestNew_MemoryWithoutTelegram(t *testing.T) {
	a, err := New(memoryConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	t.Cleanup(func() { _ = a.Close(context.Background()) })

	if a.poller != nil {
		t.Fatalf("expected no poller without telegram")
	}
	if a.repos.flusher == nil {
		t.Fatalf("expected cache flusher when caching is enabled")
	}
	if got := len(a.scheduler.Entries()); got != 2 {
		t.Fatalf("expected 2 scheduled jobs, got %d", got)
	}

	_, err = a.jobs.Run(context.Background(), usecase.JobMorningDigest)
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected dependency unavailable without telegram, got %v", err)
	}
}

func TestNew_WithTelegramBuildsPoller(t *testing.T) {
	cfg := memoryConfig()
	cfg.TelegramEnabled = true
	cfg.TelegramBotToken = "123:abc"
	cfg.TelegramChatID = -100

	a, err := New(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	t.Cleanup(func() { _ = a.Close(context.Background()) })

	if a.poller == nil {
		t.Fatalf("expected poller when telegram is enabled")
	}
}

func TestNew_RejectsBadConfig(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   error
	}{
		{
			name:   "unknown prize kind",
			mutate: func(c *config.Config) { c.PrizeByKind = map[string]int64{"tallest": 5} },
			want:   sweepstake.ErrUnknownPrizeKind,
		},
		{
			name:   "bad cron spec",
			mutate: func(c *config.Config) { c.EveningCron = "every evening" },
			want:   usecase.ErrInvalidInput,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := memoryConfig()
			tc.mutate(&cfg)
			if _, err := New(cfg, logging.NewNop()); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	t.Run("unknown storage driver", func(t *testing.T) {
		cfg := memoryConfig()
		cfg.StorageDriver = "sqlite"
		if _, err := New(cfg, logging.NewNop()); err == nil {
			t.Fatalf("expected storage driver error")
		}
	})

	t.Run("empty http addr", func(t *testing.T) {
		cfg := memoryConfig()
		cfg.HTTPAddr = ""
		if _, err := New(cfg, logging.NewNop()); err == nil {
			t.Fatalf("expected http addr error")
		}
	})
}

func TestApp_RunReturnsOnCancel(t *testing.T) {
	a, err := New(memoryConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("run did not return after cancel")
	}

	if err := a.Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}
}
