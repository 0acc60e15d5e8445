package bot

import (
	"context"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/jackwardell/partypeople/external/telegram"
	"github.com/jackwardell/partypeople/internal/domain/user"
	"github.com/jackwardell/partypeople/internal/platform/logging"
)

const (
	maxPollBackoff    = 30 * time.Second
	maxConcurrentCmds = 4
)

// Transport is the subset of the Bot API the poller needs.
type Transport interface {
	GetUpdates(ctx context.Context, offset int64, timeout time.Duration) ([]telegram.Update, error)
	SendMessageTo(ctx context.Context, chatID, replyTo int64, text string) (int64, error)
	SetMyCommands(ctx context.Context, commands []telegram.BotCommand) error
}

// Registrar records chat members as they speak.
type Registrar interface {
	RegisterUser(ctx context.Context, u user.User) error
}

type PollerConfig struct {
	ChatID      int64
	PollTimeout time.Duration
}

// Poller long-polls getUpdates and replies to commands. Senders are registered
// in update order; replies within a batch run concurrently and finish before
// the next poll.
type Poller struct {
	transport Transport
	router    *Router
	registrar Registrar
	cfg       PollerConfig
	logger    *logging.Logger
	sleep     func(ctx context.Context, d time.Duration) error

	mu     sync.Mutex
	seen   map[int64]struct{}
	offset int64
}

func NewPoller(transport Transport, router *Router, registrar Registrar, cfg PollerConfig, logger *logging.Logger) *Poller {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = 30 * time.Second
	}

	return &Poller{
		transport: transport,
		router:    router,
		registrar: registrar,
		cfg:       cfg,
		logger:    logger,
		sleep:     sleepContext,
		seen:      make(map[int64]struct{}),
	}
}

// Run blocks until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) error {
	if err := p.transport.SetMyCommands(ctx, p.router.Commands()); err != nil {
		p.logger.WarnContext(ctx, "publish bot commands failed", "error", err)
	}
	p.logger.InfoContext(ctx, "bot poller started", "chat_id", p.cfg.ChatID, "poll_timeout", p.cfg.PollTimeout)

	backoff := time.Duration(0)
	for {
		if ctx.Err() != nil {
			p.logger.InfoContext(context.WithoutCancel(ctx), "bot poller stopped")
			return nil
		}

		if err := p.PollOnce(ctx); err != nil {
			if ctx.Err() != nil {
				continue
			}
			backoff = min(backoff+time.Second, maxPollBackoff)
			p.logger.WarnContext(ctx, "poll updates failed", "error", err, "retry_in", backoff)
			_ = p.sleep(ctx, backoff)
			continue
		}
		backoff = 0
	}
}

// PollOnce fetches one batch of updates and handles it.
func (p *Poller) PollOnce(ctx context.Context) error {
	updates, err := p.transport.GetUpdates(ctx, p.nextOffset(), p.cfg.PollTimeout)
	if err != nil {
		return err
	}

	workers := pool.New().WithMaxGoroutines(maxConcurrentCmds)
	for _, u := range updates {
		p.advance(u.UpdateID)
		if u.Message == nil {
			continue
		}
		msg := *u.Message
		p.register(ctx, msg)
		workers.Go(func() {
			p.reply(ctx, msg)
		})
	}
	workers.Wait()
	return nil
}

func (p *Poller) reply(ctx context.Context, msg telegram.Message) {
	reply, handled := p.router.Handle(ctx, msg)
	if !handled || reply == "" {
		return
	}
	if _, err := p.transport.SendMessageTo(ctx, msg.Chat.ID, msg.MessageID, reply); err != nil {
		p.logger.ErrorContext(ctx, "send bot reply failed", "chat_id", msg.Chat.ID, "message_id", msg.MessageID, "error", err)
	}
}

// register stores group members the first time they are seen in this process.
func (p *Poller) register(ctx context.Context, msg telegram.Message) {
	if p.registrar == nil || msg.From == nil || msg.From.IsBot {
		return
	}
	if p.cfg.ChatID != 0 && msg.Chat.ID != p.cfg.ChatID {
		return
	}

	p.mu.Lock()
	_, known := p.seen[msg.From.ID]
	p.mu.Unlock()
	if known {
		return
	}

	if err := p.registrar.RegisterUser(ctx, msg.From.ToDomain()); err != nil {
		p.logger.WarnContext(ctx, "register chat member failed", "user_id", msg.From.ID, "error", err)
		return
	}
	p.mu.Lock()
	p.seen[msg.From.ID] = struct{}{}
	p.mu.Unlock()
}

func (p *Poller) nextOffset() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.offset
}

func (p *Poller) advance(updateID int64) {
	p.mu.Lock()
	if updateID >= p.offset {
		p.offset = updateID + 1
	}
	p.mu.Unlock()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
