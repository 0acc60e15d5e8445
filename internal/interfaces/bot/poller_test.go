package bot

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jackwardell/partypeople/external/telegram"
	"github.com/jackwardell/partypeople/internal/domain/user"
	"github.com/jackwardell/partypeople/internal/infrastructure/repository/memory"
	"github.com/jackwardell/partypeople/internal/platform/logging"
)

type sentReply struct {
	chatID  int64
	replyTo int64
	text    string
}

type fakeTransport struct {
	mu       sync.Mutex
	batches  [][]telegram.Update
	offsets  []int64
	replies  []sentReply
	commands []telegram.BotCommand
	err      error
}

func (f *fakeTransport) GetUpdates(_ context.Context, offset int64, _ time.Duration) ([]telegram.Update, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.offsets = append(f.offsets, offset)
	if f.err != nil {
		return nil, f.err
	}
	if len(f.batches) == 0 {
		return nil, nil
	}
	batch := f.batches[0]
	f.batches = f.batches[1:]
	return batch, nil
}

func (f *fakeTransport) SendMessageTo(_ context.Context, chatID, replyTo int64, text string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies = append(f.replies, sentReply{chatID: chatID, replyTo: replyTo, text: text})
	return int64(len(f.replies)), nil
}

func (f *fakeTransport) SetMyCommands(_ context.Context, commands []telegram.BotCommand) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commands = commands
	return nil
}

type countingRegistrar struct {
	mu    sync.Mutex
	users []user.User
}

func (c *countingRegistrar) RegisterUser(_ context.Context, u user.User) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.users = append(c.users, u)
	return nil
}

func update(id int64, msg telegram.Message) telegram.Update {
	return telegram.Update{UpdateID: id, Message: &msg}
}

func TestPoller_PollOnceRepliesAndAdvancesOffset(t *testing.T) {
	svc := newServices(t, true)
	transport := &fakeTransport{batches: [][]telegram.Update{{
		update(50, command(alice, "/myteams")),
		update(51, command(bob, "good game lads")),
		{UpdateID: 52},
	}}}
	poller := NewPoller(transport, NewRouter(svc.digests, svc.sweepstakes, fixedInsult, logging.NewNop()), svc.ingestion,
		PollerConfig{ChatID: -100, PollTimeout: time.Second}, logging.NewNop())

	if err := poller.PollOnce(context.Background()); err != nil {
		t.Fatalf("PollOnce error: %v", err)
	}
	if err := poller.PollOnce(context.Background()); err != nil {
		t.Fatalf("second PollOnce error: %v", err)
	}

	if len(transport.replies) != 1 {
		t.Fatalf("expected one reply, got %+v", transport.replies)
	}
	reply := transport.replies[0]
	if reply.chatID != -100 || reply.replyTo != 7 || reply.text != "You have: "+spain.FlagNameFlag() {
		t.Fatalf("unexpected reply: %+v", reply)
	}
	if len(transport.offsets) != 2 || transport.offsets[0] != 0 || transport.offsets[1] != 53 {
		t.Fatalf("unexpected offsets: %v", transport.offsets)
	}
}

func TestPoller_RegistersGroupMembersOnce(t *testing.T) {
	svc := newServices(t, false)
	carol := user.User{ID: 103, FirstName: "Carol"}
	other := command(carol, "hi")
	other.Chat.ID = 555
	transport := &fakeTransport{batches: [][]telegram.Update{
		{update(1, other)},
		{update(2, command(carol, "hello")), update(3, command(carol, "again"))},
	}}
	registrar := &countingRegistrar{}
	poller := NewPoller(transport, NewRouter(svc.digests, svc.sweepstakes, fixedInsult, logging.NewNop()), registrar,
		PollerConfig{ChatID: -100}, logging.NewNop())

	for i := 0; i < 2; i++ {
		if err := poller.PollOnce(context.Background()); err != nil {
			t.Fatalf("PollOnce error: %v", err)
		}
	}

	if len(registrar.users) != 1 || registrar.users[0].ID != carol.ID {
		t.Fatalf("expected carol to be registered once, got %+v", registrar.users)
	}
}

func TestPoller_RegisteredSenderCanQueryTeams(t *testing.T) {
	svc := newServices(t, false)
	carol := user.User{ID: 103, FirstName: "Carol"}
	transport := &fakeTransport{batches: [][]telegram.Update{{update(1, command(carol, "/myteams"))}}}
	poller := NewPoller(transport, NewRouter(svc.digests, svc.sweepstakes, fixedInsult, logging.NewNop()), svc.ingestion,
		PollerConfig{ChatID: -100}, logging.NewNop())

	if err := poller.PollOnce(context.Background()); err != nil {
		t.Fatalf("PollOnce error: %v", err)
	}

	got, exists, err := memory.NewUserRepository(svc.store).GetByID(context.Background(), carol.ID)
	if err != nil || !exists || got.FirstName != "Carol" {
		t.Fatalf("expected carol to be stored, got %+v exists=%v err=%v", got, exists, err)
	}
	if len(transport.replies) != 1 || transport.replies[0].text != "You have no teams you absolute walnut" {
		t.Fatalf("unexpected replies: %+v", transport.replies)
	}
}

func TestPoller_RunPublishesCommandsAndStopsOnCancel(t *testing.T) {
	svc := newServices(t, false)
	transport := &fakeTransport{err: errors.New("bad gateway")}
	poller := NewPoller(transport, NewRouter(svc.digests, svc.sweepstakes, fixedInsult, logging.NewNop()), nil,
		PollerConfig{}, logging.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	var sleeps []time.Duration
	poller.sleep = func(ctx context.Context, d time.Duration) error {
		sleeps = append(sleeps, d)
		if len(sleeps) == 3 {
			cancel()
		}
		return ctx.Err()
	}

	if err := poller.Run(ctx); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(transport.commands) != 10 {
		t.Fatalf("expected command menu to be published, got %d", len(transport.commands))
	}
	if len(sleeps) != 3 || sleeps[0] != time.Second || sleeps[2] != 3*time.Second {
		t.Fatalf("unexpected backoff: %v", sleeps)
	}
}
