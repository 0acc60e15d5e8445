// Package bot answers the group chat's slash commands.
package bot

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jackwardell/partypeople/external/telegram"
	"github.com/jackwardell/partypeople/internal/domain/digest"
	"github.com/jackwardell/partypeople/internal/platform/logging"
	"github.com/jackwardell/partypeople/internal/usecase"
)

const (
	CommandInsult           = "insult"
	CommandMyTeams          = "myteams"
	CommandMyMatches        = "mymatches"
	CommandMyLiveMatches    = "mylivematches"
	CommandMyPastMatches    = "mypastmatches"
	CommandMatchesToday     = "matchestoday"
	CommandMatchesTomorrow  = "matchestomorrow"
	CommandMatchesYesterday = "matchesyesterday"
	CommandCategories       = "categories"
	CommandWhoHas           = "whohas"
)

const (
	replyMissingTeam  = "Please provide a team name (and spell it properly)"
	replyNoCategories = "No results yet, the categories open after the first full time whistle"
	replyTiedUp       = "Too close to call, the categories are tied up for now 🤷"
	replyOwnerMissing = "Some of those teams have no owner yet, everyone needs to say hi in the chat first 👋"
	replyFailure      = "Something went wrong, try again in a bit 🤕"
)

type handlerFunc func(ctx context.Context, msg telegram.Message, args []string) (string, error)

type route struct {
	description string
	handle      handlerFunc
}

// Router maps commands to replies. It is safe for concurrent use.
type Router struct {
	digests     *usecase.DigestService
	sweepstakes *usecase.SweepstakeService
	insult      func() string
	logger      *logging.Logger
	routes      map[string]route
	order       []string
}

func NewRouter(digests *usecase.DigestService, sweepstakes *usecase.SweepstakeService, insult func() string, logger *logging.Logger) *Router {
	if insult == nil {
		insult = digest.RandomInsult
	}
	if logger == nil {
		logger = logging.Default()
	}

	r := &Router{
		digests:     digests,
		sweepstakes: sweepstakes,
		insult:      insult,
		logger:      logger,
		routes:      make(map[string]route),
	}
	r.register(CommandInsult, "get a random insult, or tag someone to insult them", r.handleInsult)
	r.register(CommandMyTeams, "see your teams", r.userReply(digest.UserContext.TeamsMessage))
	r.register(CommandMyMatches, "see your upcoming matches", r.userReply(digest.UserContext.MatchesMessage))
	r.register(CommandMyLiveMatches, "see your matches being played now", r.userReply(digest.UserContext.LiveMatchesMessage))
	r.register(CommandMyPastMatches, "see your past matches", r.userReply(digest.UserContext.PastMatchesMessage))
	r.register(CommandMatchesToday, "see all matches today", r.dateReply(0))
	r.register(CommandMatchesTomorrow, "see all matches tomorrow", r.dateReply(1))
	r.register(CommandMatchesYesterday, "see all matches yesterday", r.dateReply(-1))
	r.register(CommandCategories, "see sweepstake categories", r.handleCategories)
	r.register(CommandWhoHas, "see who has what team", r.handleWhoHas)
	return r
}

func (r *Router) register(command, description string, fn handlerFunc) {
	r.routes[command] = route{description: description, handle: fn}
	r.order = append(r.order, command)
}

// Commands lists the menu published with setMyCommands, in registration order.
func (r *Router) Commands() []telegram.BotCommand {
	out := make([]telegram.BotCommand, 0, len(r.order))
	for _, command := range r.order {
		out = append(out, telegram.BotCommand{Command: command, Description: r.routes[command].description})
	}
	return out
}

// Handle returns the reply for a command message. handled is false for
// plain text and unknown commands.
func (r *Router) Handle(ctx context.Context, msg telegram.Message) (reply string, handled bool) {
	command, args, ok := telegram.CommandArgs(msg.Text)
	if !ok {
		return "", false
	}
	rt, ok := r.routes[command]
	if !ok {
		return "", false
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.ErrorContext(ctx, "panic recovered", "command", command, "chat_id", msg.Chat.ID, "panic", rec)
			reply, handled = replyFailure, true
		}
	}()

	start := time.Now()
	reply, err := rt.handle(ctx, msg, args)
	if err != nil {
		r.logger.ErrorContext(ctx, "bot command failed", "command", command, "chat_id", msg.Chat.ID, "error", err)
		return replyFailure, true
	}
	r.logger.DebugContext(ctx, "bot command handled", "command", command, "duration", time.Since(start))
	return reply, true
}

func (r *Router) handleInsult(_ context.Context, msg telegram.Message, args []string) (string, error) {
	if len(args) > 0 && len(msg.Entities) > 1 {
		mention := msg.Entities[1]
		if mention.Type == telegram.EntityTextMention && mention.User != nil {
			return mention.User.ToDomain().Tag() + " you are a " + r.insult(), nil
		}
	}
	return r.insult(), nil
}

func (r *Router) userReply(render func(digest.UserContext) string) handlerFunc {
	return func(ctx context.Context, msg telegram.Message, _ []string) (string, error) {
		if msg.From == nil {
			return "", errors.New("command message has no sender")
		}
		uc, err := r.digests.UserContext(ctx, msg.From.ID)
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			return "You have no teams you absolute " + r.insult(), nil
		case errors.Is(err, usecase.ErrEntryNotFound):
			r.logger.WarnContext(ctx, "user fixtures reference unknown entries", "user_id", msg.From.ID, "error", err)
			return replyOwnerMissing, nil
		case err != nil:
			return "", err
		}
		return render(uc), nil
	}
}

func (r *Router) dateReply(offsetDays int) handlerFunc {
	return func(ctx context.Context, _ telegram.Message, _ []string) (string, error) {
		dc, err := r.digests.DateContext(ctx, r.digests.Today().AddDate(0, 0, offsetDays))
		if err != nil {
			return "", err
		}
		return dc.Message(), nil
	}
}

func (r *Router) handleCategories(ctx context.Context, _ telegram.Message, _ []string) (string, error) {
	sc, err := r.sweepstakes.SweepstakeContext(ctx)
	switch {
	case errors.Is(err, usecase.ErrInsufficientData):
		return replyNoCategories, nil
	case errors.Is(err, usecase.ErrAmbiguousResult):
		r.logger.WarnContext(ctx, "sweepstake categories are ambiguous", "error", err)
		return replyTiedUp, nil
	case err != nil:
		return "", err
	}
	return sc.Message(), nil
}

func (r *Router) handleWhoHas(ctx context.Context, _ telegram.Message, args []string) (string, error) {
	teamName := titleCase(strings.Join(args, " "))
	if teamName == "" {
		return replyMissingTeam, nil
	}

	owner, err := r.digests.WhoHas(ctx, teamName)
	switch {
	case errors.Is(err, usecase.ErrEntryNotFound):
		return "Nobody has " + teamName, nil
	case errors.Is(err, usecase.ErrInvalidInput):
		return replyMissingTeam, nil
	case err != nil:
		return "", err
	}
	return owner.Tag() + " has " + teamName, nil
}

// titleCase matches stored team names such as "South Korea". A Caser is not
// safe to share, so one is built per call.
func titleCase(s string) string {
	return cases.Title(language.English).String(strings.TrimSpace(s))
}
