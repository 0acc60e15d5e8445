// Package footballapi reads tournament data from api-football v3 through RapidAPI.
package footballapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/singleflight"

	"github.com/jackwardell/partypeople/internal/domain/fixture"
	"github.com/jackwardell/partypeople/internal/domain/player"
	"github.com/jackwardell/partypeople/internal/domain/team"
	"github.com/jackwardell/partypeople/internal/platform/logging"
	"github.com/jackwardell/partypeople/internal/platform/resilience"
	"github.com/jackwardell/partypeople/internal/usecase"
)

const (
	defaultBaseURL = "https://api-football-v1.p.rapidapi.com/v3"
	defaultHost    = "api-football-v1.p.rapidapi.com"
	maxBodyBytes   = 8 << 20
	// maxPlayerPages bounds paging if the provider misreports its total.
	maxPlayerPages = 200
)

var errTransient = crerr.New("football api transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Host           string
	APIKey         string
	LeagueID       int64
	Season         int
	Timeout        time.Duration
	MaxRetries     int
	PageDelay      time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	host       string
	apiKey     string
	leagueID   int64
	season     int
	maxRetries int
	pageDelay  time.Duration
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
	flight     singleflight.Group
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 30 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = defaultHost
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		host:       host,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		leagueID:   cfg.LeagueID,
		season:     cfg.Season,
		maxRetries: max(cfg.MaxRetries, 0),
		pageDelay:  max(cfg.PageDelay, 0),
		logger:     logger,
		breaker:    resilience.NewCircuitBreaker(resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker), nil),
	}
}

func (c *Client) FetchTeams(ctx context.Context) ([]team.Team, error) {
	var payload envelope[teamItem]
	if err := c.doJSON(ctx, "/teams", c.seasonQuery(), &payload); err != nil {
		return nil, fmt.Errorf("fetch teams league=%d season=%d: %w", c.leagueID, c.season, err)
	}

	out := make([]team.Team, 0, len(payload.Response))
	for _, item := range payload.Response {
		out = append(out, team.Team{
			ID:   item.Team.ID,
			Name: strings.TrimSpace(item.Team.Name),
			Code: strings.TrimSpace(item.Team.Code),
		})
	}
	return out, nil
}

func (c *Client) FetchFixtures(ctx context.Context) ([]fixture.Fixture, error) {
	var payload envelope[fixtureItem]
	if err := c.doJSON(ctx, "/fixtures", c.seasonQuery(), &payload); err != nil {
		return nil, fmt.Errorf("fetch fixtures league=%d season=%d: %w", c.leagueID, c.season, err)
	}

	out := make([]fixture.Fixture, 0, len(payload.Response))
	for _, item := range payload.Response {
		f, err := mapFixture(item)
		if err != nil {
			c.logger.WarnContext(ctx, "skip provider fixture", "fixture_id", item.Fixture.ID, "error", err)
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

// FetchPlayers walks every page of /players for the season.
func (c *Client) FetchPlayers(ctx context.Context) ([]player.Player, error) {
	out := make([]player.Player, 0, 512)
	for page, total := 1, 1; page <= total && page <= maxPlayerPages; page++ {
		if page > 1 {
			if err := c.wait(ctx, c.pageDelay); err != nil {
				return nil, err
			}
		}

		query := c.seasonQuery()
		query.Set("page", strconv.Itoa(page))

		var payload envelope[playerItem]
		if err := c.doJSON(ctx, "/players", query, &payload); err != nil {
			return nil, fmt.Errorf("fetch players page=%d: %w", page, err)
		}
		total = max(payload.Paging.Total, 1)

		for _, item := range payload.Response {
			p, ok := mapPlayer(item)
			if !ok {
				continue
			}
			out = append(out, p)
		}
	}
	return out, nil
}

func (c *Client) seasonQuery() url.Values {
	values := url.Values{}
	values.Set("league", strconv.FormatInt(c.leagueID, 10))
	values.Set("season", strconv.Itoa(c.season))
	return values
}

func (c *Client) doJSON(ctx context.Context, path string, query url.Values, target any) error {
	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "football api circuit breaker rejected request", "state", c.breaker.State())
		return fmt.Errorf("%w: football data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}

	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if isCircuitFailure(reqErr) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return crerr.Wrap(err, "decode provider payload")
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-RapidAPI-Key", c.apiKey)
		req.Header.Set("X-RapidAPI-Host", c.host)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = crerr.Mark(crerr.Wrapf(err, "send request"), errTransient)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = crerr.Mark(crerr.Wrap(readErr, "read response body"), errTransient)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = crerr.Mark(crerr.Newf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw)), errTransient)
			default:
				return nil, crerr.Newf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		if err := c.wait(ctx, time.Duration(attempt+1)*time.Second); err != nil {
			return nil, err
		}
	}

	c.logger.WarnContext(ctx, "football api request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func (c *Client) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func mapFixture(item fixtureItem) (fixture.Fixture, error) {
	kickOff, err := time.Parse(time.RFC3339, strings.TrimSpace(item.Fixture.Date))
	if err != nil {
		return fixture.Fixture{}, fmt.Errorf("parse kick off %q: %w", item.Fixture.Date, err)
	}

	return fixture.Fixture{
		ID:            item.Fixture.ID,
		Status:        fixture.Status(strings.TrimSpace(item.Fixture.Status.Short)),
		HomeTeamID:    item.Teams.Home.ID,
		AwayTeamID:    item.Teams.Away.ID,
		HomeTeam:      item.Teams.Home.Name,
		AwayTeam:      item.Teams.Away.Name,
		HomeGoals:     item.Goals.Home,
		AwayGoals:     item.Goals.Away,
		HomeWinner:    item.Teams.Home.Winner,
		AwayWinner:    item.Teams.Away.Winner,
		KickOff:       kickOff.UTC(),
		VenueCity:     item.Fixture.Venue.City,
		VenueName:     item.Fixture.Venue.Name,
		Round:         item.League.Round,
		HalfTimeHome:  item.Score.HalfTime.Home,
		HalfTimeAway:  item.Score.HalfTime.Away,
		FullTimeHome:  item.Score.FullTime.Home,
		FullTimeAway:  item.Score.FullTime.Away,
		ExtraTimeHome: item.Score.ExtraTime.Home,
		ExtraTimeAway: item.Score.ExtraTime.Away,
		PenaltiesHome: item.Score.Penalty.Home,
		PenaltiesAway: item.Score.Penalty.Away,
	}, nil
}

// mapPlayer reads the first statistics block, which is scoped to the requested league.
func mapPlayer(item playerItem) (player.Player, bool) {
	if len(item.Statistics) == 0 || item.Player.Birth.Date == nil {
		return player.Player{}, false
	}
	dob, err := time.Parse(time.DateOnly, strings.TrimSpace(*item.Player.Birth.Date))
	if err != nil {
		return player.Player{}, false
	}

	stats := item.Statistics[0]
	return player.Player{
		ID:                 item.Player.ID,
		FirstName:          item.Player.FirstName,
		LastName:           item.Player.LastName,
		DateOfBirth:        dob,
		TeamID:             stats.Team.ID,
		YellowCards:        stats.Cards.Yellow,
		YellowThenRedCards: stats.Cards.YellowRed,
		RedCards:           stats.Cards.Red,
		Goals:              stats.Goals.Total,
	}, true
}

func isCircuitFailure(err error) bool {
	return err != nil && crerr.Is(err, errTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
