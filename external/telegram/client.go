// Package telegram is a small Bot API client covering what the sweepstake bot uses.
package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"

	"github.com/jackwardell/partypeople/internal/domain/user"
	"github.com/jackwardell/partypeople/internal/platform/logging"
)

const (
	defaultBaseURL = "https://api.telegram.org"
	parseMode      = "Markdown"
	maxRetryAfter  = 30 * time.Second
)

var errTransient = crerr.New("telegram transient failure")

type ClientConfig struct {
	BaseURL    string
	Token      string
	ChatID     int64
	Timeout    time.Duration
	MaxRetries int
	Logger     *logging.Logger
}

type Client struct {
	http       *fasthttp.Client
	baseURL    string
	token      string
	chatID     int64
	timeout    time.Duration
	maxRetries int
	logger     *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		http: &fasthttp.Client{
			Name:                "partypeople-bot",
			MaxIdleConnDuration: 90 * time.Second,
		},
		baseURL:    baseURL,
		token:      strings.TrimSpace(cfg.Token),
		chatID:     cfg.ChatID,
		timeout:    timeout,
		maxRetries: max(cfg.MaxRetries, 0),
		logger:     logger,
	}
}

func (c *Client) ChatID() int64 {
	return c.chatID
}

// SendMessage posts text to the configured group chat and returns the new message id.
func (c *Client) SendMessage(ctx context.Context, text string) (int64, error) {
	return c.SendMessageTo(ctx, c.chatID, 0, text)
}

// ReplyMessage posts text to the group chat as a reply to replyToMessageID.
func (c *Client) ReplyMessage(ctx context.Context, replyToMessageID int64, text string) (int64, error) {
	return c.SendMessageTo(ctx, c.chatID, replyToMessageID, text)
}

// SendMessageTo posts Markdown text to chatID. replyTo is ignored when zero.
func (c *Client) SendMessageTo(ctx context.Context, chatID, replyTo int64, text string) (int64, error) {
	payload := map[string]any{
		"chat_id":    chatID,
		"text":       text,
		"parse_mode": parseMode,
	}
	if replyTo > 0 {
		payload["reply_to_message_id"] = replyTo
		payload["allow_sending_without_reply"] = true
	}

	var msg Message
	if err := c.call(ctx, "sendMessage", payload, c.timeout, &msg); err != nil {
		return 0, fmt.Errorf("send message chat_id=%d: %w", chatID, err)
	}
	return msg.MessageID, nil
}

// GetUpdates long-polls for messages after offset.
func (c *Client) GetUpdates(ctx context.Context, offset int64, pollTimeout time.Duration) ([]Update, error) {
	seconds := int(pollTimeout / time.Second)
	payload := map[string]any{
		"offset":          offset,
		"timeout":         max(seconds, 0),
		"allowed_updates": []string{"message"},
	}

	var updates []Update
	if err := c.call(ctx, "getUpdates", payload, c.timeout+pollTimeout, &updates); err != nil {
		return nil, fmt.Errorf("get updates offset=%d: %w", offset, err)
	}
	return updates, nil
}

func (c *Client) SetMyCommands(ctx context.Context, commands []BotCommand) error {
	var ok bool
	if err := c.call(ctx, "setMyCommands", map[string]any{"commands": commands}, c.timeout, &ok); err != nil {
		return fmt.Errorf("set bot commands: %w", err)
	}
	return nil
}

// FetchMembers lists the human administrators of the group chat. The Bot API
// exposes no full member listing, so other members register on first message.
func (c *Client) FetchMembers(ctx context.Context) ([]user.User, error) {
	var members []chatMember
	if err := c.call(ctx, "getChatAdministrators", map[string]any{"chat_id": c.chatID}, c.timeout, &members); err != nil {
		return nil, fmt.Errorf("get chat administrators chat_id=%d: %w", c.chatID, err)
	}

	out := make([]user.User, 0, len(members))
	for _, m := range members {
		if m.User.IsBot {
			continue
		}
		out = append(out, m.User.ToDomain())
	}
	return out, nil
}

func (c *Client) call(ctx context.Context, method string, payload any, timeout time.Duration, result any) error {
	if c.token == "" {
		return crerr.New("telegram bot token is not configured")
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		return crerr.Wrapf(err, "encode %s payload", method)
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		wait, err := c.do(ctx, method, buf.B, timeout, result)
		if err == nil {
			return nil
		}
		lastErr = err
		if !crerr.Is(err, errTransient) || attempt == c.maxRetries {
			break
		}
		if wait <= 0 {
			wait = time.Duration(attempt+1) * time.Second
		}
		if err := sleep(ctx, wait); err != nil {
			return err
		}
	}

	c.logger.WarnContext(ctx, "telegram request failed", "method", method, "error", lastErr)
	return lastErr
}

// do performs one request and returns any retry_after hint from the API.
func (c *Client) do(ctx context.Context, method string, body []byte, timeout time.Duration, result any) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + "/bot" + c.token + "/" + method)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(body)

	deadline := time.Now().Add(timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		return 0, crerr.Mark(crerr.Newf("%s request: %s", method, c.redact(err.Error())), errTransient)
	}

	var envelope apiResponse[rawResult]
	if err := sonic.Unmarshal(resp.Body(), &envelope); err != nil {
		status := resp.StatusCode()
		if status == fasthttp.StatusTooManyRequests || status >= fasthttp.StatusInternalServerError {
			return 0, crerr.Mark(crerr.Newf("%s status=%d", method, status), errTransient)
		}
		return 0, crerr.Wrapf(err, "decode %s response status=%d", method, status)
	}
	if !envelope.OK {
		apiErr := crerr.Newf("%s failed: error_code=%d description=%s", method, envelope.ErrorCode, envelope.Description)
		if envelope.ErrorCode == fasthttp.StatusTooManyRequests || envelope.ErrorCode >= fasthttp.StatusInternalServerError {
			retryAfter := min(time.Duration(envelope.Parameters.RetryAfter)*time.Second, maxRetryAfter)
			return retryAfter, crerr.Mark(apiErr, errTransient)
		}
		return 0, apiErr
	}

	if result == nil || len(envelope.Result) == 0 {
		return 0, nil
	}
	if err := sonic.Unmarshal(envelope.Result, result); err != nil {
		return 0, crerr.Wrapf(err, "decode %s result", method)
	}
	return 0, nil
}

func (c *Client) redact(text string) string {
	if c.token == "" {
		return text
	}
	return strings.ReplaceAll(text, c.token, "REDACTED")
}

// rawResult holds the result field undecoded until the envelope reports ok.
type rawResult []byte

func (r *rawResult) UnmarshalJSON(data []byte) error {
	*r = append((*r)[:0], data...)
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// CommandArgs splits "/whohas@partybot south korea" into ("whohas", ["south", "korea"]).
// ok is false when text is not a command.
func CommandArgs(text string) (command string, args []string, ok bool) {
	fields := strings.Fields(strings.TrimSpace(text))
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return "", nil, false
	}
	command = strings.TrimPrefix(fields[0], "/")
	if at := strings.IndexByte(command, '@'); at >= 0 {
		command = command[:at]
	}
	if command == "" {
		return "", nil, false
	}
	return strings.ToLower(command), fields[1:], true
}
