package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/exp/slog"
)

const (
	ParseModeHTML = "HTML"
	DiceEmoji     = "🎲"
)

// Client is a thin request composer over the Bot API. Transport and API-level
// failures are returned to the caller, the webhook handler owns the policy of
// converting them into success-shaped acks.
type Client struct {
	log   *slog.Logger
	http  *resty.Client
	token string
}

func NewClient(log *slog.Logger, apiURL string, token string, timeout time.Duration) *Client {
	return &Client{
		log:   log,
		http:  resty.New().SetBaseURL(apiURL).SetTimeout(timeout),
		token: token,
	}
}

type sendMessageRequest struct {
	ChatID      int64       `json:"chat_id"`
	Text        string      `json:"text"`
	ParseMode   string      `json:"parse_mode,omitempty"`
	ReplyMarkup interface{} `json:"reply_markup,omitempty"`
}

type sendDiceRequest struct {
	ChatID int64  `json:"chat_id"`
	Emoji  string `json:"emoji,omitempty"`
}

type apiEnvelope struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

func (c *Client) SendMessage(
	ctx context.Context,
	chatID int64,
	text string,
	parseMode string,
	replyMarkup interface{},
) (json.RawMessage, error) {
	const op = "telegram.client.SendMessage"

	return c.call(ctx, op, "sendMessage", sendMessageRequest{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   parseMode,
		ReplyMarkup: replyMarkup,
	})
}

func (c *Client) SendDice(ctx context.Context, chatID int64, emoji string) (json.RawMessage, error) {
	const op = "telegram.client.SendDice"

	return c.call(ctx, op, "sendDice", sendDiceRequest{
		ChatID: chatID,
		Emoji:  emoji,
	})
}

func (c *Client) call(ctx context.Context, op string, method string, body interface{}) (json.RawMessage, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(fmt.Sprintf("/bot%s/%s", c.token, method))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var envelope apiEnvelope

	if err = json.Unmarshal(res.Body(), &envelope); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !envelope.OK {
		c.log.Error("telegram api call failed",
			slog.String("method", method),
			slog.String("description", envelope.Description))

		return nil, fmt.Errorf("%s: telegram api: %s", op, envelope.Description)
	}

	return json.RawMessage(res.Body()), nil
}
