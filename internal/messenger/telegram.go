package messenger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxResponseSize bounds the Bot API response that is read.
const maxResponseSize = 1 << 20

var errTelegramRejected = errors.New("telegram rejected the message")

// Telegram sends messages through the Telegram Bot API.
type Telegram struct {
	apiURL string
	token  string
	chatID string
	client *http.Client
}

// TelegramOption configures a Telegram messenger.
type TelegramOption func(*Telegram)

// WithTimeout bounds every Bot API request.
func WithTimeout(timeout time.Duration) TelegramOption {
	return func(t *Telegram) {
		if timeout > 0 {
			t.client.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(client *http.Client) TelegramOption {
	return func(t *Telegram) {
		if client != nil {
			t.client = client
		}
	}
}

// NewTelegram creates a messenger posting to chatID with the bot token.
func NewTelegram(apiURL, token, chatID string, opts ...TelegramOption) *Telegram {
	t := &Telegram{
		apiURL: strings.TrimRight(apiURL, "/"),
		token:  token,
		chatID: chatID,
		client: new(http.Client),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// Send posts text with Markdown formatting.
func (t *Telegram) Send(ctx context.Context, text string) error {
	body, err := json.Marshal(sendMessageRequest{
		ChatID:    t.chatID,
		Text:      text,
		ParseMode: "Markdown",
	})
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}

	endpoint := t.apiURL + "/bot" + t.token + "/sendMessage"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		// Strip the URL, it embeds the token.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}

		return fmt.Errorf("send message: %w", err)
	}

	defer func() { _ = resp.Body.Close() }()

	var result sendMessageResponse
	if err = json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&result); err != nil {
		return fmt.Errorf("decode response (HTTP %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusOK || !result.OK {
		return fmt.Errorf("%w: HTTP %d: %s", errTelegramRejected, resp.StatusCode, result.Description)
	}

	return nil
}
