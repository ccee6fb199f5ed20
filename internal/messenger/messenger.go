package messenger

import (
	"context"
	"time"

	"github.com/oshokin/patient-monitor/internal/config"
)

// Messenger sends a text message to caregivers.
type Messenger interface {
	Send(ctx context.Context, text string) error
}

// New returns a Telegram messenger when telegram is configured, otherwise a Log messenger.
//
//nolint:ireturn // The concrete channel depends on configuration.
func New(telegram *config.Telegram, timeout time.Duration) Messenger {
	if telegram == nil || telegram.Token == "" {
		return NewLog()
	}

	return NewTelegram(telegram.APIURL, telegram.Token, telegram.ChatID, WithTimeout(timeout))
}
