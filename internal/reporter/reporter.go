// Package reporter forwards operational failures to a Telegram admin chat.
package reporter

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/0x0BSoD/newsBoard/internal/logging"
)

const maxMessageLen = 4000

type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Reporter is nil-safe: with a nil receiver or a zero chat ID Notify does nothing.
type Reporter struct {
	bot    Sender
	chatID int64
}

func New(bot Sender, chatID int64) *Reporter {
	return &Reporter{bot: bot, chatID: chatID}
}

// NewTelegram connects to the bot API with token.
func NewTelegram(token string, chatID int64) (*Reporter, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return New(bot, chatID), nil
}

func (r *Reporter) Notify(msg string) {
	if r == nil || r.bot == nil || r.chatID == 0 {
		return
	}
	if runes := []rune(msg); len(runes) > maxMessageLen {
		msg = string(runes[:maxMessageLen])
	}
	if _, err := r.bot.Send(tgbotapi.NewMessage(r.chatID, msg)); err != nil {
		logging.Error().Err(err).Int64("chat_id", r.chatID).Msg("failed to send error notification")
	}
}
