package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/vefforritun/vef2-2025-v2-synilausn/internal/service"
)

// Sender is the part of tgbotapi.BotAPI the notifier needs.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// ModeratorNotifier posts accepted submissions to the moderators' chat.
type ModeratorNotifier struct {
	bot    Sender
	chatID int64
	logger *zap.Logger
}

func NewModeratorNotifier(bot Sender, chatID int64, logger *zap.Logger) *ModeratorNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ModeratorNotifier{bot: bot, chatID: chatID, logger: logger}
}

// QuestionSubmitted sends one message describing s.
func (n *ModeratorNotifier) QuestionSubmitted(ctx context.Context, s service.Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := newHTMLMessage(n.chatID, formatSubmission(s))
	sent, err := n.bot.Send(msg)
	if err != nil {
		return fmt.Errorf("send moderator notification: %w", err)
	}

	n.logger.Debug("moderators notified",
		zap.Int64("chat_id", n.chatID),
		zap.Int("message_id", sent.MessageID),
		zap.Int("question_id", s.QuestionID),
	)
	return nil
}

// NewNotifier connects to Telegram when a token and chat id are configured
// and returns a no-op notifier otherwise.
func NewNotifier(token string, chatID int64, logger *zap.Logger) (service.Notifier, error) {
	if token == "" || chatID == 0 {
		return service.NopNotifier{}, nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connect to telegram: %w", err)
	}
	logger.Info("telegram notifier authorized", zap.String("account", bot.Self.UserName))

	return NewModeratorNotifier(bot, chatID, logger), nil
}
