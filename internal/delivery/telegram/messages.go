// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vefforritun/vef2-2025-v2-synilausn/internal/service"
)

const (
	msgNewQuestion = "Ný spurning til yfirferðar"
	msgCategory    = "Flokkur"
	correctMark    = "✅"
	wrongMark      = "▫️"
)

// esc escapes plain text for HTML parse mode.
func esc(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeHTML, s)
}

func bold(s string) string {
	return "<b>" + s + "</b>"
}

// newHTMLMessage creates a message with HTML parse mode.
func newHTMLMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	return msg
}

// formatSubmission builds the moderator message for an accepted question.
// Category names are stored HTML-escaped and are used as is.
func formatSubmission(s service.Submission) string {
	var sb strings.Builder

	sb.WriteString(bold(esc(msgNewQuestion)))
	sb.WriteString(fmt.Sprintf(" #%d\n", s.QuestionID))
	sb.WriteString(fmt.Sprintf("%s: %s\n\n", msgCategory, bold(s.Category.Name)))

	sb.WriteString(esc(s.Question))
	sb.WriteString("\n\n")

	for i, answer := range s.Answers {
		mark := wrongMark
		if i == s.Correct {
			mark = correctMark
		}
		sb.WriteString(fmt.Sprintf("%s %d. %s\n", mark, i+1, esc(answer)))
	}

	return strings.TrimRight(sb.String(), "\n")
}
