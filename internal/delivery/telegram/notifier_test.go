package telegram

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/vefforritun/vef2-2025-v2-synilausn/internal/domain/entities"
	"github.com/vefforritun/vef2-2025-v2-synilausn/internal/service"
)

func testSubmission() service.Submission {
	return service.Submission{
		QuestionID: 12,
		Question:   "Hvað gerir <div> element?",
		Category:   entities.Category{ID: 1, Name: "HTML &amp; CSS", Slug: "html-amp-css"},
		Answers:    []string{"Býr til blokk", "Ekkert", "Tengil", "Mynd"},
		Correct:    0,
	}
}

func TestFormatSubmission(t *testing.T) {
	got := formatSubmission(testSubmission())

	want := strings.Join([]string{
		"<b>Ný spurning til yfirferðar</b> #12",
		"Flokkur: <b>HTML &amp; CSS</b>",
		"",
		"Hvað gerir &lt;div&gt; element?",
		"",
		"✅ 1. Býr til blokk",
		"▫️ 2. Ekkert",
		"▫️ 3. Tengil",
		"▫️ 4. Mynd",
	}, "\n")

	if got != want {
		t.Errorf("formatSubmission() =\n%s\nwant\n%s", got, want)
	}
}

// fakeTelegram answers the two Bot API methods the notifier uses.
type fakeTelegram struct {
	mu   sync.Mutex
	sent []url.Values
	fail bool
}

func (f *fakeTelegram) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	switch {
	case strings.HasSuffix(r.URL.Path, "/getMe"):
		_, _ = w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"moderator","username":"moderator_bot"}}`))
	case strings.HasSuffix(r.URL.Path, "/sendMessage"):
		if f.fail {
			_, _ = w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`))
			return
		}
		_ = r.ParseForm()
		f.mu.Lock()
		f.sent = append(f.sent, r.PostForm)
		f.mu.Unlock()
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":5,"date":0,"chat":{"id":42,"type":"private"}}}`))
	default:
		http.NotFound(w, r)
	}
}

func newTestBot(t *testing.T, fake *fakeTelegram) *tgbotapi.BotAPI {
	t.Helper()

	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	bot, err := tgbotapi.NewBotAPIWithClient("token", srv.URL+"/bot%s/%s", srv.Client())
	if err != nil {
		t.Fatalf("NewBotAPIWithClient() error = %v", err)
	}
	return bot
}

func TestModeratorNotifierQuestionSubmitted(t *testing.T) {
	fake := &fakeTelegram{}
	notifier := NewModeratorNotifier(newTestBot(t, fake), 42, zap.NewNop())

	if err := notifier.QuestionSubmitted(context.Background(), testSubmission()); err != nil {
		t.Fatalf("QuestionSubmitted() error = %v", err)
	}

	if len(fake.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(fake.sent))
	}
	msg := fake.sent[0]
	if msg.Get("chat_id") != "42" {
		t.Errorf("chat_id = %q, want 42", msg.Get("chat_id"))
	}
	if msg.Get("parse_mode") != tgbotapi.ModeHTML {
		t.Errorf("parse_mode = %q, want %q", msg.Get("parse_mode"), tgbotapi.ModeHTML)
	}
	if msg.Get("text") != formatSubmission(testSubmission()) {
		t.Errorf("text = %q", msg.Get("text"))
	}
}

func TestModeratorNotifierSendFailure(t *testing.T) {
	fake := &fakeTelegram{fail: true}
	notifier := NewModeratorNotifier(newTestBot(t, fake), 42, nil)

	if err := notifier.QuestionSubmitted(context.Background(), testSubmission()); err == nil {
		t.Error("QuestionSubmitted() error = nil, want send failure")
	}
}

func TestModeratorNotifierCancelled(t *testing.T) {
	fake := &fakeTelegram{}
	notifier := NewModeratorNotifier(newTestBot(t, fake), 42, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := notifier.QuestionSubmitted(ctx, testSubmission()); !errors.Is(err, context.Canceled) {
		t.Errorf("QuestionSubmitted() error = %v, want %v", err, context.Canceled)
	}
	if len(fake.sent) != 0 {
		t.Errorf("sent %d messages after cancel, want 0", len(fake.sent))
	}
}

func TestNewNotifierUnconfigured(t *testing.T) {
	for _, tt := range []struct {
		token  string
		chatID int64
	}{
		{"", 42},
		{"token", 0},
	} {
		n, err := NewNotifier(tt.token, tt.chatID, zap.NewNop())
		if err != nil {
			t.Fatalf("NewNotifier() error = %v", err)
		}
		if _, ok := n.(service.NopNotifier); !ok {
			t.Errorf("NewNotifier(%q, %d) = %T, want service.NopNotifier", tt.token, tt.chatID, n)
		}
	}
}
