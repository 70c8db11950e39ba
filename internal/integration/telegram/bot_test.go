package telegram

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/okr-bot/backend/config"
)

// mockTelegramBot implements TelegramBot for testing.
type mockTelegramBot struct {
	mu          sync.Mutex
	updatesChan chan tgbotapi.Update
	stopped     bool
	sent        []tgbotapi.MessageConfig
	failHTML    bool
	sentSignal  chan struct{}
}

func newMockBot() *mockTelegramBot {
	return &mockTelegramBot{
		updatesChan: make(chan tgbotapi.Update, 10),
		sentSignal:  make(chan struct{}, 10),
	}
}

func (m *mockTelegramBot) GetUpdatesChan(_ tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return m.updatesChan
}

func (m *mockTelegramBot) StopReceivingUpdates() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
}

func (m *mockTelegramBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	msg, ok := c.(tgbotapi.MessageConfig)
	if !ok {
		return tgbotapi.Message{}, errors.New("unexpected chattable")
	}
	m.sent = append(m.sent, msg)
	if m.failHTML && msg.ParseMode == tgbotapi.ModeHTML {
		return tgbotapi.Message{}, errors.New("Bad Request: can't parse entities")
	}
	m.sentSignal <- struct{}{}
	return tgbotapi.Message{MessageID: len(m.sent)}, nil
}

func (m *mockTelegramBot) GetSelf() tgbotapi.User {
	return tgbotapi.User{UserName: "okrbot"}
}

func (m *mockTelegramBot) messages() []tgbotapi.MessageConfig {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]tgbotapi.MessageConfig(nil), m.sent...)
}

func newTestBot(t *testing.T, cfg config.TelegramConfig, mock *mockTelegramBot) *Bot {
	t.Helper()
	factory := func(token, apiEndpoint string, client *http.Client) (TelegramBot, error) {
		return mock, nil
	}
	bot, err := NewBotWithFactory(cfg, newTestEnv(t).handler, factory)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return bot
}

func textUpdate(userID int64, userName, text string) tgbotapi.Update {
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			From: &tgbotapi.User{ID: userID, UserName: userName},
			Chat: &tgbotapi.Chat{ID: 99},
			Text: text,
		},
	}
}

func TestNewBot_RequiresToken(t *testing.T) {
	if _, err := NewBot(config.TelegramConfig{}, nil); err == nil {
		t.Error("expected error without token")
	}
}

func TestBot_RepliesToCommands(t *testing.T) {
	mock := newMockBot()
	bot := newTestBot(t, config.TelegramConfig{Token: "fake-token"}, mock)

	if err := bot.Start(context.Background()); err != nil {
		t.Fatalf("Start error: %v", err)
	}
	defer bot.Stop()

	mock.updatesChan <- textUpdate(42, "alice", "/help")

	select {
	case <-mock.sentSignal:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for reply")
	}

	sent := mock.messages()
	if len(sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(sent))
	}
	if sent[0].ChatID != 99 || sent[0].ParseMode != tgbotapi.ModeHTML {
		t.Errorf("unexpected message config: chat=%d mode=%q", sent[0].ChatID, sent[0].ParseMode)
	}
	if !strings.Contains(sent[0].Text, "/obj_create") {
		t.Errorf("expected help text, got %q", sent[0].Text)
	}
}

func TestBot_Stop(t *testing.T) {
	mock := newMockBot()
	bot := newTestBot(t, config.TelegramConfig{Token: "fake-token"}, mock)

	if err := bot.Start(context.Background()); err != nil {
		t.Fatalf("Start error: %v", err)
	}
	bot.Stop()

	mock.mu.Lock()
	defer mock.mu.Unlock()
	if !mock.stopped {
		t.Error("expected polling to be stopped")
	}
}

func TestBot_IsAllowed(t *testing.T) {
	tests := []struct {
		name     string
		allowed  []string
		userID   int64
		userName string
		want     bool
	}{
		{name: "empty allow-list admits everyone", userID: 1, want: true},
		{name: "allowed by id", allowed: []string{"42"}, userID: 42, want: true},
		{name: "allowed by username", allowed: []string{"@alice"}, userID: 7, userName: "alice", want: true},
		{name: "rejected", allowed: []string{"42"}, userID: 7, userName: "mallory", want: false},
		{name: "blank username does not match", allowed: []string{"42"}, userID: 7, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bot := newTestBot(t, config.TelegramConfig{Token: "fake-token", AllowedUsers: tt.allowed}, newMockBot())
			if got := bot.IsAllowed(tt.userID, tt.userName); got != tt.want {
				t.Errorf("IsAllowed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBot_IgnoresDisallowedUsers(t *testing.T) {
	mock := newMockBot()
	bot := newTestBot(t, config.TelegramConfig{Token: "fake-token", AllowedUsers: []string{"42"}}, mock)
	bot.SetBot(mock)

	bot.handleMessage(context.Background(), textUpdate(7, "mallory", "/help").Message)

	if sent := mock.messages(); len(sent) != 0 {
		t.Errorf("expected no reply, got %d messages", len(sent))
	}
}

func TestBot_SendChunksLongMessages(t *testing.T) {
	mock := newMockBot()
	bot := newTestBot(t, config.TelegramConfig{Token: "fake-token"}, mock)
	bot.SetBot(mock)

	line := strings.Repeat("x", 99) + "\n"
	text := strings.Repeat(line, 50)

	if err := bot.Send(context.Background(), 99, text); err != nil {
		t.Fatalf("Send error: %v", err)
	}

	sent := mock.messages()
	if len(sent) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(sent))
	}
	for _, msg := range sent {
		if len(msg.Text) > maxMessageLength {
			t.Errorf("chunk exceeds limit: %d", len(msg.Text))
		}
	}
}

func TestBot_SendFallsBackToPlainText(t *testing.T) {
	mock := newMockBot()
	mock.failHTML = true
	bot := newTestBot(t, config.TelegramConfig{Token: "fake-token"}, mock)
	bot.SetBot(mock)

	if err := bot.Send(context.Background(), 99, "<b>broken"); err != nil {
		t.Fatalf("Send error: %v", err)
	}

	sent := mock.messages()
	if len(sent) != 2 || sent[1].ParseMode != "" {
		t.Fatalf("expected HTML attempt then plain retry, got %+v", sent)
	}
}

func TestBot_SendWithoutClient(t *testing.T) {
	bot := newTestBot(t, config.TelegramConfig{Token: "fake-token"}, newMockBot())
	if err := bot.Send(context.Background(), 1, "hi"); err == nil {
		t.Error("expected error before the client is initialized")
	}
}

func TestSplitMessage(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
		want  []string
	}{
		{name: "short", text: "hello", limit: 10, want: []string{"hello"}},
		{name: "newline boundary", text: "aaaa\nbbbb\ncc", limit: 10, want: []string{"aaaa\nbbbb", "cc"}},
		{name: "hard cut", text: "abcdefghij", limit: 4, want: []string{"abcd", "efgh", "ij"}},
		{name: "multibyte safe", text: "ééé", limit: 3, want: []string{"é", "é", "é"}},
		{name: "empty", text: "", limit: 10, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitMessage(tt.text, tt.limit)
			if len(got) != len(tt.want) {
				t.Fatalf("SplitMessage() = %q, want %q", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("chunk %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
