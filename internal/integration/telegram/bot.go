// Package telegram serves the OKR commands over a Telegram bot.
package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/okr-bot/backend/config"
)

// maxMessageLength stays below Telegram's 4096 character limit.
const maxMessageLength = 4000

// TelegramBot is the subset of the Telegram API the bot uses.
type TelegramBot interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetSelf() tgbotapi.User
}

type tgBotWrapper struct {
	bot *tgbotapi.BotAPI
}

func (w *tgBotWrapper) GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return w.bot.GetUpdatesChan(config)
}

func (w *tgBotWrapper) StopReceivingUpdates() {
	w.bot.StopReceivingUpdates()
}

func (w *tgBotWrapper) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	return w.bot.Send(c)
}

func (w *tgBotWrapper) GetSelf() tgbotapi.User {
	return w.bot.Self
}

// BotFactory creates TelegramBot instances.
type BotFactory func(token, apiEndpoint string, client *http.Client) (TelegramBot, error)

var defaultBotFactory BotFactory = func(token, apiEndpoint string, client *http.Client) (TelegramBot, error) {
	bot, err := tgbotapi.NewBotAPIWithClient(token, apiEndpoint, client)
	if err != nil {
		return nil, err
	}
	return &tgBotWrapper{bot: bot}, nil
}

// Message is an incoming chat message reduced to what the command handler needs.
type Message struct {
	ChatID   int64
	UserID   int64
	UserName string
	Text     string
}

// Caller returns the identity used as owner for the message sender.
func (m Message) Caller() string {
	if m.UserName != "" {
		return m.UserName
	}
	return strconv.FormatInt(m.UserID, 10)
}

// Bot long-polls Telegram and answers each message through the Handler.
type Bot struct {
	token       string
	pollTimeout int
	allowed     map[string]bool
	handler     *Handler
	factory     BotFactory
	bot         TelegramBot
	cancel      context.CancelFunc
	wg          sync.WaitGroup
}

// NewBot creates a Bot backed by the real Telegram API.
func NewBot(cfg config.TelegramConfig, handler *Handler) (*Bot, error) {
	return NewBotWithFactory(cfg, handler, defaultBotFactory)
}

// NewBotWithFactory creates a Bot with a custom bot factory.
func NewBotWithFactory(cfg config.TelegramConfig, handler *Handler, factory BotFactory) (*Bot, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("telegram token is required")
	}

	allowed := make(map[string]bool, len(cfg.AllowedUsers))
	for _, user := range cfg.AllowedUsers {
		allowed[strings.TrimPrefix(strings.TrimSpace(user), "@")] = true
	}

	pollTimeout := cfg.PollTimeout
	if pollTimeout <= 0 {
		pollTimeout = 30
	}

	return &Bot{
		token:       cfg.Token,
		pollTimeout: pollTimeout,
		allowed:     allowed,
		handler:     handler,
		factory:     factory,
	}, nil
}

// Start connects to Telegram and begins polling in the background.
func (b *Bot) Start(ctx context.Context) error {
	if b.bot == nil {
		bot, err := b.factory(b.token, tgbotapi.APIEndpoint, http.DefaultClient)
		if err != nil {
			return fmt.Errorf("create telegram bot: %w", err)
		}
		b.bot = bot
	}
	slog.Info("Telegram bot authorized", "username", b.bot.GetSelf().UserName)

	ctx, b.cancel = context.WithCancel(ctx)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.pollTimeout
	updates := b.bot.GetUpdatesChan(u)

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		for {
			select {
			case update, ok := <-updates:
				if !ok {
					return
				}
				if update.Message == nil || update.Message.From == nil {
					continue
				}
				b.handleMessage(ctx, update.Message)
			case <-ctx.Done():
				return
			}
		}
	}()

	slog.Info("Telegram polling started")
	return nil
}

// Stop ends polling and waits for the in-flight message to finish.
func (b *Bot) Stop() {
	if b.cancel != nil {
		b.cancel()
	}
	if b.bot != nil {
		b.bot.StopReceivingUpdates()
	}
	b.wg.Wait()
	slog.Info("Telegram bot stopped")
}

// SetBot replaces the Telegram client.
func (b *Bot) SetBot(bot TelegramBot) {
	b.bot = bot
}

// IsAllowed reports whether the sender may use the bot. An empty allow-list admits everyone.
func (b *Bot) IsAllowed(userID int64, userName string) bool {
	if len(b.allowed) == 0 {
		return true
	}
	return b.allowed[strconv.FormatInt(userID, 10)] || (userName != "" && b.allowed[userName])
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if !b.IsAllowed(msg.From.ID, msg.From.UserName) {
		slog.Warn("Rejected telegram message", "user_id", msg.From.ID, "username", msg.From.UserName)
		return
	}

	reply := b.handler.Handle(ctx, Message{
		ChatID:   msg.Chat.ID,
		UserID:   msg.From.ID,
		UserName: msg.From.UserName,
		Text:     msg.Text,
	})
	if reply == "" {
		return
	}

	if err := b.Send(ctx, msg.Chat.ID, reply); err != nil {
		slog.Error("Failed to send telegram reply", "chat_id", msg.Chat.ID, "error", err)
	}
}

// Send delivers an HTML message to a chat, split into chunks Telegram accepts.
// A chunk rejected as HTML is resent as plain text.
func (b *Bot) Send(_ context.Context, chatID int64, text string) error {
	if b.bot == nil {
		return fmt.Errorf("telegram bot not initialized")
	}

	for _, chunk := range SplitMessage(text, maxMessageLength) {
		tgMsg := tgbotapi.NewMessage(chatID, chunk)
		tgMsg.ParseMode = tgbotapi.ModeHTML
		if _, err := b.bot.Send(tgMsg); err != nil {
			tgMsg.ParseMode = ""
			if _, err2 := b.bot.Send(tgMsg); err2 != nil {
				return fmt.Errorf("send telegram message: %w", err2)
			}
		}
	}
	return nil
}

// SplitMessage cuts text into chunks of at most limit bytes, preferring newline boundaries
// and never splitting a UTF-8 sequence.
func SplitMessage(text string, limit int) []string {
	var chunks []string
	for len(text) > limit {
		cut := strings.LastIndex(text[:limit], "\n")
		if cut <= 0 {
			cut = limit
			for cut > 0 && !utf8.RuneStart(text[cut]) {
				cut--
			}
		}
		chunks = append(chunks, text[:cut])
		text = strings.TrimPrefix(text[cut:], "\n")
	}
	if text != "" {
		chunks = append(chunks, text)
	}
	return chunks
}
