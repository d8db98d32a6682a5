package telegram

import (
	"context"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"journal_bot/internal/commands"
)

// Bot wires the Telegram transport to the command interpreter.
type Bot struct {
	bot     *tele.Bot
	handler *commands.Handler
	logger  *zap.Logger
}

func NewBot(token string, pollTimeout time.Duration, handler *commands.Handler, logger *zap.Logger) (*Bot, error) {
	pref := tele.Settings{
		Token:  token,
		Poller: NewPoller(pollTimeout, logger),
		OnError: func(err error, c tele.Context) {
			// Replies are best effort: a failed send is logged, never retried.
			if c != nil && c.Chat() != nil {
				logger.Warn("update handling failed",
					zap.Int64("chat_id", c.Chat().ID),
					zap.Error(err))
				return
			}
			logger.Warn("update handling failed", zap.Error(err))
		},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, err
	}

	bot := &Bot{
		bot:     b,
		handler: handler,
		logger:  logger,
	}

	bot.setupHandlers()
	return bot, nil
}

// setupHandlers funnels every text message through the interpreter. No
// per-command handlers are registered, so slash commands fall through to
// OnText and unknown input gets the interpreter's unknown-command reply.
func (b *Bot) setupHandlers() {
	b.bot.Handle(tele.OnText, func(c tele.Context) error {
		text := c.Text()
		b.logger.Info("message received",
			zap.Int64("chat_id", c.Chat().ID),
			zap.String("text", text))

		reply := b.handler.Handle(context.Background(), text)
		return c.Send(reply)
	})
}

func (b *Bot) Start() {
	b.logger.Info("📱 telegram bot started")
	b.bot.Start()
}

func (b *Bot) Stop() {
	b.bot.Stop()
}
