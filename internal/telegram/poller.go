package telegram

import (
	"context"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-relay-bot/internal/domain"
)

// DefaultUpdateTimeout - таймаут long polling в секундах.
const DefaultUpdateTimeout = 60

// updatesAPI - часть tgbotapi.BotAPI, нужная для получения обновлений.
type updatesAPI interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// EventDispatcher принимает события на обработку, не блокируя цикл обновлений.
type EventDispatcher interface {
	Dispatch(ctx context.Context, ev domain.Event)
}

// Poller читает ленту обновлений и передает сообщения диспетчеру.
type Poller struct {
	api        updatesAPI
	dispatcher EventDispatcher
	timeout    int
	log        *slog.Logger
}

// PollerOption определяет функциональную опцию для Poller.
type PollerOption func(*Poller)

// WithUpdateTimeout задает таймаут long polling в секундах.
func WithUpdateTimeout(seconds int) PollerOption {
	return func(p *Poller) {
		if seconds > 0 {
			p.timeout = seconds
		}
	}
}

// WithPollerLogger устанавливает логгер.
func WithPollerLogger(l *slog.Logger) PollerOption {
	return func(p *Poller) {
		if l != nil {
			p.log = l
		}
	}
}

// NewPoller создает Poller поверх api.
func NewPoller(api updatesAPI, dispatcher EventDispatcher, opts ...PollerOption) *Poller {
	p := &Poller{
		api:        api,
		dispatcher: dispatcher,
		timeout:    DefaultUpdateTimeout,
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run запускает основной цикл обработки обновлений и блокируется до отмены ctx
// или закрытия ленты. Получаются только новые обновления, повторов нет.
func (p *Poller) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = p.timeout
	u.AllowedUpdates = []string{"message"}

	updates := p.api.GetUpdatesChan(u)
	p.log.Info("Receiving updates", "timeout_seconds", p.timeout)

	for {
		select {
		case <-ctx.Done():
			p.log.Info("Context cancelled, stopping updates...")
			p.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				p.log.Info("Updates channel closed")
				return
			}
			ev, ok := EventFromMessage(update.Message)
			if !ok {
				continue
			}
			p.dispatcher.Dispatch(ctx, ev)
		}
	}
}
