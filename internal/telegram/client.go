package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-relay-bot/internal/domain"
)

// ErrUnsupportedOutbound возвращается, если для исходящего сообщения нет метода отправки.
var ErrUnsupportedOutbound = errors.New("unsupported outbound message kind")

// Client реализует ports.Sender и ports.Replier поверх Bot API.
type Client struct {
	// sendFunc вызывает tgbotapi.BotAPI.Send; в тестах подменяется.
	sendFunc func(c tgbotapi.Chattable) (tgbotapi.Message, error)
	log      *slog.Logger
}

// ClientOption определяет функциональную опцию для конфигурации клиента.
type ClientOption func(*Client)

// WithLogger устанавливает логгер для клиента.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// NewClient создает клиент, отправляющий сообщения через api.
func NewClient(api *tgbotapi.BotAPI, opts ...ClientOption) *Client {
	c := &Client{
		sendFunc: api.Send,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Send отправляет одно исходящее сообщение и возвращает идентификатор доставленной копии.
func (c *Client) Send(ctx context.Context, target domain.Identity, msg domain.Outbound) (domain.MessageID, error) {
	switch msg.Kind {
	case domain.KindText:
		return c.SendText(ctx, target, msg.Text)
	case domain.KindPhoto:
		return c.SendPhoto(ctx, target, msg.FileID, msg.Caption)
	case domain.KindVideo:
		return c.SendVideo(ctx, target, msg.FileID, msg.Caption)
	case domain.KindDocument:
		return c.SendDocument(ctx, target, msg.FileID, msg.Caption)
	case domain.KindVoice:
		return c.SendVoice(ctx, target, msg.FileID, msg.Caption)
	case domain.KindAudio:
		return c.SendAudio(ctx, target, msg.FileID, msg.Caption)
	case domain.KindSticker:
		return c.SendSticker(ctx, target, msg.FileID)
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedOutbound, msg.Kind)
	}
}

// SendText отправляет текстовое сообщение.
func (c *Client) SendText(ctx context.Context, target domain.Identity, text string) (domain.MessageID, error) {
	return c.send(ctx, "sendMessage", tgbotapi.NewMessage(int64(target), text))
}

// SendPhoto отправляет фотографию по file_id.
func (c *Client) SendPhoto(ctx context.Context, target domain.Identity, fileID, caption string) (domain.MessageID, error) {
	cfg := tgbotapi.NewPhoto(int64(target), tgbotapi.FileID(fileID))
	cfg.Caption = caption
	return c.send(ctx, "sendPhoto", cfg)
}

// SendVideo отправляет видео по file_id.
func (c *Client) SendVideo(ctx context.Context, target domain.Identity, fileID, caption string) (domain.MessageID, error) {
	cfg := tgbotapi.NewVideo(int64(target), tgbotapi.FileID(fileID))
	cfg.Caption = caption
	return c.send(ctx, "sendVideo", cfg)
}

// SendDocument отправляет документ по file_id.
func (c *Client) SendDocument(ctx context.Context, target domain.Identity, fileID, caption string) (domain.MessageID, error) {
	cfg := tgbotapi.NewDocument(int64(target), tgbotapi.FileID(fileID))
	cfg.Caption = caption
	return c.send(ctx, "sendDocument", cfg)
}

// SendVoice отправляет голосовое сообщение по file_id.
func (c *Client) SendVoice(ctx context.Context, target domain.Identity, fileID, caption string) (domain.MessageID, error) {
	cfg := tgbotapi.NewVoice(int64(target), tgbotapi.FileID(fileID))
	cfg.Caption = caption
	return c.send(ctx, "sendVoice", cfg)
}

// SendAudio отправляет аудиофайл по file_id.
func (c *Client) SendAudio(ctx context.Context, target domain.Identity, fileID, caption string) (domain.MessageID, error) {
	cfg := tgbotapi.NewAudio(int64(target), tgbotapi.FileID(fileID))
	cfg.Caption = caption
	return c.send(ctx, "sendAudio", cfg)
}

// SendSticker отправляет стикер по file_id. У стикеров нет подписи.
func (c *Client) SendSticker(ctx context.Context, target domain.Identity, fileID string) (domain.MessageID, error) {
	return c.send(ctx, "sendSticker", tgbotapi.NewSticker(int64(target), tgbotapi.FileID(fileID)))
}

// Reply отправляет короткий служебный текст в чат chatID.
func (c *Client) Reply(ctx context.Context, chatID domain.Identity, text string) error {
	_, err := c.SendText(ctx, chatID, text)
	return err
}

// send выполняет один вызов Bot API. Bot API не принимает контекст,
// поэтому отмена проверяется только перед вызовом; таймаут задает HTTP-клиент.
func (c *Client) send(ctx context.Context, method string, msg tgbotapi.Chattable) (domain.MessageID, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	c.log.DebugContext(ctx, "Executing API call", "method", method)
	sent, err := c.sendFunc(msg)
	if err != nil {
		err = stripURL(err, method)
		c.log.WarnContext(ctx, "API call failed", "method", method, "error", err)
		return 0, fmt.Errorf("%s: %w", method, err)
	}
	return domain.MessageID(sent.MessageID), nil
}

// stripURL убирает адрес запроса из транспортной ошибки: в пути Bot API лежит токен.
func stripURL(err error, method string) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}
	return &url.Error{Op: urlErr.Op, URL: method, Err: urlErr.Err}
}
