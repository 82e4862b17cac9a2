package log

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
)

// Маска, которой заменяются найденные секреты.
const (
	TokenMask  = "bot***:***masked-token***"
	SecretMask = "***masked***"
)

// Токены в URL Bot API: bot<ID>:<secret>.
var telegramTokenRegex = regexp.MustCompile(`(\bbot\d+:[A-Za-z0-9_-]{35,})`)

// Masker заменяет в строках токены Bot API и явно переданные секреты.
type Masker struct {
	secrets *strings.Replacer
}

// NewMasker создает маскировщик. Пустые секреты игнорируются.
func NewMasker(secrets ...string) *Masker {
	pairs := make([]string, 0, len(secrets)*2)
	for _, s := range secrets {
		if s == "" {
			continue
		}
		pairs = append(pairs, s, SecretMask)
	}
	m := &Masker{}
	if len(pairs) > 0 {
		m.secrets = strings.NewReplacer(pairs...)
	}
	return m
}

// Mask возвращает text с замаскированными секретами
func (m *Masker) Mask(text string) string {
	text = telegramTokenRegex.ReplaceAllString(text, TokenMask)
	if m.secrets != nil {
		text = m.secrets.Replace(text)
	}
	return text
}

func (m *Masker) maskValue(value slog.Value) slog.Value {
	switch value.Kind() {
	case slog.KindString:
		return slog.StringValue(m.Mask(value.String()))
	case slog.KindAny:
		// Ошибки транспорта содержат URL запроса вместе с токеном.
		if err, ok := value.Any().(error); ok {
			return slog.StringValue(m.Mask(err.Error()))
		}
		return value
	case slog.KindLogValuer:
		return m.maskValue(value.Resolve())
	case slog.KindGroup:
		return slog.GroupValue(m.maskAttrs(value.Group())...)
	default:
		return value
	}
}

func (m *Masker) maskAttrs(attrs []slog.Attr) []slog.Attr {
	masked := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		masked[i] = slog.Attr{Key: a.Key, Value: m.maskValue(a.Value)}
	}
	return masked
}

// TokenMaskerHandler - обертка для slog.Handler, которая маскирует секреты в сообщении и атрибутах
type TokenMaskerHandler struct {
	handler slog.Handler
	masker  *Masker
}

// NewTokenMaskerHandler создает обработчик, маскирующий токены Bot API и переданные секреты
func NewTokenMaskerHandler(handler slog.Handler, secrets ...string) *TokenMaskerHandler {
	return &TokenMaskerHandler{
		handler: handler,
		masker:  NewMasker(secrets...),
	}
}

// Enabled реализует интерфейс slog.Handler
func (h *TokenMaskerHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle реализует интерфейс slog.Handler
func (h *TokenMaskerHandler) Handle(ctx context.Context, record slog.Record) error {
	// Новая запись вместо Clone: исходные атрибуты не должны попасть в вывод.
	r := slog.NewRecord(record.Time, record.Level, h.masker.Mask(record.Message), record.PC)
	record.Attrs(func(a slog.Attr) bool {
		r.AddAttrs(slog.Attr{Key: a.Key, Value: h.masker.maskValue(a.Value)})
		return true
	})
	return h.handler.Handle(ctx, r)
}

// WithAttrs реализует интерфейс slog.Handler
func (h *TokenMaskerHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TokenMaskerHandler{
		handler: h.handler.WithAttrs(h.masker.maskAttrs(attrs)),
		masker:  h.masker,
	}
}

// WithGroup реализует интерфейс slog.Handler
func (h *TokenMaskerHandler) WithGroup(name string) slog.Handler {
	return &TokenMaskerHandler{
		handler: h.handler.WithGroup(name),
		masker:  h.masker,
	}
}

// NewMaskedLogger создает slog.Logger с маскировкой токенов и секретов
func NewMaskedLogger(handler slog.Handler, secrets ...string) *slog.Logger {
	return slog.New(NewTokenMaskerHandler(handler, secrets...))
}
