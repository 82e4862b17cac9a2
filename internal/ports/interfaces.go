package ports

import (
	"context"

	"telegram-relay-bot/internal/domain"
)

// Sender определяет интерфейс отправки исходящих сообщений.
type Sender interface {
	// Send отправляет одно сообщение в чат target и возвращает идентификатор
	// доставленной копии, присвоенный платформой.
	Send(ctx context.Context, target domain.Identity, msg domain.Outbound) (domain.MessageID, error)
}

// Replier определяет интерфейс коротких служебных ответов в чат отправителя.
type Replier interface {
	Reply(ctx context.Context, chatID domain.Identity, text string) error
}

// RelayStore хранит соответствие "пересланная копия -> исходный собеседник".
type RelayStore interface {
	// Record сохраняет новое соответствие. Повторная запись того же ключа - ошибка.
	Record(relayed domain.MessageID, correspondent domain.Identity) error
	// Resolve возвращает собеседника для пересланной копии.
	Resolve(relayed domain.MessageID) (domain.Identity, error)
	// Len возвращает количество сохраненных соответствий.
	Len() int
}

// ErrorReporter фиксирует ошибки для диагностики и никогда не пробрасывает их дальше.
type ErrorReporter interface {
	Report(ctx context.Context, op string, err error)
}
