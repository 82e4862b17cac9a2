package relay

import "errors"

var (
	// ErrNoReplyTarget возвращается, когда оператор пишет сообщение, не являющееся ответом.
	ErrNoReplyTarget = errors.New("operator message is not a reply")
	// ErrUnknownTarget возвращается, когда оператор отвечает на сообщение, которое не было пересылкой.
	ErrUnknownTarget = errors.New("reply target is not a relayed message")
	// ErrDeliveryFailed возвращается, когда платформа не приняла исходящее сообщение.
	ErrDeliveryFailed = errors.New("delivery failed")
	// ErrDuplicateKey возвращается при повторной записи уже занятого ключа.
	ErrDuplicateKey = errors.New("relayed message id already recorded")
	// ErrNotFound возвращается хранилищем, когда соответствие отсутствует.
	ErrNotFound = errors.New("relayed message id not found")
	// ErrUnsupportedPayload возвращается, когда оператор отвечает сообщением, которое нельзя переслать.
	ErrUnsupportedPayload = errors.New("payload cannot be relayed")
)

// failureKind возвращает метку ошибки для метрик и статистики.
func failureKind(err error) string {
	switch {
	case errors.Is(err, ErrNoReplyTarget):
		return "no_reply_target"
	case errors.Is(err, ErrUnknownTarget):
		return "unknown_target"
	case errors.Is(err, ErrDuplicateKey):
		return "duplicate_key"
	case errors.Is(err, ErrUnsupportedPayload):
		return "unsupported_payload"
	case errors.Is(err, ErrDeliveryFailed):
		return "delivery_failed"
	default:
		return "internal"
	}
}
