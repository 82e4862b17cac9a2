package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-relay-bot/internal/domain"
)

// EventFromMessage переводит сообщение Bot API в событие ретранслятора.
// Возвращает false для сообщений без отправителя или чата (например, от имени канала).
func EventFromMessage(msg *tgbotapi.Message) (domain.Event, bool) {
	if msg == nil || msg.From == nil || msg.Chat == nil {
		return domain.Event{}, false
	}

	ev := domain.Event{
		ChatID:    domain.Identity(msg.Chat.ID),
		MessageID: domain.MessageID(msg.MessageID),
		Sender: domain.Profile{
			ID:        domain.Identity(msg.From.ID),
			FirstName: msg.From.FirstName,
			LastName:  msg.From.LastName,
			Username:  msg.From.UserName,
		},
		Payload: payloadFromMessage(msg),
	}
	if msg.ReplyToMessage != nil {
		ev.ReplyToID = domain.MessageID(msg.ReplyToMessage.MessageID)
	}
	if msg.IsCommand() {
		ev.Command = msg.Command()
	}
	return ev, true
}

// payloadFromMessage выбирает ровно один вариант нагрузки в фиксированном порядке:
// текст, фото, видео, документ, голосовое, аудио, стикер. Если ни одно поле
// не заполнено, сообщение считается неподдерживаемым.
func payloadFromMessage(msg *tgbotapi.Message) domain.Payload {
	switch {
	case msg.Text != "":
		return domain.TextPayload(msg.Text)
	case len(msg.Photo) > 0:
		sizes := make([]domain.PhotoSize, 0, len(msg.Photo))
		for _, p := range msg.Photo {
			sizes = append(sizes, domain.PhotoSize{
				FileID:   p.FileID,
				Width:    p.Width,
				Height:   p.Height,
				FileSize: p.FileSize,
			})
		}
		return domain.PhotoPayload(sizes, msg.Caption)
	case msg.Video != nil:
		return domain.FilePayload(domain.KindVideo, msg.Video.FileID, msg.Caption)
	case msg.Document != nil:
		return domain.FilePayload(domain.KindDocument, msg.Document.FileID, msg.Caption)
	case msg.Voice != nil:
		return domain.FilePayload(domain.KindVoice, msg.Voice.FileID, "")
	case msg.Audio != nil:
		return domain.FilePayload(domain.KindAudio, msg.Audio.FileID, msg.Caption)
	case msg.Sticker != nil:
		return domain.FilePayload(domain.KindSticker, msg.Sticker.FileID, "")
	default:
		return domain.UnsupportedPayload()
	}
}
