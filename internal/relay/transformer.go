package relay

import (
	"fmt"
	"strconv"
	"strings"

	"telegram-relay-bot/internal/domain"
)

const (
	stickerNotice     = "[Sticker received]"
	unsupportedNotice = "[Unsupported message type]"
	bannerRuleWidth   = 30
)

// BuildBanner формирует заголовок с данными отправителя, который предваряет
// пересланное оператору содержимое.
func BuildBanner(p domain.Profile) string {
	name := p.FullName()
	if name == "" {
		name = "Unknown"
	}
	username := "No username"
	if p.Username != "" {
		username = "@" + p.Username
	}

	var sb strings.Builder
	sb.WriteString("📨 New message from:\n")
	sb.WriteString("👤 Name: " + name + "\n")
	sb.WriteString("🆔 ID: " + strconv.FormatInt(int64(p.ID), 10) + "\n")
	sb.WriteString("📱 Username: " + username + "\n")
	sb.WriteString(strings.Repeat("─", bannerRuleWidth))
	sb.WriteString("\n")
	return sb.String()
}

// BuildOutbound превращает входящую нагрузку в упорядоченную последовательность
// исходящих сообщений. Непустой banner означает пересылку оператору,
// пустой - ответ оператора собеседнику.
// Пересланной копией считается последнее сообщение последовательности.
func BuildOutbound(p domain.Payload, banner string) ([]domain.Outbound, error) {
	toOperator := banner != ""

	switch p.Kind {
	case domain.KindText:
		return []domain.Outbound{{Kind: domain.KindText, Text: banner + p.Text}}, nil

	case domain.KindPhoto:
		best, ok := largestPhoto(p.Photo)
		if !ok {
			return nil, fmt.Errorf("%w: photo without sizes", ErrUnsupportedPayload)
		}
		return []domain.Outbound{{Kind: domain.KindPhoto, FileID: best.FileID, Caption: banner + p.Caption}}, nil

	case domain.KindVideo, domain.KindDocument, domain.KindAudio:
		return []domain.Outbound{{Kind: p.Kind, FileID: p.FileID, Caption: banner + p.Caption}}, nil

	case domain.KindVoice:
		// У голосовых нет пользовательской подписи, баннер идет только оператору.
		return []domain.Outbound{{Kind: domain.KindVoice, FileID: p.FileID, Caption: banner}}, nil

	case domain.KindSticker:
		sticker := domain.Outbound{Kind: domain.KindSticker, FileID: p.FileID}
		if !toOperator {
			return []domain.Outbound{sticker}, nil
		}
		notice := domain.Outbound{Kind: domain.KindText, Text: banner + stickerNotice}
		return []domain.Outbound{notice, sticker}, nil

	case domain.KindUnsupported:
		if !toOperator {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedPayload, p.Kind)
		}
		return []domain.Outbound{{Kind: domain.KindText, Text: banner + unsupportedNotice}}, nil

	default:
		return nil, fmt.Errorf("%w: unknown kind %d", ErrUnsupportedPayload, p.Kind)
	}
}

// largestPhoto выбирает вариант с наибольшим числом пикселей,
// при равенстве - с большим размером файла.
func largestPhoto(sizes []domain.PhotoSize) (domain.PhotoSize, bool) {
	if len(sizes) == 0 {
		return domain.PhotoSize{}, false
	}
	best := sizes[0]
	for _, s := range sizes[1:] {
		area, bestArea := s.Width*s.Height, best.Width*best.Height
		if area > bestArea || (area == bestArea && s.FileSize > best.FileSize) {
			best = s
		}
	}
	return best, true
}
