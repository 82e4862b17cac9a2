package log

import (
	"fmt"
	"log/slog"
	"strings"
)

// Признак сообщения библиотеки о сбое long polling.
const pollFailureMarker = "Failed to get updates"

// TGBotAPIAdapter адаптирует slog.Logger под интерфейс tgbotapi.BotLogger.
//
// Библиотека сообщает о сбоях getUpdates только через логгер: сначала
// печатает саму ошибку, затем строку о повторе. Такие сообщения пишутся
// с уровнем warn и передаются в OnTransportError.
type TGBotAPIAdapter struct {
	Logger           *slog.Logger
	OnTransportError func(msg string)
}

// Println реализует метод интерфейса tgbotapi.BotLogger.
func (a *TGBotAPIAdapter) Println(v ...interface{}) {
	msg := strings.TrimSpace(fmt.Sprintln(v...))
	if containsError(v) {
		a.transportError(msg)
		return
	}
	a.log(msg)
}

// Printf реализует метод интерфейса tgbotapi.BotLogger.
func (a *TGBotAPIAdapter) Printf(format string, v ...interface{}) {
	msg := strings.TrimSpace(fmt.Sprintf(format, v...))
	if containsError(v) {
		a.transportError(msg)
		return
	}
	a.log(msg)
}

func (a *TGBotAPIAdapter) log(msg string) {
	if strings.Contains(msg, pollFailureMarker) {
		a.Logger.Warn(msg, slog.String("source", "tgbotapi"))
		return
	}
	a.Logger.Debug(msg, slog.String("source", "tgbotapi"))
}

func (a *TGBotAPIAdapter) transportError(msg string) {
	a.Logger.Warn("telegram transport error", slog.String("source", "tgbotapi"), slog.String("error", msg))
	if a.OnTransportError != nil {
		a.OnTransportError(msg)
	}
}

func containsError(v []interface{}) bool {
	for _, item := range v {
		if _, ok := item.(error); ok {
			return true
		}
	}
	return false
}
