package relay

import (
	"context"
	"log/slog"
	"sync"
)

const transportKind = "transport"

// Reporter - реализация ports.ErrorReporter поверх slog и метрик.
// Никогда не паникует и не возвращает ошибок вызывающему коду.
type Reporter struct {
	log     *slog.Logger
	metrics *Metrics

	mu     sync.Mutex
	counts map[string]uint64
}

// NewReporter создает Reporter. metrics может быть nil.
func NewReporter(logger *slog.Logger, metrics *Metrics) *Reporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reporter{
		log:     logger,
		metrics: metrics,
		counts:  make(map[string]uint64),
	}
}

// Report фиксирует ошибку операции op. Ожидаемые пользовательские ситуации
// (ответ не туда, неподдерживаемый тип) пишутся с уровнем warn, остальное - error.
func (r *Reporter) Report(ctx context.Context, op string, err error) {
	if err == nil {
		return
	}
	kind := failureKind(err)
	r.count(kind)

	level := slog.LevelError
	switch kind {
	case "no_reply_target", "unknown_target", "unsupported_payload":
		level = slog.LevelWarn
	}
	r.log.Log(ctx, level, "relay operation failed",
		slog.String("op", op),
		slog.String("kind", kind),
		slog.String("event_id", EventIDFromContext(ctx)),
		slog.String("error", err.Error()),
	)
}

// ReportTransport фиксирует сбой транспорта, не связанный с конкретным событием,
// например ошибку получения обновлений.
func (r *Reporter) ReportTransport(msg string) {
	r.count(transportKind)
	r.log.Warn("transport failure", slog.String("kind", transportKind), slog.String("error", msg))
}

// Failures возвращает копию счетчиков ошибок по видам.
func (r *Reporter) Failures() map[string]uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]uint64, len(r.counts))
	for k, v := range r.counts {
		out[k] = v
	}
	return out
}

func (r *Reporter) count(kind string) {
	r.mu.Lock()
	r.counts[kind]++
	r.mu.Unlock()
	r.metrics.observeFailure(kind)
}
