package relay

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"telegram-relay-bot/internal/domain"
	"telegram-relay-bot/internal/ports"
)

const startCommand = "start"

// Stats - снимок счетчиков ретранслятора.
type Stats struct {
	Mappings  int               `json:"mappings"`
	Forwarded uint64            `json:"forwarded"`
	Replied   uint64            `json:"replied"`
	Failures  map[string]uint64 `json:"failures"`
}

// failureCounter реализуется репортерами, умеющими отдавать статистику ошибок.
type failureCounter interface {
	Failures() map[string]uint64
}

// RouterOption определяет функциональную опцию для Router.
type RouterOption func(*Router)

// WithLogger устанавливает логгер роутера.
func WithLogger(l *slog.Logger) RouterOption {
	return func(r *Router) {
		if l != nil {
			r.log = l
		}
	}
}

// WithTexts заменяет тексты, которые видят пользователи.
func WithTexts(t Texts) RouterOption {
	return func(r *Router) {
		r.texts = t
	}
}

// WithMetrics подключает Prometheus-метрики.
func WithMetrics(m *Metrics) RouterOption {
	return func(r *Router) {
		r.metrics = m
	}
}

// WithRedactor задает функцию, которой очищается причина ошибки перед показом оператору.
func WithRedactor(redact func(string) string) RouterOption {
	return func(r *Router) {
		if redact != nil {
			r.redact = redact
		}
	}
}

// Router - оркестратор ретрансляции. Для каждого события решает, переслать ли его
// оператору или доставить ответ оператора исходному собеседнику,
// и сообщает отправителю об успехе или ошибке.
type Router struct {
	classifier Classifier
	store      ports.RelayStore
	sender     ports.Sender
	replier    ports.Replier
	reporter   ports.ErrorReporter
	texts      Texts
	metrics    *Metrics
	redact     func(string) string
	log        *slog.Logger

	forwarded atomic.Uint64
	replied   atomic.Uint64
}

// NewRouter создает Router.
func NewRouter(
	operator domain.Identity,
	store ports.RelayStore,
	sender ports.Sender,
	replier ports.Replier,
	reporter ports.ErrorReporter,
	opts ...RouterOption,
) *Router {
	r := &Router{
		classifier: NewClassifier(operator),
		store:      store,
		sender:     sender,
		replier:    replier,
		reporter:   reporter,
		texts:      DefaultTexts(""),
		redact:     func(s string) string { return s },
		log:        slog.Default().With("component", "relay"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Handle обрабатывает одно событие до конца. Все ошибки уже сообщены
// отправителю и репортеру; возвращаемое значение служит только для информации.
func (r *Router) Handle(ctx context.Context, ev domain.Event) error {
	role := r.classifier.Classify(ev.Sender.ID)
	r.metrics.observeEvent(role)

	if ev.Command == startCommand {
		return r.greet(ctx, ev, role)
	}
	if role == domain.RoleOperator {
		return r.handleOperator(ctx, ev)
	}
	return r.handleCorrespondent(ctx, ev)
}

// Stats возвращает текущие счетчики.
func (r *Router) Stats() Stats {
	s := Stats{
		Mappings:  r.store.Len(),
		Forwarded: r.forwarded.Load(),
		Replied:   r.replied.Load(),
		Failures:  map[string]uint64{},
	}
	if fc, ok := r.reporter.(failureCounter); ok {
		s.Failures = fc.Failures()
	}
	return s
}

func (r *Router) greet(ctx context.Context, ev domain.Event, role domain.Role) error {
	text := r.texts.CorrespondentGreeting
	if role == domain.RoleOperator {
		text = r.texts.OperatorGreeting
	}
	r.reply(ctx, ev.ChatID, text)
	return nil
}

func (r *Router) handleOperator(ctx context.Context, ev domain.Event) error {
	logger := r.eventLogger(ctx, ev)

	if !ev.IsReply() {
		r.reporter.Report(ctx, "operator.reply", ErrNoReplyTarget)
		r.reply(ctx, ev.ChatID, r.texts.NoReplyTarget)
		return ErrNoReplyTarget
	}

	target, err := r.store.Resolve(ev.ReplyToID)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrUnknownTarget, err)
		r.reporter.Report(ctx, "operator.resolve", err)
		r.reply(ctx, ev.ChatID, r.texts.UnknownTarget)
		return err
	}

	outbound, err := BuildOutbound(ev.Payload, "")
	if err != nil {
		r.reporter.Report(ctx, "operator.transform", err)
		r.reply(ctx, ev.ChatID, r.texts.UnsupportedReply)
		return err
	}

	if _, err := r.dispatch(ctx, target, outbound); err != nil {
		r.reporter.Report(ctx, "operator.deliver", fmt.Errorf("%w: to %d: %w", ErrDeliveryFailed, target, err))
		r.reply(ctx, ev.ChatID, fmt.Sprintf(r.texts.OperatorFailure, r.redact(err.Error())))
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}

	r.replied.Add(1)
	r.metrics.observeReplied()
	logger.Info("operator reply delivered", slog.Int64("target_id", int64(target)))
	r.reply(ctx, ev.ChatID, r.texts.OperatorAck)
	return nil
}

func (r *Router) handleCorrespondent(ctx context.Context, ev domain.Event) error {
	logger := r.eventLogger(ctx, ev)

	outbound, err := BuildOutbound(ev.Payload, BuildBanner(ev.Sender))
	if err != nil {
		return r.failCorrespondent(ctx, ev, "correspondent.transform", err)
	}

	relayedID, err := r.dispatch(ctx, r.classifier.Operator(), outbound)
	if err != nil {
		return r.failCorrespondent(ctx, ev, "correspondent.deliver", fmt.Errorf("%w: %w", ErrDeliveryFailed, err))
	}

	if err := r.store.Record(relayedID, ev.Sender.ID); err != nil {
		return r.failCorrespondent(ctx, ev, "correspondent.record", err)
	}

	r.forwarded.Add(1)
	r.metrics.observeForwarded()
	logger.Info("message forwarded to operator", slog.Int("relayed_id", int(relayedID)))
	r.reply(ctx, ev.ChatID, r.texts.CorrespondentAck)
	return nil
}

// failCorrespondent сообщает собеседнику общую ошибку, не раскрывая причину;
// причина уходит только в репортер.
func (r *Router) failCorrespondent(ctx context.Context, ev domain.Event, op string, err error) error {
	r.reporter.Report(ctx, op, err)
	r.reply(ctx, ev.ChatID, r.texts.CorrespondentFailure)
	return err
}

// dispatch отправляет сообщения по порядку и возвращает идентификатор последнего.
// Первая же ошибка прерывает последовательность.
func (r *Router) dispatch(ctx context.Context, target domain.Identity, msgs []domain.Outbound) (domain.MessageID, error) {
	var last domain.MessageID
	for _, msg := range msgs {
		id, err := r.sender.Send(ctx, target, msg)
		if err != nil {
			return 0, err
		}
		last = id
	}
	return last, nil
}

func (r *Router) reply(ctx context.Context, chatID domain.Identity, text string) {
	if err := r.replier.Reply(ctx, chatID, text); err != nil {
		r.reporter.Report(ctx, "reply", fmt.Errorf("%w: acknowledgement to %d: %w", ErrDeliveryFailed, chatID, err))
	}
}

func (r *Router) eventLogger(ctx context.Context, ev domain.Event) *slog.Logger {
	return r.log.With(
		slog.String("event_id", EventIDFromContext(ctx)),
		slog.Int64("sender_id", int64(ev.Sender.ID)),
		slog.String("kind", ev.Payload.Kind.String()),
	)
}
