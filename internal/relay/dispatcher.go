package relay

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"telegram-relay-bot/internal/domain"
	"telegram-relay-bot/internal/ports"
)

type eventIDKey struct{}

// WithEventID сохраняет идентификатор события в контексте.
func WithEventID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, eventIDKey{}, id)
}

// EventIDFromContext возвращает идентификатор события или пустую строку.
func EventIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(eventIDKey{}).(string)
	return id
}

// Handler обрабатывает одно входящее событие до конца.
type Handler interface {
	Handle(ctx context.Context, ev domain.Event) error
}

// Dispatcher запускает обработку каждого события в отдельной горутине.
// События одного отправителя обрабатываются в порядке поступления,
// разных отправителей - независимо.
type Dispatcher struct {
	handler  Handler
	reporter ports.ErrorReporter
	queue    *KeyedQueue[domain.Identity]
	log      *slog.Logger
	wg       sync.WaitGroup
}

// NewDispatcher создает Dispatcher.
func NewDispatcher(handler Handler, reporter ports.ErrorReporter, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		handler:  handler,
		reporter: reporter,
		queue:    NewKeyedQueue[domain.Identity](),
		log:      logger,
	}
}

// Dispatch ставит событие в очередь отправителя и сразу возвращает управление.
// Отмена ctx не прерывает уже начатую обработку: она доводится до конца.
func (d *Dispatcher) Dispatch(ctx context.Context, ev domain.Event) {
	eventID := uuid.NewString()
	ctx = WithEventID(context.WithoutCancel(ctx), eventID)

	d.log.Debug("event dispatched",
		slog.String("event_id", eventID),
		slog.Int64("sender_id", int64(ev.Sender.ID)),
		slog.String("kind", ev.Payload.Kind.String()),
	)

	d.wg.Add(1)
	d.queue.Go(ctx, ev.Sender.ID, func(ctx context.Context) (err error) {
		defer func() {
			if rec := recover(); rec != nil {
				err = fmt.Errorf("panic while handling event: %v", rec)
				d.reporter.Report(ctx, "dispatch", err)
			}
		}()
		return d.handler.Handle(ctx, ev)
	}, func(error) {
		d.wg.Done()
	})
}

// Wait блокируется, пока не завершатся все запущенные обработчики.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
