package relay

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"telegram-relay-bot/internal/domain"
)

var errPlatform = errors.New("platform rejected request")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type sentMessage struct {
	Target domain.Identity
	Msg    domain.Outbound
}

// fakeSender выдает возрастающие идентификаторы и запоминает отправленное.
type fakeSender struct {
	mu     sync.Mutex
	nextID domain.MessageID
	sent   []sentMessage
	// sendFunc, если задана, решает судьбу каждой отправки.
	sendFunc func(target domain.Identity, msg domain.Outbound) error
}

func newFakeSender(firstID domain.MessageID) *fakeSender {
	return &fakeSender{nextID: firstID}
}

func (s *fakeSender) Send(_ context.Context, target domain.Identity, msg domain.Outbound) (domain.MessageID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sendFunc != nil {
		if err := s.sendFunc(target, msg); err != nil {
			return 0, err
		}
	}
	s.sent = append(s.sent, sentMessage{Target: target, Msg: msg})
	id := s.nextID
	s.nextID++
	return id, nil
}

func (s *fakeSender) Sent() []sentMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]sentMessage(nil), s.sent...)
}

type replyMessage struct {
	ChatID domain.Identity
	Text   string
}

type fakeReplier struct {
	mu      sync.Mutex
	replies []replyMessage
	err     error
}

func (r *fakeReplier) Reply(_ context.Context, chatID domain.Identity, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replies = append(r.replies, replyMessage{ChatID: chatID, Text: text})
	return r.err
}

func (r *fakeReplier) Replies() []replyMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]replyMessage(nil), r.replies...)
}

type reportedError struct {
	Op  string
	Err error
}

type fakeReporter struct {
	mu      sync.Mutex
	reports []reportedError
}

func (r *fakeReporter) Report(_ context.Context, op string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, reportedError{Op: op, Err: err})
}

func (r *fakeReporter) Reports() []reportedError {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]reportedError(nil), r.reports...)
}

// countingStore считает вызовы Record поверх настоящего Store.
type countingStore struct {
	*Store
	mu      sync.Mutex
	records int
}

func newCountingStore() *countingStore {
	return &countingStore{Store: NewStore()}
}

func (s *countingStore) Record(relayed domain.MessageID, correspondent domain.Identity) error {
	s.mu.Lock()
	s.records++
	s.mu.Unlock()
	return s.Store.Record(relayed, correspondent)
}

func (s *countingStore) Records() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records
}
