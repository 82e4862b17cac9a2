package relay

import (
	"context"
	"sync"
)

// KeyedQueue выполняет задачи с одинаковым ключом строго по очереди,
// а задачи с разными ключами - параллельно.
type KeyedQueue[K comparable] struct {
	mu     sync.Mutex
	chains map[K]chan struct{}
}

// NewKeyedQueue создает пустую очередь.
func NewKeyedQueue[K comparable]() *KeyedQueue[K] {
	return &KeyedQueue[K]{chains: make(map[K]chan struct{})}
}

// reserve занимает место в цепочке ключа. Вызывается синхронно, поэтому
// порядок вызовов reserve определяет порядок выполнения задач.
func (q *KeyedQueue[K]) reserve(key K) (previous <-chan struct{}, release func()) {
	q.mu.Lock()
	prev := q.chains[key]
	next := make(chan struct{})
	q.chains[key] = next
	q.mu.Unlock()

	release = func() {
		close(next)
		q.mu.Lock()
		if q.chains[key] == next {
			delete(q.chains, key)
		}
		q.mu.Unlock()
	}
	return prev, release
}

// Go резервирует место в очереди немедленно и выполняет fn в отдельной горутине.
// done вызывается после завершения fn с ее результатом.
func (q *KeyedQueue[K]) Go(ctx context.Context, key K, fn func(context.Context) error, done func(error)) {
	previous, release := q.reserve(key)
	go func() {
		defer release()
		err := runAfter(ctx, previous, fn)
		if done != nil {
			done(err)
		}
	}()
}

// Len возвращает количество ключей с активными цепочками.
func (q *KeyedQueue[K]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.chains)
}

func runAfter(ctx context.Context, previous <-chan struct{}, fn func(context.Context) error) error {
	if previous != nil {
		select {
		case <-previous:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return fn(ctx)
}
