package appointment

import (
	"context"
	"sync"
)

// Queue serializa mutações por id de agendamento, em ordem de chegada.
// Ids diferentes não se bloqueiam.
type Queue struct {
	mu    sync.Mutex
	tails map[uint]chan struct{}
}

func NewQueue() *Queue {
	return &Queue{tails: make(map[uint]chan struct{})}
}

// Acquire waits for every earlier mutation on id. The returned release must
// be called exactly once when the mutation is resolved.
func (q *Queue) Acquire(ctx context.Context, id uint) (func(), error) {
	q.mu.Lock()
	prev := q.tails[id]
	done := make(chan struct{})
	q.tails[id] = done
	q.mu.Unlock()

	var once sync.Once
	release := func() {
		once.Do(func() {
			close(done)
			q.mu.Lock()
			if q.tails[id] == done {
				delete(q.tails, id)
			}
			q.mu.Unlock()
		})
	}

	if prev == nil {
		return release, nil
	}

	select {
	case <-prev:
		return release, nil
	case <-ctx.Done():
		// mantém a fila: quem vem depois ainda espera o anterior
		go func() {
			<-prev
			release()
		}()
		return nil, ctx.Err()
	}
}

// InFlight reports whether some mutation on id is pending.
func (q *Queue) InFlight(id uint) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	_, ok := q.tails[id]
	return ok
}
