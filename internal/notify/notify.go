package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Notifier recebe o resultado terminal de cada operação de agenda.
// É fire-and-forget: o chamador não depende do retorno.
type Notifier interface {
	Notify(ctx context.Context, operatorID uint, kind Kind, message string)
}

// Log escreve as notificações no logger estruturado.
type Log struct {
	logger *slog.Logger
}

func NewLog(logger *slog.Logger) *Log {
	if logger == nil {
		logger = slog.Default()
	}
	return &Log{logger: logger}
}

func (l *Log) Notify(ctx context.Context, operatorID uint, kind Kind, message string) {
	level := slog.LevelInfo
	if kind == KindError {
		level = slog.LevelWarn
	}
	l.logger.Log(ctx, level, "notification",
		"operator_id", operatorID,
		"kind", string(kind),
		"message", message,
	)
}

// Message is one entry of an operator feed.
type Message struct {
	Kind    Kind      `json:"kind"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Feed keeps the latest notifications per operator for the UI to poll.
type Feed struct {
	mu    sync.Mutex
	limit int
	now   func() time.Time
	items map[uint][]Message
}

func NewFeed(limit int) *Feed {
	if limit <= 0 {
		limit = 50
	}
	return &Feed{
		limit: limit,
		now:   time.Now,
		items: make(map[uint][]Message),
	}
}

func (f *Feed) Notify(_ context.Context, operatorID uint, kind Kind, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	list := append(f.items[operatorID], Message{Kind: kind, Message: message, At: f.now()})
	if len(list) > f.limit {
		list = list[len(list)-f.limit:]
	}
	f.items[operatorID] = list
}

// Drain devolve e limpa as notificações pendentes do operador.
func (f *Feed) Drain(operatorID uint) []Message {
	f.mu.Lock()
	defer f.mu.Unlock()

	list := f.items[operatorID]
	delete(f.items, operatorID)
	if list == nil {
		return []Message{}
	}
	return list
}

// Multi repassa para vários destinos.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, operatorID uint, kind Kind, message string) {
	for _, n := range m {
		if n != nil {
			n.Notify(ctx, operatorID, kind, message)
		}
	}
}
