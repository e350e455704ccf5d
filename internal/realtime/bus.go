package realtime

import (
	"context"
	"errors"
	"sync"
)

// Bus доставляет сообщения всем инстансам сервера. Каждый инстанс пересылает их в свой Hub.
type Bus interface {
	Publish(ctx context.Context, msg Message) error
	StartForwarder(ctx context.Context, onMsg func(m Message)) error
	Close() error
}

var ErrBusClosed = errors.New("bus closed")

// memoryBus - шина в пределах одного процесса.
type memoryBus struct {
	mu       sync.RWMutex
	handlers []func(Message)
	closed   bool
}

func NewMemoryBus() Bus {
	return &memoryBus{}
}

func (b *memoryBus) Publish(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return ErrBusClosed
	}
	for _, h := range b.handlers {
		h(msg)
	}
	return nil
}

func (b *memoryBus) StartForwarder(ctx context.Context, onMsg func(m Message)) error {
	if onMsg == nil {
		return errors.New("onMsg callback required")
	}
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrBusClosed
	}
	b.handlers = append(b.handlers, onMsg)
	idx := len(b.handlers) - 1
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		defer b.mu.Unlock()
		if idx < len(b.handlers) {
			b.handlers[idx] = func(Message) {}
		}
	}()
	return nil
}

func (b *memoryBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.handlers = nil
	return nil
}
