package state

import "sync"

// Store - единственный канал изменения состояния. Слушатели вызываются после каждого Dispatch.
type Store struct {
	mu        sync.Mutex
	state     State
	listeners map[int]func(State)
	nextID    int
}

func NewStore(initial State) *Store {
	return &Store{state: initial, listeners: make(map[int]func(State))}
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch применяет действие и уведомляет слушателей новым состоянием.
func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	s.state = Reduce(s.state, a)
	next := s.state
	fns := make([]func(State), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(next)
	}
	return next
}

// Subscribe возвращает функцию отписки.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}
