package impl

import (
	"sync"

	"aura/internal/domain/entity"
)

// stateHolder is the single writer of the observable auth state. Transitions
// replace the whole value and notify subscribers synchronously while the
// lock is held, so observers always see transitions in commit order and
// never a stale intermediate value twice.
type stateHolder struct {
	mu          sync.Mutex
	current     entity.AuthState
	subscribers map[int]func(entity.AuthState)
	nextID      int
}

func newStateHolder() *stateHolder {
	return &stateHolder{
		current:     entity.Loading(),
		subscribers: make(map[int]func(entity.AuthState)),
	}
}

// Current returns the current state.
func (h *stateHolder) Current() entity.AuthState {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.current
}

// Subscribe registers fn and returns an unsubscribe function. Callbacks run
// under the holder's lock and must not call back into it.
func (h *stateHolder) Subscribe(fn func(entity.AuthState)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	h.subscribers[id] = fn

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subscribers, id)
	}
}

// Set commits a transition and notifies every subscriber before returning.
func (h *stateHolder) Set(state entity.AuthState) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.current = state
	for _, fn := range h.subscribers {
		fn(state)
	}
}
