package handler

import "sync"

// Registry tracks the outbound channel of every connected client. It only
// exposes register/remove/broadcast so call sites cannot touch the lock or
// iterate the map themselves.
type Registry struct {
	mu    sync.RWMutex
	next  int
	conns map[int]chan<- []byte
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		conns: make(map[int]chan<- []byte),
	}
}

// Add registers an outbound channel and returns its connection id.
func (r *Registry) Add(ch chan<- []byte) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.next++
	id := r.next
	r.conns[id] = ch
	return id
}

// Remove drops and closes the channel registered under id, stopping its
// write pump. Removing an unknown id is a no-op. Closing happens under the
// write lock so a concurrent Broadcast can never send on a closed channel.
func (r *Registry) Remove(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ch, ok := r.conns[id]; ok {
		close(ch)
		delete(r.conns, id)
	}
}

// Len returns the number of registered connections.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.conns)
}

// Broadcast sends frame to every registered channel and returns how many
// channels were targeted. The sends never block, so holding the read lock
// across them keeps the critical section short while excluding Remove's
// close.
func (r *Registry) Broadcast(frame []byte) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, ch := range r.conns {
		select {
		case ch <- frame:
		default:
			// 受信が詰まっているクライアントはこのフレームを落とす
		}
	}

	return len(r.conns)
}
