package kind

import (
	"fmt"
	"sync"
)

// ID is a dense, zero-based event kind identifier.
type ID int

// Registry assigns dense ids to event kinds during setup.
// It is thread-safe, though registration is normally single-threaded
// setup code.
type Registry struct {
	mu     sync.Mutex
	names  []string
	frozen bool
}

// NewRegistry creates an empty, unfrozen registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register assigns the next free id to a new event kind.
// The name is retained for diagnostics only and need not be unique.
// Register panics if the registry has been frozen: the id space is
// closed once handler tables have been sized.
func (r *Registry) Register(name string) ID {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		panic(fmt.Sprintf("kind: Register(%q) after Freeze", name))
	}

	id := ID(len(r.names))
	r.names = append(r.names, name)
	return id
}

// Freeze closes the id space. Freeze is idempotent.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.frozen = true
}

// Frozen reports whether the registry has been frozen.
func (r *Registry) Frozen() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.frozen
}

// Count returns the number of registered kinds.
// It panics if the registry is not yet frozen, because the count is only
// meaningful (and only used) for sizing handler tables after setup.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.frozen {
		panic("kind: Count before Freeze")
	}
	return len(r.names)
}

// Name returns the diagnostic name registered for id, or "" when the id
// is out of range.
func (r *Registry) Name(id ID) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id < 0 || int(id) >= len(r.names) {
		return ""
	}
	return r.names[id]
}
