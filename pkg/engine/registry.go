package engine

import (
	"sync"

	"github.com/0xDTC/0xAWSCloud/pkg/core"
)

// Registry is the admission-control set shared by all workers. Claim is
// linearizable: exactly one caller per target wins, and a claim is never
// released. Every backend path must claim before touching the network.
type Registry struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{seen: make(map[string]struct{})}
}

// Claim admits a target. The first caller gets true; everyone after, false.
func (r *Registry) Claim(t core.Target) bool {
	key := t.Key()
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.seen[key]; ok {
		return false
	}
	r.seen[key] = struct{}{}
	return true
}

// Size reports how many targets have been claimed so far.
func (r *Registry) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.seen)
}
