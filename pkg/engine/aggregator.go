package engine

import (
	"sync"

	"github.com/0xDTC/0xAWSCloud/pkg/core"
)

// Aggregator accumulates findings in first-recorded order. The registry
// guarantees at most one Record per target, so there is no merging.
type Aggregator struct {
	mu       sync.Mutex
	findings []core.Finding
}

func NewAggregator() *Aggregator {
	return &Aggregator{}
}

func (a *Aggregator) Record(f core.Finding) {
	a.mu.Lock()
	a.findings = append(a.findings, f)
	a.mu.Unlock()
}

// Report returns a copy of the findings in insertion order.
func (a *Aggregator) Report() []core.Finding {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]core.Finding, len(a.findings))
	copy(out, a.findings)
	return out
}

func (a *Aggregator) AnyFound() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.findings) > 0
}
