package memory

import (
	"context"
	"sync"

	"solon/contexts/registry-governance/admission-engine/ports"
)

// RegistryRecorder captures downstream registrations for tests and local
// development wiring.
type RegistryRecorder struct {
	mu      sync.Mutex
	entries []ports.RegistryEntry
}

func NewRegistryRecorder() *RegistryRecorder {
	return &RegistryRecorder{}
}

func (r *RegistryRecorder) RegisterApproved(_ context.Context, entry ports.RegistryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

// Entries returns the recorded registrations in call order.
func (r *RegistryRecorder) Entries() []ports.RegistryEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ports.RegistryEntry(nil), r.entries...)
}
