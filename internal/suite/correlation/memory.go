package correlation

import "sync"

// MemoryBackend keeps records in process memory. Used by tests and dry runs.
type MemoryBackend struct {
	mu   sync.Mutex
	recs []Record
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (b *MemoryBackend) ReadAll() ([]Record, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Record, len(b.recs))
	copy(out, b.recs)
	return out, nil
}

func (b *MemoryBackend) Append(rec Record) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.recs = append(b.recs, rec)
	return nil
}

func (b *MemoryBackend) Clear() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.recs = nil
	return nil
}
