package publications

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryPublicationRepository is an in-memory implementation for scaffolding
// and tests.
type MemoryPublicationRepository struct {
	mu        sync.RWMutex
	records   map[uuid.UUID]*Publication
	pathIndex map[string]uuid.UUID
}

// NewMemoryPublicationRepository creates an empty in-memory repository.
func NewMemoryPublicationRepository() *MemoryPublicationRepository {
	return &MemoryPublicationRepository{
		records:   make(map[uuid.UUID]*Publication),
		pathIndex: make(map[string]uuid.UUID),
	}
}

// Create inserts the supplied publication.
func (m *MemoryPublicationRepository) Create(_ context.Context, record *Publication) (*Publication, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := clonePublication(record)
	m.records[copied.ID] = copied
	m.pathIndex[copied.Path] = copied.ID
	return clonePublication(copied), nil
}

// Upsert inserts or replaces the publication for the record's ID.
func (m *MemoryPublicationRepository) Upsert(ctx context.Context, record *Publication) (*Publication, error) {
	return m.Create(ctx, record)
}

// GetByID retrieves a publication by identifier.
func (m *MemoryPublicationRepository) GetByID(_ context.Context, id uuid.UUID) (*Publication, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[id]
	if !ok {
		return nil, &NotFoundError{Resource: "publication", Key: id.String()}
	}
	return clonePublication(rec), nil
}

// GetByPath retrieves a publication by bundle path, returning NotFoundError
// when absent.
func (m *MemoryPublicationRepository) GetByPath(_ context.Context, path string) (*Publication, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.pathIndex[path]
	if !ok {
		return nil, &NotFoundError{Resource: "publication", Key: path}
	}
	return clonePublication(m.records[id]), nil
}

// List returns all publication entries.
func (m *MemoryPublicationRepository) List(_ context.Context) ([]*Publication, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Publication, 0, len(m.records))
	for _, rec := range m.records {
		out = append(out, clonePublication(rec))
	}
	return out, nil
}

// Delete removes the publication matching the record's ID.
func (m *MemoryPublicationRepository) Delete(_ context.Context, record *Publication) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[record.ID]
	if !ok {
		return &NotFoundError{Resource: "publication", Key: record.ID.String()}
	}
	delete(m.pathIndex, rec.Path)
	delete(m.records, rec.ID)
	return nil
}

func clonePublication(src *Publication) *Publication {
	if src == nil {
		return nil
	}
	copied := *src
	copied.Checksum = append([]byte(nil), src.Checksum...)
	return &copied
}
