package storage

import (
	"sort"
	"sync"

	"github.com/duetrack/duetrack/internal/model"
)

// MemoryRepo is the volatile backend: a uid-keyed map guarded by a single
// coarse lock. Nothing survives a process restart. Selected by the factory
// when no data directory is configured.
type MemoryRepo struct {
	mu      sync.Mutex
	records map[string]model.HomeworkRecord
}

// NewMemoryRepo creates an empty in-memory repository.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{records: make(map[string]model.HomeworkRecord)}
}

// List returns non-deleted records sorted ascending by due text. The sort
// runs on a snapshot copy while the lock is held, so concurrent mutation
// never races an in-flight sort.
func (r *MemoryRepo) List() ([]model.HomeworkRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]model.HomeworkRecord, 0, len(r.records))
	for _, rec := range r.records {
		if !rec.Deleted {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DueText < out[j].DueText
	})
	return out, nil
}

// Get returns the record for uid, soft-deleted or not.
func (r *MemoryRepo) Get(uid string) (*model.HomeworkRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[uid]
	if !ok {
		return nil, ErrNotFound
	}
	return &rec, nil
}

// Create assigns a fresh uid and timestamps and stores the record.
func (r *MemoryRepo) Create(payload model.NewHomework) (*model.HomeworkRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec := newRecord(payload, nowUnix())
	r.records[rec.UID] = rec
	return &rec, nil
}

// Update replaces all fields of an existing record by uid.
func (r *MemoryRepo) Update(rec model.HomeworkRecord) (*model.HomeworkRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[rec.UID]; !ok {
		return nil, ErrNotFound
	}
	rec.UpdatedAt = nowUnix()
	r.records[rec.UID] = rec
	return &rec, nil
}

// Patch merges the present fields of p into the stored record.
func (r *MemoryRepo) Patch(uid string, p model.Patch) (*model.HomeworkRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[uid]
	if !ok {
		return nil, ErrNotFound
	}
	rec.ApplyPatch(p, nowUnix())
	r.records[uid] = rec
	return &rec, nil
}

// Delete soft-deletes the record. A second call on the same uid succeeds.
func (r *MemoryRepo) Delete(uid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[uid]
	if !ok {
		return ErrNotFound
	}
	rec.Deleted = true
	rec.UpdatedAt = nowUnix()
	r.records[uid] = rec
	return nil
}
