package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/duetrack/duetrack/internal/logging"
	"github.com/duetrack/duetrack/internal/model"
)

// jsonFileName is the flat-file collection under the data directory.
const jsonFileName = "deadlines.json"

// JSONRepo is the flat-file backend: the whole collection lives in a single
// JSON array and every operation reads the entire file; mutations rewrite it
// wholesale. A single lock serializes all file access within this process.
// It offers no protection against other processes touching the file.
//
// Known trade-offs, kept deliberately:
//   - A file that exists but fails to parse is treated as an empty
//     collection instead of surfacing an error. Availability over
//     strictness; a warning is logged because this can mask corruption.
//   - Writes truncate and rewrite in place (no atomic rename), so a crash
//     mid-write can corrupt the file.
type JSONRepo struct {
	path string
	mu   sync.Mutex
}

// NewJSONRepo opens the flat-file backend under dir, creating the directory
// and an empty collection file if missing.
func NewJSONRepo(dir string) (*JSONRepo, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: create dir %s: %v", ErrUnavailable, dir, err)
	}
	path := filepath.Join(dir, jsonFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, []byte("[]"), 0644); err != nil {
			return nil, fmt.Errorf("%w: init %s: %v", ErrUnavailable, path, err)
		}
	}
	return &JSONRepo{path: path}, nil
}

// Path returns the backing file path.
func (r *JSONRepo) Path() string {
	return r.path
}

// load reads the whole collection. Callers must hold r.mu.
func (r *JSONRepo) load() ([]model.HomeworkRecord, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrUnavailable, r.path, err)
	}
	var records []model.HomeworkRecord
	if err := json.Unmarshal(data, &records); err != nil {
		logging.Logger().Warn("malformed collection file, treating as empty",
			"path", r.path, "error", err)
		return []model.HomeworkRecord{}, nil
	}
	return records, nil
}

// save rewrites the whole collection. Callers must hold r.mu.
func (r *JSONRepo) save(records []model.HomeworkRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode collection: %v", ErrSerde, err)
	}
	if err := os.WriteFile(r.path, data, 0644); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrUnavailable, r.path, err)
	}
	return nil
}

// List returns non-deleted records sorted ascending by due text.
func (r *JSONRepo) List() ([]model.HomeworkRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load()
	if err != nil {
		return nil, err
	}
	out := make([]model.HomeworkRecord, 0, len(records))
	for _, rec := range records {
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
func (r *JSONRepo) Get(uid string) (*model.HomeworkRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].UID == uid {
			return &records[i], nil
		}
	}
	return nil, ErrNotFound
}

// Create appends a freshly stamped record and rewrites the file.
func (r *JSONRepo) Create(payload model.NewHomework) (*model.HomeworkRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load()
	if err != nil {
		return nil, err
	}
	rec := newRecord(payload, nowUnix())
	records = append(records, rec)
	if err := r.save(records); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Update replaces all fields of an existing record by uid.
func (r *JSONRepo) Update(rec model.HomeworkRecord) (*model.HomeworkRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].UID == rec.UID {
			rec.UpdatedAt = nowUnix()
			records[i] = rec
			if err := r.save(records); err != nil {
				return nil, err
			}
			return &rec, nil
		}
	}
	return nil, ErrNotFound
}

// Patch merges the present fields of p into the stored record.
func (r *JSONRepo) Patch(uid string, p model.Patch) (*model.HomeworkRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].UID == uid {
			records[i].ApplyPatch(p, nowUnix())
			merged := records[i]
			if err := r.save(records); err != nil {
				return nil, err
			}
			return &merged, nil
		}
	}
	return nil, ErrNotFound
}

// Delete soft-deletes the record and rewrites the file.
func (r *JSONRepo) Delete(uid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load()
	if err != nil {
		return err
	}
	for i := range records {
		if records[i].UID == uid {
			records[i].Deleted = true
			records[i].UpdatedAt = nowUnix()
			return r.save(records)
		}
	}
	return ErrNotFound
}
