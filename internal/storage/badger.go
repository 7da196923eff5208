package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/duetrack/duetrack/internal/model"
)

// badgerSubdir is the Badger value-log directory under the data directory.
const badgerSubdir = "badger"

// keyPrefix namespaces homework records inside the key space.
const keyPrefix = "homework:"

// BadgerOptions configures the Badger backend.
type BadgerOptions struct {
	// Dir is the data directory. The store lives in Dir/badger.
	Dir string
	// InMemory keeps everything off disk, regardless of Dir.
	InMemory bool
}

// BadgerRepo is a key-value backend over Badger with the same observable
// semantics as the other backends. Records are stored as JSON values under
// "homework:<uid>". Badger serializes its own transactions, but the repo
// still holds an exclusive lock per logical operation so read-modify-write
// sequences (patch, delete) match the other backends exactly.
type BadgerRepo struct {
	mu sync.Mutex
	db *badger.DB
}

// NewBadgerRepo opens or creates a Badger store.
func NewBadgerRepo(opts BadgerOptions) (*BadgerRepo, error) {
	var badgerOpts badger.Options
	if opts.InMemory || opts.Dir == "" {
		badgerOpts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		path := filepath.Join(opts.Dir, badgerSubdir)
		if err := os.MkdirAll(path, 0755); err != nil {
			return nil, fmt.Errorf("%w: create dir %s: %v", ErrUnavailable, path, err)
		}
		badgerOpts = badger.DefaultOptions(path)
	}
	badgerOpts = badgerOpts.WithLoggingLevel(badger.ERROR)

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("%w: open badger: %v", ErrUnavailable, err)
	}
	return &BadgerRepo{db: db}, nil
}

// Close closes the underlying store.
func (r *BadgerRepo) Close() error {
	return r.db.Close()
}

// get reads and decodes one record. Callers must hold r.mu.
func (r *BadgerRepo) get(uid string) (*model.HomeworkRecord, error) {
	var rec model.HomeworkRecord
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + uid))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		var jsonErr *json.SyntaxError
		if errors.As(err, &jsonErr) {
			return nil, fmt.Errorf("%w: decode %s: %v", ErrSerde, uid, err)
		}
		return nil, fmt.Errorf("%w: get %s: %v", ErrUnknown, uid, err)
	}
	return &rec, nil
}

// set encodes and writes one record. Callers must hold r.mu.
func (r *BadgerRepo) set(rec *model.HomeworkRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrSerde, rec.UID, err)
	}
	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPrefix+rec.UID), data)
	})
	if err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrUnknown, rec.UID, err)
	}
	return nil
}

// List returns non-deleted records sorted ascending by due text.
func (r *BadgerRepo) List() ([]model.HomeworkRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []model.HomeworkRecord{}
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchSize = 100
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var rec model.HomeworkRecord
				if err := json.Unmarshal(val, &rec); err != nil {
					return err
				}
				if !rec.Deleted {
					out = append(out, rec)
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: list: %v", ErrUnknown, err)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DueText < out[j].DueText
	})
	return out, nil
}

// Get returns the record for uid, soft-deleted or not.
func (r *BadgerRepo) Get(uid string) (*model.HomeworkRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.get(uid)
}

// Create assigns a fresh uid and timestamps and stores the record.
func (r *BadgerRepo) Create(payload model.NewHomework) (*model.HomeworkRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec := newRecord(payload, nowUnix())
	if err := r.set(&rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Update replaces all fields of an existing record by uid.
func (r *BadgerRepo) Update(rec model.HomeworkRecord) (*model.HomeworkRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.get(rec.UID); err != nil {
		return nil, err
	}
	rec.UpdatedAt = nowUnix()
	if err := r.set(&rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Patch merges the present fields of p into the stored record.
func (r *BadgerRepo) Patch(uid string, p model.Patch) (*model.HomeworkRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, err := r.get(uid)
	if err != nil {
		return nil, err
	}
	rec.ApplyPatch(p, nowUnix())
	if err := r.set(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Delete soft-deletes the record. A second call on the same uid succeeds.
func (r *BadgerRepo) Delete(uid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, err := r.get(uid)
	if err != nil {
		return err
	}
	rec.Deleted = true
	rec.UpdatedAt = nowUnix()
	return r.set(rec)
}
