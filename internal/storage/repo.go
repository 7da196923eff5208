// Package storage provides the persistence layer for duetrack: a single
// repository contract with interchangeable backends (memory, JSON file,
// SQLite, Badger) that share observable semantics.
package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/google/uuid"

	"github.com/duetrack/duetrack/internal/model"
)

// AppName is the application name used for data directories.
const AppName = "duetrack"

// Sentinel errors forming the repository error taxonomy. Backends wrap these
// with %w so callers can match via errors.Is or the helpers below. All of
// them are recoverable: a failed operation leaves stored state unchanged.
var (
	// ErrNotFound is returned by uid-keyed operations when no record with
	// that uid has ever existed.
	ErrNotFound = errors.New("homework not found")
	// ErrUnavailable is returned when the storage medium cannot be opened
	// or accessed.
	ErrUnavailable = errors.New("storage unavailable")
	// ErrSerde is returned when persisted data cannot be encoded or decoded.
	ErrSerde = errors.New("serialization failed")
	// ErrSQL is returned for query-layer failures in the SQLite backend.
	ErrSQL = errors.New("sql failure")
	// ErrUnknown is the catch-all for unclassified storage failures.
	ErrUnknown = errors.New("unknown storage error")
)

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnavailable returns true if the error indicates an inaccessible medium.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// Repo is the repository contract every backend satisfies.
//
// Semantics, uniform across backends:
//   - List returns non-deleted records sorted ascending by due text.
//   - Get returns the record regardless of its deleted flag; soft-deleted
//     records stay fetchable so an edit flow can recover a just-deleted item.
//   - Update is a full replace by uid; the caller-supplied UpdatedAt is
//     overwritten.
//   - Patch merges only the present fields and always refreshes UpdatedAt.
//   - Delete is soft: the record stays in storage with Deleted=true and is
//     excluded from List. A second Delete on the same uid still succeeds.
//
// Every implementation is safe for concurrent use within one process. There
// is no cross-process coordination.
type Repo interface {
	List() ([]model.HomeworkRecord, error)
	Get(uid string) (*model.HomeworkRecord, error)
	Create(payload model.NewHomework) (*model.HomeworkRecord, error)
	Update(rec model.HomeworkRecord) (*model.HomeworkRecord, error)
	Patch(uid string, p model.Patch) (*model.HomeworkRecord, error)
	Delete(uid string) error
}

// Driver names a concrete backend.
type Driver string

const (
	DriverMemory Driver = "memory"
	DriverJSON   Driver = "json"
	DriverSQLite Driver = "sqlite"
	DriverBadger Driver = "badger"
)

// ParseDriver validates a driver name.
func ParseDriver(s string) (Driver, error) {
	switch Driver(s) {
	case DriverMemory, DriverJSON, DriverSQLite, DriverBadger:
		return Driver(s), nil
	case "":
		return "", fmt.Errorf("driver is empty")
	default:
		return "", fmt.Errorf("unknown driver %q (want memory, json, sqlite, or badger)", s)
	}
}

// Options configures backend selection.
type Options struct {
	// Dir is the data directory. Empty selects the volatile memory backend.
	Dir string
	// Driver overrides the default choice. When empty: no Dir means memory,
	// a Dir means sqlite.
	Driver Driver
}

// DefaultPath returns the default data directory following the XDG spec.
func DefaultPath() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// Open selects and initializes a backend. One Repo instance owns one
// configured storage location; open a location once and share the handle.
func Open(opts Options) (Repo, error) {
	driver := opts.Driver
	if driver == "" {
		if opts.Dir == "" {
			driver = DriverMemory
		} else {
			driver = DriverSQLite
		}
	}

	switch driver {
	case DriverMemory:
		return NewMemoryRepo(), nil
	case DriverJSON:
		if opts.Dir == "" {
			return nil, fmt.Errorf("%w: json backend requires a data directory", ErrUnavailable)
		}
		return NewJSONRepo(opts.Dir)
	case DriverSQLite:
		if opts.Dir == "" {
			return nil, fmt.Errorf("%w: sqlite backend requires a data directory", ErrUnavailable)
		}
		return NewSQLiteRepo(opts.Dir)
	case DriverBadger:
		return NewBadgerRepo(BadgerOptions{Dir: opts.Dir, InMemory: opts.Dir == ""})
	default:
		return nil, fmt.Errorf("%w: unknown driver %q", ErrUnavailable, driver)
	}
}

// nowUnix returns the current epoch seconds. Overridable in tests.
var nowUnix = func() int64 {
	return time.Now().Unix()
}

// newUID generates a URL-safe, lexicographically sortable unique identifier.
// UUIDv7 places the timestamp in the high bits, so string order follows
// creation order.
func newUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Rand source failure. Random v4 loses sort order but stays unique.
		return uuid.New().String()
	}
	return id.String()
}

// newRecord builds the persisted record for a creation payload. Nil slices
// are normalized to empty so every backend serializes [] rather than null.
func newRecord(payload model.NewHomework, now int64) model.HomeworkRecord {
	tags := payload.Tags
	if tags == nil {
		tags = []string{}
	}
	milestones := payload.Milestones
	if milestones == nil {
		milestones = []model.Milestone{}
	}
	return model.HomeworkRecord{
		UID:           newUID(),
		Name:          payload.Name,
		DueText:       payload.DueText,
		Difficulty:    payload.Difficulty,
		Progress:      payload.Progress,
		Tags:          tags,
		Milestones:    milestones,
		Deleted:       false,
		CreatedAt:     now,
		UpdatedAt:     now,
		SchemaVersion: model.SchemaVersion,
	}
}
