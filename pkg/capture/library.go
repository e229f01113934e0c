package capture

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"

	"github.com/infrared-remote/ir-go/pkg/device"
	"github.com/infrared-remote/ir-go/pkg/ir"
	"github.com/infrared-remote/ir-go/pkg/wire"
)

// LibraryVersion is the current version of the library file format.
const LibraryVersion = 1

// Library errors.
var (
	ErrNotFound  = errors.New("capture not found")
	ErrDuplicate = errors.New("capture already in library")
	ErrNoName    = errors.New("capture name is required")
)

// Library is the on-disk form of the capture library.
type Library struct {
	// Version is the library file format version.
	Version int `json:"version"`

	// SavedAt is when the library was last saved.
	SavedAt time.Time `json:"saved_at"`

	// Entries are kept in insertion order.
	Entries []Entry `json:"entries,omitempty"`
}

// Entry is one saved capture.
type Entry struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Fingerprint string              `json:"fingerprint"`
	Format      string              `json:"format,omitempty"`
	Input       string              `json:"input"`
	Protocols   []string            `json:"protocols"`
	Codes       []map[string]string `json:"codes,omitempty"`
	SavedAt     time.Time           `json:"saved_at"`
}

// NewEntry builds an entry for a decoded capture. The ID and save time are
// assigned by Store.Add.
func NewEntry(name, format, input string, frames []ir.DemodulatedFrame, codes []device.ControlCode) (Entry, error) {
	fp, err := Fingerprint(frames)
	if err != nil {
		return Entry{}, err
	}
	e := Entry{
		Name:        name,
		Fingerprint: fp,
		Format:      format,
		Input:       input,
		Protocols:   make([]string, len(frames)),
	}
	for i, f := range frames {
		e.Protocols[i] = f.Protocol().String()
	}
	for _, c := range codes {
		e.Codes = append(e.Codes, c.Fields())
	}
	return e, nil
}

// Fingerprint hashes the wire form of frames with BLAKE2b-256. Frames with
// equal bits fingerprint equally regardless of pulse timing; unknown frames
// hash their raw pulses.
func Fingerprint(frames []ir.DemodulatedFrame) (string, error) {
	records := make([]wire.Frame, len(frames))
	for i, f := range frames {
		records[i] = wire.FrameOf(f)
	}
	data, err := wire.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Store manages persistence of the capture library to a JSON file.
// It is safe for concurrent use.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the library file path.
func (s *Store) Path() string { return s.path }

// Load reads the library from disk.
// A missing file yields an empty library.
func (s *Store) Load() (*Library, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() (*Library, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return &Library{Version: LibraryVersion}, nil
	}
	if err != nil {
		return nil, err
	}

	lib := &Library{}
	if err := json.Unmarshal(data, lib); err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return lib, nil
}

// Save persists the library to disk.
func (s *Store) Save(lib *Library) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(lib)
}

func (s *Store) save(lib *Library) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	lib.Version = LibraryVersion
	lib.SavedAt = time.Now()

	data, err := json.MarshalIndent(lib, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}

// Add stores e under a new ID and returns the stored entry. An entry with
// the same fingerprint already in the library yields ErrDuplicate together
// with the existing entry.
func (s *Store) Add(e Entry) (Entry, error) {
	if e.Name == "" {
		return Entry{}, ErrNoName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lib, err := s.load()
	if err != nil {
		return Entry{}, err
	}
	for _, existing := range lib.Entries {
		if existing.Fingerprint == e.Fingerprint {
			return existing, fmt.Errorf("%w: %s (%s)", ErrDuplicate, existing.Name, existing.ID)
		}
	}

	e.ID = uuid.NewString()
	e.SavedAt = time.Now()
	lib.Entries = append(lib.Entries, e)
	if err := s.save(lib); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// Get returns the entry whose ID or name is key.
func (s *Store) Get(key string) (Entry, error) {
	lib, err := s.Load()
	if err != nil {
		return Entry{}, err
	}
	for _, e := range lib.Entries {
		if e.ID == key || e.Name == key {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, key)
}

// List returns every entry in insertion order.
func (s *Store) List() ([]Entry, error) {
	lib, err := s.Load()
	if err != nil {
		return nil, err
	}
	return lib.Entries, nil
}

// Remove deletes the entry whose ID or name is key.
func (s *Store) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lib, err := s.load()
	if err != nil {
		return err
	}
	for i, e := range lib.Entries {
		if e.ID == key || e.Name == key {
			lib.Entries = append(lib.Entries[:i], lib.Entries[i+1:]...)
			return s.save(lib)
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, key)
}

// Clear removes the library file.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
