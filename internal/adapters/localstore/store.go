// Package localstore persists the whole record collection as one JSON
// file, read and rewritten as a unit on every operation.
package localstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/JayDev810/working-project-list/internal/domain/entities"
	"github.com/JayDev810/working-project-list/internal/infrastructure/logger"
	"github.com/JayDev810/working-project-list/internal/ports"
)

// Store is the local record store. A mutex serializes the read-modify-write
// cycle; the original design was safe only because a single actor mutated
// the slot, and the lock preserves that property here.
type Store struct {
	path   string
	mu     sync.Mutex
	logger *logger.Logger
}

var _ ports.LocalRecordStore = (*Store)(nil)

// New creates a local store backed by the JSON file at path.
func New(path string, log *logger.Logger) *Store {
	return &Store{
		path:   path,
		logger: log.WithComponent("localstore"),
	}
}

// List returns the full collection. On first-ever use it seeds the slot
// with the sample dataset and persists it before returning; every later
// call sees only what was written.
func (s *Store) List(ctx context.Context) ([]entities.WorkRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadOrSeed()
}

// Existing returns the collection as persisted, empty when the slot has
// never been written. The migration bridge uses it so migrating an empty
// slot does not fabricate seed records.
func (s *Store) Existing(ctx context.Context) ([]entities.WorkRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, found, err := s.load()
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return records, nil
}

// Save replaces the record with a matching id, or appends it. UpdatedAt is
// stamped on every save; CreatedAt only when the record is new to the slot.
func (s *Store) Save(ctx context.Context, record *entities.WorkRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.loadOrSeed()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	record.UpdatedAt = now

	replaced := false
	for i := range records {
		if records[i].ID == record.ID {
			record.CreatedAt = records[i].CreatedAt
			records[i] = *record
			replaced = true
			break
		}
	}
	if !replaced {
		record.CreatedAt = now
		records = append(records, *record)
	}

	if err := s.persist(records); err != nil {
		return err
	}

	s.logger.LogStoreOperation("save", record.ID, nil)
	return nil
}

// Delete removes the record with the given id and writes the collection
// back. A missing id is a no-op success.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.loadOrSeed()
	if err != nil {
		return err
	}

	kept := records[:0]
	for _, r := range records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}

	if err := s.persist(kept); err != nil {
		return err
	}

	s.logger.LogStoreOperation("delete", id, nil)
	return nil
}

func (s *Store) loadOrSeed() ([]entities.WorkRecord, error) {
	records, found, err := s.load()
	if err != nil {
		return nil, err
	}
	if found {
		return records, nil
	}

	seed := SeedRecords(time.Now().UTC())
	if err := s.persist(seed); err != nil {
		return nil, err
	}
	s.logger.Infow("Seeded local store with sample records", "count", len(seed), "path", s.path)
	return seed, nil
}

func (s *Store) load() ([]entities.WorkRecord, bool, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("storage error reading %s: %w", s.path, err)
	}

	var records []entities.WorkRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, false, fmt.Errorf("storage error: corrupt JSON in %s: %w", s.path, err)
	}
	return records, true, nil
}

func (s *Store) persist(records []entities.WorkRecord) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("storage error creating directories: %w", err)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("storage error marshalling JSON: %w", err)
	}

	// Atomic write: write to temp file then rename.
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error renaming temp file: %w", err)
	}
	return nil
}
