// Package cloudstore persists one row per record in the Postgres
// work_records table and exposes a push-based refresh channel built on
// LISTEN/NOTIFY.
package cloudstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/JayDev810/working-project-list/internal/domain/entities"
	"github.com/JayDev810/working-project-list/internal/infrastructure/database"
	"github.com/JayDev810/working-project-list/internal/infrastructure/logger"
	"github.com/JayDev810/working-project-list/internal/ports"
)

// NotifyChannel is the NOTIFY topic the work_records trigger fires on
// every insert, update or delete.
const NotifyChannel = "work_records_changes"

const pqUndefinedTable = "42P01"

// Store is the cloud record store. A nil database handle is the "not
// configured" state: every operation reports entities.ErrNotConfigured
// instead of failing at construction, so the caller can surface a
// user-actionable setup message.
type Store struct {
	db     *database.DB
	logger *logger.Logger
}

var _ ports.CloudRecordStore = (*Store)(nil)

// New creates a cloud store over the given connection, which may be nil.
func New(db *database.DB, log *logger.Logger) *Store {
	return &Store{
		db:     db,
		logger: log.WithComponent("cloudstore"),
	}
}

// IsConfigured reports whether a database connection is open.
func (s *Store) IsConfigured() bool {
	return s.db != nil
}

// List fetches every record. Rows hold the full serialized record in the
// content column; each is decoded as-is.
func (s *Store) List(ctx context.Context) ([]entities.WorkRecord, error) {
	if !s.IsConfigured() {
		return nil, entities.ErrNotConfigured
	}

	query := `SELECT content FROM work_records ORDER BY content->>'date' DESC, id`

	rows, err := s.db.DB.QueryxContext(ctx, query)
	if err != nil {
		return nil, classify(err, "fetch records")
	}
	defer rows.Close()

	records := make([]entities.WorkRecord, 0)
	for rows.Next() {
		var content []byte
		if err := rows.Scan(&content); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		var record entities.WorkRecord
		if err := json.Unmarshal(content, &record); err != nil {
			return nil, fmt.Errorf("decode record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err, "fetch records")
	}

	return records, nil
}

// Save upserts the record by id, always replacing the full document.
// Success guarantees durability only; subscribers observe the change via
// the notification channel.
func (s *Store) Save(ctx context.Context, record *entities.WorkRecord) error {
	if !s.IsConfigured() {
		return entities.ErrNotConfigured
	}

	now := time.Now().UTC()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now

	if err := upsert(ctx, s.db.DB, record); err != nil {
		return err
	}

	s.logger.LogStoreOperation("save", record.ID, nil)
	return nil
}

// Delete removes the row with the given id; a missing row is success.
func (s *Store) Delete(ctx context.Context, id string) error {
	if !s.IsConfigured() {
		return entities.ErrNotConfigured
	}

	if _, err := s.db.DB.ExecContext(ctx, `DELETE FROM work_records WHERE id = $1`, id); err != nil {
		return classify(err, "delete record")
	}

	s.logger.LogStoreOperation("delete", id, nil)
	return nil
}

// DeleteByOwner removes every record belonging to the given developer.
func (s *Store) DeleteByOwner(ctx context.Context, developerName string) error {
	if !s.IsConfigured() {
		return entities.ErrNotConfigured
	}

	query := `DELETE FROM work_records WHERE content->>'developerName' = $1`
	if _, err := s.db.DB.ExecContext(ctx, query, developerName); err != nil {
		return classify(err, "delete records by owner")
	}

	s.logger.Infow("Deleted records by owner", "developer", developerName)
	return nil
}

// SaveAll upserts every record in one transaction. Re-running with the same
// input overwrites rows with identical content instead of duplicating them.
func (s *Store) SaveAll(ctx context.Context, records []entities.WorkRecord) error {
	if !s.IsConfigured() {
		return entities.ErrNotConfigured
	}

	err := s.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		for i := range records {
			if err := upsert(ctx, tx, &records[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Infow("Batch upsert completed", "count", len(records))
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func upsert(ctx context.Context, db execer, record *entities.WorkRecord) error {
	content, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	query := `
		INSERT INTO work_records (id, content)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET content = EXCLUDED.content`

	if _, err := db.ExecContext(ctx, query, record.ID, content); err != nil {
		return classify(err, "save record")
	}
	return nil
}

// classify maps driver errors onto the domain taxonomy. A missing table is
// a setup error and must never be reported as a transient fault.
func classify(err error, op string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pqUndefinedTable {
		return fmt.Errorf("%w (create it with the schema command)", entities.ErrSchemaMissing)
	}
	return fmt.Errorf("%s: %w", op, err)
}
