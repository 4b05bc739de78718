package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type SQLCollectionStore struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewSQLCollectionStore(db *sqlx.DB) (*SQLCollectionStore, error) {
	s := &SQLCollectionStore{db: db, now: time.Now}
	if err := s.runMigrations(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

func (s *SQLCollectionStore) runMigrations() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	var current int
	if err := s.db.Get(&current, `SELECT COALESCE(MAX(version), 0) FROM schema_version`); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}

		tx, err := s.db.Beginx()
		if err != nil {
			return fmt.Errorf("beginning migration %d: %w", m.version, err)
		}
		if _, err := tx.Exec(m.sql); err != nil {
			tx.Rollback()
			return fmt.Errorf("applying migration %d: %w", m.version, err)
		}
		if _, err := tx.Exec(tx.Rebind(`INSERT INTO schema_version (version) VALUES (?)`), m.version); err != nil {
			tx.Rollback()
			return fmt.Errorf("recording migration %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %d: %w", m.version, err)
		}
	}

	return nil
}

type recordRow struct {
	ID   string `db:"id"`
	Data string `db:"data"`
}

func (r recordRow) toRecord() (Record, error) {
	rec, err := decodeRecord([]byte(r.Data))
	if err != nil {
		return nil, err
	}
	rec["id"] = r.ID
	return rec, nil
}

func (s *SQLCollectionStore) Create(ctx context.Context, collection string, record Record) (Record, error) {
	rec := record.Merge(nil)
	if rec.ID() == "" {
		rec["id"] = uuid.NewString()
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}

	now := s.now().UTC().Format(time.RFC3339Nano)
	query := s.db.Rebind(`
		INSERT INTO records (collection, id, data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`)

	if _, err := s.db.ExecContext(ctx, query, collection, rec.ID(), string(data), now, now); err != nil {
		return nil, fmt.Errorf("failed to create record in %s: %w", collection, err)
	}

	return decodeRecord(data)
}

func (s *SQLCollectionStore) Read(ctx context.Context, collection, id string) (Record, error) {
	var row recordRow
	query := s.db.Rebind(`SELECT id, data FROM records WHERE collection = ? AND id = ?`)
	if err := s.db.GetContext(ctx, &row, query, collection, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to read %s/%s: %w", collection, id, err)
	}
	return row.toRecord()
}

func (s *SQLCollectionStore) Update(ctx context.Context, collection, id string, patch Record) (Record, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin update: %w", err)
	}
	defer tx.Rollback()

	var row recordRow
	if err := tx.GetContext(ctx, &row, tx.Rebind(`SELECT id, data FROM records WHERE collection = ? AND id = ?`), collection, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to read %s/%s: %w", collection, id, err)
	}

	current, err := row.toRecord()
	if err != nil {
		return nil, err
	}

	merged := current.Merge(patch)
	merged["id"] = id

	data, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}

	now := s.now().UTC().Format(time.RFC3339Nano)
	query := tx.Rebind(`UPDATE records SET data = ?, updated_at = ? WHERE collection = ? AND id = ?`)
	if _, err := tx.ExecContext(ctx, query, string(data), now, collection, id); err != nil {
		return nil, fmt.Errorf("failed to update %s/%s: %w", collection, id, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit update: %w", err)
	}

	return decodeRecord(data)
}

func (s *SQLCollectionStore) Delete(ctx context.Context, collection, id string) error {
	query := s.db.Rebind(`DELETE FROM records WHERE collection = ? AND id = ?`)
	res, err := s.db.ExecContext(ctx, query, collection, id)
	if err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", collection, id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", collection, id, err)
	}
	if affected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (s *SQLCollectionStore) ReadAll(ctx context.Context, collection string) ([]Record, error) {
	var rows []recordRow
	query := s.db.Rebind(`SELECT id, data FROM records WHERE collection = ? ORDER BY created_at, id`)
	if err := s.db.SelectContext(ctx, &rows, query, collection); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", collection, err)
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		rec, err := row.toRecord()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func (s *SQLCollectionStore) GetItemKey(ctx context.Context, collection, field string, value any) (string, error) {
	records, err := s.ReadAll(ctx, collection)
	if err != nil {
		return "", err
	}
	for _, rec := range records {
		if v, ok := rec[field]; ok && sameValue(v, value) {
			return rec.ID(), nil
		}
	}
	return "", nil
}
