//go:build sqlite

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"overmind/internal/model"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) SaveWeights(ctx context.Context, record model.WeightRecord) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	stamp(&record.VersionedRecord)
	payload, err := EncodeWeights(record)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO weights (role, race, schema_version, codec_version, payload)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(role, race) DO UPDATE SET
			schema_version = excluded.schema_version,
			codec_version = excluded.codec_version,
			payload = excluded.payload
	`, string(record.Key.Role), int(record.Key.Race), record.SchemaVersion, record.CodecVersion, payload)
	return err
}

func (s *SQLiteStore) GetWeights(ctx context.Context, key model.WeightKey) (model.WeightRecord, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return model.WeightRecord{}, false, err
	}

	var payload []byte
	err = db.QueryRowContext(ctx, `SELECT payload FROM weights WHERE role = ? AND race = ?`,
		string(key.Role), int(key.Race)).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.WeightRecord{}, false, nil
		}
		return model.WeightRecord{}, false, err
	}

	record, err := DecodeWeights(payload)
	if err != nil {
		return model.WeightRecord{}, false, fmt.Errorf("decode weights %s: %w", key, err)
	}
	return record, true, nil
}

func (s *SQLiteStore) ListWeights(ctx context.Context) ([]model.WeightKey, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `SELECT role, race FROM weights`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []model.WeightKey
	for rows.Next() {
		var role string
		var race int
		if err := rows.Scan(&role, &race); err != nil {
			return nil, err
		}
		keys = append(keys, model.WeightKey{Role: model.Role(role), Race: model.Race(race)})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sortKeys(keys)
	return keys, nil
}

func (s *SQLiteStore) DeleteWeights(ctx context.Context, key model.WeightKey) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `DELETE FROM weights WHERE role = ? AND race = ?`, string(key.Role), int(key.Race))
	return err
}

func (s *SQLiteStore) SaveSessionReport(ctx context.Context, report model.SessionReport) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}
	if report.ID == "" {
		return errors.New("session report id is required")
	}

	stamp(&report.VersionedRecord)
	payload, err := EncodeSessionReport(report)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO session_reports (id, schema_version, codec_version, payload)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			schema_version = excluded.schema_version,
			codec_version = excluded.codec_version,
			payload = excluded.payload
	`, report.ID, report.SchemaVersion, report.CodecVersion, payload)
	return err
}

func (s *SQLiteStore) GetSessionReport(ctx context.Context, id string) (model.SessionReport, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return model.SessionReport{}, false, err
	}

	var payload []byte
	err = db.QueryRowContext(ctx, `SELECT payload FROM session_reports WHERE id = ?`, id).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.SessionReport{}, false, nil
		}
		return model.SessionReport{}, false, err
	}

	report, err := DecodeSessionReport(payload)
	if err != nil {
		return model.SessionReport{}, false, fmt.Errorf("decode session report %s: %w", id, err)
	}
	return report, true, nil
}

func (s *SQLiteStore) ListSessionReports(ctx context.Context) ([]string, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `SELECT id FROM session_reports ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errNotInitialized
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS weights (
			role TEXT NOT NULL,
			race INTEGER NOT NULL,
			schema_version INTEGER NOT NULL,
			codec_version INTEGER NOT NULL,
			payload BLOB NOT NULL,
			PRIMARY KEY (role, race)
		);
		CREATE TABLE IF NOT EXISTS session_reports (
			id TEXT PRIMARY KEY,
			schema_version INTEGER NOT NULL,
			codec_version INTEGER NOT NULL,
			payload BLOB NOT NULL
		);
	`)
	return err
}
