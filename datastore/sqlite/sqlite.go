/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package sqlite provides a datastore.Store backed by a single SQLite table. Each row keeps
// the record's shape next to its MessagePack encoded value.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"sync"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/suparena/slotstore/datastore"
	"github.com/suparena/slotstore/datastore/record"
	"github.com/suparena/slotstore/errors"
)

const (
	// DefaultTable holds records when Config.Table is empty
	DefaultTable = "slots"
	// InmemPath opens a private in-memory database
	InmemPath = ":memory:"
)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Config describes the database file and table
type Config struct {
	Path  string `json:"path" yaml:"path"`
	Table string `json:"table" yaml:"table"`
}

// Validate checks the configuration and fills in defaults
func (c *Config) Validate() error {
	if c.Path == "" {
		return errors.NewValidationError("path", "required")
	}
	if c.Table == "" {
		c.Table = DefaultTable
	}
	if !tableName.MatchString(c.Table) {
		return errors.NewValidationError("table", fmt.Sprintf("%q is not a valid table name", c.Table))
	}
	return nil
}

// Store is a datastore.Store backed by SQLite
type Store struct {
	// Mu serializes writers
	Mu     sync.Mutex
	DB     *sqlx.DB
	table  string
	logger *zap.Logger
}

var (
	_ datastore.Store  = (*Store)(nil)
	_ datastore.Lister = (*Store)(nil)
)

// Open opens the database at cfg.Path and creates the table if needed.
func Open(ctx context.Context, cfg Config, logger *zap.Logger) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sqlx.Open("sqlite3", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("unable to open sqlite database: %w", err)
	}
	// a single connection keeps :memory: databases shared and avoids SQLITE_BUSY
	db.SetMaxOpenConns(1)

	schema := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		key TEXT NOT NULL PRIMARY KEY,
		kind TEXT NOT NULL,
		value BLOB NOT NULL
	)`, cfg.Table)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("unable to create table %s: %w", cfg.Table, err)
	}

	logger.Info("Resources opened", zap.String("path", cfg.Path), zap.String("table", cfg.Table))
	return &Store{
		DB:     db,
		table:  cfg.Table,
		logger: logger,
	}, nil
}

// Close the connection to the database
func (s *Store) Close() error {
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}

func (s *Store) Integer(key string) int64         { return datastore.Integer(s.Object(key)) }
func (s *Store) Double(key string) float64        { return datastore.Double(s.Object(key)) }
func (s *Store) Float(key string) float32         { return datastore.Float(s.Object(key)) }
func (s *Store) Bool(key string) bool             { return datastore.Bool(s.Object(key)) }
func (s *Store) String(key string) (string, bool) { return datastore.String(s.Object(key)) }
func (s *Store) Bytes(key string) ([]byte, bool)  { return datastore.Bytes(s.Object(key)) }
func (s *Store) Array(key string) ([]any, bool)   { return datastore.Array(s.Object(key)) }
func (s *Store) Map(key string) (map[string]any, bool) {
	return datastore.Map(s.Object(key))
}

// Object returns the decoded record for key. Query and decode failures are logged and
// reported as absent.
func (s *Store) Object(key string) (any, bool) {
	query, args, err := sq.Select("value").
		From(s.table).
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		s.logger.Error("Failed to build query", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	var data []byte
	if err := s.DB.Get(&data, query, args...); err != nil {
		if err != sql.ErrNoRows {
			s.logger.Error("Failed to read record", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	v, err := record.Decode(data)
	if err != nil {
		s.logger.Warn("Failed to decode record", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return v, true
}

// Set upserts the record for key. A nil value removes it.
func (s *Store) Set(key string, value any) {
	if value == nil {
		s.Remove(key)
		return
	}

	data, err := record.Encode(value)
	if err != nil {
		s.logger.Error("Failed to encode record", zap.String("key", key), zap.Error(err))
		return
	}

	query, args, err := sq.Insert(s.table).
		Columns("key", "kind", "value").
		Values(key, string(datastore.KindOf(value)), data).
		Suffix("ON CONFLICT(key) DO UPDATE SET kind = excluded.kind, value = excluded.value").
		ToSql()
	if err != nil {
		s.logger.Error("Failed to build query", zap.String("key", key), zap.Error(err))
		return
	}

	s.Mu.Lock()
	defer s.Mu.Unlock()
	if _, err := s.DB.Exec(query, args...); err != nil {
		s.logger.Error("Failed to write record", zap.String("key", key), zap.Error(err))
	}
}

func (s *Store) Remove(key string) {
	query, args, err := sq.Delete(s.table).
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		s.logger.Error("Failed to build query", zap.String("key", key), zap.Error(err))
		return
	}

	s.Mu.Lock()
	defer s.Mu.Unlock()
	if _, err := s.DB.Exec(query, args...); err != nil {
		s.logger.Error("Failed to remove record", zap.String("key", key), zap.Error(err))
	}
}

// Keys returns every key in the table in sorted order.
func (s *Store) Keys() ([]string, error) {
	query, args, err := sq.Select("key").
		From(s.table).
		OrderBy("key").
		ToSql()
	if err != nil {
		return nil, err
	}

	keys := []string{}
	if err := s.DB.Select(&keys, query, args...); err != nil {
		return nil, fmt.Errorf("unable to list keys: %w", err)
	}
	return keys, nil
}

// Entry is a row of the slot table without its value.
type Entry struct {
	Key  string `db:"key"`
	Kind string `db:"kind"`
}

// Entries lists every key with the shape of its record, in key order.
func (s *Store) Entries(ctx context.Context) ([]Entry, error) {
	query, args, err := sq.Select("key", "kind").
		From(s.table).
		OrderBy("key").
		ToSql()
	if err != nil {
		return nil, err
	}

	entries := []Entry{}
	if err := s.DB.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("unable to list entries: %w", err)
	}
	return entries, nil
}
