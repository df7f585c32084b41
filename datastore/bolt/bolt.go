/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package bolt provides a datastore.Store backed by a bbolt file. Records are kept in a
// single bucket, MessagePack encoded.
package bolt

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"

	"github.com/suparena/slotstore/datastore"
	"github.com/suparena/slotstore/datastore/record"
	"github.com/suparena/slotstore/errors"
)

const (
	// DefaultBucket holds records when Config.Bucket is empty
	DefaultBucket = "slots"
	// DefaultTimeout bounds how long Open waits for the file lock
	DefaultTimeout = time.Second
)

// Config describes where the store lives
type Config struct {
	Path    string        `json:"path" yaml:"path"`
	Bucket  string        `json:"bucket" yaml:"bucket"`
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// Validate checks the configuration and fills in defaults
func (c *Config) Validate() error {
	if c.Path == "" {
		return errors.NewValidationError("path", "required")
	}
	if c.Bucket == "" {
		c.Bucket = DefaultBucket
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return nil
}

// Store is a datastore.Store backed by boltdb
type Store struct {
	config Config
	db     *bolt.DB
	logger *zap.Logger
}

var (
	_ datastore.Store      = (*Store)(nil)
	_ datastore.Lister     = (*Store)(nil)
	_ prometheus.Collector = (*Store)(nil)
)

// NewStore returns a Store for cfg. Call Open before use.
func NewStore(cfg Config) *Store {
	return &Store{
		config: cfg,
		logger: zap.NewNop(),
	}
}

// WithLogger sets the logger on the store.
func (s *Store) WithLogger(l *zap.Logger) {
	s.logger = l
}

// Open creates the bolt file if it doesn't exist, opens it and ensures the bucket.
func (s *Store) Open(ctx context.Context) error {
	if err := s.config.Validate(); err != nil {
		return err
	}

	// Ensure the required directory structure exists.
	if err := os.MkdirAll(filepath.Dir(s.config.Path), 0700); err != nil {
		return fmt.Errorf("unable to create directory %s: %w", s.config.Path, err)
	}

	db, err := bolt.Open(s.config.Path, 0600, &bolt.Options{Timeout: s.config.Timeout})
	if err != nil {
		return fmt.Errorf("unable to open boltdb file: %w", err)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(s.config.Bucket))
		return err
	}); err != nil {
		_ = db.Close()
		return fmt.Errorf("unable to create bucket %q: %w", s.config.Bucket, err)
	}
	s.db = db

	s.logger.Info("Resources opened", zap.String("path", s.config.Path), zap.String("bucket", s.config.Bucket))
	return nil
}

// Close the connection to the bolt database
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
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

// Object returns the decoded record for key. Records that fail to decode are logged and
// reported as absent.
func (s *Store) Object(key string) (any, bool) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket([]byte(s.config.Bucket)).Get([]byte(key)); v != nil {
			// v is only valid for the life of the transaction
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to read record", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	if data == nil {
		return nil, false
	}

	v, err := record.Decode(data)
	if err != nil {
		s.logger.Warn("Failed to decode record", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return v, true
}

// Set replaces the record for key. A nil value removes it.
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

	if err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(s.config.Bucket)).Put([]byte(key), data)
	}); err != nil {
		s.logger.Error("Failed to write record", zap.String("key", key), zap.Error(err))
	}
}

func (s *Store) Remove(key string) {
	if err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(s.config.Bucket)).Delete([]byte(key))
	}); err != nil {
		s.logger.Error("Failed to remove record", zap.String("key", key), zap.Error(err))
	}
}

// Keys returns every key in the bucket in byte order.
func (s *Store) Keys() ([]string, error) {
	var keys []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(s.config.Bucket)).ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("unable to list keys: %w", err)
	}
	return keys, nil
}
