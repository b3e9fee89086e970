// Package kvstore is the persistence shim: a synchronous key-value store for
// the handful of named state pieces the dashboard keeps between restarts
// (session user, distribution tallies, the payflow draft, profile, settings).
// Values are JSON documents wrapped in a versioned envelope.
package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Well-known keys. Pages own their keys exclusively except the session pair,
// which is written by the session module only.
const (
	KeyCurrentUser         = "current_user"
	KeyLoginBroadcast      = "user_login"
	KeyDistributionTallies = "distribution_tallies"
	KeyPayflowDraft        = "payflow_draft"
	KeyProfile             = "profile"
	KeySettings            = "settings"
)

// schemaVersion tags every stored envelope so future layouts can migrate.
const schemaVersion = 1

// Store persists named JSON values. Load reports found=false both for absent
// keys and for stored text that cannot be decoded; callers fall back to their
// declared default in either case and the page never crashes on bad state.
type Store interface {
	Save(ctx context.Context, key string, value any) error
	Load(ctx context.Context, key string, out any) (found bool, err error)
	Delete(ctx context.Context, key string) error
}

type envelope struct {
	Version int             `json:"version"`
	Data    json.RawMessage `json:"data"`
}

// FileStore keeps one JSON file per key under a data directory. It is the
// default Store when no MongoDB URI is configured.
type FileStore struct {
	dir    string
	logger *zap.Logger
}

// NewFileStore creates the data directory if needed and returns the store.
func NewFileStore(dir string, logger *zap.Logger) (*FileStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if dir == "" {
		return nil, errors.New("data directory must not be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir, logger: logger}, nil
}

// Save serializes value and writes it under key.
func (s *FileStore) Save(_ context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal value for key %s: %w", key, err)
	}
	body, err := json.Marshal(envelope{Version: schemaVersion, Data: data})
	if err != nil {
		return fmt.Errorf("marshal envelope for key %s: %w", key, err)
	}
	if err := os.WriteFile(s.path(key), body, 0o644); err != nil {
		return fmt.Errorf("write key %s: %w", key, err)
	}
	return nil
}

// Load reads and decodes the value stored under key into out. Malformed
// content is logged and treated as absent.
func (s *FileStore) Load(_ context.Context, key string, out any) (bool, error) {
	body, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("read key %s: %w", key, err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		s.logger.Warn("stored value is malformed, using default", zap.String("key", key), zap.Error(err))
		return false, nil
	}
	if env.Version != schemaVersion {
		s.logger.Warn("stored value has unknown schema version, using default", zap.String("key", key), zap.Int("version", env.Version))
		return false, nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		s.logger.Warn("stored value does not match expected shape, using default", zap.String("key", key), zap.Error(err))
		return false, nil
	}
	return true, nil
}

// Delete removes the key; deleting an absent key is not an error.
func (s *FileStore) Delete(_ context.Context, key string) error {
	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete key %s: %w", key, err)
	}
	return nil
}

func (s *FileStore) path(key string) string {
	// Keys are fixed identifiers, but keep path traversal out anyway.
	safe := strings.ReplaceAll(key, string(os.PathSeparator), "_")
	return filepath.Join(s.dir, safe+".json")
}
