// ABOUTME: Persistence gateway owning the open SQLite store for a process
// ABOUTME: Init opens once, Get fails before Init, Close is safe to repeat
package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/harper/habits/internal/storage/sqlite"
	"github.com/harper/habits/internal/util"
	"go.uber.org/zap"
)

// Opening retries while another process holds the database lock
const (
	openAttempts  = 5
	openBaseDelay = 50 * time.Millisecond
)

// MemoryPath selects an in-memory database instead of a file
const MemoryPath = ":memory:"

// ErrNotInitialized is returned by Get before Init has succeeded
var ErrNotInitialized = errors.New("storage not initialized: call Init first")

// Gateway is an explicitly owned persistence session. Each Gateway holds at
// most one open Storage; tests build as many isolated gateways as they need.
type Gateway struct {
	path   string
	opts   []sqlite.Option
	logger *zap.Logger

	mu    sync.Mutex
	store *sqlite.Storage
}

// NewGateway creates a gateway for the database at path. An empty path
// means the default per-user data directory.
func NewGateway(path string, logger *zap.Logger, opts ...sqlite.Option) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	if path == "" {
		path = sqlite.DefaultDBPath()
	}
	opts = append([]sqlite.Option{sqlite.WithLogger(logger)}, opts...)
	return &Gateway{path: path, opts: opts, logger: logger}
}

// Path returns the database path the gateway opens
func (g *Gateway) Path() string {
	return g.path
}

// Init opens the store and ensures its schema. Calling it again is a no-op.
func (g *Gateway) Init() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.store != nil {
		return nil
	}

	var store *sqlite.Storage
	if g.path == MemoryPath {
		s, err := sqlite.NewStorageInMemory(g.opts...)
		if err != nil {
			return err
		}
		store = s
	} else {
		attempt := 0
		err := util.Retry(context.Background(), openAttempts, openBaseDelay, sqlite.IsBusy, func() error {
			attempt++
			s, err := sqlite.NewStorageWithPath(g.path, g.opts...)
			if err != nil {
				if sqlite.IsBusy(err) {
					g.logger.Warn("database busy, retrying", zap.String("path", g.path), zap.Int("attempt", attempt))
				}
				return err
			}
			store = s
			return nil
		})
		if err != nil {
			return err
		}
	}

	g.store = store
	g.logger.Info("storage initialized", zap.String("path", g.path))
	return nil
}

// Get returns the open store or ErrNotInitialized
func (g *Gateway) Get() (*sqlite.Storage, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.store == nil {
		return nil, ErrNotInitialized
	}
	return g.store, nil
}

// Close closes the store. A later Init reopens it.
func (g *Gateway) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.store == nil {
		return nil
	}
	err := g.store.Close()
	g.store = nil
	g.logger.Info("storage closed", zap.String("path", g.path))
	return err
}
