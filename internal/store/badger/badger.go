// Package badger provides the durable store adapters backed by an embedded
// BadgerDB. The watcher cannot start safely without knowing the ignore list
// and admin registry, so Open failures are treated as fatal by the caller.
package badger

import (
	"fmt"
	"os"

	badger "github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

// Open opens (creating if needed) the database under dir. An empty dir opens
// an in-memory instance, used by tests.
func Open(dir string, logger *zap.Logger) (*badger.DB, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	} else {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		opts = opts.WithSyncWrites(true)
	}
	opts = opts.WithLogger(zapBadgerLogger{logger.Sugar()})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", dir, err)
	}
	return db, nil
}

// zapBadgerLogger adapts zap to badger's Logger interface. Badger's info
// chatter is demoted to debug so cycle logs stay readable.
type zapBadgerLogger struct{ s *zap.SugaredLogger }

func (l zapBadgerLogger) Errorf(f string, args ...interface{})   { l.s.Errorf(f, args...) }
func (l zapBadgerLogger) Warningf(f string, args ...interface{}) { l.s.Warnf(f, args...) }
func (l zapBadgerLogger) Infof(f string, args ...interface{})    { l.s.Debugf(f, args...) }
func (l zapBadgerLogger) Debugf(f string, args ...interface{})   { l.s.Debugf(f, args...) }
