package badger

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/poiesic/ragsweep/storage"
)

// cacheValueLogFileSize keeps value log files small; an embedding cache is
// rewritten wholesale by purges rather than grown indefinitely.
const cacheValueLogFileSize = 64 << 20

// gcDiscardRatio is the fraction of stale data that makes a value log file
// worth rewriting during Compact.
const gcDiscardRatio = 0.5

// Backend wraps the BadgerDB instance holding cached embeddings.
type Backend struct {
	db     *badger.DB
	logger *slog.Logger
}

// BackendOption configures OpenBackend.
type BackendOption func(*backendOptions)

type backendOptions struct {
	inMemory bool
	logger   *slog.Logger
}

// InMemory opens a throwaway database; the path is ignored.
func InMemory() BackendOption {
	return func(o *backendOptions) {
		o.inMemory = true
	}
}

// WithLogger routes Badger's own log output to logger.
func WithLogger(logger *slog.Logger) BackendOption {
	return func(o *backendOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// badgerLoggerAdapter adapts slog.Logger to the badger.Logger interface.
// Badger's info chatter is demoted to debug.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// OpenBackend opens the cache database in dir, creating the directory if
// it doesn't exist.
func OpenBackend(dir string, opts ...BackendOption) (*Backend, error) {
	o := backendOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	var bopts badger.Options
	if o.inMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := ensureDir(dir); err != nil {
			return nil, err
		}
		bopts = badger.DefaultOptions(dir).WithValueLogFileSize(cacheValueLogFileSize)
	}

	logger := o.logger.With("component", "badger")
	bopts.Logger = &badgerLoggerAdapter{logger: logger}
	// float32 vectors barely compress
	bopts.Compression = options.None

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, err
	}

	return &Backend{
		db:     db,
		logger: logger,
	}, nil
}

func ensureDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
		info, err = os.Stat(dir)
		if err != nil {
			return err
		}
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}

// Close closes the database.
func (b *Backend) Close() error {
	return b.db.Close()
}

// IsClosed reports whether the database is closed.
func (b *Backend) IsClosed() bool {
	return b.db.IsClosed()
}

// WithTx runs fn in a transaction, read-write when isWrite is set.
// The transaction is always discarded; fn commits writes itself.
func (b *Backend) WithTx(fn func(tx *badger.Txn) error, isWrite bool) error {
	if b.db.IsClosed() {
		return storage.ErrStorageClosed
	}
	tx := b.db.NewTransaction(isWrite)
	defer tx.Discard()
	return fn(tx)
}

// DropPrefix deletes every key starting with prefix.
func (b *Backend) DropPrefix(prefix []byte) error {
	if b.db.IsClosed() {
		return storage.ErrStorageClosed
	}
	return b.db.DropPrefix(prefix)
}

// Compact rewrites value log files until none is worth rewriting, returning
// the number of files rewritten. In-memory databases have nothing to compact.
func (b *Backend) Compact() (int, error) {
	if b.db.IsClosed() {
		return 0, storage.ErrStorageClosed
	}
	rewritten := 0
	for {
		err := b.db.RunValueLogGC(gcDiscardRatio)
		switch {
		case err == nil:
			rewritten++
		case errors.Is(err, badger.ErrNoRewrite), errors.Is(err, badger.ErrGCInMemoryMode):
			b.logger.Debug("value log compacted", "rewritten", rewritten)
			return rewritten, nil
		default:
			return rewritten, err
		}
	}
}
