package alarms

import (
	"context"
	"errors"
	"fmt"

	"github.com/oshokin/alarm-clock/internal/config"
)

// Repository defines persistence operations for the alarm list.
// Values are stored and returned in registry order.
type Repository interface {
	Load(ctx context.Context) ([]string, error)
	Save(ctx context.Context, values []string) error
	Close() error
}

// errUnknownStorage is returned by Open for unsupported backends.
var errUnknownStorage = errors.New("unknown storage backend")

// Open creates the repository selected by cfg.Storage at cfg.StateFile.
//
//nolint:ireturn // Callers only need the interface.
func Open(ctx context.Context, cfg *config.Config) (Repository, error) {
	switch cfg.Storage {
	case "", config.StorageJSON:
		return NewFileRepository(cfg.StateFile), nil
	case config.StorageSQLite:
		return NewSQLiteRepository(ctx, cfg.StateFile)
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownStorage, cfg.Storage)
	}
}
