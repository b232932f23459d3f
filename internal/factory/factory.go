package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/gamehub/internal/dependencies/clock"
	"github.com/mcoot/gamehub/internal/dependencies/random"
	"github.com/mcoot/gamehub/internal/model"
	"github.com/mcoot/gamehub/internal/persistence"
	"github.com/mcoot/gamehub/internal/services/account"
	"github.com/mcoot/gamehub/internal/services/catalog"
	"github.com/mcoot/gamehub/internal/services/market"
	"github.com/mcoot/gamehub/internal/storage"
	"github.com/mcoot/gamehub/internal/storage/memory"
	"github.com/mcoot/gamehub/internal/storage/postgres"
	redisstorage "github.com/mcoot/gamehub/internal/storage/redis"
	"github.com/mcoot/gamehub/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeMemory   = "memory"
	StorageTypeRedis    = "redis"
	StorageTypeSQLite   = "sqlite"
	StorageTypePostgres = "postgres"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	Accounts *account.Store
	Catalog  *catalog.Store
	Market   *market.Service
}

// Close releases the storage backend
func (a *App) Close() error {
	return a.Storage.Close()
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis", "sqlite" or "postgres")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// SQLitePath is the database file (required if StorageType is "sqlite")
	SQLitePath string
	// PostgresConfig holds database settings (required if StorageType is "postgres")
	PostgresConfig *postgres.Config
	// PasswordHashing is "plain" or "bcrypt". Empty means bcrypt.
	PasswordHashing string
	// BcryptCost overrides the bcrypt work factor. Zero means the default.
	BcryptCost int
	// Items is the marketplace stock. Nil means model.DefaultItems().
	Items []model.Item
}

// New creates a new application with all dependencies wired.
// Stored state is read once here; malformed state fails startup.
func New(ctx context.Context, cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, err := newStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	hasher, err := account.NewHasher(cfg.PasswordHashing, cfg.BcryptCost)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	app, err := newWithDependencies(ctx, store, clock.New(), random.New(), hasher, cfg.Items, logger)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	logger.Info("application ready",
		slog.String("storage", storageTypeOrDefault(cfg.StorageType)),
		slog.Int("games", len(app.Catalog.AllGames())),
	)
	return app, nil
}

func storageTypeOrDefault(t string) string {
	if t == "" {
		return StorageTypeMemory
	}
	return t
}

func newStorage(ctx context.Context, cfg Config) (storage.Storage, error) {
	switch storageTypeOrDefault(cfg.StorageType) {
	case StorageTypeMemory:
		return memory.New(), nil
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		return redisstorage.New(*cfg.RedisConfig)
	case StorageTypeSQLite:
		if cfg.SQLitePath == "" {
			return nil, errors.New("SQLitePath required when StorageType is sqlite")
		}
		return sqlite.New(cfg.SQLitePath)
	case StorageTypePostgres:
		if cfg.PostgresConfig == nil {
			return nil, errors.New("PostgresConfig required when StorageType is postgres")
		}
		return postgres.New(ctx, *cfg.PostgresConfig)
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be 'memory', 'redis', 'sqlite' or 'postgres'", cfg.StorageType)
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	ctx context.Context,
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	hasher account.PasswordHasher,
	items []model.Item,
	logger *slog.Logger,
) (*App, error) {
	seed, err := persistence.DefaultSeed(clk.Now()).WithPasswords(hasher.Hash)
	if err != nil {
		return nil, fmt.Errorf("hashing seed passwords: %w", err)
	}
	adapter := persistence.New(store, seed, logger)

	accounts, err := account.New(ctx, adapter, hasher, logger)
	if err != nil {
		return nil, err
	}

	games, err := catalog.New(ctx, adapter, accounts, clk, rnd, logger)
	if err != nil {
		return nil, err
	}

	if items == nil {
		items = model.DefaultItems()
	}

	return &App{
		Storage:  store,
		Clock:    clk,
		Random:   rnd,
		Accounts: accounts,
		Catalog:  games,
		Market:   market.New(accounts, items, logger),
	}, nil
}
