// Package persistence maps the roster, catalog and session onto three
// fixed keys of a key-value storage backend, JSON encoded.
package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/gamehub/internal/model"
	"github.com/mcoot/gamehub/internal/storage"
)

// Storage keys. The values have no version field.
const (
	KeyRoster  = "users"
	KeyCatalog = "games"
	KeySession = "currentUser"
)

// Adapter reads and writes the three persisted slots
type Adapter struct {
	storage storage.Storage
	seed    Seed
	logger  *slog.Logger
}

// New creates an adapter over the given storage.
// seed supplies the first-run contents of empty slots.
func New(store storage.Storage, seed Seed, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Adapter{
		storage: store,
		seed:    seed,
		logger:  logger,
	}
}

// LoadRoster returns the stored roster, seeding and persisting the
// default accounts when none has been stored yet
func (a *Adapter) LoadRoster(ctx context.Context) ([]*model.User, error) {
	var users []*model.User
	found, err := a.load(ctx, KeyRoster, &users)
	if err != nil {
		return nil, err
	}
	if !found {
		users = make([]*model.User, len(a.seed.Users))
		for i, u := range a.seed.Users {
			users[i] = u.Clone()
		}
		if err := a.SaveRoster(ctx, users); err != nil {
			return nil, err
		}
		a.logger.Info("seeded roster", slog.Int("users", len(users)))
		return users, nil
	}
	for _, u := range users {
		if u.OwnedItems == nil {
			u.OwnedItems = []string{}
		}
	}
	return users, nil
}

// SaveRoster replaces the stored roster
func (a *Adapter) SaveRoster(ctx context.Context, users []*model.User) error {
	if users == nil {
		users = []*model.User{}
	}
	return a.save(ctx, KeyRoster, users)
}

// LoadCatalog returns the stored games, seeding the placeholder game
// when none has been stored yet
func (a *Adapter) LoadCatalog(ctx context.Context) ([]*model.Game, error) {
	var games []*model.Game
	found, err := a.load(ctx, KeyCatalog, &games)
	if err != nil {
		return nil, err
	}
	if !found {
		games = make([]*model.Game, len(a.seed.Games))
		for i, g := range a.seed.Games {
			games[i] = g.Clone()
		}
		if err := a.SaveCatalog(ctx, games); err != nil {
			return nil, err
		}
		a.logger.Info("seeded catalog", slog.Int("games", len(games)))
	}
	return games, nil
}

// SaveCatalog replaces the stored games
func (a *Adapter) SaveCatalog(ctx context.Context, games []*model.Game) error {
	if games == nil {
		games = []*model.Game{}
	}
	return a.save(ctx, KeyCatalog, games)
}

// LoadSession returns the stored session user, or nil when logged out.
// A stored JSON null also counts as logged out.
func (a *Adapter) LoadSession(ctx context.Context) (*model.User, error) {
	var user *model.User
	found, err := a.load(ctx, KeySession, &user)
	if err != nil || !found || user == nil {
		return nil, err
	}
	return user.Public(), nil
}

// SaveSession stores the session user without its password.
// A nil user removes the entry.
func (a *Adapter) SaveSession(ctx context.Context, user *model.User) error {
	if user == nil {
		if err := a.storage.Delete(ctx, KeySession); err != nil {
			return fmt.Errorf("clearing %s: %w", KeySession, err)
		}
		return nil
	}
	return a.save(ctx, KeySession, user.Public())
}

func (a *Adapter) load(ctx context.Context, key string, v any) (bool, error) {
	data, err := a.storage.Get(ctx, key)
	if err != nil {
		if errors.Is(err, model.ErrEntryNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("reading %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decoding %s: %w", key, err)
	}
	return true, nil
}

func (a *Adapter) save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := a.storage.Set(ctx, key, data); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}
