package catalog

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"sync"

	"github.com/samber/lo"

	"github.com/mcoot/gamehub/internal/dependencies/clock"
	"github.com/mcoot/gamehub/internal/dependencies/random"
	"github.com/mcoot/gamehub/internal/model"
)

const idSuffixLength = 4

// Persister stores the catalog
type Persister interface {
	LoadCatalog(ctx context.Context) ([]*model.Game, error)
	SaveCatalog(ctx context.Context, games []*model.Game) error
}

// SessionSource reports who is logged in
type SessionSource interface {
	CurrentUser() *model.User
}

// Store holds the published games
type Store struct {
	persist Persister
	session SessionSource
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger

	mu    sync.RWMutex
	games []*model.Game
}

// New creates a store hydrated from the persister
func New(
	ctx context.Context,
	persist Persister,
	session SessionSource,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	games, err := persist.LoadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	for _, g := range games {
		if g.Badges == nil {
			g.Badges = []model.Badge{}
		}
	}

	return &Store{
		persist: persist,
		session: session,
		clock:   clock,
		random:  random,
		logger:  logger.With(slog.String("component", "catalog")),
		games:   games,
	}, nil
}

// PublishGame adds a game created by the session user
func (s *Store) PublishGame(ctx context.Context, draft model.GameDraft) (*model.Game, error) {
	user := s.session.CurrentUser()
	if user == nil {
		return nil, model.ErrNoSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	badges := append([]model.Badge{}, draft.Badges...)
	s.assignBadgeIDs(badges, now.UnixMilli())

	game := &model.Game{
		ID:          model.GameID(s.timeID(now.UnixMilli())),
		Name:        draft.Name,
		Description: draft.Description,
		Creator:     user.Username,
		Badges:      badges,
		CreatedAt:   now,
	}

	games := append(slices.Clone(s.games), game)
	if err := s.persist.SaveCatalog(ctx, games); err != nil {
		return nil, err
	}
	s.games = games

	s.logger.Info("game published",
		slog.String("game_id", string(game.ID)),
		slog.String("creator", game.Creator),
	)
	return game.Clone(), nil
}

// UpdateGame merges update into the game with the given id. Replacement
// badges without an id are given one. An unknown id is a no-op.
func (s *Store) UpdateGame(ctx context.Context, id model.GameID, update model.GameUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if update.Badges != nil {
		update.Badges = append([]model.Badge{}, update.Badges...)
		s.assignBadgeIDs(update.Badges, s.clock.Now().UnixMilli())
	}

	games, ok := s.updated(id, func(g *model.Game) {
		g.Apply(update)
	})
	if !ok {
		return nil
	}
	return s.commit(ctx, games)
}

// DeleteGame removes the game with the given id. An unknown id is a no-op.
func (s *Store) DeleteGame(ctx context.Context, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.exists(id) {
		return nil
	}

	games := lo.Reject(s.games, func(g *model.Game, _ int) bool {
		return g.ID == id
	})
	if err := s.commit(ctx, games); err != nil {
		return err
	}

	s.logger.Info("game deleted", slog.String("game_id", string(id)))
	return nil
}

// AllGames returns every published game in publish order
func (s *Store) AllGames() []*model.Game {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.games)
}

// PublishedGames returns the games created by the session user
func (s *Store) PublishedGames() []*model.Game {
	user := s.session.CurrentUser()
	if user == nil {
		return []*model.Game{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(lo.Filter(s.games, func(g *model.Game, _ int) bool {
		return g.Creator == user.Username
	}))
}

// GameByID returns the game with the given id
func (s *Store) GameByID(id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	game, ok := lo.Find(s.games, func(g *model.Game) bool {
		return g.ID == id
	})
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return game.Clone(), nil
}

// AddBadge appends a badge to a game. Name, description and icon are required.
func (s *Store) AddBadge(ctx context.Context, id model.GameID, name, description, icon string) (*model.Badge, error) {
	if name == "" || description == "" || icon == "" {
		return nil, model.ErrInvalidBadge
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	badge := model.Badge{
		ID:          s.timeID(s.clock.Now().UnixMilli()),
		Name:        name,
		Description: description,
		Icon:        icon,
	}

	games, ok := s.updated(id, func(g *model.Game) {
		g.Badges = append(g.Badges, badge)
	})
	if !ok {
		return nil, model.ErrGameNotFound
	}
	if err := s.commit(ctx, games); err != nil {
		return nil, err
	}
	return &badge, nil
}

// RemoveBadge drops a badge from a game. An unknown badge is a no-op.
func (s *Store) RemoveBadge(ctx context.Context, id model.GameID, badgeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	games, ok := s.updated(id, func(g *model.Game) {
		g.Badges = lo.Reject(g.Badges, func(b model.Badge, _ int) bool {
			return b.ID == badgeID
		})
	})
	if !ok {
		return model.ErrGameNotFound
	}
	return s.commit(ctx, games)
}

// Vote records the session user's vote on a game. Casting the same vote
// again withdraws it; casting the other vote switches it.
func (s *Store) Vote(ctx context.Context, id model.GameID, vote model.Vote) (*model.Game, error) {
	if !vote.Valid() {
		return nil, model.ErrInvalidVote
	}
	user := s.session.CurrentUser()
	if user == nil {
		return nil, model.ErrNoSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var result *model.Game
	games, ok := s.updated(id, func(g *model.Game) {
		if g.Votes == nil {
			g.Votes = make(map[string]model.Vote)
		}
		if g.Votes[user.Username] == vote {
			delete(g.Votes, user.Username)
		} else {
			g.Votes[user.Username] = vote
		}
		result = g
	})
	if !ok {
		return nil, model.ErrGameNotFound
	}
	if err := s.commit(ctx, games); err != nil {
		return nil, err
	}
	return result.Clone(), nil
}

// timeID derives an id from a millisecond timestamp. Ids already in use
// get a random suffix. Callers must hold the lock.
func (s *Store) timeID(millis int64) string {
	id := strconv.FormatInt(millis, 10)
	if !s.idInUse(id) {
		return id
	}
	for {
		candidate := id + "-" + s.random.String(idSuffixLength, random.SuffixAlphabet)
		if !s.idInUse(candidate) {
			return candidate
		}
	}
}

// assignBadgeIDs fills in missing badge ids from consecutive milliseconds
// after base. Callers must hold the lock.
func (s *Store) assignBadgeIDs(badges []model.Badge, base int64) {
	for i := range badges {
		if badges[i].ID == "" {
			badges[i].ID = s.timeID(base + int64(i) + 1)
		}
	}
}

func (s *Store) idInUse(id string) bool {
	for _, g := range s.games {
		if string(g.ID) == id {
			return true
		}
		for _, b := range g.Badges {
			if b.ID == id {
				return true
			}
		}
	}
	return false
}

func (s *Store) exists(id model.GameID) bool {
	return slices.ContainsFunc(s.games, func(g *model.Game) bool {
		return g.ID == id
	})
}

// updated returns a copy of the catalog with fn applied to a copy of the
// matching game. The live catalog is not modified.
func (s *Store) updated(id model.GameID, fn func(*model.Game)) ([]*model.Game, bool) {
	idx := slices.IndexFunc(s.games, func(g *model.Game) bool {
		return g.ID == id
	})
	if idx < 0 {
		return nil, false
	}

	games := slices.Clone(s.games)
	game := games[idx].Clone()
	fn(game)
	games[idx] = game
	return games, true
}

func (s *Store) commit(ctx context.Context, games []*model.Game) error {
	if err := s.persist.SaveCatalog(ctx, games); err != nil {
		return err
	}
	s.games = games
	return nil
}

func cloneAll(games []*model.Game) []*model.Game {
	return lo.Map(games, func(g *model.Game, _ int) *model.Game {
		return g.Clone()
	})
}
