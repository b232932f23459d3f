package account

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/samber/lo"

	"github.com/mcoot/gamehub/internal/model"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrNotAdmin           = errors.New("admin privileges required")
)

// Persister stores the roster and the session
type Persister interface {
	LoadRoster(ctx context.Context) ([]*model.User, error)
	SaveRoster(ctx context.Context, users []*model.User) error
	LoadSession(ctx context.Context) (*model.User, error)
	SaveSession(ctx context.Context, user *model.User) error
}

// Store holds the account roster and the single current session.
// Every mutation is written through to the persister before it becomes
// visible in memory, so a failed write leaves the store unchanged.
// Writes touching both roster and session restore the stored roster when
// the session write fails.
type Store struct {
	persist Persister
	hasher  PasswordHasher
	logger  *slog.Logger

	mu      sync.RWMutex
	roster  []*model.User
	current *model.User
}

// New creates a store hydrated from the persister
func New(ctx context.Context, persist Persister, hasher PasswordHasher, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	roster, err := persist.LoadRoster(ctx)
	if err != nil {
		return nil, err
	}
	session, err := persist.LoadSession(ctx)
	if err != nil {
		return nil, err
	}

	return &Store{
		persist: persist,
		hasher:  hasher,
		logger:  logger.With(slog.String("component", "account")),
		roster:  roster,
		current: session,
	}, nil
}

// CurrentUser returns a copy of the session user, or nil when logged out
func (s *Store) CurrentUser() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// Login starts a session for the user whose username matches exactly
// and whose password matches
func (s *Store) Login(ctx context.Context, username, password string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found, ok := lo.Find(s.roster, func(u *model.User) bool {
		return u.Username == username
	})
	if !ok || !s.hasher.Compare(found.Password, password) {
		s.logger.Info("login rejected", slog.String("username", username))
		return nil, ErrInvalidCredentials
	}

	session := found.Public()
	if err := s.persist.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	s.current = session

	s.logger.Info("logged in", slog.String("username", username))
	return session.Clone(), nil
}

// Logout clears the session. The roster is untouched.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist.SaveSession(ctx, nil); err != nil {
		return err
	}
	s.current = nil
	return nil
}

// CheckUsernameAvailability reports whether no account uses username,
// ignoring case
func (s *Store) CheckUsernameAvailability(username string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.available(username)
}

func (s *Store) available(username string) bool {
	return !lo.ContainsBy(s.roster, func(u *model.User) bool {
		return model.SameUsername(u.Username, username)
	})
}

// CreateAccount registers a new user with the starting balance and logs them in
func (s *Store) CreateAccount(ctx context.Context, username, password string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.available(username) {
		return nil, ErrUsernameTaken
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := model.NewUser(username, hashed)
	roster := append(slices.Clone(s.roster), user)
	session := user.Public()
	if err := s.writeThrough(ctx, roster, session); err != nil {
		return nil, err
	}

	s.logger.Info("account created", slog.String("username", username))
	return session.Clone(), nil
}

// DeleteAccount removes the session user from the roster and logs out.
// Games they published are left in place.
func (s *Store) DeleteAccount(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil
	}
	username := s.current.Username

	roster := lo.Reject(s.roster, func(u *model.User, _ int) bool {
		return u.Username == username
	})
	if err := s.writeThrough(ctx, roster, nil); err != nil {
		return err
	}

	s.logger.Info("account deleted", slog.String("username", username))
	return nil
}

// UpdateCurrency adds delta to the session user's balance. The balance is
// not clamped and may go negative. Without a session this is a no-op.
func (s *Store) UpdateCurrency(ctx context.Context, delta int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil
	}

	return s.updateSessionUser(ctx, func(u *model.User) {
		u.Currency += delta
	})
}

// PurchaseItem records itemID as owned by the session user. It does not
// charge for the item; callers settle the price with UpdateCurrency.
// Owning an item twice is a no-op, as is calling without a session.
func (s *Store) PurchaseItem(ctx context.Context, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil || s.current.Owns(itemID) {
		return nil
	}

	return s.updateSessionUser(ctx, func(u *model.User) {
		u.AddItem(itemID)
	})
}

// BuyItem charges the session user price and grants itemID in one step.
// It fails without a session, when the item is already owned, or when the
// balance is below price.
func (s *Store) BuyItem(ctx context.Context, itemID string, price int64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.current == nil:
		return nil, model.ErrNoSession
	case s.current.Owns(itemID):
		return nil, model.ErrItemAlreadyOwned
	case s.current.Currency < price:
		return nil, model.ErrInsufficientFunds
	}

	err := s.updateSessionUser(ctx, func(u *model.User) {
		u.Currency -= price
		u.AddItem(itemID)
	})
	if err != nil {
		return nil, err
	}
	return s.current.Clone(), nil
}

// GiveUserCurrency credits amount to the named user. Only admins may call it.
func (s *Store) GiveUserCurrency(ctx context.Context, username string, amount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil || !s.current.IsAdmin {
		return ErrNotAdmin
	}

	credit := func(u *model.User) { u.Currency += amount }

	roster, ok := s.updatedRoster(username, credit)
	if !ok {
		return model.ErrUserNotFound
	}

	if s.current.Username == username {
		session := s.current.Clone()
		credit(session)
		if err := s.writeThrough(ctx, roster, session); err != nil {
			return err
		}
	} else {
		if err := s.persist.SaveRoster(ctx, roster); err != nil {
			return err
		}
		s.roster = roster
	}

	s.logger.Info("currency granted",
		slog.String("admin", s.current.Username),
		slog.String("username", username),
		slog.Int64("amount", amount),
	)
	return nil
}

// updateSessionUser applies fn to both the session copy and the session
// user's roster record, then writes both through.
// Callers must hold the write lock and have checked s.current != nil.
func (s *Store) updateSessionUser(ctx context.Context, fn func(*model.User)) error {
	session := s.current.Clone()
	fn(session)

	roster, inRoster := s.updatedRoster(s.current.Username, fn)
	if inRoster {
		return s.writeThrough(ctx, roster, session)
	}

	if err := s.persist.SaveSession(ctx, session); err != nil {
		return err
	}
	s.current = session
	return nil
}

// writeThrough saves roster then session and commits both in memory.
// If the session write fails the previous roster is written back, so
// memory and storage both keep their old state.
// Callers must hold the write lock.
func (s *Store) writeThrough(ctx context.Context, roster []*model.User, session *model.User) error {
	if err := s.persist.SaveRoster(ctx, roster); err != nil {
		return err
	}
	if err := s.persist.SaveSession(ctx, session); err != nil {
		if rollbackErr := s.persist.SaveRoster(ctx, s.roster); rollbackErr != nil {
			s.logger.Error("roster rollback failed", slog.String("error", rollbackErr.Error()))
			return errors.Join(err, rollbackErr)
		}
		return err
	}

	s.roster = roster
	s.current = session
	return nil
}

// updatedRoster returns a copy of the roster with fn applied to a copy of
// the record matching username exactly. The live roster is not modified.
func (s *Store) updatedRoster(username string, fn func(*model.User)) ([]*model.User, bool) {
	idx := slices.IndexFunc(s.roster, func(u *model.User) bool {
		return u.Username == username
	})
	if idx < 0 {
		return nil, false
	}

	roster := slices.Clone(s.roster)
	record := roster[idx].Clone()
	fn(record)
	roster[idx] = record
	return roster, true
}
