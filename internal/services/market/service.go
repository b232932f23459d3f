package market

import (
	"context"
	"io"
	"log/slog"

	"github.com/samber/lo"

	"github.com/mcoot/gamehub/internal/model"
)

// Wallet is the account-side view the marketplace needs
type Wallet interface {
	// BuyItem checks, charges and grants as one step against the session user
	BuyItem(ctx context.Context, itemID string, price int64) (*model.User, error)
}

// Service sells items to the session user
type Service struct {
	wallet Wallet
	items  []model.Item
	logger *slog.Logger
}

// New creates a marketplace selling items
func New(wallet Wallet, items []model.Item, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Service{
		wallet: wallet,
		items:  append([]model.Item{}, items...),
		logger: logger.With(slog.String("component", "market")),
	}
}

// Items returns the items on sale
func (s *Service) Items() []model.Item {
	return append([]model.Item{}, s.items...)
}

// Item returns the item with the given id
func (s *Service) Item(id string) (model.Item, error) {
	item, ok := lo.Find(s.items, func(i model.Item) bool {
		return i.ID == id
	})
	if !ok {
		return model.Item{}, model.ErrItemNotFound
	}
	return item, nil
}

// Buy charges the session user for an item and grants it.
// The balance and ownership checks run under the account store's lock,
// so a concurrent login or logout cannot split the charge from the grant.
func (s *Service) Buy(ctx context.Context, itemID string) (*model.User, error) {
	item, err := s.Item(itemID)
	if err != nil {
		return nil, err
	}

	user, err := s.wallet.BuyItem(ctx, item.ID, item.Price)
	if err != nil {
		return nil, err
	}

	s.logger.Info("item purchased",
		slog.String("username", user.Username),
		slog.String("item_id", item.ID),
		slog.Int64("price", item.Price),
	)
	return user, nil
}
