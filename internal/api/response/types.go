package response

import (
	"time"

	"github.com/mcoot/gamehub/internal/model"
)

// User represents a user in API responses. Passwords are never included.
type User struct {
	Username   string   `json:"username"`
	Currency   int64    `json:"currency"`
	OwnedItems []string `json:"ownedItems"`
	IsAdmin    bool     `json:"isAdmin,omitempty"`
}

// UserFromModel converts a model.User to a response User
func UserFromModel(u *model.User) User {
	items := append([]string{}, u.OwnedItems...)
	return User{
		Username:   u.Username,
		Currency:   u.Currency,
		OwnedItems: items,
		IsAdmin:    u.IsAdmin,
	}
}

// SessionResponse reports the current session; User is null when logged out
type SessionResponse struct {
	User *User `json:"user"`
}

// SessionFromModel converts a possibly nil session user
func SessionFromModel(u *model.User) SessionResponse {
	if u == nil {
		return SessionResponse{}
	}
	user := UserFromModel(u)
	return SessionResponse{User: &user}
}

// AvailabilityResponse reports whether a username is free
type AvailabilityResponse struct {
	Username  string `json:"username"`
	Available bool   `json:"available"`
}

// Badge represents a badge in API responses
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// BadgeFromModel converts model.Badge
func BadgeFromModel(b model.Badge) Badge {
	return Badge{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		Icon:        b.Icon,
	}
}

// Game represents a published game in API responses
type Game struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Creator     string    `json:"creator"`
	Badges      []Badge   `json:"badges"`
	CreatedAt   time.Time `json:"createdAt"`
	Likes       int       `json:"likes"`
	Dislikes    int       `json:"dislikes"`
	MyVote      string    `json:"myVote,omitempty"`
}

// GameFromModel converts model.Game. viewer is the session username, or "".
func GameFromModel(g *model.Game, viewer string) Game {
	badges := make([]Badge, len(g.Badges))
	for i, b := range g.Badges {
		badges[i] = BadgeFromModel(b)
	}

	var myVote string
	if viewer != "" {
		myVote = string(g.VoteOf(viewer))
	}

	return Game{
		ID:          string(g.ID),
		Name:        g.Name,
		Description: g.Description,
		Creator:     g.Creator,
		Badges:      badges,
		CreatedAt:   g.CreatedAt,
		Likes:       g.Likes(),
		Dislikes:    g.Dislikes(),
		MyVote:      myVote,
	}
}

// GamesFromModel converts a list of games
func GamesFromModel(games []*model.Game, viewer string) []Game {
	out := make([]Game, len(games))
	for i, g := range games {
		out[i] = GameFromModel(g, viewer)
	}
	return out
}

// GameList wraps a list of games
type GameList struct {
	Games []Game `json:"games"`
}

// Item represents a marketplace item
type Item struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Icon  string `json:"icon"`
	Owned bool   `json:"owned"`
}

// ItemFromModel converts model.Item. owner may be nil.
func ItemFromModel(i model.Item, owner *model.User) Item {
	return Item{
		ID:    i.ID,
		Name:  i.Name,
		Price: i.Price,
		Icon:  i.Icon,
		Owned: owner != nil && owner.Owns(i.ID),
	}
}

// ItemList wraps the marketplace stock
type ItemList struct {
	Items []Item `json:"items"`
}

// PurchaseResponse is the response after buying an item
type PurchaseResponse struct {
	Item Item `json:"item"`
	User User `json:"user"`
}

// HealthResponse is the response of the health check
type HealthResponse struct {
	Status string `json:"status"`
}
