package persistence

import (
	"strconv"
	"time"

	"github.com/mcoot/gamehub/internal/model"
)

// Seed is the content written to empty slots on first run
type Seed struct {
	Users []*model.User
	Games []*model.Game
}

// DefaultSeed returns the bootstrap accounts and placeholder game.
// Passwords are plaintext; run WithPasswords to hash them.
func DefaultSeed(now time.Time) Seed {
	alan := model.NewUser("alan", "Owner52")

	admin := model.NewUser("admin", "Admin52")
	admin.Currency = 1_000_000_000
	admin.IsAdmin = true

	id := now.UnixMilli()
	placeholder := &model.Game{
		ID:          model.GameID(strconv.FormatInt(id, 10)),
		Name:        "Test Site 1",
		Description: "An amazing test game with lots of fun features!",
		Creator:     alan.Username,
		Badges: []model.Badge{
			{
				ID:          strconv.FormatInt(id+1, 10),
				Name:        "Welcome",
				Description: "Join the game for the first time",
				Icon:        "👋",
			},
			{
				ID:          strconv.FormatInt(id+2, 10),
				Name:        "Explorer",
				Description: "Visit every area of the map",
				Icon:        "🧭",
			},
		},
		CreatedAt: now,
	}

	return Seed{
		Users: []*model.User{alan, admin},
		Games: []*model.Game{placeholder},
	}
}

// WithPasswords returns a copy of the seed with every password passed through hash
func (s Seed) WithPasswords(hash func(string) (string, error)) (Seed, error) {
	users := make([]*model.User, len(s.Users))
	for i, u := range s.Users {
		c := u.Clone()
		hashed, err := hash(c.Password)
		if err != nil {
			return Seed{}, err
		}
		c.Password = hashed
		users[i] = c
	}
	return Seed{Users: users, Games: s.Games}, nil
}
