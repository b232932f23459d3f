package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/samber/lo"

	"github.com/mcoot/gamehub/internal/api/middleware"
	"github.com/mcoot/gamehub/internal/api/request"
	"github.com/mcoot/gamehub/internal/api/response"
	"github.com/mcoot/gamehub/internal/model"
	"github.com/mcoot/gamehub/internal/services/account"
	"github.com/mcoot/gamehub/internal/services/catalog"
)

// GamesHandler handles catalog endpoints
type GamesHandler struct {
	accounts *account.Store
	catalog  *catalog.Store
}

// NewGamesHandler creates a new games handler
func NewGamesHandler(accounts *account.Store, catalog *catalog.Store) *GamesHandler {
	return &GamesHandler{
		accounts: accounts,
		catalog:  catalog,
	}
}

// viewer returns the session username, or "" when logged out
func (h *GamesHandler) viewer() string {
	if user := h.accounts.CurrentUser(); user != nil {
		return user.Username
	}
	return ""
}

func gameID(r *http.Request) model.GameID {
	return model.GameID(mux.Vars(r)["id"])
}

func toModelBadges(badges []request.Badge) []model.Badge {
	return lo.Map(badges, func(b request.Badge, _ int) model.Badge {
		return model.Badge{
			ID:          b.ID,
			Name:        b.Name,
			Description: b.Description,
			Icon:        b.Icon,
		}
	})
}

// List handles GET /api/v1/games
func (h *GamesHandler) List(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.GameList{
		Games: response.GamesFromModel(h.catalog.AllGames(), h.viewer()),
	})
}

// Mine handles GET /api/v1/games/mine
func (h *GamesHandler) Mine(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	response.JSON(w, http.StatusOK, response.GameList{
		Games: response.GamesFromModel(h.catalog.PublishedGames(), user.Username),
	})
}

// Get handles GET /api/v1/games/{id}
func (h *GamesHandler) Get(w http.ResponseWriter, r *http.Request) {
	game, err := h.catalog.GameByID(gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(game, h.viewer()))
}

// Publish handles POST /api/v1/games
func (h *GamesHandler) Publish(w http.ResponseWriter, r *http.Request) {
	var req request.PublishGameRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}

	game, err := h.catalog.PublishGame(r.Context(), model.GameDraft{
		Name:        req.Name,
		Description: req.Description,
		Badges:      toModelBadges(req.Badges),
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.Created(w, response.GameFromModel(game, game.Creator))
}

// Update handles PATCH /api/v1/games/{id}
func (h *GamesHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateGameRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.Name != nil && *req.Name == "" {
		WriteError(w, NewInvalidRequestError("name cannot be empty"))
		return
	}

	update := model.GameUpdate{
		Name:        req.Name,
		Description: req.Description,
	}
	if req.Badges != nil {
		update.Badges = toModelBadges(*req.Badges)
	}

	id := gameID(r)
	if err := h.catalog.UpdateGame(r.Context(), id, update); err != nil {
		WriteError(w, err)
		return
	}

	game, err := h.catalog.GameByID(id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(game, h.viewer()))
}

// Delete handles DELETE /api/v1/games/{id}
func (h *GamesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteGame(r.Context(), gameID(r)); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// AddBadge handles POST /api/v1/games/{id}/badges
func (h *GamesHandler) AddBadge(w http.ResponseWriter, r *http.Request) {
	var req request.AddBadgeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	badge, err := h.catalog.AddBadge(r.Context(), gameID(r), req.Name, req.Description, req.Icon)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.Created(w, response.BadgeFromModel(*badge))
}

// RemoveBadge handles DELETE /api/v1/games/{id}/badges/{badge_id}
func (h *GamesHandler) RemoveBadge(w http.ResponseWriter, r *http.Request) {
	badgeID := mux.Vars(r)["badge_id"]
	if err := h.catalog.RemoveBadge(r.Context(), gameID(r), badgeID); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// Vote handles POST /api/v1/games/{id}/vote
func (h *GamesHandler) Vote(w http.ResponseWriter, r *http.Request) {
	var req request.VoteRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user := middleware.MustGetUser(r.Context())
	game, err := h.catalog.Vote(r.Context(), gameID(r), model.Vote(req.Vote))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(game, user.Username))
}
