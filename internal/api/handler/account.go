package handler

import (
	"net/http"
	"unicode/utf8"

	"github.com/mcoot/gamehub/internal/api/request"
	"github.com/mcoot/gamehub/internal/api/response"
	"github.com/mcoot/gamehub/internal/services/account"
)

// Account form limits
const (
	MinUsernameLength = 3
	MinPasswordLength = 6
)

// AccountHandler handles session and account endpoints
type AccountHandler struct {
	accounts *account.Store
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accounts *account.Store) *AccountHandler {
	return &AccountHandler{
		accounts: accounts,
	}
}

// GetSession handles GET /api/v1/session
func (h *AccountHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.SessionFromModel(h.accounts.CurrentUser()))
}

// Login handles POST /api/v1/session/login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.Username == "" {
		WriteError(w, NewInvalidRequestError("username is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	user, err := h.accounts.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(user))
}

// Logout handles DELETE /api/v1/session
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.accounts.Logout(r.Context()); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// Create handles POST /api/v1/accounts
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateAccountRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if utf8.RuneCountInString(req.Username) < MinUsernameLength {
		WriteError(w, NewInvalidRequestError("username must be at least 3 characters"))
		return
	}
	if utf8.RuneCountInString(req.Password) < MinPasswordLength {
		WriteError(w, NewInvalidRequestError("password must be at least 6 characters"))
		return
	}

	user, err := h.accounts.CreateAccount(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.Created(w, response.SessionFromModel(user))
}

// Availability handles GET /api/v1/accounts/availability?username=
func (h *AccountHandler) Availability(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		WriteError(w, NewInvalidRequestError("username is required"))
		return
	}

	response.JSON(w, http.StatusOK, response.AvailabilityResponse{
		Username:  username,
		Available: h.accounts.CheckUsernameAvailability(username),
	})
}

// Delete handles DELETE /api/v1/accounts/me
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.accounts.DeleteAccount(r.Context()); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// UpdateCurrency handles POST /api/v1/accounts/me/currency
func (h *AccountHandler) UpdateCurrency(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateCurrencyRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.accounts.UpdateCurrency(r.Context(), req.Delta); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(h.accounts.CurrentUser()))
}

// PurchaseItem handles POST /api/v1/accounts/me/items
func (h *AccountHandler) PurchaseItem(w http.ResponseWriter, r *http.Request) {
	var req request.PurchaseItemRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.ItemID == "" {
		WriteError(w, NewInvalidRequestError("itemId is required"))
		return
	}

	if err := h.accounts.PurchaseItem(r.Context(), req.ItemID); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(h.accounts.CurrentUser()))
}

// GrantCurrency handles POST /api/v1/admin/currency
func (h *AccountHandler) GrantCurrency(w http.ResponseWriter, r *http.Request) {
	var req request.GrantCurrencyRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.Username == "" {
		WriteError(w, NewInvalidRequestError("username is required"))
		return
	}

	if err := h.accounts.GiveUserCurrency(r.Context(), req.Username, req.Amount); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
