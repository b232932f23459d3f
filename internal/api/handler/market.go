package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/samber/lo"

	"github.com/mcoot/gamehub/internal/api/response"
	"github.com/mcoot/gamehub/internal/model"
	"github.com/mcoot/gamehub/internal/services/account"
	"github.com/mcoot/gamehub/internal/services/market"
)

// MarketHandler handles marketplace endpoints
type MarketHandler struct {
	accounts *account.Store
	market   *market.Service
}

// NewMarketHandler creates a new market handler
func NewMarketHandler(accounts *account.Store, market *market.Service) *MarketHandler {
	return &MarketHandler{
		accounts: accounts,
		market:   market,
	}
}

// List handles GET /api/v1/market/items
func (h *MarketHandler) List(w http.ResponseWriter, r *http.Request) {
	user := h.accounts.CurrentUser()
	items := lo.Map(h.market.Items(), func(i model.Item, _ int) response.Item {
		return response.ItemFromModel(i, user)
	})
	response.JSON(w, http.StatusOK, response.ItemList{Items: items})
}

// Buy handles POST /api/v1/market/items/{id}/purchase
func (h *MarketHandler) Buy(w http.ResponseWriter, r *http.Request) {
	itemID := mux.Vars(r)["id"]

	user, err := h.market.Buy(r.Context(), itemID)
	if err != nil {
		WriteError(w, err)
		return
	}

	item, err := h.market.Item(itemID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PurchaseResponse{
		Item: response.ItemFromModel(item, user),
		User: response.UserFromModel(user),
	})
}
