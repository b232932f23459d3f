package request

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateAccountRequest is the request body for creating an account
type CreateAccountRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateCurrencyRequest adjusts the session user's balance by Delta
type UpdateCurrencyRequest struct {
	Delta int64 `json:"delta"`
}

// PurchaseItemRequest records an item as owned without charging
type PurchaseItemRequest struct {
	ItemID string `json:"itemId"`
}

// GrantCurrencyRequest is the request body for an admin currency grant
type GrantCurrencyRequest struct {
	Username string `json:"username"`
	Amount   int64  `json:"amount"`
}

// Badge is a badge in a publish or update request
type Badge struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// PublishGameRequest is the request body for publishing a game
type PublishGameRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Badges      []Badge `json:"badges,omitempty"`
}

// UpdateGameRequest is a partial update; omitted fields are unchanged
type UpdateGameRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Badges      *[]Badge `json:"badges,omitempty"`
}

// AddBadgeRequest is the request body for adding a badge to a game
type AddBadgeRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// VoteRequest is the request body for voting on a game
type VoteRequest struct {
	Vote string `json:"vote"`
}
