package model

import "errors"

// Common errors used across the application
var (
	// Storage errors
	ErrEntryNotFound = errors.New("storage entry not found")

	// Account errors
	ErrNoSession    = errors.New("no active session")
	ErrUserNotFound = errors.New("user not found")

	// Catalog errors
	ErrGameNotFound = errors.New("game not found")
	ErrInvalidBadge = errors.New("badge requires a name, description and icon")
	ErrInvalidVote  = errors.New("vote must be like or dislike")

	// Marketplace errors
	ErrItemNotFound      = errors.New("item not found")
	ErrItemAlreadyOwned  = errors.New("item already owned")
	ErrInsufficientFunds = errors.New("insufficient funds")
)
