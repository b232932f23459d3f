package model

import (
	"slices"
	"strings"
)

// DefaultStartingCurrency is the balance given to every new account
const DefaultStartingCurrency int64 = 100

// User is a registered account in the roster.
// Password holds whatever the configured hasher produced (plaintext or bcrypt).
type User struct {
	Username   string   `json:"username"`
	Password   string   `json:"password,omitempty"`
	Currency   int64    `json:"currency"`
	OwnedItems []string `json:"ownedItems"`
	IsAdmin    bool     `json:"isAdmin,omitempty"`
}

// NewUser creates a user with the default balance and no items
func NewUser(username, password string) *User {
	return &User{
		Username:   username,
		Password:   password,
		Currency:   DefaultStartingCurrency,
		OwnedItems: []string{},
	}
}

// Clone returns a deep copy of the user
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.OwnedItems = slices.Clone(u.OwnedItems)
	if c.OwnedItems == nil {
		c.OwnedItems = []string{}
	}
	return &c
}

// Public returns a copy with the password stripped, as held in the session
func (u *User) Public() *User {
	c := u.Clone()
	if c != nil {
		c.Password = ""
	}
	return c
}

// Owns reports whether the user owns the given item
func (u *User) Owns(itemID string) bool {
	return slices.Contains(u.OwnedItems, itemID)
}

// AddItem adds an item to the owned set. Returns false if already owned.
func (u *User) AddItem(itemID string) bool {
	if u.Owns(itemID) {
		return false
	}
	u.OwnedItems = append(u.OwnedItems, itemID)
	return true
}

// SameUsername compares usernames case-insensitively
func SameUsername(a, b string) bool {
	return strings.EqualFold(a, b)
}
