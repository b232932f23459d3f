package model

import "time"

// GameID uniquely identifies a published game
type GameID string

// Badge is an achievement marker owned by a game
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Vote is a player's opinion of a game
type Vote string

const (
	VoteLike    Vote = "like"
	VoteDislike Vote = "dislike"
)

// Valid reports whether v is a known vote
func (v Vote) Valid() bool {
	return v == VoteLike || v == VoteDislike
}

// Game is a published entry in the catalog
type Game struct {
	ID          GameID    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Creator     string    `json:"creator"` // username at publish time
	Badges      []Badge   `json:"badges"`
	CreatedAt   time.Time `json:"createdAt"`

	// Votes maps username to that user's current vote
	Votes map[string]Vote `json:"votes,omitempty"`
}

// GameDraft holds the caller-supplied fields for publishing
type GameDraft struct {
	Name        string
	Description string
	Badges      []Badge
}

// GameUpdate is a partial update. Nil fields are left untouched.
type GameUpdate struct {
	Name        *string
	Description *string
	Badges      []Badge // nil means unchanged, empty means clear
}

// Apply merges the non-nil fields of u into g
func (g *Game) Apply(u GameUpdate) {
	if u.Name != nil {
		g.Name = *u.Name
	}
	if u.Description != nil {
		g.Description = *u.Description
	}
	if u.Badges != nil {
		g.Badges = append([]Badge{}, u.Badges...)
	}
}

// Clone returns a deep copy of the game
func (g *Game) Clone() *Game {
	if g == nil {
		return nil
	}
	c := *g
	c.Badges = append([]Badge{}, g.Badges...)
	if g.Votes != nil {
		c.Votes = make(map[string]Vote, len(g.Votes))
		for user, v := range g.Votes {
			c.Votes[user] = v
		}
	}
	return &c
}

// Likes returns the number of like votes
func (g *Game) Likes() int {
	return g.countVotes(VoteLike)
}

// Dislikes returns the number of dislike votes
func (g *Game) Dislikes() int {
	return g.countVotes(VoteDislike)
}

func (g *Game) countVotes(kind Vote) int {
	n := 0
	for _, v := range g.Votes {
		if v == kind {
			n++
		}
	}
	return n
}

// VoteOf returns the given user's vote, or "" if none
func (g *Game) VoteOf(username string) Vote {
	return g.Votes[username]
}
