package models

import "time"

// CollectedGame is one entry in a user's personal collection,
// referencing a game in the external catalog by its upstream ID.
// The pair (UserID, GameID) is unique; entries are never updated in
// place after insertion.
type CollectedGame struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"userId"`
	GameID    int64     `json:"gameId"`
	Title     string    `json:"title"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	Rating    *float64  `json:"rating,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
