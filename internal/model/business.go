package model

import "time"

// Business is a directory listing. Reviews are append-only and keep
// submission order; AverageRating is derived from them and must never
// disagree with the Reviews slice.
type Business struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Category         string   `json:"category"`
	Address          string   `json:"address"`
	ShortDescription string   `json:"shortDescription"`
	Hours            string   `json:"hours"`
	SpecialDeals     string   `json:"specialDeals,omitempty"`
	// OwnerUserID is empty for seeded listings. Once set, it names the
	// only user allowed to edit the descriptive fields.
	OwnerUserID   string   `json:"ownerUserId,omitempty"`
	Reviews       []Review `json:"reviews"`
	AverageRating float64  `json:"averageRating"`
}

// Clone returns a copy of b whose Reviews slice does not alias the
// original.
func (b Business) Clone() Business {
	out := b
	out.Reviews = make([]Review, len(b.Reviews))
	copy(out.Reviews, b.Reviews)
	return out
}

// Review is an immutable rating left by a user. UserName is a snapshot
// of the author name at submission time.
type Review struct {
	UserID   string    `json:"userId"`
	UserName string    `json:"userName"`
	Rating   int       `json:"rating"`
	Comment  string    `json:"comment"`
	Date     time.Time `json:"date"`
}
