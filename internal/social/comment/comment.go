// Package comment implements threaded discussion under reviews.
//
// Comments follow the same ownership rule as reviews: the author may edit
// or remove their own, moderators and admins may manage any. Deleting a
// review removes its comments through the database cascade.
package comment

import "time"

// Comment is a user remark attached to a review.
type Comment struct {
	ID       string    `json:"id"` // UUIDv7
	ReviewID string    `json:"-"`
	AuthorID string    `json:"-"`
	Author   string    `json:"author"` // Denormalized username
	Text     string    `json:"text"`
	PubDate  time.Time `json:"pub_date"`
}

// Input is the write payload for creating a comment.
type Input struct {
	Text string `json:"text"`
}

// UpdateInput is the partial write payload for editing a comment.
// A nil text keeps the current value.
type UpdateInput struct {
	Text *string `json:"text"`
}

// # Field Identifiers

const FieldText = "text"
