/*
Package review implements user reviews and the title rating aggregate.

Each user may review a given title exactly once; the database's unique
(title, author) index serializes concurrent attempts and the loser surfaces
a conflict. Every review mutation recomputes the parent title's rating as
round(mean(scores)) inside the same transaction, so a reader can never
observe a review without its rating effect.

# Core Responsibility

  - Authorship: one review per (title, author), attributed for ownership checks.
  - Aggregation: title rating derived from review scores, null when none remain.
  - Moderation: authors manage their own reviews; moderators and admins manage any.
*/
package review

import "time"

// Review is a scored opinion a user attaches to a title.
type Review struct {
	ID       string    `json:"id"` // UUIDv7
	TitleID  int       `json:"-"`
	AuthorID string    `json:"-"`
	Author   string    `json:"author"` // Denormalized username
	Text     string    `json:"text"`
	Score    int       `json:"score"`
	PubDate  time.Time `json:"pub_date"`
}

// Input is the write payload for creating a review.
type Input struct {
	Text  string `json:"text"`
	Score int    `json:"score"`
}

// UpdateInput is the partial write payload for editing a review.
// Nil fields keep their current value.
type UpdateInput struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

// # Field Identifiers

const (
	FieldText  = "text"
	FieldScore = "score"
)

// # Validation Limits

const (
	MinScore = 1
	MaxScore = 10
)
