package model

import "time"

// Submission is one appended row per prediction.
type Submission struct {
	CreatedAt time.Time `json:"created_at"`
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Input     RawInput  `json:"input"`
	Label     RiskLabel `json:"label"`
}

// Feedback is an app rating from 0 to 5.
type Feedback struct {
	CreatedAt time.Time `json:"created_at"`
	Username  string    `json:"username"`
	Rating    int       `json:"rating"`
}

// Rating bounds.
const (
	MinRating = 0
	MaxRating = 5
)
