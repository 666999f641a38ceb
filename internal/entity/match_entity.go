package entity

import (
	"time"

	"github.com/google/uuid"
)

// Match is the durable record of the single best pairing found in one
// matching invocation. Written once, never merged with prior matches.
type Match struct {
	Id              uuid.UUID
	Subject         string
	LearnerId       uuid.UUID
	EducatorId      uuid.UUID
	DisplayName     string
	Skills          []string
	Bio             string
	SimilarityScore float64 // display score, raw × 100
	RawScore        float64 // raw cosine similarity in [-1, 1]
	SessionStatus   string
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}
