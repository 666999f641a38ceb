package dto

import (
	"time"

	"github.com/google/uuid"
)

type FindMatchRequest struct {
	RequesterId uuid.UUID `json:"requester_id" validate:"required"`
	// Subjects drive a learner-initiated search. Educator-initiated searches
	// derive the single subject from the educator's own skills instead.
	Subjects []string `json:"subjects" validate:"omitempty,dive,required"`
}

// MatchCandidateDTO is one ranked counterpart-role candidate.
type MatchCandidateDTO struct {
	Subject         string    `json:"subject"`
	CandidateId     uuid.UUID `json:"candidate_id"`
	DisplayName     string    `json:"display_name"`
	Skills          []string  `json:"skills"`
	Bio             string    `json:"bio"`
	SimilarityScore float64   `json:"similarity_score"` // percentage, raw score x100
}

type SubjectMatchesDTO struct {
	Subject string              `json:"subject"`
	Matches []MatchCandidateDTO `json:"matches"`
}

// BestMatchDTO is the single winner across every requested subject.
type BestMatchDTO struct {
	Subject         string    `json:"subject"`
	CandidateId     uuid.UUID `json:"candidate_id"`
	DisplayName     string    `json:"display_name"`
	Skills          []string  `json:"skills"`
	Bio             string    `json:"bio"`
	SimilarityScore float64   `json:"similarity_score"`
	RawScore        float64   `json:"raw_score"`
}

type FindMatchResponse struct {
	Results []SubjectMatchesDTO `json:"results"`
	// Ranked is every per-subject top-N candidate in one list, re-sorted
	// globally by display score descending.
	Ranked    []MatchCandidateDTO `json:"ranked"`
	BestMatch *BestMatchDTO       `json:"best_match"`
}

type MatchHistoryResponse struct {
	Id              uuid.UUID  `json:"id"`
	Subject         string     `json:"subject"`
	EducatorId      uuid.UUID  `json:"educator_id"`
	DisplayName     string     `json:"display_name"`
	SimilarityScore float64    `json:"similarity_score"`
	SessionStatus   string     `json:"session_status"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at"`
}
