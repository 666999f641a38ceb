package mapper

import (
	"time"

	"mentorlink-be/internal/entity"
	"mentorlink-be/internal/model"
)

type MatchMapper struct{}

func NewMatchMapper() *MatchMapper {
	return &MatchMapper{}
}

func (m *MatchMapper) ToEntity(mt *model.Match) *entity.Match {
	if mt == nil {
		return nil
	}

	var updatedAt *time.Time
	if !mt.UpdatedAt.IsZero() {
		t := mt.UpdatedAt
		updatedAt = &t
	}

	return &entity.Match{
		Id:              mt.Id,
		Subject:         mt.Subject,
		LearnerId:       mt.LearnerId,
		EducatorId:      mt.EducatorId,
		DisplayName:     mt.DisplayName,
		Skills:          jsonToStrings(mt.Skills),
		Bio:             mt.Bio,
		SimilarityScore: mt.SimilarityScore,
		RawScore:        mt.RawScore,
		SessionStatus:   mt.SessionStatus,
		CreatedAt:       mt.CreatedAt,
		UpdatedAt:       updatedAt,
	}
}

func (m *MatchMapper) ToModel(mt *entity.Match) *model.Match {
	if mt == nil {
		return nil
	}

	var updatedAt time.Time
	if mt.UpdatedAt != nil {
		updatedAt = *mt.UpdatedAt
	}

	return &model.Match{
		Id:              mt.Id,
		Subject:         mt.Subject,
		LearnerId:       mt.LearnerId,
		EducatorId:      mt.EducatorId,
		DisplayName:     mt.DisplayName,
		Skills:          stringsToJSON(mt.Skills),
		Bio:             mt.Bio,
		SimilarityScore: mt.SimilarityScore,
		RawScore:        mt.RawScore,
		SessionStatus:   mt.SessionStatus,
		CreatedAt:       mt.CreatedAt,
		UpdatedAt:       updatedAt,
	}
}

func (m *MatchMapper) ToEntities(matches []*model.Match) []*entity.Match {
	out := make([]*entity.Match, 0, len(matches))
	for _, mt := range matches {
		out = append(out, m.ToEntity(mt))
	}
	return out
}
