package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sort"
	"time"

	"mentorlink-be/internal/dto"
	"mentorlink-be/internal/entity"
	"mentorlink-be/internal/pkg/logger"
	"mentorlink-be/internal/pkg/mailer"
	"mentorlink-be/internal/repository/memory"
	"mentorlink-be/internal/repository/specification"
	"mentorlink-be/internal/repository/unitofwork"
	"mentorlink-be/pkg/embedding"
	"mentorlink-be/pkg/utils"

	"github.com/google/uuid"
)

var (
	ErrRequesterNotFound = errors.New("requester not found")
	ErrNoEducators       = errors.New("no educators available to match against")
	ErrNoLearners        = errors.New("no learners available to match against")
	ErrNoSubjects        = errors.New("subjects must not be empty")
)

type IMatchService interface {
	FindMatch(ctx context.Context, req *dto.FindMatchRequest) (*dto.FindMatchResponse, error)
	GetHistory(ctx context.Context, learnerId uuid.UUID) ([]*dto.MatchHistoryResponse, error)
}

type matchService struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	embeddingCache    *memory.EmbeddingCache
	emailService      mailer.IEmailService
	logger            logger.ILogger
	topN              int
}

func NewMatchService(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	embeddingCache *memory.EmbeddingCache,
	emailService mailer.IEmailService,
	log logger.ILogger,
	topN int,
) IMatchService {
	if topN <= 0 {
		topN = 5
	}
	return &matchService{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		embeddingCache:    embeddingCache,
		emailService:      emailService,
		logger:            log,
		topN:              topN,
	}
}

type scoredCandidate struct {
	candidate *entity.User
	raw       float64
}

// FindMatch ranks every counterpart-role candidate against each subject and
// records the single best pairing across all of them. A learner searches with
// the requested subjects against educators; an educator searches with their
// own joined skills as the one subject against learners. Any embedding
// failure aborts the whole call rather than returning partial rankings.
func (s *matchService) FindMatch(ctx context.Context, req *dto.FindMatchRequest) (*dto.FindMatchResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	requester, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: req.RequesterId})
	if err != nil {
		return nil, err
	}
	if requester == nil {
		return nil, ErrRequesterNotFound
	}

	var subjects []string
	var candidateRole string
	if requester.Role == entity.RoleEducator {
		subjects = []string{requester.SubjectText()}
		candidateRole = entity.RoleLearner
	} else {
		if len(req.Subjects) == 0 {
			return nil, ErrNoSubjects
		}
		subjects = req.Subjects
		candidateRole = entity.RoleEducator
	}

	candidates, err := uow.UserRepository().FindAll(ctx, specification.ByRole{Role: candidateRole})
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		if candidateRole == entity.RoleEducator {
			return nil, ErrNoEducators
		}
		return nil, ErrNoLearners
	}

	// Candidate profile embeddings are shared across subjects, compute once.
	candidateVectors := make([][]float32, len(candidates))
	for i, candidate := range candidates {
		vec, err := s.embedText(ctx, uow, candidate.Id, profileText(candidate), "RETRIEVAL_DOCUMENT")
		if err != nil {
			return nil, err
		}
		candidateVectors[i] = vec
	}

	results := make([]dto.SubjectMatchesDTO, 0, len(subjects))
	ranked := make([]dto.MatchCandidateDTO, 0, len(subjects)*s.topN)
	var best *dto.BestMatchDTO

	for _, subject := range subjects {
		queryVec, err := s.embedText(ctx, uow, requester.Id, subject, "RETRIEVAL_QUERY")
		if err != nil {
			return nil, err
		}

		scored := make([]scoredCandidate, 0, len(candidates))
		for i, candidate := range candidates {
			raw := utils.CosineSimilarity(queryVec, candidateVectors[i])
			scored = append(scored, scoredCandidate{candidate: candidate, raw: raw})

			// Strict comparison: the first candidate to reach a score
			// keeps the crown on ties.
			if best == nil || raw > best.RawScore {
				best = &dto.BestMatchDTO{
					Subject:         subject,
					CandidateId:     candidate.Id,
					DisplayName:     candidate.FullName,
					Skills:          profileTags(candidate),
					Bio:             candidate.Bio,
					SimilarityScore: raw * 100,
					RawScore:        raw,
				}
			}
		}

		sort.SliceStable(scored, func(a, b int) bool {
			return scored[a].raw > scored[b].raw
		})
		if len(scored) > s.topN {
			scored = scored[:s.topN]
		}

		matches := make([]dto.MatchCandidateDTO, 0, len(scored))
		for _, sc := range scored {
			matches = append(matches, dto.MatchCandidateDTO{
				Subject:         subject,
				CandidateId:     sc.candidate.Id,
				DisplayName:     sc.candidate.FullName,
				Skills:          profileTags(sc.candidate),
				Bio:             sc.candidate.Bio,
				SimilarityScore: sc.raw * 100,
			})
		}
		results = append(results, dto.SubjectMatchesDTO{
			Subject: subject,
			Matches: matches,
		})
		ranked = append(ranked, matches...)
	}

	// One flat list across subjects, best display score first.
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].SimilarityScore > ranked[b].SimilarityScore
	})

	if best != nil {
		learnerId, educatorId := requester.Id, best.CandidateId
		if requester.Role == entity.RoleEducator {
			learnerId, educatorId = best.CandidateId, requester.Id
		}
		record := entity.Match{
			Id:              uuid.New(),
			Subject:         best.Subject,
			LearnerId:       learnerId,
			EducatorId:      educatorId,
			DisplayName:     best.DisplayName,
			Skills:          best.Skills,
			Bio:             best.Bio,
			SimilarityScore: best.SimilarityScore,
			RawScore:        best.RawScore,
			SessionStatus:   "Pending",
			CreatedAt:       time.Now(),
		}
		if err := uow.MatchRepository().Create(ctx, &record); err != nil {
			return nil, err
		}

		if s.emailService != nil {
			if err := s.emailService.SendMatchFound(requester.Email, best.Subject, best.DisplayName, best.SimilarityScore); err != nil {
				s.logger.Warn("MatchService", "Match email failed", map[string]interface{}{
					"requester_id": requester.Id,
					"error":        err.Error(),
				})
			}
		}
	}

	return &dto.FindMatchResponse{
		Results:   results,
		Ranked:    ranked,
		BestMatch: best,
	}, nil
}

func (s *matchService) GetHistory(ctx context.Context, learnerId uuid.UUID) ([]*dto.MatchHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	matches, err := uow.MatchRepository().FindAll(ctx,
		specification.ByLearnerId{LearnerId: learnerId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.MatchHistoryResponse, 0, len(matches))
	for _, m := range matches {
		result = append(result, &dto.MatchHistoryResponse{
			Id:              m.Id,
			Subject:         m.Subject,
			EducatorId:      m.EducatorId,
			DisplayName:     m.DisplayName,
			SimilarityScore: m.SimilarityScore,
			SessionStatus:   m.SessionStatus,
			CreatedAt:       m.CreatedAt,
			UpdatedAt:       m.UpdatedAt,
		})
	}
	return result, nil
}

// profileText is the document side of the embedding: an educator is indexed
// by skills, a learner by topics.
func profileText(u *entity.User) string {
	if u.Role == entity.RoleLearner {
		return u.TopicText()
	}
	return u.SubjectText()
}

func profileTags(u *entity.User) []string {
	if u.Role == entity.RoleLearner {
		return u.Topics
	}
	return u.Skills
}

// embedText resolves a vector for the given text through three layers:
// the in-process cache, the durable pgvector store, then the provider.
func (s *matchService) embedText(ctx context.Context, uow unitofwork.UnitOfWork, ownerId uuid.UUID, text, taskType string) ([]float32, error) {
	sum := sha256.Sum256([]byte(text))
	textHash := hex.EncodeToString(sum[:])

	if s.embeddingCache != nil {
		if vec, ok := s.embeddingCache.Get(textHash); ok {
			return vec, nil
		}
	}

	stored, err := uow.ProfileEmbeddingRepository().FindByTextHash(ctx, textHash)
	if err != nil {
		return nil, err
	}
	if stored != nil {
		if s.embeddingCache != nil {
			s.embeddingCache.Set(textHash, stored.EmbeddingValue)
		}
		return stored.EmbeddingValue, nil
	}

	res, err := s.embeddingProvider.Generate(text, taskType)
	if err != nil {
		return nil, err
	}
	vec := res.Embedding.Values

	record := entity.ProfileEmbedding{
		Id:             uuid.New(),
		OwnerId:        ownerId,
		TextHash:       textHash,
		Document:       text,
		EmbeddingValue: vec,
		CreatedAt:      time.Now(),
	}
	if err := uow.ProfileEmbeddingRepository().Create(ctx, &record); err != nil {
		return nil, err
	}

	if s.embeddingCache != nil {
		s.embeddingCache.Set(textHash, vec)
	}
	return vec, nil
}
