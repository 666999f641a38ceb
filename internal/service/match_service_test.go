package service

import (
	"context"
	"testing"
	"time"

	"mentorlink-be/internal/dto"
	"mentorlink-be/internal/entity"
	"mentorlink-be/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMatchFixture(topN int) (*fakeUnitOfWork, *fakeEmbeddingProvider, *fakeEmailService, IMatchService) {
	uow := newFakeUnitOfWork()
	provider := &fakeEmbeddingProvider{vectors: map[string][]float32{}}
	email := &fakeEmailService{}
	svc := NewMatchService(
		&fakeFactory{uow: uow},
		provider,
		memory.NewEmbeddingCache(time.Minute),
		email,
		nopLogger{},
		topN,
	)
	return uow, provider, email, svc
}

func seedLearner(uow *fakeUnitOfWork) *entity.User {
	learner := &entity.User{
		Id:     uuid.New(),
		Email:  "learner@example.com",
		Role:   entity.RoleLearner,
		Topics: []string{"math"},
	}
	uow.userRepo.users = append(uow.userRepo.users, learner)
	return learner
}

func seedEducator(uow *fakeUnitOfWork, name string, skills []string) *entity.User {
	educator := &entity.User{
		Id:       uuid.New(),
		FullName: name,
		Email:    name + "@example.com",
		Role:     entity.RoleEducator,
		Skills:   skills,
	}
	uow.userRepo.users = append(uow.userRepo.users, educator)
	return educator
}

func seedLearnerWithTopics(uow *fakeUnitOfWork, name string, topics []string) *entity.User {
	learner := &entity.User{
		Id:       uuid.New(),
		FullName: name,
		Email:    name + "@example.com",
		Role:     entity.RoleLearner,
		Topics:   topics,
	}
	uow.userRepo.users = append(uow.userRepo.users, learner)
	return learner
}

func TestFindMatchRanksAndPersistsBest(t *testing.T) {
	uow, provider, email, svc := newMatchFixture(5)
	learner := seedLearner(uow)
	e1 := seedEducator(uow, "strong", []string{"algebra"})
	e2 := seedEducator(uow, "weak", []string{"poetry"})

	provider.vectors["math"] = []float32{1, 0}
	provider.vectors["algebra"] = []float32{0.9, 0.43588989}
	provider.vectors["poetry"] = []float32{0.1, 0.99498744}

	res, err := svc.FindMatch(context.Background(), &dto.FindMatchRequest{
		RequesterId: learner.Id,
		Subjects:    []string{"math"},
	})
	require.NoError(t, err)
	require.NotNil(t, res.BestMatch)

	assert.Equal(t, e1.Id, res.BestMatch.CandidateId)
	assert.InDelta(t, 0.9, res.BestMatch.RawScore, 1e-6)
	assert.InDelta(t, 90.0, res.BestMatch.SimilarityScore, 1e-4)

	require.Len(t, res.Results, 1)
	require.Len(t, res.Results[0].Matches, 2)
	assert.Equal(t, e1.Id, res.Results[0].Matches[0].CandidateId)
	assert.Equal(t, e2.Id, res.Results[0].Matches[1].CandidateId)

	// Exactly one persisted match row per invocation.
	require.Len(t, uow.matchRepo.matches, 1)
	assert.Equal(t, learner.Id, uow.matchRepo.matches[0].LearnerId)
	assert.Equal(t, e1.Id, uow.matchRepo.matches[0].EducatorId)
	assert.InDelta(t, 0.9, uow.matchRepo.matches[0].RawScore, 1e-6)

	assert.Equal(t, []string{learner.Email}, email.sent)
}

func TestFindMatchEducatorRequesterRanksLearners(t *testing.T) {
	uow, provider, email, svc := newMatchFixture(5)
	educator := seedEducator(uow, "mentor", []string{"algebra", "calculus"})
	l1 := seedLearnerWithTopics(uow, "keen", []string{"calculus"})
	l2 := seedLearnerWithTopics(uow, "casual", []string{"poetry"})

	// The educator's joined skills become the single query subject.
	provider.vectors["algebra calculus"] = []float32{1, 0}
	provider.vectors["calculus"] = []float32{0.9, 0.43588989}
	provider.vectors["poetry"] = []float32{0.1, 0.99498744}

	res, err := svc.FindMatch(context.Background(), &dto.FindMatchRequest{
		RequesterId: educator.Id,
	})
	require.NoError(t, err)
	require.NotNil(t, res.BestMatch)

	require.Len(t, res.Results, 1)
	assert.Equal(t, "algebra calculus", res.Results[0].Subject)
	require.Len(t, res.Results[0].Matches, 2)
	assert.Equal(t, l1.Id, res.Results[0].Matches[0].CandidateId)
	assert.Equal(t, l2.Id, res.Results[0].Matches[1].CandidateId)

	assert.Equal(t, l1.Id, res.BestMatch.CandidateId)
	assert.Equal(t, []string{"calculus"}, res.BestMatch.Skills)

	// The match row keeps learner/educator columns straight regardless of
	// who initiated.
	require.Len(t, uow.matchRepo.matches, 1)
	assert.Equal(t, l1.Id, uow.matchRepo.matches[0].LearnerId)
	assert.Equal(t, educator.Id, uow.matchRepo.matches[0].EducatorId)

	assert.Equal(t, []string{educator.Email}, email.sent)
}

func TestFindMatchTieKeepsFirstEncountered(t *testing.T) {
	uow, provider, _, svc := newMatchFixture(5)
	learner := seedLearner(uow)
	e1 := seedEducator(uow, "first", []string{"algebra"})
	seedEducator(uow, "second", []string{"geometry"})

	provider.vectors["math"] = []float32{1, 0}
	provider.vectors["algebra"] = []float32{1, 0}
	provider.vectors["geometry"] = []float32{1, 0}

	res, err := svc.FindMatch(context.Background(), &dto.FindMatchRequest{
		RequesterId: learner.Id,
		Subjects:    []string{"math"},
	})
	require.NoError(t, err)
	require.NotNil(t, res.BestMatch)
	assert.Equal(t, e1.Id, res.BestMatch.CandidateId)
}

func TestFindMatchNoEducators(t *testing.T) {
	uow, _, _, svc := newMatchFixture(5)
	learner := seedLearner(uow)

	_, err := svc.FindMatch(context.Background(), &dto.FindMatchRequest{
		RequesterId: learner.Id,
		Subjects:    []string{"math"},
	})
	assert.ErrorIs(t, err, ErrNoEducators)
}

func TestFindMatchNoLearnersForEducator(t *testing.T) {
	uow, _, _, svc := newMatchFixture(5)
	educator := seedEducator(uow, "lonely", []string{"algebra"})

	_, err := svc.FindMatch(context.Background(), &dto.FindMatchRequest{
		RequesterId: educator.Id,
	})
	assert.ErrorIs(t, err, ErrNoLearners)
}

func TestFindMatchRequesterMissing(t *testing.T) {
	uow, _, _, svc := newMatchFixture(5)
	seedEducator(uow, "lonely", []string{"algebra"})

	_, err := svc.FindMatch(context.Background(), &dto.FindMatchRequest{
		RequesterId: uuid.New(),
		Subjects:    []string{"math"},
	})
	assert.ErrorIs(t, err, ErrRequesterNotFound)
}

func TestFindMatchEmbeddingFailureAbortsCall(t *testing.T) {
	uow, provider, email, svc := newMatchFixture(5)
	learner := seedLearner(uow)
	seedEducator(uow, "broken", []string{"algebra"})

	provider.failOn = "algebra"

	_, err := svc.FindMatch(context.Background(), &dto.FindMatchRequest{
		RequesterId: learner.Id,
		Subjects:    []string{"math"},
	})
	require.Error(t, err)
	assert.Empty(t, uow.matchRepo.matches, "no partial results should be persisted")
	assert.Empty(t, email.sent)
}

func TestFindMatchTopNLimitsSubjectLists(t *testing.T) {
	uow, provider, _, svc := newMatchFixture(1)
	learner := seedLearner(uow)
	seedEducator(uow, "a", []string{"algebra"})
	seedEducator(uow, "b", []string{"geometry"})

	provider.vectors["math"] = []float32{1, 0}
	provider.vectors["algebra"] = []float32{1, 0}
	provider.vectors["geometry"] = []float32{0, 1}

	res, err := svc.FindMatch(context.Background(), &dto.FindMatchRequest{
		RequesterId: learner.Id,
		Subjects:    []string{"math"},
	})
	require.NoError(t, err)
	require.Len(t, res.Results, 1)
	assert.Len(t, res.Results[0].Matches, 1)
	assert.Len(t, res.Ranked, 1)
}

func TestFindMatchRankedListIsGloballySorted(t *testing.T) {
	uow, provider, _, svc := newMatchFixture(5)
	learner := seedLearner(uow)
	e1 := seedEducator(uow, "algebraist", []string{"algebra"})
	e2 := seedEducator(uow, "poet", []string{"poetry"})

	provider.vectors["math"] = []float32{1, 0}
	provider.vectors["verse"] = []float32{0, 1}
	provider.vectors["algebra"] = []float32{0.9, 0.43588989}
	provider.vectors["poetry"] = []float32{0.1, 0.99498744}

	res, err := svc.FindMatch(context.Background(), &dto.FindMatchRequest{
		RequesterId: learner.Id,
		Subjects:    []string{"math", "verse"},
	})
	require.NoError(t, err)

	// Two subjects, two candidates each: one flat list re-sorted by display
	// score descending, crossing subject boundaries.
	require.Len(t, res.Ranked, 4)
	for i := 1; i < len(res.Ranked); i++ {
		assert.GreaterOrEqual(t, res.Ranked[i-1].SimilarityScore, res.Ranked[i].SimilarityScore,
			"ranked list out of order at %d", i)
	}
	assert.Equal(t, e2.Id, res.Ranked[0].CandidateId)
	assert.Equal(t, "verse", res.Ranked[0].Subject)
	assert.Equal(t, e1.Id, res.Ranked[1].CandidateId)
	assert.Equal(t, "math", res.Ranked[1].Subject)
}

func TestFindMatchReusesCachedEmbeddings(t *testing.T) {
	uow, provider, _, svc := newMatchFixture(5)
	learner := seedLearner(uow)
	seedEducator(uow, "cached", []string{"algebra"})

	provider.vectors["math"] = []float32{1, 0}
	provider.vectors["algebra"] = []float32{0.5, 0.5}

	req := &dto.FindMatchRequest{RequesterId: learner.Id, Subjects: []string{"math"}}

	_, err := svc.FindMatch(context.Background(), req)
	require.NoError(t, err)
	callsAfterFirst := len(provider.calls)

	_, err = svc.FindMatch(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, callsAfterFirst, len(provider.calls), "second invocation should hit the cache")
}

func TestGetHistoryReturnsLearnerMatches(t *testing.T) {
	uow, _, _, svc := newMatchFixture(5)
	learnerId := uuid.New()
	uow.matchRepo.matches = append(uow.matchRepo.matches, entity.Match{
		Id:              uuid.New(),
		Subject:         "math",
		LearnerId:       learnerId,
		EducatorId:      uuid.New(),
		DisplayName:     "strong",
		SimilarityScore: 90,
		SessionStatus:   "Pending",
		CreatedAt:       time.Now(),
	})

	history, err := svc.GetHistory(context.Background(), learnerId)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "math", history[0].Subject)
	assert.InDelta(t, 90.0, history[0].SimilarityScore, 1e-9)
}
