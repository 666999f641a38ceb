package service

import (
	"context"
	"fmt"
	"sort"

	"mentorlink-be/internal/entity"
	"mentorlink-be/internal/repository/contract"
	"mentorlink-be/internal/repository/specification"
	"mentorlink-be/internal/repository/unitofwork"
	"mentorlink-be/pkg/embedding"

	"github.com/google/uuid"
)

// --- logger ---

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// --- repositories ---

type fakeUserRepo struct {
	users []*entity.User
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.users = append(r.users, user)
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error { return nil }

func (r *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, spec := range specs {
		if byID, ok := spec.(specification.ByID); ok {
			for _, u := range r.users {
				if u.Id == byID.ID {
					return u, nil
				}
			}
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	role := ""
	for _, spec := range specs {
		if byRole, ok := spec.(specification.ByRole); ok {
			role = byRole.Role
		}
	}
	out := make([]*entity.User, 0)
	for _, u := range r.users {
		if role == "" || u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

type fakeSessionRepo struct {
	sessions map[string]entity.Session
	updates  int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]entity.Session)}
}

func (r *fakeSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	r.sessions[session.Id] = *session
	return nil
}

func (r *fakeSessionRepo) Update(ctx context.Context, session *entity.Session) error {
	r.sessions[session.Id] = *session
	r.updates++
	return nil
}

func (r *fakeSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Session, error) {
	for _, spec := range specs {
		if f, ok := spec.(specification.FilterBy); ok && f.Field == "id" {
			id, _ := f.Value.(string)
			if s, found := r.sessions[id]; found {
				copy := s
				return &copy, nil
			}
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Session, error) {
	var idFilter map[string]bool
	orderNewestFirst := false
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.BySessionIds:
			idFilter = make(map[string]bool, len(s.Ids))
			for _, id := range s.Ids {
				idFilter[id] = true
			}
		case specification.OrderBy:
			if s.Field == "started_at" && s.Desc {
				orderNewestFirst = true
			}
		}
	}

	out := make([]*entity.Session, 0, len(r.sessions))
	for id := range r.sessions {
		if idFilter != nil && !idFilter[id] {
			continue
		}
		s := r.sessions[id]
		out = append(out, &s)
	}
	if orderNewestFirst {
		sort.Slice(out, func(a, b int) bool { return out[a].StartedAt.After(out[b].StartedAt) })
	} else {
		sort.Slice(out, func(a, b int) bool { return out[a].Id < out[b].Id })
	}
	return out, nil
}

func (r *fakeSessionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.sessions)), nil
}

type fakeSessionRequestRepo struct {
	requests      []entity.SessionRequest
	statusUpdates map[string]string
}

func newFakeSessionRequestRepo() *fakeSessionRequestRepo {
	return &fakeSessionRequestRepo{statusUpdates: make(map[string]string)}
}

func (r *fakeSessionRequestRepo) Create(ctx context.Context, request *entity.SessionRequest) error {
	r.requests = append(r.requests, *request)
	return nil
}

func (r *fakeSessionRequestRepo) Update(ctx context.Context, request *entity.SessionRequest) error {
	for i := range r.requests {
		if r.requests[i].Id == request.Id {
			r.requests[i] = *request
		}
	}
	return nil
}

func (r *fakeSessionRequestRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SessionRequest, error) {
	all, _ := r.FindAll(ctx, specs...)
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (r *fakeSessionRequestRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SessionRequest, error) {
	itemType := ""
	userId := ""
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByItemType:
			itemType = s.ItemType
		case specification.ByUserId:
			userId = s.UserId
		}
	}
	out := make([]*entity.SessionRequest, 0)
	for i := range r.requests {
		if itemType != "" && r.requests[i].ItemType != itemType {
			continue
		}
		if userId != "" && r.requests[i].UserId != userId {
			continue
		}
		req := r.requests[i]
		out = append(out, &req)
	}
	return out, nil
}

func (r *fakeSessionRequestRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

func (r *fakeSessionRequestRepo) UpdateStatusByRequestId(ctx context.Context, requestId, status string) error {
	r.statusUpdates[requestId] = status
	for i := range r.requests {
		if r.requests[i].RequestId == requestId {
			r.requests[i].Status = status
		}
	}
	return nil
}

type fakeMatchRepo struct {
	matches []entity.Match
}

func (r *fakeMatchRepo) Create(ctx context.Context, match *entity.Match) error {
	r.matches = append(r.matches, *match)
	return nil
}

func (r *fakeMatchRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Match, error) {
	if len(r.matches) == 0 {
		return nil, nil
	}
	m := r.matches[0]
	return &m, nil
}

func (r *fakeMatchRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Match, error) {
	out := make([]*entity.Match, 0, len(r.matches))
	for i := range r.matches {
		m := r.matches[i]
		out = append(out, &m)
	}
	return out, nil
}

func (r *fakeMatchRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.matches)), nil
}

type fakeMessageRepo struct {
	messages []entity.Message
}

func (r *fakeMessageRepo) Create(ctx context.Context, message *entity.Message) error {
	r.messages = append(r.messages, *message)
	return nil
}

func (r *fakeMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error) {
	sessionId := ""
	orderNewestFirst := false
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.BySessionId:
			sessionId = s.SessionId
		case specification.OrderBy:
			if s.Field == "timestamp" && s.Desc {
				orderNewestFirst = true
			}
		}
	}

	out := make([]*entity.Message, 0, len(r.messages))
	for i := range r.messages {
		if sessionId != "" && r.messages[i].SessionId != sessionId {
			continue
		}
		m := r.messages[i]
		out = append(out, &m)
	}
	if orderNewestFirst {
		sort.Slice(out, func(a, b int) bool { return out[a].Timestamp.After(out[b].Timestamp) })
	}
	return out, nil
}

func (r *fakeMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.messages)), nil
}

func (r *fakeMessageRepo) FindLatestBySessionId(ctx context.Context, sessionId string) (*entity.Message, error) {
	var latest *entity.Message
	for i := range r.messages {
		m := &r.messages[i]
		if m.SessionId != sessionId {
			continue
		}
		if latest == nil || m.Timestamp.After(latest.Timestamp) {
			latest = m
		}
	}
	if latest == nil {
		return nil, nil
	}
	copy := *latest
	return &copy, nil
}

type fakeEmbeddingRepo struct {
	byHash map[string]*entity.ProfileEmbedding
}

func newFakeEmbeddingRepo() *fakeEmbeddingRepo {
	return &fakeEmbeddingRepo{byHash: make(map[string]*entity.ProfileEmbedding)}
}

func (r *fakeEmbeddingRepo) Create(ctx context.Context, embedding *entity.ProfileEmbedding) error {
	if _, exists := r.byHash[embedding.TextHash]; exists {
		return nil // mirrors the unique-violation tolerance of the real repo
	}
	copy := *embedding
	r.byHash[embedding.TextHash] = &copy
	return nil
}

func (r *fakeEmbeddingRepo) FindByTextHash(ctx context.Context, textHash string) (*entity.ProfileEmbedding, error) {
	if e, ok := r.byHash[textHash]; ok {
		copy := *e
		return &copy, nil
	}
	return nil, nil
}

// --- unit of work ---

type fakeUnitOfWork struct {
	userRepo      *fakeUserRepo
	sessionRepo   *fakeSessionRepo
	requestRepo   *fakeSessionRequestRepo
	matchRepo     *fakeMatchRepo
	messageRepo   *fakeMessageRepo
	embeddingRepo *fakeEmbeddingRepo

	begun     int
	committed int
	rolledBak int
}

func newFakeUnitOfWork() *fakeUnitOfWork {
	return &fakeUnitOfWork{
		userRepo:      &fakeUserRepo{},
		sessionRepo:   newFakeSessionRepo(),
		requestRepo:   newFakeSessionRequestRepo(),
		matchRepo:     &fakeMatchRepo{},
		messageRepo:   &fakeMessageRepo{},
		embeddingRepo: newFakeEmbeddingRepo(),
	}
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { u.begun++; return nil }
func (u *fakeUnitOfWork) Commit() error                   { u.committed++; return nil }
func (u *fakeUnitOfWork) Rollback() error                 { u.rolledBak++; return nil }

func (u *fakeUnitOfWork) UserRepository() contract.UserRepository       { return u.userRepo }
func (u *fakeUnitOfWork) SessionRepository() contract.SessionRepository { return u.sessionRepo }
func (u *fakeUnitOfWork) SessionRequestRepository() contract.SessionRequestRepository {
	return u.requestRepo
}
func (u *fakeUnitOfWork) MatchRepository() contract.MatchRepository     { return u.matchRepo }
func (u *fakeUnitOfWork) MessageRepository() contract.MessageRepository { return u.messageRepo }
func (u *fakeUnitOfWork) ProfileEmbeddingRepository() contract.ProfileEmbeddingRepository {
	return u.embeddingRepo
}

type fakeFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

// --- embedding provider ---

type fakeEmbeddingProvider struct {
	vectors map[string][]float32
	failOn  string
	calls   []string
}

func (p *fakeEmbeddingProvider) Generate(text, taskType string) (*embedding.EmbeddingResponse, error) {
	p.calls = append(p.calls, text)
	if p.failOn != "" && text == p.failOn {
		return nil, fmt.Errorf("embedding provider unavailable")
	}
	vec, ok := p.vectors[text]
	if !ok {
		vec = []float32{0, 0}
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: vec},
	}, nil
}

// --- mailer ---

type fakeEmailService struct {
	sent []string
	err  error
}

func (s *fakeEmailService) SendMatchFound(toEmail, subject, educatorName string, score float64) error {
	s.sent = append(s.sent, toEmail)
	return s.err
}

// --- watermill publisher ---

type fakePublisher struct {
	payloads [][]byte
	err      error
}

func (p *fakePublisher) Publish(ctx context.Context, payload []byte) error {
	if p.err != nil {
		return p.err
	}
	p.payloads = append(p.payloads, payload)
	return nil
}

// --- summarizer ---

type fakeSummarizer struct {
	prefix        string
	previousGists []string
}

func (s *fakeSummarizer) Summarize(ctx context.Context, transcript, previousGist string) string {
	s.previousGists = append(s.previousGists, previousGist)
	return s.prefix + transcript
}
