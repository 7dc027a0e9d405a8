package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/stackit/qna-api/internal/core/domain"
	"github.com/stackit/qna-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub repositories shared by the service tests
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID      map[uint]*domain.User
	nextID    uint
	createErr error
	listErr   error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[uint]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return domain.ErrUserExists
		}
	}
	r.nextID++
	u.ID = r.nextID
	clone := *u
	r.byID[u.ID] = &clone
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uint) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context, f ports.ListUsersFilter) ([]*domain.User, int64, error) {
	if r.listErr != nil {
		return nil, 0, r.listErr
	}
	var matched []*domain.User
	for _, u := range r.byID {
		if f.Search != "" {
			needle := strings.ToLower(f.Search)
			hay := strings.ToLower(u.Email + " " + u.FirstName + " " + u.LastName)
			if !strings.Contains(hay, needle) {
				continue
			}
		}
		clone := *u
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	skip := (f.Page - 1) * f.Limit
	if skip < 0 {
		skip = 0
	}
	if skip > len(matched) {
		return []*domain.User{}, total, nil
	}
	end := skip + f.Limit
	if f.Limit <= 0 || end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) error {
	if _, ok := r.byID[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	clone := *u
	r.byID[u.ID] = &clone
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byID, id)
	return nil
}

// seedUser registers a user directly in the stub, bypassing the service.
func seedUser(r *stubUserRepo, email, first, last, role string, active bool) *domain.User {
	r.nextID++
	u := &domain.User{
		ID:        r.nextID,
		Email:     email,
		FirstName: first,
		LastName:  last,
		Role:      role,
		IsActive:  active,
		CreatedAt: time.Now().UTC(),
	}
	r.byID[u.ID] = u
	return u
}

type stubQuestionRepo struct {
	byID    map[uint]*domain.Question
	nextID  uint
	findErr error
}

func newStubQuestionRepo() *stubQuestionRepo {
	return &stubQuestionRepo{byID: make(map[uint]*domain.Question)}
}

func (r *stubQuestionRepo) Create(_ context.Context, q *domain.Question) error {
	r.nextID++
	q.ID = r.nextID
	clone := *q
	r.byID[q.ID] = &clone
	return nil
}

func (r *stubQuestionRepo) FindByID(_ context.Context, id uint) (*domain.Question, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	q, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrQuestionNotFound
	}
	clone := *q
	return &clone, nil
}

func (r *stubQuestionRepo) FindSummary(ctx context.Context, id uint) (*domain.Question, error) {
	return r.FindByID(ctx, id)
}

func (r *stubQuestionRepo) List(_ context.Context, f ports.ListQuestionsFilter) ([]*domain.Question, int64, error) {
	var matched []*domain.Question
	for _, q := range r.byID {
		if f.Search != "" {
			needle := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(q.Title), needle) &&
				!strings.Contains(strings.ToLower(q.Description), needle) {
				continue
			}
		}
		if f.Tag != "" {
			found := false
			for _, t := range q.Tags {
				if t.Name == f.Tag {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		clone := *q
		matched = append(matched, &clone)
	}
	// Newest first, matching the default sort of the real repository.
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	total := int64(len(matched))
	skip := (f.Page - 1) * f.Limit
	if skip < 0 {
		skip = 0
	}
	if skip > len(matched) {
		return []*domain.Question{}, total, nil
	}
	end := skip + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

func seedQuestion(r *stubQuestionRepo, title, description string, authorID uint) *domain.Question {
	r.nextID++
	q := &domain.Question{
		ID:          r.nextID,
		Title:       title,
		Description: description,
		AuthorID:    authorID,
		CreatedAt:   time.Now().UTC(),
	}
	r.byID[q.ID] = q
	return q
}

type stubAnswerRepo struct {
	byID        map[uint]*domain.Answer
	nextID      uint
	createErr   error
	acceptCalls int
}

func newStubAnswerRepo() *stubAnswerRepo {
	return &stubAnswerRepo{byID: make(map[uint]*domain.Answer)}
}

func (r *stubAnswerRepo) Create(_ context.Context, a *domain.Answer) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	a.ID = r.nextID
	clone := *a
	r.byID[a.ID] = &clone
	return nil
}

func (r *stubAnswerRepo) FindByID(_ context.Context, id uint) (*domain.Answer, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAnswerNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubAnswerRepo) FindByQuestionAndAuthor(_ context.Context, questionID, authorID uint) (*domain.Answer, error) {
	for _, a := range r.byID {
		if a.QuestionID == questionID && a.AuthorID == authorID {
			clone := *a
			return &clone, nil
		}
	}
	return nil, domain.ErrAnswerNotFound
}

// Accept mirrors the real transaction: clear the flag on every answer of the
// question, then set it on the target.
func (r *stubAnswerRepo) Accept(_ context.Context, questionID, answerID uint) error {
	target, ok := r.byID[answerID]
	if !ok || target.QuestionID != questionID {
		return domain.ErrAnswerNotFound
	}
	for _, a := range r.byID {
		if a.QuestionID == questionID {
			a.IsAccepted = false
		}
	}
	target.IsAccepted = true
	r.acceptCalls++
	return nil
}

func seedAnswer(r *stubAnswerRepo, questionID, authorID uint, content string) *domain.Answer {
	r.nextID++
	a := &domain.Answer{
		ID:         r.nextID,
		Content:    content,
		AuthorID:   authorID,
		QuestionID: questionID,
		CreatedAt:  time.Now().UTC(),
	}
	r.byID[a.ID] = a
	return a
}

type stubVoteRepo struct {
	byID   map[uint]*domain.Vote
	nextID uint
}

func newStubVoteRepo() *stubVoteRepo {
	return &stubVoteRepo{byID: make(map[uint]*domain.Vote)}
}

func voteMatches(v *domain.Vote, userID uint, target domain.VoteTarget, targetID uint) bool {
	if v.UserID != userID {
		return false
	}
	if target == domain.TargetQuestion {
		return v.QuestionID != nil && *v.QuestionID == targetID
	}
	return v.AnswerID != nil && *v.AnswerID == targetID
}

func (r *stubVoteRepo) Find(_ context.Context, userID uint, target domain.VoteTarget, targetID uint) (*domain.Vote, error) {
	for _, v := range r.byID {
		if voteMatches(v, userID, target, targetID) {
			clone := *v
			return &clone, nil
		}
	}
	return nil, domain.ErrVoteNotFound
}

func (r *stubVoteRepo) Create(_ context.Context, v *domain.Vote) error {
	target := domain.TargetAnswer
	targetID := uint(0)
	if v.QuestionID != nil {
		target = domain.TargetQuestion
		targetID = *v.QuestionID
	} else if v.AnswerID != nil {
		targetID = *v.AnswerID
	}
	for _, existing := range r.byID {
		if voteMatches(existing, v.UserID, target, targetID) {
			return domain.ErrDuplicateVote
		}
	}
	r.nextID++
	v.ID = r.nextID
	clone := *v
	r.byID[v.ID] = &clone
	return nil
}

func (r *stubVoteRepo) UpdateType(_ context.Context, voteID uint, t domain.VoteType) error {
	v, ok := r.byID[voteID]
	if !ok {
		return domain.ErrVoteNotFound
	}
	v.Type = t
	return nil
}

func (r *stubVoteRepo) Delete(_ context.Context, voteID uint) error {
	delete(r.byID, voteID)
	return nil
}

func (r *stubVoteRepo) Score(_ context.Context, target domain.VoteTarget, targetID uint) (int, error) {
	score := 0
	for _, v := range r.byID {
		matches := false
		if target == domain.TargetQuestion {
			matches = v.QuestionID != nil && *v.QuestionID == targetID
		} else {
			matches = v.AnswerID != nil && *v.AnswerID == targetID
		}
		if !matches {
			continue
		}
		if v.Type == domain.VoteUp {
			score++
		} else {
			score--
		}
	}
	return score, nil
}

type stubNotificationRepo struct {
	rows      []*domain.Notification
	nextID    uint
	createErr error
}

func newStubNotificationRepo() *stubNotificationRepo {
	return &stubNotificationRepo{}
}

func (r *stubNotificationRepo) Create(_ context.Context, n *domain.Notification) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	n.ID = r.nextID
	clone := *n
	r.rows = append(r.rows, &clone)
	return nil
}

func (r *stubNotificationRepo) ListByUser(_ context.Context, userID uint, unreadOnly bool, page, limit int) ([]*domain.Notification, int64, int64, error) {
	var matched []*domain.Notification
	var unread int64
	for _, n := range r.rows {
		if n.UserID != userID {
			continue
		}
		if !n.IsRead {
			unread++
		}
		if unreadOnly && n.IsRead {
			continue
		}
		clone := *n
		matched = append(matched, &clone)
	}
	// Newest first.
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	total := int64(len(matched))
	skip := (page - 1) * limit
	if skip > len(matched) {
		return []*domain.Notification{}, total, unread, nil
	}
	end := skip + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, unread, nil
}

func (r *stubNotificationRepo) MarkRead(_ context.Context, userID uint, ids []uint) (int64, error) {
	want := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	var updated int64
	for _, n := range r.rows {
		if n.UserID != userID || n.IsRead {
			continue
		}
		if _, ok := want[n.ID]; ok {
			n.IsRead = true
			updated++
		}
	}
	return updated, nil
}

func (r *stubNotificationRepo) MarkAllRead(_ context.Context, userID uint) (int64, error) {
	var updated int64
	for _, n := range r.rows {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			updated++
		}
	}
	return updated, nil
}

// forUser returns the stored notifications addressed to userID, oldest first.
func (r *stubNotificationRepo) forUser(userID uint) []*domain.Notification {
	var out []*domain.Notification
	for _, n := range r.rows {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

type stubTagRepo struct {
	byName map[string]*domain.Tag
	nextID uint
}

func newStubTagRepo() *stubTagRepo {
	return &stubTagRepo{byName: make(map[string]*domain.Tag)}
}

func (r *stubTagRepo) UpsertByName(_ context.Context, name string) (*domain.Tag, error) {
	if t, ok := r.byName[name]; ok {
		clone := *t
		return &clone, nil
	}
	r.nextID++
	t := &domain.Tag{ID: r.nextID, Name: name}
	r.byName[name] = t
	clone := *t
	return &clone, nil
}

func (r *stubTagRepo) List(_ context.Context, search string, limit int) ([]ports.TagWithCount, error) {
	var out []ports.TagWithCount
	for _, t := range r.byName {
		if search != "" && !strings.Contains(t.Name, strings.ToLower(search)) {
			continue
		}
		out = append(out, ports.TagWithCount{Tag: *t})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tag.Name < out[j].Tag.Name })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Stub collaborators for the AI pipeline
// ---------------------------------------------------------------------------

type scheduledCall struct {
	questionID uint
	delay      time.Duration
}

type stubScheduler struct {
	calls []scheduledCall
}

func (s *stubScheduler) Schedule(questionID uint, delay time.Duration) {
	s.calls = append(s.calls, scheduledCall{questionID: questionID, delay: delay})
}

type stubGenerator struct {
	answerable bool
	content    string
	genErr     error
	genCalls   int
}

func (g *stubGenerator) ShouldAnswer(_, _ string) bool {
	return g.answerable
}

func (g *stubGenerator) Generate(_ context.Context, _, _ string) (string, error) {
	g.genCalls++
	if g.genErr != nil {
		return "", g.genErr
	}
	return g.content, nil
}

type stubGuard struct {
	scheduled map[uint]bool
	isErr     error
	markErr   error
}

func newStubGuard() *stubGuard {
	return &stubGuard{scheduled: make(map[uint]bool)}
}

func (g *stubGuard) IsScheduled(_ context.Context, questionID uint) (bool, error) {
	if g.isErr != nil {
		return false, g.isErr
	}
	return g.scheduled[questionID], nil
}

func (g *stubGuard) MarkScheduled(_ context.Context, questionID uint) error {
	if g.markErr != nil {
		return g.markErr
	}
	g.scheduled[questionID] = true
	return nil
}
