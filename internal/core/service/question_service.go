package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/stackit/qna-api/internal/core/domain"
	"github.com/stackit/qna-api/internal/core/ports"
)

const (
	defaultQuestionLimit = 10
	maxQuestionLimit     = 50

	// AI answer attempts fire between 5 and 30 seconds after a question is
	// created, decoupling generation from request latency and simulating a
	// human response time.
	aiDelayMin = 5 * time.Second
	aiDelayMax = 30 * time.Second
)

// QuestionService implements question listing, reading and creation.
type QuestionService struct {
	questions ports.QuestionRepository
	tags      ports.TagRepository
	scheduler ports.AIScheduler
	log       zerolog.Logger
}

func NewQuestionService(
	questions ports.QuestionRepository,
	tags ports.TagRepository,
	scheduler ports.AIScheduler,
	log zerolog.Logger,
) *QuestionService {
	return &QuestionService{questions: questions, tags: tags, scheduler: scheduler, log: log}
}

func (s *QuestionService) List(ctx context.Context, filter ports.ListQuestionsFilter) (*ports.QuestionPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultQuestionLimit
	}
	if filter.Limit > maxQuestionLimit {
		filter.Limit = maxQuestionLimit
	}
	if filter.Tag != "" {
		filter.Tag = domain.NormalizeTagName(filter.Tag)
	}

	questions, total, err := s.questions.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}

	summaries := make([]ports.QuestionSummary, 0, len(questions))
	for _, q := range questions {
		summaries = append(summaries, summarize(q))
	}

	return &ports.QuestionPage{
		Questions:  summaries,
		Pagination: paginate(filter.Page, filter.Limit, total),
	}, nil
}

// Get returns the question detail with vote state resolved for viewerID.
// viewerID 0 means anonymous.
func (s *QuestionService) Get(ctx context.Context, id, viewerID uint) (*ports.QuestionDetail, error) {
	q, err := s.questions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &ports.QuestionDetail{
		QuestionSummary: summarize(q),
		Answers:         make([]ports.AnswerView, 0, len(q.Answers)),
		UserVote:        userVote(q.Votes, viewerID),
		CanEdit:         viewerID != 0 && viewerID == q.AuthorID,
	}
	for i := range q.Answers {
		detail.Answers = append(detail.Answers, answerView(&q.Answers[i], viewerID))
	}
	return detail, nil
}

// Create persists the question with normalized, upserted tags, then schedules
// an AI answer attempt. Scheduling is fire-and-forget: it cannot fail the
// creation and the created response never waits on it.
func (s *QuestionService) Create(ctx context.Context, in ports.CreateQuestionInput) (*ports.QuestionSummary, error) {
	tags := make([]domain.Tag, 0, len(in.Tags))
	seen := make(map[string]struct{}, len(in.Tags))
	for _, raw := range in.Tags {
		name := domain.NormalizeTagName(raw)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		tag, err := s.tags.UpsertByName(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("create question: upsert tag %q: %w", name, err)
		}
		tags = append(tags, *tag)
	}

	q := &domain.Question{
		Title:       in.Title,
		Description: in.Description,
		AuthorID:    in.AuthorID,
		Tags:        tags,
	}
	if err := s.questions.Create(ctx, q); err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}

	created, err := s.questions.FindByID(ctx, q.ID)
	if err != nil {
		return nil, fmt.Errorf("create question: reload: %w", err)
	}

	delay := aiDelayMin + time.Duration(rand.Int63n(int64(aiDelayMax-aiDelayMin)))
	s.scheduler.Schedule(q.ID, delay)

	s.log.Info().
		Uint("question_id", q.ID).
		Uint("author_id", in.AuthorID).
		Dur("ai_delay", delay).
		Msg("question created")

	summary := summarize(created)
	return &summary, nil
}

// TagService lists tags for the public tag directory.
type TagService struct {
	tags ports.TagRepository
}

func NewTagService(tags ports.TagRepository) *TagService {
	return &TagService{tags: tags}
}

func (s *TagService) List(ctx context.Context, search string, limit int) ([]ports.TagWithCount, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.tags.List(ctx, search, limit)
}

// --- projection helpers shared across services ---

func summarize(q *domain.Question) ports.QuestionSummary {
	hasAccepted := false
	for i := range q.Answers {
		if q.Answers[i].IsAccepted {
			hasAccepted = true
			break
		}
	}
	return ports.QuestionSummary{
		ID:                q.ID,
		Title:             q.Title,
		Description:       q.Description,
		Author:            userRef(q.Author),
		Tags:              q.Tags,
		AnswerCount:       len(q.Answers),
		VoteScore:         score(q.Votes),
		HasAcceptedAnswer: hasAccepted,
		CreatedAt:         q.CreatedAt,
		UpdatedAt:         q.UpdatedAt,
	}
}

func answerView(a *domain.Answer, viewerID uint) ports.AnswerView {
	return ports.AnswerView{
		ID:         a.ID,
		Content:    a.Content,
		Author:     userRef(a.Author),
		IsAccepted: a.IsAccepted,
		VoteScore:  score(a.Votes),
		UserVote:   userVote(a.Votes, viewerID),
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

func userRef(u *domain.User) ports.UserRef {
	if u == nil {
		return ports.UserRef{}
	}
	return ports.UserRef{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName, Email: u.Email}
}

func score(votes []domain.Vote) int {
	n := 0
	for i := range votes {
		if votes[i].Type == domain.VoteUp {
			n++
		} else {
			n--
		}
	}
	return n
}

func userVote(votes []domain.Vote, viewerID uint) *domain.VoteType {
	if viewerID == 0 {
		return nil
	}
	for i := range votes {
		if votes[i].UserID == viewerID {
			t := votes[i].Type
			return &t
		}
	}
	return nil
}

func paginate(page, limit int, total int64) ports.Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return ports.Pagination{
		Page:       page,
		Limit:      limit,
		TotalCount: total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
