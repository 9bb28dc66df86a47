package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"coastal-quiz-service/internal/domain"
	"coastal-quiz-service/internal/notify"
	"coastal-quiz-service/internal/quiz"
	"coastal-quiz-service/internal/stats"
)

// SessionRepository abstracts how active quiz attempts are stored
// (in-memory, Redis-backed, etc).
type SessionRepository interface {
	Put(id string, attempt *Attempt)
	Get(id string) (*Attempt, bool)
	Delete(id string)
}

// BankRepository loads question bank content (from cache/backing store).
type BankRepository interface {
	GetBank(ctx context.Context) (quiz.Bank, error)
}

// Attempt pairs a running session with the quiz-type label it was started
// under, which tags the result in the statistics aggregator.
type Attempt struct {
	Session  *quiz.Session
	QuizType string
}

// QuizTypeLabel is the human-readable label for a category filter.
// An empty category means the full-bank quiz.
func QuizTypeLabel(category domain.Category) string {
	if category == "" {
		return "Complete Quiz"
	}
	return string(category) + " Quiz"
}

// QuestionView is the question shape exposed to callers: the correct index
// and the explanation stay hidden until an answer is recorded.
type QuestionView struct {
	Index      int               `json:"index"`
	Total      int               `json:"total"`
	ID         int               `json:"id"`
	Text       string            `json:"question"`
	Options    []string          `json:"options"`
	Category   domain.Category   `json:"category"`
	Difficulty domain.Difficulty `json:"difficulty"`
}

// StartedQuiz describes a freshly created attempt. Question is nil when the
// category filter matched nothing and the quiz completed on arrival.
type StartedQuiz struct {
	SessionID string        `json:"sessionId"`
	QuizType  string        `json:"quizType"`
	Total     int           `json:"total"`
	Question  *QuestionView `json:"question,omitempty"`
}

// AnswerFeedback reveals the outcome of a locked-in answer.
type AnswerFeedback struct {
	Selected      int    `json:"selected"`
	Correct       bool   `json:"correct"`
	CorrectAnswer int    `json:"correctAnswer"`
	Explanation   string `json:"explanation"`
}

// AdvanceOutcome is either the next question or the final result.
type AdvanceOutcome struct {
	Done     bool               `json:"done"`
	Next     *QuestionView      `json:"next,omitempty"`
	Result   *domain.QuizResult `json:"result,omitempty"`
	QuizType string             `json:"quizType,omitempty"`
}

// QuizService contains the quiz use cases: starting attempts, recording
// answers, advancing, and folding completed results into the statistics
// aggregator and the notification store.
type QuizService struct {
	sessions SessionRepository
	bank     BankRepository
	stats    *stats.Aggregator
	notices  *notify.Store
	now      func() time.Time
	newID    func() string
}

func NewQuizService(sessions SessionRepository, bank BankRepository, aggregator *stats.Aggregator, notices *notify.Store) *QuizService {
	return &QuizService{
		sessions: sessions,
		bank:     bank,
		stats:    aggregator,
		notices:  notices,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// WithClock is test-only for deterministic session timing.
func (s *QuizService) WithClock(now func() time.Time) *QuizService {
	s.now = now
	return s
}

// StartQuiz creates an attempt over the bank, filtered by category when one
// is given. A filter matching nothing yields an empty, already-completed
// attempt rather than an error.
func (s *QuizService) StartQuiz(ctx context.Context, category domain.Category) (StartedQuiz, error) {
	bank, err := s.bank.GetBank(ctx)
	if err != nil {
		return StartedQuiz{}, err
	}

	questions := bank.ForCategory(category)
	session := quiz.NewSessionWithClock(questions, s.now)
	attempt := &Attempt{Session: session, QuizType: QuizTypeLabel(category)}

	id := s.newID()
	s.sessions.Put(id, attempt)

	started := StartedQuiz{
		SessionID: id,
		QuizType:  attempt.QuizType,
		Total:     len(questions),
	}
	if q, err := session.CurrentQuestion(); err == nil {
		started.Question = questionView(session, q)
	}
	return started, nil
}

// CurrentQuestion returns the question the attempt is positioned on.
func (s *QuizService) CurrentQuestion(_ context.Context, sessionID string) (QuestionView, error) {
	attempt, ok := s.sessions.Get(sessionID)
	if !ok {
		return QuestionView{}, domain.ErrSessionNotFound
	}
	q, err := attempt.Session.CurrentQuestion()
	if err != nil {
		return QuestionView{}, err
	}
	return *questionView(attempt.Session, q), nil
}

// SelectAnswer locks in the answer for the current question and reveals
// whether it was correct. Re-selecting keeps the first answer and reports
// its outcome.
func (s *QuizService) SelectAnswer(_ context.Context, sessionID string, option int) (AnswerFeedback, error) {
	attempt, ok := s.sessions.Get(sessionID)
	if !ok {
		return AnswerFeedback{}, domain.ErrSessionNotFound
	}

	if err := attempt.Session.SelectAnswer(option); err != nil {
		return AnswerFeedback{}, err
	}

	q, err := attempt.Session.CurrentQuestion()
	if err != nil {
		return AnswerFeedback{}, err
	}
	selected, _ := attempt.Session.Selection()
	return AnswerFeedback{
		Selected:      selected,
		Correct:       selected == q.CorrectAnswer,
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   q.Explanation,
	}, nil
}

// Advance scores the locked-in answer and moves on. When the attempt
// completes, the result is recorded in the statistics aggregator, a
// completion notification is pushed, and the session is dropped.
func (s *QuizService) Advance(_ context.Context, sessionID string) (AdvanceOutcome, error) {
	attempt, ok := s.sessions.Get(sessionID)
	if !ok {
		return AdvanceOutcome{}, domain.ErrSessionNotFound
	}

	result, done, err := attempt.Session.Advance()
	if err != nil {
		return AdvanceOutcome{}, err
	}

	if !done {
		q, err := attempt.Session.CurrentQuestion()
		if err != nil {
			return AdvanceOutcome{}, err
		}
		return AdvanceOutcome{Next: questionView(attempt.Session, q)}, nil
	}

	s.stats.Record(result, attempt.QuizType)
	s.notices.Add(notify.Draft{
		Title:    "Quiz Completed",
		Message:  fmt.Sprintf("%s finished with a score of %d%%.", attempt.QuizType, result.Score),
		Type:     domain.NotificationSuccess,
		Priority: domain.PriorityLow,
	})
	s.sessions.Delete(sessionID)

	return AdvanceOutcome{Done: true, Result: &result, QuizType: attempt.QuizType}, nil
}

// Abandon discards an attempt without recording anything. Unknown IDs are
// a no-op.
func (s *QuizService) Abandon(_ context.Context, sessionID string) {
	s.sessions.Delete(sessionID)
}

// Stats exposes the aggregator for read-side consumers.
func (s *QuizService) Stats() *stats.Aggregator {
	return s.stats
}

func questionView(session *quiz.Session, q domain.Question) *QuestionView {
	index, total := session.Progress()
	return &QuestionView{
		Index:      index,
		Total:      total,
		ID:         q.ID,
		Text:       q.Text,
		Options:    q.Options,
		Category:   q.Category,
		Difficulty: q.Difficulty,
	}
}
