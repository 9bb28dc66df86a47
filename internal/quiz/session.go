package quiz

import (
	"math"
	"sync"
	"time"

	"coastal-quiz-service/internal/domain"
)

// selection is the tagged "answer for the current question" option. The
// zero value means no answer has been recorded yet.
type selection struct {
	index  int
	chosen bool
}

// Session drives a single quiz attempt over a fixed question list. It moves
// through the questions in order, locks the first answer per question, and
// produces a domain.QuizResult when the last question is advanced past.
type Session struct {
	mu        sync.Mutex
	questions Bank
	index     int
	selected  selection
	correct   int
	startedAt time.Time
	now       func() time.Time

	completed bool
	result    domain.QuizResult
}

// NewSession starts an attempt over the given questions. An empty question
// list yields a session that is already completed with a zero result.
func NewSession(questions Bank) *Session {
	return NewSessionWithClock(questions, time.Now)
}

// NewSessionWithClock allows deterministic timestamps in tests.
func NewSessionWithClock(questions Bank, now func() time.Time) *Session {
	s := &Session{
		questions: questions,
		startedAt: now(),
		now:       now,
	}
	if len(questions) == 0 {
		s.completed = true
		s.result = domain.QuizResult{CategoryScores: map[domain.Category]int{}}
	}
	return s
}

// SelectAnswer records the answer for the current question. The first
// selection is authoritative: a second call while an answer is already
// recorded is a no-op, guarding against double submission.
func (s *Session) SelectAnswer(option int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.completed {
		return domain.ErrQuizCompleted
	}
	if s.selected.chosen {
		return nil
	}
	if option < 0 || option >= len(s.questions[s.index].Options) {
		return domain.ErrOptionOutOfRange
	}
	s.selected = selection{index: option, chosen: true}
	return nil
}

// Advance scores the recorded answer and moves to the next question. When
// the last question is advanced past it returns the final result with
// done=true; before that it returns done=false. Advancing without a
// recorded answer is an error.
func (s *Session) Advance() (domain.QuizResult, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.completed {
		return domain.QuizResult{}, false, domain.ErrQuizCompleted
	}
	if !s.selected.chosen {
		return domain.QuizResult{}, false, domain.ErrNoSelection
	}

	current := s.questions[s.index]
	if s.selected.index == current.CorrectAnswer {
		s.correct++
	}

	if s.index < len(s.questions)-1 {
		s.index++
		s.selected = selection{}
		return domain.QuizResult{}, false, nil
	}

	total := len(s.questions)
	score := int(math.Round(float64(s.correct) / float64(total) * 100))
	s.result = domain.QuizResult{
		Score:          score,
		TotalQuestions: total,
		CorrectAnswers: s.correct,
		TimeTaken:      int(s.now().Sub(s.startedAt).Seconds()),
		// Keyed by the last answered question's category only; mixed-category
		// attempts report just the category the attempt finished on.
		CategoryScores: map[domain.Category]int{current.Category: score},
	}
	s.completed = true
	return s.result, true, nil
}

// CurrentQuestion returns the question at the current position. It errors
// only after the terminal state has been reached.
func (s *Session) CurrentQuestion() (domain.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.completed {
		return domain.Question{}, domain.ErrQuizCompleted
	}
	return s.questions[s.index], nil
}

// Completed reports whether the session reached its terminal state.
func (s *Session) Completed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completed
}

// Result returns the final result once the session has completed.
func (s *Session) Result() (domain.QuizResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result, s.completed
}

// Progress reports the 0-based current position and the total question count.
func (s *Session) Progress() (index, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index, len(s.questions)
}

// Selection returns the recorded answer for the current question, if any.
func (s *Session) Selection() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected.index, s.selected.chosen
}
