package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"coastal-quiz-service/internal/app"
	"coastal-quiz-service/internal/domain"
	"coastal-quiz-service/internal/infra/memory"
	"coastal-quiz-service/internal/notify"
	"coastal-quiz-service/internal/quiz"
	"coastal-quiz-service/internal/stats"
)

func newTestService() (*app.QuizService, *stats.Aggregator, *notify.Store) {
	aggregator := stats.NewAggregator()
	notices := notify.NewStore()
	bankRepo := memory.NewBankRepository(memory.NewStaticBankLoader(quiz.DefaultBank()), 5*time.Minute)
	service := app.NewQuizService(memory.NewSessionStore(), bankRepo, aggregator, notices)
	return service, aggregator, notices
}

func TestCategoryQuizFlow(t *testing.T) {
	ctx := context.Background()
	service, aggregator, notices := newTestService()

	started, err := service.StartQuiz(ctx, domain.CategoryStormSurge)
	if err != nil {
		t.Fatalf("start quiz: %v", err)
	}
	if started.Total != 3 {
		t.Fatalf("expected 3 questions, got %d", started.Total)
	}
	if started.QuizType != "storm-surge Quiz" {
		t.Fatalf("unexpected quiz type %q", started.QuizType)
	}
	if started.Question == nil || started.Question.Index != 0 {
		t.Fatalf("expected first question view, got %+v", started.Question)
	}

	answered := 0
	for {
		view, err := service.CurrentQuestion(ctx, started.SessionID)
		if err != nil {
			t.Fatalf("current question: %v", err)
		}
		// find the correct option from the bank; the view must not reveal it
		correct := correctOption(t, view.ID)
		feedback, err := service.SelectAnswer(ctx, started.SessionID, correct)
		if err != nil {
			t.Fatalf("select answer: %v", err)
		}
		if !feedback.Correct {
			t.Fatalf("expected correct feedback for question %d", view.ID)
		}
		if feedback.Explanation == "" {
			t.Fatalf("expected explanation after answering question %d", view.ID)
		}
		answered++

		outcome, err := service.Advance(ctx, started.SessionID)
		if err != nil {
			t.Fatalf("advance: %v", err)
		}
		if outcome.Done {
			if outcome.Result.Score != 100 {
				t.Fatalf("expected score 100, got %d", outcome.Result.Score)
			}
			break
		}
	}
	if answered != 3 {
		t.Fatalf("expected 3 answered questions, got %d", answered)
	}

	if aggregator.TotalQuizzes() != 1 {
		t.Fatalf("expected result recorded in stats")
	}
	if got := aggregator.StatsForLabel("storm-surge Quiz"); got.Count != 1 || got.BestScore != 100 {
		t.Fatalf("unexpected label stats %+v", got)
	}

	all := notices.All()
	if len(all) == 0 || all[0].Title != "Quiz Completed" {
		t.Fatalf("expected completion notification first, got %+v", all)
	}

	// session is dropped after completion
	if _, err := service.CurrentQuestion(ctx, started.SessionID); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected session gone after completion, got %v", err)
	}
}

func TestUnknownSession(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newTestService()

	if _, err := service.CurrentQuestion(ctx, "nope"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected session-not-found, got %v", err)
	}
	if _, err := service.SelectAnswer(ctx, "nope", 0); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected session-not-found, got %v", err)
	}
	if _, err := service.Advance(ctx, "nope"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected session-not-found, got %v", err)
	}
}

func TestStartQuizUnknownCategoryDegradesToEmptyQuiz(t *testing.T) {
	ctx := context.Background()
	service, aggregator, _ := newTestService()

	started, err := service.StartQuiz(ctx, domain.Category("volcano"))
	if err != nil {
		t.Fatalf("start quiz: %v", err)
	}
	if started.Total != 0 || started.Question != nil {
		t.Fatalf("expected empty quiz, got %+v", started)
	}
	if aggregator.TotalQuizzes() != 0 {
		t.Fatalf("empty quiz must not record a result")
	}
}

func TestAbandonDiscardsWithoutRecording(t *testing.T) {
	ctx := context.Background()
	service, aggregator, _ := newTestService()

	started, err := service.StartQuiz(ctx, domain.CategorySafety)
	if err != nil {
		t.Fatalf("start quiz: %v", err)
	}
	if _, err := service.SelectAnswer(ctx, started.SessionID, 1); err != nil {
		t.Fatalf("select: %v", err)
	}

	service.Abandon(ctx, started.SessionID)
	if _, err := service.CurrentQuestion(ctx, started.SessionID); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected session gone, got %v", err)
	}
	if aggregator.TotalQuizzes() != 0 {
		t.Fatalf("abandoned quiz must not record a result")
	}
	// abandoning again is a no-op
	service.Abandon(ctx, started.SessionID)
}

func correctOption(t *testing.T, questionID int) int {
	t.Helper()
	for _, q := range quiz.DefaultBank() {
		if q.ID == questionID {
			return q.CorrectAnswer
		}
	}
	t.Fatalf("question %d not in bank", questionID)
	return -1
}
