package memory

import (
	"context"
	"testing"
	"time"

	"coastal-quiz-service/internal/quiz"
)

func TestBankRepositoryCaches(t *testing.T) {
	loader := &countingLoader{
		BankLoader: NewStaticBankLoader(quiz.DefaultBank()),
	}
	repo := NewBankRepository(loader, time.Minute)

	bank, err := repo.GetBank(context.Background())
	if err != nil {
		t.Fatalf("get bank: %v", err)
	}
	if len(bank) != 15 {
		t.Fatalf("expected 15 questions, got %d", len(bank))
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	if _, err := repo.GetBank(context.Background()); err != nil {
		t.Fatalf("get bank 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
}

type countingLoader struct {
	BankLoader
	calls int
}

func (l *countingLoader) LoadBank(ctx context.Context) (quiz.Bank, error) {
	l.calls++
	return l.BankLoader.LoadBank(ctx)
}
