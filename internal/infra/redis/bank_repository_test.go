package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"coastal-quiz-service/internal/infra/memory"
	"coastal-quiz-service/internal/quiz"
)

func TestBankRepositoryCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := newClient(mr)

	loader := &countingLoader{
		BankLoader: memory.NewStaticBankLoader(quiz.DefaultBank()),
	}
	repo := NewBankRepository(client, loader, time.Minute)

	bank, err := repo.GetBank(context.Background())
	if err != nil {
		t.Fatalf("get bank: %v", err)
	}
	if len(bank) != 15 {
		t.Fatalf("expected 15 questions, got %d", len(bank))
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader called once, got %d", loader.calls)
	}
	if !mr.Exists("quiz:bank") {
		t.Fatalf("expected bank cached in redis")
	}

	// Second call should hit the redis cache, loader not incremented.
	again, err := repo.GetBank(context.Background())
	if err != nil {
		t.Fatalf("get bank 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.calls)
	}
	if len(again) != 15 || again[0].ID != bank[0].ID {
		t.Fatalf("cached bank differs: got %d questions", len(again))
	}
}

type countingLoader struct {
	memory.BankLoader
	calls int
}

func (l *countingLoader) LoadBank(ctx context.Context) (quiz.Bank, error) {
	l.calls++
	return l.BankLoader.LoadBank(ctx)
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}
