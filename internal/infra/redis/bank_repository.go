package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"coastal-quiz-service/internal/quiz"
)

// BankLoader fetches question bank content from a backing store.
type BankLoader interface {
	LoadBank(ctx context.Context) (quiz.Bank, error)
}

const bankKey = "quiz:bank"

// BankRepository caches the serialized question bank in Redis and falls
// back to a loader on cache miss. The bank is stored as a single JSON
// value under quiz:bank with a jittered TTL.
type BankRepository struct {
	client *redis.Client
	loader BankLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewBankRepository(client *redis.Client, loader BankLoader, ttl time.Duration) *BankRepository {
	return &BankRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *BankRepository) GetBank(ctx context.Context) (quiz.Bank, error) {
	if bank, ok := r.cachedBank(ctx); ok {
		return bank, nil
	}

	result, err, _ := r.sf.Do(bankKey, func() (interface{}, error) {
		// Re-check in case another goroutine filled the cache.
		if bank, ok := r.cachedBank(ctx); ok {
			return bank, nil
		}

		bank, err := r.loader.LoadBank(ctx)
		if err != nil {
			return quiz.Bank(nil), err
		}

		if raw, err := json.Marshal(bank); err == nil {
			// best-effort: a failed cache write must not fail the read
			_ = r.client.Set(ctx, bankKey, raw, r.ttlWithJitter()).Err()
		}
		return bank, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(quiz.Bank), nil
}

func (r *BankRepository) cachedBank(ctx context.Context) (quiz.Bank, bool) {
	raw, err := r.client.Get(ctx, bankKey).Bytes()
	if err != nil || len(raw) == 0 {
		return nil, false
	}
	var bank quiz.Bank
	if err := json.Unmarshal(raw, &bank); err != nil {
		return nil, false
	}
	return bank, len(bank) > 0
}

func (r *BankRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
