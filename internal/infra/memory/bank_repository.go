package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"coastal-quiz-service/internal/quiz"
)

// BankLoader fetches question bank content from a backing store.
type BankLoader interface {
	LoadBank(ctx context.Context) (quiz.Bank, error)
}

// BankRepository caches the loaded bank with a TTL to avoid repeated
// backing-store hits.
type BankRepository struct {
	loader BankLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu        sync.RWMutex
	cached    quiz.Bank
	expiresAt time.Time
}

func NewBankRepository(loader BankLoader, ttl time.Duration) *BankRepository {
	return &BankRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *BankRepository) GetBank(ctx context.Context) (quiz.Bank, error) {
	now := r.clock()

	r.mu.RLock()
	if r.cached != nil && r.expiresAt.After(now) {
		bank := r.cached
		r.mu.RUnlock()
		return bank, nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do("bank", func() (interface{}, error) {
		now := r.clock()
		r.mu.RLock()
		if r.cached != nil && r.expiresAt.After(now) {
			bank := r.cached
			r.mu.RUnlock()
			return bank, nil
		}
		r.mu.RUnlock()

		bank, err := r.loader.LoadBank(ctx)
		if err != nil {
			return quiz.Bank(nil), err
		}

		r.mu.Lock()
		r.cached = bank
		r.expiresAt = now.Add(r.ttlWithJitter())
		r.mu.Unlock()
		return bank, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(quiz.Bank), nil
}

// StaticBankLoader serves a fixed question set (the compiled-in default).
type StaticBankLoader struct {
	bank quiz.Bank
}

func NewStaticBankLoader(bank quiz.Bank) *StaticBankLoader {
	return &StaticBankLoader{bank: bank}
}

func (l *StaticBankLoader) LoadBank(_ context.Context) (quiz.Bank, error) {
	return l.bank, nil
}

func (r *BankRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
