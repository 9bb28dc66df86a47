// Package stats accumulates completed quiz results for the lifetime of the
// process and derives score summaries on demand. Nothing derived is ever
// stored; every view is recomputed from the underlying sequence.
package stats

import (
	"math"
	"sync"
	"time"

	"coastal-quiz-service/internal/domain"
)

// Entry tags a completed result with the quiz-type label it was taken under
// and the completion time.
type Entry struct {
	domain.QuizResult
	QuizType    string    `json:"quizType"`
	CompletedAt time.Time `json:"date"`
}

// LabelStats summarizes the entries recorded under one quiz-type label.
type LabelStats struct {
	Count        int `json:"count"`
	BestScore    int `json:"bestScore"`
	AverageScore int `json:"avgScore"`
}

// Aggregator holds the append-only sequence of quiz results.
type Aggregator struct {
	mu      sync.RWMutex
	entries []Entry
	now     func() time.Time
}

func NewAggregator() *Aggregator {
	return NewAggregatorWithClock(time.Now)
}

// NewAggregatorWithClock allows deterministic completion timestamps in tests.
func NewAggregatorWithClock(now func() time.Time) *Aggregator {
	return &Aggregator{now: now}
}

// Record appends a completed result under the given quiz-type label.
// This is the aggregator's only mutator.
func (a *Aggregator) Record(result domain.QuizResult, quizType string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, Entry{
		QuizResult:  result,
		QuizType:    quizType,
		CompletedAt: a.now(),
	})
}

// AverageScore is the rounded arithmetic mean of all recorded scores,
// 0 when nothing has been recorded.
func (a *Aggregator) AverageScore() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return average(a.entries)
}

// BestScore is the maximum recorded score, 0 when nothing has been recorded.
func (a *Aggregator) BestScore() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return best(a.entries)
}

// TotalQuizzes is the number of recorded results.
func (a *Aggregator) TotalQuizzes() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.entries)
}

// StatsForLabel summarizes entries whose quiz-type label matches exactly.
// All fields are zero when no entry matches.
func (a *Aggregator) StatsForLabel(quizType string) LabelStats {
	a.mu.RLock()
	defer a.mu.RUnlock()

	matched := make([]Entry, 0, len(a.entries))
	for _, e := range a.entries {
		if e.QuizType == quizType {
			matched = append(matched, e)
		}
	}
	return LabelStats{
		Count:        len(matched),
		BestScore:    best(matched),
		AverageScore: average(matched),
	}
}

// Recent returns up to n entries, newest first.
func (a *Aggregator) Recent(n int) []Entry {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if n > len(a.entries) {
		n = len(a.entries)
	}
	recent := make([]Entry, 0, n)
	for i := len(a.entries) - 1; i >= len(a.entries)-n; i-- {
		recent = append(recent, a.entries[i])
	}
	return recent
}

func average(entries []Entry) int {
	if len(entries) == 0 {
		return 0
	}
	sum := 0
	for _, e := range entries {
		sum += e.Score
	}
	return int(math.Round(float64(sum) / float64(len(entries))))
}

func best(entries []Entry) int {
	max := 0
	for _, e := range entries {
		if e.Score > max {
			max = e.Score
		}
	}
	return max
}
