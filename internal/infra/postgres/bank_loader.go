package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"coastal-quiz-service/internal/domain"
	"coastal-quiz-service/internal/quiz"
)

// BankLoader loads question JSONB rows from Postgres.
type BankLoader struct {
	pool *pgxpool.Pool
}

func NewBankLoader(pool *pgxpool.Pool) *BankLoader {
	return &BankLoader{pool: pool}
}

func (l *BankLoader) LoadBank(ctx context.Context) (quiz.Bank, error) {
	rows, err := l.pool.Query(ctx, `SELECT data FROM quiz_questions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load question bank: %w", err)
	}
	defer rows.Close()

	var bank quiz.Bank
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		var q domain.Question
		if err := json.Unmarshal(raw, &q); err != nil {
			return nil, fmt.Errorf("unmarshal question: %w", err)
		}
		bank = append(bank, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load question bank: %w", err)
	}
	return bank, nil
}
