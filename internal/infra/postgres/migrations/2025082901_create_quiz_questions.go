package migrations

import (
	"context"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

var Migrations = migrate.NewMigrations()

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS quiz_questions (
    id   INTEGER PRIMARY KEY,
    data JSONB NOT NULL
)`)
			return err
		},
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.Exec(`DROP TABLE IF EXISTS quiz_questions`)
			return err
		},
	)
}
