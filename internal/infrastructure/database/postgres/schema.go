package postgres

import (
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		hashed_password TEXT NOT NULL,
		name TEXT NOT NULL,
		external_id TEXT NOT NULL,
		created_at BIGINT NOT NULL,
		updated_at BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id BIGSERIAL PRIMARY KEY,
		patient_name TEXT NOT NULL,
		patient_rx TEXT,
		status TEXT NOT NULL DEFAULT 'Open',
		order_type TEXT NOT NULL DEFAULT 'Stock',
		due_date TEXT NOT NULL,
		date_created BIGINT NOT NULL,
		created_by BIGINT REFERENCES users(id) ON DELETE SET NULL
	)`,
	`CREATE TABLE IF NOT EXISTS comments (
		id BIGSERIAL PRIMARY KEY,
		order_id BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		user_id BIGINT NOT NULL REFERENCES users(id),
		comment TEXT NOT NULL,
		created_at BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS order_history (
		id BIGSERIAL PRIMARY KEY,
		order_id BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		user_id BIGINT NOT NULL REFERENCES users(id),
		field_name TEXT NOT NULL,
		old_value TEXT,
		new_value TEXT NOT NULL,
		created_at BIGINT NOT NULL
	)`,
}

func InitSchema(db *sqlx.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			log.Error().Err(err).Str("component", "InitSchema").Msg("")
			return err
		}
	}

	return nil
}
