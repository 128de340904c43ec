package sqlstore

import (
	"context"
	"fmt"
	"strings"
)

// schema is written once for both dialects; column types are filled in per driver.
// Money columns are exact: NUMERIC on PostgreSQL, TEXT on SQLite (whose NUMERIC affinity
// would round through float64).
var schema = []string{
	`CREATE TABLE IF NOT EXISTS wallets (
		id               {{uuid}} PRIMARY KEY,
		name             TEXT NOT NULL,
		type             TEXT NOT NULL,
		detail           TEXT NOT NULL DEFAULT '',
		balance          {{money}} NOT NULL,
		cash             {{money}} NOT NULL,
		investment_value {{money}} NOT NULL,
		gross_balance    {{money}} NOT NULL,
		margin           {{money}} NOT NULL,
		loan             {{money}} NOT NULL,
		not_mine         BOOLEAN NOT NULL DEFAULT FALSE,
		created_at       {{time}} NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id          {{uuid}} PRIMARY KEY,
		type        TEXT NOT NULL,
		amount      {{money}} NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		category    TEXT NOT NULL DEFAULT '',
		wallet_id   {{uuid}},
		date        {{time}} NOT NULL,
		created_at  {{time}} NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions (date)`,
	`CREATE TABLE IF NOT EXISTS stocks (
		id          {{uuid}} PRIMARY KEY,
		wallet_id   {{uuid}} NOT NULL,
		code        TEXT NOT NULL,
		volume      {{money}} NOT NULL,
		start_price {{money}} NOT NULL,
		start_date  {{time}} NOT NULL,
		sell_price  {{money}},
		sell_date   {{time}},
		is_holding  BOOLEAN NOT NULL DEFAULT TRUE,
		margin      {{money}} NOT NULL,
		created_at  {{time}} NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_stocks_wallet_id ON stocks (wallet_id)`,
	`CREATE TABLE IF NOT EXISTS assets (
		id         {{uuid}} PRIMARY KEY,
		type       TEXT NOT NULL,
		name       TEXT NOT NULL,
		amount     {{money}} NOT NULL,
		value      {{money}} NOT NULL,
		currency   TEXT NOT NULL,
		notes      TEXT NOT NULL DEFAULT '',
		date       {{time}} NOT NULL,
		created_at {{time}} NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS budget_plans (
		id         {{uuid}} PRIMARY KEY,
		name       TEXT NOT NULL,
		value      {{money}} NOT NULL,
		type       TEXT NOT NULL,
		icon       TEXT NOT NULL DEFAULT '',
		created_at {{time}} NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS notes (
		id         {{uuid}} PRIMARY KEY,
		title      TEXT NOT NULL,
		content    TEXT NOT NULL,
		tag        TEXT NOT NULL,
		remark     BOOLEAN NOT NULL DEFAULT FALSE,
		image      TEXT NOT NULL DEFAULT '',
		date       {{time}} NOT NULL,
		created_at {{time}} NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_notes_tag ON notes (tag)`,
	`CREATE INDEX IF NOT EXISTS idx_notes_date ON notes (date)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id          {{uuid}} PRIMARY KEY,
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		completed   BOOLEAN NOT NULL DEFAULT FALSE,
		created_at  {{time}} NOT NULL
	)`,
}

var dialects = map[string]*strings.Replacer{
	DriverPostgres: strings.NewReplacer("{{uuid}}", "UUID", "{{money}}", "NUMERIC", "{{time}}", "TIMESTAMPTZ"),
	DriverSQLite:   strings.NewReplacer("{{uuid}}", "TEXT", "{{money}}", "TEXT", "{{time}}", "TIMESTAMP"),
}

// Migrate creates every table and index that does not exist yet
func Migrate(ctx context.Context, db *DB) error {
	dialect, ok := dialects[db.DriverName()]
	if !ok {
		return fmt.Errorf("no schema for driver %q", db.DriverName())
	}

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, dialect.Replace(stmt)); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
