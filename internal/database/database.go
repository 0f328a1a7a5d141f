package database

import (
	"database/sql"

	_ "modernc.org/sqlite" // SQLite driver
)

// New creates a new database connection pool.
func New(dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dataSourceName+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate runs the SQL statements to set up the database schema.
func Migrate(db *sql.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS servers (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL,
		phone TEXT,
		email TEXT,
		total_events INTEGER NOT NULL DEFAULT 0,
		total_earnings REAL NOT NULL DEFAULT 0,
		available INTEGER NOT NULL DEFAULT 1,
		price_per_event REAL NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS payments (
		id TEXT NOT NULL PRIMARY KEY,
		server_id TEXT NOT NULL REFERENCES servers(id) ON DELETE CASCADE,
		amount REAL NOT NULL,
		remaining REAL NOT NULL,
		method TEXT NOT NULL,
		note TEXT,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL,
		event_type TEXT NOT NULL,
		event_date DATETIME,
		location TEXT,
		caterer_id TEXT,
		notes TEXT,
		completed INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS event_servers (
		event_id TEXT NOT NULL REFERENCES events(id) ON DELETE CASCADE,
		server_id TEXT NOT NULL REFERENCES servers(id) ON DELETE CASCADE,
		amount_due REAL NOT NULL,
		amount_paid REAL NOT NULL DEFAULT 0,
		is_paid INTEGER NOT NULL DEFAULT 0,
		payment_date DATETIME,
		payment_method TEXT,
		notes TEXT,
		PRIMARY KEY (event_id, server_id)
	);

	CREATE TABLE IF NOT EXISTS caterers (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL,
		phone TEXT,
		specialty TEXT,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS users (
		id TEXT NOT NULL PRIMARY KEY,
		username TEXT UNIQUE,
		email TEXT UNIQUE,
		password_hash TEXT,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS activity (
		id TEXT NOT NULL PRIMARY KEY,
		type TEXT NOT NULL,
		level TEXT NOT NULL,
		message TEXT NOT NULL,
		server_id TEXT,
		created_at DATETIME NOT NULL
	);
	`
	_, err := db.Exec(sqlStmt)
	return err
}
