// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported database types
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

// Open connects to the database, verifies the connection, and creates the
// schema. SQLite connections get foreign keys and a busy timeout.
func Open(dbType, url string) (*sql.DB, error) {
	dsn := url
	switch dbType {
	case TypeSQLite:
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	case TypePostgres:
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}

	conn, err := sql.Open(dbType, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", dbType, err)
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping %s database: %w", dbType, err)
	}
	if err := CreateSchema(conn); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return conn, nil
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// The DDL is shared by SQLite and PostgreSQL; timestamps are unix millis.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Members
CREATE TABLE IF NOT EXISTS members (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    created_at BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_members_name ON members(name);

-- Toto rounds
CREATE TABLE IF NOT EXISTS toto_rounds (
    id TEXT PRIMARY KEY,
    toto_type TEXT NOT NULL CHECK (toto_type IN ('weapon', 'wipe_count', 'first_death', 'last_death', 'total_deaths')),
    floor_number INTEGER,
    week_start TEXT NOT NULL,
    deadline BIGINT,
    status TEXT NOT NULL DEFAULT 'open' CHECK (status IN ('open', 'closed', 'finished')),
    actual_result TEXT,
    created_at BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_toto_rounds_status ON toto_rounds(status);
CREATE INDEX IF NOT EXISTS idx_toto_rounds_created_at ON toto_rounds(created_at);

-- Toto bets
CREATE TABLE IF NOT EXISTS toto_bets (
    id TEXT PRIMARY KEY,
    round_id TEXT NOT NULL REFERENCES toto_rounds(id) ON DELETE CASCADE,
    member_id TEXT NOT NULL REFERENCES members(id),
    bet_value TEXT NOT NULL,
    created_at BIGINT NOT NULL,
    updated_at BIGINT NOT NULL,
    UNIQUE (round_id, member_id)
);

CREATE INDEX IF NOT EXISTS idx_toto_bets_member_id ON toto_bets(member_id);

-- Award sessions
CREATE TABLE IF NOT EXISTS award_sessions (
    id TEXT PRIMARY KEY,
    raid_date TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'voting' CHECK (status IN ('voting', 'finished')),
    created_at BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_award_sessions_status ON award_sessions(status);

-- Award votes
CREATE TABLE IF NOT EXISTS award_votes (
    id TEXT PRIMARY KEY,
    session_id TEXT NOT NULL REFERENCES award_sessions(id) ON DELETE CASCADE,
    voter_id TEXT NOT NULL REFERENCES members(id),
    category TEXT NOT NULL,
    nominee_id TEXT NOT NULL REFERENCES members(id),
    comment TEXT NOT NULL DEFAULT '',
    created_at BIGINT NOT NULL,
    updated_at BIGINT NOT NULL,
    UNIQUE (session_id, voter_id, category)
);

CREATE INDEX IF NOT EXISTS idx_award_votes_nominee_id ON award_votes(nominee_id);
CREATE INDEX IF NOT EXISTS idx_award_votes_voter_id ON award_votes(voter_id);

-- Achievement grants
CREATE TABLE IF NOT EXISTS achievements (
    id TEXT PRIMARY KEY,
    member_id TEXT NOT NULL REFERENCES members(id),
    achievement_key TEXT NOT NULL,
    achieved_at BIGINT NOT NULL,
    UNIQUE (member_id, achievement_key)
);

-- Timeline
CREATE TABLE IF NOT EXISTS timeline (
    id TEXT PRIMARY KEY,
    member_id TEXT NOT NULL REFERENCES members(id),
    message TEXT NOT NULL,
    created_at BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_timeline_created_at ON timeline(created_at);

CREATE TABLE IF NOT EXISTS timeline_reactions (
    id TEXT PRIMARY KEY,
    timeline_id TEXT NOT NULL REFERENCES timeline(id) ON DELETE CASCADE,
    member_id TEXT NOT NULL REFERENCES members(id),
    emoji TEXT NOT NULL,
    created_at BIGINT NOT NULL,
    UNIQUE (timeline_id, member_id, emoji)
);

CREATE INDEX IF NOT EXISTS idx_timeline_reactions_timeline_id ON timeline_reactions(timeline_id);
`
