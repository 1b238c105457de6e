// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates the schema.

# Opening

Open picks the driver from the database type (sqlite or postgres), pings,
and creates the schema:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

# Schema Creation

CreateSchema is safe to call multiple times - uses IF NOT EXISTS for all
tables and indexes. The same DDL runs on SQLite and PostgreSQL, so
timestamps are stored as BIGINT unix milliseconds.

# Tables

  - members: guild members
  - toto_rounds: prediction rounds and their results
  - toto_bets: one bet per (round, member)
  - award_sessions: award voting events
  - award_votes: one vote per (session, voter, category)
  - achievements: one grant per (member, achievement_key)
  - timeline, timeline_reactions: posts and (post, member, emoji) reactions

# Relationships

	toto_rounds 1──* toto_bets *──1 members
	award_sessions 1──* award_votes (voter, nominee → members)
	members 1──* achievements
	timeline 1──* timeline_reactions
*/
package db
