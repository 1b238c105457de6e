// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists members, rounds, bets, award sessions, votes,
achievement grants and the timeline.

Repository is the interface the services depend on. SQLStore implements it
on database/sql for both SQLite and PostgreSQL:

	conn, _ := db.Open(db.TypeSQLite, "raid-toto.db")
	repo := store.NewSQLStore(conn, db.TypeSQLite)

# Writes

Bets, votes, grants and reactions are keyed by their natural unique
constraint and written with INSERT ... ON CONFLICT, so two identical
concurrent writes converge on one row. Round and session status updates
are guarded by the current status and never move backwards; a rejected
transition returns ErrConflict.

# Reads

Bet, vote, grant, post and reaction reads join the member table so every
record carries display names.
*/
package store
