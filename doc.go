// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the raid-toto API server.

raid-toto is a guild companion for weekly raids. Members bet on raid
outcomes in toto rounds, vote for post-raid awards, earn achievements,
and post short messages to a shared timeline.

# Starting the Server

The server reads environment variables (optionally from a .env file) or
CLI flags:

	DATABASE_URL=raid.db go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..."

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file path or PostgreSQL connection string

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - LOG_LEVEL, LOG_FORMAT: slog level and text/json output
  - TELEGRAM_TOKEN, TELEGRAM_CHAT_ID: announce results to a chat
  - CORS_ORIGIN: allowed browser origin (default: *)
  - TIMEZONE: zone for timeline dates (default: Asia/Seoul)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (members, toto, awards, stats, timeline)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - store: Repository interface and its SQL implementation
  - settle, awards, achievements, stats: pure engines over fetched records
  - board: toto board selection state
  - history: one-shot load of everything the engines read
  - catalog: embedded game data (weapons, categories, achievements)
  - notify: Telegram announcements
  - db: Connection and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
