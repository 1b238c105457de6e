// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: SQLite file path or PostgreSQL connection string (required)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - LogLevel, LogFormat: slog level and text/json handler
  - TelegramToken, TelegramChatID: optional announcement chat
  - CORSOrigin: allowed origin (default: *)
  - TimeZone: zone used to group timeline posts by date (default: Asia/Seoul)

# CLI Flags

	-p               Server port
	-d               Database URL
	-t               Database type
	-log-level       Log level
	-log-format      Log format
	-telegram-token  Telegram bot token
	-telegram-chat   Telegram chat id
	-cors-origin     Allowed CORS origin
	-tz              Time zone

# Environment Variables

Flags default to environment variables, parsed with caarlos0/env:

	PORT             → -p
	DATABASE_URL     → -d
	DATABASE_TYPE    → -t
	LOG_LEVEL        → -log-level
	LOG_FORMAT       → -log-format
	TELEGRAM_TOKEN   → -telegram-token
	TELEGRAM_CHAT_ID → -telegram-chat
	CORS_ORIGIN      → -cors-origin
	TIMEZONE         → -tz

CLI flags take precedence over environment variables. main loads a .env
file, if present, before parsing.

# Validation

ParseFlags returns an error if:

  - DATABASE_URL is missing
  - the database type, port, log level or log format is invalid
  - TELEGRAM_TOKEN is set without TELEGRAM_CHAT_ID
*/
package cliparse
