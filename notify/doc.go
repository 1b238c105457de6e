// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package notify announces round results, award winners and unlocked
// achievements to the guild's Telegram chat. Without a bot token the
// server uses Nop and nothing is sent.
package notify
