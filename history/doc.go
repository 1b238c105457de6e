// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package history loads every member, round, bet, session and vote in one
// pass and derives the settled ledger, vote tallies and category wins the
// achievement and stats engines share.
package history
