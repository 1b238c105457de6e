// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateMemberRequest: name
  - CreateRoundRequest: type, floor, week_start, deadline
  - PlaceBetRequest: member_id, value
  - FinishRoundRequest: result
  - CreateSessionRequest: raid_date
  - CastVoteRequest: voter_id, category, nominee_id, comment
  - CreatePostRequest: member_id, message
  - ToggleReactionRequest: member_id, emoji

# Domain Types

  - Member: guild member identity
  - Round: one prediction event (toto round)
  - Bet: one member's guess for a round, unique per (round, member)
  - Session: one award voting event
  - Vote: one voter's pick per (session, category)
  - Post, Reaction: timeline entries
  - Grant: an achievement a member holds

# Bet Values

Bets and results share one text column. DecodeBetValue turns the text
into a BetValue tagged by round type:

	v, err := models.DecodeBetValue(models.RoundWipeCount, "5")
	v.Kind()  // KindCount
	v.Count() // 5

# Constants

Round status moves open → closed → finished. Session status moves
voting → finished. RoundStatusBefore and SessionStatusBefore list the
statuses a record may leave when advancing.
*/
package models
