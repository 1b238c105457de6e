// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the raid-toto API.

# Handler Types

Each handler is a struct holding a store.Repository and the services it
drives:

  - MemberHandler: Members and the game catalog
  - TotoHandler: Toto rounds, bets and settlement
  - AwardHandler: Award sessions, votes and the hall of fame
  - StatsHandler: Member dashboards and achievement grants
  - TimelineHandler: Posts and reactions

Handlers are created via constructor functions:

	totoHandler := handlers.NewTotoHandler(repo, cat, achievementService, announcer)

# Round Lifecycle

Rounds progress through three states: open → closed → finished. A round
may also be finished straight from open.

	POST /toto/rounds              → CreateRound
	POST /toto/rounds/{id}/bets    → PlaceBet (open and before deadline)
	POST /toto/rounds/{id}/close   → CloseRound
	POST /toto/rounds/{id}/finish    → FinishRound (settles bets, grants achievements)
	POST /toto/rounds/{id}/evaluate  → EvaluateRound (re-runs a failed grant pass)

# Award Sessions

Sessions are voting until finished. One vote per voter and category;
voting again replaces the nominee and comment.

	POST /awards/sessions              → CreateSession
	POST /awards/sessions/{id}/votes   → CastVote
	POST /awards/sessions/{id}/finish    → FinishSession (grants achievements)
	POST /awards/sessions/{id}/evaluate  → EvaluateSession (re-runs a failed grant pass)

# Errors

All errors are JSON:

	{"error": "Conflict", "message": "No active round: betting is closed"}

Validation failures are 400 and change nothing. Unknown rounds, sessions,
members and posts are 404. Acting on a round or session that is no longer
accepting input is 409. Store failures are logged and reported as 500.
*/
package handlers
