// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the raid-toto API.

# Route Registration

NewRouter builds the services and returns an http.ServeMux with every
endpoint:

	mux := router.NewRouter(repo, cat, announcer, cfg)

# Endpoints

Health:

	GET /health

Members and game data:

	GET  /members            - List members by name
	POST /members            - Add member
	GET  /members/{id}/stats - Member dashboard
	GET  /catalog            - Weapons, round types, categories, achievements
	GET  /achievements       - Granted achievements, newest first

Toto:

	POST /toto/rounds               - Create round
	GET  /toto/rounds               - List rounds (?status=, ?limit=)
	GET  /toto/current              - Board for the newest or ?round_id= round
	POST /toto/rounds/{id}/bets     - Place or replace a bet
	POST /toto/rounds/{id}/close    - Stop betting
	POST /toto/rounds/{id}/finish   - Record result and settle
	POST /toto/rounds/{id}/evaluate - Re-run achievements for a finished round

Awards:

	POST /awards/sessions              - Create session
	GET  /awards/current               - Voting session with live results
	POST /awards/sessions/{id}/votes   - Cast or replace a vote
	POST /awards/sessions/{id}/finish    - End voting
	POST /awards/sessions/{id}/evaluate  - Re-run achievements for a finished session
	GET  /awards/hall-of-fame            - All-time winners

Timeline:

	GET    /timeline                - Latest posts with reactions
	POST   /timeline                - Add post
	DELETE /timeline/{id}           - Delete post
	POST   /timeline/{id}/reactions - Toggle reaction

# Handler Initialization

The router wires one achievements.Service into both the toto and award
handlers, and loads cfg.TimeZone for timeline dates. An unknown zone falls
back to UTC with a warning.
*/
package router
