// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// RoundType selects what a prediction round asks members to guess.
type RoundType string

const (
	RoundWeapon      RoundType = "weapon"
	RoundWipeCount   RoundType = "wipe_count"
	RoundFirstDeath  RoundType = "first_death"
	RoundLastDeath   RoundType = "last_death"
	RoundTotalDeaths RoundType = "total_deaths"
)

// RoundTypes lists every round type in canonical order.
var RoundTypes = []RoundType{RoundWeapon, RoundWipeCount, RoundFirstDeath, RoundLastDeath, RoundTotalDeaths}

func (t RoundType) Valid() bool {
	for _, rt := range RoundTypes {
		if rt == t {
			return true
		}
	}
	return false
}

// Numeric reports whether the round is settled by closest guess
// rather than exact match.
func (t RoundType) Numeric() bool {
	return t == RoundWipeCount || t == RoundTotalDeaths
}

// Round status constants. Status only ever moves forward.
const (
	RoundOpen     = "open"
	RoundClosed   = "closed"
	RoundFinished = "finished"
)

// Session status constants
const (
	SessionVoting   = "voting"
	SessionFinished = "finished"
)

var roundStatusOrder = map[string]int{RoundOpen: 0, RoundClosed: 1, RoundFinished: 2}

var sessionStatusOrder = map[string]int{SessionVoting: 0, SessionFinished: 1}

// RoundStatusBefore returns the statuses a round may hold before moving to next.
func RoundStatusBefore(next string) []string {
	return before(roundStatusOrder, next)
}

// SessionStatusBefore returns the statuses a session may hold before moving to next.
func SessionStatusBefore(next string) []string {
	return before(sessionStatusOrder, next)
}

func before(order map[string]int, next string) []string {
	rank, ok := order[next]
	if !ok {
		return nil
	}
	var out []string
	for status, r := range order {
		if r < rank {
			out = append(out, status)
		}
	}
	return out
}

// Request types

type CreateMemberRequest struct {
	Name string `json:"name"`
}

type CreateRoundRequest struct {
	Type      RoundType  `json:"type"`
	Floor     *int       `json:"floor,omitempty"`
	WeekStart string     `json:"week_start"`
	Deadline  *time.Time `json:"deadline,omitempty"`
}

type PlaceBetRequest struct {
	MemberID string `json:"member_id"`
	Value    string `json:"value"`
}

type FinishRoundRequest struct {
	Result string `json:"result"`
}

type CreateSessionRequest struct {
	RaidDate string `json:"raid_date"`
}

type CastVoteRequest struct {
	VoterID   string `json:"voter_id"`
	Category  string `json:"category"`
	NomineeID string `json:"nominee_id"`
	Comment   string `json:"comment,omitempty"`
}

type CreatePostRequest struct {
	MemberID string `json:"member_id"`
	Message  string `json:"message"`
}

type ToggleReactionRequest struct {
	MemberID string `json:"member_id"`
	Emoji    string `json:"emoji"`
}

// Response types

type FinishRoundResponse struct {
	Round      Round               `json:"round"`
	Winners    []string            `json:"winners"`
	Settlement []BetOutcome        `json:"settlement"`
	Unlocked   map[string][]string `json:"unlocked"`
}

type FinishSessionResponse struct {
	Session  Session             `json:"session"`
	Unlocked map[string][]string `json:"unlocked"`
}

type EvaluateResponse struct {
	Unlocked map[string][]string `json:"unlocked"`
}

type ToggleReactionResponse struct {
	Added bool `json:"added"`
}

// Domain types

type Member struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Round struct {
	ID           string     `json:"id"`
	Type         RoundType  `json:"type"`
	Floor        *int       `json:"floor,omitempty"`
	WeekStart    string     `json:"week_start"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	Status       string     `json:"status"`
	ActualResult *string    `json:"actual_result,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Settled reports whether the round carries a result that bets can be judged against.
func (r Round) Settled() bool {
	return r.Status == RoundFinished && r.ActualResult != nil
}

type Bet struct {
	ID         string    `json:"id"`
	RoundID    string    `json:"round_id"`
	MemberID   string    `json:"member_id"`
	MemberName string    `json:"member_name"`
	Value      string    `json:"value"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// BetOutcome is one bet judged against its round's result.
type BetOutcome struct {
	BetID    string `json:"bet_id"`
	MemberID string `json:"member_id"`
	Value    string `json:"value"`
	Correct  bool   `json:"correct"`
}

type Session struct {
	ID        string    `json:"id"`
	RaidDate  string    `json:"raid_date"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type Vote struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"session_id"`
	VoterID     string    `json:"voter_id"`
	VoterName   string    `json:"voter_name"`
	Category    string    `json:"category"`
	NomineeID   string    `json:"nominee_id"`
	NomineeName string    `json:"nominee_name"`
	Comment     string    `json:"comment,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Post struct {
	ID         string    `json:"id"`
	MemberID   string    `json:"member_id"`
	MemberName string    `json:"member_name"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

type Reaction struct {
	ID         string    `json:"id"`
	PostID     string    `json:"post_id"`
	MemberID   string    `json:"member_id"`
	MemberName string    `json:"member_name"`
	Emoji      string    `json:"emoji"`
	CreatedAt  time.Time `json:"created_at"`
}

type Grant struct {
	ID         string    `json:"id"`
	MemberID   string    `json:"member_id"`
	MemberName string    `json:"member_name"`
	Key        string    `json:"achievement_key"`
	AchievedAt time.Time `json:"achieved_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
