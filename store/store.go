// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"

	"github.com/danielhkuo/raid-toto/models"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrConflict reports a write rejected by the record's current state,
	// such as moving a round's status backwards.
	ErrConflict = errors.New("conflicting state")
)

// RoundQuery filters rounds. Zero value lists every round oldest first.
type RoundQuery struct {
	Statuses []string
	Newest   bool // newest first
	Limit    int  // 0 means no limit
}

// SessionQuery filters award sessions the same way RoundQuery does.
type SessionQuery struct {
	Statuses []string
	Newest   bool
	Limit    int
}

// BetQuery filters bets. Empty fields match everything.
type BetQuery struct {
	RoundID  string
	MemberID string
}

// VoteQuery filters votes. Empty fields match everything.
type VoteQuery struct {
	SessionID string
	VoterID   string
	NomineeID string
}

// Repository is everything the service needs from persistent storage.
// Bets, votes, reactions and grants are written by natural-key upsert so
// concurrent identical writes converge on one row.
type Repository interface {
	ListMembers(ctx context.Context) ([]models.Member, error)
	GetMember(ctx context.Context, id string) (models.Member, error)
	CreateMember(ctx context.Context, name string) (models.Member, error)

	CreateRound(ctx context.Context, round models.Round) (models.Round, error)
	GetRound(ctx context.Context, id string) (models.Round, error)
	ListRounds(ctx context.Context, q RoundQuery) ([]models.Round, error)
	// AdvanceRound moves a round forward to status, recording result when
	// non-nil. Returns ErrConflict if the round is already at or past status.
	AdvanceRound(ctx context.Context, id, status string, result *string) (models.Round, error)

	ListBets(ctx context.Context, q BetQuery) ([]models.Bet, error)
	UpsertBet(ctx context.Context, roundID, memberID, value string) (models.Bet, error)

	CreateSession(ctx context.Context, session models.Session) (models.Session, error)
	GetSession(ctx context.Context, id string) (models.Session, error)
	ListSessions(ctx context.Context, q SessionQuery) ([]models.Session, error)
	AdvanceSession(ctx context.Context, id, status string) (models.Session, error)

	ListVotes(ctx context.Context, q VoteQuery) ([]models.Vote, error)
	UpsertVote(ctx context.Context, vote models.Vote) (models.Vote, error)

	// GrantAchievement records (member, key). created is true only for the
	// call that inserted the row.
	GrantAchievement(ctx context.Context, memberID, key string) (grant models.Grant, created bool, err error)
	ListGrants(ctx context.Context, memberID string) ([]models.Grant, error)

	ListPosts(ctx context.Context, limit int) ([]models.Post, error)
	GetPost(ctx context.Context, id string) (models.Post, error)
	CreatePost(ctx context.Context, memberID, message string) (models.Post, error)
	DeletePost(ctx context.Context, id string) error
	ListReactions(ctx context.Context, postIDs []string) ([]models.Reaction, error)
	// ToggleReaction removes the reaction if present, adds it otherwise.
	ToggleReaction(ctx context.Context, postID, memberID, emoji string) (added bool, err error)
}
