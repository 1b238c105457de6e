// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package achievements

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/raid-toto/catalog"
	"github.com/danielhkuo/raid-toto/history"
	"github.com/danielhkuo/raid-toto/store"
)

// Unlocked maps member id to the achievement keys granted for the first
// time by one evaluation pass.
type Unlocked map[string][]string

// Service grants achievements against the store.
type Service struct {
	repo store.Repository
	cat  *catalog.Catalog
}

func NewService(repo store.Repository, cat *catalog.Catalog) *Service {
	return &Service{repo: repo, cat: cat}
}

// Grant upserts every satisfied achievement for one member and returns the
// keys that were newly created. Already-held achievements are left alone.
func (s *Service) Grant(ctx context.Context, snap *history.Snapshot, memberID string) ([]string, error) {
	var unlocked []string
	for _, key := range Satisfied(s.cat, ActivityOf(snap, memberID)) {
		_, created, err := s.repo.GrantAchievement(ctx, memberID, key)
		if err != nil {
			return unlocked, fmt.Errorf("grant %s: %w", key, err)
		}
		if created {
			unlocked = append(unlocked, key)
		}
	}
	return unlocked, nil
}

// EvaluateMembers runs Grant for each member over one snapshot. A failing
// member is logged and skipped.
func (s *Service) EvaluateMembers(ctx context.Context, snap *history.Snapshot, memberIDs []string) Unlocked {
	out := make(Unlocked)
	for _, id := range memberIDs {
		keys, err := s.Grant(ctx, snap, id)
		if len(keys) > 0 {
			out[id] = keys
			slog.Info("achievements unlocked", "member_id", id, "keys", keys)
		}
		if err != nil {
			slog.Error("achievement evaluation failed", "member_id", id, "error", err)
		}
	}
	return out
}

// AfterRoundFinished re-evaluates every member with a bet on the round.
func (s *Service) AfterRoundFinished(ctx context.Context, roundID string) (Unlocked, error) {
	snap, err := history.Load(ctx, s.repo, s.cat)
	if err != nil {
		return nil, err
	}

	var members []string
	seen := make(map[string]bool)
	for _, b := range snap.Bets {
		if b.RoundID == roundID && !seen[b.MemberID] {
			seen[b.MemberID] = true
			members = append(members, b.MemberID)
		}
	}
	return s.EvaluateMembers(ctx, snap, members), nil
}

// AfterSessionFinished re-evaluates every member.
func (s *Service) AfterSessionFinished(ctx context.Context) (Unlocked, error) {
	snap, err := history.Load(ctx, s.repo, s.cat)
	if err != nil {
		return nil, err
	}

	members := make([]string, len(snap.Members))
	for i, m := range snap.Members {
		members[i] = m.ID
	}
	return s.EvaluateMembers(ctx, snap, members), nil
}
