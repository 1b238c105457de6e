// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package history

import (
	"context"
	"fmt"
	"sort"

	"github.com/danielhkuo/raid-toto/awards"
	"github.com/danielhkuo/raid-toto/catalog"
	"github.com/danielhkuo/raid-toto/models"
	"github.com/danielhkuo/raid-toto/settle"
	"github.com/danielhkuo/raid-toto/store"
)

// Snapshot is every record the engines read, fetched once and settled.
type Snapshot struct {
	Members  []models.Member
	Rounds   []models.Round
	Bets     []models.Bet
	Sessions []models.Session
	Votes    []models.Vote

	Ledger   *settle.Ledger
	Tallies  []awards.Tally
	Finished map[string]bool // finished session ids
	Wins     awards.WinTable

	Categories []string
}

// Load reads the full history from repo and runs settlement and tallying
// over it. A store failure aborts the load.
func Load(ctx context.Context, repo store.Repository, cat *catalog.Catalog) (*Snapshot, error) {
	members, err := repo.ListMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load members: %w", err)
	}
	rounds, err := repo.ListRounds(ctx, store.RoundQuery{})
	if err != nil {
		return nil, fmt.Errorf("load rounds: %w", err)
	}
	bets, err := repo.ListBets(ctx, store.BetQuery{})
	if err != nil {
		return nil, fmt.Errorf("load bets: %w", err)
	}
	sessions, err := repo.ListSessions(ctx, store.SessionQuery{})
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}
	votes, err := repo.ListVotes(ctx, store.VoteQuery{})
	if err != nil {
		return nil, fmt.Errorf("load votes: %w", err)
	}
	return Build(cat, members, rounds, bets, sessions, votes), nil
}

// Build derives a Snapshot from records already in memory.
func Build(cat *catalog.Catalog, members []models.Member, rounds []models.Round, bets []models.Bet,
	sessions []models.Session, votes []models.Vote) *Snapshot {
	categories := cat.CategoryIDs()

	finished := make(map[string]bool, len(sessions))
	for _, s := range sessions {
		if s.Status == models.SessionFinished {
			finished[s.ID] = true
		}
	}

	tallies := awards.TallyVotes(votes, categories)
	return &Snapshot{
		Members:    members,
		Rounds:     rounds,
		Bets:       bets,
		Sessions:   sessions,
		Votes:      votes,
		Ledger:     settle.All(rounds, bets),
		Tallies:    tallies,
		Finished:   finished,
		Wins:       awards.Wins(tallies, finished),
		Categories: categories,
	}
}

// Member looks up a member by id.
func (s *Snapshot) Member(id string) (models.Member, bool) {
	for _, m := range s.Members {
		if m.ID == id {
			return m, true
		}
	}
	return models.Member{}, false
}

// VoteSessions counts the distinct sessions a member has voted in.
func (s *Snapshot) VoteSessions(memberID string) int {
	seen := make(map[string]bool)
	for _, v := range s.Votes {
		if v.VoterID == memberID {
			seen[v.SessionID] = true
		}
	}
	return len(seen)
}

// VotesReceived returns votes naming the member in finished sessions,
// newest first.
func (s *Snapshot) VotesReceived(memberID string) []models.Vote {
	var out []models.Vote
	for _, v := range s.Votes {
		if v.NomineeID == memberID && s.Finished[v.SessionID] {
			out = append(out, v)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
