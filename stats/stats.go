// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stats

import (
	"sort"
	"strconv"
	"time"

	"github.com/danielhkuo/raid-toto/awards"
	"github.com/danielhkuo/raid-toto/catalog"
	"github.com/danielhkuo/raid-toto/history"
	"github.com/danielhkuo/raid-toto/models"
	"github.com/danielhkuo/raid-toto/settle"
)

const (
	recentCommentLimit = 10
	recentBetLimit     = 5
)

// HitRate returns hits/total as an integer percentage rounded half up.
// Zero total gives zero.
func HitRate(hits, total int) int {
	if total <= 0 {
		return 0
	}
	return (hits*200 + total) / (2 * total)
}

type TypeBreakdown struct {
	Type  models.RoundType `json:"type"`
	Emoji string           `json:"emoji"`
	Name  string           `json:"name"`
	Total int              `json:"total"`
	Hits  int              `json:"hits"`
	Rate  int              `json:"rate"`
}

type ReceivedComment struct {
	SessionID    string    `json:"session_id"`
	Category     string    `json:"category"`
	CategoryName string    `json:"category_name"`
	VoterName    string    `json:"voter_name"`
	Text         string    `json:"text"`
	At           time.Time `json:"at"`
}

type RecentBet struct {
	RoundID   string           `json:"round_id"`
	Type      models.RoundType `json:"type"`
	TypeEmoji string           `json:"type_emoji"`
	TypeName  string           `json:"type_name"`
	Floor     *int             `json:"floor,omitempty"`
	WeekStart string           `json:"week_start"`
	Value     string           `json:"value"`
	Display   string           `json:"display"`
	Status    string           `json:"status"`
	Correct   *bool            `json:"correct"` // nil until the round is finished
}

type Dashboard struct {
	Member       models.Member     `json:"member"`
	TotalBets    int               `json:"total_bets"`
	FinishedBets int               `json:"finished_bets"`
	Hits         int               `json:"hits"`
	HitRate      int               `json:"hit_rate"`
	ByType       []TypeBreakdown   `json:"by_type"`
	Streaks      settle.Streaks    `json:"streaks"`
	Wins         map[string]int    `json:"wins"`
	TotalWins    int               `json:"total_wins"`
	TopAward     string            `json:"top_award,omitempty"`
	TopAwardWins int               `json:"top_award_wins"`
	Comments     []ReceivedComment `json:"comments"`
	RecentBets   []RecentBet       `json:"recent_bets"`
	Achievements []models.Grant    `json:"achievements"`
}

// Build assembles a member's dashboard from a snapshot. It has no side
// effects.
func Build(cat *catalog.Catalog, snap *history.Snapshot, member models.Member, grants []models.Grant) Dashboard {
	picks := snap.Ledger.History(member.ID)
	hits := 0
	for _, p := range picks {
		if p.Correct {
			hits++
		}
	}

	wins := snap.Wins.For(member.ID)
	byCategory := make(map[string]int, len(snap.Categories))
	for _, c := range snap.Categories {
		byCategory[c] = wins[c]
	}
	top, topWins, _ := awards.TopAward(wins, snap.Categories)

	if grants == nil {
		grants = []models.Grant{}
	}

	return Dashboard{
		Member:       member,
		TotalBets:    len(snap.Ledger.MemberBets(member.ID)),
		FinishedBets: len(picks),
		Hits:         hits,
		HitRate:      HitRate(hits, len(picks)),
		ByType:       breakdown(cat, picks),
		Streaks:      settle.PickStreaks(picks),
		Wins:         byCategory,
		TotalWins:    awards.Total(wins, snap.Categories),
		TopAward:     top,
		TopAwardWins: topWins,
		Comments:     comments(cat, snap, member.ID),
		RecentBets:   recentBets(cat, snap, member.ID),
		Achievements: grants,
	}
}

func breakdown(cat *catalog.Catalog, picks []settle.Pick) []TypeBreakdown {
	out := make([]TypeBreakdown, len(models.RoundTypes))
	index := make(map[models.RoundType]int, len(models.RoundTypes))
	for i, t := range models.RoundTypes {
		rt, _ := cat.RoundType(t)
		out[i] = TypeBreakdown{Type: t, Emoji: rt.Emoji, Name: rt.Name}
		index[t] = i
	}
	for _, p := range picks {
		i, ok := index[p.Round.Type]
		if !ok {
			continue
		}
		out[i].Total++
		if p.Correct {
			out[i].Hits++
		}
	}
	for i := range out {
		out[i].Rate = HitRate(out[i].Hits, out[i].Total)
	}
	return out
}

func comments(cat *catalog.Catalog, snap *history.Snapshot, memberID string) []ReceivedComment {
	out := []ReceivedComment{}
	for _, v := range snap.VotesReceived(memberID) {
		if v.Comment == "" {
			continue
		}
		c := ReceivedComment{
			SessionID: v.SessionID,
			Category:  v.Category,
			VoterName: v.VoterName,
			Text:      v.Comment,
			At:        v.CreatedAt,
		}
		if info, ok := cat.Category(v.Category); ok {
			c.CategoryName = info.Name
		}
		out = append(out, c)
		if len(out) == recentCommentLimit {
			break
		}
	}
	return out
}

func recentBets(cat *catalog.Catalog, snap *history.Snapshot, memberID string) []RecentBet {
	bets := snap.Ledger.MemberBets(memberID)
	type placed struct {
		bet   models.Bet
		round models.Round
	}
	var list []placed
	for _, b := range bets {
		r, ok := snap.Ledger.Round(b.RoundID)
		if !ok {
			continue
		}
		list = append(list, placed{bet: b, round: r})
	}
	// Newest bet first. A late bet on an older round still counts as recent.
	sort.SliceStable(list, func(i, j int) bool {
		if bi, bj := list[i].bet.CreatedAt, list[j].bet.CreatedAt; !bi.Equal(bj) {
			return bi.After(bj)
		}
		a, b := list[i].round, list[j].round
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
	if len(list) > recentBetLimit {
		list = list[:recentBetLimit]
	}

	out := make([]RecentBet, len(list))
	for i, p := range list {
		rt, _ := cat.RoundType(p.round.Type)
		rb := RecentBet{
			RoundID:   p.round.ID,
			Type:      p.round.Type,
			TypeEmoji: rt.Emoji,
			TypeName:  rt.Name,
			Floor:     p.round.Floor,
			WeekStart: p.round.WeekStart,
			Value:     p.bet.Value,
			Display:   DisplayValue(cat, snap, p.round.Type, p.bet.Value),
			Status:    p.round.Status,
		}
		if p.round.Status == models.RoundFinished {
			correct := snap.Ledger.Correct(p.bet.ID)
			rb.Correct = &correct
		}
		out[i] = rb
	}
	return out
}

// DisplayValue renders a stored bet value for people: weapon name, member
// name, or the count. Values that no longer resolve are shown as stored.
func DisplayValue(cat *catalog.Catalog, snap *history.Snapshot, t models.RoundType, raw string) string {
	v, err := models.DecodeBetValue(t, raw)
	if err != nil {
		return raw
	}
	switch v.Kind() {
	case models.KindWeapon:
		if w, ok := cat.Weapon(v.ID()); ok {
			return w.Name
		}
	case models.KindMember:
		if m, ok := snap.Member(v.ID()); ok {
			return m.Name
		}
	case models.KindCount:
		return strconv.Itoa(v.Count())
	}
	return raw
}
