// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package timeline

import (
	"sort"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/raid-toto/models"
)

type ReactionGroup struct {
	Emoji       string   `json:"emoji"`
	Count       int      `json:"count"`
	MemberIDs   []string `json:"member_ids"`
	MemberNames []string `json:"member_names"`
}

type Entry struct {
	models.Post
	Age       string          `json:"age"`
	Date      string          `json:"date"` // YYYY-MM-DD in the feed's location
	Reactions []ReactionGroup `json:"reactions"`
}

// Feed decorates posts with their age and date and groups their reactions
// by emoji. Groups follow emojiOrder; emoji outside it are appended in the
// order first seen.
func Feed(posts []models.Post, reactions []models.Reaction, emojiOrder []string, now time.Time, loc *time.Location) []Entry {
	if loc == nil {
		loc = time.UTC
	}
	rank := make(map[string]int, len(emojiOrder))
	for i, e := range emojiOrder {
		rank[e] = i
	}

	byPost := make(map[string][]models.Reaction)
	for _, r := range reactions {
		byPost[r.PostID] = append(byPost[r.PostID], r)
	}

	entries := make([]Entry, len(posts))
	for i, p := range posts {
		entries[i] = Entry{
			Post:      p,
			Age:       humanize.RelTime(p.CreatedAt, now, "ago", "from now"),
			Date:      p.CreatedAt.In(loc).Format(time.DateOnly),
			Reactions: group(byPost[p.ID], rank),
		}
	}
	return entries
}

func group(reactions []models.Reaction, rank map[string]int) []ReactionGroup {
	groups := []ReactionGroup{}
	index := make(map[string]int)
	for _, r := range reactions {
		i, ok := index[r.Emoji]
		if !ok {
			i = len(groups)
			index[r.Emoji] = i
			groups = append(groups, ReactionGroup{Emoji: r.Emoji, MemberIDs: []string{}, MemberNames: []string{}})
		}
		g := &groups[i]
		g.Count++
		g.MemberIDs = append(g.MemberIDs, r.MemberID)
		g.MemberNames = append(g.MemberNames, r.MemberName)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return less(groups[i].Emoji, groups[j].Emoji, rank)
	})
	return groups
}

func less(a, b string, rank map[string]int) bool {
	ra, okA := rank[a]
	rb, okB := rank[b]
	switch {
	case okA && okB:
		return ra < rb
	case okA:
		return true
	default:
		return false
	}
}
