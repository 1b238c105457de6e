// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/raid-toto/awards"
	"github.com/danielhkuo/raid-toto/catalog"
	"github.com/danielhkuo/raid-toto/models"
)

// podiumSize is how many nominees a session announcement lists per category.
const podiumSize = 3

// Notifier delivers a text message to the guild chat.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// Nop discards every message. Used when no chat is configured.
type Nop struct{}

func (Nop) Send(context.Context, string) error { return nil }

// Announcer formats settlement events and hands them to a Notifier.
// Delivery is best effort: failures are logged, never returned.
type Announcer struct {
	n   Notifier
	cat *catalog.Catalog
}

func NewAnnouncer(n Notifier, cat *catalog.Catalog) *Announcer {
	if n == nil {
		n = Nop{}
	}
	return &Announcer{n: n, cat: cat}
}

func (a *Announcer) send(ctx context.Context, kind, text string) {
	if err := a.n.Send(ctx, text); err != nil {
		slog.Warn("announcement failed", "kind", kind, "error", err)
	}
}

// RoundFinished announces a finished round and its winners.
func (a *Announcer) RoundFinished(ctx context.Context, round models.Round, display string, winners []string) {
	a.send(ctx, "round", RoundMessage(a.cat, round, display, winners))
}

// SessionFinished announces the winners of every category.
func (a *Announcer) SessionFinished(ctx context.Context, session models.Session, results []awards.CategoryResult) {
	a.send(ctx, "session", SessionMessage(a.cat, session, results))
}

// Unlocked announces achievements granted for the first time. names maps
// member id to display name. Nothing is sent when unlocked is empty.
func (a *Announcer) Unlocked(ctx context.Context, unlocked map[string][]string, names map[string]string) {
	if len(unlocked) == 0 {
		return
	}
	a.send(ctx, "achievements", UnlockedMessage(a.cat, unlocked, names))
}

// RoundMessage renders a round result. display is the human form of the
// actual result.
func RoundMessage(cat *catalog.Catalog, round models.Round, display string, winners []string) string {
	var b strings.Builder
	title := string(round.Type)
	emoji := ""
	if rt, ok := cat.RoundType(round.Type); ok {
		title, emoji = rt.Name, rt.Emoji
	}
	fmt.Fprintf(&b, "%s %s", emoji, title)
	if round.Floor != nil {
		fmt.Fprintf(&b, " (%s floor)", humanize.Ordinal(*round.Floor))
	}
	fmt.Fprintf(&b, "\nResult: %s\n", display)
	if len(winners) == 0 {
		b.WriteString("No winners this week.")
	} else {
		fmt.Fprintf(&b, "Winners: %s", strings.Join(winners, ", "))
	}
	return strings.TrimSpace(b.String())
}

// SessionMessage renders the podium of each category.
func SessionMessage(cat *catalog.Catalog, session models.Session, results []awards.CategoryResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Awards for %s", session.RaidDate)
	for _, r := range results {
		name := r.Category
		emoji := ""
		if c, ok := cat.Category(r.Category); ok {
			name, emoji = c.Name, c.Emoji
		}
		fmt.Fprintf(&b, "\n\n%s %s", emoji, name)
		if len(r.Nominees) == 0 {
			b.WriteString("\n  no votes")
			continue
		}
		for i, n := range r.Nominees {
			if i == podiumSize {
				break
			}
			fmt.Fprintf(&b, "\n  %s %s (%d)", humanize.Ordinal(i+1), n.NomineeName, n.Count)
		}
	}
	return b.String()
}

// UnlockedMessage lists new achievements per member, in catalog order.
func UnlockedMessage(cat *catalog.Catalog, unlocked map[string][]string, names map[string]string) string {
	ids := make([]string, 0, len(unlocked))
	for id := range unlocked {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := ids[i], ids[j]
		if names[a] != names[b] {
			return names[a] < names[b]
		}
		return a < b
	})

	var b strings.Builder
	b.WriteString("Achievements unlocked")
	for _, id := range ids {
		name := names[id]
		if name == "" {
			name = id
		}
		for _, key := range unlocked[id] {
			a, ok := cat.Achievement(key)
			if !ok {
				fmt.Fprintf(&b, "\n%s: %s", name, key)
				continue
			}
			fmt.Fprintf(&b, "\n%s %s: %s", a.Emoji, name, a.Name)
		}
	}
	return b.String()
}
