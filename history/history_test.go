// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package history_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/raid-toto/catalog"
	"github.com/danielhkuo/raid-toto/history"
	"github.com/danielhkuo/raid-toto/models"
	"github.com/danielhkuo/raid-toto/testutil"
)

var t0 = time.Date(2025, 4, 5, 21, 0, 0, 0, time.UTC)

func TestBuild_WinsOnlyFromFinishedSessions(t *testing.T) {
	members := []models.Member{{ID: "a", Name: "Alice"}, {ID: "b", Name: "Bob"}}
	sessions := []models.Session{
		{ID: "s1", Status: models.SessionFinished, CreatedAt: t0},
		{ID: "s2", Status: models.SessionVoting, CreatedAt: t0.AddDate(0, 0, 7)},
	}
	votes := []models.Vote{
		{SessionID: "s1", VoterID: "a", Category: "wipe", NomineeID: "b", CreatedAt: t0},
		{SessionID: "s2", VoterID: "a", Category: "wipe", NomineeID: "b", CreatedAt: t0.AddDate(0, 0, 7)},
		{SessionID: "s2", VoterID: "b", Category: "mvp", NomineeID: "a", CreatedAt: t0.AddDate(0, 0, 7)},
	}

	snap := history.Build(catalog.Default(), members, nil, nil, sessions, votes)

	assert.True(t, snap.Finished["s1"])
	assert.False(t, snap.Finished["s2"])
	assert.Equal(t, map[string]int{"wipe": 1}, snap.Wins.For("b"))
	assert.Empty(t, snap.Wins.For("a"))

	// Sessions voted in count unfinished ones too
	assert.Equal(t, 2, snap.VoteSessions("a"))
	assert.Equal(t, 1, snap.VoteSessions("b"))

	received := snap.VotesReceived("b")
	require.Len(t, received, 1)
	assert.Equal(t, "s1", received[0].SessionID)
}

func TestVotesReceived_NewestFirst(t *testing.T) {
	sessions := []models.Session{{ID: "s1", Status: models.SessionFinished}}
	votes := []models.Vote{
		{ID: "old", SessionID: "s1", VoterID: "a", Category: "wipe", NomineeID: "c", CreatedAt: t0},
		{ID: "new", SessionID: "s1", VoterID: "b", Category: "clown", NomineeID: "c", CreatedAt: t0.Add(time.Hour)},
	}

	snap := history.Build(catalog.Default(), nil, nil, nil, sessions, votes)

	received := snap.VotesReceived("c")
	require.Len(t, received, 2)
	assert.Equal(t, "new", received[0].ID)
	assert.Equal(t, "old", received[1].ID)
}

func TestMember(t *testing.T) {
	snap := history.Build(catalog.Default(), []models.Member{{ID: "a", Name: "Alice"}}, nil, nil, nil, nil)

	m, ok := snap.Member("a")
	assert.True(t, ok)
	assert.Equal(t, "Alice", m.Name)

	_, ok = snap.Member("zzz")
	assert.False(t, ok)
}

func TestLoad(t *testing.T) {
	repo := testutil.NewTestStore(t)
	cat := catalog.Default()
	alice := testutil.CreateTestMember(t, repo, "Alice")
	bob := testutil.CreateTestMember(t, repo, "Bob")

	round := testutil.CreateTestRound(t, repo, models.RoundWeapon, models.RoundOpen, t0)
	bet := testutil.PlaceTestBet(t, repo, round.ID, alice.ID, "sword")
	testutil.FinishTestRound(t, repo, round.ID, "sword")

	session := testutil.CreateTestSession(t, repo, t0)
	testutil.CastTestVote(t, repo, session.ID, alice.ID, "mvp", bob.ID, t0)
	testutil.FinishTestSession(t, repo, session.ID)

	snap, err := history.Load(t.Context(), repo, cat)
	require.NoError(t, err)

	assert.Len(t, snap.Members, 2)
	assert.True(t, snap.Ledger.Correct(bet.ID))
	assert.Equal(t, 1, snap.Wins.For(bob.ID)["mvp"])
	assert.Equal(t, cat.CategoryIDs(), snap.Categories)
}
