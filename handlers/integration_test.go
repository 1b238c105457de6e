// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"testing"

	"github.com/danielhkuo/raid-toto/models"
	"github.com/danielhkuo/raid-toto/stats"
	"github.com/danielhkuo/raid-toto/testutil"
	"github.com/danielhkuo/raid-toto/timeline"
)

// TestFullRaidWeekWorkflow tests one week end to end:
// 1. Add members
// 2. Open a toto round
// 3. Members place bets, one changes their mind
// 4. Close and finish the round
// 5. Vote in the award session and finish it
// 6. Check a member's dashboard
// 7. Post to the timeline and react
func TestFullRaidWeekWorkflow(t *testing.T) {
	env := newTestEnv(t)

	// Step 1: Add members
	names := []string{"Alice", "Bob", "Carol"}
	ids := make(map[string]string, len(names))
	for _, name := range names {
		w := serve(env.members.CreateMember, "POST", "/members", "", models.CreateMemberRequest{Name: name})
		if w.Code != http.StatusCreated {
			t.Fatalf("Step 1 - Create member %s failed: %d - %s", name, w.Code, w.Body.String())
		}
		var m models.Member
		testutil.AssertJSON(t, w, &m)
		ids[name] = m.ID
	}
	t.Logf("Step 1 - Added %d members", len(ids))

	// Step 2: Open a wipe count round
	floor := 4
	w := serve(env.toto.CreateRound, "POST", "/toto/rounds", "",
		models.CreateRoundRequest{Type: models.RoundWipeCount, Floor: &floor, WeekStart: "2025-04-01"})
	if w.Code != http.StatusCreated {
		t.Fatalf("Step 2 - Create round failed: %d - %s", w.Code, w.Body.String())
	}
	var round models.Round
	testutil.AssertJSON(t, w, &round)
	t.Logf("Step 2 - Opened round %s", round.ID)

	// Step 3: Bets. Carol first guesses 9, then 3.
	bets := []struct{ member, value string }{
		{"Alice", "7"},
		{"Bob", "10"},
		{"Carol", "9"},
		{"Carol", "3"},
	}
	for _, b := range bets {
		w := serve(env.toto.PlaceBet, "POST", "/toto/rounds/"+round.ID+"/bets", round.ID,
			models.PlaceBetRequest{MemberID: ids[b.member], Value: b.value})
		if w.Code != http.StatusOK {
			t.Fatalf("Step 3 - Bet by %s failed: %d - %s", b.member, w.Code, w.Body.String())
		}
	}

	w = serve(env.toto.GetCurrent, "GET", "/toto/current", "", nil)
	var board BoardResponse
	testutil.AssertJSON(t, w, &board)
	if len(board.Bets) != 3 {
		t.Fatalf("Step 3 - Expected 3 bets on the board, got %d", len(board.Bets))
	}
	t.Logf("Step 3 - %d bets on the board", len(board.Bets))

	// Step 4: Close, then finish with 8 wipes. Alice's 7 is closest.
	w = serve(env.toto.CloseRound, "POST", "/toto/rounds/"+round.ID+"/close", round.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Step 4 - Close failed: %d - %s", w.Code, w.Body.String())
	}

	// Betting after close is refused
	w = serve(env.toto.PlaceBet, "POST", "/toto/rounds/"+round.ID+"/bets", round.ID,
		models.PlaceBetRequest{MemberID: ids["Bob"], Value: "8"})
	if w.Code != http.StatusConflict {
		t.Errorf("Step 4 - Expected 409 for a late bet, got %d", w.Code)
	}

	w = serve(env.toto.FinishRound, "POST", "/toto/rounds/"+round.ID+"/finish", round.ID,
		models.FinishRoundRequest{Result: "8"})
	if w.Code != http.StatusOK {
		t.Fatalf("Step 4 - Finish failed: %d - %s", w.Code, w.Body.String())
	}
	var finish models.FinishRoundResponse
	testutil.AssertJSON(t, w, &finish)
	if len(finish.Winners) != 1 || finish.Winners[0] != ids["Alice"] {
		t.Errorf("Step 4 - Expected Alice to win, got %v", finish.Winners)
	}
	if len(finish.Unlocked) != 3 {
		t.Errorf("Step 4 - Expected every bettor to unlock something, got %v", finish.Unlocked)
	}
	t.Logf("Step 4 - Round finished, winners: %v", finish.Winners)

	// Step 5: Award session
	w = serve(env.awards.CreateSession, "POST", "/awards/sessions", "", models.CreateSessionRequest{RaidDate: "2025-04-05"})
	if w.Code != http.StatusCreated {
		t.Fatalf("Step 5 - Create session failed: %d - %s", w.Code, w.Body.String())
	}
	var session models.Session
	testutil.AssertJSON(t, w, &session)

	votes := []models.CastVoteRequest{
		{VoterID: ids["Alice"], Category: "wipe", NomineeID: ids["Bob"], Comment: "stood in fire"},
		{VoterID: ids["Carol"], Category: "wipe", NomineeID: ids["Bob"]},
		{VoterID: ids["Bob"], Category: "mvp", NomineeID: ids["Alice"], Comment: "called the toto"},
	}
	for _, v := range votes {
		w := serve(env.awards.CastVote, "POST", "/awards/sessions/"+session.ID+"/votes", session.ID, v)
		if w.Code != http.StatusOK {
			t.Fatalf("Step 5 - Vote failed: %d - %s", w.Code, w.Body.String())
		}
	}

	w = serve(env.awards.FinishSession, "POST", "/awards/sessions/"+session.ID+"/finish", session.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Step 5 - Finish session failed: %d - %s", w.Code, w.Body.String())
	}
	t.Logf("Step 5 - Session %s finished", session.ID)

	// Step 6: Alice's dashboard
	w = serve(env.stats.GetMemberStats, "GET", "/members/"+ids["Alice"]+"/stats", ids["Alice"], nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Step 6 - Stats failed: %d - %s", w.Code, w.Body.String())
	}
	var dash stats.Dashboard
	testutil.AssertJSON(t, w, &dash)
	if dash.Hits != 1 || dash.HitRate != 100 {
		t.Errorf("Step 6 - Expected 1 hit at 100%%, got %d at %d%%", dash.Hits, dash.HitRate)
	}
	if dash.TopAward != "mvp" {
		t.Errorf("Step 6 - Expected top award mvp, got %q", dash.TopAward)
	}
	keys := make([]string, len(dash.Achievements))
	for i, g := range dash.Achievements {
		keys[i] = g.Key
	}
	for _, want := range []string{"toto_first", "toto_hit_first", "vote_first"} {
		if !contains(keys, want) {
			t.Errorf("Step 6 - Expected %s among %v", want, keys)
		}
	}

	// Step 7: Timeline
	w = serve(env.timeline.CreatePost, "POST", "/timeline", "",
		models.CreatePostRequest{MemberID: ids["Bob"], Message: "next week I dodge"})
	if w.Code != http.StatusCreated {
		t.Fatalf("Step 7 - Post failed: %d - %s", w.Code, w.Body.String())
	}
	var post models.Post
	testutil.AssertJSON(t, w, &post)

	w = serve(env.timeline.ToggleReaction, "POST", "/timeline/"+post.ID+"/reactions", post.ID,
		models.ToggleReactionRequest{MemberID: ids["Carol"], Emoji: env.cat.ReactionEmojis[0]})
	if w.Code != http.StatusOK {
		t.Fatalf("Step 7 - Reaction failed: %d - %s", w.Code, w.Body.String())
	}

	w = serve(env.timeline.ListPosts, "GET", "/timeline", "", nil)
	var entries []timeline.Entry
	testutil.AssertJSON(t, w, &entries)
	if len(entries) != 1 || len(entries[0].Reactions) != 1 || entries[0].Reactions[0].MemberNames[0] != "Carol" {
		t.Errorf("Step 7 - Expected Carol's reaction on Bob's post, got %+v", entries)
	}
	t.Log("Step 7 - Timeline post and reaction recorded")

	// Round, session and unlock announcements were all sent
	if n := len(env.notes.messages()); n < 3 {
		t.Errorf("Expected at least 3 announcements, got %d", n)
	}
}
