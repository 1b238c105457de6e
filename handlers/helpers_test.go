// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/raid-toto/achievements"
	"github.com/danielhkuo/raid-toto/catalog"
	"github.com/danielhkuo/raid-toto/models"
	"github.com/danielhkuo/raid-toto/notify"
	"github.com/danielhkuo/raid-toto/stats"
	"github.com/danielhkuo/raid-toto/store"
	"github.com/danielhkuo/raid-toto/testutil"
	"github.com/danielhkuo/raid-toto/timeline"
)

// recorder is a Notifier that keeps every message
type recorder struct {
	mu   sync.Mutex
	sent []string
}

func (r *recorder) Send(_ context.Context, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, text)
	return nil
}

func (r *recorder) messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.sent...)
}

type testEnv struct {
	repo     *store.SQLStore
	cat      *catalog.Catalog
	members  *MemberHandler
	toto     *TotoHandler
	awards   *AwardHandler
	stats    *StatsHandler
	timeline *TimelineHandler
	notes    *recorder
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	repo := testutil.NewTestStore(t)
	cat := catalog.Default()
	notes := &recorder{}
	announcer := notify.NewAnnouncer(notes, cat)
	ach := achievements.NewService(repo, cat)

	return &testEnv{
		repo:     repo,
		cat:      cat,
		members:  NewMemberHandler(repo, cat),
		toto:     NewTotoHandler(repo, cat, ach, announcer),
		awards:   NewAwardHandler(repo, cat, ach, announcer),
		stats:    NewStatsHandler(repo, stats.NewService(repo, cat)),
		timeline: NewTimelineHandler(timeline.NewService(repo, cat, time.UTC)),
		notes:    notes,
	}
}

// totoWith builds a TotoHandler over repo that shares env's notifier.
func (e *testEnv) totoWith(repo store.Repository) *TotoHandler {
	announcer := notify.NewAnnouncer(e.notes, e.cat)
	return NewTotoHandler(repo, e.cat, achievements.NewService(repo, e.cat), announcer)
}

// flakyBets fails the next ListBets call once armed.
type flakyBets struct {
	store.Repository
	armed bool
}

func (f *flakyBets) ListBets(ctx context.Context, q store.BetQuery) ([]models.Bet, error) {
	if f.armed {
		f.armed = false
		return nil, errors.New("connection reset")
	}
	return f.Repository.ListBets(ctx, q)
}

// serve runs one JSON request against h. id fills the {id} path value.
func serve(h http.HandlerFunc, method, path, id string, body interface{}) *httptest.ResponseRecorder {
	req := testutil.MakeRequest(method, path, body, nil)
	if id != "" {
		req.SetPathValue("id", id)
	}
	w := httptest.NewRecorder()
	h(w, req)
	return w
}
