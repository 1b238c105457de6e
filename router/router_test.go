// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/raid-toto/catalog"
	"github.com/danielhkuo/raid-toto/notify"
	"github.com/danielhkuo/raid-toto/store"
	"github.com/danielhkuo/raid-toto/testutil"
)

func newTestRouter(t *testing.T) (*http.ServeMux, *store.SQLStore) {
	t.Helper()
	repo := testutil.NewTestStore(t)
	cat := catalog.Default()
	mux := NewRouter(repo, cat, notify.NewAnnouncer(notify.Nop{}, cat), testutil.GetTestConfig())
	return mux, repo
}

func TestHealthEndpoint(t *testing.T) {
	mux, _ := newTestRouter(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	mux, _ := newTestRouter(t)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	expected := "raid-toto API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestUnknownPath(t *testing.T) {
	mux, _ := newTestRouter(t)

	req := httptest.NewRequest("GET", "/polls", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown path, got %d", w.Code)
	}
}

func TestRouteExistence(t *testing.T) {
	mux, _ := newTestRouter(t)

	// Routes respond from their handler; 400 and 404 are valid handler results
	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/"},

		{"GET", "/members"},
		{"POST", "/members"},
		{"GET", "/members/test-id/stats"},
		{"GET", "/catalog"},
		{"GET", "/achievements"},

		{"POST", "/toto/rounds"},
		{"GET", "/toto/rounds"},
		{"GET", "/toto/current"},
		{"POST", "/toto/rounds/test-id/bets"},
		{"POST", "/toto/rounds/test-id/close"},
		{"POST", "/toto/rounds/test-id/finish"},
		{"POST", "/toto/rounds/test-id/evaluate"},

		{"POST", "/awards/sessions"},
		{"GET", "/awards/current"},
		{"POST", "/awards/sessions/test-id/votes"},
		{"POST", "/awards/sessions/test-id/finish"},
		{"POST", "/awards/sessions/test-id/evaluate"},
		{"GET", "/awards/hall-of-fame"},

		{"GET", "/timeline"},
		{"POST", "/timeline"},
		{"DELETE", "/timeline/test-id"},
		{"POST", "/timeline/test-id/reactions"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s returned 405, expected route handler to exist", tc.method, tc.path)
			}
			if w.Code == http.StatusInternalServerError {
				t.Errorf("Route %s %s returned 500: %s", tc.method, tc.path, w.Body.String())
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	mux, _ := newTestRouter(t)

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},               // Only GET is defined
		{"DELETE", "/members"},            // GET and POST are defined
		{"PUT", "/toto/rounds/id/bets"},   // Only POST is defined
		{"GET", "/timeline/id/reactions"}, // Only POST is defined
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405 for %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestPathParameterExtraction(t *testing.T) {
	mux, repo := newTestRouter(t)
	member := testutil.CreateTestMember(t, repo, "Alice")

	t.Run("member ID extraction", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/members/"+member.ID+"/stats", nil)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200 for a known member, got %d. Body: %s", w.Code, w.Body.String())
		}
	})

	t.Run("unknown member", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/members/nope/stats", nil)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404 for an unknown member, got %d", w.Code)
		}
	})
}
