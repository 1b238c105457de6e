// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/raid-toto/cliparse"
	"github.com/danielhkuo/raid-toto/db"
	"github.com/danielhkuo/raid-toto/models"
	"github.com/danielhkuo/raid-toto/store"
)

// SetupTestDB creates a fresh SQLite database file with the full schema.
// The file lives in the test's temp dir and is closed on cleanup.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "raid-toto.db")
	conn, err := db.Open(db.TypeSQLite, path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return conn
}

// NewTestStore returns a SQLStore over a fresh test database.
func NewTestStore(t *testing.T) *store.SQLStore {
	t.Helper()
	return store.NewSQLStore(SetupTestDB(t), db.TypeSQLite)
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  ":memory:",
		DatabaseType: db.TypeSQLite,
		LogLevel:     "info",
		LogFormat:    "text",
		CORSOrigin:   "*",
	}
}

// CreateTestMember adds a member and returns it
func CreateTestMember(t *testing.T, repo store.Repository, name string) models.Member {
	t.Helper()

	m, err := repo.CreateMember(context.Background(), name)
	if err != nil {
		t.Fatalf("Failed to create test member: %v", err)
	}
	return m
}

// CreateTestRound creates a round of the given type and moves it to status.
// created orders rounds deterministically; pass the zero time for now.
func CreateTestRound(t *testing.T, repo store.Repository, typ models.RoundType, status string, created time.Time) models.Round {
	t.Helper()
	ctx := context.Background()

	r, err := repo.CreateRound(ctx, models.Round{Type: typ, WeekStart: "2025-04-01", CreatedAt: created})
	if err != nil {
		t.Fatalf("Failed to create test round: %v", err)
	}
	if status != models.RoundOpen {
		if r, err = repo.AdvanceRound(ctx, r.ID, status, nil); err != nil {
			t.Fatalf("Failed to advance test round: %v", err)
		}
	}
	return r
}

// PlaceTestBet places or replaces a bet
func PlaceTestBet(t *testing.T, repo store.Repository, roundID, memberID, value string) models.Bet {
	t.Helper()

	b, err := repo.UpsertBet(context.Background(), roundID, memberID, value)
	if err != nil {
		t.Fatalf("Failed to place test bet: %v", err)
	}
	return b
}

// FinishTestRound finishes a round with the given result
func FinishTestRound(t *testing.T, repo store.Repository, roundID, result string) models.Round {
	t.Helper()

	r, err := repo.AdvanceRound(context.Background(), roundID, models.RoundFinished, &result)
	if err != nil {
		t.Fatalf("Failed to finish test round: %v", err)
	}
	return r
}

// CreateTestSession creates a voting session
func CreateTestSession(t *testing.T, repo store.Repository, created time.Time) models.Session {
	t.Helper()

	s, err := repo.CreateSession(context.Background(), models.Session{RaidDate: "2025-04-05", CreatedAt: created})
	if err != nil {
		t.Fatalf("Failed to create test session: %v", err)
	}
	return s
}

// CastTestVote casts a vote. at orders votes for tie-breaks; zero means now.
func CastTestVote(t *testing.T, repo store.Repository, sessionID, voterID, category, nomineeID string, at time.Time) models.Vote {
	t.Helper()

	v, err := repo.UpsertVote(context.Background(), models.Vote{
		SessionID: sessionID,
		VoterID:   voterID,
		Category:  category,
		NomineeID: nomineeID,
		CreatedAt: at,
	})
	if err != nil {
		t.Fatalf("Failed to cast test vote: %v", err)
	}
	return v
}

// FinishTestSession finishes a voting session
func FinishTestSession(t *testing.T, repo store.Repository, sessionID string) models.Session {
	t.Helper()

	s, err := repo.AdvanceSession(context.Background(), sessionID, models.SessionFinished)
	if err != nil {
		t.Fatalf("Failed to finish test session: %v", err)
	}
	return s
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
