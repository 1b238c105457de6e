// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/raid-toto/achievements"
	"github.com/danielhkuo/raid-toto/awards"
	"github.com/danielhkuo/raid-toto/catalog"
	"github.com/danielhkuo/raid-toto/history"
	"github.com/danielhkuo/raid-toto/middleware"
	"github.com/danielhkuo/raid-toto/models"
	"github.com/danielhkuo/raid-toto/notify"
	"github.com/danielhkuo/raid-toto/store"
	"github.com/danielhkuo/raid-toto/timeline"
)

type AwardHandler struct {
	repo         store.Repository
	cat          *catalog.Catalog
	achievements *achievements.Service
	announcer    *notify.Announcer
}

func NewAwardHandler(repo store.Repository, cat *catalog.Catalog, ach *achievements.Service, announcer *notify.Announcer) *AwardHandler {
	return &AwardHandler{repo: repo, cat: cat, achievements: ach, announcer: announcer}
}

type CurrentSessionResponse struct {
	Session *models.Session         `json:"session"`
	Votes   []models.Vote           `json:"votes"`
	Results []awards.CategoryResult `json:"results"`
}

type HallOfFameResponse struct {
	Fame         []awards.FameBoard        `json:"fame"`
	Shame        []awards.FameBoard        `json:"shame"`
	Achievements map[string][]models.Grant `json:"achievements"` // member id → grants
}

// CreateSession handles POST /awards/sessions
func (h *AwardHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSessionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if !validDate(req.RaidDate) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "raid_date must be a YYYY-MM-DD date")
		return
	}

	session, err := h.repo.CreateSession(r.Context(), models.Session{RaidDate: req.RaidDate})
	if err != nil {
		storeError(w, err, "create session", "", "")
		return
	}

	slog.Info("award session created", "session_id", session.ID, "raid_date", session.RaidDate)
	middleware.JSONResponse(w, http.StatusCreated, session)
}

// GetCurrent handles GET /awards/current
// Returns the latest session still open for voting, with live results.
// When there is none the session is null.
func (h *AwardHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sessions, err := h.repo.ListSessions(ctx, store.SessionQuery{
		Statuses: []string{models.SessionVoting},
		Newest:   true,
		Limit:    1,
	})
	if err != nil {
		storeError(w, err, "list sessions", "", "")
		return
	}

	resp := CurrentSessionResponse{Votes: []models.Vote{}, Results: []awards.CategoryResult{}}
	if len(sessions) == 0 {
		middleware.JSONResponse(w, http.StatusOK, resp)
		return
	}
	session := sessions[0]

	votes, err := h.repo.ListVotes(ctx, store.VoteQuery{SessionID: session.ID})
	if err != nil {
		storeError(w, err, "list votes", "", "")
		return
	}

	resp.Session = &session
	if votes != nil {
		resp.Votes = votes
	}
	resp.Results = awards.SessionResults(session.ID, votes, h.cat.CategoryIDs())
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// CastVote handles POST /awards/sessions/{id}/votes
// A voter holds one vote per category; voting again replaces it.
func (h *AwardHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	if _, ok := h.cat.Category(req.Category); !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "unknown category")
		return
	}
	if req.VoterID == "" || req.NomineeID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "voter_id and nominee_id are required")
		return
	}
	comment, err := timeline.ValidateComment(req.Comment)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	session, err := h.repo.GetSession(ctx, r.PathValue("id"))
	if err != nil {
		storeError(w, err, "get session", "Session not found", "")
		return
	}
	if session.Status != models.SessionVoting {
		middleware.ErrorResponse(w, http.StatusConflict, "No active session: voting has ended")
		return
	}
	for _, id := range []string{req.VoterID, req.NomineeID} {
		if _, err := h.repo.GetMember(ctx, id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				middleware.ErrorResponse(w, http.StatusBadRequest, "unknown member")
				return
			}
			storeError(w, err, "get member", "", "")
			return
		}
	}

	vote, err := h.repo.UpsertVote(ctx, models.Vote{
		SessionID: session.ID,
		VoterID:   req.VoterID,
		Category:  req.Category,
		NomineeID: req.NomineeID,
		Comment:   comment,
	})
	if err != nil {
		storeError(w, err, "cast vote", "", "")
		return
	}

	slog.Info("vote cast",
		"session_id", session.ID,
		"voter_id", req.VoterID,
		"category", req.Category,
	)
	middleware.JSONResponse(w, http.StatusOK, vote)
}

// FinishSession handles POST /awards/sessions/{id}/finish
// Ends voting and re-evaluates achievements for every member.
func (h *AwardHandler) FinishSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	session, err := h.repo.AdvanceSession(ctx, r.PathValue("id"), models.SessionFinished)
	if err != nil {
		storeError(w, err, "finish session", "Session not found", "Session is already finished")
		return
	}

	votes, err := h.repo.ListVotes(ctx, store.VoteQuery{SessionID: session.ID})
	if err != nil {
		storeError(w, err, "list votes", "", "")
		return
	}
	results := awards.SessionResults(session.ID, votes, h.cat.CategoryIDs())

	slog.Info("award session finished", "session_id", session.ID, "votes", len(votes))

	unlocked, err := h.achievements.AfterSessionFinished(ctx)
	if err != nil {
		slog.Error("achievement evaluation failed", "session_id", session.ID, "error", err)
		unlocked = achievements.Unlocked{}
	}

	h.announcer.SessionFinished(ctx, session, results)
	h.announceUnlocked(ctx, unlocked)

	middleware.JSONResponse(w, http.StatusOK, models.FinishSessionResponse{
		Session:  session,
		Unlocked: unlocked,
	})
}

// EvaluateSession handles POST /awards/sessions/{id}/evaluate
// Re-runs the all-member evaluation a finished session triggers.
func (h *AwardHandler) EvaluateSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	session, err := h.repo.GetSession(ctx, r.PathValue("id"))
	if err != nil {
		storeError(w, err, "get session", "Session not found", "")
		return
	}
	if session.Status != models.SessionFinished {
		middleware.ErrorResponse(w, http.StatusConflict, "Session is not finished")
		return
	}

	unlocked, err := h.achievements.AfterSessionFinished(ctx)
	if err != nil {
		storeError(w, err, "evaluate session", "", "")
		return
	}
	slog.Info("session re-evaluated", "session_id", session.ID, "members", len(unlocked))

	h.announceUnlocked(ctx, unlocked)
	middleware.JSONResponse(w, http.StatusOK, models.EvaluateResponse{Unlocked: unlocked})
}

func (h *AwardHandler) announceUnlocked(ctx context.Context, unlocked achievements.Unlocked) {
	if len(unlocked) == 0 {
		return
	}
	members, err := h.repo.ListMembers(ctx)
	if err != nil {
		slog.Warn("skipping unlock announcement", "error", err)
		return
	}
	names := make(map[string]string, len(members))
	for _, m := range members {
		names[m.ID] = m.Name
	}
	h.announcer.Unlocked(ctx, unlocked, names)
}

// HallOfFame handles GET /awards/hall-of-fame
func (h *AwardHandler) HallOfFame(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	snap, err := history.Load(ctx, h.repo, h.cat)
	if err != nil {
		storeError(w, err, "load history", "", "")
		return
	}
	grants, err := h.repo.ListGrants(ctx, "")
	if err != nil {
		storeError(w, err, "list grants", "", "")
		return
	}

	resp := HallOfFameResponse{
		Fame:         []awards.FameBoard{},
		Shame:        []awards.FameBoard{},
		Achievements: make(map[string][]models.Grant),
	}
	for _, b := range awards.HallOfFame(snap.Tallies, snap.Finished, snap.Categories) {
		c, _ := h.cat.Category(b.Category)
		if c.Hall == catalog.HallShame {
			resp.Shame = append(resp.Shame, b)
		} else {
			resp.Fame = append(resp.Fame, b)
		}
	}
	for _, g := range grants {
		resp.Achievements[g.MemberID] = append(resp.Achievements[g.MemberID], g)
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}
