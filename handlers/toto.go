// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/danielhkuo/raid-toto/achievements"
	"github.com/danielhkuo/raid-toto/board"
	"github.com/danielhkuo/raid-toto/catalog"
	"github.com/danielhkuo/raid-toto/middleware"
	"github.com/danielhkuo/raid-toto/models"
	"github.com/danielhkuo/raid-toto/notify"
	"github.com/danielhkuo/raid-toto/settle"
	"github.com/danielhkuo/raid-toto/store"
)

const (
	defaultRoundLimit = 20
	maxRoundLimit     = 100
)

type TotoHandler struct {
	repo         store.Repository
	cat          *catalog.Catalog
	achievements *achievements.Service
	announcer    *notify.Announcer
	now          func() time.Time
}

func NewTotoHandler(repo store.Repository, cat *catalog.Catalog, ach *achievements.Service, announcer *notify.Announcer) *TotoHandler {
	return &TotoHandler{repo: repo, cat: cat, achievements: ach, announcer: announcer, now: time.Now}
}

// BetView is a bet with its display value and, once settled, its verdict
type BetView struct {
	models.Bet
	Display string `json:"display"`
	Correct *bool  `json:"correct"`
}

// PlaceBetResponse is the placed bet plus the round's bets with it applied
type PlaceBetResponse struct {
	models.Bet
	Bets []BetView `json:"bets"`
}

type BoardResponse struct {
	Rounds          []models.Round `json:"rounds"`
	SelectedRoundID string         `json:"selected_round_id,omitempty"`
	Round           *models.Round  `json:"round"`
	Bets            []BetView      `json:"bets"`
	Winners         []string       `json:"winners"`
}

// CreateRound handles POST /toto/rounds
func (h *TotoHandler) CreateRound(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRoundRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	if !req.Type.Valid() {
		middleware.ErrorResponse(w, http.StatusBadRequest, "type must be one of weapon, wipe_count, first_death, last_death, total_deaths")
		return
	}
	if !validDate(req.WeekStart) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "week_start must be a YYYY-MM-DD date")
		return
	}
	if req.Floor != nil && *req.Floor <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "floor must be positive")
		return
	}

	round, err := h.repo.CreateRound(r.Context(), models.Round{
		Type:      req.Type,
		Floor:     req.Floor,
		WeekStart: req.WeekStart,
		Deadline:  req.Deadline,
	})
	if err != nil {
		storeError(w, err, "create round", "", "")
		return
	}

	slog.Info("round created", "round_id", round.ID, "type", round.Type)
	middleware.JSONResponse(w, http.StatusCreated, round)
}

// ListRounds handles GET /toto/rounds?status=open,closed&limit=N
func (h *TotoHandler) ListRounds(w http.ResponseWriter, r *http.Request) {
	statuses := queryList(r, "status")
	for _, s := range statuses {
		if s != models.RoundOpen && s != models.RoundClosed && s != models.RoundFinished {
			middleware.ErrorResponse(w, http.StatusBadRequest, "unknown status "+strconv.Quote(s))
			return
		}
	}
	limit, ok := queryLimit(r, defaultRoundLimit, maxRoundLimit)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
		return
	}

	rounds, err := h.repo.ListRounds(r.Context(), store.RoundQuery{Statuses: statuses, Newest: true, Limit: limit})
	if err != nil {
		storeError(w, err, "list rounds", "", "")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, rounds)
}

// GetCurrent handles GET /toto/current?round_id=ID
// Without round_id the most recent round is shown.
func (h *TotoHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rounds, err := h.repo.ListRounds(ctx, store.RoundQuery{Newest: true, Limit: defaultRoundLimit})
	if err != nil {
		storeError(w, err, "list rounds", "", "")
		return
	}

	state := board.State{}.ReceiveRounds(rounds)
	if id := r.URL.Query().Get("round_id"); id != "" {
		if !hasRound(state.Rounds, id) {
			// Older rounds fall outside the list; fetch directly.
			round, err := h.repo.GetRound(ctx, id)
			if err != nil {
				storeError(w, err, "get round", "Round not found", "")
				return
			}
			state = state.ReceiveRounds(append(state.Rounds, round))
		}
		state = state.SelectRound(id)
	}

	resp := BoardResponse{Rounds: state.Rounds, Bets: []BetView{}, Winners: []string{}}
	if resp.Rounds == nil {
		resp.Rounds = []models.Round{}
	}
	round, ok := state.Selected()
	if !ok {
		middleware.JSONResponse(w, http.StatusOK, resp)
		return
	}

	bets, err := h.repo.ListBets(ctx, store.BetQuery{RoundID: round.ID})
	if err != nil {
		storeError(w, err, "list bets", "", "")
		return
	}
	state = state.ReceiveBets(round.ID, bets)

	result := settle.Round(round, state.Bets)
	resp.SelectedRoundID = round.ID
	resp.Round = &round
	resp.Bets = h.betViews(ctx, round, state.Bets, result)
	if result.Winners != nil {
		resp.Winners = result.Winners
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}

func hasRound(rounds []models.Round, id string) bool {
	for _, r := range rounds {
		if r.ID == id {
			return true
		}
	}
	return false
}

func (h *TotoHandler) betViews(ctx context.Context, round models.Round, bets []models.Bet, result settle.Settlement) []BetView {
	views := make([]BetView, len(bets))
	for i, b := range bets {
		views[i] = BetView{Bet: b, Display: h.display(ctx, round.Type, b.Value)}
		if result.Evaluated {
			correct := result.Outcomes[i].Correct
			views[i].Correct = &correct
		}
	}
	return views
}

// display renders a stored value by name, falling back to the raw value
func (h *TotoHandler) display(ctx context.Context, t models.RoundType, raw string) string {
	v, err := models.DecodeBetValue(t, raw)
	if err != nil {
		return raw
	}
	switch v.Kind() {
	case models.KindWeapon:
		if wp, ok := h.cat.Weapon(v.ID()); ok {
			return wp.Name
		}
	case models.KindMember:
		if m, err := h.repo.GetMember(ctx, v.ID()); err == nil {
			return m.Name
		}
	case models.KindCount:
		return strconv.Itoa(v.Count())
	}
	return raw
}

// decodeValue parses a bet or result for the round type and checks that
// weapons and members exist. The returned message is user-facing.
func (h *TotoHandler) decodeValue(ctx context.Context, t models.RoundType, raw string) (models.BetValue, string, error) {
	v, err := models.DecodeBetValue(t, raw)
	if err != nil {
		if t.Numeric() {
			return v, "value must be a non-negative whole number", nil
		}
		return v, "value is required", nil
	}
	switch v.Kind() {
	case models.KindWeapon:
		if _, ok := h.cat.Weapon(v.ID()); !ok {
			return v, "unknown weapon", nil
		}
	case models.KindMember:
		if _, err := h.repo.GetMember(ctx, v.ID()); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return v, "unknown member", nil
			}
			return v, "", err
		}
	}
	return v, "", nil
}

// PlaceBet handles POST /toto/rounds/{id}/bets
func (h *TotoHandler) PlaceBet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	roundID := r.PathValue("id")

	var req models.PlaceBetRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.MemberID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "member_id is required")
		return
	}

	round, err := h.repo.GetRound(ctx, roundID)
	if err != nil {
		storeError(w, err, "get round", "Round not found", "")
		return
	}
	if round.Status != models.RoundOpen {
		middleware.ErrorResponse(w, http.StatusConflict, "No active round: betting is closed")
		return
	}
	if round.Deadline != nil && h.now().After(*round.Deadline) {
		middleware.ErrorResponse(w, http.StatusConflict, "No active round: the deadline has passed")
		return
	}

	value, msg, err := h.decodeValue(ctx, round.Type, req.Value)
	if err != nil {
		storeError(w, err, "check bet value", "", "")
		return
	}
	if msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	if _, err := h.repo.GetMember(ctx, req.MemberID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "unknown member")
			return
		}
		storeError(w, err, "get member", "", "")
		return
	}

	before, err := h.repo.ListBets(ctx, store.BetQuery{RoundID: round.ID})
	if err != nil {
		storeError(w, err, "list bets", "", "")
		return
	}

	bet, err := h.repo.UpsertBet(ctx, round.ID, req.MemberID, value.Encode())
	if err != nil {
		storeError(w, err, "place bet", "", "")
		return
	}

	state := board.State{}.
		ReceiveRounds([]models.Round{round}).
		ReceiveBets(round.ID, before).
		ReplaceBet(bet)

	slog.Info("bet placed", "round_id", round.ID, "member_id", req.MemberID)
	middleware.JSONResponse(w, http.StatusOK, PlaceBetResponse{
		Bet:  bet,
		Bets: h.betViews(ctx, round, state.Bets, settle.Round(round, state.Bets)),
	})
}

// CloseRound handles POST /toto/rounds/{id}/close
func (h *TotoHandler) CloseRound(w http.ResponseWriter, r *http.Request) {
	round, err := h.repo.AdvanceRound(r.Context(), r.PathValue("id"), models.RoundClosed, nil)
	if err != nil {
		storeError(w, err, "close round", "Round not found", "Round is already closed")
		return
	}

	slog.Info("round closed", "round_id", round.ID)
	middleware.JSONResponse(w, http.StatusOK, round)
}

// FinishRound handles POST /toto/rounds/{id}/finish
// Records the result, settles every bet and grants achievements to bettors.
func (h *TotoHandler) FinishRound(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	roundID := r.PathValue("id")

	var req models.FinishRoundRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	round, err := h.repo.GetRound(ctx, roundID)
	if err != nil {
		storeError(w, err, "get round", "Round not found", "")
		return
	}
	if round.Status == models.RoundFinished {
		middleware.ErrorResponse(w, http.StatusConflict, "Round is already finished")
		return
	}

	value, msg, err := h.decodeValue(ctx, round.Type, req.Result)
	if err != nil {
		storeError(w, err, "check result", "", "")
		return
	}
	if msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	result := value.Encode()
	round, err = h.repo.AdvanceRound(ctx, round.ID, models.RoundFinished, &result)
	if err != nil {
		storeError(w, err, "finish round", "Round not found", "Round is already finished")
		return
	}

	bets, err := h.repo.ListBets(ctx, store.BetQuery{RoundID: round.ID})
	if err != nil {
		storeError(w, err, "list bets", "", "")
		return
	}
	settlement := settle.Round(round, bets)

	slog.Info("round finished",
		"round_id", round.ID,
		"result", result,
		"bets", len(bets),
		"winners", len(settlement.Winners),
	)

	// The round is finished either way; EvaluateRound re-runs a failed pass.
	unlocked, err := h.achievements.AfterRoundFinished(ctx, round.ID)
	if err != nil {
		slog.Error("achievement evaluation failed", "round_id", round.ID, "error", err)
		unlocked = achievements.Unlocked{}
	}

	names := make(map[string]string, len(bets))
	var winnerNames []string
	for _, b := range bets {
		names[b.MemberID] = b.MemberName
	}
	for _, id := range settlement.Winners {
		winnerNames = append(winnerNames, names[id])
	}
	h.announcer.RoundFinished(ctx, round, h.display(ctx, round.Type, result), winnerNames)
	h.announcer.Unlocked(ctx, unlocked, names)

	winners := settlement.Winners
	if winners == nil {
		winners = []string{}
	}
	middleware.JSONResponse(w, http.StatusOK, models.FinishRoundResponse{
		Round:      round,
		Winners:    winners,
		Settlement: settlement.Outcomes,
		Unlocked:   unlocked,
	})
}

// EvaluateRound handles POST /toto/rounds/{id}/evaluate
// Re-runs achievement evaluation for a finished round's bettors. Grants
// already held are left alone, so repeating it is harmless.
func (h *TotoHandler) EvaluateRound(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	round, err := h.repo.GetRound(ctx, r.PathValue("id"))
	if err != nil {
		storeError(w, err, "get round", "Round not found", "")
		return
	}
	if round.Status != models.RoundFinished {
		middleware.ErrorResponse(w, http.StatusConflict, "Round is not finished")
		return
	}

	unlocked, err := h.achievements.AfterRoundFinished(ctx, round.ID)
	if err != nil {
		storeError(w, err, "evaluate round", "", "")
		return
	}
	slog.Info("round re-evaluated", "round_id", round.ID, "members", len(unlocked))

	if len(unlocked) > 0 {
		bets, err := h.repo.ListBets(ctx, store.BetQuery{RoundID: round.ID})
		if err != nil {
			slog.Warn("skipping unlock announcement", "error", err)
		} else {
			names := make(map[string]string, len(bets))
			for _, b := range bets {
				names[b.MemberID] = b.MemberName
			}
			h.announcer.Unlocked(ctx, unlocked, names)
		}
	}

	middleware.JSONResponse(w, http.StatusOK, models.EvaluateResponse{Unlocked: unlocked})
}
