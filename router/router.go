// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/raid-toto/achievements"
	"github.com/danielhkuo/raid-toto/catalog"
	"github.com/danielhkuo/raid-toto/cliparse"
	"github.com/danielhkuo/raid-toto/handlers"
	"github.com/danielhkuo/raid-toto/middleware"
	"github.com/danielhkuo/raid-toto/notify"
	"github.com/danielhkuo/raid-toto/stats"
	"github.com/danielhkuo/raid-toto/store"
	"github.com/danielhkuo/raid-toto/timeline"
)

func NewRouter(repo store.Repository, cat *catalog.Catalog, announcer *notify.Announcer, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		slog.Warn("unknown time zone, using UTC", "tz", cfg.TimeZone, "error", err)
		loc = time.UTC
	}

	// Initialize services and handlers
	achievementService := achievements.NewService(repo, cat)
	memberHandler := handlers.NewMemberHandler(repo, cat)
	totoHandler := handlers.NewTotoHandler(repo, cat, achievementService, announcer)
	awardHandler := handlers.NewAwardHandler(repo, cat, achievementService, announcer)
	statsHandler := handlers.NewStatsHandler(repo, stats.NewService(repo, cat))
	timelineHandler := handlers.NewTimelineHandler(timeline.NewService(repo, cat, loc))

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Members and static game data
	mux.HandleFunc("GET /members", middleware.WithLogging(memberHandler.ListMembers))
	mux.HandleFunc("POST /members", middleware.WithLogging(memberHandler.CreateMember))
	mux.HandleFunc("GET /members/{id}/stats", middleware.WithLogging(statsHandler.GetMemberStats))
	mux.HandleFunc("GET /catalog", middleware.WithLogging(memberHandler.GetCatalog))
	mux.HandleFunc("GET /achievements", middleware.WithLogging(statsHandler.ListAchievements))

	// Toto rounds
	mux.HandleFunc("POST /toto/rounds", middleware.WithLogging(totoHandler.CreateRound))
	mux.HandleFunc("GET /toto/rounds", middleware.WithLogging(totoHandler.ListRounds))
	mux.HandleFunc("GET /toto/current", middleware.WithLogging(totoHandler.GetCurrent))
	mux.HandleFunc("POST /toto/rounds/{id}/bets", middleware.WithLogging(totoHandler.PlaceBet))
	mux.HandleFunc("POST /toto/rounds/{id}/close", middleware.WithLogging(totoHandler.CloseRound))
	mux.HandleFunc("POST /toto/rounds/{id}/finish", middleware.WithLogging(totoHandler.FinishRound))
	mux.HandleFunc("POST /toto/rounds/{id}/evaluate", middleware.WithLogging(totoHandler.EvaluateRound))

	// Award voting
	mux.HandleFunc("POST /awards/sessions", middleware.WithLogging(awardHandler.CreateSession))
	mux.HandleFunc("GET /awards/current", middleware.WithLogging(awardHandler.GetCurrent))
	mux.HandleFunc("POST /awards/sessions/{id}/votes", middleware.WithLogging(awardHandler.CastVote))
	mux.HandleFunc("POST /awards/sessions/{id}/finish", middleware.WithLogging(awardHandler.FinishSession))
	mux.HandleFunc("POST /awards/sessions/{id}/evaluate", middleware.WithLogging(awardHandler.EvaluateSession))
	mux.HandleFunc("GET /awards/hall-of-fame", middleware.WithLogging(awardHandler.HallOfFame))

	// Timeline
	mux.HandleFunc("GET /timeline", middleware.WithLogging(timelineHandler.ListPosts))
	mux.HandleFunc("POST /timeline", middleware.WithLogging(timelineHandler.CreatePost))
	mux.HandleFunc("DELETE /timeline/{id}", middleware.WithLogging(timelineHandler.DeletePost))
	mux.HandleFunc("POST /timeline/{id}/reactions", middleware.WithLogging(timelineHandler.ToggleReaction))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("raid-toto API v1"))
	})

	return mux
}
