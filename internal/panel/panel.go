// Package panel exposes the HTTP control surface: bot lifecycle,
// status, recent logs and archived deliveries.
package panel

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"scriptsubmit/internal/archive"
	"scriptsubmit/internal/discord"
	"scriptsubmit/internal/logbuf"
)

// BotController is the slice of the bot the panel drives.
type BotController interface {
	Start() error
	Stop() error
	Status() discord.Status
}

// Server holds the panel's collaborators.
type Server struct {
	bot     BotController
	rec     *logbuf.Recorder
	arch    *archive.Store // optional
	started time.Time
}

func NewServer(bot BotController, rec *logbuf.Recorder, arch *archive.Store) *Server {
	return &Server{bot: bot, rec: rec, arch: arch, started: time.Now()}
}

// Router builds the panel's HTTP handler.
func (sv *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/", sv.page)
	r.Post("/start-bot", sv.startBot)
	r.Post("/stop-bot", sv.stopBot)
	r.Get("/api/status", sv.status)
	r.Get("/api/logs", sv.logs)
	r.Get("/api/deliveries", sv.deliveries)
	r.Get("/health", sv.health)
	return r
}

// actionEnvelope wraps start/stop responses.
type actionEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (sv *Server) startBot(w http.ResponseWriter, _ *http.Request) {
	sv.rec.Infof("panel: starting bot")
	if err := sv.bot.Start(); err != nil {
		sv.rec.Errorf("panel: failed to start bot: %v", err)
		writeJSON(w, http.StatusOK, actionEnvelope{Success: false, Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, actionEnvelope{Success: true, Message: "Bot started successfully"})
}

func (sv *Server) stopBot(w http.ResponseWriter, _ *http.Request) {
	sv.rec.Infof("panel: stopping bot")
	if err := sv.bot.Stop(); err != nil {
		sv.rec.Errorf("panel: failed to stop bot: %v", err)
		writeJSON(w, http.StatusOK, actionEnvelope{Success: false, Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, actionEnvelope{Success: true, Message: "Bot stopped successfully"})
}

func (sv *Server) status(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, sv.bot.Status())
}

func (sv *Server) logs(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, sv.rec.Entries())
}

func (sv *Server) deliveries(w http.ResponseWriter, r *http.Request) {
	if sv.arch == nil {
		writeJSON(w, http.StatusOK, []archive.Record{})
		return
	}
	recent, err := sv.arch.Recent(r.Context(), 20)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, actionEnvelope{Success: false, Message: err.Error()})
		return
	}
	if recent == nil {
		recent = []archive.Record{}
	}
	writeJSON(w, http.StatusOK, recent)
}

func (sv *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"botOnline": sv.bot.Status().Online,
		"timestamp": time.Now(),
		"uptime":    time.Since(sv.started).Seconds(),
	})
}

// page is a minimal status page; the JSON API is the real surface.
func (sv *Server) page(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Script Submission Bot</title></head>
<body>
<h1>Script Submission Bot</h1>
<p>Control the bot with <code>POST /start-bot</code> and <code>POST /stop-bot</code>.</p>
<ul>
<li><a href="/api/status">status</a></li>
<li><a href="/api/logs">logs</a></li>
<li><a href="/api/deliveries">recent deliveries</a></li>
<li><a href="/health">health</a></li>
</ul>
</body>
</html>`))
}
