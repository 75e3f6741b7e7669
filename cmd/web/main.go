// Command web serves the browser front end: a landing page with an
// embedded terminal, a websocket bridge that runs the regular game
// client against an in-process server, a JSON leaderboard, and the
// Prometheus scrape endpoint.
package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomz197/staroids/internal/collision"
	"github.com/tomz197/staroids/internal/config"
	"github.com/tomz197/staroids/internal/loop"
	"github.com/tomz197/staroids/internal/loop/server"
	"github.com/tomz197/staroids/internal/stats"
)

const defaultConfigPath = "staroids.yaml"

//go:embed index.html
var htmlPage string

func main() {
	cfg, err := config.Load(config.GetEnv("STAROIDS_CONFIG", defaultConfigPath))
	if err != nil {
		log.Fatal("load config", "err", err)
	}

	recorder := stats.NewRecorder(cfg.Stats.Path)
	gameServer := server.New(server.Options{
		Session: loop.Options{
			Collision:    collision.Mode(cfg.Game.CollisionMode),
			StrictFaults: cfg.Game.StrictFaults,
		},
		Stats: recorder,
	})
	ctx, cancelServer := context.WithCancel(context.Background())
	go gameServer.Run(ctx)

	page := strings.ReplaceAll(htmlPage, "{{.SSHHost}}", cfg.Web.SSHDisplayHost)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Web.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet},
	}))

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	})
	r.Get("/play", playHandler(gameServer, cfg.Web.AllowedOrigins))
	r.Get("/scores", scoresHandler(recorder))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	addr := net.JoinHostPort(cfg.Web.Host, cfg.Web.Port)
	httpServer := &http.Server{Addr: addr, Handler: r}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	log.Info("starting web server", "addr", addr, "ssh_display_host", cfg.Web.SSHDisplayHost)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("web server", "err", err)
		}
	}()

	<-done
	log.Info("shutting down")

	gameServer.Shutdown(15 * time.Second)
	cancelServer()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatal("web shutdown", "err", err)
	}
}

// scoreEntry is one leaderboard row as served to browsers.
type scoreEntry struct {
	Name     string `json:"name"`
	Score    int64  `json:"score"`
	Level    int    `json:"level"`
	PlayedAt string `json:"played_at"`
	Duration string `json:"duration"`
}

func scoresHandler(recorder *stats.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		rows, err := recorder.Top(10)
		if err != nil {
			log.Error("read scores", "err", err)
			http.Error(w, "scores unavailable", http.StatusInternalServerError)
			return
		}

		entries := make([]scoreEntry, 0, len(rows))
		for _, row := range rows {
			entries = append(entries, scoreEntry{
				Name:     row.Name,
				Score:    row.Score,
				Level:    row.Level,
				PlayedAt: row.PlayedAt,
				Duration: row.Duration,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(entries); err != nil {
			log.Error("encode scores", "err", err)
		}
	}
}
