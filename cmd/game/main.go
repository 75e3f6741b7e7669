// Command game runs a local single-terminal session: it spins up an
// in-process server, attaches one client to stdin/stdout, and plays
// until the user quits.
package main

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/staroids/internal/collision"
	"github.com/tomz197/staroids/internal/config"
	"github.com/tomz197/staroids/internal/loop"
	"github.com/tomz197/staroids/internal/loop/client"
	"github.com/tomz197/staroids/internal/loop/server"
	"github.com/tomz197/staroids/internal/stats"
)

const defaultConfigPath = "staroids.yaml"

func main() {
	cfg, err := config.Load(config.GetEnv("STAROIDS_CONFIG", defaultConfigPath))
	if err != nil {
		log.Fatal("load config", "err", err)
	}

	// The renderer owns the terminal, so the server logs nowhere
	// during local play.
	gs := server.New(server.Options{
		Session: loop.Options{
			Collision:    collision.Mode(cfg.Game.CollisionMode),
			StrictFaults: cfg.Game.StrictFaults,
		},
		Stats:  stats.NewRecorder(cfg.Stats.Path),
		Logger: log.New(io.Discard),
	})
	ctx, cancel := context.WithCancel(context.Background())
	go gs.Run(ctx)

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		cancel()
		log.Fatal("enable raw mode", "err", err)
	}

	runErr := play(gs)

	// Restore before any further output so error text lands on a sane
	// terminal.
	_ = term.Restore(fd, oldState)
	cancel()

	if runErr != nil {
		log.Fatal("game ended", "err", runErr)
	}
}

func play(gs *server.Server) error {
	c, err := client.New(gs, os.Stdin, os.Stdout, client.Options{
		Username: config.GetEnv("USER", "player"),
	})
	if err != nil {
		return err
	}
	return c.Run()
}
