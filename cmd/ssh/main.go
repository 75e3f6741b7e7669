// Command ssh serves the game over SSH. Every connection gets its own
// session on a shared server; the wish middleware bridges the SSH
// channel to the terminal client.
package main

import (
	"context"
	"errors"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/tomz197/staroids/internal/collision"
	"github.com/tomz197/staroids/internal/config"
	"github.com/tomz197/staroids/internal/draw"
	"github.com/tomz197/staroids/internal/loop"
	"github.com/tomz197/staroids/internal/loop/client"
	"github.com/tomz197/staroids/internal/loop/server"
	"github.com/tomz197/staroids/internal/stats"
)

const defaultConfigPath = "staroids.yaml"

// Shared by all SSH sessions.
var gameServer *server.Server

func main() {
	cfg, err := config.Load(config.GetEnv("STAROIDS_CONFIG", defaultConfigPath))
	if err != nil {
		log.Fatal("load config", "err", err)
	}
	log.Info("ssh config",
		"host", cfg.SSH.Host,
		"port", cfg.SSH.Port,
		"host_key", cfg.SSH.HostKeyPath,
		"stats", cfg.Stats.Path)

	gameServer = server.New(server.Options{
		Session: loop.Options{
			Collision:    collision.Mode(cfg.Game.CollisionMode),
			StrictFaults: cfg.Game.StrictFaults,
		},
		Stats: stats.NewRecorder(cfg.Stats.Path),
	})
	ctx, cancelServer := context.WithCancel(context.Background())
	go gameServer.Run(ctx)
	log.Info("game server started")

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(cfg.SSH.Host, cfg.SSH.Port)),
		wish.WithMiddleware(
			gameMiddleware,
			activeterm.Middleware(),
			logging.Middleware(),
		),
		// TCP_NODELAY keeps key-press latency down
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if cfg.SSH.HostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(cfg.SSH.HostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		log.Fatal("create ssh server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	log.Info("starting ssh server", "addr", net.JoinHostPort(cfg.SSH.Host, cfg.SSH.Port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Fatal("ssh server", "err", err)
		}
	}()

	<-done
	log.Info("shutting down")

	// Let connected players see the countdown before the drive loop
	// stops.
	gameServer.Shutdown(15 * time.Second)
	cancelServer()
	log.Info("game server stopped")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		log.Fatal("ssh shutdown", "err", err)
	}
}

// gameMiddleware attaches a game client to each SSH session.
func gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			wish.Fatalln(sess, "PTY required. Connect with: ssh -t")
			return
		}

		log.Info("new session",
			"user", sess.User(),
			"term", pty.Term,
			"width", pty.Window.Width,
			"height", pty.Window.Height)

		tracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				tracker.update(win.Width, win.Height)
			}
		}()

		c, err := client.New(gameServer, sess, sess, client.Options{
			TermSizeFunc: tracker.getSize,
			Username:     sess.User(),
		})
		if err != nil {
			log.Error("attach client", "user", sess.User(), "err", err)
			wish.Fatalln(sess, "failed to join, try again later")
			return
		}
		if err := c.Run(); err != nil {
			log.Error("session error", "user", sess.User(), "err", err)
		}

		log.Info("session ended", "user", sess.User())
		next(sess)
	}
}

// sizeTracker follows terminal size through SSH window-change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
