// Package server drives game sessions for connected clients. Every
// client owns an independent session; the server steps them all on one
// goroutine at a fixed rate and publishes each tick's snapshot through
// an atomic pointer, so render loops never block the simulation.
package server

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/staroids/internal/loop"
	"github.com/tomz197/staroids/internal/loop/config"
	"github.com/tomz197/staroids/internal/metrics"
	"github.com/tomz197/staroids/internal/object"
	"github.com/tomz197/staroids/internal/stats"
)

// GameServer is the surface clients drive. It decouples the client
// from the concrete server, so tests can substitute their own.
type GameServer interface {
	Register(name string) (*ClientHandle, error)
	Unregister(clientID int)
	SendInput(clientID int, controls object.Controls)
}

// Notice is an out-of-band message from server to client.
type Notice int

const (
	// NoticeShutdown tells the client the server is stopping; the
	// client shows a countdown and disconnects.
	NoticeShutdown Notice = iota
)

// ClientHandle is one client's connection. The session behind it is
// stepped only by the server goroutine; the client reads frames
// through Snapshot.
type ClientHandle struct {
	ID       int
	Name     string
	Notices  chan Notice
	snap     atomic.Pointer[loop.Snapshot]
	session  *loop.Session
	controls object.Controls

	// Counter baselines for metric deltas, server goroutine only.
	lastRefused [4]uint64
	lastFaults  uint64
}

// Snapshot returns the latest published frame, nil before the first
// tick after registration.
func (h *ClientHandle) Snapshot() *loop.Snapshot {
	return h.snap.Load()
}

// clientInput pairs an input frame with its sender.
type clientInput struct {
	clientID int
	controls object.Controls
}

// Options configure a server.
type Options struct {
	// Session applies to every client's session.
	Session loop.Options

	// Stats records finished games when set.
	Stats *stats.Recorder

	// Logger defaults to the package-level default logger.
	Logger *log.Logger

	// SeedFunc produces the seed for each new session. Defaults to
	// the wall clock; tests pin it.
	SeedFunc func() int64
}

// Server owns all client sessions. Run drives them; the exported
// methods are safe to call from client goroutines.
type Server struct {
	opts Options
	logg *log.Logger

	mu      sync.Mutex
	clients map[int]*ClientHandle
	nextID  int

	inputCh      chan clientInput
	registerCh   chan *ClientHandle
	unregisterCh chan int
}

var _ GameServer = (*Server)(nil)

// metricKinds are the entity kinds reported to the gauges.
var metricKinds = [4]object.Kind{
	object.KindAsteroid,
	object.KindUFO,
	object.KindProjectile,
	object.KindParticle,
}

// New creates a server. Sessions are created lazily per client.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.SeedFunc == nil {
		opts.SeedFunc = func() int64 { return time.Now().UnixNano() }
	}
	return &Server{
		opts:         opts,
		logg:         opts.Logger,
		clients:      make(map[int]*ClientHandle),
		nextID:       1,
		inputCh:      make(chan clientInput, 256),
		registerCh:   make(chan *ClientHandle, 16),
		unregisterCh: make(chan int, 16),
	}
}

// Register creates a session for a new client and queues it for the
// drive loop. The returned handle publishes snapshots once the next
// tick runs.
func (s *Server) Register(name string) (*ClientHandle, error) {
	if len(name) > config.MaxUsernameLength {
		name = name[:config.MaxUsernameLength]
	}

	sess, err := loop.NewSession(s.opts.Session, s.opts.SeedFunc())
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.mu.Unlock()

	handle := &ClientHandle{
		ID:      id,
		Name:    name,
		Notices: make(chan Notice, 4),
		session: sess,
	}
	s.registerCh <- handle
	return handle, nil
}

// Unregister removes a client; its session is dropped.
func (s *Server) Unregister(clientID int) {
	s.unregisterCh <- clientID
}

// SendInput delivers a client's latest control state. Inputs are
// coalesced per tick; when the queue is full the frame is dropped
// rather than blocking the caller.
func (s *Server) SendInput(clientID int, controls object.Controls) {
	select {
	case s.inputCh <- clientInput{clientID: clientID, controls: controls}:
	default:
	}
}

// Run steps every session at the fixed tick rate until the context is
// cancelled. Call from exactly one goroutine.
func (s *Server) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		frameStart := time.Now()

		s.processRegistrations()
		s.collectInputs()
		s.stepSessions()

		work := time.Since(frameStart)
		metrics.TickDuration.Observe(work.Seconds())
		if work < config.TickTime {
			time.Sleep(config.TickTime - work)
		}
	}
}

// Shutdown notifies every client and waits for them to disconnect, up
// to the timeout. Cancel the Run context after it returns.
func (s *Server) Shutdown(timeout time.Duration) {
	s.mu.Lock()
	for _, handle := range s.clients {
		select {
		case handle.Notices <- NoticeShutdown:
		default:
		}
	}
	s.mu.Unlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			return
		case <-ticker.C:
			s.mu.Lock()
			remaining := len(s.clients)
			s.mu.Unlock()
			if remaining == 0 {
				return
			}
		}
	}
}

// processRegistrations applies pending joins and leaves.
func (s *Server) processRegistrations() {
	for {
		select {
		case handle := <-s.registerCh:
			s.mu.Lock()
			s.clients[handle.ID] = handle
			s.mu.Unlock()
			metrics.ActiveSessions.Inc()
			s.logg.Info("client joined", "id", handle.ID, "name", handle.Name)
		case clientID := <-s.unregisterCh:
			s.mu.Lock()
			handle, ok := s.clients[clientID]
			if ok {
				delete(s.clients, clientID)
			}
			s.mu.Unlock()
			if ok {
				close(handle.Notices)
				metrics.ActiveSessions.Dec()
				s.logg.Info("client left", "id", clientID, "name", handle.Name)
			}
		default:
			return
		}
	}
}

// collectInputs drains the queue, keeping the newest frame per client.
func (s *Server) collectInputs() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		select {
		case in := <-s.inputCh:
			if handle, ok := s.clients[in.clientID]; ok {
				handle.controls = in.controls
			}
		default:
			return
		}
	}
}

// stepSessions advances every session one tick, publishes the frames,
// and feeds the metrics and the stats sink from what happened.
func (s *Server) stepSessions() {
	s.mu.Lock()
	defer s.mu.Unlock()

	var live [4]int
	for _, handle := range s.clients {
		snap := handle.session.Step(handle.controls, config.TickTime)
		handle.snap.Store(snap)
		s.consumeEvents(handle, snap)

		for i, kind := range metricKinds {
			live[i] += handle.session.Live(kind)

			cur := handle.session.Refused(kind)
			if delta := cur - handle.lastRefused[i]; delta > 0 {
				metrics.SpawnRefusals.WithLabelValues(kind.String()).Add(float64(delta))
			}
			handle.lastRefused[i] = cur
		}

		if faults := handle.session.Faults(); faults > handle.lastFaults {
			metrics.SessionFaults.Add(float64(faults - handle.lastFaults))
			handle.lastFaults = faults
		}
	}

	for i, kind := range metricKinds {
		metrics.Entities.WithLabelValues(kind.String()).Set(float64(live[i]))
	}
}

// consumeEvents reacts to the tick's events for one client.
func (s *Server) consumeEvents(handle *ClientHandle, snap *loop.Snapshot) {
	for _, e := range snap.Events {
		switch e.Type {
		case loop.EventGameOver:
			metrics.GamesFinished.Inc()
			s.recordGame(handle)
		case loop.EventSessionFault:
			s.logg.Warn("session fault, restarted", "id", handle.ID, "name", handle.Name)
		case loop.EventBossSpawned:
			s.logg.Debug("boss spawned", "id", handle.ID, "level", e.Level)
		}
	}
}

// recordGame appends the finished run to the stats file. Failures are
// logged and do not disturb the session.
func (s *Server) recordGame(handle *ClientHandle) {
	rec, ok := handle.session.Record()
	if !ok {
		return
	}
	rec.Name = handle.Name
	s.logg.Info("game over", "id", handle.ID, "name", handle.Name,
		"score", rec.Score, "level", rec.Level, "duration", rec.Duration)

	if s.opts.Stats == nil {
		return
	}
	if err := s.opts.Stats.Append(rec); err != nil {
		s.logg.Error("record game", "err", err)
	}
}
