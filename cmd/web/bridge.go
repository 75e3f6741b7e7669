package main

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/tomz197/staroids/internal/loop/client"
	"github.com/tomz197/staroids/internal/loop/server"
)

// Input budget per connection, in bytes per second. An arrow key is
// three bytes, so this never throttles a human but stops floods.
const (
	inputRateLimit = rate.Limit(300)
	inputRateBurst = 600
)

// playHandler upgrades the request and runs the regular terminal
// client over the socket. The browser side renders the byte stream in
// an xterm.js terminal.
func playHandler(gs *server.Server, allowedOrigins []string) http.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  512,
		WriteBufferSize: 4096,
		CheckOrigin:     originChecker(allowedOrigins),
	}

	return func(w http.ResponseWriter, req *http.Request) {
		conn, err := upgrader.Upgrade(w, req, nil)
		if err != nil {
			log.Error("websocket upgrade", "err", err)
			return
		}
		defer conn.Close()

		name := req.URL.Query().Get("name")
		if name == "" {
			name = "web"
		}

		sess := newWSSession(conn)
		c, err := client.New(gs, sess, sess, client.Options{
			TermSizeFunc: sess.size,
			Username:     name,
		})
		if err != nil {
			log.Error("attach web client", "name", name, "err", err)
			return
		}

		log.Info("web session started", "name", name, "remote", req.RemoteAddr)
		if err := c.Run(); err != nil {
			log.Error("web session", "name", name, "err", err)
		}
		log.Info("web session ended", "name", name)
	}
}

// originChecker admits upgrades from the configured origins. A "*"
// entry admits everything.
func originChecker(allowed []string) func(*http.Request) bool {
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
	}
	return func(req *http.Request) bool {
		origin := req.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if strings.EqualFold(o, origin) {
				return true
			}
		}
		return false
	}
}

// wsSession adapts a websocket connection to the io.Reader and
// io.Writer pair the client expects. Binary messages carry key bytes,
// text messages carry resize commands.
type wsSession struct {
	conn    *websocket.Conn
	limit   *rate.Limiter
	pending []byte

	mu     sync.RWMutex
	width  int
	height int
}

type resizeMsg struct {
	Cols int `json:"cols"`
	Rows int `json:"rows"`
}

func newWSSession(conn *websocket.Conn) *wsSession {
	return &wsSession{
		conn:   conn,
		limit:  rate.NewLimiter(inputRateLimit, inputRateBurst),
		width:  80,
		height: 24,
	}
}

// Read blocks for the next batch of key bytes. Resize messages are
// absorbed here; input past the rate budget is dropped.
func (s *wsSession) Read(p []byte) (int, error) {
	for len(s.pending) == 0 {
		kind, data, err := s.conn.ReadMessage()
		if err != nil {
			return 0, err
		}
		switch kind {
		case websocket.BinaryMessage:
			if len(data) == 0 || !s.limit.AllowN(time.Now(), len(data)) {
				continue
			}
			s.pending = data
		case websocket.TextMessage:
			s.applyResize(data)
		}
	}

	n := copy(p, s.pending)
	s.pending = s.pending[n:]
	return n, nil
}

// applyResize parses a resize message and updates the reported size.
// Malformed or non-positive dimensions are ignored.
func (s *wsSession) applyResize(data []byte) {
	var rs resizeMsg
	if json.Unmarshal(data, &rs) != nil || rs.Cols <= 0 || rs.Rows <= 0 {
		return
	}
	s.mu.Lock()
	s.width, s.height = rs.Cols, rs.Rows
	s.mu.Unlock()
}

func (s *wsSession) Write(p []byte) (int, error) {
	if err := s.conn.WriteMessage(websocket.BinaryMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (s *wsSession) size() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}
