// Package client renders a session to a terminal and feeds keyboard
// input back to the server. It owns no game state beyond the camera and
// screen bookkeeping; everything it draws comes from snapshots.
package client

import (
	"fmt"
	"io"
	"time"

	"github.com/tomz197/staroids/internal/draw"
	"github.com/tomz197/staroids/internal/input"
	"github.com/tomz197/staroids/internal/loop"
	"github.com/tomz197/staroids/internal/loop/config"
	"github.com/tomz197/staroids/internal/loop/server"
	"github.com/tomz197/staroids/internal/object"
)

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.GameServer
	handle       *server.ClientHandle
	state        *viewState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates escape codes and UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	termSizeFunc draw.TermSizeFunc
}

// Options configures the client.
type Options struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
}

// New registers with the server and builds a client reading keys from r
// and writing frames to w.
func New(gs server.GameServer, r io.Reader, w io.Writer, opts Options) (*Client, error) {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}

	handle, err := gs.Register(opts.Username)
	if err != nil {
		return nil, fmt.Errorf("register client: %w", err)
	}

	// Clamp to the max render resolution and center the canvas in
	// whatever is left.
	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.ViewWorldWidth, config.ViewWorldHeight)
	canvas.SetOffset(offsetCol, offsetRow)

	return &Client{
		server:       gs,
		handle:       handle,
		state:        newViewState(),
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		inputStream:  input.StartStream(r),
		lastInput:    time.Now(),
		termSizeFunc: termSizeFunc,
	}, nil
}

// Run starts the client loop. Blocks until the player quits, the
// connection drops, or the server shuts down.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)

	lastTime := time.Now()

	for c.state.running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput()
		c.processNotices()
		c.updateScreen()

		snap := c.handle.Snapshot()
		c.updateCamera(snap)
		c.updateShutdown()

		if err := c.drawFrame(snap); err != nil {
			return err
		}

		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	c.server.Unregister(c.handle.ID)
	draw.ClearScreen(c.writer)
	return nil
}

// processInput reads the pending key bytes and forwards the mapped
// controls to the server. Controls are sent in every state; the session
// decides what they mean (fire starts a waiting game, restart works on
// the game-over screen).
func (c *Client) processInput() {
	f := input.ReadFrame(c.inputStream)

	if f.Any() {
		c.lastInput = time.Now()
		c.state.inactive = false
	} else {
		idle := time.Since(c.lastInput).Seconds()
		if idle > config.InactivityDisconnectUser {
			c.state.running = false
		} else if idle > config.InactivityWarnUser {
			c.state.inactive = true
		}
	}

	if f.Quit || c.inputStream.Closed() {
		c.state.running = false
		return
	}

	c.server.SendInput(c.handle.ID, object.Controls{
		Thrust:      f.Thrust,
		Reverse:     f.Reverse,
		TurnLeft:    f.TurnLeft,
		TurnRight:   f.TurnRight,
		StrafeLeft:  f.StrafeLeft,
		StrafeRight: f.StrafeRight,
		Fire:        f.Fire,
		Ability:     f.Ability,
		Pause:       f.Pause,
		Restart:     f.Restart,
	})
}

// processNotices drains out-of-band messages from the server.
func (c *Client) processNotices() {
	for {
		select {
		case n, ok := <-c.handle.Notices:
			if !ok {
				// Server dropped us
				c.state.running = false
				return
			}
			if n == server.NoticeShutdown {
				c.state.shutdown = true
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to the max render
// resolution. On actual size changes, clears the terminal to remove
// residual pixels outside the new canvas area.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution
// and computes the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = termWidth
	renderHeight = termHeight
	if renderWidth > config.MaxTermWidth {
		renderWidth = config.MaxTermWidth
	}
	if renderHeight > config.MaxTermHeight {
		renderHeight = config.MaxTermHeight
	}
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// updateCamera keeps the camera glued to the ship. A dead or absent
// ship leaves the camera where it was, so explosions stay in view
// through the respawn.
func (c *Client) updateCamera(snap *loop.Snapshot) {
	if snap == nil || !snap.Ship.Alive {
		return
	}
	c.state.camX = snap.Ship.X
	c.state.camY = snap.Ship.Y
}

// updateShutdown runs the disconnect countdown once the server has
// announced it is stopping.
func (c *Client) updateShutdown() {
	if !c.state.shutdown {
		return
	}
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.running = false
	}
}
