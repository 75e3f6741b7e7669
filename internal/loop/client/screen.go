package client

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/tomz197/staroids/internal/draw"
	"github.com/tomz197/staroids/internal/loop"
	"github.com/tomz197/staroids/internal/loop/config"
	"github.com/tomz197/staroids/internal/object"
	"github.com/tomz197/staroids/internal/score"
)

// drawFrame draws the current frame from the latest snapshot. A nil
// snapshot (the first few frames after registration) draws the title
// layout with an empty field.
func (c *Client) drawFrame(snap *loop.Snapshot) error {
	state := loop.GameStateWaiting
	if snap != nil {
		state = snap.State
	}

	// On layout transitions, do a full terminal clear so UI text from
	// the previous layout doesn't persist on screen.
	stateChanged := state != c.state.prevState
	inactiveChanged := c.state.inactive != c.state.wasInactive
	shutdownChanged := c.state.shutdown != c.state.wasShutdown
	if stateChanged || inactiveChanged || shutdownChanged {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevState = state
		c.state.wasInactive = c.state.inactive
		c.state.wasShutdown = c.state.shutdown
	}

	c.canvas.Clear()

	if snap != nil {
		c.drawWorld(snap)
	}

	// Render canvas to terminal
	c.canvas.Render(c.chunkWriter)

	// Draw border when the terminal exceeds the max render resolution
	c.canvas.RenderBorder(c.chunkWriter)

	// Particles and craft tags are text glyphs, drawn after the canvas
	// render so they sit on top of it this frame; the dirty marks make
	// the canvas reclaim the cells on the next one.
	if snap != nil {
		c.drawParticles(snap)
		c.drawCraftTags(snap)
	}

	c.drawUI(snap, state)

	return c.chunkWriter.Flush()
}

// drawWorld plots every entity from the snapshot onto the canvas.
func (c *Client) drawWorld(snap *loop.Snapshot) {
	cam := camera{x: c.state.camX, y: c.state.camY}

	if snap.Ship.Alive {
		c.drawShip(cam, &snap.Ship)
	}
	for i := range snap.Asteroids {
		c.drawAsteroid(cam, &snap.Asteroids[i])
	}
	for i := range snap.UFOs {
		u := &snap.UFOs[i]
		positions := worldToView(u.X, u.Y, cam)
		for p := 0; p < positions.count; p++ {
			c.drawSaucer(positions.pts[p], u.Radius)
		}
	}
	if snap.HasBoss {
		positions := worldToView(snap.Boss.X, snap.Boss.Y, cam)
		for p := 0; p < positions.count; p++ {
			c.drawSaucer(positions.pts[p], snap.Boss.Radius)
			c.canvas.DrawCircle(positions.pts[p].X, positions.pts[p].Y, snap.Boss.Radius*0.25)
		}
	}
	for i := range snap.Shots {
		positions := worldToView(snap.Shots[i].X, snap.Shots[i].Y, cam)
		for p := 0; p < positions.count; p++ {
			c.canvas.SetFloat(positions.pts[p].X, positions.pts[p].Y)
		}
	}
}

// drawShip draws the player triangle, exhaust flame, and shield ring.
// The ship blinks while invulnerable after a respawn.
func (c *Client) drawShip(cam camera, ship *loop.ShipView) {
	if !renderBlink(ship.Invuln, config.PlayerBlinkFrequency) {
		return
	}

	positions := worldToView(ship.X, ship.Y, cam)
	for p := 0; p < positions.count; p++ {
		pos := positions.pts[p]

		// Nose in the direction of the heading, wings ~143° off it
		noseAngle := ship.Angle
		leftAngle := ship.Angle + 2.5
		rightAngle := ship.Angle - 2.5
		size := ship.Radius

		points := c.canvas.BorrowPoints(3)
		points[0] = draw.Point{X: pos.X + math.Cos(noseAngle)*size, Y: pos.Y + math.Sin(noseAngle)*size}
		points[1] = draw.Point{X: pos.X + math.Cos(leftAngle)*size*0.7, Y: pos.Y + math.Sin(leftAngle)*size*0.7}
		points[2] = draw.Point{X: pos.X + math.Cos(rightAngle)*size*0.7, Y: pos.Y + math.Sin(rightAngle)*size*0.7}
		c.canvas.DrawPolygon(points, true)

		if ship.Thrusting {
			c.drawFlame(pos, ship.Angle, size)
		}
		if ship.ShieldVisual > 0 {
			c.canvas.DrawCircle(pos.X, pos.Y, config.ShieldCollideRadius)
		}
	}
}

// drawFlame draws the exhaust triangle behind a thrusting ship,
// alternating between two lengths for a flicker.
func (c *Client) drawFlame(pos draw.Point, angle, size float64) {
	length := size * 1.5
	if time.Now().UnixMilli()/80%2 == 0 {
		length = size * 1.1
	}
	tailAngle := angle + math.Pi

	points := c.canvas.BorrowPoints(3)
	points[0] = draw.Point{X: pos.X + math.Cos(angle+2.9)*size*0.55, Y: pos.Y + math.Sin(angle+2.9)*size*0.55}
	points[1] = draw.Point{X: pos.X + math.Cos(angle-2.9)*size*0.55, Y: pos.Y + math.Sin(angle-2.9)*size*0.55}
	points[2] = draw.Point{X: pos.X + math.Cos(tailAngle)*length, Y: pos.Y + math.Sin(tailAngle)*length}
	c.canvas.DrawPolygon(points, false)
}

// drawAsteroid draws the rock's outline polygon at every wrapped
// position. Vertex i sits at the stored radial distance, rotated with
// the rock.
func (c *Client) drawAsteroid(cam camera, a *loop.AsteroidView) {
	positions := worldToView(a.X, a.Y, cam)

	numVerts := len(a.Vertices)
	if numVerts < 3 {
		return
	}

	for p := 0; p < positions.count; p++ {
		pos := positions.pts[p]

		// Use the reusable buffer from the canvas to avoid per-frame
		// allocations.
		points := c.canvas.BorrowPoints(numVerts)
		for i, dist := range a.Vertices {
			vertAngle := a.Angle + float64(i)*2*math.Pi/float64(numVerts)
			points[i] = draw.Point{
				X: pos.X + math.Cos(vertAngle)*dist,
				Y: pos.Y + math.Sin(vertAngle)*dist,
			}
		}
		c.canvas.DrawPolygon(points, false)
	}
}

// drawSaucer draws the classic hull-and-dome silhouette used for both
// enemy craft and the boss.
func (c *Client) drawSaucer(pos draw.Point, r float64) {
	hull := c.canvas.BorrowPoints(6)
	hull[0] = draw.Point{X: pos.X - r, Y: pos.Y}
	hull[1] = draw.Point{X: pos.X - r*0.45, Y: pos.Y - r*0.4}
	hull[2] = draw.Point{X: pos.X + r*0.45, Y: pos.Y - r*0.4}
	hull[3] = draw.Point{X: pos.X + r, Y: pos.Y}
	hull[4] = draw.Point{X: pos.X + r*0.45, Y: pos.Y + r*0.4}
	hull[5] = draw.Point{X: pos.X - r*0.45, Y: pos.Y + r*0.4}
	c.canvas.DrawPolygon(hull, false)

	// Dome on top, an open polyline
	domeL := draw.Point{X: pos.X - r*0.35, Y: pos.Y - r*0.4}
	domeLT := draw.Point{X: pos.X - r*0.18, Y: pos.Y - r*0.75}
	domeRT := draw.Point{X: pos.X + r*0.18, Y: pos.Y - r*0.75}
	domeR := draw.Point{X: pos.X + r*0.35, Y: pos.Y - r*0.4}
	c.canvas.DrawLine(domeL, domeLT)
	c.canvas.DrawLine(domeLT, domeRT)
	c.canvas.DrawLine(domeRT, domeR)
}

// drawParticles writes effect glyphs directly to the terminal and marks
// the cells dirty so the canvas repaints them next frame.
func (c *Client) drawParticles(snap *loop.Snapshot) {
	cam := camera{x: c.state.camX, y: c.state.camY}
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()

	for i := range snap.Particles {
		p := &snap.Particles[i]
		if p.Faded {
			continue
		}
		positions := worldToView(p.X, p.Y, cam)
		for j := 0; j < positions.count; j++ {
			col, row := c.canvas.LogicalToTerminal(positions.pts[j].X, positions.pts[j].Y)
			if col < 1 || col > termWidth || row < 1 || row > termHeight {
				continue
			}
			c.chunkWriter.MoveCursor(col, row)
			c.chunkWriter.WriteRune(p.Symbol)
			c.canvas.MarkTextDirty(col, row, 1)
		}
	}
}

// drawCraftTags writes each enemy craft's personality initial above it,
// so the player can tell a deadly craft from a swarm one before it
// closes in. Disengaged craft get a dim tag.
func (c *Client) drawCraftTags(snap *loop.Snapshot) {
	cam := camera{x: c.state.camX, y: c.state.camY}
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()

	for i := range snap.UFOs {
		u := &snap.UFOs[i]
		tag := personalityTag(u.Personality)
		dim := u.State == object.StateEvading || u.State == object.StateRepositioning

		positions := worldToView(u.X, u.Y, cam)
		for j := 0; j < positions.count; j++ {
			pos := positions.pts[j]

			// Offset above the saucer dome
			col, row := c.canvas.LogicalToTerminal(pos.X, pos.Y-u.Radius-8)
			if row < 1 || row > termHeight || col < 1 || col > termWidth {
				continue
			}

			if dim {
				c.chunkWriter.WriteString(draw.ColorDim)
			}
			c.chunkWriter.WriteAt(col, row, tag)
			if dim {
				c.chunkWriter.WriteString(draw.ColorReset)
			}
			c.canvas.MarkTextDirty(col, row, len(tag))
		}
	}
}

// personalityTag maps a personality to its one-letter label.
func personalityTag(p object.Personality) string {
	s := p.String()
	if s == "" {
		return "?"
	}
	return strings.ToUpper(s[:1])
}

// drawUI draws the overlay for the current layout.
func (c *Client) drawUI(snap *loop.Snapshot, state loop.GameState) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.state.shutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}
	if c.state.inactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	switch state {
	case loop.GameStateWaiting:
		c.drawTitleScreen(centerX, centerY)
	case loop.GameStatePlaying:
		c.drawHUD(termWidth, termHeight, snap)
	case loop.GameStatePaused:
		c.drawHUD(termWidth, termHeight, snap)
		c.drawPauseOverlay(centerX, centerY)
	case loop.GameStateOver:
		c.drawGameOverScreen(centerX, centerY, snap)
	}
}

// drawTitleScreen draws the title layout with controls.
func (c *Client) drawTitleScreen(centerX, centerY int) {
	// ASCII art title (figlet "small" font)
	titleArt := []string{
		` ___  _____    _    ___   ___   ___  ___   ___ `,
		`/ __||_   _|  /_\  | _ \ / _ \ |_ _||   \ / __|`,
		`\__ \  | |   / _ \ |   /| (_) | | | | |) |\__ \`,
		`|___/  |_|  /_/ \_\|_|_\ \___/ |___||___/ |___/`,
		`                                               `,
	}

	titleWidth := 0
	for _, line := range titleArt {
		if len(line) > titleWidth {
			titleWidth = len(line)
		}
	}

	cw := c.chunkWriter
	titleStartY := centerY - 11
	if titleStartY < 1 {
		titleStartY = 1
	}
	for i, line := range titleArt {
		cw.WriteAt(centerX-titleWidth/2, titleStartY+i, line)
	}

	subtitle := "~ A terminal space shooter ~"
	cw.WriteAt(centerX-len(subtitle)/2, titleStartY+len(titleArt)+1, subtitle)

	controlsY := titleStartY + len(titleArt) + 3
	controlHeader := "Controls"
	cw.WriteAt(centerX-len(controlHeader)/2, controlsY, controlHeader)

	controlLines := []string{
		"Arrows  . . . .  Turn",
		"W / Up  . . .  Thrust",
		"S / Down  . . Reverse",
		"A / D  . . . . Strafe",
		"Space  . . . . . Fire",
		"Q / E  . . .  Ability",
		"P  . . . . . .  Pause",
		"Esc  . . . . . . Quit",
	}
	for i, line := range controlLines {
		cw.WriteAt(centerX-len(line)/2, controlsY+1+i, line)
	}

	// Blinking start prompt
	promptY := controlsY + len(controlLines) + 2
	prompt := ">>  Press SPACE to Start  <<"
	if time.Now().UnixMilli()/600%2 == 0 {
		cw.WriteAt(centerX-len(prompt)/2, promptY, prompt)
	}
	c.canvas.MarkTextDirty(centerX-len(prompt)/2, promptY, len(prompt))

	// GitHub link (OSC 8 clickable hyperlink)
	ghURL := "https://github.com/tomz197/staroids"
	ghLabel := "github.com/tomz197/staroids"
	ghLine := fmt.Sprintf("\033]8;;%s\033\\%s\033]8;;\033\\", ghURL, ghLabel)
	cw.WriteAt(centerX-len(ghLabel)/2, promptY+2, ghLine)
}

// drawHUD draws the in-game overlay.
// Text fields use fixed-width formatting so shrinking values don't
// leave residual characters on screen.
func (c *Client) drawHUD(termWidth, termHeight int, snap *loop.Snapshot) {
	cw := c.chunkWriter

	// Score block (top left)
	cw.WriteAt(2, 1, fmt.Sprintf("Score: %-10d", snap.Score))
	cw.WriteAt(2, 2, fmt.Sprintf("Level: %-4d", snap.Level))
	cw.WriteAt(2, 3, fmt.Sprintf("Bonus: x%-5.1f", snap.Multiplier))

	// Lives, shield, and ability charge (top right)
	livesText := fmt.Sprintf("Lives:  %-2d", snap.Lives)
	cw.WriteAt(termWidth-len(livesText)-1, 1, livesText)
	c.drawShieldPips(termWidth, snap.Shield)
	c.drawChargePips(termWidth, snap.Charges, snap.ChargeProgress)

	c.drawMinimap(termWidth, termHeight, snap)

	if snap.HasBoss {
		c.drawBossBar(termWidth, snap.Boss.Hits)
	}

	// Time dilation meter (bottom left)
	c.drawDilationMeter(termHeight, snap.Dilation)

	// Ship coordinates (bottom right). Marked dirty so the line clears
	// while the ship is down.
	if snap.Ship.Alive {
		coordText := fmt.Sprintf("X:%-5.0f Y:%-5.0f", snap.Ship.X, snap.Ship.Y)
		cw.WriteAt(termWidth-len(coordText)-1, termHeight, coordText)
		c.canvas.MarkTextDirty(termWidth-len(coordText)-1, termHeight, len(coordText))
	}
}

// drawShieldPips draws one block per remaining shield layer. Positions
// are computed from visual widths, not byte lengths, since the pips are
// multi-byte runes.
func (c *Client) drawShieldPips(termWidth, layers int) {
	const label = "Shield: "
	var b strings.Builder
	b.WriteString(label)
	for i := 0; i < config.ShieldLayers; i++ {
		if i < layers {
			b.WriteRune(draw.BlockFull)
		} else {
			b.WriteRune(draw.BlockLight)
		}
	}
	width := len(label) + config.ShieldLayers
	c.chunkWriter.WriteAt(termWidth-width-1, 2, b.String())
}

// drawChargePips draws the ability charges: full blocks for banked
// charges and a shade for the one filling up.
func (c *Client) drawChargePips(termWidth, charges int, progress float64) {
	const label = "Charge: "
	var b strings.Builder
	b.WriteString(label)
	for i := 0; i < config.AbilityMaxCharges; i++ {
		switch {
		case i < charges:
			b.WriteRune(draw.BlockFull)
		case i == charges:
			b.WriteRune(draw.ShadeLevel(progress))
		default:
			b.WriteRune(draw.BlockEmpty)
		}
	}
	width := len(label) + config.AbilityMaxCharges
	c.chunkWriter.WriteAt(termWidth-width-1, 3, b.String())
}

// drawBossBar draws the boss health bar centered at the top.
func (c *Client) drawBossBar(termWidth, hitsLeft int) {
	const barWidth = 20
	frac := float64(hitsLeft) / float64(config.BossHits)
	if frac < 0 {
		frac = 0
	}
	filled := int(frac * barWidth)

	var b strings.Builder
	b.WriteString("BOSS ")
	for i := 0; i < barWidth; i++ {
		if i < filled {
			b.WriteRune(draw.BlockFull)
		} else {
			b.WriteRune(draw.BlockLight)
		}
	}
	// Marked dirty so the bar clears once the boss is gone.
	width := 5 + barWidth
	col := termWidth/2 - width/2
	c.chunkWriter.WriteAt(col, 1, b.String())
	c.canvas.MarkTextDirty(col, 1, width)
}

// drawDilationMeter draws the time-dilation bar: how fast the world is
// running relative to the peak factor.
func (c *Client) drawDilationMeter(termHeight int, dilation float64) {
	const barWidth = 10
	level := dilation / score.DilationPeak * barWidth
	filled := int(level)
	if filled > barWidth {
		filled = barWidth
	}

	var b strings.Builder
	b.WriteString("Time ")
	for i := 0; i < barWidth; i++ {
		switch {
		case i < filled:
			b.WriteRune(draw.BlockFull)
		case i == filled:
			b.WriteRune(draw.ShadeLevel(level - float64(filled)))
		default:
			b.WriteRune(draw.BlockLight)
		}
	}
	b.WriteString(fmt.Sprintf(" x%-5.2f", dilation))
	c.chunkWriter.WriteAt(2, termHeight, b.String())
}

// buildMinimapGrid rasterizes the world into the minimap cells. Higher
// marker classes overwrite lower ones when entities share a cell.
func (c *Client) buildMinimapGrid(snap *loop.Snapshot) {
	grid := &c.state.minimapGrid
	*grid = [minimapSubRows][minimapWidth]byte{} // Clear

	mark := func(x, y float64, class byte) {
		col := int(x / config.WorldWidth * minimapWidth)
		subRow := int(y / config.WorldHeight * minimapSubRows)
		if col < 0 {
			col = 0
		}
		if col >= minimapWidth {
			col = minimapWidth - 1
		}
		if subRow < 0 {
			subRow = 0
		}
		if subRow >= minimapSubRows {
			subRow = minimapSubRows - 1
		}
		if grid[subRow][col] < class {
			grid[subRow][col] = class
		}
	}

	for i := range snap.Asteroids {
		mark(snap.Asteroids[i].X, snap.Asteroids[i].Y, minimapRock)
	}
	for i := range snap.UFOs {
		mark(snap.UFOs[i].X, snap.UFOs[i].Y, minimapHostile)
	}
	if snap.HasBoss {
		mark(snap.Boss.X, snap.Boss.Y, minimapHostile)
	}
	if snap.Ship.Alive {
		mark(snap.Ship.X, snap.Ship.Y, minimapShip)
	}
}

// drawMinimap draws a small overview of the whole world. Half-block
// characters give 2x vertical resolution. The ship is bright cyan,
// hostiles red, rocks uncolored.
func (c *Client) drawMinimap(termWidth, termHeight int, snap *loop.Snapshot) {
	// Position: top-right, below the lives/shield/charge block
	startCol := termWidth - minimapWidth - 3
	startRow := 5
	if startCol < 1 || startRow+minimapHeight+1 > termHeight {
		return // Not enough space
	}

	c.buildMinimapGrid(snap)
	grid := &c.state.minimapGrid

	cw := c.chunkWriter
	cw.WriteAt(startCol, startRow, "┌"+strings.Repeat("─", minimapWidth)+"┐")
	c.canvas.MarkTextDirty(startCol, startRow, minimapWidth+2)

	// Each terminal row combines two sub-rows via half blocks
	for termRow := 0; termRow < minimapHeight; termRow++ {
		cw.WriteAt(startCol, startRow+1+termRow, "│")
		curColor := ""
		for col := 0; col < minimapWidth; col++ {
			top := grid[termRow*2][col]
			bot := grid[termRow*2+1][col]
			class := top
			if bot > class {
				class = bot
			}

			wantColor := draw.ColorReset
			switch class {
			case minimapShip:
				wantColor = draw.ColorBrightCyan
			case minimapHostile:
				wantColor = draw.ColorRed
			}

			var r rune
			switch {
			case top != minimapEmpty && bot != minimapEmpty:
				r = draw.BlockFull
			case top != minimapEmpty:
				r = draw.BlockUpperHalf
			case bot != minimapEmpty:
				r = draw.BlockLowerHalf
			default:
				r = ' '
			}

			if r != ' ' {
				if curColor != wantColor {
					cw.WriteString(wantColor)
					curColor = wantColor
				}
			} else if curColor != "" {
				cw.WriteString(draw.ColorReset)
				curColor = ""
			}
			cw.WriteRune(r)
		}
		if curColor != "" {
			cw.WriteString(draw.ColorReset)
		}
		cw.WriteString("│")
		c.canvas.MarkTextDirty(startCol, startRow+1+termRow, minimapWidth+2)
	}

	cw.WriteAt(startCol, startRow+1+minimapHeight, "└"+strings.Repeat("─", minimapWidth)+"┘")
	c.canvas.MarkTextDirty(startCol, startRow+1+minimapHeight, minimapWidth+2)
}

// drawPauseOverlay draws the pause banner over the frozen field.
func (c *Client) drawPauseOverlay(centerX, centerY int) {
	cw := c.chunkWriter
	title := "PAUSED"
	cw.WriteAt(centerX-len(title)/2, centerY-1, title)
	c.canvas.MarkTextDirty(centerX-len(title)/2, centerY-1, len(title))

	hint := "Press P to resume"
	cw.WriteAt(centerX-len(hint)/2, centerY+1, hint)
	c.canvas.MarkTextDirty(centerX-len(hint)/2, centerY+1, len(hint))
}

// drawGameOverScreen draws the run summary over the leftover field.
func (c *Client) drawGameOverScreen(centerX, centerY int, snap *loop.Snapshot) {
	titleArt := []string{
		`   ___   _   __  __ ___    _____   _____ ___  `,
		`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
		` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
		`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
		`                                              `,
	}

	titleWidth := 0
	for _, line := range titleArt {
		if len(line) > titleWidth {
			titleWidth = len(line)
		}
	}

	cw := c.chunkWriter
	titleStartY := centerY - 6
	if titleStartY < 1 {
		titleStartY = 1
	}
	for i, line := range titleArt {
		cw.WriteAt(centerX-titleWidth/2, titleStartY+i, line)
		c.canvas.MarkTextDirty(centerX-titleWidth/2, titleStartY+i, titleWidth)
	}

	scoreText := fmt.Sprintf("Final score: %d", snap.Score)
	cw.WriteAt(centerX-len(scoreText)/2, titleStartY+len(titleArt)+1, scoreText)
	c.canvas.MarkTextDirty(centerX-len(scoreText)/2, titleStartY+len(titleArt)+1, len(scoreText))

	levelText := fmt.Sprintf("Level reached: %d", snap.Level)
	cw.WriteAt(centerX-len(levelText)/2, titleStartY+len(titleArt)+2, levelText)
	c.canvas.MarkTextDirty(centerX-len(levelText)/2, titleStartY+len(titleArt)+2, len(levelText))

	promptY := titleStartY + len(titleArt) + 4
	prompt := ">>  Press SPACE to Restart  <<"
	if time.Now().UnixMilli()/600%2 == 0 {
		cw.WriteAt(centerX-len(prompt)/2, promptY, prompt)
	}
	c.canvas.MarkTextDirty(centerX-len(prompt)/2, promptY, len(prompt))

	hint := "Press ESC to quit"
	cw.WriteAt(centerX-len(hint)/2, promptY+2, hint)
	c.canvas.MarkTextDirty(centerX-len(hint)/2, promptY+2, len(hint))
}

// drawShutdownScreen draws the server shutdown notification.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	cw := c.chunkWriter
	title := "SERVER SHUTTING DOWN"
	cw.WriteAt(centerX-len(title)/2, centerY-3, title)

	msg1 := "The server is restarting for maintenance."
	cw.WriteAt(centerX-len(msg1)/2, centerY-1, msg1)

	msg2 := "Please reconnect in a moment."
	cw.WriteAt(centerX-len(msg2)/2, centerY, msg2)

	remaining := int(c.state.shutdownTimer) + 1
	countdown := fmt.Sprintf("Disconnecting in %-2d seconds...", remaining)
	cw.WriteAt(centerX-len(countdown)/2, centerY+2, countdown)

	hint := "Press ESC to disconnect now"
	cw.WriteAt(centerX-len(hint)/2, centerY+4, hint)
}

// drawInactivityScreen draws the idle warning.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	cw := c.chunkWriter
	title := "INACTIVITY WARNING"
	cw.WriteAt(centerX-len(title)/2, centerY-2, title)

	remaining := int(config.InactivityDisconnectUser - time.Since(c.lastInput).Seconds())
	msg := fmt.Sprintf("You have been idle for a while. Disconnecting in %-3d seconds.", remaining)
	cw.WriteAt(centerX-len(msg)/2, centerY, msg)

	hint := "Press any key to continue"
	cw.WriteAt(centerX-len(hint)/2, centerY+2, hint)
}
