package client

import (
	"bufio"
	"io"
	"time"

	"github.com/tomz197/newton/internal/draw"
	"github.com/tomz197/newton/internal/input"
	"github.com/tomz197/newton/internal/loop/config"
	"github.com/tomz197/newton/internal/loop/server"
	"github.com/tomz197/newton/internal/object"
	"github.com/tomz197/newton/internal/vector"
)

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.Simulation
	handle       *server.ClientHandle
	state        *ClientState
	canvas       *draw.Canvas
	frame        *draw.Frame // Output for the frame being drawn
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	lastLayout   string
	username     string
	termSizeFunc draw.TermSizeFunc
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
}

// NewClient creates a new client connected to the given simulation.
func NewClient(sim server.Simulation, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}

	handle := sim.RegisterClient(opts.Username)
	state := NewClientState()
	state.termSizeFunc = termSizeFunc

	// The world size comes with each snapshot; see drawFrame.
	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewCanvas(renderWidth, renderHeight, 0, 0)
	canvas.SetOffset(offsetCol, offsetRow)
	frame := draw.NewFrame(w)
	frame.SetOffset(offsetCol, offsetRow)

	return &Client{
		server:       sim,
		handle:       handle,
		state:        state,
		canvas:       canvas,
		frame:        frame,
		writer:       w,
		lastInput:    time.Now(),
		inputStream:  input.StartStream(r),
		username:     opts.Username,
		termSizeFunc: termSizeFunc,
	}
}

// Run starts the client loop. Blocks until the viewer quits or the server stops.
func (c *Client) Run() error {
	if err := draw.BeginSession(c.writer); err != nil {
		c.server.UnregisterClient(c.handle.ID)
		return err
	}
	defer draw.EndSession(c.writer)

	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput()
		c.processServerEvents()
		c.updateScreen()

		switch c.state.ViewState {
		case ViewStateWatching:
			c.updateWatchingState()
		case ViewStateShutdown:
			c.updateShutdownState()
		}

		if err := c.drawFrame(); err != nil {
			c.server.UnregisterClient(c.handle.ID)
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	c.server.UnregisterClient(c.handle.ID)
	return nil
}

// processInput reads input and forwards commands to the server.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)

	if c.state.Input.Any() {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if c.state.Input.Quit {
		c.state.Running = false
		return
	}
	if c.state.Input.Help {
		c.state.ShowHelp = !c.state.ShowHelp
	}

	if c.state.ViewState != ViewStateWatching {
		return
	}
	for _, cmd := range commandsFor(c.state.Input) {
		c.server.SendCommand(c.handle.ID, cmd)
	}
}

// commandsFor maps one frame of input to server commands.
// Push is sent every frame a direction is held.
func commandsFor(in input.Input) []server.Command {
	var cmds []server.Command
	if in.Kick {
		cmds = append(cmds, server.Command{Type: server.CmdKick})
	}
	dx, dy := axis(in.Left, in.Right), axis(in.Down, in.Up)
	if dx != 0 || dy != 0 {
		cmds = append(cmds, server.Command{Type: server.CmdPush, DX: dx, DY: dy})
	}
	if in.Pause {
		cmds = append(cmds, server.Command{Type: server.CmdTogglePause})
	}
	if in.Reset {
		cmds = append(cmds, server.Command{Type: server.CmdReset})
	}
	if in.NextLayout {
		cmds = append(cmds, server.Command{Type: server.CmdNextLayout})
	}
	if in.SpawnCircle {
		cmds = append(cmds, server.Command{Type: server.CmdSpawnCircle})
	}
	if in.SpawnBox {
		cmds = append(cmds, server.Command{Type: server.CmdSpawnBox})
	}
	return cmds
}

func axis(neg, pos bool) float64 {
	switch {
	case pos && !neg:
		return 1
	case neg && !pos:
		return -1
	default:
		return 0
	}
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				// Server closed the channel
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventNotice:
				c.showNotice(event.Message)
			case server.EventServerShutdown:
				c.state.ViewState = ViewStateShutdown
				input.ResetKeyInput(c.inputStream)
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

func (c *Client) showNotice(msg string) {
	c.state.Notice = msg
	c.state.noticeTimer = config.NoticeSeconds
}

// updateScreen handles terminal resize, clamping to max render resolution.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.frame.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
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

// updateWatchingState ages overlays and spawns markers for fresh contacts.
func (c *Client) updateWatchingState() {
	ctx := object.UpdateContext{Delta: c.state.delta}
	c.state.Markers.Update(ctx)

	if c.state.noticeTimer > 0 {
		c.state.noticeTimer -= c.state.delta.Seconds()
		if c.state.noticeTimer <= 0 {
			c.state.Notice = ""
		}
	}

	snap := c.server.GetSnapshot()
	if snap == nil {
		return
	}
	if c.lastLayout != "" && snap.Layout != c.lastLayout {
		c.showNotice("layout: " + snap.Layout)
	}
	c.lastLayout = snap.Layout

	if snap.Steps == c.state.lastSteps {
		return
	}
	c.state.lastSteps = snap.Steps

	room := config.MaxMarkers - len(c.state.Markers)
	if room <= 0 {
		return
	}
	contacts := snap.Scene.Contacts
	if len(contacts) > room {
		contacts = contacts[:room]
	}
	points := make([]vector.Vector2, len(contacts))
	for i, ct := range contacts {
		points[i] = ct.Point
	}
	c.state.Markers.Spawn(points, config.ContactMarkerSeconds)
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
