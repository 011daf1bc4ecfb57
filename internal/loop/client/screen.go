package client

import (
	"fmt"
	"time"

	"github.com/tomz197/newton/internal/loop/config"
	"github.com/tomz197/newton/internal/loop/server"
	"github.com/tomz197/newton/internal/object"
	"github.com/tomz197/newton/internal/vector"
)

// helpLines is the key reference shown by the help overlay.
var helpLines = []string{
	"Controls",
	"",
	"SPACE  . . . . . . .  Kick",
	"arrows / WASD  . . .  Push",
	"C  . . . . .  Drop a circle",
	"B  . . . . . . Drop a box",
	"P  . . . . . . . . . Pause",
	"R  . . . . . . . . . Reset",
	"N  . . . . . . Next layout",
	"?  . . . . . . Toggle help",
	"Q  . . . . . . . . .  Quit",
}

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// Empty cells are never written by Render, so start from a blank screen.
	c.frame.Reset()
	c.canvas.Clear()

	snapshot := c.server.GetSnapshot()
	if snapshot == nil {
		return c.frame.Flush()
	}

	c.canvas.SetWorld(snapshot.Scene.Width, snapshot.Scene.Height)
	ctx := object.DrawContext{Canvas: c.canvas, Writer: c.frame}

	if c.state.ViewState == ViewStateWatching && !c.state.isInactive {
		c.drawWorldBounds(ctx, snapshot)
		snapshot.Scene.Draw(object.NewShapeDrawer(ctx))
	}

	if err := c.canvas.Render(c.frame); err != nil {
		return err
	}
	// Border when the terminal exceeds the max render resolution.
	if err := c.canvas.Border(c.frame); err != nil {
		return err
	}

	c.drawUI(ctx, snapshot)

	return c.frame.Flush()
}

// drawWorldBounds outlines the world rectangle.
func (c *Client) drawWorldBounds(ctx object.DrawContext, snapshot *server.Snapshot) {
	w, h := snapshot.Scene.Width, snapshot.Scene.Height
	corners := [4]vector.Vector2{
		vector.New(0, 0),
		vector.New(w, 0),
		vector.New(w, h),
		vector.New(0, h),
	}
	ctx.Canvas.Polygon(corners[:], false)
}

// drawUI draws the overlay for the current view state.
func (c *Client) drawUI(ctx object.DrawContext, snapshot *server.Snapshot) {
	termWidth, termHeight := c.canvas.Size()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.state.ViewState == ViewStateShutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	c.state.Markers.Draw(ctx)
	c.drawHUD(termWidth, termHeight, snapshot)
	if c.state.ShowHelp {
		c.drawHelp(centerX, centerY)
	}
}

// text writes t relative to the render area.
func (c *Client) text(t object.Text) {
	offCol, offRow := c.canvas.Offset()
	t.X += offCol
	t.Y += offRow
	t.Draw(c.frame)
}

// drawHUD draws the status lines around the scene.
func (c *Client) drawHUD(termWidth, termHeight int, snapshot *server.Snapshot) {
	scn := snapshot.Scene
	shapes := len(scn.Circles) + len(scn.OBBs)

	c.text(object.Text{X: 2, Y: 1, Value: "newton  layout: " + snapshot.Layout})
	c.text(object.Text{X: 2, Y: 2, Value: fmt.Sprintf("shapes: %d (%d dynamic)  contacts: %d",
		shapes, scn.Dynamic(), len(scn.Contacts))})

	simTime := time.Duration(snapshot.Steps) * snapshot.TickTime
	c.text(object.RightAligned(termWidth-1, 1, fmt.Sprintf("t=%.1fs", simTime.Seconds())))
	c.text(object.RightAligned(termWidth-1, 2, fmt.Sprintf("viewers: %d", snapshot.Viewers)))

	switch {
	case snapshot.Paused:
		c.text(object.Centered(termWidth/2, 1, "PAUSED"))
	case snapshot.Behind:
		c.text(object.Centered(termWidth/2, 1, "BEHIND"))
	}

	if c.state.Notice != "" {
		c.text(object.Centered(termWidth/2, termHeight-1, c.state.Notice))
	}
	c.text(object.Text{X: 2, Y: termHeight, Value: "? help  q quit"})
	if c.username != "" {
		c.text(object.RightAligned(termWidth-1, termHeight, c.username))
	}
}

// drawHelp draws the key reference in the middle of the screen.
func (c *Client) drawHelp(centerX, centerY int) {
	top := centerY - len(helpLines)/2
	for i, line := range helpLines {
		c.text(object.Centered(centerX, top+i, line))
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	f := c.frame
	title := "INACTIVITY WARNING"
	f.WriteAt(centerX-len(title)/2, centerY-2, title)

	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	)
	f.WriteAt(centerX-len(msg)/2, centerY, msg)

	hint := "Press any key to continue"
	f.WriteAt(centerX-len(hint)/2, centerY+2, hint)
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	f := c.frame
	title := "SERVER SHUTTING DOWN"
	f.WriteAt(centerX-len(title)/2, centerY-3, title)

	msg := "The simulation is stopping. Please reconnect in a moment."
	f.WriteAt(centerX-len(msg)/2, centerY-1, msg)

	remaining := int(c.state.shutdownTimer) + 1
	countdown := fmt.Sprintf("Disconnecting in %d seconds...", remaining)
	f.WriteAt(centerX-len(countdown)/2, centerY+1, countdown)

	hint := "Press Q to disconnect now"
	f.WriteAt(centerX-len(hint)/2, centerY+3, hint)
}
