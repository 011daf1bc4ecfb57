package client

import (
	"time"

	"github.com/tomz197/newton/internal/draw"
	"github.com/tomz197/newton/internal/input"
	"github.com/tomz197/newton/internal/object"
)

// ViewState represents what the client is showing.
type ViewState int

const (
	ViewStateWatching ViewState = iota // Live scene with HUD
	ViewStateShutdown                  // Server is shutting down
)

// ClientState holds per-viewer state (input, overlays, timers).
// Each client has its own instance, managed by the Client.
type ClientState struct {
	Input         input.Input
	ViewState     ViewState         // What this client is showing
	Markers       object.Markers    // Fading contact markers
	ShowHelp      bool              // Help overlay toggled with '?'
	Notice        string            // Last server notice
	noticeTimer   float64           // Seconds the notice stays visible
	lastSteps     uint64            // Steps of the last snapshot markers were spawned from
	termSizeFunc  draw.TermSizeFunc // Function to get terminal size
	Running       bool              // Client loop running
	delta         time.Duration     // Frame delta time (client-side)
	shutdownTimer float64           // Countdown before auto-disconnect on shutdown
	isInactive    bool              // Whether the client is in inactive warning state
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		ViewState: ViewStateWatching,
		Running:   true,
	}
}
