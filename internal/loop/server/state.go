package server

import (
	"time"

	"github.com/tomz197/newton/internal/scene"
)

// Snapshot is an immutable view of the simulation published after every tick.
type Snapshot struct {
	Scene    *scene.Snapshot
	Layout   string        // Name of the loaded layout
	Paused   bool          // Whether stepping is suspended
	Steps    uint64        // Fixed steps taken since the layout was loaded
	Viewers  int           // Connected clients
	TickTime time.Duration // Duration of one fixed step
	Behind   bool          // The last tick hit the step cap and dropped time
}

// CommandType identifies a viewer command.
type CommandType int

const (
	CmdKick CommandType = iota
	CmdPush
	CmdTogglePause
	CmdReset
	CmdNextLayout
	CmdSpawnCircle
	CmdSpawnBox
)

func (c CommandType) String() string {
	switch c {
	case CmdKick:
		return "kick"
	case CmdPush:
		return "push"
	case CmdTogglePause:
		return "pause"
	case CmdReset:
		return "reset"
	case CmdNextLayout:
		return "next-layout"
	case CmdSpawnCircle:
		return "spawn-circle"
	case CmdSpawnBox:
		return "spawn-box"
	default:
		return "unknown"
	}
}

// Command is a request from a viewer to change the simulation.
type Command struct {
	Type CommandType
	DX   float64 // Push direction, -1..1
	DY   float64
}

// ClientCommand is a command tagged with the client that sent it.
type ClientCommand struct {
	ClientID int
	Command  Command
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type    ClientEventType
	Message string
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventNotice ClientEventType = iota // Short status message for the HUD
	EventServerShutdown
)
