// Package config centralizes the host's tunable parameters.
package config

import "time"

// Max render resolution - the render area is clamped to this and centered.
const (
	MaxTermWidth  = 200
	MaxTermHeight = 75
)

// Simulation defaults, overridable from the settings file.
const (
	DefaultTickRate = 60
	DefaultMaxSteps = 5
)

// Viewer controls
const (
	KickImpulse    = 40.0  // Impulse applied to every dynamic body on space
	PushForce      = 300.0 // Force applied to every dynamic body while an arrow is held
	SpawnMinRadius = 8.0
	SpawnMaxRadius = 25.0
	SpawnMargin    = 60.0 // Keep spawned shapes away from the side walls
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 30
	ClientTargetFrameTime = time.Second / ClientTargetFPS
	CircleSegments        = 24 // Polygon segments used to draw a circle
	ContactMarkerSeconds  = 0.4
	MaxMarkers            = 128
	NoticeSeconds         = 3.0 // How long a server notice stays on the HUD
)

// TickTime returns the duration of one simulation step at rate steps per second.
func TickTime(rate int) time.Duration {
	if rate <= 0 {
		rate = DefaultTickRate
	}
	return time.Second / time.Duration(rate)
}
