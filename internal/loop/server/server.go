package server

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/newton/internal/loop/config"
	"github.com/tomz197/newton/internal/physics"
	"github.com/tomz197/newton/internal/scene"
	"github.com/tomz197/newton/internal/vector"
)

// Simulation is the interface clients use to communicate with the server.
// Decouples the Client from the concrete Server implementation.
type Simulation interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	SendCommand(clientID int, cmd Command)
	GetSnapshot() *Snapshot
}

// Server owns the scene and is the only goroutine that mutates it.
// Viewers talk to it over channels and read published snapshots.
type Server struct {
	scene    *scene.Scene
	snapshot atomic.Pointer[Snapshot]

	clients      map[int]*ClientHandle
	nextClientID int
	commandCh    chan ClientCommand
	registerCh   chan *ClientHandle
	unregisterCh chan int
	mu           sync.RWMutex

	layout   string
	paused   bool
	steps    uint64
	behind   bool
	tick     time.Duration
	maxSteps int

	logger *log.Logger
	rng    *rand.Rand
}

// Compile-time check that Server implements Simulation.
var _ Simulation = (*Server)(nil)

// ClientHandle represents a client's connection to the server.
type ClientHandle struct {
	ID       int
	Username string
	EventsCh chan ClientEvent
}

// Options configures a Server.
type Options struct {
	TickRate        int     // Steps per second
	MaxStepsPerTick int     // Catch-up cap after a stall
	Layout          string  // Initial layout name
	Width, Height   float64 // World size
	Logger          *log.Logger
	Seed            int64 // Seed for spawn positions; 0 uses the clock
}

// New creates a server with the initial layout loaded.
func New(opts Options) (*Server, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.TickRate <= 0 {
		opts.TickRate = config.DefaultTickRate
	}
	if opts.MaxStepsPerTick <= 0 {
		opts.MaxStepsPerTick = config.DefaultMaxSteps
	}
	if opts.Layout == "" {
		opts.Layout = scene.LayoutNames()[0]
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = scene.DefaultWidth, scene.DefaultHeight
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := &Server{
		scene: scene.New(
			scene.WithLogger(logger.WithPrefix("scene")),
			scene.WithBounds(opts.Width, opts.Height),
		),
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		commandCh:    make(chan ClientCommand, 256),
		registerCh:   make(chan *ClientHandle, 16),
		unregisterCh: make(chan int, 16),
		tick:         config.TickTime(opts.TickRate),
		maxSteps:     opts.MaxStepsPerTick,
		logger:       logger,
		rng:          rand.New(rand.NewSource(seed)),
	}

	if err := s.loadLayout(opts.Layout); err != nil {
		return nil, err
	}
	s.publish()
	return s, nil
}

// Run starts the server loop. Blocks until the context is cancelled.
//
// Wall-clock time is accumulated and consumed in fixed steps. At most
// MaxStepsPerTick steps run per tick; any remaining backlog is dropped.
func (s *Server) Run(ctx context.Context) {
	lastTime := time.Now()
	var acc time.Duration

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		frameStart := time.Now()
		acc += frameStart.Sub(lastTime)
		lastTime = frameStart

		s.processRegistrations()
		s.processCommands()
		acc = s.advance(acc)
		s.publish()

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < s.tick {
			time.Sleep(s.tick - elapsed)
		}
	}
}

// advance runs as many fixed steps as acc allows (up to the cap) and returns
// the time left over.
func (s *Server) advance(acc time.Duration) time.Duration {
	if s.paused {
		return 0
	}
	steps := 0
	for acc >= s.tick && steps < s.maxSteps {
		s.step()
		acc -= s.tick
		steps++
	}
	s.behind = acc >= s.tick
	if s.behind {
		s.logger.Debug("simulation behind, dropping time", "dropped", acc)
		acc = 0
	}
	return acc
}

// step advances the scene by one fixed step.
func (s *Server) step() {
	s.scene.OnUpdate(s.tick.Seconds())
	s.steps++
}

// Shutdown gracefully shuts down the server by notifying all connected clients
// and waiting for them to disconnect (up to the given timeout).
// The caller should cancel the server context after Shutdown returns.
func (s *Server) Shutdown(timeout time.Duration) {
	s.mu.RLock()
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.RUnlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			return
		case <-ticker.C:
			s.mu.RLock()
			remaining := len(s.clients)
			s.mu.RUnlock()
			if remaining == 0 {
				return
			}
		}
	}
}

// RegisterClient registers a new client with the given username and returns its handle.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	id := s.nextClientID
	s.nextClientID++
	s.mu.Unlock()

	handle := &ClientHandle{
		ID:       id,
		Username: username,
		EventsCh: make(chan ClientEvent, 16),
	}

	s.registerCh <- handle
	return handle
}

// UnregisterClient removes a client from the server.
func (s *Server) UnregisterClient(clientID int) {
	s.unregisterCh <- clientID
}

// SendCommand queues a command from a client.
func (s *Server) SendCommand(clientID int, cmd Command) {
	select {
	case s.commandCh <- ClientCommand{ClientID: clientID, Command: cmd}:
	default:
		// Command channel full, drop command
	}
}

// GetSnapshot returns the latest published snapshot.
func (s *Server) GetSnapshot() *Snapshot {
	return s.snapshot.Load()
}

// processRegistrations handles pending client registrations/unregistrations.
func (s *Server) processRegistrations() {
	for {
		select {
		case handle := <-s.registerCh:
			s.mu.Lock()
			s.clients[handle.ID] = handle
			s.mu.Unlock()
			s.logger.Info("viewer joined", "id", handle.ID, "user", handle.Username)
		case clientID := <-s.unregisterCh:
			s.mu.Lock()
			if handle, ok := s.clients[clientID]; ok {
				close(handle.EventsCh)
				delete(s.clients, clientID)
				s.logger.Info("viewer left", "id", clientID, "user", handle.Username)
			}
			s.mu.Unlock()
		default:
			return
		}
	}
}

// processCommands applies every queued command to the scene.
func (s *Server) processCommands() {
	for {
		select {
		case cc := <-s.commandCh:
			if err := s.apply(cc.Command); err != nil {
				s.logger.Warn("command failed", "client", cc.ClientID, "cmd", cc.Command.Type, "err", err)
				s.notify(cc.ClientID, err.Error())
			}
		default:
			return
		}
	}
}

// apply executes a single command. Called from the server goroutine only.
func (s *Server) apply(cmd Command) error {
	switch cmd.Type {
	case CmdKick:
		// Forces and impulses would pile up until the next step.
		if !s.paused {
			s.scene.Kick(vector.New(0, config.KickImpulse))
		}
	case CmdPush:
		if !s.paused {
			s.scene.Push(vector.New(cmd.DX, cmd.DY).Normalise().Scale(config.PushForce))
		}
	case CmdTogglePause:
		s.paused = !s.paused
	case CmdReset:
		return s.loadLayout(s.layout)
	case CmdNextLayout:
		return s.loadLayout(scene.NextLayout(s.layout))
	case CmdSpawnCircle:
		return s.spawnCircle()
	case CmdSpawnBox:
		return s.spawnBox()
	default:
		return fmt.Errorf("unknown command %d", cmd.Type)
	}
	return nil
}

// loadLayout replaces the scene contents with the named layout.
func (s *Server) loadLayout(name string) error {
	if err := s.scene.Load(name); err != nil {
		return err
	}
	s.layout = name
	s.steps = 0
	s.logger.Info("layout loaded", "name", name)
	return nil
}

// spawnMaterial is given to shapes dropped in by viewers.
var spawnMaterial = physics.Material{Mass: 1, Restitution: 0.6, Friction: 0.4}

// spawnPosition picks a random x near the top of the world for a shape of size r.
func (s *Server) spawnPosition(r float64) vector.Vector2 {
	w, h := s.scene.Bounds()
	lo, hi := config.SpawnMargin, w-config.SpawnMargin
	if hi <= lo {
		lo, hi = 0, w
	}
	return vector.New(lo+s.rng.Float64()*(hi-lo), h-r)
}

func (s *Server) spawnSize() float64 {
	return config.SpawnMinRadius + s.rng.Float64()*(config.SpawnMaxRadius-config.SpawnMinRadius)
}

func (s *Server) spawnCircle() error {
	r := s.spawnSize()
	id, err := s.scene.AddCircle(r, s.spawnPosition(r), physics.Dynamic)
	if err != nil {
		return err
	}
	return s.scene.SetMaterialProperties(id, spawnMaterial)
}

func (s *Server) spawnBox() error {
	ex, ey := s.spawnSize(), s.spawnSize()
	id, err := s.scene.AddOBB(s.spawnPosition(ey), vector.New(ex, ey), 0, physics.Dynamic)
	if err != nil {
		return err
	}
	return s.scene.SetMaterialProperties(id, spawnMaterial)
}

// notify sends a HUD message to one client without blocking.
func (s *Server) notify(clientID int, msg string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if handle, ok := s.clients[clientID]; ok {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventNotice, Message: msg}:
		default:
		}
	}
}

// publish stores an immutable snapshot of the current state for clients.
func (s *Server) publish() {
	s.mu.RLock()
	viewers := len(s.clients)
	s.mu.RUnlock()

	s.snapshot.Store(&Snapshot{
		Scene:    s.scene.Snapshot(),
		Layout:   s.layout,
		Paused:   s.paused,
		Steps:    s.steps,
		Viewers:  viewers,
		TickTime: s.tick,
		Behind:   s.behind,
	})
}
