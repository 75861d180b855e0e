package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/cbodonnell/melange/pkg/clients"
	"github.com/cbodonnell/melange/pkg/game/data"
	"github.com/cbodonnell/melange/pkg/game/decks"
	"github.com/cbodonnell/melange/pkg/game/stack"
	"github.com/cbodonnell/melange/pkg/game/types"
	"github.com/cbodonnell/melange/pkg/kinematic"
	"github.com/cbodonnell/melange/pkg/log"
	"github.com/cbodonnell/melange/pkg/messages"
	"github.com/cbodonnell/melange/pkg/network"
	"github.com/cbodonnell/melange/pkg/queue"
	"github.com/cbodonnell/melange/pkg/session"
	"github.com/cbodonnell/melange/pkg/state"
	"github.com/cbodonnell/melange/pkg/workers"
	"github.com/google/uuid"
)

// InputResolver intercepts blocking actions at the stack top and resolves
// them with player-supplied input before the generic pop runs.
type InputResolver interface {
	// TryResolve returns true if it resolved the top action this tick.
	TryResolve(st *stack.Stack, gs *types.GameState) bool
}

// GameManager owns the authoritative game session on the host: the lobby
// lifecycle, the action stack, the phase machine, and state publication.
// All game state is mutated on the game loop goroutine only.
type GameManager struct {
	clientManager    *clients.ClientManager
	eventQueue       queue.Queue
	stateManager     state.StateManager
	saveSnapshotChan chan<- workers.SaveSnapshotRequest
	ruleData         *data.RuleData
	inputResolver    InputResolver
	presenter        Presenter
	stormEffects     StormEffects
	gameLoopInterval time.Duration
	minPlayers       int

	sessionID string
	session   *session.Session
	rng       *rand.Rand

	gameState   *types.GameState
	pools       *decks.Pools
	actionStack *stack.Stack
	phases      *PhaseMachine
	camera      kinematic.Transform
}

// NewGameManagerOptions contains options for creating a new GameManager.
type NewGameManagerOptions struct {
	ClientManager    *clients.ClientManager
	EventQueue       queue.Queue
	StateManager     state.StateManager
	SaveSnapshotChan chan<- workers.SaveSnapshotRequest
	RuleData         *data.RuleData
	InputResolver    InputResolver
	Presenter        Presenter
	StormEffects     StormEffects
	GameLoopInterval time.Duration
	MinPlayers       int
	// Seed seeds the session RNG; 0 falls back to the current time.
	Seed int64
}

func NewGameManager(opts NewGameManagerOptions) *GameManager {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &GameManager{
		clientManager:    opts.ClientManager,
		eventQueue:       opts.EventQueue,
		stateManager:     opts.StateManager,
		saveSnapshotChan: opts.SaveSnapshotChan,
		ruleData:         opts.RuleData,
		inputResolver:    opts.InputResolver,
		presenter:        opts.Presenter,
		stormEffects:     opts.StormEffects,
		gameLoopInterval: opts.GameLoopInterval,
		minPlayers:       opts.MinPlayers,
		sessionID:        uuid.New().String(),
		session:          session.New(),
		rng:              rand.New(rand.NewSource(seed)),
		gameState:        types.NewGameState(),
		actionStack:      stack.New(),
	}
}

// SessionID returns the identifier of this game session.
func (gm *GameManager) SessionID() string {
	return gm.sessionID
}

// Start opens the lobby and runs the game loop until the context ends.
func (gm *GameManager) Start(ctx context.Context) error {
	gm.session.OverwriteNext(session.ScreenServer)

	ticker := time.NewTicker(gm.gameLoopInterval)
	defer ticker.Stop()

	log.Info("Hosting session %s, waiting for %d players", gm.sessionID, gm.minPlayers)

	for {
		select {
		case <-ctx.Done():
			return nil
		case t := <-ticker.C:
			if err := gm.gameTick(ctx, t); err != nil {
				log.Error("Failed to run game tick: %v", err)
			}
		}
	}
}

// gameTick runs one iteration of the game loop. The tick has two strictly
// ordered stages: the state-change stage drains inbound events and advances
// the stack and phase machine; the response stage applies screen-transition
// side effects against the new state.
func (gm *GameManager) gameTick(ctx context.Context, t time.Time) error {
	gm.gameState.Timestamp = t.UnixMilli()

	// State-change stage.
	gm.processEvents()
	gm.updateLobby()
	if gm.session.Screen() == session.ScreenHostingGame {
		if err := gm.advanceSimulation(gm.gameLoopInterval.Seconds()); err != nil {
			return fmt.Errorf("failed to advance simulation: %v", err)
		}
	}

	// Response stage.
	gm.respondToTransition()
	return gm.publishState(ctx)
}

// advanceSimulation advances the action stack if it has work, otherwise
// dispatches the phase machine. Stack resolution always happens before
// phase advancement within a tick.
func (gm *GameManager) advanceSimulation(dt float64) error {
	if gm.inputResolver != nil && gm.inputResolver.TryResolve(gm.actionStack, gm.gameState) {
		return nil
	}
	if !gm.actionStack.IsEmpty() {
		gm.actionStack.Advance(dt, &gm.camera)
		return nil
	}
	return gm.phases.Advance(gm.gameState, gm.pools, gm.actionStack)
}

// Camera returns the current camera transform for the rendering
// collaborator.
func (gm *GameManager) Camera() kinematic.Transform {
	return gm.camera
}

// processEvents drains all pending connection events and client messages
// in arrival order.
func (gm *GameManager) processEvents() {
	pendingEvents, err := gm.eventQueue.ReadAllMessages()
	if err != nil {
		log.Error("Failed to read events: %v", err)
		return
	}
	for _, item := range pendingEvents {
		switch event := item.(type) {
		case *types.ClientConnectEvent:
			if gm.lobbyClosed() {
				log.Warn("Player %s joined as client %d after the lobby closed, dropping", event.Name, event.ClientID)
				gm.dropClient(event.ClientID)
				continue
			}
			log.Info("Player %s joined as client %d", event.Name, event.ClientID)
			gm.broadcastServerInfo()
		case *types.ClientDisconnectEvent:
			log.Info("Client %d left", event.ClientID)
			gm.broadcastServerInfo()
		case *types.ClientMessageEvent:
			gm.handleClientMessage(event)
		default:
			log.Error("unhandled event type: %T", event)
		}
	}
}

// lobbyClosed reports whether the load broadcast already went out, after
// which new clients can no longer join the session.
func (gm *GameManager) lobbyClosed() bool {
	screen := gm.session.Screen()
	return screen == session.ScreenLoading || screen == session.ScreenHostingGame
}

// dropClient closes a client's connection and removes it from the manager.
func (gm *GameManager) dropClient(clientID uint32) {
	if client := gm.clientManager.GetClientByID(clientID); client != nil && client.WSConn != nil {
		client.WSConn.Close()
	}
	gm.clientManager.RemoveClient(clientID)
}

func (gm *GameManager) handleClientMessage(event *types.ClientMessageEvent) {
	if !gm.clientManager.Exists(event.ClientID) {
		// The client disconnected while this message was still queued.
		log.Debug("Dropping message from departed client %d", event.ClientID)
		return
	}
	switch event.Message.Type {
	case messages.MessageTypeLoaded:
		gm.clientManager.SetLoaded(event.ClientID)
		log.Debug("Client %d finished loading", event.ClientID)
	default:
		log.Warn("Client %d sent host-only message type %s", event.ClientID, event.Message.Type)
	}
}

// updateLobby drives the host's own screen machine: broadcast Load once
// the table is full, and start the game once every client has loaded.
func (gm *GameManager) updateLobby() {
	switch gm.session.Screen() {
	case session.ScreenServer:
		if len(gm.clientManager.GetClients()) >= gm.minPlayers {
			gm.broadcast(messages.NewLoad())
			gm.session.OverwriteNext(session.ScreenLoading)
		}
	case session.ScreenLoading:
		// The host has no assets of its own to load.
		if gm.clientManager.AllLoaded() {
			if err := gm.session.SetNext(session.ScreenHostingGame); err != nil {
				log.Error("Failed to queue hosting transition: %v", err)
			}
		}
	}
}

// respondToTransition runs screen enter/exit side effects. This is the
// only place the game session is initialized or torn down.
func (gm *GameManager) respondToTransition() {
	transition, ok := gm.session.Flush()
	if !ok {
		return
	}
	log.Info("Screen %s -> %s", transition.From, transition.To)

	if transition.From == session.ScreenHostingGame {
		gm.resetGame()
	}
	if transition.To == session.ScreenHostingGame {
		gm.initGame()
	}
}

// initGame builds the player registry, shuffles the play order, and
// creates the shared pools for a fresh session.
func (gm *GameManager) initGame() {
	factionsInPlay := append([]types.Faction(nil), types.Factions...)

	gm.gameState = types.NewGameState()
	for _, faction := range factionsInPlay {
		player := types.NewPlayerState(faction, gm.ruleData.Leaders)
		player.ReserveTroops = 20
		gm.gameState.Players = append(gm.gameState.Players, player)
	}
	gm.rng.Shuffle(len(gm.gameState.Players), func(i, j int) {
		gm.gameState.Players[i], gm.gameState.Players[j] = gm.gameState.Players[j], gm.gameState.Players[i]
	})

	gm.pools = decks.NewPools(gm.ruleData, gm.rng)
	gm.actionStack = stack.New()
	gm.phases = NewPhaseMachine(NewPhaseMachineOptions{
		RuleData:     gm.ruleData,
		Rand:         gm.rng,
		Presenter:    gm.presenter,
		StormEffects: gm.stormEffects,
	})

	if boardCamera, err := gm.ruleData.CameraNode("board"); err == nil {
		gm.camera = boardCamera
	}

	log.Info("Game started with play order: %v", gm.gameState.FactionsInPlay())
}

// resetGame fully reinitializes the session state so nothing leaks into
// the next game.
func (gm *GameManager) resetGame() {
	if gm.saveSnapshotChan != nil {
		// Save the final state of the session before tearing it down.
		gm.saveSnapshotChan <- workers.SaveSnapshotRequest{Status: gm.currentStatus()}
	}
	gm.gameState = types.NewGameState()
	gm.pools = nil
	gm.phases = nil
	gm.actionStack = stack.New()
	gm.camera = kinematic.Transform{}
	log.Info("Game session reset")
}

// broadcastServerInfo sends the current roster to every connected client.
func (gm *GameManager) broadcastServerInfo() {
	gm.broadcast(messages.NewServerInfo(gm.clientManager.Names()))
}

func (gm *GameManager) broadcast(msg *messages.Message) {
	for _, client := range gm.clientManager.GetClients() {
		if err := network.WriteMessageToWS(client.WSConn, msg); err != nil {
			log.Error("Failed to write message to client %d: %v", client.ID, err)
		}
	}
}

// currentStatus builds a copy of the current session state.
func (gm *GameManager) currentStatus() *state.Status {
	status := &state.Status{
		SessionID: gm.sessionID,
		Screen:    gm.session.Screen().String(),
		Turn:      gm.gameState.Turn,
		Players:   gm.clientManager.Names(),
		GameState: gm.gameState.Copy(),
	}
	if gm.phases != nil {
		phase, subPhase := gm.phases.Phase()
		status.Phase = phase.String()
		status.SubPhase = subPhase.String()
	}
	return status
}

// publishState exposes a copy of the current session state for the API
// server and the snapshot worker.
func (gm *GameManager) publishState(ctx context.Context) error {
	if err := gm.stateManager.Set(ctx, gm.currentStatus()); err != nil {
		return fmt.Errorf("failed to publish state: %v", err)
	}
	return nil
}
