package game

import (
	"context"
	"testing"
	"time"

	"github.com/cbodonnell/melange/pkg/clients"
	"github.com/cbodonnell/melange/pkg/game/stack"
	"github.com/cbodonnell/melange/pkg/game/types"
	"github.com/cbodonnell/melange/pkg/messages"
	"github.com/cbodonnell/melange/pkg/queue"
	"github.com/cbodonnell/melange/pkg/session"
	"github.com/cbodonnell/melange/pkg/state"
	"github.com/cbodonnell/melange/pkg/workers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGameManager(t *testing.T, minPlayers int) *GameManager {
	t.Helper()
	return NewGameManager(NewGameManagerOptions{
		ClientManager:    clients.NewClientManager(),
		EventQueue:       queue.NewInMemoryQueue(100),
		StateManager:     state.NewInMemoryStateManager(),
		RuleData:         testRuleData(t),
		GameLoopInterval: 100 * time.Millisecond,
		MinPlayers:       minPlayers,
		Seed:             1,
	})
}

func TestGameManager_LobbyToHostingLifecycle(t *testing.T) {
	ctx := context.Background()
	gm := newTestGameManager(t, 0)
	gm.session.OverwriteNext(session.ScreenServer)

	// Tick 1: enter the lobby.
	require.NoError(t, gm.gameTick(ctx, time.Now()))
	assert.Equal(t, session.ScreenServer, gm.session.Screen())
	assert.Nil(t, gm.phases)

	// Tick 2: the table is full, queue the loading transition.
	require.NoError(t, gm.gameTick(ctx, time.Now()))
	assert.Equal(t, session.ScreenLoading, gm.session.Screen())

	// Tick 3: everyone has loaded, queue the hosting transition.
	require.NoError(t, gm.gameTick(ctx, time.Now()))
	assert.Equal(t, session.ScreenHostingGame, gm.session.Screen())

	// Entering the hosting screen initialized a fresh game.
	require.NotNil(t, gm.phases)
	require.NotNil(t, gm.pools)
	assert.Len(t, gm.gameState.Players, len(types.Factions))
	phase, subPhase := gm.phases.Phase()
	assert.Equal(t, types.PhaseSetup, phase)
	assert.Equal(t, types.SubPhaseChooseFactions, subPhase)

	boardCamera, err := gm.ruleData.CameraNode("board")
	require.NoError(t, err)
	assert.Equal(t, boardCamera, gm.Camera())

	// Every faction appears exactly once in the shuffled play order.
	seen := make(map[types.Faction]int)
	for _, faction := range gm.gameState.FactionsInPlay() {
		seen[faction]++
	}
	for _, faction := range types.Factions {
		assert.Equal(t, 1, seen[faction], "faction %s in play order", faction)
	}
}

func TestGameManager_LobbyWaitsForMinPlayers(t *testing.T) {
	ctx := context.Background()
	gm := newTestGameManager(t, 2)
	gm.session.OverwriteNext(session.ScreenServer)

	for i := 0; i < 5; i++ {
		require.NoError(t, gm.gameTick(ctx, time.Now()))
	}
	assert.Equal(t, session.ScreenServer, gm.session.Screen())
}

func TestGameManager_ResetOnLeavingHosting(t *testing.T) {
	ctx := context.Background()
	gm := newTestGameManager(t, 0)
	gm.session.OverwriteNext(session.ScreenServer)
	for i := 0; i < 3; i++ {
		require.NoError(t, gm.gameTick(ctx, time.Now()))
	}
	require.Equal(t, session.ScreenHostingGame, gm.session.Screen())
	require.NotNil(t, gm.phases)

	gm.session.OverwriteNext(session.ScreenMainMenu)
	gm.respondToTransition()

	assert.Nil(t, gm.phases)
	assert.Nil(t, gm.pools)
	assert.Empty(t, gm.gameState.Players)
	assert.True(t, gm.actionStack.IsEmpty())
}

func TestGameManager_SavesSnapshotOnReset(t *testing.T) {
	ctx := context.Background()
	gm := newTestGameManager(t, 0)
	saveSnapshotChan := make(chan workers.SaveSnapshotRequest, 1)
	gm.saveSnapshotChan = saveSnapshotChan
	gm.session.OverwriteNext(session.ScreenServer)
	for i := 0; i < 3; i++ {
		require.NoError(t, gm.gameTick(ctx, time.Now()))
	}
	require.Equal(t, session.ScreenHostingGame, gm.session.Screen())

	gm.session.OverwriteNext(session.ScreenMainMenu)
	gm.respondToTransition()

	// The final state of the session is handed to the snapshot worker
	// before the reset clears it.
	select {
	case request := <-saveSnapshotChan:
		require.NotNil(t, request.Status)
		assert.Equal(t, gm.SessionID(), request.Status.SessionID)
		assert.Equal(t, types.PhaseSetup.String(), request.Status.Phase)
		require.NotNil(t, request.Status.GameState)
		assert.Len(t, request.Status.GameState.Players, len(types.Factions))
	default:
		t.Fatal("expected a snapshot request when leaving the hosting screen")
	}
	assert.Nil(t, gm.phases)
	assert.Empty(t, gm.gameState.Players)
}

func TestGameManager_LateJoinerDroppedAfterLobbyCloses(t *testing.T) {
	ctx := context.Background()
	gm := newTestGameManager(t, 0)
	gm.session.OverwriteNext(session.ScreenServer)
	for i := 0; i < 2; i++ {
		require.NoError(t, gm.gameTick(ctx, time.Now()))
	}
	require.Equal(t, session.ScreenLoading, gm.session.Screen())

	clientID, err := gm.clientManager.AddClient("late", nil)
	require.NoError(t, err)
	require.NoError(t, gm.eventQueue.Enqueue(&types.ClientConnectEvent{
		ClientID: clientID,
		Name:     "late",
	}))

	// The late joiner never saw the load broadcast, so it is dropped
	// instead of stalling the loading screen.
	require.NoError(t, gm.gameTick(ctx, time.Now()))
	assert.False(t, gm.clientManager.Exists(clientID))
	assert.Equal(t, session.ScreenHostingGame, gm.session.Screen())
}

func TestGameManager_IgnoresMessagesFromDepartedClients(t *testing.T) {
	gm := newTestGameManager(t, 2)

	clientID, err := gm.clientManager.AddClient("paul", nil)
	require.NoError(t, err)
	gm.clientManager.RemoveClient(clientID)

	// A message queued before the disconnect is discarded once the client
	// is gone.
	require.NoError(t, gm.eventQueue.Enqueue(&types.ClientMessageEvent{
		ClientID: clientID,
		Message:  messages.NewLoaded(),
	}))
	gm.processEvents()
	assert.Empty(t, gm.clientManager.GetClients())

	// A registered client's message still lands.
	clientID, err = gm.clientManager.AddClient("chani", nil)
	require.NoError(t, err)
	require.NoError(t, gm.eventQueue.Enqueue(&types.ClientMessageEvent{
		ClientID: clientID,
		Message:  messages.NewLoaded(),
	}))
	gm.processEvents()
	assert.True(t, gm.clientManager.AllLoaded())
}

func TestGameManager_StackAdvancesBeforePhases(t *testing.T) {
	gm := newTestGameManager(t, 0)
	gm.initGame()

	phaseBefore, subPhaseBefore := gm.phases.Phase()
	gm.actionStack.Push(&stack.ButtonPress{})
	require.NoError(t, gm.advanceSimulation(0.1))

	// The pending action resolved; the phase machine did not move.
	assert.True(t, gm.actionStack.IsEmpty())
	phase, subPhase := gm.phases.Phase()
	assert.Equal(t, phaseBefore, phase)
	assert.Equal(t, subPhaseBefore, subPhase)

	// With the stack empty the phase machine dispatches.
	require.NoError(t, gm.advanceSimulation(0.1))
	_, subPhase = gm.phases.Phase()
	assert.NotEqual(t, subPhaseBefore, subPhase)
}

func TestGameManager_PublishState(t *testing.T) {
	ctx := context.Background()
	gm := newTestGameManager(t, 0)
	gm.session.OverwriteNext(session.ScreenServer)
	for i := 0; i < 3; i++ {
		require.NoError(t, gm.gameTick(ctx, time.Now()))
	}

	status, err := gm.stateManager.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.Equal(t, gm.SessionID(), status.SessionID)
	assert.Equal(t, session.ScreenHostingGame.String(), status.Screen)
	assert.Equal(t, types.PhaseSetup.String(), status.Phase)
	require.NotNil(t, status.GameState)
	assert.Len(t, status.GameState.Players, len(types.Factions))

	// The published state is a copy, not the live simulation state.
	status.GameState.Players[0].AddSpice(100)
	assert.NotEqual(t, status.GameState.Players[0].TotalSpice, gm.gameState.Players[0].TotalSpice)
}
