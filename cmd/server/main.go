package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cbodonnell/melange/pkg/api"
	"github.com/cbodonnell/melange/pkg/clients"
	"github.com/cbodonnell/melange/pkg/game"
	"github.com/cbodonnell/melange/pkg/game/data"
	"github.com/cbodonnell/melange/pkg/log"
	"github.com/cbodonnell/melange/pkg/network"
	"github.com/cbodonnell/melange/pkg/queue"
	"github.com/cbodonnell/melange/pkg/repositories"
	"github.com/cbodonnell/melange/pkg/state"
	"github.com/cbodonnell/melange/pkg/version"
	"github.com/cbodonnell/melange/pkg/workers"
)

func main() {
	wsPort := flag.Int("ws-port", 8888, "WebSocket port to listen on")
	apiPort := flag.Int("api-port", 9090, "API port to listen on")
	logLevel := flag.String("log-level", "info", "Log level")
	minPlayers := flag.Int("min-players", 2, "Number of players required to start a game")
	sqlitePath := flag.String("sqlite-path", "melange.db", "Path to the SQLite database file")
	seed := flag.Int64("seed", 0, "RNG seed for the session (0 uses the current time)")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	log.Info("Starting server version %s", version.Get())
	ctx := context.Background()

	ruleData, err := data.Default()
	if err != nil {
		panic(fmt.Sprintf("Failed to load rule data: %v", err))
	}

	clientManager := clients.NewClientManager()
	eventQueue := queue.NewInMemoryQueue(10000)

	networkManager := network.NewHostNetworkManager(network.NewHostNetworkManagerOptions{
		Port:          *wsPort,
		ClientManager: clientManager,
		EventQueue:    eventQueue,
	})
	go networkManager.Start(ctx)

	var repository repositories.Repository
	if connStr := os.Getenv("DATABASE_URL"); connStr != "" {
		repository = repositories.NewPostgresRepository(ctx, connStr)
	} else {
		repository, err = repositories.NewSQLiteRepository(ctx, *sqlitePath)
		if err != nil {
			panic(fmt.Sprintf("Failed to open SQLite repository: %v", err))
		}
	}
	defer repository.Close(ctx)

	stateManager := state.NewInMemoryStateManager()
	saveSnapshotChannelSize := 100
	saveSnapshotChan := make(chan workers.SaveSnapshotRequest, saveSnapshotChannelSize)

	saveLoopInterval := 10 * time.Second
	saveGameStateWorker := workers.NewSaveGameStateWorker(workers.NewSaveGameStateWorkerOptions{
		Repository:       repository,
		SaveSnapshotChan: saveSnapshotChan,
		StateManager:     stateManager,
		Interval:         saveLoopInterval,
	})
	go saveGameStateWorker.Start(ctx)

	gameLoopInterval := 100 * time.Millisecond // 10 FPS
	gameManager := game.NewGameManager(game.NewGameManagerOptions{
		ClientManager:    clientManager,
		EventQueue:       eventQueue,
		StateManager:     stateManager,
		SaveSnapshotChan: saveSnapshotChan,
		RuleData:         ruleData,
		GameLoopInterval: gameLoopInterval,
		MinPlayers:       *minPlayers,
		Seed:             *seed,
	})

	apiServer := api.NewAPIServer(api.NewAPIServerOptions{
		Port:         *apiPort,
		StateManager: stateManager,
		Repository:   repository,
		SessionID:    gameManager.SessionID(),
	})
	go apiServer.Start()
	defer apiServer.Stop(ctx)

	log.Info("Starting game manager")
	if err := gameManager.Start(ctx); err != nil {
		log.Error("Game manager exited: %v", err)
	}
}
