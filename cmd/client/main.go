package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cbodonnell/melange/pkg/log"
	"github.com/cbodonnell/melange/pkg/messages"
	"github.com/cbodonnell/melange/pkg/network"
	"github.com/cbodonnell/melange/pkg/queue"
	"github.com/cbodonnell/melange/pkg/session"
	"github.com/cbodonnell/melange/pkg/version"
)

func main() {
	serverURL := flag.String("server-url", "ws://localhost:8888", "WebSocket URL of the host")
	name := flag.String("name", "", "Display name to join with")
	logLevel := flag.String("log-level", "info", "Log level")
	loadTime := flag.Duration("load-time", 2*time.Second, "Simulated asset loading time")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)

	log.Info("Starting client version %s", version.Get())
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	messageQueue := queue.NewInMemoryQueue(1000)
	networkManager, err := network.NewClientNetworkManager(network.NewClientNetworkManagerOptions{
		ServerURL:    *serverURL,
		Name:         *name,
		MessageQueue: messageQueue,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to create network manager: %v", err))
	}

	sess := session.New()
	sess.OverwriteNext(session.ScreenJoin)

	updateInterval := 100 * time.Millisecond
	ticker := time.NewTicker(updateInterval)
	defer ticker.Stop()

	var loadingDone <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			networkManager.Stop()
			sess.Reset()
			log.Info("Client exiting")
			return
		case <-ticker.C:
		}

		// State-change stage: apply inbound messages in arrival order, then
		// run client-local screen logic.
		pending, err := messageQueue.ReadAllMessages()
		if err != nil {
			log.Error("Failed to read server messages: %v", err)
			continue
		}
		for _, item := range pending {
			msg, ok := item.(*messages.Message)
			if !ok {
				log.Error("unexpected item in message queue: %T", item)
				continue
			}
			if err := sess.Apply(msg); err != nil {
				log.Error("Failed to apply message: %v", err)
			}
		}

		switch sess.Screen() {
		case session.ScreenServer:
			log.Debug("In lobby with players: %v", sess.Players())
		case session.ScreenLoading:
			if loadingDone != nil {
				select {
				case <-loadingDone:
					loadingDone = nil
					if err := networkManager.Send(messages.NewLoaded()); err != nil {
						log.Error("Failed to send loaded message: %v", err)
						continue
					}
					if err := sess.SetNext(session.ScreenJoinedGame); err != nil {
						log.Error("Failed to queue joined transition: %v", err)
					}
				default:
				}
			}
		}

		// Response stage: run screen enter/exit side effects.
		transition, ok := sess.Flush()
		if !ok {
			continue
		}
		log.Info("Screen %s -> %s", transition.From, transition.To)

		switch transition.To {
		case session.ScreenJoin:
			if err := networkManager.Start(ctx); err != nil {
				log.Error("Failed to connect to %s: %v", *serverURL, err)
				cancel()
				continue
			}
			sess.OverwriteNext(session.ScreenServer)
		case session.ScreenLoading:
			loadingDone = time.After(*loadTime)
		case session.ScreenJoinedGame:
			log.Info("Joined game with players: %v", sess.Players())
		}
	}
}
