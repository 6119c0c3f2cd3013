package main

import (
	"context"
	"flag"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/cbodonnell/woodblock/pkg/api"
	"github.com/cbodonnell/woodblock/pkg/log"
	"github.com/cbodonnell/woodblock/pkg/network"
	"github.com/cbodonnell/woodblock/pkg/repositories"
	"github.com/cbodonnell/woodblock/pkg/state"
	"github.com/cbodonnell/woodblock/pkg/version"
	"github.com/cbodonnell/woodblock/pkg/workers"
)

func main() {
	apiPort := flag.Int("api-port", 9090, "HTTP API port to listen on")
	wsPort := flag.Int("ws-port", 9091, "WebSocket port to listen on")
	logLevel := flag.String("log-level", "info", "Log level")
	gridSize := flag.Int("grid-size", 10, "Board width and height")
	pieces := flag.Int("pieces", 3, "Number of pieces offered at a time")
	seed := flag.Int64("seed", 0, "Seed for shape generation (0 for time based)")
	sessionTTL := flag.Duration("session-ttl", time.Hour, "Discard sessions idle for longer than this")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	if *gridSize < 1 || *pieces < 1 {
		panic(fmt.Sprintf("Grid size and piece count must be positive, got %d and %d", *gridSize, *pieces))
	}

	log.Info("Starting woodblock server version %s", version.Get())
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connStr := os.Getenv("WOODBLOCK_DATABASE_URL")
	if connStr == "" {
		connStr = "sqlite://woodblock.db"
	}
	migrationsDir := os.Getenv("WOODBLOCK_MIGRATIONS_DIR")
	if migrationsDir == "" {
		migrationsDir = "./migrations"
	}

	repository, err := newRepository(ctx, connStr, migrationsDir)
	if err != nil {
		panic(fmt.Sprintf("Failed to create repository: %v", err))
	}
	defer repository.Close(context.Background())

	sessionManager := state.NewInMemorySessionManager(state.NewInMemorySessionManagerOptions{
		GridSize:         *gridSize,
		ActivePieceCount: *pieces,
		Seed:             *seed,
		Logger:           logger,
	})

	saveScoreChannelSize := 100
	saveScoreChan := make(chan workers.SaveScoreRequest, saveScoreChannelSize)
	saveScoreWorker := workers.NewSaveScoreWorker(workers.NewSaveScoreWorkerOptions{
		Repository:    repository,
		SaveScoreChan: saveScoreChan,
	})
	go saveScoreWorker.Start(ctx)

	pruneSessionsWorker := workers.NewPruneSessionsWorker(workers.NewPruneSessionsWorkerOptions{
		SessionManager: sessionManager,
		Interval:       time.Minute,
		MaxIdle:        *sessionTTL,
	})
	go pruneSessionsWorker.Start(ctx)

	apiServerOpts := api.NewAPIServerOptions{
		Port:           *apiPort,
		SessionManager: sessionManager,
		Repository:     repository,
		SaveScoreChan:  saveScoreChan,
	}
	wsServerOpts := network.NewWSServerOptions{
		Port:           *wsPort,
		SessionManager: sessionManager,
	}
	tlsCertFile := os.Getenv("WOODBLOCK_API_TLS_CERT_FILE")
	tlsKeyFile := os.Getenv("WOODBLOCK_API_TLS_KEY_FILE")
	if tlsCertFile != "" && tlsKeyFile != "" {
		apiServerOpts.TLS = &api.TLSConfig{
			CertFile: tlsCertFile,
			KeyFile:  tlsKeyFile,
		}
		wsServerOpts.TLS = &network.TLSConfig{
			CertFile: tlsCertFile,
			KeyFile:  tlsKeyFile,
		}
	}

	server := api.NewAPIServer(apiServerOpts)
	go server.Start()

	wsServer := network.NewWSServer(wsServerOpts)
	go wsServer.Start(ctx)

	<-ctx.Done()
	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		log.Error("Failed to stop server: %v", err)
	}
}

// newRepository picks the leaderboard storage from a connection string:
// sqlite://<file>, postgresql://... or memory://.
func newRepository(ctx context.Context, connStr string, migrationsDir string) (repositories.Repository, error) {
	u, err := url.Parse(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %v", err)
	}

	switch u.Scheme {
	case "sqlite":
		path := u.Host + u.Path
		return repositories.NewSQLiteRepository(ctx, path, filepath.Join(migrationsDir, "sqlite"))
	case "postgres", "postgresql":
		return repositories.NewPostgresRepository(ctx, u.String(), filepath.Join(migrationsDir, "postgres"))
	case "memory":
		return repositories.NewInMemoryRepository(), nil
	default:
		return nil, fmt.Errorf("unknown database type %s", u.Scheme)
	}
}
