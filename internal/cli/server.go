package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"words-of-healing/internal/app"
	"words-of-healing/internal/config"
	"words-of-healing/internal/content"
	"words-of-healing/internal/infra/memory"
	pgstore "words-of-healing/internal/infra/postgres"
	redisstore "words-of-healing/internal/infra/redis"
	transport "words-of-healing/internal/transport/http"
)

// defaultAdminPassword gates the leaderboard wipe when no config is given.
const defaultAdminPassword = "jaago"

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the event server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	// Unlock state prefers redis (it has the pub/sub push channel); the
	// poll loop covers the postgres- and memory-backed fallbacks.
	mem := memory.NewStore()
	var gameState app.GameStateStore = mem
	var participants app.ParticipantStore = mem
	switch {
	case redisClient != nil:
		store := redisstore.NewStore(redisClient)
		gameState = store
		participants = store
		if pool != nil {
			participants = pgstore.NewStore(pool)
		}
	case pool != nil:
		store := pgstore.NewStore(pool)
		gameState = store
		participants = store
	}

	adminPassword := cfg.Admin.Password
	if adminPassword == "" {
		adminPassword = defaultAdminPassword
	}

	unlockSync := app.NewUnlockSync(gameState, config.DurationOr(cfg.Sync.Poll, app.DefaultSyncPoll))
	syncCtx, stopSync := context.WithCancel(ctx)
	defer stopSync()
	go unlockSync.Run(syncCtx)

	ranks := app.NewRankResolver(participants)
	host := app.NewHostService(unlockSync, participants, adminPassword)
	wsHandler := transport.NewWSHandler(unlockSync, ranks, participants, content.NewProvider(), app.DefaultTiming())
	hostHandler := transport.NewHostHandler(host)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)
	hostHandler.Register(mux)

	server := &http.Server{
		Addr:        ":" + finalPort,
		Handler:     mux,
		ReadTimeout: 15 * time.Second,
		// No write timeout: websocket sessions span whole levels.
	}

	go func() {
		log.Printf("starting words-of-healing on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
