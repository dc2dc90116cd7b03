package integration

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	"words-of-healing/internal/app"
	"words-of-healing/internal/content"
	"words-of-healing/internal/domain"
	infrapg "words-of-healing/internal/infra/postgres"
	pgmigrations "words-of-healing/internal/infra/postgres/migrations"
	infraredis "words-of-healing/internal/infra/redis"
)

func TestPlayLevelEndToEnd(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	migrateDB(t, ctx, pgURL)

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	redisClient, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}
	defer redisClient.Close()

	// Production wiring: redis carries the shared unlock state and its push
	// channel, postgres holds the durable leaderboard.
	gameState := infraredis.NewStore(redisClient)
	participants := infrapg.NewStore(pool)

	syncCtx, cancelSync := context.WithCancel(ctx)
	defer cancelSync()
	unlockSync := app.NewUnlockSync(gameState, app.DefaultSyncPoll)
	go unlockSync.Run(syncCtx)

	host := app.NewHostService(unlockSync, participants, "hunter2")

	session, err := app.NewSession("Alice", "North")
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	timing := app.Timing{
		LockPoll: 10 * time.Millisecond,
		NextPoll: 10 * time.Millisecond,
		Feedback: 10 * time.Millisecond,
		Tick:     time.Second,
	}
	controller := app.NewController(session, unlockSync, app.NewRankResolver(participants), participants, content.NewProvider(), timing)
	events := controller.Events()

	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()
	go controller.Run(runCtx)

	waitEvent(t, events, app.EventLocked)

	// Host opens level 1; the unlock must reach the controller through the
	// redis push channel.
	if _, err := host.SetLevelOpen(ctx, 1, true); err != nil {
		t.Fatalf("set level open: %v", err)
	}
	waitEvent(t, events, app.EventLevelStarted)

	puzzle, err := content.NewProvider().PuzzleForLevel(1)
	if err != nil {
		t.Fatalf("puzzle: %v", err)
	}
	texts := make([]string, len(puzzle.Fragments))
	for i, f := range puzzle.Fragments {
		texts[i] = f.Text
	}
	controller.Submit(domain.Answer{FragmentTexts: texts})

	feedback := waitEvent(t, events, app.EventFeedback)
	if feedback.Record == nil || !feedback.Record.Correct {
		t.Fatalf("expected correct feedback, got %+v", feedback.Record)
	}
	waitEvent(t, events, app.EventWaitingNext)

	// The fire-and-forget upsert must land in postgres.
	deadline := time.Now().Add(5 * time.Second)
	for {
		records, err := host.Leaderboard(ctx)
		if err != nil {
			t.Fatalf("leaderboard: %v", err)
		}
		if len(records) == 1 && records[0].IntroScore == feedback.Record.Score {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("leaderboard row never landed: %+v", records)
		}
		time.Sleep(25 * time.Millisecond)
	}

	if err := host.Wipe(ctx, "hunter2"); err != nil {
		t.Fatalf("wipe: %v", err)
	}
	records, err := host.Leaderboard(ctx)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("rows survived wipe: %+v", records)
	}
}

func TestUnlockStateSurvivesInPostgres(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	migrateDB(t, ctx, pgURL)

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	store := infrapg.NewStore(pool)
	written := domain.NewUnlockState().WithOpen(2, true).WithOpen(5, true)
	if err := store.WriteUnlockState(ctx, written); err != nil {
		t.Fatalf("write: %v", err)
	}
	read, err := store.ReadUnlockState(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !read.Equal(written) {
		t.Fatalf("round trip mismatch: %v vs %v", read, written)
	}
}

func waitEvent(t *testing.T, events <-chan app.Event, want app.EventType) app.Event {
	t.Helper()
	deadline := time.After(15 * time.Second)
	for {
		select {
		case event, ok := <-events:
			if !ok {
				t.Fatalf("event stream closed waiting for %s", want)
			}
			if event.Type == want {
				return event
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s", want)
		}
	}
}

func migrateDB(t *testing.T, ctx context.Context, dsn string) {
	t.Helper()
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("migrator init: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "game", "POSTGRES_PASSWORD": "gamepass", "POSTGRES_DB": "gamedb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://game:gamepass@%s:%s/gamedb?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start redis: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	url := fmt.Sprintf("redis://%s:%s", host, port.Port())
	return url, func() {
		_ = container.Terminate(ctx)
	}
}

func redisClientFromURL(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	}), nil
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
