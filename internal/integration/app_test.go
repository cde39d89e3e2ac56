package integration_test

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/seat-inventory/internal/app"
	"github.com/redis/go-redis/v9"
)

type TestApp struct {
	App         *app.Application
	Handler     http.Handler
	DB          *pgxpool.Pool
	RedisClient *redis.Client
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	application, err := app.NewApp(cfg, logger, db, redisClient)
	if err != nil {
		db.Close()
		redisClient.Close()
		return nil, err
	}

	return &TestApp{
		App:         application,
		Handler:     application.Routes(),
		DB:          db,
		RedisClient: redisClient,
	}, nil
}

// restart builds a fresh application, with an empty in-memory inventory, on
// top of the same database and cache.
func (a *TestApp) restart(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	application, err := app.NewApp(cfg, logger, a.DB, a.RedisClient)
	if err != nil {
		return nil, err
	}

	return &TestApp{
		App:         application,
		Handler:     application.Routes(),
		DB:          a.DB,
		RedisClient: a.RedisClient,
	}, nil
}

func (a *TestApp) Close() {
	a.RedisClient.Close()
	a.DB.Close()
}
