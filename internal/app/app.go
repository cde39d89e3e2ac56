package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/exaring/otelpgx"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/metinatakli/seat-inventory/api"
	"github.com/metinatakli/seat-inventory/internal/booking"
	"github.com/metinatakli/seat-inventory/internal/domain"
	"github.com/metinatakli/seat-inventory/internal/events"
	"github.com/metinatakli/seat-inventory/internal/inventory"
	appmiddleware "github.com/metinatakli/seat-inventory/internal/middleware"
	"github.com/metinatakli/seat-inventory/internal/repository"
	appvalidator "github.com/metinatakli/seat-inventory/internal/validator"
	"github.com/metinatakli/seat-inventory/internal/vcs"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/riandyrn/otelchi"
	"golang.org/x/sync/errgroup"
)

const serviceName = "seat-inventory"

var (
	version = vcs.Version()
)

// BookingService is the part of booking.Coordinator the HTTP layer drives.
type BookingService interface {
	OpenShow(ctx context.Context, showID string) (*domain.ShowInventory, error)
	Book(ctx context.Context, showID string, seatIDs []string, holdTimeout time.Duration) (*domain.Booking, error)
	BulkBook(ctx context.Context, showID string, seatSets [][]string, holdTimeout time.Duration) []booking.BookResult
	Cancel(ctx context.Context, bookingID string) error
	BulkCancel(ctx context.Context, bookingIDs []string) []booking.CancelResult
	Booking(bookingID string) (domain.Booking, error)
	HoldSeats(ctx context.Context, showID string, seatIDs []string, holdTimeout time.Duration) (*domain.SeatHold, error)
	ConfirmHold(ctx context.Context, holdID string) (*domain.Booking, error)
	ReleaseHold(ctx context.Context, holdID string) error
}

// SeatReader serves read-only seat maps.
type SeatReader interface {
	Show(showID string) (domain.Show, error)
	ListSeats(showID string) ([]domain.Seat, error)
	ListAvailable(showID string) ([]domain.Seat, error)
}

type Application struct {
	config    Config
	logger    *slog.Logger
	db        *pgxpool.Pool
	redis     redis.UniversalClient
	validator *validator.Validate

	seats      SeatReader
	bookings   BookingService
	supervisor *inventory.HoldSupervisor
	openapi    routers.Router
}

type Config struct {
	Port             int
	Env              string
	OtelCollectorUrl string
	LogFile          string
	DB               DBConfig
	Redis            RedisConfig
	Inventory        InventoryConfig
	Pricing          PricingConfig
}

type DBConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleTime  time.Duration
}

type RedisConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
	Stream       string
	StreamMaxLen int64
}

type InventoryConfig struct {
	LockTimeout        time.Duration
	SweepInterval      time.Duration
	SweepLockTimeout   time.Duration
	DefaultHoldTimeout time.Duration
	MaxHoldTimeout     time.Duration
}

type PricingConfig struct {
	Policy               string
	GroupDiscountPercent float64
	GroupMinSeats        int
	NthTicket            int
	NthTicketPercent     float64
	MatineeFrom          time.Duration
	MatineeTo            time.Duration
	MatineePercent       float64
}

func Run() error {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	var cfg Config

	port, err := envInt("PORT", 3000)
	if err != nil {
		return err
	}

	flag.IntVar(&cfg.Port, "port", port, "server port")
	flag.StringVar(&cfg.Env, "env", envString("ENV", "dev"), "Environment (dev|staging|prod)")
	flag.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", os.Getenv("OTEL_COLLECTOR_URL"), "OpenTelemetry collector gRPC endpoint")
	flag.StringVar(&cfg.LogFile, "log-file", os.Getenv("LOG_FILE"), "Also write JSON logs to this file, rotated")

	flag.StringVar(&cfg.DB.DSN, "db-dsn", os.Getenv("DB_DSN"), "PostgreSQL DSN")
	flag.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", 25, "PostgreSQL max open connections")
	flag.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", 15*time.Minute, "PostgreSQL max idle time for connections")

	flag.StringVar(&cfg.Redis.URL, "redis-url", os.Getenv("REDIS_URL"), "Redis URL, events are not published when empty")
	flag.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", 25, "Redis max open connections")
	flag.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", 10, "Redis max idle connections")
	flag.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", 2*time.Minute, "Redis max idle time for connections")
	flag.StringVar(&cfg.Redis.Stream, "redis-stream", events.DefaultStream, "Redis stream booking events are published to")
	flag.Int64Var(&cfg.Redis.StreamMaxLen, "redis-stream-max-len", events.DefaultMaxLen, "Approximate maximum length of the event stream")

	flag.DurationVar(&cfg.Inventory.LockTimeout, "lock-timeout", booking.DefaultLockTimeout, "Maximum wait for the seat locks of a transaction")
	flag.DurationVar(&cfg.Inventory.SweepInterval, "sweep-interval", inventory.DefaultSweepInterval, "Interval between expired hold sweeps")
	flag.DurationVar(&cfg.Inventory.SweepLockTimeout, "sweep-lock-timeout", inventory.DefaultSweepLockTimeout, "Maximum wait for a seat lock during a sweep")
	flag.DurationVar(&cfg.Inventory.DefaultHoldTimeout, "default-hold-timeout", booking.DefaultHoldTimeout, "Hold timeout used when a request does not set one")
	flag.DurationVar(&cfg.Inventory.MaxHoldTimeout, "max-hold-timeout", booking.DefaultMaxHoldTimeout, "Largest hold timeout a request may ask for")

	flag.StringVar(&cfg.Pricing.Policy, "pricing-policy", "additive", "Discount combination policy (additive|compound|best)")
	flag.Float64Var(&cfg.Pricing.GroupDiscountPercent, "group-discount-percent", 0, "Percent off orders of at least -group-min-seats seats")
	flag.IntVar(&cfg.Pricing.GroupMinSeats, "group-min-seats", 4, "Seats needed for the group discount")
	flag.IntVar(&cfg.Pricing.NthTicket, "nth-ticket", 0, "Discount every Nth ticket, cheapest first")
	flag.Float64Var(&cfg.Pricing.NthTicketPercent, "nth-ticket-percent", 0, "Percent off every Nth ticket")
	flag.DurationVar(&cfg.Pricing.MatineeFrom, "matinee-from", 12*time.Hour, "Start of the matinee window as time of day")
	flag.DurationVar(&cfg.Pricing.MatineeTo, "matinee-to", 17*time.Hour, "End of the matinee window as time of day")
	flag.Float64Var(&cfg.Pricing.MatineePercent, "matinee-percent", 0, "Percent off shows starting inside the matinee window")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	logger, closeLog := newLogger(cfg, os.Stdout)
	defer closeLog()

	shutdownTelemetry, err := initTelemetry(cfg, logger)
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	if cfg.OtelCollectorUrl != "" {
		logger = withOtelLogs(logger)
	}

	db, err := NewDatabasePool(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		redisClient, err = NewRedisClient(cfg)
		if err != nil {
			return err
		}
		defer redisClient.Close()
	} else {
		logger.Warn("redis URL not set, booking events will not be published")
	}

	app, err := NewApp(cfg, logger, db, redisClient)
	if err != nil {
		return err
	}

	return app.run()
}

// NewApp wires the seat inventory, the booking coordinator and the hold
// supervisor. db and redisClient may be nil; without a database shows cannot
// be opened and without Redis events are dropped.
func NewApp(cfg Config, logger *slog.Logger, db *pgxpool.Pool, redisClient *redis.Client) (*Application, error) {
	engine, err := newPricingEngine(cfg.Pricing)
	if err != nil {
		return nil, err
	}

	openapi, err := newOpenAPIRouter()
	if err != nil {
		return nil, err
	}

	store := inventory.NewSeatStore()
	locks := inventory.NewLockManager()

	opts := []booking.Option{
		booking.WithLockTimeout(cfg.Inventory.LockTimeout),
		booking.WithHoldTimeouts(cfg.Inventory.DefaultHoldTimeout, cfg.Inventory.MaxHoldTimeout),
	}

	if db != nil {
		opts = append(opts,
			booking.WithCatalog(repository.NewPostgresCatalogRepository(db)),
			booking.WithJournal(repository.NewPostgresBookingJournal(db)),
		)
	}

	app := &Application{
		config:    cfg,
		logger:    logger,
		db:        db,
		validator: appvalidator.NewValidator(),
		seats:     store,
		openapi:   openapi,
	}

	if redisClient != nil {
		app.redis = redisClient
		opts = append(opts, booking.WithPublisher(
			events.NewRedisStreamPublisher(redisClient, cfg.Redis.Stream, cfg.Redis.StreamMaxLen),
		))
	} else {
		opts = append(opts, booking.WithPublisher(events.NopPublisher{}))
	}

	coordinator := booking.NewCoordinator(store, locks, engine, logger, opts...)
	app.bookings = coordinator

	app.supervisor = inventory.NewHoldSupervisor(store, locks, logger,
		inventory.WithSweepInterval(cfg.Inventory.SweepInterval),
		inventory.WithSweepLockTimeout(cfg.Inventory.SweepLockTimeout),
		inventory.WithReclaimHook(coordinator.HoldReclaimed),
	)

	return app, nil
}

func NewRedisClient(cfg Config) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		// plain host:port addresses are accepted as well
		opts = &redis.Options{Addr: cfg.Redis.URL}
	}

	opts.MaxIdleConns = cfg.Redis.MaxIdleConns
	opts.MaxActiveConns = cfg.Redis.MaxOpenConns
	opts.ConnMaxIdleTime = cfg.Redis.MaxIdleTime

	rdb := redis.NewClient(opts)

	if err := redisotel.InstrumentTracing(rdb); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("instrument redis tracing: %w", err)
	}

	if err := redisotel.InstrumentMetrics(rdb); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("instrument redis metrics: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = rdb.Ping(ctx).Err()
	if err != nil {
		rdb.Close()
		return nil, err
	}

	return rdb, nil
}

func NewDatabasePool(cfg Config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.DB.MaxIdleTime
	config.MaxConns = int32(cfg.DB.MaxOpenConns)
	config.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func newOpenAPIRouter() (routers.Router, error) {
	swagger, err := api.GetSwagger()
	if err != nil {
		return nil, err
	}

	// match on paths only, whatever host the service is reached through
	swagger.Servers = nil

	router, err := legacy.NewRouter(swagger)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}

	return router, nil
}

// run serves HTTP and sweeps expired holds until SIGINT or SIGTERM, then
// shuts both down.
func (app *Application) run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return app.supervisor.Run(gctx)
	})

	g.Go(func() error {
		app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env, "version", version)

		err := srv.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		app.logger.Info("shutting down server", "addr", srv.Addr)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)
	r.MethodNotAllowed(app.methodNotAllowedResponse)

	r.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(r)))
	r.Use(middleware.Logger)
	r.Use(middleware.RequestID)
	r.Use(appmiddleware.RecoverPanic(app.logger))
	r.Use(app.requestLogger)
	r.Use(appmiddleware.ValidateRequest(app.openapi, app.invalidParameterResponse))

	return api.HandlerWithOptions(app, api.ChiServerOptions{
		BaseRouter:       r,
		ErrorHandlerFunc: app.invalidParameterResponse,
	})
}

func envString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}

	return fallback
}

// envInt returns fallback only when key is unset or empty. A value that is not
// an integer is an error, like a malformed flag value.
func envInt(key string, fallback int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q for environment variable %s: %w", v, key, err)
	}

	return n, nil
}
