package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/exaring/otelpgx"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/esim-marketplace/api"
	"github.com/metinatakli/esim-marketplace/internal/checkout"
	"github.com/metinatakli/esim-marketplace/internal/domain"
	"github.com/metinatakli/esim-marketplace/internal/mailer"
	"github.com/metinatakli/esim-marketplace/internal/payment"
	"github.com/metinatakli/esim-marketplace/internal/repository"
	appvalidator "github.com/metinatakli/esim-marketplace/internal/validator"
	"github.com/metinatakli/esim-marketplace/internal/vcs"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/riandyrn/otelchi"
	"github.com/stripe/stripe-go/v82"
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

const serviceName = "esim-marketplace-api"

var (
	version = vcs.Version()
)

// StatusResolver produces the authoritative payment view of a checkout.
type StatusResolver interface {
	Resolve(ctx context.Context, checkoutID string) (*domain.ResolvedStatus, error)
}

// WebhookProcessor verifies and applies payment provider webhook deliveries.
type WebhookProcessor interface {
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

type Application struct {
	config    Config
	logger    *slog.Logger
	validator *validator.Validate

	checkoutRepo domain.CheckoutStore
	esimRepo     domain.ESimRepository

	resolver StatusResolver
	webhooks WebhookProcessor

	limiter *clientRateLimiter
}

type Config struct {
	Port             int
	Env              string
	DB               DBConfig
	Redis            RedisConfig
	SMTP             SMTPConfig
	Stripe           StripeConfig
	OtelCollectorUrl string
	VerifyTimeout    time.Duration
	Limiter          LimiterConfig
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
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

type LimiterConfig struct {
	Enabled bool
	RPS     float64
	Burst   int
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
}

func NewApp(
	cfg Config,
	logger *slog.Logger,
	validator *validator.Validate,
	checkoutRepo domain.CheckoutStore,
	esimRepo domain.ESimRepository,
	resolver StatusResolver,
	webhooks WebhookProcessor) *Application {

	app := &Application{
		config:       cfg,
		logger:       logger,
		validator:    validator,
		checkoutRepo: checkoutRepo,
		esimRepo:     esimRepo,
		resolver:     resolver,
		webhooks:     webhooks,
	}

	if cfg.Limiter.Enabled {
		app.limiter = newClientRateLimiter(cfg.Limiter.RPS, cfg.Limiter.Burst)
	}

	return app
}

func Run() error {
	var cfg Config

	flag.IntVar(&cfg.Port, "port", 3000, "server port")
	flag.StringVar(&cfg.Env, "env", "dev", "Environment (dev|staging|prod)")

	flag.StringVar(&cfg.DB.DSN, "db-dsn", "", "PostgreSQL DSN")
	flag.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", 25, "PostgreSQL max open connections")
	flag.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", 15*time.Minute, "PostgreSQL max idle time for connections")

	flag.StringVar(&cfg.Redis.URL, "redis-url", "", "Redis URL")
	flag.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", 25, "Redis max open connections")
	flag.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", 10, "Redis max idle connections")
	flag.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", 2*time.Minute, "Redis max idle time for connections")

	flag.StringVar(&cfg.SMTP.Host, "smtp-host", "sandbox.smtp.mailtrap.io", "SMTP host")
	flag.IntVar(&cfg.SMTP.Port, "smtp-port", 2525, "SMTP port")
	flag.StringVar(&cfg.SMTP.Username, "smtp-username", "", "SMTP username")
	flag.StringVar(&cfg.SMTP.Password, "smtp-password", "", "SMTP password")
	flag.StringVar(&cfg.SMTP.Sender, "smtp-sender", "eSIM Store <no-reply@esim.metinatakli.net>", "SMTP sender")

	flag.StringVar(&cfg.Stripe.SecretKey, "stripe-key", "", "Stripe secret key")
	flag.StringVar(&cfg.Stripe.WebhookSecret, "stripe-webhook-secret", "", "Stripe webhook secret")

	flag.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", "", "OpenTelemetry collector gRPC endpoint")
	flag.DurationVar(&cfg.VerifyTimeout, "verify-timeout", 10*time.Second, "Upper bound for a single payment verification call")

	flag.BoolVar(&cfg.Limiter.Enabled, "limiter-enabled", true, "Enable per-client rate limiting")
	flag.Float64Var(&cfg.Limiter.RPS, "limiter-rps", 5, "Rate limiter maximum requests per second")
	flag.IntVar(&cfg.Limiter.Burst, "limiter-burst", 10, "Rate limiter maximum burst")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	stripe.Key = cfg.Stripe.SecretKey

	logger := slog.New(NewMultiHandler(
		slog.NewTextHandler(os.Stdout, nil),
		otelslog.NewHandler(serviceName),
	))

	app := &Application{config: cfg, logger: logger}

	shutdownTelemetry, err := app.InitTelemetry()
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	db, err := NewDatabasePool(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient, err := NewRedisClient(cfg)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	smtpMailer := mailer.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.Sender)

	checkoutRepo := repository.NewPostgresCheckoutRepository(db)
	orderRepo := repository.NewPostgresOrderRepository(db)
	esimRepo := repository.NewPostgresESimRepository(db)

	stripeProvider := payment.NewStripePaymentProvider(
		checkoutRepo,
		orderRepo,
		redisClient,
		smtpMailer,
		logger,
		cfg.Stripe.WebhookSecret,
	)

	resolver := checkout.NewResolver(checkoutRepo, stripeProvider, checkout.WithVerifyTimeout(cfg.VerifyTimeout))

	app = NewApp(
		cfg,
		logger,
		appvalidator.NewValidator(),
		checkoutRepo,
		esimRepo,
		resolver,
		stripeProvider,
	)

	return app.run()
}

func NewRedisClient(cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	err := errors.Join(redisotel.InstrumentTracing(rdb), redisotel.InstrumentMetrics(rdb))
	if err != nil {
		rdb.Close()
		return nil, err
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

func (app *Application) run() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10*time.Second + app.config.VerifyTimeout,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		shutdownError <- srv.Shutdown(ctx)
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
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
	r.Use(middleware.RequestID)
	r.Use(app.logRequest)
	r.Use(app.recoverPanic)
	r.Use(app.rateLimit)

	r.Get("/openapi.json", app.GetOpenAPISpec)

	api.HandlerWithOptions(app, api.ChiServerOptions{
		BaseRouter: r,
		ErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
			app.badRequestResponse(w, r, err)
		},
	})

	return r
}
