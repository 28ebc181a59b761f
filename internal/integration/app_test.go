package integration_test

import (
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/esim-marketplace/internal/app"
	"github.com/metinatakli/esim-marketplace/internal/checkout"
	"github.com/metinatakli/esim-marketplace/internal/mailer"
	"github.com/metinatakli/esim-marketplace/internal/payment"
	"github.com/metinatakli/esim-marketplace/internal/repository"
	appvalidator "github.com/metinatakli/esim-marketplace/internal/validator"
	"github.com/redis/go-redis/v9"
)

type TestApp struct {
	App         *app.Application
	DB          *pgxpool.Pool
	RedisClient *redis.Client
	Mailer      *mailer.MockMailer
	Sessions    *payment.StubSessions
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	validator := appvalidator.NewValidator()
	mailer := mailer.NewMockMailer()
	sessions := payment.NewStubSessions()

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	checkoutRepo := repository.NewPostgresCheckoutRepository(db)
	orderRepo := repository.NewPostgresOrderRepository(db)
	esimRepo := repository.NewPostgresESimRepository(db)

	paymentProvider := payment.NewStripePaymentProvider(
		checkoutRepo,
		orderRepo,
		redisClient,
		mailer,
		logger,
		cfg.Stripe.WebhookSecret,
		payment.WithSessionGetter(sessions.Get),
	)

	resolver := checkout.NewResolver(checkoutRepo, paymentProvider, checkout.WithVerifyTimeout(cfg.VerifyTimeout))

	application := app.NewApp(
		cfg,
		logger,
		validator,
		checkoutRepo,
		esimRepo,
		resolver,
		paymentProvider,
	)

	return &TestApp{
		App:         application,
		DB:          db,
		RedisClient: redisClient,
		Mailer:      mailer,
		Sessions:    sessions,
	}, nil
}
