package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"domoreserva/internal/app/commands"
	"domoreserva/internal/app/events"
	availabilityapp "domoreserva/internal/app/handlers/availability"
	pricingapp "domoreserva/internal/app/handlers/pricing"
	reservationapp "domoreserva/internal/app/handlers/reservation"
	unitsapp "domoreserva/internal/app/handlers/units"
	"domoreserva/internal/app/middleware"
	"domoreserva/internal/app/queries"
	domainpricing "domoreserva/internal/domain/pricing"
	domainreservation "domoreserva/internal/domain/reservation"
	domainunits "domoreserva/internal/domain/units"
	"domoreserva/internal/infra/broker/kafka"
	"domoreserva/internal/infra/config"
	"domoreserva/internal/infra/db/mongo"
	ginserver "domoreserva/internal/infra/http/gin"
	"domoreserva/internal/infra/notify"
	"domoreserva/internal/infra/obs"
	"domoreserva/internal/infra/security"
	"domoreserva/internal/infra/storage/memory"
	"domoreserva/internal/infra/storage/s3"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.Env)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("fatal", "error", err)
		os.Exit(1)
	}
}

type repositories struct {
	units        domainunits.Repository
	reservations domainreservation.Repository
	holidays     domainpricing.HolidayRepository
	discounts    domainpricing.DiscountRepository
	ready        func() error
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	repos, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return err
	}

	publisher, closeBroker, err := buildPublisher(cfg, logger)
	if err != nil {
		return err
	}
	defer closeBroker()

	photos := buildPhotoStore(cfg, logger)
	links := notify.WhatsAppLinker{Phone: cfg.WhatsAppPhone}

	queryBus, commandBus := buildBuses(repos, publisher, links, logger)

	metrics := obs.NewMetrics()
	handlers := ginserver.Handlers{
		Units:        ginserver.UnitHandler{Queries: queryBus},
		Availability: ginserver.AvailabilityHandler{Queries: queryBus},
		Quote:        ginserver.QuoteHandler{Queries: queryBus, Metrics: metrics},
		Reservation:  ginserver.ReservationHandler{Commands: commandBus, Metrics: metrics},
		RateLimit:    ginserver.RateLimitByIP(cfg.RateLimitPerSec, cfg.RateLimitBurst),
		Metrics:      metrics,
	}
	if cfg.AdminPassword != "" {
		credential, err := security.NewAdminCredential(cfg.AdminPassword, 0)
		if err != nil {
			return err
		}
		handlers.Admin = ginserver.AdminHandler{
			Commands:   commandBus,
			Queries:    queryBus,
			Credential: credential,
			Sessions:   security.NewSessionStore(cfg.SessionTTL),
			Photos:     photos,
		}
	} else {
		logger.Warn("ADMIN_PASSWORD not set, admin surface disabled")
	}

	obsMW := obs.Middleware{Logger: logger}
	health := obs.HealthHandlers{Ready: repos.ready}
	server := ginserver.NewServer(cfg, obsMW, health, handlers)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", cfg.HTTPAddr, "store", cfg.Store)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func buildRepositories(ctx context.Context, cfg config.Config, logger *slog.Logger) (repositories, error) {
	if cfg.Store == "mongo" {
		client, err := mongo.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return repositories{}, err
		}
		if err := client.EnsureIndexes(ctx); err != nil {
			return repositories{}, err
		}
		logger.Info("mongo store ready", "database", cfg.MongoDB)
		return repositories{
			units:        mongo.NewUnitRepository(client.DB),
			reservations: mongo.NewReservationRepository(client.DB),
			holidays:     mongo.NewHolidayRepository(client.DB),
			discounts:    mongo.NewDiscountRepository(client.DB),
			ready:        func() error { return client.Ping(context.Background()) },
		}, nil
	}

	units := memory.NewUnitRepository()
	holidays := memory.NewHolidayRepository()
	if err := memory.Seed(ctx, units, holidays, cfg.Currency); err != nil {
		return repositories{}, err
	}
	logger.Info("memory store seeded")
	return repositories{
		units:        units,
		reservations: memory.NewReservationRepository(),
		holidays:     holidays,
		discounts:    memory.NewDiscountRepository(),
		ready:        func() error { return nil },
	}, nil
}

func buildPublisher(cfg config.Config, logger *slog.Logger) (events.Publisher, func(), error) {
	if len(cfg.KafkaBrokers) == 0 {
		return events.NopPublisher{}, func() {}, nil
	}
	producer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic, nil)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("kafka producer connected", "topic", cfg.KafkaTopic)
	closeFn := func() {
		if err := producer.Close(); err != nil {
			logger.Warn("kafka producer close failed", "error", err)
		}
	}
	return producer, closeFn, nil
}

func buildPhotoStore(cfg config.Config, logger *slog.Logger) s3.PhotoStore {
	if cfg.S3Endpoint == "" {
		return s3.NoopPhotoStore{}
	}
	client, err := s3.NewClient(cfg.S3Endpoint, cfg.S3UseSSL, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3PublicEndpoint, logger)
	if err != nil {
		logger.Warn("s3 unavailable, photo uploads disabled", "error", err)
		return s3.NoopPhotoStore{}
	}
	return client
}

func buildBuses(repos repositories, publisher events.Publisher, links notify.WhatsAppLinker, logger *slog.Logger) (queries.Bus, commands.Bus) {
	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler(queryBus, unitsapp.ListUnitsQuery{}.Key(), &unitsapp.ListUnitsHandler{
		Units: repos.units,
	})
	queries.RegisterHandler(queryBus, availabilityapp.GetCalendarQuery{}.Key(), &availabilityapp.GetCalendarHandler{
		Units:        repos.units,
		Reservations: repos.reservations,
		Logger:       logger,
	})
	queries.RegisterHandler(queryBus, pricingapp.QuotePriceQuery{}.Key(), &pricingapp.QuotePriceHandler{
		Units:     repos.units,
		Holidays:  repos.holidays,
		Discounts: repos.discounts,
		Logger:    logger,
	})
	queries.RegisterHandler(queryBus, reservationapp.ListReservationsQuery{}.Key(), &reservationapp.ListReservationsHandler{
		Reservations: repos.reservations,
		Units:        repos.units,
	})
	queries.RegisterHandler(queryBus, pricingapp.ListHolidaysQuery{}.Key(), &pricingapp.ListHolidaysHandler{
		Holidays: repos.holidays,
	})
	queries.RegisterHandler(queryBus, pricingapp.GetDiscountsQuery{}.Key(), &pricingapp.GetDiscountsHandler{
		Discounts: repos.discounts,
	})

	commandBus := commands.NewInMemoryBus()
	commands.RegisterHandler(commandBus, reservationapp.CreateReservationCommand{}.Key(), &reservationapp.CreateReservationHandler{
		Units:        repos.units,
		Reservations: repos.reservations,
		Holidays:     repos.holidays,
		Discounts:    repos.discounts,
		Events:       publisher,
		Links:        links,
		Logger:       logger,
	})
	commands.RegisterHandler(commandBus, reservationapp.CancelReservationCommand{}.Key(), &reservationapp.CancelReservationHandler{
		Reservations: repos.reservations,
		Events:       publisher,
		Logger:       logger,
	})
	commands.RegisterHandler(commandBus, unitsapp.UpdateUnitCommand{}.Key(), &unitsapp.UpdateUnitHandler{
		Units: repos.units,
	})
	commands.RegisterHandler(commandBus, pricingapp.AddHolidayCommand{}.Key(), &pricingapp.AddHolidayHandler{
		Holidays: repos.holidays,
	})
	commands.RegisterHandler(commandBus, pricingapp.RemoveHolidayCommand{}.Key(), &pricingapp.RemoveHolidayHandler{
		Holidays: repos.holidays,
	})
	commands.RegisterHandler(commandBus, pricingapp.UpdateDiscountsCommand{}.Key(), &pricingapp.UpdateDiscountsHandler{
		Discounts: repos.discounts,
	})

	wrappedQueries := middleware.ChainQueries(queryBus,
		middleware.LogQueries(logger),
	)
	wrappedCommands := middleware.ChainCommands(commandBus,
		middleware.LogCommands(logger),
		middleware.Idempotency(memory.NewIdempotencyStore(0), nil),
	)
	return wrappedQueries, wrappedCommands
}
