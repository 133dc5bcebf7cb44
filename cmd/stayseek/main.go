package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stayseek/internal/app/commands"
	propertyapp "stayseek/internal/app/handlers/properties"
	"stayseek/internal/app/queries"
	authsvc "stayseek/internal/app/services/auth"
	domainauth "stayseek/internal/domain/auth"
	"stayseek/internal/domain/property"
	domainuser "stayseek/internal/domain/user"
	"stayseek/internal/infra/broker/kafka"
	"stayseek/internal/infra/config"
	mongodb "stayseek/internal/infra/db/mongo"
	ginserver "stayseek/internal/infra/http/gin"
	"stayseek/internal/infra/obs"
	"stayseek/internal/infra/security"
	"stayseek/internal/infra/storage/memory"
	"stayseek/internal/infra/storage/s3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := getenv("APP_ENV", "dev")
	logger := obs.NewLogger(env)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration invalid", "error", err)
		os.Exit(1)
	}

	app, err := buildApplication(ctx, cfg, logger)
	if err != nil {
		logger.Error("application wiring failed", "error", err)
		os.Exit(1)
	}

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: app.ready,
	}, app.handlers)

	if app.storeKind == "memory" {
		fixturesPath := getenv("PROPERTY_FIXTURES", "fixtures/properties.json")
		if err := app.loadPropertyFixtures(ctx, fixturesPath, logger); err != nil {
			logger.Warn("property fixtures load failed", "error", err, "path", fixturesPath)
		}
	}

	if app.consumer != nil {
		go func() {
			logger.Info("booking events consumer starting", "topic", cfg.BookingTopic, "group", cfg.KafkaGroupID)
			if err := app.consumer.Run(ctx, []string{cfg.BookingTopic}); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("booking events consumer stopped", "error", err)
			}
		}()
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
		if app.consumer != nil {
			if err := app.consumer.Close(); err != nil {
				logger.Error("consumer close failed", "error", err)
			}
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "store", app.storeKind)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers  ginserver.Handlers
	consumer  *kafka.Consumer
	storeKind string
	ready     func() error
	memProps  *memory.PropertyRepository
}

func buildApplication(ctx context.Context, cfg config.Config, logger *slog.Logger) (application, error) {
	app := application{ready: func() error { return nil }}

	var (
		propertyStore property.Repository
		categoryStore property.CategoryRepository
		bookingSink   property.BookingSink
		userStore     domainuser.Repository
		sessionStore  domainauth.SessionStore
	)

	if cfg.MongoURI != "" {
		client, err := mongodb.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return application{}, fmt.Errorf("mongo connect: %w", err)
		}
		props := mongodb.NewPropertyRepository(client.DB)
		propertyStore = props
		bookingSink = props
		categoryStore = mongodb.NewCategoryRepository(client.DB)
		userStore = mongodb.NewUserRepository(client.DB)
		sessionStore = mongodb.NewSessionStore(client.DB)
		app.storeKind = "mongo"
		app.ready = func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return client.Ping(pingCtx)
		}
	} else {
		logger.Warn("MONGO_URI not set, running on in-memory storage")
		props := memory.NewPropertyRepository()
		propertyStore = props
		bookingSink = props
		categoryStore = props
		userStore = memory.NewUserRepository()
		sessionStore = memory.NewSessionStore()
		app.storeKind = "memory"
		app.memProps = props
	}

	authService := &authsvc.Service{
		Users:      userStore,
		Sessions:   sessionStore,
		Passwords:  security.BcryptHasher{Cost: cfg.BcryptCost},
		Tokens:     security.RandomTokenGenerator{},
		SessionTTL: cfg.SessionTTL,
		Logger:     logger,
	}

	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler(queryBus, propertyapp.SearchPropertiesQuery{}.Key(),
		&propertyapp.SearchPropertiesHandler{Store: propertyStore, Logger: logger})
	queries.RegisterHandler(queryBus, propertyapp.PropertyDetailQuery{}.Key(),
		&propertyapp.PropertyDetailHandler{Store: propertyStore, Logger: logger})
	queries.RegisterHandler(queryBus, propertyapp.PropertyCalendarQuery{}.Key(),
		&propertyapp.PropertyCalendarHandler{Store: propertyStore})
	queries.RegisterHandler(queryBus, propertyapp.ListCategoriesQuery{}.Key(),
		&propertyapp.ListCategoriesHandler{Categories: categoryStore})
	queries.RegisterHandler(queryBus, propertyapp.ListOwnedQuery{}.Key(),
		&propertyapp.ListOwnedHandler{Store: propertyStore, Logger: logger})

	commandBus := commands.NewInMemoryBus()
	commands.RegisterHandler(commandBus, propertyapp.CreatePropertyCommand{}.Key(),
		&propertyapp.CreatePropertyHandler{Store: propertyStore, Logger: logger})
	manage := &propertyapp.ManagePropertiesHandler{Store: propertyStore, Logger: logger}
	commands.RegisterHandler(commandBus, propertyapp.UpdatePropertyCommand{}.Key(),
		commands.HandlerFunc[propertyapp.UpdatePropertyCommand, any](wrap(manage.HandleUpdate)))
	commands.RegisterHandler(commandBus, propertyapp.AddRoomCommand{}.Key(),
		commands.HandlerFunc[propertyapp.AddRoomCommand, any](wrap(manage.HandleAddRoom)))
	commands.RegisterHandler(commandBus, propertyapp.BlockRoomCommand{}.Key(),
		commands.HandlerFunc[propertyapp.BlockRoomCommand, any](wrap(manage.HandleBlock)))
	commands.RegisterHandler(commandBus, propertyapp.SetSeasonRateCommand{}.Key(),
		commands.HandlerFunc[propertyapp.SetSeasonRateCommand, any](wrap(manage.HandleSeasonRate)))
	commands.RegisterHandler(commandBus, propertyapp.AttachPictureCommand{}.Key(),
		commands.HandlerFunc[propertyapp.AttachPictureCommand, any](wrap(manage.HandleAttachPicture)))

	uploader := buildUploader(cfg, logger)

	app.handlers = ginserver.Handlers{
		Property: ginserver.PropertyHandler{Queries: queryBus, Logger: logger},
		Owner: ginserver.OwnerHandler{
			Queries:  queryBus,
			Commands: commandBus,
			Uploader: uploader,
			Logger:   logger,
		},
		Auth:           ginserver.AuthHandler{Service: authService, Logger: logger},
		AuthMiddleware: ginserver.AuthMiddleware{Service: authService, Logger: logger}.Handle,
	}

	if len(cfg.KafkaBrokers) > 0 {
		consumer, err := kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaGroupID, nil, kafka.BookingEventsHandler{
			Sink:   bookingSink,
			Logger: logger,
		})
		if err != nil {
			return application{}, fmt.Errorf("kafka consumer: %w", err)
		}
		app.consumer = consumer.WithLogger(logger)
	} else {
		logger.Warn("KAFKA_BROKERS not set, booking event ingestion disabled")
	}

	return app, nil
}

// wrap adapts a typed command method to the bus result shape.
func wrap[C commands.Command, R any](fn func(ctx context.Context, cmd C) (R, error)) func(ctx context.Context, cmd C) (any, error) {
	return func(ctx context.Context, cmd C) (any, error) {
		return fn(ctx, cmd)
	}
}

func buildUploader(cfg config.Config, logger *slog.Logger) s3.Uploader {
	client, err := s3.NewClient(cfg.S3Endpoint, cfg.S3UseSSL, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3PublicEndpoint, logger)
	if err != nil {
		logger.Warn("object storage unavailable, picture upload disabled", "error", err)
		return s3.NoopUploader{}
	}
	return client
}

func (a application) loadPropertyFixtures(ctx context.Context, path string, logger *slog.Logger) error {
	if a.memProps == nil {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("property fixtures file not found, skipping", "path", path)
			return nil
		}
		return fmt.Errorf("read fixtures: %w", err)
	}

	var fixtures fixtureFile
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return fmt.Errorf("decode fixtures: %w", err)
	}

	categories := make(map[string]property.Category, len(fixtures.Categories))
	for _, fc := range fixtures.Categories {
		c := a.memProps.SeedCategory(property.Category{Name: fc.Name, Tenant: property.TenantID(fc.Tenant)})
		categories[c.Name] = c
	}

	now := time.Now()
	for _, fp := range fixtures.Properties {
		created, err := property.New(property.CreateParams{
			Name:        fp.Name,
			Description: fp.Description,
			Location:    fp.Location,
			CityID:      property.CityID(fp.CityID),
			Tenant:      property.TenantID(fp.Tenant),
			Now:         now,
		})
		if err != nil {
			logger.Error("fixture invalid", "name", fp.Name, "error", err)
			continue
		}
		if c, ok := categories[fp.Category]; ok {
			created.CategoryID = c.ID
			created.CategoryName = c.Name
		}
		for _, fr := range fp.Rooms {
			if _, err := created.AddRoom(property.RoomParams{
				Name:        fr.Name,
				Description: fr.Description,
				PriceCents:  fr.PriceCents,
				MaxGuests:   fr.MaxGuests,
				Quantity:    fr.Quantity,
			}, now); err != nil {
				logger.Error("fixture room invalid", "property", fp.Name, "room", fr.Name, "error", err)
			}
		}
		if err := a.memProps.Insert(ctx, created); err != nil {
			logger.Error("cannot store fixture property", "name", fp.Name, "error", err)
			continue
		}
		logger.Info("property fixture imported", "property", created.ID, "name", created.Name)
	}
	return nil
}

type fixtureFile struct {
	Categories []categoryFixture `json:"categories"`
	Properties []propertyFixture `json:"properties"`
}

type categoryFixture struct {
	Name   string `json:"name"`
	Tenant int64  `json:"tenant"`
}

type propertyFixture struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Location    string        `json:"location"`
	CityID      int64         `json:"city_id"`
	Category    string        `json:"category"`
	Tenant      int64         `json:"tenant"`
	Rooms       []roomFixture `json:"rooms"`
}

type roomFixture struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
	MaxGuests   int    `json:"max_guests"`
	Quantity    int    `json:"quantity"`
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
