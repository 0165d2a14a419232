package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"

	logger_adapter "github.com/MinYonhee/api-urban-valle/internal/adapters/logger"
	"github.com/MinYonhee/api-urban-valle/internal/adapters/memory"
	postgres_adapter "github.com/MinYonhee/api-urban-valle/internal/adapters/postgres"
	rabbitmq_adapter "github.com/MinYonhee/api-urban-valle/internal/adapters/rabbitmq"
	"github.com/MinYonhee/api-urban-valle/internal/adapters/rest"
	"github.com/MinYonhee/api-urban-valle/internal/configs"
	"github.com/MinYonhee/api-urban-valle/internal/constants"
	"github.com/MinYonhee/api-urban-valle/internal/core/port"
	"github.com/MinYonhee/api-urban-valle/internal/core/usecase"
	fluentlogger "github.com/MinYonhee/api-urban-valle/pkg/fluent_logger"
	"github.com/MinYonhee/api-urban-valle/pkg/postgres"
	"github.com/MinYonhee/api-urban-valle/pkg/rabbitmq/rabbitmq_common"
	"github.com/MinYonhee/api-urban-valle/pkg/rabbitmq/rabbitmq_producer"
)

const shutdownTimeout = 15 * time.Second

// repositories - one storage backend seen through the core ports.
type repositories struct {
	tx          port.Transactor
	properties  port.PropertyRepositoryPort
	consultants port.ConsultantRepositoryPort
	users       port.UserRepositoryPort
	contacts    port.ContactRepositoryPort
	links       port.AssociationRepositoryPort
}

// App - the composed service and the resources it must release.
type App struct {
	config       *configs.AppConfig
	dbPool       *pgxpool.Pool
	apiServer    *rest.Server
	fluentClient *fluent.Fluent
	connManager  *rabbitmq_common.ConnectionManager
	producer     *rabbitmq_producer.Publisher
	logger       port.LoggerPort
}

// NewLogger builds the stdout logger plus Fluent Bit when enabled. The fluent
// client is returned so the caller can close it.
func NewLogger(cfg *configs.AppConfig) (port.LoggerPort, *fluent.Fluent, error) {
	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    logger_adapter.ParseLevel(cfg.StdoutLogger.Level),
		IsJSON:   cfg.StdoutLogger.IsJSON,
		UseColor: !cfg.StdoutLogger.IsJSON,
	})

	var (
		fluentClient *fluent.Fluent
		fluentSink   port.LoggerPort
	)
	if cfg.FluentBit.Enabled {
		var err error
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      cfg.FluentBit.Host,
			Port:      cfg.FluentBit.Port,
			TagPrefix: cfg.AppName,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}
		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, logger_adapter.ParseLevel(cfg.FluentBit.Level))
		if err != nil {
			fluentClient.Close()
			return nil, nil, err
		}
		fluentSink = fluentAdapter
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(stdoutLogger, fluentSink)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}
	return multiLogger.WithFields(port.Fields{"service_name": cfg.AppName}), fluentClient, nil
}

// NewApp is the composition root.
func NewApp(appConfig *configs.AppConfig) (*App, error) {
	baseLogger, fluentClient, err := NewLogger(appConfig)
	if err != nil {
		return nil, err
	}

	app := &App{
		config:       appConfig,
		fluentClient: fluentClient,
		logger:       baseLogger.WithFields(port.Fields{"component": "app"}),
	}
	app.logger.Info("Logger system initialized", port.Fields{"fluent_enabled": appConfig.FluentBit.Enabled})

	repos, err := app.openStorage()
	if err != nil {
		app.close()
		return nil, err
	}

	notifier, err := app.openNotifier(baseLogger)
	if err != nil {
		app.close()
		return nil, err
	}

	maxPage := appConfig.Pagination.MaxSize
	consultantSvc := usecase.NewConsultantService(repos.tx, repos.properties, repos.consultants, repos.users, repos.contacts, repos.links, maxPage)
	userSvc := usecase.NewUserService(repos.tx, repos.properties, repos.consultants, repos.users, repos.contacts, repos.links, maxPage)
	propertySvc := usecase.NewPropertyService(repos.tx, repos.properties, repos.consultants, repos.users, repos.contacts, repos.links, maxPage)
	contactSvc := usecase.NewContactService(repos.tx, repos.properties, repos.consultants, repos.users, repos.contacts, repos.links, notifier, maxPage)
	graph := usecase.NewRelationshipGraph(repos.tx, repos.properties, repos.consultants, repos.users, repos.contacts, repos.links)
	findProperties := usecase.NewFindPropertiesUseCase(repos.properties, maxPage)
	app.logger.Info("All use cases initialized.", nil)

	defaultPage := appConfig.Pagination.DefaultSize
	handlers := rest.Handlers{
		Consultants:  rest.NewConsultantHandler(consultantSvc, contactSvc, defaultPage),
		Users:        rest.NewUserHandler(userSvc, propertySvc, contactSvc, defaultPage),
		Properties:   rest.NewPropertyHandler(propertySvc, findProperties, contactSvc, defaultPage),
		Contacts:     rest.NewContactHandler(contactSvc, defaultPage),
		Associations: rest.NewAssociationHandler(graph, propertySvc, userSvc),
	}

	serverCfg := rest.ServerConfig{
		Port:           appConfig.Rest.PORT,
		AllowedOrigins: appConfig.Rest.CORSAllowedOrigins,
	}
	if appConfig.MetricsEnabled {
		serverCfg.Metrics = rest.NewMetrics(appConfig.AppName)
	}
	app.apiServer = rest.NewServer(serverCfg, handlers, baseLogger)
	app.logger.Info("REST API server configured.", nil)

	return app, nil
}

func (a *App) openStorage() (*repositories, error) {
	if a.config.Database.Driver == configs.StorageMemory {
		store := memory.NewStore()
		a.logger.Warn("Using in-memory storage; data is lost on restart", nil)
		return &repositories{
			tx:          store,
			properties:  store.Properties(),
			consultants: store.Consultants(),
			users:       store.Users(),
			contacts:    store.Contacts(),
			links:       store.Associations(),
		}, nil
	}

	dbPool, err := postgres.NewClient(context.Background(), postgres.Config{
		DatabaseURL: a.config.Database.URL,
		MaxConns:    a.config.Database.MaxConns,
	})
	if err != nil {
		a.logger.Error("Failed to connect to PostgreSQL", err, nil)
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	a.dbPool = dbPool
	a.logger.Info("Successfully connected to PostgreSQL pool!", nil)

	store, err := postgres_adapter.NewStore(dbPool)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres store: %w", err)
	}
	return &repositories{
		tx:          store,
		properties:  store.Properties(),
		consultants: store.Consultants(),
		users:       store.Users(),
		contacts:    store.Contacts(),
		links:       store.Associations(),
	}, nil
}

func (a *App) openNotifier(baseLogger port.LoggerPort) (port.ContactNotifierPort, error) {
	if !a.config.RabbitMQ.Enabled {
		a.logger.Info("RabbitMQ disabled; contact notifications are not published", nil)
		return rabbitmq_adapter.NoopContactNotifier{}, nil
	}

	connManager, err := rabbitmq_common.NewConnectionManager(
		rabbitmq_common.Config{URL: a.config.RabbitMQ.URL},
		rabbitmq_adapter.NewPkgLoggerBridge(baseLogger, "rabbitmq_conn_manager"),
	)
	if err != nil {
		a.logger.Error("Failed to create connection manager", err, nil)
		return nil, fmt.Errorf("failed to create connection manager: %w", err)
	}
	a.connManager = connManager

	producer, err := rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
		ExchangeName:             constants.ExchangeNotifications,
		ExchangeType:             constants.ExchangeNotificationsType,
		DurableExchange:          true,
		DeclareExchangeIfMissing: true,
		Logger:                   rabbitmq_adapter.NewPkgLoggerBridge(baseLogger, "rabbitmq_producer"),
	}, connManager)
	if err != nil {
		a.logger.Error("Failed to create event producer", err, nil)
		return nil, fmt.Errorf("failed to create event producer: %w", err)
	}
	a.producer = producer
	a.logger.Info("RabbitMQ Event Producer initialized.", nil)

	notifier, err := rabbitmq_adapter.NewContactNotifierAdapter(producer, constants.RoutingKeyContactCreated)
	if err != nil {
		return nil, fmt.Errorf("failed to create contact notifier: %w", err)
	}
	return notifier, nil
}

// NewMigrator connects to PostgreSQL for the migrate commands. The returned
// func closes the pool and the logger.
func NewMigrator(ctx context.Context, cfg *configs.AppConfig) (*postgres_adapter.Migrator, port.LoggerPort, func(), error) {
	if cfg.Database.Driver != configs.StoragePostgres {
		return nil, nil, nil, fmt.Errorf("migrations need STORAGE_DRIVER=%s, got %q", configs.StoragePostgres, cfg.Database.Driver)
	}

	logger, fluentClient, err := NewLogger(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	closeLogger := func() {
		if fluentClient != nil {
			fluentClient.Close()
		}
	}

	dbPool, err := postgres.NewClient(ctx, postgres.Config{
		DatabaseURL: cfg.Database.URL,
		MaxConns:    cfg.Database.MaxConns,
	})
	if err != nil {
		closeLogger()
		return nil, nil, nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	migrator, err := postgres_adapter.NewMigrator(dbPool)
	if err != nil {
		dbPool.Close()
		closeLogger()
		return nil, nil, nil, err
	}

	cleanup := func() {
		dbPool.Close()
		closeLogger()
	}
	return migrator, logger.WithFields(port.Fields{"component": "migrate"}), cleanup, nil
}

// Run serves HTTP until SIGINT/SIGTERM or a server failure, then shuts down.
func (a *App) Run() error {
	defer a.close()

	errorsCh := make(chan error, 1)
	go func() {
		if err := a.apiServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errorsCh <- fmt.Errorf("failed to start HTTP server: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)

	var runErr error
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case runErr = <-errorsCh:
		a.logger.Error("A critical component failed, shutting down", runErr, nil)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.apiServer.Stop(ctx); err != nil {
		a.logger.Error("Error during API server shutdown", err, nil)
	}
	return runErr
}

// close releases everything NewApp opened, in reverse order.
func (a *App) close() {
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("Error closing event producer", err, nil)
		}
	}
	if a.connManager != nil {
		if err := a.connManager.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ connection", err, nil)
		}
	}
	if a.dbPool != nil {
		a.dbPool.Close()
		a.logger.Info("PostgreSQL pool closed.", nil)
	}

	a.logger.Info("Application shut down gracefully.", nil)

	if a.fluentClient != nil {
		if err := a.fluentClient.Close(); err != nil {
			// fluent may already be gone, so report on stderr
			fmt.Fprintf(os.Stderr, "ERROR: Error closing fluent client: %v\n", err)
		}
	}
}
