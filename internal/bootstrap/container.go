package bootstrap

import (
	"context"
	"fmt"

	"llm-chat-be/internal/config"
	"llm-chat-be/internal/constant"
	"llm-chat-be/internal/controller"
	"llm-chat-be/internal/pkg/logger"
	"llm-chat-be/internal/repository/memory"
	"llm-chat-be/internal/repository/unitofwork"
	"llm-chat-be/internal/service"
	"llm-chat-be/pkg/database"
	"llm-chat-be/pkg/llm"
	"llm-chat-be/pkg/llm/factory"
	natsbus "llm-chat-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ConversationController controller.IConversationController
	ApiKeyController       controller.IApiKeyController
	ProviderController     controller.IProviderController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	UserService     service.IUserService

	Logger     logger.ILogger
	MockUserId uuid.UUID

	pubSub *gochannel.GoChannel
	nats   *natsbus.Publisher
}

// Dependencies lets callers (main, tests) replace the store or the provider gateway.
type Dependencies struct {
	UowFactory unitofwork.RepositoryFactory
	Gateway    llm.Gateway
	Logger     logger.ILogger
}

// OpenStore builds the repository factory selected by STORE_DRIVER. The returned
// *gorm.DB is nil for the memory driver.
func OpenStore(cfg *config.Config) (unitofwork.RepositoryFactory, *gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		return memory.NewRepositoryFactory(memory.NewStore()), nil, nil
	case config.StoreDriverSqlite:
		db, err = database.NewSqliteDB(cfg.Store.SqlitePath, cfg.App.Environment == "production")
	case config.StoreDriverPostgres:
		db, err = database.NewGormDBFromDSN(cfg.Store.Connection)
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
	if err != nil {
		return nil, nil, err
	}

	if err := database.AutoMigrate(db); err != nil {
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	return unitofwork.NewRepositoryFactory(db), db, nil
}

func NewContainer(cfg *config.Config, deps Dependencies) (*Container, error) {
	// 1. Core Facades
	sysLogger := deps.Logger
	if sysLogger == nil {
		sysLogger = logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	}

	gateway := deps.Gateway
	if gateway == nil {
		gateway = factory.NewGateway(factory.GatewayConfig{
			Timeout:     cfg.Ai.ProviderTimeout,
			MaxTokens:   cfg.Ai.MaxTokens,
			Temperature: cfg.Ai.Temperature,
			BaseURLs:    cfg.Ai.BaseURLs,
		})
	}

	mockUserId, err := uuid.Parse(cfg.MockUser.Id)
	if err != nil {
		return nil, fmt.Errorf("invalid MOCK_USER_ID: %w", err)
	}

	// 2. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		logger.NewWatermillAdapter(sysLogger),
	)

	// 3. Services
	var (
		natsPublisher *natsbus.Publisher
		recorders     []service.UsageRecorder
	)
	if cfg.App.NatsURL != "" {
		natsPublisher, err = natsbus.NewPublisher(cfg.App.NatsURL, sysLogger)
		if err != nil {
			return nil, err
		}
		recorders = append(recorders, service.ForwardTo(natsPublisher, constant.ExchangeCompletedSubject, sysLogger))
	}

	publisherService := service.NewPublisherService(constant.ExchangeCompletedTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, constant.ExchangeCompletedTopic, sysLogger, recorders...)

	userService := service.NewUserService(deps.UowFactory, sysLogger)
	conversationService := service.NewConversationService(deps.UowFactory)
	messageService := service.NewMessageService(deps.UowFactory, gateway, publisherService, sysLogger)
	apiKeyService := service.NewApiKeyService(deps.UowFactory)
	providerService := service.NewProviderService(gateway)

	// 4. Controllers
	return &Container{
		ConversationController: controller.NewConversationController(conversationService, messageService),
		ApiKeyController:       controller.NewApiKeyController(apiKeyService),
		ProviderController:     controller.NewProviderController(providerService),

		ConsumerService: consumerService,
		UserService:     userService,
		Logger:          sysLogger,
		MockUserId:      mockUserId,
		pubSub:          pubSub,
		nats:            natsPublisher,
	}, nil
}

// Start seeds the mock user and starts the background consumers.
func (c *Container) Start(ctx context.Context, cfg *config.Config) error {
	if _, err := c.UserService.EnsureMockUser(ctx, c.MockUserId, cfg.MockUser.Username, cfg.MockUser.Password); err != nil {
		return fmt.Errorf("seed mock user: %w", err)
	}
	return c.ConsumerService.Consume(ctx)
}

func (c *Container) Close() error {
	if c.nats != nil {
		c.nats.Close()
	}
	return c.pubSub.Close()
}
