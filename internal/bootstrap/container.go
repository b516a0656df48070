package bootstrap

import (
	"log"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"

	"github.com/mrchongyl/zus-chatbot/internal/config"
	"github.com/mrchongyl/zus-chatbot/internal/constant"
	"github.com/mrchongyl/zus-chatbot/internal/controller"
	"github.com/mrchongyl/zus-chatbot/internal/observability"
	"github.com/mrchongyl/zus-chatbot/internal/pkg/logger"
	"github.com/mrchongyl/zus-chatbot/internal/repository/implementation"
	"github.com/mrchongyl/zus-chatbot/internal/repository/memory"
	"github.com/mrchongyl/zus-chatbot/internal/service"
	"github.com/mrchongyl/zus-chatbot/pkg/agent"
	"github.com/mrchongyl/zus-chatbot/pkg/embedding"
	"github.com/mrchongyl/zus-chatbot/pkg/llm/factory"
	"github.com/mrchongyl/zus-chatbot/pkg/retrieval"
	"github.com/mrchongyl/zus-chatbot/pkg/text2sql"
)

type Container struct {
	// Controllers
	ChatController       controller.IChatController
	CalculatorController controller.ICalculatorController
	ProductController    controller.IProductController
	OutletController     controller.IOutletController

	// Background services (exposed for main.go to run)
	ConsumerService  service.IConsumerService
	PublisherService service.IPublisherService

	Logger  logger.ILogger
	Metrics *observability.Metrics
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	metrics := observability.NewMetrics(cfg.App.MetricsNamespace)

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Providers
	var embeddingProvider embedding.Provider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Repositories
	outletRepo := implementation.NewOutletRepository(db)
	productRepo := implementation.NewProductRepository(db)
	productEmbeddingRepo := implementation.NewProductEmbeddingRepository(db)
	sessionRepo := memory.NewSessionRepository()

	// 5. Product search backend
	var searcher service.IProductSearcher
	if cfg.Retrieval.Backend == "bundle" {
		index := retrieval.NewIndex(embeddingProvider)
		if err := index.Load(cfg.Retrieval.BundlePath); err != nil {
			log.Fatalf("[FATAL] Failed to load retrieval bundle: %v", err)
		}
		searcher = service.NewBundleProductSearcher(index)
		log.Printf("[INFO] Using Retrieval Backend: BUNDLE (%d items)", index.Len())
	} else {
		searcher = service.NewPgvectorProductSearcher(
			embeddingProvider,
			productEmbeddingRepo,
			productRepo,
			cfg.Retrieval.Threshold,
		)
		log.Printf("[INFO] Using Retrieval Backend: PGVECTOR")
	}

	// 6. Services
	publisherService := service.NewPublisherService(pubSub, cfg.Keys.EmbedTopic)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.EmbedTopic,
		productRepo,
		productEmbeddingRepo,
		embeddingProvider,
		sysLogger,
	)

	calculatorService := service.NewCalculatorService()
	productService := service.NewProductService(
		searcher,
		llmProvider,
		sysLogger,
		cfg.Agent.ToolMaxChars,
		cfg.Agent.ToolMaxWords,
	)
	outletService := service.NewOutletService(
		text2sql.NewTranslator(llmProvider, cfg.Agent.ToolMaxChars, cfg.Agent.ToolMaxWords),
		outletRepo,
		sysLogger,
	)

	// 7. Agent: closed tool set, validated before the server accepts traffic.
	registry, err := agent.NewRegistry(
		service.NewCalculatorTool(calculatorService),
		service.NewOutletsTool(outletService),
		service.NewProductsTool(productService, cfg.Retrieval.TopK),
	)
	if err != nil {
		log.Fatalf("[FATAL] Invalid tool registry: %v", err)
	}
	loop := agent.NewLoop(llmProvider, registry, agent.Config{
		SystemPrompt:  constant.AgentSystemPromptV1,
		MaxIterations: cfg.Agent.MaxIterations,
		MaxDuration:   time.Duration(cfg.Agent.MaxSeconds) * time.Second,
	})

	chatService := service.NewChatService(loop, sessionRepo, metrics, sysLogger, cfg.Agent.ChatMaxChars, cfg.Agent.ChatMaxWords)

	return &Container{
		ChatController:       controller.NewChatController(chatService),
		CalculatorController: controller.NewCalculatorController(calculatorService),
		ProductController:    controller.NewProductController(productService),
		OutletController:     controller.NewOutletController(outletService),
		ConsumerService:      consumerService,
		PublisherService:     publisherService,
		Logger:               sysLogger,
		Metrics:              metrics,
	}
}
