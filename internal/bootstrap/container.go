package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"

	"autostream-assistant/internal/config"
	"autostream-assistant/internal/controller"
	"autostream-assistant/internal/handler"
	"autostream-assistant/internal/pkg/logger"
	"autostream-assistant/internal/pkg/mailer"
	"autostream-assistant/internal/repository/contract"
	"autostream-assistant/internal/repository/memory"
	redisrepo "autostream-assistant/internal/repository/redis"
	"autostream-assistant/internal/repository/unitofwork"
	"autostream-assistant/internal/service"
	"autostream-assistant/pkg/embedding"
	embeddingFactory "autostream-assistant/pkg/embedding/factory"
	"autostream-assistant/pkg/events"
	"autostream-assistant/pkg/knowledge"
	"autostream-assistant/pkg/llm"
	llmFactory "autostream-assistant/pkg/llm/factory"
	pktNats "autostream-assistant/pkg/nats"
	"autostream-assistant/pkg/rag/executor"
	"autostream-assistant/pkg/rag/intent"
	"autostream-assistant/pkg/rag/lead"
	"autostream-assistant/pkg/rag/response"
	"autostream-assistant/pkg/rag/search"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

// ErrPgvectorWithoutDB is returned when VECTOR_STORE=pgvector but the binary was given no database.
var ErrPgvectorWithoutDB = errors.New("VECTOR_STORE=pgvector requires a database: set DB_CONNECTION_STRING")

// Options carries what differs between binaries.
type Options struct {
	DB         *gorm.DB  // nil = no lead persistence, in-memory retrieval only
	CaptureOut io.Writer // where the lead confirmation line is printed
	Logger     logger.ILogger
}

type Container struct {
	Logger logger.ILogger
	Graph  *executor.Graph

	AssistantService    service.IAssistantService
	AssistantController controller.IAssistantController
	ChatHandler         *handler.ChatHandler

	// Background Services (started by Start)
	LeadConsumerService service.ILeadConsumerService

	closers []func()
}

func NewContainer(ctx context.Context, cfg *config.Config, opts Options) (_ *Container, err error) {
	sysLogger := opts.Logger
	if sysLogger == nil {
		sysLogger = logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	}
	c := &Container{Logger: sysLogger}
	defer func() {
		if err != nil {
			c.release()
		}
	}()

	// 1. Models
	llmProvider, err := newLLMProvider(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("init chat model: %w", err)
	}
	sysLogger.Info("Bootstrap", "Chat model ready", map[string]interface{}{
		"provider": cfg.Model.Provider,
		"model":    cfg.Model.Name,
	})

	embeddingProvider, err := embeddingFactory.NewEmbeddingProvider(ctx, embeddingFactory.Settings{
		ModelName:     cfg.Embedding.ModelName,
		GeminiAPIKey:  cfg.Keys.GoogleGemini,
		JinaAPIKey:    cfg.Keys.Jina,
		OllamaBaseURL: cfg.Embedding.OllamaBaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("init embedding model: %w", err)
	}

	// 2. Knowledge & retrieval
	var uowFactory unitofwork.RepositoryFactory
	if opts.DB != nil {
		uowFactory = unitofwork.NewRepositoryFactory(opts.DB)
	}
	retriever, err := newRetriever(ctx, cfg, uowFactory, embeddingProvider, sysLogger)
	if err != nil {
		return nil, err
	}

	// 3. Lead capture pipeline
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	publisherService := service.NewPublisherService(cfg.App.LeadTopic, pubSub)
	leadCapture := service.NewLeadCaptureService(opts.CaptureOut, publisherService, sysLogger)

	var eventPublisher events.Publisher
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL, sysLogger)
		if err != nil {
			sysLogger.Warn("Bootstrap", "Failed to connect to NATS Publisher", map[string]interface{}{"error": err.Error()})
		} else {
			eventPublisher = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	var emailService mailer.IEmailService
	if cfg.SMTP.Host != "" {
		emailService = mailer.NewEmailService(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Email, cfg.SMTP.Password, cfg.SMTP.SenderName, sysLogger)
	}

	c.LeadConsumerService = service.NewLeadConsumerService(
		pubSub,
		cfg.App.LeadTopic,
		uowFactory,
		eventPublisher,
		emailService,
		sysLogger,
	)

	// 4. Conversation flow
	c.Graph = executor.New(executor.Deps{
		Classifier: intent.NewClassifier(llmProvider, sysLogger),
		Retriever:  retriever,
		Extractor:  lead.NewExtractor(llmProvider, sysLogger),
		Generator:  response.NewGenerator(llmProvider, sysLogger),
		Capturer:   leadCapture,
		Logger:     sysLogger,
		TopK:       cfg.App.RetrievalTopK,
	})

	// 5. Sessions & HTTP surface
	sessionRepo, err := newSessionRepository(ctx, cfg, c)
	if err != nil {
		return nil, err
	}

	c.AssistantService = service.NewAssistantService(c.Graph, sessionRepo, sysLogger)
	c.AssistantController = controller.NewAssistantController(c.AssistantService)
	c.ChatHandler = handler.NewChatHandler(c.AssistantService, sysLogger)
	c.closers = append(c.closers, c.ChatHandler.Close)

	return c, nil
}

// Start runs the background services until ctx is done.
func (c *Container) Start(ctx context.Context) error {
	return c.LeadConsumerService.Consume(ctx)
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	c.release()
	_ = c.Logger.Sync()
}

func (c *Container) release() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}

func newLLMProvider(ctx context.Context, cfg *config.Config) (llm.LLMProvider, error) {
	settings := llmFactory.Settings{
		Provider:    cfg.Model.Provider,
		Model:       cfg.Model.Name,
		Temperature: cfg.Model.Temperature,
		MaxRetries:  cfg.Model.MaxRetries,
		Timeout:     cfg.Model.Timeout,
	}
	switch cfg.Model.Provider {
	case "ollama":
		settings.BaseURL = cfg.Model.OllamaBaseURL
	case "huggingface":
		settings.BaseURL = cfg.Model.BaseURL
		settings.APIKey = cfg.Keys.HuggingFace
	default:
		settings.APIKey = cfg.Keys.GoogleGemini
	}
	return llmFactory.NewLLMProvider(ctx, settings)
}

// newRetriever always loads the knowledge base so a missing or malformed file fails startup.
func newRetriever(
	ctx context.Context,
	cfg *config.Config,
	uowFactory unitofwork.RepositoryFactory,
	provider embedding.EmbeddingProvider,
	log logger.ILogger,
) (search.Retriever, error) {
	texts, err := knowledge.LoadTexts(cfg.App.KnowledgeBasePath)
	if err != nil {
		return nil, err
	}

	if cfg.App.VectorStore == "pgvector" {
		if uowFactory == nil {
			return nil, ErrPgvectorWithoutDB
		}
		if err := service.NewKnowledgeService(uowFactory, provider, log).EnsureSeeded(ctx, cfg.App.KnowledgeBasePath); err != nil {
			return nil, fmt.Errorf("seed knowledge embeddings: %w", err)
		}
		log.Info("Bootstrap", "Using pgvector retrieval", map[string]interface{}{"model": provider.Name()})
		return service.NewPgvectorRetriever(uowFactory, provider), nil
	}

	index, err := search.BuildIndex(ctx, provider, texts)
	if err != nil {
		return nil, fmt.Errorf("build retrieval index: %w", err)
	}
	log.Info("Bootstrap", "Retrieval index built", map[string]interface{}{
		"passages": index.Len(),
		"model":    provider.Name(),
	})
	return index, nil
}

func newSessionRepository(ctx context.Context, cfg *config.Config, c *Container) (contract.SessionRepository, error) {
	if cfg.App.SessionStore != "redis" {
		return memory.NewSessionRepository(cfg.App.SessionTTL), nil
	}

	client, err := redisrepo.NewClient(ctx, cfg.App.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	c.closers = append(c.closers, func() { _ = client.Close() })
	return redisrepo.NewSessionRepository(client, cfg.App.SessionTTL), nil
}
