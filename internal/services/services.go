package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/deepgram/asklyn/internal/config"
	"github.com/deepgram/asklyn/internal/connections"
	"github.com/deepgram/asklyn/internal/infrastructure/anthropic"
	"github.com/deepgram/asklyn/internal/infrastructure/ollama"
	"github.com/deepgram/asklyn/internal/infrastructure/openai"
	"github.com/deepgram/asklyn/internal/infrastructure/redis"
	"github.com/deepgram/asklyn/internal/services/chat"
	"github.com/deepgram/asklyn/internal/services/knowledge"
	"github.com/deepgram/asklyn/internal/services/watcher"
	"github.com/deepgram/asklyn/pkg/logger"
)

var (
	// Mutex for thread-safe initialization
	servicesMu sync.RWMutex
)

type Services struct {
	chatService      *chat.Service
	knowledgeService *knowledge.Service
	redisService     *redis.Service
	boltStore        *knowledge.BoltStore
	watcherService   *watcher.Service
	connections      *connections.Manager
}

// InitializeServices initializes all required services. On error every
// connection it opened is closed again.
func InitializeServices(ctx context.Context) (_ *Services, err error) {
	servicesMu.Lock()
	defer servicesMu.Unlock()

	logger.Info(logger.SERVICE, "Initializing core services")

	// Redis is optional; without it the knowledge base lives in a bolt file or in memory
	redisService := redis.NewService(ctx)
	var store knowledge.Store
	var boltStore *knowledge.BoltStore
	switch path := config.GetKBBoltPath(); {
	case redisService != nil:
		store = knowledge.NewRedisStore(redisService, config.GetRedisKey())
		logger.Info(logger.SERVICE, "Knowledge base backed by Redis")
	case path != "":
		bs, err := knowledge.NewBoltStore(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open knowledge base: %w", err)
		}
		boltStore = bs
		store = bs
		logger.Info(logger.SERVICE, "Knowledge base backed by %s", path)
	default:
		store = knowledge.NewMemoryStore()
		logger.Info(logger.SERVICE, "Knowledge base backed by memory")
	}
	defer func() {
		if err == nil {
			return
		}
		if boltStore != nil {
			boltStore.Close()
		}
		if redisService != nil {
			redisService.Close()
		}
	}()

	knowledgeService := knowledge.NewService(store)
	if err = seed(ctx, knowledgeService); err != nil {
		logger.Error(logger.SERVICE, "Failed to seed knowledge base: %v", err)
		return nil, fmt.Errorf("failed to seed knowledge base: %w", err)
	}

	generator, err := newGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize generator: %w", err)
	}
	chatService := chat.NewService(knowledgeService, generator, config.GetRetrievalTopK())

	var watcherService *watcher.Service
	if dir := config.GetKBWatchDir(); dir != "" {
		watcherService, err = watcher.NewService(dir, knowledgeService)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize watcher: %w", err)
		}
	}

	logger.Info(logger.SERVICE, "All services initialized successfully")

	return &Services{
		chatService:      chatService,
		knowledgeService: knowledgeService,
		redisService:     redisService,
		boltStore:        boltStore,
		watcherService:   watcherService,
		connections:      connections.NewManager(connections.DefaultTimeouts),
	}, nil
}

func seed(ctx context.Context, kb *knowledge.Service) error {
	path := config.GetKBSeedFile()
	if path == "" {
		return kb.Seed(ctx)
	}

	docs, err := knowledge.LoadSeedFile(path)
	if err != nil {
		return err
	}
	return kb.SeedWith(ctx, docs)
}

// newGenerator picks OpenAI, then Anthropic, then Ollama. A nil generator makes the chat
// service answer with the built-in persona.
func newGenerator() (chat.Generator, error) {
	if openAIService := openai.NewService(config.GetOpenAIKey(), config.GetOpenAIModel(), config.GetOpenAIBaseURL()); openAIService != nil {
		logger.Info(logger.SERVICE, "Using OpenAI model %s for responses", config.GetOpenAIModel())
		return openAIService, nil
	}

	if anthropicService := anthropic.NewService(config.GetAnthropicKey(), config.GetAnthropicModel(), config.GetAnthropicBaseURL()); anthropicService != nil {
		logger.Info(logger.SERVICE, "Using Anthropic model %s for responses", config.GetAnthropicModel())
		return anthropicService, nil
	}

	ollamaService, err := ollama.NewService(config.GetOllamaHost(), config.GetOllamaModel())
	if err != nil {
		return nil, err
	}
	if ollamaService != nil {
		logger.Info(logger.SERVICE, "Using Ollama model %s for responses", config.GetOllamaModel())
		return ollamaService, nil
	}

	logger.Info(logger.SERVICE, "No language model configured, using persona responses")
	return nil, nil
}

// GetChatService returns the chat service
func (s *Services) GetChatService() *chat.Service {
	return s.chatService
}

// GetKnowledgeService returns the knowledge service
func (s *Services) GetKnowledgeService() *knowledge.Service {
	return s.knowledgeService
}

// GetConnections returns the socket connection manager
func (s *Services) GetConnections() *connections.Manager {
	return s.connections
}

// GetWatcherService returns the directory watcher, or nil when KB_WATCH_DIR is unset
func (s *Services) GetWatcherService() *watcher.Service {
	return s.watcherService
}

// Close releases the watcher, socket connections and Redis client.
func (s *Services) Close() error {
	servicesMu.Lock()
	defer servicesMu.Unlock()

	s.connections.CloseAll()

	var errs []error
	if s.watcherService != nil {
		if err := s.watcherService.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if s.boltStore != nil {
		if err := s.boltStore.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if s.redisService != nil {
		if err := s.redisService.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("closing services: %v", errs)
	}
	return nil
}
