package setup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/povarna/generative-ai-agents/search-agent/internal/backend"
	"github.com/povarna/generative-ai-agents/search-agent/internal/backend/redisdocs"
	"github.com/povarna/generative-ai-agents/search-agent/internal/backend/static"
	"github.com/povarna/generative-ai-agents/search-agent/internal/backend/vectorstore"
	"github.com/povarna/generative-ai-agents/search-agent/internal/config"
	"github.com/povarna/generative-ai-agents/search-agent/internal/metrics"
	"github.com/povarna/generative-ai-agents/search-agent/internal/normalize"
	"github.com/povarna/generative-ai-agents/search-agent/internal/redis"
	"github.com/povarna/generative-ai-agents/search-agent/internal/search"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	BackendOpenAI = "openai"
	BackendStatic = "static"
	BackendRedis  = "redis"
)

const redisConnectAttempts = 5

var ErrConfig = errors.New("invalid configuration")

type Config struct {
	Backend           string
	OpenAIKey         string
	VectorStoreID     string
	OpenAIBaseURL     string
	CitationBaseURL   string
	SearchLimit       int
	StaticDatasetPath string
	RedisAddr         string
	RedisPassword     string
	RedisPrefix       string
	DocsStream        string
	DocsStreamGroup   string
	LogLevel          string
	LogFormat         string
	APIPort           string
	MCPTransport      string
	MCPAddr           string
}

type Dependencies struct {
	Service *search.Service
	Metrics *metrics.Metrics
	Logger  *zerolog.Logger

	redisClient *goredis.Client
}

func LoadConfig() *Config {
	return &Config{
		Backend:           strings.ToLower(getEnv("BACKEND", BackendOpenAI)),
		OpenAIKey:         getEnv("OPENAI_API_KEY", ""),
		VectorStoreID:     getEnv("VECTOR_STORE_ID", ""),
		OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", ""),
		CitationBaseURL:   getEnv("CITATION_BASE_URL", normalize.DefaultCitationBase),
		SearchLimit:       getEnvInt("SEARCH_LIMIT", search.DefaultLimit),
		StaticDatasetPath: getEnv("STATIC_DATASET_PATH", ""),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		RedisPrefix:       getEnv("REDIS_PREFIX", "search-agent:"),
		DocsStream:        getEnv("DOCS_STREAM", "search-agent-docs"),
		DocsStreamGroup:   getEnv("DOCS_STREAM_GROUP", "search-agent-seed"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "console"),
		APIPort:           getEnv("SEARCH_AGENT_API_PORT", "8000"),
		MCPTransport:      strings.ToLower(getEnv("MCP_TRANSPORT", "stdio")),
		MCPAddr:           getEnv("MCP_ADDR", ":8000"),
	}
}

// Validate checks the startup rules for the selected backend.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendOpenAI:
		if c.OpenAIKey == "" {
			return fmt.Errorf("%w: OPENAI_API_KEY is required for the openai backend", ErrConfig)
		}
		if c.VectorStoreID == "" {
			return fmt.Errorf("%w: VECTOR_STORE_ID is required for the openai backend", ErrConfig)
		}
	case BackendStatic:
	case BackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("%w: REDIS_ADDR is required for the redis backend", ErrConfig)
		}
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrConfig, c.Backend)
	}

	if c.SearchLimit <= 0 {
		return fmt.Errorf("%w: SEARCH_LIMIT must be positive", ErrConfig)
	}

	switch c.MCPTransport {
	case "stdio", "http":
	default:
		return fmt.Errorf("%w: unknown MCP transport %q", ErrConfig, c.MCPTransport)
	}

	return nil
}

func Wire(ctx context.Context, cfg *Config, logger *zerolog.Logger) (*Dependencies, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	deps := &Dependencies{Logger: logger}

	b, err := deps.createBackend(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s backend: %w", cfg.Backend, err)
	}

	deps.Metrics = metrics.New(b.Name())
	deps.Service = search.NewService(b, normalize.NewNormalizer(cfg.CitationBaseURL), cfg.SearchLimit, deps.Metrics, logger)

	logger.Info().
		Str("backend", b.Name()).
		Int("search_limit", cfg.SearchLimit).
		Msg("Dependencies wired")

	return deps, nil
}

// Close releases connections opened by Wire.
func (d *Dependencies) Close() error {
	if d.redisClient != nil {
		return d.redisClient.Close()
	}
	return nil
}

// ConnectRedisStore opens the redis document store used by the redis backend
// and the seeder.
func ConnectRedisStore(ctx context.Context, cfg *Config, logger *zerolog.Logger) (*redisdocs.Store, *goredis.Client, error) {
	client, err := redis.Connect(ctx, redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		Attempts: redisConnectAttempts,
	}, logger)
	if err != nil {
		return nil, nil, err
	}
	return redisdocs.NewStore(client, cfg.RedisPrefix, logger), client, nil
}

func (d *Dependencies) createBackend(ctx context.Context, cfg *Config, logger *zerolog.Logger) (backend.Backend, error) {
	switch cfg.Backend {
	case BackendStatic:
		dataset, err := config.LoadDataset(cfg.StaticDatasetPath)
		if err != nil {
			return nil, err
		}
		return static.NewBackend(dataset), nil
	case BackendRedis:
		store, client, err := ConnectRedisStore(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		d.redisClient = client
		return store, nil
	default:
		return vectorstore.NewClient(cfg.OpenAIKey, cfg.VectorStoreID, cfg.OpenAIBaseURL, logger)
	}
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		value = defaultValue
	}

	return value
}
