package vectorstore

import (
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/rs/zerolog"
)

type Client struct {
	Client        openai.Client
	VectorStoreID string
	logger        *zerolog.Logger
}

// NewClient builds a vector store backend. Retries are disabled: a failed call is
// reported to the caller as is.
func NewClient(apiKey string, vectorStoreID string, baseURL string, logger *zerolog.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if vectorStoreID == "" {
		return nil, fmt.Errorf("vector store ID is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &Client{
		Client:        openai.NewClient(opts...),
		VectorStoreID: vectorStoreID,
		logger:        logger,
	}, nil
}

func (c *Client) Name() string {
	return "openai"
}
