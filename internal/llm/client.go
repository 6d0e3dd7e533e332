package llm

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Client is an abstraction over the LLM provider.
type Client interface {
	// GenerateText generates plain text from a prompt.
	GenerateText(ctx context.Context, prompt string) (string, error)
	// GenerateJSON generates a JSON document from a prompt, with markdown
	// code fences stripped.
	GenerateJSON(ctx context.Context, prompt string) (string, error)
	// Embed returns the embedding vector for a text.
	Embed(ctx context.Context, text string) ([]float32, error)
	// ActiveModel returns the model currently at the front of the chain.
	ActiveModel() string
	// Close releases any resources held by the client.
	Close() error
}

// GeminiClient implements Client for Google Gemini with model-chain
// fallback: a rate limited model is skipped for the rest of the process
// lifetime and the next model in the chain takes over.
type GeminiClient struct {
	client *genai.Client
	config *Config

	mu         sync.Mutex
	chainIndex int
}

// NewGeminiClient creates a new Gemini client.
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if config == nil {
		config = LoadConfig()
	}
	if len(config.ModelChain) == 0 {
		return nil, fmt.Errorf("model chain is empty")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{client: client, config: config}, nil
}

// ActiveModel returns the model name currently in use.
func (c *GeminiClient) ActiveModel() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.config.ModelChain[c.chainIndex]
}

// GenerateText generates plain text from a prompt, falling through the
// model chain on rate limit errors.
func (c *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, prompt, false)
}

// GenerateJSON generates a JSON response from a prompt. The response MIME
// type is forced to JSON and markdown fences are stripped from the result.
func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	text, err := c.generate(ctx, prompt, true)
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

func (c *GeminiClient) generate(ctx context.Context, prompt string, asJSON bool) (string, error) {
	c.mu.Lock()
	start := c.chainIndex
	c.mu.Unlock()

	var lastErr error
	for i := start; i < len(c.config.ModelChain); i++ {
		modelName := c.config.ModelChain[i]
		model := c.client.GenerativeModel(modelName)
		model.SetTemperature(0.1)
		if asJSON {
			model.ResponseMIMEType = "application/json"
		}

		resp, err := model.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			lastErr = fmt.Errorf("model %s: %w", modelName, err)
			if IsRateLimited(err) && i+1 < len(c.config.ModelChain) {
				// Demote to the next model for this and future calls.
				c.mu.Lock()
				if c.chainIndex < i+1 {
					c.chainIndex = i + 1
				}
				c.mu.Unlock()
				continue
			}
			return "", lastErr
		}
		return extractTextFromResponse(resp)
	}
	return "", fmt.Errorf("all models in chain exhausted: %w", lastErr)
}

// Embed returns the embedding vector for a text.
func (c *GeminiClient) Embed(ctx context.Context, text string) ([]float32, error) {
	em := c.client.EmbeddingModel(c.config.EmbeddingModel)
	resp, err := em.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("failed to embed content: %w", err)
	}
	if resp.Embedding == nil || len(resp.Embedding.Values) == 0 {
		return nil, fmt.Errorf("empty embedding in response")
	}
	return resp.Embedding.Values, nil
}

// Close releases resources held by the client.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts text from a Gemini API response.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var out string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out += string(text)
		}
	}
	if out == "" {
		return "", fmt.Errorf("no text parts in response")
	}
	return out, nil
}
