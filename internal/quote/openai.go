package quote

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"
)

const systemPrompt = `You write one short encouraging message for a family caregiver. ` +
	`One or two sentences, warm and concrete, no hashtags, no quotation marks, no attribution.`

// OpenAIGenerator produces caregiver encouragement quotes through the
// OpenAI chat completion API, with retry logic and logging.
type OpenAIGenerator struct {
	client     *openai.Client
	model      string
	logger     *zap.Logger
	maxRetries int
	baseDelay  time.Duration
}

// NewOpenAIGenerator creates a new OpenAI-backed quote generator
func NewOpenAIGenerator(apiKey, model string, logger *zap.Logger) (*OpenAIGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		return nil, fmt.Errorf("model is required")
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))

	return &OpenAIGenerator{
		client:     &client,
		model:      model,
		logger:     logger,
		maxRetries: 3,
		baseDelay:  time.Second,
	}, nil
}

// Generate requests one encouragement message, retrying transient
// failures with exponential backoff.
func (g *OpenAIGenerator) Generate(ctx context.Context) (string, error) {
	startTime := time.Now()
	var lastErr error

	for attempt := 0; attempt < g.maxRetries; attempt++ {
		if attempt > 0 {
			delay := g.baseDelay * time.Duration(1<<uint(attempt-1))
			g.logger.Info("retrying OpenAI quote request",
				zap.Int("attempt", attempt+1),
				zap.Duration("delay", delay),
			)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delay):
			}
		}

		result, err := g.generate(ctx)
		if err == nil {
			g.logger.Info("OpenAI quote request completed",
				zap.Duration("processing_time", time.Since(startTime)),
				zap.Int("attempts", attempt+1),
			)
			return result, nil
		}

		lastErr = err
		if !isRetryable(err) {
			g.logger.Error("non-retryable OpenAI error",
				zap.Error(err),
				zap.Int("attempt", attempt+1),
			)
			break
		}

		g.logger.Warn("OpenAI quote request failed, will retry",
			zap.Error(err),
			zap.Int("attempt", attempt+1),
		)
	}

	g.logger.Error("OpenAI quote request failed after retries",
		zap.Error(lastErr),
		zap.Duration("total_time", time.Since(startTime)),
		zap.Int("max_retries", g.maxRetries),
	)

	return "", fmt.Errorf("OpenAI quote request failed after %d attempts: %w", g.maxRetries, lastErr)
}

func (g *OpenAIGenerator) generate(ctx context.Context) (string, error) {
	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage("Write today's encouragement."),
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from OpenAI")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("empty content in response")
	}

	g.logger.Info("OpenAI token usage",
		zap.Int64("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int64("completion_tokens", resp.Usage.CompletionTokens),
		zap.Int64("total_tokens", resp.Usage.TotalTokens),
	)

	return content, nil
}

// isRetryable determines if an error should trigger a retry. Rate
// limits, timeouts and network errors retry; authentication and invalid
// request errors do not.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()

	if strings.Contains(errStr, "authentication") || strings.Contains(errStr, "unauthorized") || strings.Contains(errStr, "401") {
		return false
	}

	if strings.Contains(errStr, "invalid") || strings.Contains(errStr, "bad request") || strings.Contains(errStr, "400") {
		return false
	}

	return true
}
