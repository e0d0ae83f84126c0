package enrich

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scrutari/internal/common"
	"github.com/ternarybob/scrutari/internal/interfaces"
)

// ClaudeProvider implements the LLMProvider interface over the Anthropic API
type ClaudeProvider struct {
	client  *anthropic.Client
	model   string
	timeout time.Duration
	logger  arbor.ILogger
}

// Compile-time interface assertion
var _ interfaces.LLMProvider = (*ClaudeProvider)(nil)

// NewClaudeProvider creates a new Claude provider instance
func NewClaudeProvider(config *common.EnrichConfig, logger arbor.ILogger) (*ClaudeProvider, error) {
	if config.ClaudeAPIKey == "" {
		return nil, fmt.Errorf("Claude API key is required (set ANTHROPIC_API_KEY or enrich.claude_api_key in config)")
	}

	timeout, err := time.ParseDuration(config.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid timeout duration '%s': %w", config.Timeout, err)
	}

	client := anthropic.NewClient(
		option.WithAPIKey(config.ClaudeAPIKey),
	)

	logger.Info().Str("model", config.Model).Msg("Claude provider initialized")

	return &ClaudeProvider{
		client:  &client,
		model:   config.Model,
		timeout: timeout,
		logger:  logger,
	}, nil
}

// Complete sends a single-turn prompt and returns the generated text
func (p *ClaudeProvider) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}

	resp, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("Claude API call failed: %w", err)
	}

	var response strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			response.WriteString(block.Text)
		}
	}

	if response.Len() == 0 {
		return "", fmt.Errorf("no text in response")
	}

	return response.String(), nil
}

// Name returns the provider name
func (p *ClaudeProvider) Name() string {
	return "claude"
}

// Close releases provider resources
func (p *ClaudeProvider) Close() error {
	return nil
}
