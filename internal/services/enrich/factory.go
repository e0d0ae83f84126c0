package enrich

import (
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scrutari/internal/common"
	"github.com/ternarybob/scrutari/internal/interfaces"
)

// NewProvider builds the configured LLM provider
func NewProvider(config *common.EnrichConfig, logger arbor.ILogger) (interfaces.LLMProvider, error) {
	switch config.Provider {
	case "gemini":
		return NewGeminiProvider(config, logger)
	case "claude":
		return NewClaudeProvider(config, logger)
	default:
		return nil, fmt.Errorf("unknown provider '%s' (supported: gemini, claude)", config.Provider)
	}
}
