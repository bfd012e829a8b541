package services

import (
	"errors"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// ErrLLMNotConfigured is returned when no API key is available
var ErrLLMNotConfigured = errors.New("text generation is not configured")

// NewLLMClient creates a chat model for an OpenAI compatible endpoint
func NewLLMClient(apiKey, apiEndpoint, model string) (llms.Model, error) {
	if apiKey == "" {
		return nil, ErrLLMNotConfigured
	}

	opts := []openai.Option{
		openai.WithToken(apiKey),
		openai.WithModel(model),
	}
	if apiEndpoint != "" {
		opts = append(opts, openai.WithBaseURL(apiEndpoint))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create text generation client: %w", err)
	}
	return llm, nil
}
