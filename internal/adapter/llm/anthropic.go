package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/heartmarshall/worklog-backend/internal/config"
)

// Anthropic implements Generator using the Anthropic Messages API.
type Anthropic struct {
	client anthropic.Client
	cfg    config.LLMConfig
}

// NewAnthropic creates an Anthropic-backed generator from config.
// The caller is expected to have checked that an API key is present;
// without one, use NewNoop instead.
func NewAnthropic(cfg config.LLMConfig) *Anthropic {
	return &Anthropic{
		client: anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		cfg:    cfg,
	}
}

// Available reports whether the generator can be called.
func (a *Anthropic) Available() bool { return a.cfg.APIKey != "" }

// Complete sends the prompt as a single user message and returns the
// concatenated text blocks of the response.
func (a *Anthropic) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()

	msg, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(a.cfg.Model),
		MaxTokens:   int64(a.cfg.MaxTokens),
		Temperature: anthropic.Float(a.cfg.Temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic completion: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("anthropic completion: empty response")
	}

	return text, nil
}
