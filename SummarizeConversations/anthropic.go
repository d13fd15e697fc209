package SummarizeConversations

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	defaultAnthropicModel = "claude-3-5-haiku-latest"
	anthropicMaxTokens    = 1024
)

type AnthropicSummarizer struct {
	client   anthropic.Client
	settings settings
}

func NewAnthropicSummarizer(apiKey string, opts ...Option) *AnthropicSummarizer {
	s := newSettings(defaultAnthropicModel, opts)

	// failures are reported back to the thread, never retried
	requestOptions := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if s.baseURL != "" {
		requestOptions = append(requestOptions, option.WithBaseURL(s.baseURL))
	}
	if s.httpClient != nil {
		requestOptions = append(requestOptions, option.WithHTTPClient(s.httpClient))
	}

	return &AnthropicSummarizer{
		client:   anthropic.NewClient(requestOptions...),
		settings: s,
	}
}

func (a *AnthropicSummarizer) Summarize(ctx context.Context, threadText string) (string, error) {
	system, user := a.settings.request(threadText)

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(a.settings.model),
		MaxTokens: anthropicMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	msg, err := a.client.Messages.New(ctx, params)
	if err != nil {
		slog.Error("SummarizeConversations:AnthropicSummarizer#Error getting anthropic summary",
			"model", a.settings.model, "error", err)
		return "", fmt.Errorf("anthropic messages: %w", err)
	}

	for _, block := range msg.Content {
		if block.Type == "text" {
			return cleanCompletion(block.Text)
		}
	}
	return "", errEmptyCompletion
}
