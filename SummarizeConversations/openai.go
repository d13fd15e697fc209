package SummarizeConversations

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sashabaranov/go-openai"
)

const defaultOpenAIModel = openai.GPT4oMini

type OpenAISummarizer struct {
	client   *openai.Client
	settings settings
}

func NewOpenAISummarizer(apiKey string, opts ...Option) *OpenAISummarizer {
	s := newSettings(defaultOpenAIModel, opts)

	clientConfig := openai.DefaultConfig(apiKey)
	if s.baseURL != "" {
		clientConfig.BaseURL = s.baseURL
	}
	if s.httpClient != nil {
		clientConfig.HTTPClient = s.httpClient
	}

	return &OpenAISummarizer{
		client:   openai.NewClientWithConfig(clientConfig),
		settings: s,
	}
}

func (o *OpenAISummarizer) Summarize(ctx context.Context, threadText string) (string, error) {
	system, user := o.settings.request(threadText)

	var messages []openai.ChatCompletionMessage
	if system != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: system,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: user,
	})

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    o.settings.model,
		Messages: messages,
	})
	if err != nil {
		slog.Error("SummarizeConversations:OpenAISummarizer#Error getting openai summary",
			"model", o.settings.model, "error", err)
		return "", fmt.Errorf("openai chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errEmptyCompletion
	}
	return cleanCompletion(resp.Choices[0].Message.Content)
}
