package SummarizeConversations

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.0-flash"

type GeminiSummarizer struct {
	client   *genai.Client
	settings settings
	config   *genai.GenerateContentConfig
}

func NewGeminiSummarizer(ctx context.Context, apiKey string, opts ...Option) (*GeminiSummarizer, error) {
	s := newSettings(defaultGeminiModel, opts)

	clientConfig := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: s.httpClient,
	}
	if s.baseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: s.baseURL}
	}

	genAiClient, genAiError := genai.NewClient(ctx, clientConfig)
	if genAiError != nil {
		return nil, fmt.Errorf("create gemini client: %w", genAiError)
	}

	var generateContentConfig *genai.GenerateContentConfig
	if s.mode == PromptSystem {
		generateContentConfig = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(s.instruction, genai.RoleUser),
		}
	}

	return &GeminiSummarizer{
		client:   genAiClient,
		settings: s,
		config:   generateContentConfig,
	}, nil
}

func (g *GeminiSummarizer) Summarize(ctx context.Context, threadText string) (string, error) {
	_, genAiPrompt := g.settings.request(threadText)

	genAiGenerateContentResult, genAiGenerateContentError := g.client.Models.GenerateContent(
		ctx,
		g.settings.model,
		genai.Text(genAiPrompt),
		g.config,
	)
	if genAiGenerateContentError != nil {
		slog.Error("SummarizeConversations:GeminiSummarizer#Error getting gemini summary",
			"model", g.settings.model, "error", genAiGenerateContentError)
		return "", fmt.Errorf("gemini generate content: %w", genAiGenerateContentError)
	}

	return cleanCompletion(genAiGenerateContentResult.Text())
}
