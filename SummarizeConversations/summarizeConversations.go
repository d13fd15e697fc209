package SummarizeConversations

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"slack-standup-summariser/Config"
)

// Summarizer turns concatenated thread text into a report.
type Summarizer interface {
	Summarize(ctx context.Context, threadText string) (string, error)
}

type PromptMode string

const (
	// PromptInline sends instruction and thread text together on every call.
	PromptInline PromptMode = "inline"
	// PromptSystem configures the instruction once as the system instruction.
	PromptSystem PromptMode = "system"
)

var errEmptyCompletion = errors.New("completion service returned no text")

type settings struct {
	model       string
	instruction string
	mode        PromptMode
	baseURL     string
	httpClient  *http.Client
}

// Option configures any Summarizer implementation.
type Option func(*settings)

func WithModel(model string) Option {
	return func(s *settings) {
		s.model = model
	}
}

func WithInstruction(instruction string) Option {
	return func(s *settings) {
		s.instruction = instruction
	}
}

func WithPromptMode(mode PromptMode) Option {
	return func(s *settings) {
		s.mode = mode
	}
}

// WithBaseURL points the client at a different API endpoint (for testing).
func WithBaseURL(url string) Option {
	return func(s *settings) {
		s.baseURL = url
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(s *settings) {
		s.httpClient = httpClient
	}
}

func newSettings(defaultModel string, opts []Option) settings {
	s := settings{
		model:       defaultModel,
		instruction: StandupInstruction,
		mode:        PromptInline,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// request splits a call into the system instruction (empty in inline mode)
// and the user content.
func (s settings) request(threadText string) (system string, user string) {
	if s.mode == PromptSystem {
		return s.instruction, threadText
	}
	return "", BuildPrompt(s.instruction, threadText)
}

func cleanCompletion(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", errEmptyCompletion
	}
	return text, nil
}

// NewSummarizer builds the Summarizer selected by cfg.
func NewSummarizer(ctx context.Context, cfg *Config.Config) (Summarizer, error) {
	instruction, loadInstructionError := LoadInstruction(cfg.PromptFile)
	if loadInstructionError != nil {
		return nil, loadInstructionError
	}

	opts := []Option{
		WithInstruction(instruction),
		WithPromptMode(PromptMode(cfg.PromptMode)),
	}
	if cfg.CompletionModel != "" {
		opts = append(opts, WithModel(cfg.CompletionModel))
	}

	switch cfg.CompletionProvider {
	case Config.ProviderGemini:
		return NewGeminiSummarizer(ctx, cfg.CompletionAPIKey, opts...)
	case Config.ProviderAnthropic:
		return NewAnthropicSummarizer(cfg.CompletionAPIKey, opts...), nil
	case Config.ProviderOpenAI:
		return NewOpenAISummarizer(cfg.CompletionAPIKey, opts...), nil
	default:
		return nil, fmt.Errorf("unknown completion provider %q", cfg.CompletionProvider)
	}
}
