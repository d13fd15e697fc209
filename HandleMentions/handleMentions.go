package HandleMentions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"slack-standup-summariser/GetConversations"
	"slack-standup-summariser/Models"
	"slack-standup-summariser/PublishToSlack"
	"slack-standup-summariser/SummarizeConversations"
)

type MentionEvent = Models.MentionEvent

const MissingThreadMessage = "Please mention me *in a thread* to summarize it."

// SlackAPI is the subset of *slack.Client the handler needs.
type SlackAPI interface {
	GetConversations.ConversationRepliesGetter
	PublishToSlack.MessagePoster
}

type Handler struct {
	slackClient      SlackAPI
	summarizer       SummarizeConversations.Summarizer
	summaryChannelId string
	threadPolicy     SummarizeConversations.ThreadPolicy
	summaryHeader    bool
}

type HandlerOption func(*Handler)

func WithThreadPolicy(policy SummarizeConversations.ThreadPolicy) HandlerOption {
	return func(h *Handler) {
		h.threadPolicy = policy
	}
}

// WithSummaryHeader prefixes published summaries with the source channel.
func WithSummaryHeader(enabled bool) HandlerOption {
	return func(h *Handler) {
		h.summaryHeader = enabled
	}
}

func NewHandler(slackClient SlackAPI, summarizer SummarizeConversations.Summarizer, summaryChannelId string, opts ...HandlerOption) *Handler {
	h := &Handler{
		slackClient:      slackClient,
		summarizer:       summarizer,
		summaryChannelId: summaryChannelId,
		threadPolicy:     SummarizeConversations.ExcludeMention,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// HandleMention summarizes the thread the bot was mentioned in and publishes
// the summary to the summary channel. Failures are reported back in the
// thread and returned; nothing is retried.
func (h *Handler) HandleMention(ctx context.Context, mention MentionEvent) error {
	if !mention.InThread() {
		return PublishToSlack.ReplyInThread(ctx, h.slackClient, mention.ChannelId, "", MissingThreadMessage)
	}

	threadMessages, fetchThreadError := GetConversations.FetchThread(ctx, h.slackClient, mention.ChannelId, mention.ThreadTimestamp)
	if fetchThreadError != nil {
		var platformError *GetConversations.FetchError
		if errors.As(fetchThreadError, &platformError) {
			return h.replyWithError(ctx, mention, fmt.Sprintf("Error fetching thread: %s", platformError.Code), fetchThreadError)
		}
		return h.replyWithError(ctx, mention, summarizingErrorMessage(fetchThreadError), fetchThreadError)
	}

	threadText := SummarizeConversations.BuildThreadText(threadMessages, h.threadPolicy)
	slog.Debug("HandleMentions:HandleMention#Summarizing thread",
		"channel", mention.ChannelId, "thread_ts", mention.ThreadTimestamp, "messages", len(threadMessages))

	summary, summarizeError := h.summarizer.Summarize(ctx, threadText)
	if summarizeError != nil {
		return h.replyWithError(ctx, mention, summarizingErrorMessage(summarizeError), summarizeError)
	}

	text := PublishToSlack.FormatSummary(summary, mention.ChannelId, h.summaryHeader)
	if publishError := PublishToSlack.PublishSummary(ctx, h.slackClient, h.summaryChannelId, text); publishError != nil {
		return h.replyWithError(ctx, mention, summarizingErrorMessage(publishError), publishError)
	}

	slog.Info("HandleMentions:HandleMention#Published summary",
		"channel", mention.ChannelId, "thread_ts", mention.ThreadTimestamp, "summary_channel", h.summaryChannelId)
	return nil
}

func summarizingErrorMessage(err error) string {
	return fmt.Sprintf("Error summarizing: %s", err)
}

func (h *Handler) replyWithError(ctx context.Context, mention MentionEvent, text string, cause error) error {
	if replyError := PublishToSlack.ReplyInThread(ctx, h.slackClient, mention.ChannelId, mention.ThreadTimestamp, text); replyError != nil {
		return errors.Join(cause, replyError)
	}
	return cause
}
