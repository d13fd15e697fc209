package GetConversations

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"slack-standup-summariser/Models"

	"github.com/slack-go/slack"
)

type ThreadMessage = Models.ThreadMessage

const repliesPageSize = 200

// ConversationRepliesGetter is satisfied by *slack.Client.
type ConversationRepliesGetter interface {
	GetConversationRepliesContext(ctx context.Context, params *slack.GetConversationRepliesParameters) ([]slack.Message, bool, string, error)
}

// FetchError is a failure reported by the Slack platform itself,
// as opposed to a transport failure reaching it.
type FetchError struct {
	Code string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("conversations.replies failed: %s", e.Code)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// FetchThread returns every message of the thread rooted at threadTs,
// oldest first, following pagination until Slack reports no more pages.
func FetchThread(ctx context.Context, slackClient ConversationRepliesGetter, channelId, threadTs string) ([]ThreadMessage, error) {
	var threadMessages []ThreadMessage
	cursor := ""

	for {
		params := &slack.GetConversationRepliesParameters{
			Limit:     repliesPageSize,
			ChannelID: channelId,
			// when querying for thread replies, the parent thread
			// timestamp goes in the Timestamp field
			Timestamp: threadTs,
			Cursor:    cursor,
		}

		threadConversations, hasMore, nextCursor, getConversationRepliesError := slackClient.GetConversationRepliesContext(ctx, params)
		if getConversationRepliesError != nil {
			slog.Error("GetConversations:FetchThread#Error while fetching the conversation replies",
				"channel", channelId, "thread_ts", threadTs, "error", getConversationRepliesError)
			return nil, classifyError(getConversationRepliesError)
		}

		for _, threadConversation := range threadConversations {
			threadMessages = append(threadMessages, toThreadMessage(threadConversation))
		}

		if !hasMore || nextCursor == "" {
			break
		}
		cursor = nextCursor
	}

	slog.Debug("GetConversations:FetchThread#Fetched thread",
		"channel", channelId, "thread_ts", threadTs, "messages", len(threadMessages))
	return threadMessages, nil
}

func toThreadMessage(message slack.Message) ThreadMessage {
	author := message.User
	if author == "" {
		author = message.BotID
	}
	return ThreadMessage{
		UserId:    author,
		Text:      message.Text,
		Timestamp: message.Timestamp,
	}
}

func classifyError(err error) error {
	var slackErrorResponse slack.SlackErrorResponse
	if errors.As(err, &slackErrorResponse) {
		return &FetchError{Code: slackErrorResponse.Err, Err: err}
	}
	var rateLimitedError *slack.RateLimitedError
	if errors.As(err, &rateLimitedError) {
		return &FetchError{Code: "ratelimited", Err: err}
	}
	return fmt.Errorf("fetch thread: %w", err)
}
