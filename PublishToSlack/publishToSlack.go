package PublishToSlack

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"
)

// MessagePoster is satisfied by *slack.Client.
type MessagePoster interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// FormatSummary returns summary unchanged unless withHeader is set, in which
// case a header naming the source channel is put on top.
func FormatSummary(summary, sourceChannelId string, withHeader bool) string {
	if !withHeader {
		return summary
	}
	return fmt.Sprintf(":memo: *Standup summary from <#%s>*\n\n%s", sourceChannelId, summary)
}

func PublishSummary(ctx context.Context, slackClient MessagePoster, summaryChannelId, text string) error {
	_, _, publishSummaryError := slackClient.PostMessageContext(
		ctx,
		summaryChannelId,
		slack.MsgOptionText(text, false),
		// reports are plain text, no previews
		slack.MsgOptionDisableLinkUnfurl(),
		slack.MsgOptionDisableMediaUnfurl(),
	)
	if publishSummaryError != nil {
		return fmt.Errorf("publish summary to %s: %w", summaryChannelId, publishSummaryError)
	}
	return nil
}

// ReplyInThread answers the user who mentioned the bot. An empty threadTs
// posts to the channel itself.
func ReplyInThread(ctx context.Context, slackClient MessagePoster, channelId, threadTs, text string) error {
	options := []slack.MsgOption{slack.MsgOptionText(text, false)}
	if threadTs != "" {
		options = append(options, slack.MsgOptionTS(threadTs))
	}

	_, _, replyError := slackClient.PostMessageContext(ctx, channelId, options...)
	if replyError != nil {
		return fmt.Errorf("reply in %s: %w", channelId, replyError)
	}
	return nil
}
