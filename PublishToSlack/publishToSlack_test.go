package PublishToSlack

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type postedMessage struct {
	channel string
	values  url.Values
}

type mockPoster struct {
	posted []postedMessage
	err    error
}

func (m *mockPoster) PostMessageContext(_ context.Context, channelID string, options ...slack.MsgOption) (string, string, error) {
	_, values, err := slack.UnsafeApplyMsgOptions("xoxb-test", channelID, "https://slack.com/api/", options...)
	if err != nil {
		return "", "", err
	}
	m.posted = append(m.posted, postedMessage{channel: channelID, values: values})
	return channelID, "1700000000.000100", m.err
}

func TestFormatSummary(t *testing.T) {
	assert.Equal(t, "report", FormatSummary("report", "C123", false))
	assert.Equal(t, ":memo: *Standup summary from <#C123>*\n\nreport", FormatSummary("report", "C123", true))
}

func TestPublishSummary(t *testing.T) {
	poster := &mockPoster{}
	summary := "*Daily Standup Report on 2026-10-19*\n*1. What's done?*\n• X"

	require.NoError(t, PublishSummary(context.Background(), poster, "C0SUMMARY", summary))

	require.Len(t, poster.posted, 1)
	assert.Equal(t, "C0SUMMARY", poster.posted[0].channel)
	assert.Equal(t, summary, poster.posted[0].values.Get("text"))
	assert.Equal(t, "false", poster.posted[0].values.Get("unfurl_links"))
	assert.Equal(t, "false", poster.posted[0].values.Get("unfurl_media"))
	assert.Empty(t, poster.posted[0].values.Get("thread_ts"))
}

func TestPublishSummaryError(t *testing.T) {
	poster := &mockPoster{err: slack.SlackErrorResponse{Err: "channel_not_found"}}

	err := PublishSummary(context.Background(), poster, "C0SUMMARY", "report")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel_not_found")
}

func TestReplyInThread(t *testing.T) {
	poster := &mockPoster{}

	require.NoError(t, ReplyInThread(context.Background(), poster, "C123", "123.45", "Error fetching thread: thread_not_found"))

	require.Len(t, poster.posted, 1)
	assert.Equal(t, "C123", poster.posted[0].channel)
	assert.Equal(t, "123.45", poster.posted[0].values.Get("thread_ts"))
	assert.Equal(t, "Error fetching thread: thread_not_found", poster.posted[0].values.Get("text"))
}

func TestReplyWithoutThread(t *testing.T) {
	poster := &mockPoster{}

	require.NoError(t, ReplyInThread(context.Background(), poster, "C123", "", "hint"))

	require.Len(t, poster.posted, 1)
	assert.Empty(t, poster.posted[0].values.Get("thread_ts"))
}

func TestReplyInThreadError(t *testing.T) {
	transportErr := errors.New("connection reset")
	poster := &mockPoster{err: transportErr}

	err := ReplyInThread(context.Background(), poster, "C123", "123.45", "hint")
	assert.ErrorIs(t, err, transportErr)
}
