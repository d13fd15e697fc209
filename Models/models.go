package Models

// MentionEvent is the part of an app_mention we act on.
// ThreadTimestamp is empty when the bot was mentioned outside a thread.
type MentionEvent struct {
	ChannelId       string
	ThreadTimestamp string
	User            string
	Timestamp       string
}

func (m MentionEvent) InThread() bool {
	return m.ThreadTimestamp != ""
}

type ThreadMessage struct {
	// UserId is the bot id for bot authored messages
	UserId    string
	Text      string
	Timestamp string
}
