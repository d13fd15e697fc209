package HandleMentions

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"
)

// MentionHandler is implemented by *Handler.
type MentionHandler interface {
	HandleMention(ctx context.Context, mention MentionEvent) error
}

type acknowledger interface {
	Ack(req socketmode.Request, payload ...interface{})
}

// Listener receives events over a socket-mode connection and hands every
// app_mention to a MentionHandler on its own goroutine.
type Listener struct {
	events  <-chan socketmode.Event
	acker   acknowledger
	run     func(ctx context.Context) error
	handler MentionHandler

	inFlight sync.WaitGroup
}

func NewListener(client *socketmode.Client, handler MentionHandler) *Listener {
	return &Listener{
		events:  client.Events,
		acker:   client,
		run:     client.RunContext,
		handler: handler,
	}
}

// Run keeps the connection open until ctx is done or the connection fails
// for good, then waits for in-flight mentions to finish.
func (l *Listener) Run(ctx context.Context) error {
	runResult := make(chan error, 1)
	go func() {
		runResult <- l.run(ctx)
	}()

	defer l.inFlight.Wait()
	for {
		select {
		case <-ctx.Done():
			return nil
		case runError := <-runResult:
			if runError == nil || errors.Is(runError, context.Canceled) {
				return nil
			}
			return runError
		case evt, ok := <-l.events:
			if !ok {
				return nil
			}
			l.dispatch(ctx, evt)
		}
	}
}

func (l *Listener) dispatch(ctx context.Context, evt socketmode.Event) {
	switch evt.Type {
	case socketmode.EventTypeConnecting:
		slog.Info("HandleMentions:Listener#Connecting to Slack with socket mode")
	case socketmode.EventTypeConnectionError:
		slog.Warn("HandleMentions:Listener#Connection failed, retrying", "data", evt.Data)
	case socketmode.EventTypeConnected:
		slog.Info("HandleMentions:Listener#Connected to Slack with socket mode")
	case socketmode.EventTypeDisconnect:
		slog.Warn("HandleMentions:Listener#Disconnected from Slack")
	case socketmode.EventTypeEventsAPI:
		if evt.Request != nil {
			l.acker.Ack(*evt.Request)
		}
		eventsAPIEvent, ok := evt.Data.(slackevents.EventsAPIEvent)
		if !ok {
			slog.Warn("HandleMentions:Listener#Ignoring unexpected events API payload", "data", evt.Data)
			return
		}
		l.dispatchEventsAPI(ctx, eventsAPIEvent)
	case socketmode.EventTypeInteractive, socketmode.EventTypeSlashCommand:
		// not subscribed to, but unacknowledged requests get redelivered
		if evt.Request != nil {
			l.acker.Ack(*evt.Request)
		}
	default:
		slog.Debug("HandleMentions:Listener#Ignoring socket mode event", "type", evt.Type)
	}
}

func (l *Listener) dispatchEventsAPI(ctx context.Context, eventsAPIEvent slackevents.EventsAPIEvent) {
	if eventsAPIEvent.Type != slackevents.CallbackEvent {
		return
	}
	appMention, ok := eventsAPIEvent.InnerEvent.Data.(*slackevents.AppMentionEvent)
	if !ok {
		slog.Debug("HandleMentions:Listener#Ignoring inner event", "type", eventsAPIEvent.InnerEvent.Type)
		return
	}

	mention := mentionFromEvent(appMention)
	slog.Info("HandleMentions:Listener#Received mention",
		"channel", mention.ChannelId, "thread_ts", mention.ThreadTimestamp, "user", mention.User)

	// a mention being handled finishes even when the listener shuts down
	handlerCtx := context.WithoutCancel(ctx)
	l.inFlight.Add(1)
	go func() {
		defer l.inFlight.Done()
		if handleMentionError := l.handler.HandleMention(handlerCtx, mention); handleMentionError != nil {
			slog.Error("HandleMentions:Listener#Error handling mention",
				"channel", mention.ChannelId, "thread_ts", mention.ThreadTimestamp, "error", handleMentionError)
		}
	}()
}

func mentionFromEvent(ev *slackevents.AppMentionEvent) MentionEvent {
	return MentionEvent{
		ChannelId:       ev.Channel,
		ThreadTimestamp: ev.ThreadTimeStamp,
		User:            ev.User,
		Timestamp:       ev.TimeStamp,
	}
}
