package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"slack-standup-summariser/Config"
	"slack-standup-summariser/HandleMentions"
	"slack-standup-summariser/KeepAlive"
	"slack-standup-summariser/SummarizeConversations"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/socketmode"
)

func main() {
	cfg, configError := Config.Load()
	if configError != nil {
		slog.Error("main#Failed to load config", "error", configError)
		os.Exit(1)
	}

	logLevel, _ := cfg.SlogLevel()
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	summarizer, summarizerError := SummarizeConversations.NewSummarizer(ctx, cfg)
	if summarizerError != nil {
		slog.Error("main#Failed to initialise summarizer", "provider", cfg.CompletionProvider, "error", summarizerError)
		os.Exit(1)
	}

	slackLogger := log.New(os.Stdout, "slack: ", log.Lshortfile|log.LstdFlags)
	slackBotApi := slack.New(
		cfg.SlackBotToken,
		slack.OptionAppLevelToken(cfg.SlackAppToken),
		slack.OptionDebug(cfg.SlackDebug),
		slack.OptionLog(slackLogger),
	)
	socketClient := socketmode.New(
		slackBotApi,
		socketmode.OptionDebug(cfg.SlackDebug),
		socketmode.OptionLog(slackLogger),
	)

	handler := HandleMentions.NewHandler(
		slackBotApi,
		summarizer,
		cfg.SummaryChannel,
		HandleMentions.WithThreadPolicy(SummarizeConversations.ThreadPolicy(cfg.ThreadPolicy)),
		HandleMentions.WithSummaryHeader(cfg.SummaryHeader),
	)

	if cfg.HealthPort != "" {
		healthServer := KeepAlive.NewHealthServer(cfg.HealthPort)
		go func() {
			if serveError := healthServer.ListenAndServe(); serveError != nil && !errors.Is(serveError, http.ErrServerClosed) {
				slog.Error("main#Health server stopped", "error", serveError)
			}
		}()
		defer healthServer.Shutdown(context.Background())
	}
	if cfg.DeploymentBaseURI != "" {
		selfPing, selfPingError := KeepAlive.StartSelfPing(cfg.DeploymentBaseURI)
		if selfPingError != nil {
			slog.Error("main#Failed to schedule self ping", "error", selfPingError)
			os.Exit(1)
		}
		defer selfPing.Stop()
	}

	slog.Info("main#Starting standup summariser",
		"provider", cfg.CompletionProvider,
		"model", cfg.CompletionModel,
		"thread_policy", cfg.ThreadPolicy,
		"prompt_mode", cfg.PromptMode,
		"summary_channel", cfg.SummaryChannel)

	if runError := HandleMentions.NewListener(socketClient, handler).Run(ctx); runError != nil {
		slog.Error("main#Socket mode connection failed", "error", runError)
		os.Exit(1)
	}
	slog.Info("main#Stopped")
}
