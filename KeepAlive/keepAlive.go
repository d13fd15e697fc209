package KeepAlive

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"
)

const selfPingSchedule = "@every 5m"

// NewHealthServer serves a plain liveness response on every path.
func NewHealthServer(port string) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Service running"))
	})
	return &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// StartSelfPing requests deploymentBaseURI every five minutes so hosts that
// idle out quiet services keep this one up. Stop the returned cron to end it.
func StartSelfPing(deploymentBaseURI string) (*cron.Cron, error) {
	httpClient := &http.Client{Timeout: 30 * time.Second}

	scheduler := cron.New()
	if _, addFuncError := scheduler.AddFunc(selfPingSchedule, func() {
		if pingError := ping(httpClient, deploymentBaseURI); pingError != nil {
			slog.Warn("KeepAlive:StartSelfPing#Health check failed", "error", pingError)
			return
		}
		slog.Debug("KeepAlive:StartSelfPing#Health check successful")
	}); addFuncError != nil {
		return nil, fmt.Errorf("schedule self ping: %w", addFuncError)
	}
	scheduler.Start()
	return scheduler, nil
}

func ping(httpClient *http.Client, url string) error {
	resp, err := httpClient.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	return nil
}
