package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// healthHandler reports whether the process is up.
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// statusHandler reports the TaskQueue's current emptiness and the number
// of instructions still admitted but not yet dequeued.
func (a *App) statusHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"empty":   a.queue.IsEmpty(),
		"pending": a.queue.Pending(),
	})
}

// StartHealthcheckServer launches the healthcheck HTTP server in the
// background. It is a no-op if the configured port is <= 0.
func (a *App) StartHealthcheckServer() {
	port := a.config.Healthcheck.Port
	if port <= 0 {
		a.logger.Debug("Healthcheck server disabled: port <= 0.")
		return
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", a.healthHandler)
	mux.HandleFunc("/status", a.statusHandler)

	addr := fmt.Sprintf(":%d", port)
	a.httpServer = &http.Server{Addr: addr, Handler: mux}

	go func() {
		a.logger.Info("🩺 Healthcheck server starting", "address", fmt.Sprintf("http://localhost%s/health", addr))
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("Healthcheck server failed unexpectedly", "error", err)
		}
	}()
}

// Close shuts down the healthcheck server and disconnects the monitor.
func (a *App) Close() error {
	a.monitor.Close()
	if a.httpServer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(a.ctx, 5*time.Second)
	defer cancel()
	a.logger.Info("🩺 Shutting down healthcheck server...")
	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.logger.Error("Healthcheck server shutdown failed", "error", err)
		return err
	}
	return nil
}
