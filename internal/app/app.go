package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/vk/shaclsched/internal/config"
	"github.com/vk/shaclsched/internal/ctxlog"
	"github.com/vk/shaclsched/internal/merger"
	"github.com/vk/shaclsched/internal/monitor"
	"github.com/vk/shaclsched/internal/scheduler"
	"github.com/vk/shaclsched/internal/task"
)

// App encapsulates the scheduler's dependencies, configuration, and
// lifecycle: the TaskQueue, its logger, its optional live monitor, and the
// optional healthcheck HTTP server.
type App struct {
	ctx        context.Context
	logger     *slog.Logger
	config     *config.Model
	queue      *scheduler.TaskQueue
	monitor    *monitor.Monitor
	httpServer *http.Server
}

// NewApp is the constructor for the scheduler host. It panics on a failed
// config load or an unparsable monitor URL (the monitor dials in the
// background, so a failed connection does not panic), the same way the
// teacher's NewApp panics on
// a failed grid/module load: both are startup-fatal, not recoverable
// business errors, and the caller (cmd/flowsched) recovers to print a
// clean message and exit non-zero.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, rewriters ...merger.Rewriter) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	cfgModel, err := loader.Load(ctx, appConfig.ConfigPath)
	if err != nil {
		panic(err)
	}
	if appConfig.HealthcheckPort > 0 {
		cfgModel.Healthcheck.Port = appConfig.HealthcheckPort
	}
	logger.Debug("Configuration loaded.", "priorities", cfgModel.Priorities, "healthcheck_port", cfgModel.Healthcheck.Port)

	mon, err := monitor.New(ctx, cfgModel.Monitor)
	if err != nil {
		panic(err)
	}

	queue := scheduler.New()
	for _, seed := range cfgModel.Priorities {
		queue.SeedPriority(seed)
	}
	for _, r := range rewriters {
		queue.RegisterRewriter(r)
	}
	queue.OnMerge(func(merged task.Task, superseded int) {
		mon.Emit(monitor.EventMerged, map[string]any{
			"payload":    merged.Payload,
			"superseded": superseded,
		})
	})
	logger.Debug("TaskQueue constructed.", "seeded_priorities", len(cfgModel.Priorities), "rewriters", len(rewriters))

	return &App{
		ctx:     ctx,
		logger:  logger,
		config:  cfgModel,
		queue:   queue,
		monitor: mon,
	}
}

// Queue returns the app's TaskQueue. Exposed primarily for the demo CLI and
// for tests.
func (a *App) Queue() *scheduler.TaskQueue { return a.queue }
