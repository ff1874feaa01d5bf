package hcl

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vk/shaclsched/internal/ctxlog"
)

func testContext() context.Context {
	return ctxlog.WithLogger(context.Background(), slog.Default())
}

func writeHCL(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.hcl")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
	return path
}

func TestLoadEmptyPathReturnsZeroModel(t *testing.T) {
	model, err := NewLoader().Load(testContext(), "")
	require.NoError(t, err)
	require.Empty(t, model.Priorities)
	require.Nil(t, model.Monitor)
	require.Equal(t, 0, model.Healthcheck.Port)
}

func TestLoadPrioritiesOnly(t *testing.T) {
	path := writeHCL(t, `priorities = [0, 1, 5]`)
	model, err := NewLoader().Load(testContext(), path)
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 5}, model.Priorities)
	require.Nil(t, model.Monitor)
}

func TestLoadMonitorBlockAppliesDefaults(t *testing.T) {
	path := writeHCL(t, `
monitor {
  url = "ws://localhost:9000/monitor"
}
`)
	model, err := NewLoader().Load(testContext(), path)
	require.NoError(t, err)
	require.NotNil(t, model.Monitor)
	require.Equal(t, "ws://localhost:9000/monitor", model.Monitor.URL)
	require.Equal(t, "/", model.Monitor.Namespace)
	require.Equal(t, 10*time.Second, model.Monitor.Timeout)
}

func TestLoadMonitorBlockHonorsExplicitValues(t *testing.T) {
	path := writeHCL(t, `
monitor {
  url             = "ws://localhost:9000/monitor"
  namespace       = "/sched"
  timeout_seconds = 30
}
`)
	model, err := NewLoader().Load(testContext(), path)
	require.NoError(t, err)
	require.Equal(t, "/sched", model.Monitor.Namespace)
	require.Equal(t, 30*time.Second, model.Monitor.Timeout)
}

func TestLoadHealthcheckBlock(t *testing.T) {
	path := writeHCL(t, `
healthcheck {
  port = 8080
}
`)
	model, err := NewLoader().Load(testContext(), path)
	require.NoError(t, err)
	require.Equal(t, 8080, model.Healthcheck.Port)
}

func TestLoadRejectsOutOfRangeHealthcheckPort(t *testing.T) {
	path := writeHCL(t, `
healthcheck {
  port = 70000
}
`)
	_, err := NewLoader().Load(testContext(), path)
	require.Error(t, err)
}

func TestLoadRejectsMalformedHCL(t *testing.T) {
	path := writeHCL(t, `priorities = [1, 2`)
	_, err := NewLoader().Load(testContext(), path)
	require.Error(t, err)
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := NewLoader().Load(testContext(), filepath.Join(t.TempDir(), "nope.hcl"))
	require.Error(t, err)
}
