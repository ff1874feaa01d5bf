package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/shaclsched/internal/config"
	"github.com/vk/shaclsched/internal/task"
)

var errBoom = errors.New("boom")

type fakeLoader struct {
	model *config.Model
	err   error
}

func (f fakeLoader) Load(ctx context.Context, path string) (*config.Model, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.model != nil {
		return f.model, nil
	}
	return &config.Model{}, nil
}

func newTestApp(t *testing.T) (*App, io.Writer) {
	t.Helper()
	var buf bytes.Buffer
	cfg, err := NewConfig(Config{LogLevel: "debug", LogFormat: "text"})
	require.NoError(t, err)
	a := NewApp(&buf, cfg, fakeLoader{})
	return a, &buf
}

func TestNewAppWithDefaultsHasNoMonitorAndNoHealthcheck(t *testing.T) {
	a, _ := newTestApp(t)
	require.True(t, a.Queue().IsEmpty())
	require.Equal(t, 0, a.config.Healthcheck.Port)
}

func TestEnqueueDequeueRoundTrip(t *testing.T) {
	a, _ := newTestApp(t)
	require.NoError(t, a.Enqueue(task.New("job-1", nil, nil, 0)))

	got, ok := a.Dequeue()
	require.True(t, ok)
	require.Equal(t, "job-1", got.Payload)

	_, ok = a.Dequeue()
	require.False(t, ok)
}

func TestDrainInvokesCallbackForEveryTask(t *testing.T) {
	a, _ := newTestApp(t)
	require.NoError(t, a.Enqueue(task.New("a", nil, nil, 0)))
	require.NoError(t, a.Enqueue(task.New("b", nil, nil, 0)))

	var seen []string
	a.Drain(func(t task.Task) {
		seen = append(seen, t.Payload.(string))
	})

	require.Equal(t, []string{"a", "b"}, seen)
}

func TestNewAppPanicsOnLoaderError(t *testing.T) {
	var buf bytes.Buffer
	cfg, err := NewConfig(Config{LogLevel: "info", LogFormat: "json"})
	require.NoError(t, err)

	require.Panics(t, func() {
		NewApp(&buf, cfg, fakeLoader{err: errBoom})
	})
}

func TestStatusHandlerReportsEmptyAndPending(t *testing.T) {
	a, _ := newTestApp(t)
	require.NoError(t, a.Enqueue(task.New("job-1", nil, nil, 0)))

	rec := httptest.NewRecorder()
	a.statusHandler(rec, httptest.NewRequest("GET", "/status", nil))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, false, body["empty"])
	require.Equal(t, float64(1), body["pending"])
}

func TestStartHealthcheckServerNoOpWhenDisabled(t *testing.T) {
	a, _ := newTestApp(t)
	require.NotPanics(t, a.StartHealthcheckServer)
	require.NoError(t, a.Close())
}
