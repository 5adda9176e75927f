package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/task-tracker/internal/config"
	"github.com/phrazzld/task-tracker/internal/counter"
	"github.com/phrazzld/task-tracker/internal/platform/logger"
	"github.com/phrazzld/task-tracker/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(dir string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 0, ShutdownTimeoutSeconds: 5},
		Log: config.LogConfig{
			Dir:          filepath.Join(dir, "logs"),
			RequestLevel: "debug",
			TaskLevel:    "debug",
		},
		Storage: config.StorageConfig{Path: filepath.Join(dir, "Storage", "data.json")},
	}
}

func newTestApp(t *testing.T, cfg *config.Config) (*application, *logger.TestLoggers) {
	t.Helper()

	requests := &counter.RequestCounter{}
	loggers := logger.NewTestLoggers(t, requests)
	app, err := newApplication(cfg, loggers.Loggers, requests, nil)
	require.NoError(t, err)
	return app, loggers
}

type snapshotDoc struct {
	RequestsCounter int64             `json:"requestsCounter"`
	TasksIDCounter  int64             `json:"tasksIdCounter"`
	Tasks           []json.RawMessage `json:"tasks"`
}

func readSnapshot(t *testing.T, path string) snapshotDoc {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc snapshotDoc
	require.NoError(t, json.Unmarshal(data, &doc))
	return doc
}

func createBody(title string) string {
	deadline := time.Now().Add(24 * time.Hour).UnixMilli()
	return fmt.Sprintf(`{"title":%q,"description":"d","deadline":%d,"priority":"HIGH"}`, title, deadline)
}

func TestNewApplicationWritesEmptySnapshot(t *testing.T) {
	cfg := testConfig(t.TempDir())

	newTestApp(t, cfg)

	doc := readSnapshot(t, cfg.Storage.Path)
	assert.Equal(t, int64(0), doc.RequestsCounter)
	assert.Equal(t, int64(1), doc.TasksIDCounter)
	assert.Empty(t, doc.Tasks)
}

func TestNewApplicationInvalidSnapshotIsFatal(t *testing.T) {
	cfg := testConfig(t.TempDir())
	require.NoError(t, os.MkdirAll(filepath.Dir(cfg.Storage.Path), 0o755))
	require.NoError(t, os.WriteFile(cfg.Storage.Path, []byte("{not json"), 0o644))

	requests := &counter.RequestCounter{}
	loggers := logger.NewTestLoggers(t, requests)
	_, err := newApplication(cfg, loggers.Loggers, requests, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrFatalIO)
}

func TestRouter(t *testing.T) {
	app, _ := newTestApp(t, testConfig(t.TempDir()))
	srv := httptest.NewServer(app.setupRouter())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/task/create", "application/json", strings.NewReader(createBody("A")))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.JSONEq(t, `{"result":"A new task has been added to the system","taskId":1}`, string(body))

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/task", http.StatusOK},
		{http.MethodGet, "/task/size?priority=ALL", http.StatusOK},
		{http.MethodGet, "/task/data", http.StatusOK},
		{http.MethodGet, "/task/search?keyword=a", http.StatusOK},
		{http.MethodGet, "/logs/level?logger-name=task-logger", http.StatusOK},
		{http.MethodPut, "/task/priority?id=1&priority=LOW", http.StatusOK},
		{http.MethodDelete, "/task?id=1", http.StatusOK},
		{http.MethodGet, "/unknown", http.StatusNotFound},
		{http.MethodPut, "/task", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, srv.URL+tt.path, nil)
			require.NoError(t, err)
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
		})
	}
}

func TestSetupRouterRequiresTaskService(t *testing.T) {
	app, _ := newTestApp(t, testConfig(t.TempDir()))
	app.taskService = nil

	assert.Panics(t, func() { app.setupRouter() })
}

func TestServeAndPersistOnShutdown(t *testing.T) {
	cfg := testConfig(t.TempDir())
	app, loggers := newTestApp(t, cfg)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	baseURL := "http://" + listener.Addr().String()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.serve(ctx, listener, app.setupRouter()) }()

	resp, err := http.Post(baseURL+"/task/create", "application/json", strings.NewReader(createBody("persisted")))
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = http.Get(baseURL + "/task")
	require.NoError(t, err)
	_ = resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}

	require.NoError(t, app.cleanup())
	logger.AssertLogField(t, loggers.TaskBuf, "msg", "snapshot saved")

	doc := readSnapshot(t, cfg.Storage.Path)
	assert.Equal(t, int64(2), doc.RequestsCounter)
	assert.Equal(t, int64(2), doc.TasksIDCounter)
	require.Len(t, doc.Tasks, 1)
	var saved map[string]interface{}
	require.NoError(t, json.Unmarshal(doc.Tasks[0], &saved))
	assert.Equal(t, "persisted", saved["title"])
	assert.Equal(t, float64(1), saved["id"])

	restored, _ := newTestApp(t, cfg)
	assert.Equal(t, int64(2), restored.requests.Value())
	size, err := restored.taskStore.Len(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, size)

	srv := httptest.NewServer(restored.setupRouter())
	defer srv.Close()
	resp, err = http.Post(srv.URL+"/task/create", "application/json", strings.NewReader(createBody("next")))
	require.NoError(t, err)
	defer resp.Body.Close()
	var created map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, float64(2), created["taskId"])
}

func TestCleanupReportsSaveFailure(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	app, _ := newTestApp(t, cfg)

	// Replace the storage directory with a file so the save cannot create it.
	storageDir := filepath.Dir(cfg.Storage.Path)
	require.NoError(t, os.RemoveAll(storageDir))
	require.NoError(t, os.WriteFile(storageDir, []byte("x"), 0o644))

	err := app.cleanup()

	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrFatalIO)
}
