package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lifescore/lifescore/internal/webhook"
	"github.com/lifescore/lifescore/pkg/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Server.Port = "0"
	cfg.Server.ShutdownTimeout = 5
	cfg.Database.URL = "file:" + filepath.Join(dir, "lifescore.db") + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	cfg.Storage.LocalPath = filepath.Join(dir, "reports")
	cfg.Scoring.Seed = 1
	return cfg
}

func TestAppServesLeads(t *testing.T) {
	var (
		mu     sync.Mutex
		events []webhook.LeadEvent
		sigs   []string
	)
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var ev webhook.LeadEvent
		_ = json.Unmarshal(body, &ev)
		mu.Lock()
		events = append(events, ev)
		sigs = append(sigs, r.Header.Get(webhook.SignatureHeader))
		mu.Unlock()
	}))
	defer hook.Close()

	cfg := testConfig(t)
	cfg.Webhook.URL = hook.URL
	cfg.Webhook.Secret = "s3cret"
	cfg.Webhook.Source = "landing"

	a, err := newApp(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)

	srv := httptest.NewServer(a.handler)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := `{"email":"Parent@Example.com","audience":"child","child":{"age":8,"screen_hours":3,"devices":["tv"]}}`
	resp, err = http.Post(srv.URL+"/api/v1/leads", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	var out struct {
		SubmissionID string `json:"submission_id"`
		ReportRef    string `json:"report_ref"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, out.SubmissionID)
	assert.Equal(t, "reports/"+out.SubmissionID+".md", out.ReportRef)

	resp, err = http.Get(srv.URL + "/api/v1/reports/" + out.SubmissionID)
	require.NoError(t, err)
	report, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(report), "parent@example.com")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, a.Close(ctx))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, events, 1)
	assert.Equal(t, "parent@example.com", events[0].Email)
	assert.Equal(t, "landing", events[0].Source)
	assert.Equal(t, "child", events[0].Audience)
	assert.True(t, strings.HasPrefix(sigs[0], "sha256="))
}

func TestAppAdminDisabledWithoutSecret(t *testing.T) {
	a, err := newApp(context.Background(), testConfig(t), zap.NewNop())
	require.NoError(t, err)
	defer a.Close(context.Background())

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/stats", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestNewAppRejectsUnknownStorage(t *testing.T) {
	cfg := testConfig(t)
	cfg.Storage.Backend = "ftp"

	_, err := newApp(context.Background(), cfg, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown storage backend")
}

func TestRunStopsOnCancel(t *testing.T) {
	cfg := testConfig(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, cfg, zap.NewNop()) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("run did not return after cancel")
	}
}

func TestServeExitCodes(t *testing.T) {
	for _, k := range []string{
		"PORT", "LIFESCORE_PORT", "LIFESCORE_DB_DRIVER", "DATABASE_URL", "LIFESCORE_STORAGE_BACKEND",
		"LOCAL_STORAGE_PATH", "LIFESCORE_WEBHOOK_URL", "LIFESCORE_JWT_SECRET", "LIFESCORE_SEED",
	} {
		t.Setenv(k, "")
	}

	dir := t.TempDir()
	writeConfig := func(t *testing.T, body string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		return path
	}
	// Listening on a bad port fails after the app is wired, so the error
	// path has resources to release.
	listenFails := writeConfig(t, `
server:
  port: "not-a-port"
database:
  url: "file:`+filepath.Join(dir, "lifescore.db")+`?_pragma=busy_timeout(5000)"
storage:
  local_path: "`+filepath.Join(dir, "reports")+`"
logging:
  level: error
`)
	invalid := writeConfig(t, "database:\n  driver: oracle\n")

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"bad flag", []string{"--nope"}, 2},
		{"invalid config", []string{"--config", invalid}, 1},
		{"listen failure", []string{"--config", listenFails}, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var stderr bytes.Buffer
			assert.Equal(t, tc.want, serve(tc.args, &stderr))
		})
	}
}
