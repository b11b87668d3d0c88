package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/entitlements/pkg/errs"
	"github.com/dmitrymomot/entitlements/pkg/logger"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry), line)
		entries = append(entries, entry)
	}
	return entries
}

func TestNew_ProcessConfiguration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		env        string
		level      string
		wantDebug  bool
		wantInfo   bool
		wantFormat string
		wantEnv    string
	}{
		{name: "production defaults", env: "production", wantInfo: true, wantFormat: "json", wantEnv: "production"},
		{name: "production with debug level", env: "prod", level: "debug", wantDebug: true, wantInfo: true, wantFormat: "json", wantEnv: "production"},
		{name: "staging at warn", env: "staging", level: "warn", wantFormat: "json", wantEnv: "staging"},
		{name: "development defaults", env: "development", wantDebug: true, wantInfo: true, wantFormat: "text", wantEnv: "development"},
		{name: "unknown level keeps preset", env: "production", level: "verbose", wantInfo: true, wantFormat: "json", wantEnv: "production"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf := &bytes.Buffer{}
			log := logger.New(
				logger.WithEnvironment(tt.env, "entitlements"),
				logger.WithLevelName(tt.level),
				logger.WithOutput(buf),
			)
			log.Debug("catalog loaded")
			debugOut := buf.Len() > 0
			before := buf.Len()
			log.Info("worker started")
			infoOut := buf.Len() > before

			assert.Equal(t, tt.wantDebug, debugOut)
			assert.Equal(t, tt.wantInfo, infoOut)

			if buf.Len() == 0 {
				return
			}
			if tt.wantFormat == "text" {
				assert.Contains(t, buf.String(), "service=entitlements")
				assert.Contains(t, buf.String(), "env="+tt.wantEnv)
				return
			}
			for _, entry := range decodeLines(t, buf) {
				assert.Equal(t, "entitlements", entry["service"])
				assert.Equal(t, tt.wantEnv, entry["env"])
			}
		})
	}
}

func TestNew_DomainAttributes(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := logger.New(logger.WithEnvironment("production", "entitlements"), logger.WithOutput(buf)).
		With(logger.Component("subscription"))

	sentinel := errs.New(errs.KindPreconditionFailed, "subscription_user_missing", "subscription carries no user id")
	log.Error("refresh failed",
		logger.UserID("u1"),
		logger.SubscriptionID("sub_01"),
		logger.PlanCode("professional"),
		logger.GroupID(""),
		logger.ErrorKind(sentinel),
		logger.Error(sentinel),
	)

	entries := decodeLines(t, buf)
	require.Len(t, entries, 1)
	entry := entries[0]
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "subscription", entry["component"])
	assert.Equal(t, "u1", entry["user_id"])
	assert.Equal(t, "sub_01", entry["subscription_id"])
	assert.Equal(t, "professional", entry["plan_code"])
	assert.Equal(t, "precondition_failed", entry["error_kind"])
	assert.NotContains(t, entry, "group_id")
}

func TestNew_ContextValue(t *testing.T) {
	t.Parallel()

	type taskKey struct{}
	buf := &bytes.Buffer{}
	log := logger.New(
		logger.WithEnvironment("production", "entitlements"),
		logger.WithOutput(buf),
		logger.WithContextValue("task_id", taskKey{}),
		logger.WithAttr(slog.String("worker", "w1")),
	)

	log.InfoContext(context.WithValue(context.Background(), taskKey{}, "task-7"), "task done")
	log.Info("idle")

	entries := decodeLines(t, buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "task-7", entries[0]["task_id"])
	assert.Equal(t, "w1", entries[0]["worker"])
	assert.NotContains(t, entries[1], "task_id")
}

func TestSetAsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	buf := &bytes.Buffer{}
	logger.SetAsDefault(logger.New(logger.WithEnvironment("production", "entitlements"), logger.WithOutput(buf)))
	slog.Info("default")

	entries := decodeLines(t, buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "default", entries[0]["msg"])
	assert.Equal(t, "entitlements", entries[0]["service"])
}

func TestWithFormat(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	logger.New(logger.WithOutput(buf), logger.WithJSONFormatter(), logger.WithTextFormatter()).Info("plain")
	assert.Contains(t, buf.String(), "msg=plain")

	assert.Panics(t, func() {
		logger.New(logger.WithFormat(logger.Format("xml")))
	})
}
