package logsvc

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/einsteinium08/class-bloom-space/core"
	"github.com/einsteinium08/class-bloom-space/core/user"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"loud":    zapcore.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestZapLogger_fields(t *testing.T) {
	zc, logs := observer.New(zapcore.DebugLevel)
	logger := NewZapLoggerFrom(zap.New(zc))

	usr := user.User{ID: "u1", Name: "Amani"}
	errBoom := errors.New("boom")
	logger.Warn("assignment updated", "id", "1", errBoom, usr, map[string]interface{}{"status": "graded"}, "dangling")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "assignment updated", entries[0].Message)
	assert.Equal(t, map[string]interface{}{
		"id":      "1",
		"error":   "boom",
		"user_id": "u1",
		"user":    "Amani",
		"status":  "graded",
		"extra":   "dangling",
	}, entries[0].ContextMap())
}

func TestZapLogger_levels(t *testing.T) {
	zc, logs := observer.New(zapcore.InfoLevel)
	logger := NewZapLoggerFrom(zap.New(zc))

	logger.Debug("hidden")
	logger.Info("info")
	logger.Error("error")
	assert.Equal(t, 2, logs.Len())
	assert.Equal(t, 1, logs.FilterMessage("error").Len())
}

func TestNew(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name        string
		conf        func(conf *core.Config)
		wantRollbar bool
	}{
		{name: "debug", conf: func(conf *core.Config) { conf.Debug = true; conf.RollbarToken = "token" }},
		{name: "no token", conf: func(conf *core.Config) {}},
		{name: "test mode", conf: func(conf *core.Config) { conf.TestMode = true; conf.RollbarToken = "token" }},
		{name: "rollbar", conf: func(conf *core.Config) { conf.RollbarToken = "token" }, wantRollbar: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := &core.Config{Env: "TEST", AppName: "ClassBloom", WorkDir: dir}
			conf.Log.Level = "error"
			tt.conf(conf)

			logger, closeFn, err := New(conf)
			require.NoError(t, err)
			defer func() { _ = closeFn() }()

			rl, isRollbar := logger.(*RollbarLogger)
			assert.Equal(t, tt.wantRollbar, isRollbar)
			if isRollbar {
				rl.Enable(false)
			}
		})
	}
}

func TestNewZapLogger_file(t *testing.T) {
	dir := t.TempDir()
	conf := &core.Config{Env: "TEST", AppName: "ClassBloom", WorkDir: dir}
	conf.Log.Level = "info"
	conf.Log.File = core.LogFileConfig{Enabled: true, Path: filepath.Join("logs", "classroom.log"), MaxSize: 1}

	logger, err := NewZapLogger(conf)
	require.NoError(t, err)
	logger.Info("assignment submitted", "id", "1")
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(filepath.Join(dir, "logs", "classroom.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"assignment submitted"`)
	assert.Contains(t, string(data), `"id":"1"`)
	assert.Contains(t, string(data), `"app":"ClassBloom"`)
}

func Test_rollbarArgs(t *testing.T) {
	usr := user.User{ID: "u1", Name: "Amani"}
	other := user.User{ID: "u2", Name: "Juma"}
	errBoom := errors.New("boom")

	args, got := rollbarArgs("grading failed", []interface{}{"id", "1", errBoom, usr, other})
	require.NotNil(t, got)
	assert.Equal(t, usr, *got)
	assert.Equal(t, []interface{}{"grading failed", errBoom, map[string]interface{}{"id": "1"}}, args)

	args, got = rollbarArgs("plain", nil)
	assert.Nil(t, got)
	assert.Equal(t, []interface{}{"plain"}, args)
}

func TestNopLogger(t *testing.T) {
	var logger core.Logger = NewNopLogger()
	assert.NotPanics(t, func() {
		logger.Debug("x")
		logger.Info("x", "k", "v")
		logger.Warn("x")
		logger.Error("x", errors.New("boom"))
	})
}
