// Package logsvc provides the core.Logger implementations.
package logsvc

import (
	"github.com/einsteinium08/class-bloom-space/core"
)

// New builds the application logger: zap, plus rollbar when a token is set outside debug mode.
// The returned close func flushes everything.
func New(conf *core.Config) (core.Logger, func() error, error) {
	zl, err := NewZapLogger(conf)
	if err != nil {
		return nil, nil, err
	}
	if conf.RollbarToken == "" || conf.Debug || conf.TestMode {
		return zl, zl.Close, nil
	}

	rl := NewRollbarLogger(zl, conf)
	rl.Enable(true)
	return rl, zl.Close, nil
}

type NopLogger struct{}

var _ core.Logger = NopLogger{}

func NewNopLogger() NopLogger { return NopLogger{} }

func (NopLogger) Debug(string, ...interface{}) {}
func (NopLogger) Info(string, ...interface{})  {}
func (NopLogger) Warn(string, ...interface{})  {}
func (NopLogger) Error(string, ...interface{}) {}
func (NopLogger) Fatal(string, ...interface{}) {}
