package logsvc

import (
	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/einsteinium08/class-bloom-space/core"
	"github.com/einsteinium08/class-bloom-space/core/user"
)

// RollbarLogger reports every entry to rollbar and forwards it to next.
type RollbarLogger struct {
	next core.Logger
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(next core.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	return &RollbarLogger{next: next}
}

func (l RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

// rollbarArgs keeps what rollbar understands: msg, error, map[string]interface{}.
// The first user.User becomes the rollbar person; key/value pairs are folded into a map.
func rollbarArgs(msg string, args []interface{}) (out []interface{}, usr *user.User) {
	out = make([]interface{}, 0, len(args)+2)
	out = append(out, msg)
	var extras map[string]interface{}
	for i := 0; i < len(args); i++ {
		switch arg := args[i].(type) {
		case user.User:
			if usr == nil {
				u := arg
				usr = &u
			}
		case string:
			if i+1 < len(args) {
				if extras == nil {
					extras = make(map[string]interface{})
				}
				extras[arg] = args[i+1]
				i++
			}
		default:
			out = append(out, arg)
		}
	}
	if extras != nil {
		out = append(out, extras)
	}
	return out, usr
}

func (l RollbarLogger) prepare(msg string, args []interface{}) []interface{} {
	out, usr := rollbarArgs(msg, args)
	if usr != nil {
		rollbar.SetPerson(usr.ID, usr.Name, usr.Email)
	} else {
		rollbar.ClearPerson()
	}
	return out
}

func (l RollbarLogger) Debug(msg string, args ...interface{}) {
	rollbar.Debug(l.prepare(msg, args)...)
	l.next.Debug(msg, args...)
}

func (l RollbarLogger) Info(msg string, args ...interface{}) {
	rollbar.Info(l.prepare(msg, args)...)
	l.next.Info(msg, args...)
}

func (l RollbarLogger) Warn(msg string, args ...interface{}) {
	rollbar.Warning(l.prepare(msg, args)...)
	l.next.Warn(msg, args...)
}

func (l RollbarLogger) Error(msg string, args ...interface{}) {
	rollbar.Error(l.prepare(msg, args)...)
	l.next.Error(msg, args...)
}

func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	rollbar.Critical(l.prepare(msg, args)...)
	rollbar.Wait()
	l.next.Fatal(msg, args...)
}
