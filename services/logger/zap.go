package logsvc

import (
	"os"
	"path/filepath"

	"github.com/natefinch/lumberjack"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/einsteinium08/class-bloom-space/core"
	"github.com/einsteinium08/class-bloom-space/core/user"
)

type ZapLogger struct {
	zl   *zap.Logger
	file *lumberjack.Logger
}

var _ core.Logger = (*ZapLogger)(nil)

func ParseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	}
	return zapcore.InfoLevel
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// NewZapLogger logs to stderr (console encoding in debug, json otherwise)
// and, when enabled, to a rotated json file.
func NewZapLogger(conf *core.Config) (*ZapLogger, error) {
	level := zap.NewAtomicLevelAt(ParseLevel(conf.Log.Level))
	encConf := encoderConfig()

	consoleEnc := zapcore.NewJSONEncoder(encConf)
	if conf.Debug {
		consoleEnc = zapcore.NewConsoleEncoder(encConf)
	}
	cores := []zapcore.Core{zapcore.NewCore(consoleEnc, zapcore.Lock(os.Stderr), level)}

	var file *lumberjack.Logger
	if conf.Log.File.Enabled && conf.Log.File.Path != "" {
		path := conf.Log.File.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(conf.WorkDir, path)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, errors.Wrap(err, "creating log directory")
		}
		file = &lumberjack.Logger{
			Filename:   path,
			MaxSize:    conf.Log.File.MaxSize,
			MaxBackups: conf.Log.File.MaxBackups,
			MaxAge:     conf.Log.File.MaxAge,
			Compress:   conf.Log.File.Compress,
			LocalTime:  true,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encConf), zapcore.AddSync(file), level))
	}

	zl := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1)).
		With(zap.String("app", conf.AppName), zap.String("env", conf.Env))
	return &ZapLogger{zl: zl, file: file}, nil
}

// NewZapLoggerFrom wraps an existing zap logger.
func NewZapLoggerFrom(zl *zap.Logger) *ZapLogger {
	return &ZapLogger{zl: zl.WithOptions(zap.AddCallerSkip(1))}
}

func (l *ZapLogger) Debug(msg string, args ...interface{}) { l.zl.Debug(msg, zapFields(args)...) }
func (l *ZapLogger) Info(msg string, args ...interface{})  { l.zl.Info(msg, zapFields(args)...) }
func (l *ZapLogger) Warn(msg string, args ...interface{})  { l.zl.Warn(msg, zapFields(args)...) }
func (l *ZapLogger) Error(msg string, args ...interface{}) { l.zl.Error(msg, zapFields(args)...) }
func (l *ZapLogger) Fatal(msg string, args ...interface{}) { l.zl.Fatal(msg, zapFields(args)...) }

// Close flushes buffered entries and releases the log file.
func (l *ZapLogger) Close() error {
	_ = l.zl.Sync() // stderr sync fails on some terminals
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// zapFields converts loosely typed args: errors, maps, users and key/value pairs.
func zapFields(args []interface{}) []zap.Field {
	fields := make([]zap.Field, 0, len(args))
	for i := 0; i < len(args); i++ {
		switch arg := args[i].(type) {
		case error:
			fields = append(fields, zap.Error(arg))
		case user.User:
			fields = append(fields, zap.String("user_id", arg.ID), zap.String("user", arg.Name))
		case map[string]interface{}:
			for k, v := range arg {
				fields = append(fields, zap.Any(k, v))
			}
		case string:
			if i+1 < len(args) {
				fields = append(fields, zap.Any(arg, args[i+1]))
				i++
			} else {
				fields = append(fields, zap.String("extra", arg))
			}
		default:
			fields = append(fields, zap.Any("field", arg))
		}
	}
	return fields
}
