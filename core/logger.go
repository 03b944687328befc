package core

// Logger is any service that can log messages.
// expected args fmt: error | map[string]interface{} | key, value pairs | user.User
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
