package core

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type (
	LogFileConfig struct {
		Enabled    bool
		Path       string
		MaxSize    int // megabytes
		MaxBackups int
		MaxAge     int // days
		Compress   bool
	}

	Config struct {
		Env      string // DEV (local; default), TEST, QA, PROD
		Debug    bool
		TestMode bool
		AppName  string
		Build    string
		WorkDir  string

		// Seed loads the demo dataset into the store on construction.
		Seed bool

		Storage struct {
			Driver string // inmem | sqlite
			DSN    string
		}

		Log struct {
			Level string
			File  LogFileConfig
		}

		RollbarToken string

		Server struct {
			Host string
		}
	}
)

// NewConfig loads the configuration from the environment,
// the optional `config/.env.<env>` file and the defaults below.
func NewConfig() (*Config, error) {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("appName", "ClassBloom")
	v.SetDefault("build", "dev")
	v.SetDefault("seed", true)
	v.SetDefault("storage.driver", "inmem")
	v.SetDefault("storage.dsn", ":memory:")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file.enabled", false)
	v.SetDefault("log.file.path", filepath.Join("logs", "classroom.log"))
	v.SetDefault("log.file.maxSize", 10)
	v.SetDefault("log.file.maxBackups", 3)
	v.SetDefault("log.file.maxAge", 7)
	v.SetDefault("log.file.compress", false)
	v.SetDefault("rollbarToken", "")
	v.SetDefault("server.host", "localhost")

	env := strings.ToUpper(os.Getenv("ENV"))
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, "getting working directory")
	}

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "stat %s", dotEnvPath)
	}
	v.AutomaticEnv()

	conf := &Config{
		Env:          env,
		Debug:        v.GetBool("debug"),
		TestMode:     v.GetBool("testMode"),
		AppName:      v.GetString("appName"),
		Build:        v.GetString("build"),
		WorkDir:      wd,
		Seed:         v.GetBool("seed"),
		RollbarToken: v.GetString("rollbarToken"),
	}
	conf.Storage.Driver = strings.ToLower(v.GetString("storage.driver"))
	conf.Storage.DSN = v.GetString("storage.dsn")
	conf.Log.Level = strings.ToLower(v.GetString("log.level"))
	conf.Log.File = LogFileConfig{
		Enabled:    v.GetBool("log.file.enabled"),
		Path:       v.GetString("log.file.path"),
		MaxSize:    v.GetInt("log.file.maxSize"),
		MaxBackups: v.GetInt("log.file.maxBackups"),
		MaxAge:     v.GetInt("log.file.maxAge"),
		Compress:   v.GetBool("log.file.compress"),
	}
	conf.Server.Host = v.GetString("server.host")
	return conf, nil
}
