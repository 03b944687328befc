package main

import (
	"context"
	"log"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"github.com/einsteinium08/class-bloom-space/core"
	"github.com/einsteinium08/class-bloom-space/core/classroom"
	logsvc "github.com/einsteinium08/class-bloom-space/services/logger"
	metricsvc "github.com/einsteinium08/class-bloom-space/services/metrics"
	"github.com/einsteinium08/class-bloom-space/storage/database"
)

// logCloser flushes the application logger.
type logCloser func() error

func newLogger(conf *core.Config) (core.Logger, logCloser, error) {
	logger, closeFn, err := logsvc.New(conf)
	if err != nil {
		return nil, nil, errors.Wrap(err, "setting up logger")
	}
	return logger, logCloser(closeFn), nil
}

func newStore(conf *core.Config, logger core.Logger) (*database.Store, error) {
	store, err := database.Open(context.Background(), conf)
	if err != nil {
		return nil, err
	}
	logger.Debug("storage opened", "driver", conf.Storage.Driver)
	return store, nil
}

func newService(conf *core.Config, store *database.Store, logger core.Logger) (*classroom.Service, error) {
	svc := classroom.NewService(store.Assignments, store.Announcements, logger)
	if conf.Seed {
		if err := svc.Seed(context.Background()); err != nil {
			return nil, errors.Wrap(err, "seeding classroom")
		}
	}
	return svc, nil
}

func newCommandLine(
	svc *classroom.Service,
	registry *prometheus.Registry,
	validate *validator.Validate,
	translator ut.Translator,
	logger core.Logger,
) *commandLine {
	base := classroom.WithService(context.Background(), svc)
	return &commandLine{
		base:       base,
		ctx:        base,
		registry:   registry,
		validate:   validate,
		translator: translator,
		log:        logger,
		out:        os.Stdout,
	}
}

// newContainer returns the dependency injection container of the classroom CLI.
func newContainer() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newStore))
	must(c.Provide(newService))
	must(c.Provide(metricsvc.NewCollector))
	must(c.Provide(metricsvc.NewRegistry))
	must(c.Provide(core.NewValidator))
	must(c.Provide(newCommandLine))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
