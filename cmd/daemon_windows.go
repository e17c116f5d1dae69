//go:build windows

package cmd

import (
	"context"
	"log"

	"github.com/urfave/cli"
	"golang.org/x/sys/windows/svc"

	daemonpkg "github.com/studybuddy/remindd/internal/daemon"
	"github.com/studybuddy/remindd/internal/service"
	"github.com/studybuddy/remindd/pkg/logger"
)

// checkWindowsService detects service mode and, when detected, runs the
// daemon under the Service Control Manager with Event Log output.
func checkWindowsService(ctx *cli.Context) (bool, error) {
	isService, err := svc.IsWindowsService()
	if err != nil {
		return false, err
	}
	if !isService {
		return false, nil
	}
	return true, runAsWindowsService()
}

func runAsWindowsService() error {
	stdLogger := logger.NewStandardLogger(log.Default())

	l := logger.Logger(stdLogger)
	if eventLogger, err := logger.NewEventLogger(daemonpkg.DefaultServiceName); err == nil {
		defer eventLogger.Close()
		l = logger.NewMultiLogger(stdLogger, eventLogger)
	}

	cfg, err := loadDaemonConfig(l)
	if err != nil {
		l.Error("service: load config: %v", err)
		return err
	}

	var runner *daemonpkg.Runner
	components, err := initDaemonComponents(l, cfg, func() {
		if runner != nil {
			_ = runner.Shutdown()
		}
	})
	if err != nil {
		l.Error("service: init: %v", err)
		return err
	}
	defer components.Close()

	runner = daemonpkg.New(nil, &daemonpkg.Dependencies{
		RunFunc: func(c context.Context) error {
			return components.Server.Start(c)
		},
	})

	handler := service.NewWindowsHandler(runner, l)
	return svc.Run(daemonpkg.DefaultServiceName, handler)
}
