package cmd

import (
	"context"
	"log"

	"github.com/spf13/afero"
	"github.com/urfave/cli"

	cmdCommon "github.com/studybuddy/remindd/cmd/common"
	"github.com/studybuddy/remindd/internal/config"
	daemonpkg "github.com/studybuddy/remindd/internal/daemon"
	"github.com/studybuddy/remindd/pkg/logger"
)

var (
	daemonConfigPath string

	daemonFlags = []cli.Flag{
		cli.StringFlag{
			Name:        "config, c",
			Usage:       "path to the daemon config file",
			Destination: &daemonConfigPath,
		},
	}
)

func daemon(ctx *cli.Context) error {
	isService, err := checkWindowsService(ctx)
	if err != nil {
		return err
	}
	if isService {
		return nil
	}
	return runDaemonConsole(ctx)
}

func loadDaemonConfig(l logger.Logger) (*config.Config, error) {
	path := daemonConfigPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(afero.NewOsFs(), path)
	if err != nil {
		return nil, err
	}
	l.Info("daemon: using config %s", path)
	return cfg, nil
}

func runDaemonConsole(ctx *cli.Context) error {
	l := logger.NewStandardLogger(log.Default())

	cfg, err := loadDaemonConfig(l)
	if err != nil {
		cmdCommon.PrintRuntimeErr(ctx, "daemon", "load_config", err)
		return nil
	}

	runCtx, cancel := setupShutdownHandler()
	defer cancel()

	components, err := initDaemonComponents(l, cfg, cancel)
	if err != nil {
		cmdCommon.PrintRuntimeErr(ctx, "daemon", "init", err)
		return nil
	}
	defer components.Close()

	if err := WritePidFile(); err != nil {
		l.Warning("daemon: could not write PID file: %v", err)
	}
	defer RemovePidFile()

	runner := daemonpkg.New(nil, &daemonpkg.Dependencies{
		RunFunc: func(c context.Context) error {
			return components.Server.Start(c)
		},
	})
	return runner.Start(runCtx)
}
