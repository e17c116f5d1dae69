package cmd

import (
	"fmt"
	"runtime"

	"github.com/urfave/cli"

	"github.com/studybuddy/remindd/cmd/common"
	"github.com/studybuddy/remindd/cmd/nativehost"
)

type BuildArgs struct {
	Version   string
	BuildType string
	Date      string
	Commit    string
}

// currentBuildArgs is stashed by Execute so command actions and the
// daemon wiring can report build information.
var currentBuildArgs BuildArgs

func Execute(args []string, bArgs BuildArgs) error {
	currentBuildArgs = bArgs
	app := cli.App{
		Name:                  "remind",
		HelpName:              "remind",
		Usage:                 "A study reminder daemon for Wits Study Buddy.",
		Version:               fmt.Sprintf("%s-%s", bArgs.Version, bArgs.BuildType),
		UsageText:             "remind <command> [arguments...]",
		Description:           DESCRIPTION,
		CustomAppHelpTemplate: HELP_TEMPL,
		OnUsageError:          common.UsageErrorCallback,
		Commands: append([]cli.Command{
			{
				Name:   "daemon",
				Usage:  "run the reminder daemon in the foreground",
				Action: daemon,
				Flags:  daemonFlags,
			},
			{
				Name:               "status",
				Aliases:            []string{"s"},
				Usage:              "show the scheduler state and armed timers",
				Action:             status,
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        StatusDescription,
			},
			{
				Name:                   "events",
				Aliases:                []string{"e"},
				Usage:                  "list upcoming activities and group sessions",
				Action:                 events,
				OnUsageError:           common.UsageErrorCallback,
				CustomHelpTemplate:     CMD_HELP_TEMPL,
				Description:            EventsDescription,
				UseShortOptionHandling: true,
				Flags:                  eventsFlags,
			},
			{
				Name:               "refresh",
				Aliases:            []string{"r"},
				Usage:              "reload the agenda and rearm reminder timers",
				Action:             refresh,
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        RefreshDescription,
			},
			{
				Name:                   "history",
				Aliases:                []string{"l"},
				Usage:                  "display sent reminder history",
				Action:                 history,
				OnUsageError:           common.UsageErrorCallback,
				CustomHelpTemplate:     CMD_HELP_TEMPL,
				Description:            HistoryDescription,
				UseShortOptionHandling: true,
				Flags:                  historyFlags,
			},
			{
				Name:               "attach",
				Aliases:            []string{"a"},
				Usage:              "stream reminder notifications to the terminal",
				Action:             attach,
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        AttachDescription,
			},
			{
				Name:               "login",
				Usage:              "store the Study Buddy API token",
				Action:             login,
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        LoginDescription,
				Flags:              loginFlags,
			},
			{
				Name:               "logout",
				Usage:              "remove the stored API token",
				Action:             logout,
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        LogoutDescription,
			},
			{
				Name:   "stop-daemon",
				Usage:  "stop the running daemon",
				Action: stopDaemon,
			},
			{
				Name:        "native-host",
				Usage:       "manage the browser extension native messaging host",
				Subcommands: nativehost.Commands,
			},
			{
				Name:    "help",
				Aliases: []string{"h"},
				Usage:   "prints the help message",
				Action:  common.Help,
			},
			{
				Name:               "version",
				Aliases:            []string{"v"},
				Usage:              "prints the installed version of remind",
				UsageText:          " ",
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Action:             common.GetVersion,
			},
		}, getPlatformCommands()...),
		Action:                 status,
		UseShortOptionHandling: true,
		HideHelp:               true,
		HideVersion:            true,
	}
	common.VersionCmdStr = fmt.Sprintf("%s %s (%s_%s)\nBuild: %s=%s\n",
		app.Name,
		app.Version,
		runtime.GOOS,
		runtime.GOARCH,
		bArgs.Date, bArgs.Commit,
	)
	return app.Run(args)
}
