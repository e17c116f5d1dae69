package cmd

import (
	"fmt"

	"github.com/urfave/cli"

	cmdCommon "github.com/studybuddy/remindd/cmd/common"
	"github.com/studybuddy/remindd/common"
	"github.com/studybuddy/remindd/pkg/remindcli"
)

// newClient connects to the daemon, spawning it if necessary. Errors are
// printed and swallowed; callers bail out on nil.
func newClient(ctx *cli.Context, action string) *remindcli.Client {
	client, err := remindcli.NewClient()
	if err != nil {
		cmdCommon.PrintRuntimeErr(ctx, ctx.Command.Name, action, err)
		return nil
	}
	remindcli.CheckVersionMismatch(client, currentBuildArgs.Version)
	return client
}

func notificationGlyph(kind common.NotificationKind) string {
	switch kind {
	case common.NotifySuccess:
		return "+"
	case common.NotifyError:
		return "!"
	default:
		return "*"
	}
}

// RegisterHandlers wires the notification stream to the terminal.
func RegisterHandlers(client *remindcli.Client) {
	client.Dispatcher().Register(
		common.UPDATE_NOTIFICATION,
		&remindcli.NotificationHandler{
			Callback: func(n common.Notification) {
				fmt.Printf("[%s] %s %s\n",
					n.At.Format("15:04:05"),
					notificationGlyph(n.Kind),
					n.Message,
				)
			},
		},
	)
}
