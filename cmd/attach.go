package cmd

import (
	"fmt"

	"github.com/urfave/cli"

	cmdCommon "github.com/studybuddy/remindd/cmd/common"
)

func attach(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	client := newClient(ctx, "new_client")
	if client == nil {
		return nil
	}
	defer client.Close()

	if _, err := client.Attach(); err != nil {
		cmdCommon.PrintRuntimeErr(ctx, "attach", "client-attach", err)
		return nil
	}
	fmt.Println(">> Streaming reminder notifications, press Ctrl-C to stop <<")
	RegisterHandlers(client)
	return client.Listen()
}
