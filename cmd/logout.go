package cmd

import (
	"fmt"
	"strings"

	"github.com/urfave/cli"

	cmdCommon "github.com/studybuddy/remindd/cmd/common"
	"github.com/studybuddy/remindd/pkg/credman"
)

func logout(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	sm, err := openSecrets()
	if err != nil {
		cmdCommon.PrintRuntimeErr(ctx, "logout", "open_secrets", err)
		return nil
	}
	if err := sm.Delete(credman.TokenSecret); err != nil {
		if strings.Contains(err.Error(), "not found") {
			fmt.Println("remind: no token stored")
			return nil
		}
		cmdCommon.PrintRuntimeErr(ctx, "logout", "delete_token", err)
		return nil
	}
	fmt.Println("remind: token removed")
	return nil
}
