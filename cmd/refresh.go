package cmd

import (
	"fmt"
	"time"

	"github.com/urfave/cli"
	"github.com/vbauerster/mpb/v8"

	cmdCommon "github.com/studybuddy/remindd/cmd/common"
)

func refresh(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	client := newClient(ctx, "new_client")
	if client == nil {
		return nil
	}
	defer client.Close()

	p := mpb.New(mpb.WithWidth(32), mpb.WithRefreshRate(time.Millisecond * 120))
	bar := cmdCommon.InitSpinner(p, "Refreshing agenda")

	resp, err := client.Refresh()
	bar.Increment()
	p.Wait()
	if err != nil {
		cmdCommon.PrintRuntimeErr(ctx, "refresh", "refresh", err)
		return nil
	}
	if resp.Skipped {
		fmt.Println("remind: a refresh was already in progress")
		return nil
	}
	fmt.Printf("remind: loaded %d activities and %d sessions, %d timers armed\n",
		resp.Activities, resp.Sessions, resp.ArmedTimers)
	return nil
}
