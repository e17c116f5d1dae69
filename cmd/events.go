package cmd

import (
	"fmt"
	"sort"

	"github.com/urfave/cli"

	cmdCommon "github.com/studybuddy/remindd/cmd/common"
	"github.com/studybuddy/remindd/pkg/buddylib"
)

var (
	eventKind string

	eventsFlags = []cli.Flag{
		cli.StringFlag{
			Name:        "kind, k",
			Usage:       "filter by event kind: activity or group_session",
			Destination: &eventKind,
		},
	}
)

func events(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	client := newClient(ctx, "new_client")
	if client == nil {
		return nil
	}
	defer client.Close()

	resp, err := client.Events(eventKind)
	if err != nil {
		cmdCommon.PrintRuntimeErr(ctx, "events", "get_events", err)
		return nil
	}
	if len(resp.Events) == 0 {
		fmt.Println("remind: no upcoming events")
		return nil
	}

	txt := "Upcoming events:"
	txt += "\n\n----------------------------------------------------------------------"
	txt += "\n|Num|\t          Title          |     Kind      |      Starts At      |"
	txt += "\n|---|---------------------------|---------------|---------------------|"
	sort.Stable(buddylib.EventSlice(resp.Events))
	for i, ev := range resp.Events {
		title := ev.Title
		n := len(title)
		switch {
		case n > 25:
			title = title[:22] + "..."
		case n < 25:
			title = cmdCommon.Beaut(title, 25)
		}
		kind := cmdCommon.Beaut(string(ev.Kind), 13)
		start := ev.StartAt.Format("Mon 02 Jan 15:04")
		txt += fmt.Sprintf("\n| %d | %s | %s | %s |",
			i+1, title, kind, cmdCommon.Beaut(start, 19))
	}
	txt += "\n----------------------------------------------------------------------"
	fmt.Println(txt)
	return nil
}
