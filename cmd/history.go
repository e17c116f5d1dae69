package cmd

import (
	"fmt"

	"github.com/urfave/cli"

	cmdCommon "github.com/studybuddy/remindd/cmd/common"
)

var (
	historyLimit int

	historyFlags = []cli.Flag{
		cli.IntFlag{
			Name:        "limit, n",
			Usage:       "maximum number of entries to display",
			Value:       DEF_HISTORY_LIMIT,
			Destination: &historyLimit,
		},
	}
)

func history(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	client := newClient(ctx, "new_client")
	if client == nil {
		return nil
	}
	defer client.Close()

	resp, err := client.History(historyLimit)
	if err != nil {
		cmdCommon.PrintRuntimeErr(ctx, "history", "get_history", err)
		return nil
	}
	if len(resp.Entries) == 0 {
		fmt.Println("remind: no reminders dispatched yet")
		return nil
	}

	txt := "Dispatched reminders (newest first):"
	txt += "\n\n-----------------------------------------------------------------"
	txt += "\n|      Sent At     |      Rule      |  Result |      Subject      |"
	txt += "\n|------------------|----------------|---------|-------------------|"
	for _, e := range resp.Entries {
		result := "ok"
		if !e.Ok {
			result = "failed"
		}
		subject := e.Subject
		if len(subject) > 17 {
			subject = subject[:14] + "..."
		}
		txt += fmt.Sprintf("\n| %s | %s | %s | %s |",
			e.SentAt.Format("02 Jan 15:04:05"),
			cmdCommon.Beaut(e.Rule, 14),
			cmdCommon.Beaut(result, 7),
			cmdCommon.Beaut(subject, 17),
		)
	}
	txt += "\n-----------------------------------------------------------------"
	fmt.Println(txt)
	return nil
}
