package cmd

import (
	"fmt"

	"github.com/urfave/cli"

	cmdCommon "github.com/studybuddy/remindd/cmd/common"
)

func status(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	client := newClient(ctx, "new_client")
	if client == nil {
		return nil
	}
	defer client.Close()

	st, err := client.Status()
	if err != nil {
		cmdCommon.PrintRuntimeErr(ctx, "status", "get_status", err)
		return nil
	}

	txt := fmt.Sprintf(`
Scheduler Status
State`+"\t\t"+`: %s
Armed Timers`+"\t"+`: %d
Tracked Events`+"\t"+`: %d
Sent Reminders`+"\t"+`: %d
`,
		st.State,
		st.ArmedTimers,
		st.TrackedEvents,
		st.SentReminders,
	)
	if st.UserEmail != "" {
		txt += fmt.Sprintf("User\t\t: %s\n", st.UserEmail)
	}
	if !st.LastRefresh.IsZero() {
		txt += fmt.Sprintf("Last Refresh\t: %s\n", st.LastRefresh.Format("Mon 15:04:05"))
	}
	if !st.NextRefresh.IsZero() {
		txt += fmt.Sprintf("Next Refresh\t: %s\n", st.NextRefresh.Format("Mon 15:04:05"))
	}
	fmt.Println(txt)
	return nil
}
