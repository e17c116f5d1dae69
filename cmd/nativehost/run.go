package nativehost

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/studybuddy/remindd/internal/nativehost"
	"github.com/studybuddy/remindd/pkg/remindcli"
)

// newClientFunc is the function used to create daemon clients.
// It can be overridden in tests to inject mock clients.
var newClientFunc = func() (nativehost.Client, error) {
	return remindcli.NewClient()
}

func run(c *cli.Context) error {
	client, err := newClientFunc()
	if err != nil {
		// Write error to stderr - browser will see it
		fmt.Fprintf(os.Stderr, "failed to connect to daemon: %v\n", err)
		return cli.NewExitError("failed to connect to daemon", 1)
	}
	defer client.Close()

	host := nativehost.NewHost(client)

	// Run the host (blocks until stdin closes)
	if err := host.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "native host error: %v\n", err)
		return cli.NewExitError("native host error", 1)
	}

	return nil
}
