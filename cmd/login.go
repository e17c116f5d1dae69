package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/afero"
	"github.com/urfave/cli"

	cmdCommon "github.com/studybuddy/remindd/cmd/common"
	"github.com/studybuddy/remindd/internal/config"
	"github.com/studybuddy/remindd/internal/cookies"
	"github.com/studybuddy/remindd/pkg/credman"
	"github.com/studybuddy/remindd/pkg/credman/types"
)

// sessionCookieName is the Study Buddy web session cookie carrying the API token.
const sessionCookieName = "session"

var loginFlags = []cli.Flag{
	cli.BoolFlag{
		Name:  "from-browser, b",
		Usage: "import the session token from a logged-in browser",
	},
	cli.StringFlag{
		Name:  "cookies",
		Usage: "import the session token from a specific cookie store file",
	},
	cli.StringFlag{
		Name:  "cookie-name",
		Usage: "session cookie name to look for",
		Value: sessionCookieName,
	},
}

func login(ctx *cli.Context) error {
	token := ctx.Args().First()
	if token == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}

	if ctx.Bool("from-browser") || ctx.String("cookies") != "" {
		imported, err := tokenFromBrowser(ctx)
		if err != nil {
			cmdCommon.PrintRuntimeErr(ctx, "login", "import_cookie", err)
			return nil
		}
		token = imported
	}

	if token == "" {
		fmt.Print("Study Buddy API token: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			cmdCommon.PrintRuntimeErr(ctx, "login", "read_token", err)
			return nil
		}
		token = strings.TrimSpace(line)
	}
	if token == "" {
		return cmdCommon.PrintErrWithCmdHelp(ctx, errors.New("no token provided"))
	}

	sm, err := openSecrets()
	if err != nil {
		cmdCommon.PrintRuntimeErr(ctx, "login", "open_secrets", err)
		return nil
	}
	if err := sm.Set(types.Secret{Name: credman.TokenSecret, Value: token}); err != nil {
		cmdCommon.PrintRuntimeErr(ctx, "login", "store_token", err)
		return nil
	}
	fmt.Println("remind: token stored; restart the daemon to pick it up")
	return nil
}

// tokenFromBrowser pulls the session cookie for the configured API host from
// a browser cookie store. The cookie value itself is never printed.
func tokenFromBrowser(ctx *cli.Context) (string, error) {
	cfg, err := config.Load(afero.NewOsFs(), config.DefaultPath())
	if err != nil {
		return "", fmt.Errorf("load config: %w", err)
	}
	u, err := url.Parse(cfg.APIBaseURL)
	if err != nil || u.Hostname() == "" {
		return "", fmt.Errorf("invalid api_base_url %q in config", cfg.APIBaseURL)
	}
	domain := u.Hostname()

	name := ctx.String("cookie-name")
	if name == "" {
		name = sessionCookieName
	}

	var (
		c      *cookies.Cookie
		source *cookies.Source
	)
	if path := ctx.String("cookies"); path != "" {
		c, source, err = cookies.FromStore(path, domain, name)
	} else {
		c, source, err = cookies.FromBrowser(domain, name)
	}
	if err != nil {
		return "", err
	}
	fmt.Printf("remind: imported %s cookie %q for %s\n", source.Browser, name, domain)
	return c.Value, nil
}
