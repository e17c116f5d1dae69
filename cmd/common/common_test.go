package common

import (
	"errors"
	"flag"
	"testing"

	"github.com/urfave/cli"
)

func TestBeaut(t *testing.T) {
	tests := []struct {
		name string
		s    string
		n    int
		want string
	}{
		{"even padding", "ab", 6, "  ab  "},
		{"odd padding", "abc", 6, " abc  "},
		{"exact fit", "abcd", 4, "abcd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Beaut(tt.s, tt.n); got != tt.want {
				t.Errorf("Beaut(%q, %d) = %q, want %q", tt.s, tt.n, got, tt.want)
			}
		})
	}
}

func TestPrintErrWithHelpNilError(t *testing.T) {
	if err := PrintErrWithHelp(nil, nil); err != nil {
		t.Errorf("expected nil for nil error, got %v", err)
	}
}

func newTestContext(cmdName string) *cli.Context {
	app := cli.NewApp()
	app.HelpName = "remind"
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	ctx := cli.NewContext(app, set, nil)
	ctx.Command = cli.Command{Name: cmdName}
	return ctx
}

func TestUsageErrorCallbackCommandLevel(t *testing.T) {
	origShow := showCommandHelp
	defer func() { showCommandHelp = origShow }()

	var helped string
	showCommandHelp = func(ctx *cli.Context, name string) error {
		helped = name
		return nil
	}

	ctx := newTestContext("events")
	if err := UsageErrorCallback(ctx, errors.New("bad flag"), false); err != nil {
		t.Fatalf("UsageErrorCallback: %v", err)
	}
	if helped != "events" {
		t.Errorf("showed help for %q, want events", helped)
	}
}

func TestUsageErrorCallbackAppLevel(t *testing.T) {
	origShow := showAppHelpAndExit
	defer func() { showAppHelpAndExit = origShow }()

	var exitCode = -1
	showAppHelpAndExit = func(ctx *cli.Context, code int) {
		exitCode = code
	}

	ctx := newTestContext("")
	if err := UsageErrorCallback(ctx, errors.New("bad usage"), false); err != nil {
		t.Fatalf("UsageErrorCallback: %v", err)
	}
	if exitCode != 1 {
		t.Errorf("exit code = %d, want 1", exitCode)
	}
}
