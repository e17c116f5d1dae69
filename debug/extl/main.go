// debug/extl is a cli tool to debug reminder formatter scripts.
package main

import (
	"log"
	"os"
	"time"

	"github.com/studybuddy/remindd/internal/extl"
	"github.com/studybuddy/remindd/pkg/buddylib"
	"github.com/studybuddy/remindd/pkg/logger"
)

const HELP = `debug/extl is a cli tool to debug reminder formatter scripts.

Usage:
  debug/extl [command]

Commands:
  help    Show this help message and exit.
  run     Run a formatter script against a sample event for every rule.
`

func main() {
	args := os.Args[1:]
	if len(args) == 0 || args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		println(HELP)
		return
	}

	switch args[0] {
	case "run":
		if len(args) < 2 {
			log.Fatal("run: missing script path")
		}
		f, err := extl.NewScriptFormatter(args[1], logger.NewStandardLogger(log.Default()))
		if err != nil {
			log.Fatal("run:", err)
		}
		ev := buddylib.Event{
			ID:            "debug-1",
			Kind:          buddylib.KindGroupSession,
			Title:         "Linear Algebra study group",
			Description:   "Chapter 4 revision",
			Subject:       "MATH1036",
			Location:      "Wartenweiler Library",
			StartAt:       time.Now().Add(24 * time.Hour),
			DurationHours: 2,
		}
		for _, rule := range buddylib.DefaultRules() {
			subject, message, err := f.Format(ev, rule)
			if err != nil {
				log.Fatalf("format (%s): %v", rule.Label, err)
			}
			log.Printf("%s\n  subject: %s\n  message: %s", rule.Label, subject, message)
		}
	default:
		println(HELP)
	}
}
