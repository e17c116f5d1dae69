// Package extl runs user-supplied JavaScript that customizes reminder text.
// A script exports a global function:
//
//	function format(event, rule) {
//	    return { subject: "...", message: "..." };
//	}
//
// where event carries {id, kind, title, description, subject, location,
// startAt, durationHours} and rule carries {label, leadMinutes}. Scripts may
// use console.log and require() relative to the script's directory.
package extl

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dop251/goja"
	"github.com/dop251/goja_nodejs/console"
	"github.com/dop251/goja_nodejs/require"

	"github.com/studybuddy/remindd/pkg/buddylib"
	"github.com/studybuddy/remindd/pkg/logger"
)

// ErrNoFormatFunction is returned when the script defines no format function.
var ErrNoFormatFunction = errors.New("script does not define format(event, rule)")

// ScriptFormatter renders reminder subject and message through a JavaScript
// hook. A goja runtime is single-threaded; the mutex serializes calls from
// concurrent dispatch goroutines.
type ScriptFormatter struct {
	mu     sync.Mutex
	vm     *goja.Runtime
	format goja.Callable
	log    logger.Logger
}

// NewScriptFormatter loads and evaluates the script at path. The script runs
// once at load time; format is resolved from the resulting globals.
func NewScriptFormatter(path string, l logger.Logger) (*ScriptFormatter, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("formatter script: %w", err)
	}

	vm := goja.New()
	registry := require.NewRegistry(require.WithGlobalFolders(filepath.Dir(path)))
	registry.Enable(vm)
	console.Enable(vm)

	if _, err := vm.RunScript(filepath.Base(path), string(src)); err != nil {
		return nil, fmt.Errorf("formatter script %s: %w", path, err)
	}

	fn, ok := goja.AssertFunction(vm.Get("format"))
	if !ok {
		return nil, ErrNoFormatFunction
	}
	return &ScriptFormatter{vm: vm, format: fn, log: l}, nil
}

// Format invokes the script for one event and rule. Script exceptions and
// malformed return values surface as errors; callers fall back to built-in
// text.
func (f *ScriptFormatter) Format(ev buddylib.Event, rule buddylib.ReminderRule) (string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	eventObj := f.vm.ToValue(map[string]interface{}{
		"id":            ev.ID,
		"kind":          string(ev.Kind),
		"title":         ev.Title,
		"description":   ev.Description,
		"subject":       ev.Subject,
		"location":      ev.Location,
		"startAt":       ev.StartAt.Format("2006-01-02T15:04:05Z07:00"),
		"durationHours": ev.DurationHours,
	})
	ruleObj := f.vm.ToValue(map[string]interface{}{
		"label":       rule.Label,
		"leadMinutes": int(rule.Lead.Minutes()),
	})

	res, err := f.format(goja.Undefined(), eventObj, ruleObj)
	if err != nil {
		return "", "", fmt.Errorf("formatter script: %w", err)
	}

	obj, ok := res.(*goja.Object)
	if !ok || goja.IsNull(res) || goja.IsUndefined(res) {
		return "", "", errors.New("formatter script: format did not return an object")
	}
	subject := stringProp(obj, "subject")
	message := stringProp(obj, "message")
	if subject == "" || message == "" {
		return "", "", errors.New("formatter script: result is missing subject or message")
	}
	return subject, message, nil
}

func stringProp(obj *goja.Object, name string) string {
	v := obj.Get(name)
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return ""
	}
	return v.String()
}
