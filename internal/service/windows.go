//go:build windows

// Package service integrates the reminder daemon with the Windows
// Service Control Manager so remindd can run as a Windows service.
package service

import (
	"context"
	"time"

	"golang.org/x/sys/windows/svc"

	"github.com/studybuddy/remindd/pkg/logger"
)

// acceptedCommands defines which SCM commands the service handles.
const acceptedCommands = svc.AcceptStop | svc.AcceptShutdown

// Runner is the daemon lifecycle surface the service handler drives.
type Runner interface {
	// Start begins the daemon with the given context. Returns an error
	// if already running.
	Start(ctx context.Context) error

	// Shutdown gracefully stops the daemon.
	Shutdown() error

	// IsRunning reports whether the daemon is currently running.
	IsRunning() bool
}

// WindowsHandler implements svc.Handler, bridging the SCM with the
// reminder daemon runner.
type WindowsHandler struct {
	runner Runner
	log    logger.Logger
}

// NewWindowsHandler creates a service handler. A nil logger falls back
// to a no-op logger.
func NewWindowsHandler(runner Runner, l logger.Logger) *WindowsHandler {
	if l == nil {
		l = logger.NewNopLogger()
	}
	return &WindowsHandler{
		runner: runner,
		log:    l,
	}
}

// Execute implements svc.Handler. Start arguments are ignored; the
// daemon reads its configuration from the standard config locations.
//
// The state machine follows the Windows service model:
//
//	StartPending -> Running -> StopPending -> Stopped
func (h *WindowsHandler) Execute(args []string, requests <-chan svc.ChangeRequest, status chan<- svc.Status) (svcSpecificEC bool, exitCode uint32) {
	_ = args

	status <- svc.Status{State: svc.StartPending}
	h.log.Info("service: starting")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	startErrCh := make(chan error, 1)
	go func() {
		startErrCh <- h.runner.Start(ctx)
	}()

	// Give the runner a moment to surface an immediate failure before
	// reporting Running to the SCM.
	select {
	case err := <-startErrCh:
		if err != nil {
			h.log.Error("service: start failed: %v", err)
			status <- svc.Status{State: svc.Stopped}
			return false, 1
		}
	case <-time.After(50 * time.Millisecond):
	}

	status <- svc.Status{State: svc.Running, Accepts: acceptedCommands}
	h.log.Info("service: running")

	return h.processControlRequests(requests, status, cancel)
}

func (h *WindowsHandler) processControlRequests(requests <-chan svc.ChangeRequest, status chan<- svc.Status, cancel context.CancelFunc) (svcSpecificEC bool, exitCode uint32) {
	for req := range requests {
		switch req.Cmd {
		case svc.Interrogate:
			status <- svc.Status{State: svc.Running, Accepts: acceptedCommands}

		case svc.Stop, svc.Shutdown:
			return h.handleStopRequest(status, cancel)
		}
	}
	return false, 0
}

func (h *WindowsHandler) handleStopRequest(status chan<- svc.Status, cancel context.CancelFunc) (svcSpecificEC bool, exitCode uint32) {
	h.log.Info("service: stopping")
	status <- svc.Status{State: svc.StopPending}

	cancel()

	if err := h.runner.Shutdown(); err != nil {
		h.log.Error("service: shutdown: %v", err)
		status <- svc.Status{State: svc.Stopped}
		return false, 1
	}

	h.log.Info("service: stopped")
	status <- svc.Status{State: svc.Stopped}
	return false, 0
}

// AcceptedCommands returns the service commands this handler accepts.
func (h *WindowsHandler) AcceptedCommands() svc.Accepted {
	return acceptedCommands
}
