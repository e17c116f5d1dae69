package cmd

import (
	"sync"
	"time"

	"github.com/studybuddy/remindd/common"
	"github.com/studybuddy/remindd/internal/agenda"
	"github.com/studybuddy/remindd/internal/api"
	"github.com/studybuddy/remindd/internal/auth"
	"github.com/studybuddy/remindd/internal/config"
	"github.com/studybuddy/remindd/internal/extl"
	"github.com/studybuddy/remindd/internal/journal"
	"github.com/studybuddy/remindd/internal/scheduler"
	"github.com/studybuddy/remindd/internal/server"
	"github.com/studybuddy/remindd/pkg/buddylib"
	"github.com/studybuddy/remindd/pkg/logger"
)

// swappableNotifier lets the scheduler be constructed before the server
// pool it notifies through exists. Shows before set() are dropped.
type swappableNotifier struct {
	mu sync.RWMutex
	n  scheduler.Notifier
}

func (s *swappableNotifier) set(n scheduler.Notifier) {
	s.mu.Lock()
	s.n = n
	s.mu.Unlock()
}

func (s *swappableNotifier) Show(kind common.NotificationKind, message string) {
	s.mu.RLock()
	n := s.n
	s.mu.RUnlock()
	if n != nil {
		n.Show(kind, message)
	}
}

// DaemonComponents holds all initialized daemon components so console
// mode and Windows service mode share one initialization and cleanup
// path.
type DaemonComponents struct {
	Config    *config.Config
	Journal   *journal.Journal
	Scheduler *scheduler.Scheduler
	Api       *api.Api
	Server    *server.Server

	log logger.Logger

	stopOnce sync.Once
	stopFn   func()
}

// RequestStop asks the daemon loop to exit. Safe to call more than once.
func (c *DaemonComponents) RequestStop() {
	c.stopOnce.Do(func() {
		if c.stopFn != nil {
			c.stopFn()
		}
	})
}

// Close releases daemon resources in reverse order of initialization.
func (c *DaemonComponents) Close() {
	if c.log != nil {
		c.log.Info("daemon: shutting down")
	}
	if c.Server != nil {
		_ = c.Server.Shutdown()
	}
	if c.Scheduler != nil {
		scheduler.DestroyCurrent()
	}
	if c.Journal != nil {
		_ = c.Journal.Close()
	}
	if c.log != nil {
		c.log.Info("daemon: stopped")
	}
}

// initDaemonComponents wires the full daemon: credential store, API
// client, agenda loader, journal, scheduler, socket server and the
// optional web surface. stopFn is invoked when a client asks the daemon
// to shut down.
//
// On error, any partially initialized components are cleaned up before
// returning.
var initDaemonComponents = func(log logger.Logger, cfg *config.Config, stopFn func()) (*DaemonComponents, error) {
	sm, err := openSecrets()
	if err != nil {
		log.Error("daemon: credential store: %v", err)
		return nil, err
	}

	client, err := buddylib.NewClient(cfg.APIBaseURL, sm.Token(), nil)
	if err != nil {
		log.Error("daemon: api client: %v", err)
		return nil, err
	}

	var loc *time.Location
	if cfg.Timezone != "" {
		loc, err = time.LoadLocation(cfg.Timezone)
		if err != nil {
			log.Error("daemon: invalid timezone %q: %v", cfg.Timezone, err)
			return nil, err
		}
	}
	loader := agenda.NewLoader(client, log, loc, cfg.GroupBatchSize)

	var (
		jr       *journal.Journal
		recorder scheduler.Recorder
		histSock api.History
		histRPC  server.HistorySource
	)
	if cfg.JournalPath != "" {
		jr, err = journal.Open(cfg.JournalPath)
		if err != nil {
			log.Error("daemon: journal: %v", err)
			return nil, err
		}
		recorder = jr
		histSock = jr
		histRPC = jr
	}

	var formatter scheduler.Formatter
	if cfg.FormatterScript != "" {
		formatter, err = extl.NewScriptFormatter(cfg.FormatterScript, log)
		if err != nil {
			log.Error("daemon: formatter script: %v", err)
			if jr != nil {
				jr.Close()
			}
			return nil, err
		}
	}

	notifier := &swappableNotifier{}
	sched, err := scheduler.GetOrCreate(scheduler.Options{
		Auth:         auth.NewAPIProvider(client, log),
		Loader:       loader,
		Sender:       client,
		Notifier:     notifier,
		Recorder:     recorder,
		Formatter:    formatter,
		Logger:       log,
		EmailPattern: cfg.EmailPattern,
		RefreshCron:  cfg.RefreshCron,
	})
	if err != nil {
		if sched == nil {
			log.Error("daemon: scheduler: %v", err)
			if jr != nil {
				jr.Close()
			}
			return nil, err
		}
		// Policy halts leave the scheduler inspectable; the daemon keeps
		// serving status and history.
		log.Warning("daemon: scheduler halted: %v", err)
	}

	var web *server.WebServer
	if cfg.Listen != "" {
		rpc := server.NewRPCServer(&server.RPCConfig{
			Secret:    cfg.RPCSecret,
			Version:   currentBuildArgs.Version,
			Commit:    currentBuildArgs.Commit,
			BuildType: currentBuildArgs.BuildType,
		}, sched, histRPC)
		web = server.NewWebServer(log, rpc, cfg.Listen)
	}

	serv := server.NewServer(log, web)

	components := &DaemonComponents{
		Config:    cfg,
		Journal:   jr,
		Scheduler: sched,
		Server:    serv,
		log:       log,
		stopFn:    stopFn,
	}

	s := api.NewApi(log, sched, histSock,
		currentBuildArgs.Version, currentBuildArgs.Commit, currentBuildArgs.BuildType,
		components.RequestStop)
	s.RegisterHandlers(serv)
	components.Api = s

	notifier.set(api.NewNotifier(log, serv.Pool(), web))

	return components, nil
}
