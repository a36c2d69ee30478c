package implementations

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	sharedInfrastructure "github.com/docgate/docgate/internal/modules/shared/infrastructure"
	sharedUtilities "github.com/docgate/docgate/internal/modules/shared/utilities"
)

// BrowserSupervisor implements definitions.BrowserSupervisor: one
// long-lived headless browser, restarted on a fixed interval and on
// crash, with reference-counted hot-swap so a render already in flight
// against a superseded instance is allowed to finish.
type BrowserSupervisor struct {
	health *healthAggregator

	mu       sync.Mutex
	current  atomic.Pointer[browserHolder]
	restarts int
	maxedOut bool

	restartTimerOnce sync.Once
}

func NewBrowserSupervisor(health *healthAggregator) *BrowserSupervisor {
	supervisor := &BrowserSupervisor{health: health}
	supervisor.start()
	return supervisor
}

// start implements the Start protocol.
func (s *BrowserSupervisor) start() {
	env := sharedInfrastructure.GetEnvironment()
	logger := sharedUtilities.GetLogger()

	s.mu.Lock()
	if s.restarts > env.MaxRestarts {
		s.maxedOut = true
		s.mu.Unlock()
		s.health.Set("browser", healthUnhealthy)
		logger.Error("browser supervisor exceeded max restarts, giving up permanently")
		return
	}
	s.restarts++
	s.mu.Unlock()

	resetWindow := time.Duration(env.RestartDelay) * time.Millisecond * time.Duration(env.MaxRestarts) * 2
	userDataDir := filepath.Join(env.TempRoot, fmt.Sprintf("browser-%s", sharedInfrastructure.GenerateXID()))

	launcherURL, err := launcher.New().
		Bin(env.ChromiumBinaryPath).
		Headless(true).
		Leakless(true).
		UserDataDir(userDataDir).
		Set("disable-gpu", "1").
		Set("disable-extensions", "1").
		Set("disable-dev-shm-usage", "1").
		Set("disable-translate", "1").
		Set("no-sandbox", "1").
		Set("noerrdialogs", "1").
		Set("disable-infobars", "1").
		Launch()
	if err != nil {
		logger.WithError(err).Warn("browser launch failed")
		time.Sleep(time.Duration(env.RestartDelay) * time.Millisecond)
		go s.start()
		return
	}

	browser := rod.New().ControlURL(launcherURL).Timeout(time.Duration(env.BrowserLaunchTimeout) * time.Millisecond)
	if err := browser.Connect(); err != nil {
		logger.WithError(err).Warn("browser connect failed")
		time.Sleep(time.Duration(env.RestartDelay) * time.Millisecond)
		go s.start()
		return
	}

	holder := newBrowserHolder(browser, userDataDir)

	uptimeTimer := time.AfterFunc(resetWindow, func() {
		s.mu.Lock()
		s.restarts = 0
		s.mu.Unlock()
	})

	go browser.EachEvent(func(_ *proto.InspectorDetached) {
		uptimeTimer.Stop()
		if holder.marked {
			return
		}
		holder.mark()
		s.health.Set("browser", healthUnhealthy)
		logger.Warn("browser disconnected, restarting")
		time.Sleep(time.Duration(env.RestartDelay) * time.Millisecond)
		s.start()
	})()

	previous := s.current.Swap(holder)
	if previous != nil {
		previous.mark()
	}

	s.health.Set("browser", healthHealthy)
	logger.Info("browser ready")

	s.restartTimerOnce.Do(func() {
		interval := time.Duration(env.BrowserRestartInterval) * time.Millisecond
		ticker := time.NewTicker(interval)
		go func() {
			for range ticker.C {
				logger.Info("periodic browser restart")
				s.start()
			}
		}()
	})
}

func (s *BrowserSupervisor) Healthy() bool {
	holder := s.current.Load()
	return holder != nil && !holder.cleaned
}

func (s *BrowserSupervisor) Shutdown() {
	holder := s.current.Load()
	if holder != nil {
		holder.mark()
	}
}

// removeUserDataDirUnderTempRoot removes a browser's user-data directory,
// but only if it actually lives under the configured temp root and is a
// directory — guarding against misconfiguration pointing elsewhere.
func removeUserDataDirUnderTempRoot(dir string) {
	env := sharedInfrastructure.GetEnvironment()
	if !strings.HasPrefix(dir, env.TempRoot) {
		return
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return
	}
	_ = os.RemoveAll(dir)
}
