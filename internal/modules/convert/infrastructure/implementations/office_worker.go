package implementations

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	convertErrors "github.com/docgate/docgate/internal/modules/convert/domain/errors"
	sharedInfrastructure "github.com/docgate/docgate/internal/modules/shared/infrastructure"
	sharedUtilities "github.com/docgate/docgate/internal/modules/shared/utilities"
)

// pollInterval governs how often the launch-readiness watch below re-stats
// the PID file and profile directory.
const pollInterval = 50 * time.Millisecond

// officeWorker is a single office backend bound to a fixed port (
// Worker, ). At most one backend process runs per worker at any
// moment; `available` is true iff the worker holds no in-flight
// conversion and the backend is running.
type officeWorker struct {
	port int

	mu             sync.Mutex
	token          string // random token, regenerated each (re)start
	pidFilePath    string
	profileDirPath string
	cmd            *exec.Cmd
	restarts       int
	maxedOut       bool
	uptimeTimer    *time.Timer

	available atomic.Bool

	health  *healthAggregator
	healthKey string
}

func newOfficeWorker(port int, health *healthAggregator) *officeWorker {
	return &officeWorker{
		port:      port,
		health:    health,
		healthKey: fmt.Sprintf("unoservers.%d", port),
	}
}

// start implements the Start protocol. It recurses (as a goroutine
// loop, not literal recursion, to keep stack depth bounded across a long
// crash-restart history) until it either succeeds or exceeds the restart
// budget.
func (w *officeWorker) start() {
	env := sharedInfrastructure.GetEnvironment()
	logger := sharedUtilities.GetLogger().WithField("port", w.port)

	for {
		w.mu.Lock()
		if w.restarts > env.MaxRestarts {
			w.maxedOut = true
			w.mu.Unlock()
			w.available.Store(false)
			w.health.Set(w.healthKey, healthUnhealthy)
			logger.Error("office worker exceeded max restarts, giving up permanently")
			return
		}
		w.restarts++
		restarts := w.restarts
		w.mu.Unlock()

		// The uptime-reset timer is the sole brake against a crash loop:
		// only a continuous run of at least RESTART_DELAY*MAX_RESTARTS*2
		// resets the counter, so a worker that keeps dying quickly will
		// eventually hit the budget above.
		resetWindow := time.Duration(env.RestartDelay) * time.Millisecond * time.Duration(env.MaxRestarts) * 2

		token := sharedInfrastructure.GenerateXID()
		pidFilePath := filepath.Join(env.TempRoot, fmt.Sprintf("office-%d.pid", w.port))
		profileDirPath := filepath.Join(env.TempRoot, fmt.Sprintf("office-%d-%s", w.port, token))

		_ = os.Remove(pidFilePath)

		cmd := exec.Command(env.OfficeBackendPath,
			"--port", strconv.Itoa(w.port),
			"--pidfile", pidFilePath,
			"--user-installation", profileDirPath,
			"--conversion-timeout", strconv.Itoa(env.PDFRenderTimeout/1000),
		)

		if err := cmd.Start(); err != nil {
			logger.WithError(err).WithField("attempt", restarts).Warn("office worker spawn failed")
			time.Sleep(time.Duration(env.RestartDelay) * time.Millisecond)
			continue
		}

		launchTimeout := time.Duration(env.OfficeLaunchTimeout) * time.Millisecond
		if !waitForLaunchArtifacts(pidFilePath, profileDirPath, launchTimeout) {
			_ = cmd.Process.Kill()
			_, _ = cmd.Process.Wait()
			logger.WithField("attempt", restarts).Warn("office worker did not become ready in time")
			time.Sleep(time.Duration(env.RestartDelay) * time.Millisecond)
			continue
		}

		w.mu.Lock()
		w.token = token
		w.pidFilePath = pidFilePath
		w.profileDirPath = profileDirPath
		w.cmd = cmd
		w.uptimeTimer = time.AfterFunc(resetWindow, func() {
			w.mu.Lock()
			w.restarts = 0
			w.mu.Unlock()
		})
		w.mu.Unlock()

		w.available.Store(true)
		w.health.Set(w.healthKey, healthHealthy)
		logger.Info("office worker ready")

		// registerExitHandler blocks in its own goroutine until the
		// process exits, then runs the exit protocol and restarts.
		go w.registerExitHandler(cmd)
		return
	}
}

// waitForLaunchArtifacts polls for both the PID file and the profile
// directory to appear. Both conditions are observed via
// simple stat polling rather than a filesystem-event watch: the bound is
// a short fixed timeout, not a long-lived subscription, so polling is
// both simpler and sufficient.
func waitForLaunchArtifacts(pidFilePath, profileDirPath string, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		pidOK := fileExists(pidFilePath)
		dirOK := dirExists(profileDirPath)
		if pidOK && dirOK {
			return true
		}
		time.Sleep(pollInterval)
	}
	return false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// registerExitHandler implements the exit protocol: when the
// backend exits, it is marked unavailable, the process whose PID is in
// its PID file is killed (its children are not), its profile directory
// is removed, and (after a delay) it is restarted from scratch.
func (w *officeWorker) registerExitHandler(cmd *exec.Cmd) {
	_ = cmd.Wait()

	env := sharedInfrastructure.GetEnvironment()
	logger := sharedUtilities.GetLogger().WithField("port", w.port)

	w.mu.Lock()
	if w.uptimeTimer != nil {
		w.uptimeTimer.Stop()
	}
	pidFilePath := w.pidFilePath
	profileDirPath := w.profileDirPath
	w.mu.Unlock()

	w.available.Store(false)
	w.health.Set(w.healthKey, healthUnhealthy)
	logger.Warn("office worker backend exited")

	if pid, err := readPIDFile(pidFilePath); err == nil {
		if err := killProcessTree(pid); err != nil {
			logger.WithError(err).Warn("failed to kill process from office worker PID file")
		}
	}

	if profileDirPath != "" {
		if err := os.RemoveAll(profileDirPath); err != nil {
			logger.WithError(err).Warn("failed to remove office worker profile directory")
		}
	}

	time.Sleep(time.Duration(env.RestartDelay) * time.Millisecond)
	w.start()
}

func readPIDFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, err
	}
	return pid, nil
}

// convert implements the Convert protocol: stream input to a
// per-request transport process that talks to this worker by port,
// collect output, and enforce the render deadline.
func (w *officeWorker) convert(input []byte) ([]byte, error) {
	if !w.available.CompareAndSwap(true, false) {
		return nil, convertErrors.NewOverloadError("office worker not available")
	}
	defer w.available.Store(true)

	env := sharedInfrastructure.GetEnvironment()
	logger := sharedUtilities.GetLogger().WithField("port", w.port)

	timeout := time.Duration(env.PDFRenderTimeout) * time.Millisecond
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, env.OfficeTransportPath,
		"--port", strconv.Itoa(w.port),
		"--convert-to", "pdf",
		"-",
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, convertErrors.NewInternalError("could not open transport stdin", map[string]any{"error": err.Error()})
	}

	if err := cmd.Start(); err != nil {
		return nil, convertErrors.NewInternalError("could not start office transport process", map[string]any{"error": err.Error()})
	}

	writeErrCh := make(chan error, 1)
	go func() {
		_, writeErr := stdin.Write(input)
		_ = stdin.Close()
		writeErrCh <- writeErr
	}()

	waitErr := cmd.Wait()
	<-writeErrCh

	if ctx.Err() == context.DeadlineExceeded {
		// The transport process and the long-running worker backend are
		// both killed: a stuck worker would otherwise jam every future
		// job routed to this port.
		w.killBackendLocked(logger)
		return nil, convertErrors.NewConvertTimeoutError("office conversion timed out", map[string]any{"port": w.port})
	}

	if waitErr != nil {
		return nil, convertErrors.NewConvertError("office backend exited with an error", map[string]any{
			"port":      w.port,
			"exit_code": cmd.ProcessState.ExitCode(),
			"stderr":    stderr.String(),
		})
	}

	return stdout.Bytes(), nil
}

// killBackendLocked force-kills the long-running backend process bound to
// this worker; registerExitHandler (already subscribed via
// registerExitHandler's cmd.Wait) will drive the restart.
func (w *officeWorker) killBackendLocked(logger *sharedUtilities.Logger) {
	w.mu.Lock()
	cmd := w.cmd
	w.mu.Unlock()

	if cmd == nil || cmd.Process == nil {
		return
	}
	if err := cmd.Process.Kill(); err != nil {
		logger.WithError(err).Warn("failed to kill stuck office worker backend")
	}
}

func (w *officeWorker) isAvailable() bool {
	return w.available.Load() && !w.maxedOut
}
