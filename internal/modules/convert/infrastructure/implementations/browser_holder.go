package implementations

import (
	"sync"

	"github.com/go-rod/rod"
)

// browserHolder is the reference-counted wrapper around a single live
// browser instance: acquire increments the count;
// release decrements it and, once the count reaches zero and the holder
// has been marked superseded, runs cleanup exactly once. This lets
// in-flight conversions finish against a browser instance that has
// already been swapped out for a fresher one.
type browserHolder struct {
	mu      sync.Mutex
	browser *rod.Browser
	userDataDir string
	count   int
	marked  bool
	cleaned bool
}

func newBrowserHolder(browser *rod.Browser, userDataDir string) *browserHolder {
	return &browserHolder{
		browser:     browser,
		userDataDir: userDataDir,
	}
}

// acquire increments the reference count, failing if the holder has
// already been marked superseded or has already run its cleanup.
func (h *browserHolder) acquire() (*rod.Browser, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.marked || h.cleaned {
		return nil, false
	}
	h.count++
	return h.browser, true
}

// release decrements the reference count and runs cleanup exactly once
// if the holder is marked for collection and has no remaining users.
func (h *browserHolder) release() {
	h.mu.Lock()
	shouldClean := false
	h.count--
	if h.marked && h.count <= 0 && !h.cleaned {
		h.cleaned = true
		shouldClean = true
	}
	h.mu.Unlock()

	if shouldClean {
		h.cleanup()
	}
}

// mark flags the holder as superseded; if it already has no users, it is
// cleaned up immediately rather than waiting for a future release.
func (h *browserHolder) mark() {
	h.mu.Lock()
	h.marked = true
	shouldClean := h.count <= 0 && !h.cleaned
	if shouldClean {
		h.cleaned = true
	}
	h.mu.Unlock()

	if shouldClean {
		h.cleanup()
	}
}

// closeBrowserFn is indirected so tests can substitute a fake without a
// live CDP connection.
var closeBrowserFn = func(b *rod.Browser) error {
	return b.Close()
}

func (h *browserHolder) cleanup() {
	_ = closeBrowserFn(h.browser)
	if h.userDataDir != "" {
		removeUserDataDirUnderTempRoot(h.userDataDir)
	}
}
