package implementations

import (
	"sync/atomic"
	"testing"

	"github.com/go-rod/rod"
	"github.com/stretchr/testify/assert"
)

// withFakeBrowserClose replaces closeBrowserFn with one that counts calls
// instead of reaching out to a real browser process, and restores it
// afterwards.
func withFakeBrowserClose(t *testing.T) *int32 {
	var calls int32
	original := closeBrowserFn
	closeBrowserFn = func(*rod.Browser) error {
		atomic.AddInt32(&calls, 1)
		return nil
	}
	t.Cleanup(func() { closeBrowserFn = original })
	return &calls
}

func TestBrowserHolder_AcquireReleaseWithoutMark(t *testing.T) {
	calls := withFakeBrowserClose(t)
	holder := newBrowserHolder(&rod.Browser{}, "")

	_, ok := holder.acquire()
	assert.True(t, ok)

	holder.release()
	assert.Equal(t, int32(0), atomic.LoadInt32(calls), "cleanup must not run unless the holder was marked")
}

func TestBrowserHolder_MarkWithNoOutstandingAcquiresCleansImmediately(t *testing.T) {
	calls := withFakeBrowserClose(t)
	holder := newBrowserHolder(&rod.Browser{}, "")

	holder.mark()
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
	assert.True(t, holder.cleaned)
}

func TestBrowserHolder_CleanupWaitsForOutstandingAcquireToRelease(t *testing.T) {
	calls := withFakeBrowserClose(t)
	holder := newBrowserHolder(&rod.Browser{}, "")

	_, ok := holder.acquire()
	assert.True(t, ok)

	holder.mark()
	assert.Equal(t, int32(0), atomic.LoadInt32(calls), "cleanup must wait for the outstanding reference")

	holder.release()
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}

func TestBrowserHolder_CleanupRunsExactlyOnce(t *testing.T) {
	calls := withFakeBrowserClose(t)
	holder := newBrowserHolder(&rod.Browser{}, "")

	_, _ = holder.acquire()
	_, _ = holder.acquire()

	holder.mark()
	holder.release()
	holder.release()

	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}

func TestBrowserHolder_AcquireAfterMarkedFailsBeforeCleanup(t *testing.T) {
	withFakeBrowserClose(t)
	holder := newBrowserHolder(&rod.Browser{}, "")

	_, ok := holder.acquire()
	assert.True(t, ok)

	holder.mark()
	assert.False(t, holder.cleaned, "outstanding reference must defer cleanup")

	_, ok = holder.acquire()
	assert.False(t, ok, "a marked holder must refuse new acquisitions even before cleanup runs")

	holder.release()
}

func TestBrowserHolder_AcquireAfterCleanedFails(t *testing.T) {
	withFakeBrowserClose(t)
	holder := newBrowserHolder(&rod.Browser{}, "")

	holder.mark()
	assert.True(t, holder.cleaned)

	_, ok := holder.acquire()
	assert.False(t, ok)
}
