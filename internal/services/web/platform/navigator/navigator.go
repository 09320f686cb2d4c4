// Package navigator adapts verification effects to one HTTP response.
//
// A Recorder is handed to a controller or coordinator as its effector while
// the request runs; afterwards the handler replays the recorded notice and
// destination onto the response.
package navigator

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/ourhour/ourhour-web/internal/services/web/platform/flash"
	"github.com/ourhour/ourhour-web/internal/services/web/verification"
)

// Notifier queues a flash notice on a response.
type Notifier interface {
	Notify(w http.ResponseWriter, r *http.Request, notice flash.Notice)
}

// Recorder records effects for a single request.
type Recorder struct {
	mu        sync.Mutex
	notices   []verification.Notice
	target    string
	delay     time.Duration
	navigated bool
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Notify records notice.
func (r *Recorder) Notify(_ context.Context, notice verification.Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, notice)
}

// Navigate records an immediate navigation.
func (r *Recorder) Navigate(_ context.Context, target string) {
	r.NavigateAfter(context.Background(), target, 0)
}

// NavigateAfter records a delayed navigation. The browser performs the
// wait, so nothing outlives the request.
func (r *Recorder) NavigateAfter(_ context.Context, target string, delay time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if delay < 0 {
		delay = 0
	}
	r.target = target
	r.delay = delay
	r.navigated = true
}

// Destination returns the recorded navigation.
func (r *Recorder) Destination() (target string, delay time.Duration, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.target, r.delay, r.navigated
}

// Notices returns the recorded notices in order.
func (r *Recorder) Notices() []verification.Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]verification.Notice(nil), r.notices...)
}

// Flush queues the last recorded notice on the response. The flash cookie
// holds one notice.
func (r *Recorder) Flush(w http.ResponseWriter, req *http.Request, notifier Notifier) {
	notices := r.Notices()
	if len(notices) == 0 || notifier == nil {
		return
	}
	notifier.Notify(w, req, FlashNotice(notices[len(notices)-1]))
}

// FlashNotice maps a verification notice onto a flash notice.
func FlashNotice(notice verification.Notice) flash.Notice {
	kind := flash.KindInfo
	switch notice.Level {
	case verification.NoticeSuccess:
		kind = flash.KindSuccess
	case verification.NoticeError:
		kind = flash.KindError
	}
	return flash.Notice{Kind: kind, Key: notice.Key}
}

var (
	_ verification.Effector         = (*Recorder)(nil)
	_ verification.DelayedNavigator = (*Recorder)(nil)
)
