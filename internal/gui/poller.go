package gui

import (
	"context"
	"sync"
	"time"

	"fyne.io/fyne/v2"
)

// FramePoller calls frame on the UI goroutine once per interval. Fyne has
// no per-frame hook, so a ticker stands in for the render loop.
type FramePoller struct {
	interval time.Duration
	frame    func()
	dispatch func(func())

	mu      sync.Mutex
	running bool
	done    chan struct{}
}

func NewFramePoller(interval time.Duration, frame func()) *FramePoller {
	return &FramePoller{
		interval: interval,
		frame:    frame,
		dispatch: fyne.Do,
	}
}

// Start is a no-op if the poller is already running
func (p *FramePoller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return
	}
	p.running = true
	p.done = make(chan struct{})

	go p.loop(ctx, p.done)
}

func (p *FramePoller) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.mu.Lock()
			p.running = false
			p.mu.Unlock()
			return
		case <-ticker.C:
			p.dispatch(p.frame)
		}
	}
}

// Done is closed once the loop has exited
func (p *FramePoller) Done() <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}
