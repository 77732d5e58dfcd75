// internal/core/session.go
// Generation session: link state, background requests and the per-frame poll
package core

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"

	"qr-code-generator/internal/imageio"
	"qr-code-generator/internal/mailbox"
	"qr-code-generator/internal/qr"
)

// PlaceholderText is shown while no QR image has been produced
const PlaceholderText = "QR Code will appear here"

// TextureLoader turns encoded bytes into a displayable texture
type TextureLoader interface {
	LoadTexture(data []byte) (*imageio.Texture, error)
}

// Result travels from a generation goroutine to the poll step. Exactly one
// of PNG and Err is set.
type Result struct {
	Seq       uint64
	RequestID string
	Input     string
	PNG       []byte
	Err       error
	Elapsed   time.Duration
}

// DisplayState is what the UI renders
type DisplayState struct {
	Texture *imageio.Texture
	Err     error
	// Seq of the last result applied, 0 before the first
	Seq     uint64
	Pending bool
}

func (d DisplayState) HasImage() bool {
	return d.Texture != nil
}

// Session owns the link text, issues generation requests and applies their
// results when polled. Display state only changes inside Poll.
type Session struct {
	mu      sync.Mutex
	link    string
	display DisplayState

	latest atomic.Uint64

	tx *mailbox.Sender[Result]
	rx *mailbox.Receiver[Result]

	encoder qr.Encoder
	loader  TextureLoader
	workers *semaphore.Weighted
	stats   *Stats
	logger  logrus.FieldLogger
	wg      sync.WaitGroup
}

type Option func(*Session)

// WithMaxWorkers bounds how many encodes may run at once
func WithMaxWorkers(n int) Option {
	return func(s *Session) {
		if n < 1 {
			n = 1
		}
		s.workers = semaphore.NewWeighted(int64(n))
	}
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

func NewSession(encoder qr.Encoder, loader TextureLoader, opts ...Option) *Session {
	tx, rx := mailbox.New[Result]()
	s := &Session{
		tx:      tx,
		rx:      rx,
		encoder: encoder,
		loader:  loader,
		workers: semaphore.NewWeighted(1),
		stats:   NewStats(),
		logger:  logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) SetLink(link string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.link = link
}

func (s *Session) Link() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.link
}

// Generate starts a background encode of the current link and returns its
// sequence number. It never blocks on encoding.
func (s *Session) Generate(ctx context.Context) uint64 {
	link := s.Link()
	seq := s.latest.Add(1)
	id := uuid.NewString()

	s.stats.recordIssued()
	s.logger.WithFields(logrus.Fields{
		"seq":         seq,
		"request_id":  id,
		"input_bytes": len(link),
	}).Info("SESSION: Generation requested")

	s.wg.Add(1)
	go s.run(ctx, s.tx.Clone(), seq, id, link)
	return seq
}

func (s *Session) run(ctx context.Context, tx *mailbox.Sender[Result], seq uint64, id, link string) {
	defer s.wg.Done()

	log := s.logger.WithFields(logrus.Fields{"seq": seq, "request_id": id})

	if err := s.workers.Acquire(ctx, 1); err != nil {
		log.WithError(err).Debug("SESSION: Request abandoned while waiting for a worker")
		return
	}
	defer s.workers.Release(1)

	if s.superseded(seq) {
		s.stats.recordSkipped()
		log.Debug("SESSION: Request superseded before it started, skipping")
		return
	}

	start := time.Now()
	data, err := s.encoder.Encode(link)
	res := Result{
		Seq:       seq,
		RequestID: id,
		Input:     link,
		PNG:       data,
		Err:       err,
		Elapsed:   time.Since(start),
	}

	if err := tx.Send(res); err != nil {
		log.WithError(err).Debug("SESSION: Session closed, dropping result")
	}
}

func (s *Session) superseded(seq uint64) bool {
	return seq < s.latest.Load()
}

// Poll performs one non-blocking receive and applies the result, if any.
// It reports whether the display state changed. Results from requests that
// have since been superseded are discarded.
func (s *Session) Poll() bool {
	res, ok := s.rx.TryRecv()
	if !ok {
		return false
	}

	log := s.logger.WithFields(logrus.Fields{
		"seq":        res.Seq,
		"request_id": res.RequestID,
		"elapsed":    res.Elapsed,
	})

	if s.superseded(res.Seq) {
		s.stats.recordStale()
		log.WithField("latest", s.latest.Load()).Debug("SESSION: Discarding stale result")
		return false
	}

	if res.Err != nil {
		s.stats.recordFailed(res.Elapsed)
		log.WithError(res.Err).Warn("SESSION: QR generation failed")
		s.apply(res.Seq, nil, res.Err)
		return true
	}

	tex, err := s.loader.LoadTexture(res.PNG)
	if err != nil {
		s.stats.recordDecodeFailed(res.Elapsed)
		log.WithError(err).Error("SESSION: Generated image could not be decoded")
		s.apply(res.Seq, nil, err)
		return true
	}

	s.stats.recordCompleted(res.Elapsed)
	log.WithFields(logrus.Fields{
		"width":  tex.Width,
		"height": tex.Height,
	}).Info("SESSION: QR code ready")
	s.apply(res.Seq, tex, nil)
	return true
}

// apply keeps the current texture when tex is nil
func (s *Session) apply(seq uint64, tex *imageio.Texture, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.display.Seq = seq
	s.display.Err = err
	if tex != nil {
		s.display.Texture = tex
	}
}

// Display returns a snapshot of the state the UI should render
func (s *Session) Display() DisplayState {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.display
	d.Pending = s.latest.Load() > d.Seq
	return d
}

// Wait polls until the latest issued request has been applied. It is meant
// for callers without a frame loop, such as the headless CLI.
func (s *Session) Wait(ctx context.Context) error {
	for {
		for s.rx.Len() > 0 {
			s.Poll()
		}
		if !s.Display().Pending {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.rx.Notify():
		}
	}
}

func (s *Session) Stats() StatsSnapshot {
	return s.stats.Snapshot()
}

// Close rejects further results and waits for running requests to finish
func (s *Session) Close() {
	s.rx.Close()
	s.wg.Wait()
	s.logger.WithFields(s.stats.Snapshot().Fields()).Info("SESSION: Closed")
}
