// Package service runs signature verification for many callers: a bounded
// worker pool, a verified-signature cache, per-source sampling and
// invalid-signature reporting.
package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Caqil/schnorr-verify/pkg/cache"
	"github.com/Caqil/schnorr-verify/pkg/config"
	"github.com/Caqil/schnorr-verify/pkg/crypto/rand"
	"github.com/Caqil/schnorr-verify/pkg/event"
	"github.com/Caqil/schnorr-verify/pkg/logger"
	"github.com/Caqil/schnorr-verify/pkg/schnorr"
)

// Request is a single verification
type Request struct {
	// ID is an opaque caller identifier copied into the Result
	ID string
	// Source names where the signature came from; may be empty
	Source string

	PublicKey []byte
	Message   []byte
	Signature []byte
}

// Result is the outcome of a Request. Err is set for faults and
// cancellation; an invalid signature is Valid == false with a nil Err.
type Result struct {
	ID       string
	Source   string
	Valid    bool
	Cached   bool
	Err      error
	Duration time.Duration
}

// InvalidSignature describes a signature that failed verification
type InvalidSignature struct {
	Source    string
	ID        string
	PublicKey []byte
	// Event is set when the signature came from ProcessEvent
	Event *event.Event
}

// InvalidSignatureHandler is called synchronously for every invalid
// signature. It must not block.
type InvalidSignatureHandler func(InvalidSignature)

type state int

const (
	stateIdle state = iota
	stateRunning
	stateStopped
)

type task struct {
	ctx    context.Context
	req    Request
	report bool
	result chan Result
}

// Service verifies signatures on a pool of workers
type Service struct {
	cfg       config.ServiceConfig
	verifier  schnorr.Verifier
	cache     *cache.Cache
	log       *logger.Logger
	draw      func() (float64, error)
	ratioFn   RatioFunc
	onInvalid InvalidSignatureHandler

	mu       sync.RWMutex
	state    state
	queue    chan task
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	sourcesMu sync.RWMutex
	sources   map[string]*Source
	trusted   map[string]struct{}

	verified   atomic.Uint64
	rejected   atomic.Uint64
	faults     atomic.Uint64
	skipped    atomic.Uint64
	cacheHits  atomic.Uint64
	verifyTime atomic.Int64
}

// Option configures a Service
type Option func(*Service)

// WithLogger sets the logger
func WithLogger(l *logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithCache sets the verified-signature cache
func WithCache(c *cache.Cache) Option {
	return func(s *Service) {
		s.cache = c
	}
}

// WithVerifier replaces the BIP-340 verifier
func WithVerifier(v schnorr.Verifier) Option {
	return func(s *Service) {
		if v != nil {
			s.verifier = v
		}
	}
}

// WithRand replaces the source of uniform draws in [0, 1) used for sampling
func WithRand(fn func() (float64, error)) Option {
	return func(s *Service) {
		if fn != nil {
			s.draw = fn
		}
	}
}

// WithRatioFunc replaces the validation ratio function
func WithRatioFunc(fn RatioFunc) Option {
	return func(s *Service) {
		if fn != nil {
			s.ratioFn = fn
		}
	}
}

// WithInvalidSignatureHandler registers a handler for invalid signatures
func WithInvalidSignatureHandler(h InvalidSignatureHandler) Option {
	return func(s *Service) {
		s.onInvalid = h
	}
}

// New creates a service. It does not start the workers.
func New(cfg config.ServiceConfig, opts ...Option) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Service{
		cfg:      cfg,
		verifier: schnorr.BIP340{},
		log:      logger.Nop(),
		draw:     rand.Float64,
		queue:    make(chan task, cfg.QueueSize),
		done:     make(chan struct{}),
		sources:  make(map[string]*Source),
		trusted:  make(map[string]struct{}, len(cfg.TrustedSources)),
	}
	s.ratioFn = DefaultRatioFunc(cfg.InitialValidationRatio, cfg.LowestValidationRatio)

	for _, url := range cfg.TrustedSources {
		s.trusted[url] = struct{}{}
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.Component("service")

	return s, nil
}

// Start launches the workers and, when configured, the periodic ratio
// recalculation. Cancelling ctx stops the service.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case stateRunning:
		return ErrAlreadyStarted
	case stateStopped:
		return ErrStopped
	}
	s.state = stateRunning

	for w := 0; w < s.cfg.Workers; w++ {
		s.wg.Add(1)
		go s.worker()
	}

	if s.cfg.RatioUpdateInterval > 0 {
		s.wg.Add(1)
		go s.ratioLoop(s.cfg.RatioUpdateInterval)
	}

	go func() {
		select {
		case <-ctx.Done():
			s.Stop()
		case <-s.done:
		}
	}()

	s.log.Info().
		Int("workers", s.cfg.Workers).
		Int("queue_size", s.cfg.QueueSize).
		Bool("cache", s.cache.Enabled()).
		Msg("verification service started")
	return nil
}

// Stop stops the workers and waits for them. Requests still queued
// receive ErrStopped. Stop is safe to call more than once.
func (s *Service) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)

		// waits for in-flight Submit calls, which observe done
		s.mu.Lock()
		wasRunning := s.state == stateRunning
		s.state = stateStopped
		s.mu.Unlock()

		s.wg.Wait()

		for {
			select {
			case t := <-s.queue:
				t.result <- Result{ID: t.req.ID, Source: t.req.Source, Err: ErrStopped}
			default:
				if wasRunning {
					s.log.Info().Msg("verification service stopped")
				}
				return
			}
		}
	})
}

// Submit queues req for a worker. It blocks while the queue is full until
// ctx is done. The returned channel receives exactly one Result.
func (s *Service) Submit(ctx context.Context, req Request) (<-chan Result, error) {
	return s.submit(ctx, req, true)
}

func (s *Service) submit(ctx context.Context, req Request, report bool) (<-chan Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch s.state {
	case stateIdle:
		return nil, ErrNotStarted
	case stateStopped:
		return nil, ErrStopped
	}

	t := task{ctx: ctx, req: req, report: report, result: make(chan Result, 1)}
	select {
	case s.queue <- t:
		return t.result, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-s.done:
		return nil, ErrStopped
	}
}

func (s *Service) worker() {
	defer s.wg.Done()

	for {
		select {
		case <-s.done:
			return
		case t := <-s.queue:
			if t.report {
				t.result <- s.Verify(t.ctx, t.req)
			} else {
				t.result <- s.verify(t.ctx, t.req)
			}
		}
	}
}

// check verifies req on a worker while the service is running and on the
// calling goroutine otherwise. It does not report invalid signatures.
func (s *Service) check(ctx context.Context, req Request) Result {
	ch, err := s.submit(ctx, req, false)
	switch {
	case err == nil:
		select {
		case res := <-ch:
			return res
		case <-ctx.Done():
			return Result{ID: req.ID, Source: req.Source, Err: ctx.Err()}
		}
	case errors.Is(err, ErrNotStarted), errors.Is(err, ErrStopped):
		return s.verify(ctx, req)
	default:
		return Result{ID: req.ID, Source: req.Source, Err: err}
	}
}

// Verify checks req on the calling goroutine. A cached positive result is
// returned without recomputation.
func (s *Service) Verify(ctx context.Context, req Request) Result {
	res := s.verify(ctx, req)
	if res.Err == nil && !res.Valid {
		s.reportInvalid(InvalidSignature{
			Source:    req.Source,
			ID:        req.ID,
			PublicKey: req.PublicKey,
		})
	}
	return res
}

func (s *Service) verify(ctx context.Context, req Request) Result {
	res := Result{ID: req.ID, Source: req.Source}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	if s.cache.Contains(req.PublicKey, req.Message, req.Signature) {
		s.cacheHits.Add(1)
		s.verified.Add(1)
		res.Valid = true
		res.Cached = true
		return res
	}

	start := time.Now()
	ok, err := s.verifier.Verify(req.PublicKey, req.Message, req.Signature)
	res.Duration = time.Since(start)
	s.verifyTime.Add(int64(res.Duration))

	switch {
	case err != nil:
		s.faults.Add(1)
		res.Err = err
		s.log.Debug().
			ID("id", req.ID).
			Str("source", req.Source).
			Str("kind", schnorr.KindOf(err).String()).
			Err(err).
			Msg("verification fault")
	case ok:
		s.verified.Add(1)
		s.cache.Add(req.PublicKey, req.Message, req.Signature)
		res.Valid = true
	default:
		s.rejected.Add(1)
	}
	return res
}

// VerifyAll verifies reqs concurrently on up to Workers goroutines and
// returns the results in request order. It does not need Start.
func (s *Service) VerifyAll(ctx context.Context, reqs []Request) []Result {
	results := make([]Result, len(reqs))
	if len(reqs) == 0 {
		return results
	}

	workers := s.cfg.Workers
	if workers > len(reqs) {
		workers = len(reqs)
	}

	tasks := make(chan int, len(reqs))
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range tasks {
				results[i] = s.Verify(ctx, reqs[i])
			}
		}()
	}

	for i := range reqs {
		tasks <- i
	}
	close(tasks)
	wg.Wait()

	return results
}

func (s *Service) reportInvalid(inv InvalidSignature) {
	ev := s.log.Warn().ID("id", inv.ID)
	if inv.Source != "" {
		ev = ev.Str("source", inv.Source)
	}
	ev.Msg("invalid signature")

	if inv.Source != "" && s.cfg.AutoBlacklist {
		src := s.Source(inv.Source)
		if src.blacklist() {
			s.log.Warn().Str("source", inv.Source).Msg("source blacklisted")
		}
	}

	if s.onInvalid != nil {
		s.onInvalid(inv)
	}
}
