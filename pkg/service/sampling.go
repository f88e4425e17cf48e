package service

import (
	"math"
	"sort"
	"sync"
	"time"
)

// RatioFunc computes a source's new target validation ratio from its
// counts of verified and unverified events
type RatioFunc func(validated, nonValidated uint64) float64

// DefaultRatioFunc returns the ratio function used unless WithRatioFunc is
// given. Below ten verified events the ratio stays at initial; it then
// decays linearly towards lowest, reaching it after a hundred.
func DefaultRatioFunc(initial, lowest float64) RatioFunc {
	return func(validated, _ uint64) float64 {
		if validated < 10 {
			return initial
		}
		trust := math.Min(float64(validated)/100, 1)
		return math.Max(initial*(1-trust)+lowest*trust, lowest)
	}
}

// Source tracks sampling state for one origin of events, typically a relay
type Source struct {
	url string

	mu           sync.Mutex
	trusted      bool
	blacklisted  bool
	target       float64
	validated    uint64
	nonValidated uint64
}

// SourceStats is a snapshot of a Source
type SourceStats struct {
	URL             string
	Trusted         bool
	Blacklisted     bool
	TargetRatio     float64
	ValidationRatio float64
	Validated       uint64
	NonValidated    uint64
}

// URL returns the source name
func (src *Source) URL() string {
	return src.url
}

// ValidationRatio is the fraction of events from this source that were
// verified. It is 1 until an event is skipped.
func (src *Source) ValidationRatio() float64 {
	src.mu.Lock()
	defer src.mu.Unlock()
	return src.validationRatio()
}

func (src *Source) validationRatio() float64 {
	if src.nonValidated == 0 {
		return 1
	}
	return float64(src.validated) / float64(src.validated+src.nonValidated)
}

// TargetRatio is the probability that the next event is verified
func (src *Source) TargetRatio() float64 {
	src.mu.Lock()
	defer src.mu.Unlock()
	return src.target
}

// Blacklisted reports whether the source produced an invalid signature
// while auto-blacklisting was enabled
func (src *Source) Blacklisted() bool {
	src.mu.Lock()
	defer src.mu.Unlock()
	return src.blacklisted
}

func (src *Source) addValidated() {
	src.mu.Lock()
	src.validated++
	src.mu.Unlock()
}

func (src *Source) addNonValidated() {
	src.mu.Lock()
	src.nonValidated++
	src.mu.Unlock()
}

// blacklist marks the source and reports whether it was newly marked
func (src *Source) blacklist() bool {
	src.mu.Lock()
	defer src.mu.Unlock()
	if src.blacklisted {
		return false
	}
	src.blacklisted = true
	return true
}

func (src *Source) snapshot() SourceStats {
	src.mu.Lock()
	defer src.mu.Unlock()
	return SourceStats{
		URL:             src.url,
		Trusted:         src.trusted,
		Blacklisted:     src.blacklisted,
		TargetRatio:     src.target,
		ValidationRatio: src.validationRatio(),
		Validated:       src.validated,
		NonValidated:    src.nonValidated,
	}
}

// Source returns the sampling state for url, creating it on first use
func (s *Service) Source(url string) *Source {
	s.sourcesMu.RLock()
	src, ok := s.sources[url]
	s.sourcesMu.RUnlock()
	if ok {
		return src
	}

	s.sourcesMu.Lock()
	defer s.sourcesMu.Unlock()

	if src, ok := s.sources[url]; ok {
		return src
	}
	_, trusted := s.trusted[url]
	src = &Source{
		url:     url,
		trusted: trusted,
		target:  s.cfg.InitialValidationRatio,
	}
	s.sources[url] = src
	return src
}

// SetTrusted marks url as trusted or untrusted. Events from trusted
// sources are never verified.
func (s *Service) SetTrusted(url string, trusted bool) {
	src := s.Source(url)
	src.mu.Lock()
	src.trusted = trusted
	src.mu.Unlock()
}

// ShouldVerify decides whether the next event from url is verified.
// Trusted sources are never verified; a target ratio of 1 always is;
// otherwise a uniform draw is compared to the target. A failed draw
// verifies.
func (s *Service) ShouldVerify(url string) bool {
	src := s.Source(url)

	src.mu.Lock()
	trusted, target := src.trusted, src.target
	src.mu.Unlock()

	if trusted {
		return false
	}
	if target >= 1 {
		return true
	}

	x, err := s.draw()
	if err != nil {
		s.log.Warn().Err(err).Msg("sampling draw failed")
		return true
	}
	return x < target
}

// RecalculateRatios updates the target ratio of every source that has at
// least one verified event
func (s *Service) RecalculateRatios() {
	s.sourcesMu.RLock()
	sources := make([]*Source, 0, len(s.sources))
	for _, src := range s.sources {
		sources = append(sources, src)
	}
	s.sourcesMu.RUnlock()

	for _, src := range sources {
		src.mu.Lock()
		if src.validated > 0 {
			old := src.target
			src.target = s.ratioFn(src.validated, src.nonValidated)
			if src.target != old {
				s.log.Debug().
					Str("source", src.url).
					Float("from", old).
					Float("to", src.target).
					Msg("validation ratio updated")
			}
		}
		src.mu.Unlock()
	}
}

func (s *Service) ratioLoop(interval time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.RecalculateRatios()
		}
	}
}

func (s *Service) sourceStats() []SourceStats {
	s.sourcesMu.RLock()
	out := make([]SourceStats, 0, len(s.sources))
	for _, src := range s.sources {
		out = append(out, src.snapshot())
	}
	s.sourcesMu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].URL < out[j].URL })
	return out
}
