package service

import "time"

// Stats is a snapshot of service counters
type Stats struct {
	Verified   uint64
	Rejected   uint64
	Faults     uint64
	Skipped    uint64
	CacheHits  uint64
	VerifyTime time.Duration
	Sources    []SourceStats
}

// Stats returns the current counters and a per-source snapshot sorted by URL
func (s *Service) Stats() Stats {
	return Stats{
		Verified:   s.verified.Load(),
		Rejected:   s.rejected.Load(),
		Faults:     s.faults.Load(),
		Skipped:    s.skipped.Load(),
		CacheHits:  s.cacheHits.Load(),
		VerifyTime: time.Duration(s.verifyTime.Load()),
		Sources:    s.sourceStats(),
	}
}

// LogStats writes the counters at info level
func (s *Service) LogStats() {
	st := s.Stats()
	s.log.Info().
		Uint64("verified", st.Verified).
		Uint64("rejected", st.Rejected).
		Uint64("faults", st.Faults).
		Uint64("skipped", st.Skipped).
		Uint64("cache_hits", st.CacheHits).
		Dur("verify_time", st.VerifyTime).
		Int("sources", len(st.Sources)).
		Msg("verification stats")
}
