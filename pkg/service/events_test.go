package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Caqil/schnorr-verify/pkg/cache"
	"github.com/Caqil/schnorr-verify/pkg/event"
	"github.com/Caqil/schnorr-verify/pkg/schnorr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessEventVerified(t *testing.T) {
	s := newService(t, testConfig())
	ev := signedEvent(t, "hello")

	out, err := s.ProcessEvent(context.Background(), "wss://a", ev)
	require.NoError(t, err)
	assert.Equal(t, OutcomeVerified, out)

	src := s.Source("wss://a").snapshot()
	assert.Equal(t, uint64(1), src.Validated)
	assert.Equal(t, uint64(0), src.NonValidated)
}

func TestProcessEventSkipped(t *testing.T) {
	cfg := testConfig()
	cfg.TrustedSources = []string{"wss://trusted"}
	s := newService(t, cfg)

	// a bad signature from a trusted source is not noticed
	ev := signedEvent(t, "hello")
	ev.Sig = signedEvent(t, "other").Sig

	out, err := s.ProcessEvent(context.Background(), "wss://trusted", ev)
	require.NoError(t, err)
	assert.Equal(t, OutcomeSkipped, out)
	assert.Equal(t, uint64(1), s.Stats().Skipped)
	assert.Equal(t, uint64(1), s.Source("wss://trusted").snapshot().NonValidated)
}

func TestProcessEventSampled(t *testing.T) {
	cfg := testConfig()
	cfg.InitialValidationRatio = 0.5
	s := newService(t, cfg, WithRand(fixedDraw(0.9)))

	out, err := s.ProcessEvent(context.Background(), "wss://a", signedEvent(t, "x"))
	require.NoError(t, err)
	assert.Equal(t, OutcomeSkipped, out)
}

func TestProcessEventRejected(t *testing.T) {
	var mu sync.Mutex
	var reports []InvalidSignature
	s := newService(t, testConfig(), WithInvalidSignatureHandler(func(inv InvalidSignature) {
		mu.Lock()
		reports = append(reports, inv)
		mu.Unlock()
	}))

	ev := signedEvent(t, "hello")
	ev.Sig = signedEvent(t, "other").Sig

	out, err := s.ProcessEvent(context.Background(), "wss://evil", ev)
	require.NoError(t, err)
	assert.Equal(t, OutcomeRejected, out)

	require.Len(t, reports, 1)
	assert.Equal(t, "wss://evil", reports[0].Source)
	assert.Equal(t, ev.ID, reports[0].ID)
	assert.Same(t, ev, reports[0].Event)
	assert.Equal(t, uint64(1), s.Stats().Rejected)

	// without auto-blacklisting the source keeps being processed
	out, err = s.ProcessEvent(context.Background(), "wss://evil", signedEvent(t, "ok"))
	require.NoError(t, err)
	assert.Equal(t, OutcomeVerified, out)
}

func TestProcessEventAutoBlacklist(t *testing.T) {
	cfg := testConfig()
	cfg.AutoBlacklist = true
	s := newService(t, cfg)

	bad := signedEvent(t, "hello")
	bad.Sig = signedEvent(t, "other").Sig

	out, err := s.ProcessEvent(context.Background(), "wss://evil", bad)
	require.NoError(t, err)
	assert.Equal(t, OutcomeRejected, out)
	assert.True(t, s.Source("wss://evil").Blacklisted())

	out, err = s.ProcessEvent(context.Background(), "wss://evil", signedEvent(t, "ok"))
	require.NoError(t, err)
	assert.Equal(t, OutcomeBlacklisted, out)

	out, err = s.ProcessEvent(context.Background(), "wss://good", signedEvent(t, "ok"))
	require.NoError(t, err)
	assert.Equal(t, OutcomeVerified, out)
}

func TestProcessEventFaults(t *testing.T) {
	s := newService(t, testConfig())
	ctx := context.Background()

	t.Run("nil event", func(t *testing.T) {
		out, err := s.ProcessEvent(ctx, "wss://a", nil)
		assert.Equal(t, OutcomeFault, out)
		assert.ErrorIs(t, err, ErrNilEvent)
	})

	t.Run("id mismatch", func(t *testing.T) {
		ev := signedEvent(t, "hello")
		ev.Content = "changed"
		out, err := s.ProcessEvent(ctx, "wss://a", ev)
		assert.Equal(t, OutcomeFault, out)
		assert.ErrorIs(t, err, event.ErrInvalidID)
	})

	t.Run("malformed signature hex", func(t *testing.T) {
		ev := signedEvent(t, "hello")
		ev.Sig = "zz"
		out, err := s.ProcessEvent(ctx, "wss://a", ev)
		assert.Equal(t, OutcomeFault, out)
		assert.Equal(t, schnorr.KindMalformedInput, schnorr.KindOf(err))
	})

	t.Run("public key off curve", func(t *testing.T) {
		ev := signedEvent(t, "hello")
		ev.PubKey = "fffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc30"
		ev.ID = ev.ComputeID()
		out, err := s.ProcessEvent(ctx, "wss://a", ev)
		assert.Equal(t, OutcomeFault, out)
		assert.ErrorIs(t, err, schnorr.ErrInvalidEncoding)
	})

	assert.Equal(t, uint64(3), s.Stats().Faults)
}

func TestProcessEventRunsOnWorkers(t *testing.T) {
	gate := newGateVerifier()
	cfg := testConfig()
	cfg.Workers = 1
	cfg.QueueSize = 0
	s := newService(t, cfg, WithVerifier(gate))
	require.NoError(t, s.Start(context.Background()))

	type outcome struct {
		out Outcome
		err error
	}
	busy := signedEvent(t, "busy")
	first := make(chan outcome, 1)
	go func() {
		out, err := s.ProcessEvent(context.Background(), "wss://a", busy)
		first <- outcome{out, err}
	}()
	<-gate.started

	// the only worker is busy and the queue has no room
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	out, err := s.ProcessEvent(ctx, "wss://a", signedEvent(t, "queued"))
	assert.Equal(t, OutcomeFault, out)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(gate.release)
	res := <-first
	require.NoError(t, res.err)
	assert.Equal(t, OutcomeVerified, res.out)
}

func TestProcessEventStartedReportsOnce(t *testing.T) {
	var mu sync.Mutex
	reports := 0
	s := newService(t, testConfig(), WithInvalidSignatureHandler(func(InvalidSignature) {
		mu.Lock()
		reports++
		mu.Unlock()
	}))
	require.NoError(t, s.Start(context.Background()))

	ev := signedEvent(t, "hello")
	ev.Sig = signedEvent(t, "other").Sig

	out, err := s.ProcessEvent(context.Background(), "wss://a", ev)
	require.NoError(t, err)
	assert.Equal(t, OutcomeRejected, out)

	out, err = s.ProcessEvent(context.Background(), "wss://a", signedEvent(t, "ok"))
	require.NoError(t, err)
	assert.Equal(t, OutcomeVerified, out)

	mu.Lock()
	assert.Equal(t, 1, reports)
	mu.Unlock()

	// a stopped service still checks events on the caller
	s.Stop()
	out, err = s.ProcessEvent(context.Background(), "wss://b", signedEvent(t, "late"))
	require.NoError(t, err)
	assert.Equal(t, OutcomeVerified, out)
}

func TestProcessEventCached(t *testing.T) {
	s := newService(t, testConfig(), WithCache(cache.New(8)))
	ev := signedEvent(t, "dup")

	for i := 0; i < 3; i++ {
		out, err := s.ProcessEvent(context.Background(), "wss://a", ev)
		require.NoError(t, err)
		assert.Equal(t, OutcomeVerified, out)
	}

	st := s.Stats()
	assert.Equal(t, uint64(2), st.CacheHits)
	assert.Equal(t, uint64(3), st.Verified)
	require.Len(t, st.Sources, 1)
	assert.Equal(t, uint64(3), st.Sources[0].Validated)
}

func TestStatsSourcesSorted(t *testing.T) {
	s := newService(t, testConfig())
	for _, url := range []string{"wss://c", "wss://a", "wss://b"} {
		_, err := s.ProcessEvent(context.Background(), url, signedEvent(t, url))
		require.NoError(t, err)
	}

	st := s.Stats()
	require.Len(t, st.Sources, 3)
	assert.Equal(t, "wss://a", st.Sources[0].URL)
	assert.Equal(t, "wss://b", st.Sources[1].URL)
	assert.Equal(t, "wss://c", st.Sources[2].URL)
	s.LogStats()
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "verified", OutcomeVerified.String())
	assert.Equal(t, "blacklisted", OutcomeBlacklisted.String())
	assert.Equal(t, "outcome(42)", Outcome(42).String())
}
