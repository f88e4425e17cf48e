package service

import (
	"context"
	"encoding/hex"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Caqil/schnorr-verify/pkg/cache"
	"github.com/Caqil/schnorr-verify/pkg/config"
	"github.com/Caqil/schnorr-verify/pkg/event"
	"github.com/Caqil/schnorr-verify/pkg/schnorr"
	"github.com/btcsuite/btcd/btcec/v2"
	btcschnorr "github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() config.ServiceConfig {
	return config.ServiceConfig{
		Workers:                2,
		QueueSize:              8,
		InitialValidationRatio: 1,
		LowestValidationRatio:  0.1,
	}
}

func newService(t *testing.T, cfg config.ServiceConfig, opts ...Option) *Service {
	t.Helper()
	s, err := New(cfg, opts...)
	require.NoError(t, err)
	t.Cleanup(s.Stop)
	return s
}

func signedRequest(t *testing.T, id string) Request {
	t.Helper()

	priv, err := btcec.NewPrivateKey()
	require.NoError(t, err)

	msg := make([]byte, 32)
	copy(msg, id)
	sig, err := btcschnorr.Sign(priv, msg)
	require.NoError(t, err)

	return Request{
		ID:        id,
		PublicKey: btcschnorr.SerializePubKey(priv.PubKey()),
		Message:   msg,
		Signature: sig.Serialize(),
	}
}

func signedEvent(t *testing.T, content string) *event.Event {
	t.Helper()

	priv, err := btcec.NewPrivateKey()
	require.NoError(t, err)

	ev := &event.Event{
		PubKey:    hex.EncodeToString(btcschnorr.SerializePubKey(priv.PubKey())),
		CreatedAt: time.Now().Unix(),
		Kind:      1,
		Content:   content,
	}
	id := ev.Hash()
	ev.ID = hex.EncodeToString(id[:])

	sig, err := btcschnorr.Sign(priv, id[:])
	require.NoError(t, err)
	ev.Sig = hex.EncodeToString(sig.Serialize())
	return ev
}

func tamper(req Request) Request {
	req.Message = append([]byte(nil), req.Message...)
	req.Message[0] ^= 0x01
	return req
}

type gateVerifier struct {
	started chan struct{}
	release chan struct{}
}

func newGateVerifier() *gateVerifier {
	return &gateVerifier{started: make(chan struct{}, 64), release: make(chan struct{})}
}

func (g *gateVerifier) Verify(_, _, _ []byte) (bool, error) {
	g.started <- struct{}{}
	<-g.release
	return true, nil
}

func TestNewValidatesConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Workers = 0
	_, err := New(cfg)
	assert.ErrorIs(t, err, config.ErrInvalidWorkers)
}

func TestVerify(t *testing.T) {
	s := newService(t, testConfig())
	req := signedRequest(t, "a")

	res := s.Verify(context.Background(), req)
	require.NoError(t, res.Err)
	assert.True(t, res.Valid)
	assert.Equal(t, "a", res.ID)

	res = s.Verify(context.Background(), tamper(req))
	require.NoError(t, res.Err)
	assert.False(t, res.Valid)

	bad := req
	bad.Signature = req.Signature[:10]
	res = s.Verify(context.Background(), bad)
	assert.ErrorIs(t, res.Err, schnorr.ErrMalformedInput)
	assert.False(t, res.Valid)

	st := s.Stats()
	assert.Equal(t, uint64(1), st.Verified)
	assert.Equal(t, uint64(1), st.Rejected)
	assert.Equal(t, uint64(1), st.Faults)
}

func TestVerifyCancelledContext(t *testing.T) {
	s := newService(t, testConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := s.Verify(ctx, signedRequest(t, "a"))
	assert.ErrorIs(t, res.Err, context.Canceled)
}

func TestVerifyUsesCache(t *testing.T) {
	c := cache.New(16)
	s := newService(t, testConfig(), WithCache(c))
	req := signedRequest(t, "a")

	first := s.Verify(context.Background(), req)
	require.True(t, first.Valid)
	assert.False(t, first.Cached)

	second := s.Verify(context.Background(), req)
	require.True(t, second.Valid)
	assert.True(t, second.Cached)

	// negative results are never cached
	s.Verify(context.Background(), tamper(req))
	assert.Equal(t, 1, c.Len())

	st := s.Stats()
	assert.Equal(t, uint64(1), st.CacheHits)
	assert.Equal(t, uint64(2), st.Verified)
}

func TestInvalidSignatureHandler(t *testing.T) {
	var mu sync.Mutex
	var reports []InvalidSignature

	s := newService(t, testConfig(), WithInvalidSignatureHandler(func(inv InvalidSignature) {
		mu.Lock()
		reports = append(reports, inv)
		mu.Unlock()
	}))

	req := signedRequest(t, "bad")
	req.Source = "wss://relay.one"
	s.Verify(context.Background(), tamper(req))
	s.Verify(context.Background(), req)

	require.Len(t, reports, 1)
	assert.Equal(t, "bad", reports[0].ID)
	assert.Equal(t, "wss://relay.one", reports[0].Source)
	assert.Equal(t, req.PublicKey, reports[0].PublicKey)
	assert.Nil(t, reports[0].Event)
}

func TestLifecycle(t *testing.T) {
	s := newService(t, testConfig())
	ctx := context.Background()

	_, err := s.Submit(ctx, signedRequest(t, "a"))
	assert.ErrorIs(t, err, ErrNotStarted)

	require.NoError(t, s.Start(ctx))
	assert.ErrorIs(t, s.Start(ctx), ErrAlreadyStarted)

	ch, err := s.Submit(ctx, signedRequest(t, "a"))
	require.NoError(t, err)
	res := <-ch
	require.NoError(t, res.Err)
	assert.True(t, res.Valid)

	s.Stop()
	s.Stop()

	_, err = s.Submit(ctx, signedRequest(t, "b"))
	assert.ErrorIs(t, err, ErrStopped)
	assert.ErrorIs(t, s.Start(ctx), ErrStopped)
}

func TestSubmitMany(t *testing.T) {
	s := newService(t, testConfig())
	ctx := context.Background()
	require.NoError(t, s.Start(ctx))

	reqs := make([]Request, 20)
	for i := range reqs {
		reqs[i] = signedRequest(t, string(rune('a'+i)))
		if i%2 == 1 {
			reqs[i] = tamper(reqs[i])
		}
	}

	chans := make([]<-chan Result, len(reqs))
	for i, req := range reqs {
		ch, err := s.Submit(ctx, req)
		require.NoError(t, err)
		chans[i] = ch
	}

	for i, ch := range chans {
		res := <-ch
		require.NoError(t, res.Err)
		assert.Equal(t, reqs[i].ID, res.ID)
		assert.Equal(t, i%2 == 0, res.Valid, "request %d", i)
	}
}

func TestSubmitBlocksOnFullQueue(t *testing.T) {
	gate := newGateVerifier()
	cfg := testConfig()
	cfg.Workers = 1
	cfg.QueueSize = 0
	s := newService(t, cfg, WithVerifier(gate))
	require.NoError(t, s.Start(context.Background()))

	first, err := s.Submit(context.Background(), Request{ID: "1"})
	require.NoError(t, err)
	<-gate.started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = s.Submit(ctx, Request{ID: "2"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(gate.release)
	res := <-first
	assert.True(t, res.Valid)
}

func TestStopAnswersQueuedRequests(t *testing.T) {
	gate := newGateVerifier()
	cfg := testConfig()
	cfg.Workers = 1
	cfg.QueueSize = 4
	s := newService(t, cfg, WithVerifier(gate))
	require.NoError(t, s.Start(context.Background()))

	var chans []<-chan Result
	for i := 0; i < 3; i++ {
		ch, err := s.Submit(context.Background(), Request{ID: string(rune('a' + i))})
		require.NoError(t, err)
		chans = append(chans, ch)
	}
	<-gate.started

	stopped := make(chan struct{})
	go func() {
		s.Stop()
		close(stopped)
	}()
	close(gate.release)
	<-stopped

	for _, ch := range chans {
		select {
		case res := <-ch:
			if res.Err != nil {
				assert.ErrorIs(t, res.Err, ErrStopped)
			} else {
				assert.True(t, res.Valid)
			}
		case <-time.After(time.Second):
			t.Fatal("no result delivered")
		}
	}
}

func TestStartContextCancelStops(t *testing.T) {
	s := newService(t, testConfig())
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))
	cancel()

	require.Eventually(t, func() bool {
		_, err := s.Submit(context.Background(), Request{})
		return errors.Is(err, ErrStopped)
	}, time.Second, 5*time.Millisecond)
}

func TestVerifyAll(t *testing.T) {
	s := newService(t, testConfig())

	reqs := []Request{
		signedRequest(t, "0"),
		tamper(signedRequest(t, "1")),
		signedRequest(t, "2"),
		{ID: "3", PublicKey: []byte{1}},
		signedRequest(t, "4"),
	}

	results := s.VerifyAll(context.Background(), reqs)
	require.Len(t, results, len(reqs))

	for i, res := range results {
		assert.Equal(t, reqs[i].ID, res.ID)
	}
	assert.True(t, results[0].Valid)
	assert.False(t, results[1].Valid)
	assert.NoError(t, results[1].Err)
	assert.True(t, results[2].Valid)
	assert.Equal(t, schnorr.KindMalformedInput, schnorr.KindOf(results[3].Err))
	assert.True(t, results[4].Valid)

	assert.Empty(t, s.VerifyAll(context.Background(), nil))
}
