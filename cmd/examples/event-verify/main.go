// Package main demonstrates the verification service on Nostr events
package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"github.com/Caqil/schnorr-verify/pkg/cache"
	"github.com/Caqil/schnorr-verify/pkg/config"
	"github.com/Caqil/schnorr-verify/pkg/event"
	"github.com/Caqil/schnorr-verify/pkg/logger"
	"github.com/Caqil/schnorr-verify/pkg/service"
	"github.com/btcsuite/btcd/btcec/v2"
	btcschnorr "github.com/btcsuite/btcd/btcec/v2/schnorr"
)

const (
	honestRelay = "wss://relay.honest.example"
	evilRelay   = "wss://relay.evil.example"
)

func main() {
	fmt.Println("=== Nostr Event Verification Example ===")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Phase 1: Build the service
	fmt.Println("\nPhase 1: Starting verification service...")
	cfg := config.Default()
	cfg.Service.Workers = 2
	cfg.Service.AutoBlacklist = true
	cfg.Service.RatioUpdateInterval = 0

	reports := make(chan service.InvalidSignature, 16)
	svc, err := service.New(cfg.Service,
		service.WithLogger(logger.New(&logger.Config{Level: "warn", Pretty: true})),
		service.WithCache(cache.New(cfg.Cache.Capacity)),
		service.WithInvalidSignatureHandler(func(inv service.InvalidSignature) {
			reports <- inv
		}),
	)
	if err != nil {
		log.Fatalf("failed to create service: %v", err)
	}
	if err := svc.Start(ctx); err != nil {
		log.Fatalf("failed to start service: %v", err)
	}
	defer svc.Stop()
	fmt.Printf("  ✓ %d workers, cache of %d signatures\n", cfg.Service.Workers, cfg.Cache.Capacity)

	// Phase 2: Sign some events
	fmt.Println("\nPhase 2: Signing events...")
	priv, err := btcec.NewPrivateKey()
	if err != nil {
		log.Fatalf("failed to generate key: %v", err)
	}
	events := make([]*event.Event, 0, 120)
	for i := 0; i < cap(events); i++ {
		events = append(events, sign(priv, fmt.Sprintf("note #%d", i)))
	}
	fmt.Printf("  ✓ Signed %d events\n", len(events))
	fmt.Printf("  ✓ Author: %s\n", logger.Abbrev(events[0].PubKey))

	// Phase 3: An honest relay delivers all of them
	fmt.Println("\nPhase 3: Receiving events from an honest relay...")
	for i, ev := range events {
		if _, err := svc.ProcessEvent(ctx, honestRelay, ev); err != nil {
			log.Fatalf("event %d: %v", i, err)
		}
		if i == 59 {
			svc.RecalculateRatios()
		}
	}
	svc.RecalculateRatios()
	honest := svc.Source(honestRelay)
	fmt.Printf("  ✓ Validation ratio: %.2f\n", honest.ValidationRatio())
	fmt.Printf("  ✓ Target ratio now: %.2f\n", honest.TargetRatio())

	// Phase 4: Re-verify a batch; earlier results come from the cache
	fmt.Println("\nPhase 4: Verifying a batch on the worker pool...")
	reqs := make([]service.Request, 0, 10)
	for _, ev := range events[:10] {
		id, _ := hex.DecodeString(ev.ID)
		pub, _ := hex.DecodeString(ev.PubKey)
		sig, _ := hex.DecodeString(ev.Sig)
		reqs = append(reqs, service.Request{ID: ev.ID, PublicKey: pub, Message: id, Signature: sig})
	}
	cached := 0
	for _, res := range svc.VerifyAll(ctx, reqs) {
		if !res.Valid {
			log.Fatalf("❌ batch verification failed for %s", logger.Abbrev(res.ID))
		}
		if res.Cached {
			cached++
		}
	}
	fmt.Printf("  ✓ %d/%d signatures answered from cache\n", cached, len(reqs))

	// Phase 5: A relay forwards a forged event
	fmt.Println("\nPhase 5: Receiving a forged event...")
	forged := sign(priv, "send me your sats")
	forged.Sig = events[0].Sig
	outcome, err := svc.ProcessEvent(ctx, evilRelay, forged)
	if err != nil {
		log.Fatalf("unexpected fault: %v", err)
	}
	fmt.Printf("  ✓ Outcome: %s\n", outcome)

	select {
	case inv := <-reports:
		fmt.Printf("  ✓ Reported %s from %s\n", logger.Abbrev(inv.ID), inv.Source)
	case <-time.After(time.Second):
		log.Fatal("❌ invalid signature was not reported")
	}

	outcome, _ = svc.ProcessEvent(ctx, evilRelay, events[1])
	fmt.Printf("  ✓ Next event from the same relay: %s\n", outcome)

	// Summary
	st := svc.Stats()
	fmt.Println("\n=== Verification Summary ===")
	fmt.Printf("Verified:   %d (%d from cache)\n", st.Verified, st.CacheHits)
	fmt.Printf("Skipped:    %d\n", st.Skipped)
	fmt.Printf("Rejected:   %d\n", st.Rejected)
	fmt.Printf("Faults:     %d\n", st.Faults)
	fmt.Printf("Curve time: %s\n", st.VerifyTime)
	for _, src := range st.Sources {
		fmt.Printf("  %s validated=%d skipped=%d blacklisted=%v\n",
			src.URL, src.Validated, src.NonValidated, src.Blacklisted)
	}
}

func sign(priv *btcec.PrivateKey, content string) *event.Event {
	ev := &event.Event{
		PubKey:    hex.EncodeToString(btcschnorr.SerializePubKey(priv.PubKey())),
		CreatedAt: time.Now().Unix(),
		Kind:      1,
		Tags:      [][]string{{"t", "demo"}},
		Content:   content,
	}
	id := ev.Hash()
	ev.ID = hex.EncodeToString(id[:])

	sig, err := btcschnorr.Sign(priv, id[:])
	if err != nil {
		log.Fatalf("failed to sign: %v", err)
	}
	ev.Sig = hex.EncodeToString(sig.Serialize())
	return ev
}
