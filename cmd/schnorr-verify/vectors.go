package main

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/Caqil/schnorr-verify/pkg/schnorr"
	"github.com/urfave/cli/v3"
)

func (a *app) vectorsCommand() *cli.Command {
	return &cli.Command{
		Name:   "vectors",
		Usage:  "Run the BIP-340 reference test vectors",
		Action: a.runVectors,
	}
}

func (a *app) runVectors(_ context.Context, _ *cli.Command) error {
	failures := 0
	for _, v := range schnorr.TestVectors {
		if err := checkVector(v); err != nil {
			fmt.Fprintf(a.out, "  ✗ vector %2d: %v\n", v.Index, err)
			failures++
			continue
		}
		fmt.Fprintf(a.out, "  ✓ vector %2d\n", v.Index)
	}

	fmt.Fprintf(a.out, "%d/%d vectors passed\n", len(schnorr.TestVectors)-failures, len(schnorr.TestVectors))
	if failures > 0 {
		return errNotVerified
	}
	return nil
}

func checkVector(v schnorr.TestVector) error {
	pub, err := hex.DecodeString(v.PublicKey)
	if err != nil {
		return err
	}
	msg, err := hex.DecodeString(v.Message)
	if err != nil {
		return err
	}
	sig, err := hex.DecodeString(v.Signature)
	if err != nil {
		return err
	}

	ok, err := schnorr.Verify(pub, msg, sig)
	if kind := schnorr.KindOf(err); kind != v.Fault {
		return fmt.Errorf("fault %s, want %s", kind, v.Fault)
	}
	if ok != v.Valid {
		return fmt.Errorf("result %v, want %v", ok, v.Valid)
	}
	return nil
}
