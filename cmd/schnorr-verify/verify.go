package main

import (
	"context"
	"fmt"

	"github.com/Caqil/schnorr-verify/pkg/bridge"
	"github.com/Caqil/schnorr-verify/pkg/schnorr"
	"github.com/urfave/cli/v3"
)

func (a *app) verifyCommand() *cli.Command {
	return &cli.Command{
		Name:  "verify",
		Usage: "Verify a signature given as hex",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "pubkey",
				Usage:    "x-only public key (32 bytes hex)",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "msg",
				Usage:    "Message (hex, any length)",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "sig",
				Usage:    "Signature (64 bytes hex)",
				Required: true,
			},
		},
		Action: a.runVerify,
	}
}

func (a *app) runVerify(ctx context.Context, cmd *cli.Command) error {
	_, log, err := a.setup(ctx, cmd)
	if err != nil {
		return err
	}

	reg := bridge.NewRegistry()
	if err := bridge.NewModule(bridge.WithLogger(log)).Install(reg); err != nil {
		return fmt.Errorf("failed to install verifier: %w", err)
	}

	ok, err := reg.Call(bridge.VerifyFunctionName, cmd.String("sig"), cmd.String("msg"), cmd.String("pubkey"))
	if err != nil {
		return fmt.Errorf("verification fault (%s): %w", schnorr.KindOf(err), err)
	}

	if !ok {
		fmt.Fprintln(a.out, "invalid")
		return errNotVerified
	}
	fmt.Fprintln(a.out, "valid")
	return nil
}
