package main

import (
	"context"
	"errors"
	"io"

	"github.com/Caqil/schnorr-verify/pkg/config"
	"github.com/Caqil/schnorr-verify/pkg/logger"
	"github.com/urfave/cli/v3"
)

// errNotVerified is returned by commands whose input did not verify; main
// turns it into exit status 1 without printing it again
var errNotVerified = errors.New("not verified")

type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

func newApp(in io.Reader, out, errOut io.Writer) *cli.Command {
	a := &app{in: in, out: out, errOut: errOut}

	return &cli.Command{
		Name:      "schnorr-verify",
		Usage:     "Verify BIP-340 Schnorr signatures and Nostr events",
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "Path to a YAML configuration file",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Human-readable log output",
			},
		},
		Commands: []*cli.Command{
			a.verifyCommand(),
			a.eventCommand(),
			a.vectorsCommand(),
		},
	}
}

// setup loads the configuration and applies flag overrides
func (a *app) setup(_ context.Context, cmd *cli.Command) (*config.Config, *logger.Logger, error) {
	cfg := config.Default()
	if path := cmd.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, nil, err
		}
		cfg = loaded
	}

	if level := cmd.String("log-level"); level != "" {
		cfg.Log.Level = level
	}
	if cmd.Bool("pretty") {
		cfg.Log.Pretty = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	lc := cfg.LoggerConfig()
	lc.Output = a.errOut
	return cfg, logger.New(lc), nil
}
