package main

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Caqil/schnorr-verify/pkg/cache"
	"github.com/Caqil/schnorr-verify/pkg/event"
	"github.com/Caqil/schnorr-verify/pkg/logger"
	"github.com/Caqil/schnorr-verify/pkg/service"
	"github.com/urfave/cli/v3"
)

const maxEventSize = 4 << 20

func (a *app) eventCommand() *cli.Command {
	return &cli.Command{
		Name:  "event",
		Usage: "Check the id and signature of Nostr events, one JSON object per line",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "file",
				Usage: "File with events (default: stdin)",
			},
			&cli.StringFlag{
				Name:  "source",
				Usage: "Source name used for sampling and reports",
				Value: "cli",
			},
		},
		Action: a.runEvent,
	}
}

func (a *app) runEvent(ctx context.Context, cmd *cli.Command) error {
	cfg, log, err := a.setup(ctx, cmd)
	if err != nil {
		return err
	}

	in := a.in
	if path := cmd.String("file"); path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open events: %w", err)
		}
		defer f.Close()
		in = f
	}

	svc, err := service.New(cfg.Service,
		service.WithLogger(log),
		service.WithCache(cache.New(cfg.Cache.Capacity)),
	)
	if err != nil {
		return err
	}
	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer svc.Stop()

	source := cmd.String("source")
	failed, err := a.processEvents(ctx, svc, source, in)
	if err != nil {
		return err
	}

	svc.LogStats()
	if failed > 0 {
		return errNotVerified
	}
	return nil
}

// processEvents checks every event read from in and returns how many did
// not verify
func (a *app) processEvents(ctx context.Context, svc *service.Service, source string, in io.Reader) (int, error) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxEventSize)

	failed, line := 0, 0
	for scanner.Scan() {
		line++
		data := bytes.TrimSpace(scanner.Bytes())
		if len(data) == 0 {
			continue
		}

		ev, err := event.Parse(data)
		if err != nil {
			fmt.Fprintf(a.out, "line %d: %v\n", line, err)
			failed++
			continue
		}

		outcome, err := svc.ProcessEvent(ctx, source, ev)
		switch outcome {
		case service.OutcomeVerified, service.OutcomeSkipped:
			fmt.Fprintf(a.out, "%s %s\n", logger.Abbrev(ev.ID), outcome)
		case service.OutcomeFault:
			fmt.Fprintf(a.out, "%s %s: %v\n", logger.Abbrev(ev.ID), outcome, err)
			failed++
		default:
			fmt.Fprintf(a.out, "%s %s\n", logger.Abbrev(ev.ID), outcome)
			failed++
		}
	}
	if err := scanner.Err(); err != nil {
		return failed, fmt.Errorf("failed to read events: %w", err)
	}
	return failed, nil
}
