package service

import (
	"context"
	"fmt"

	"github.com/Caqil/schnorr-verify/pkg/bridge"
	"github.com/Caqil/schnorr-verify/pkg/event"
)

// Outcome is what ProcessEvent did with an event
type Outcome int

const (
	// OutcomeVerified means the signature was checked, or found in the cache, and is valid
	OutcomeVerified Outcome = iota
	// OutcomeSkipped means sampling decided not to verify the event
	OutcomeSkipped
	// OutcomeRejected means the signature is invalid
	OutcomeRejected
	// OutcomeFault means the event id is wrong or the inputs could not be verified
	OutcomeFault
	// OutcomeBlacklisted means the source is blacklisted and the event was dropped
	OutcomeBlacklisted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeVerified:
		return "verified"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeRejected:
		return "rejected"
	case OutcomeFault:
		return "fault"
	case OutcomeBlacklisted:
		return "blacklisted"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// ProcessEvent handles an event received from source. The id is always
// checked and the signature is verified when sampling selects it, on the
// worker pool once the service is started. An invalid signature is
// reported. The returned error is non-nil only for OutcomeFault.
func (s *Service) ProcessEvent(ctx context.Context, source string, ev *event.Event) (Outcome, error) {
	if ev == nil {
		return OutcomeFault, ErrNilEvent
	}

	src := s.Source(source)
	if src.Blacklisted() {
		return OutcomeBlacklisted, nil
	}

	if err := ev.CheckID(); err != nil {
		s.faults.Add(1)
		s.log.Debug().Str("source", source).Err(err).Msg("event id mismatch")
		return OutcomeFault, err
	}

	if !s.ShouldVerify(source) {
		src.addNonValidated()
		s.skipped.Add(1)
		return OutcomeSkipped, nil
	}

	req, err := eventRequest(source, ev)
	if err != nil {
		s.faults.Add(1)
		return OutcomeFault, err
	}

	res := s.check(ctx, req)
	switch {
	case res.Err != nil:
		return OutcomeFault, res.Err
	case res.Valid:
		src.addValidated()
		return OutcomeVerified, nil
	default:
		s.reportInvalid(InvalidSignature{
			Source:    source,
			ID:        ev.ID,
			PublicKey: req.PublicKey,
			Event:     ev,
		})
		return OutcomeRejected, nil
	}
}

func eventRequest(source string, ev *event.Event) (Request, error) {
	id, err := bridge.DecodeHex(bridge.ArgMessage, ev.ID)
	if err != nil {
		return Request{}, err
	}
	pub, err := bridge.DecodeHex(bridge.ArgPublicKey, ev.PubKey)
	if err != nil {
		return Request{}, err
	}
	sig, err := bridge.DecodeHex(bridge.ArgSignature, ev.Sig)
	if err != nil {
		return Request{}, err
	}
	return Request{
		ID:        ev.ID,
		Source:    source,
		PublicKey: pub,
		Message:   id,
		Signature: sig,
	}, nil
}
