package workers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	application "solon/contexts/registry-governance/admission-engine/application"
	"solon/contexts/registry-governance/admission-engine/application/commands"
	"solon/contexts/registry-governance/admission-engine/domain/entities"
	domainerrors "solon/contexts/registry-governance/admission-engine/domain/errors"
	"solon/contexts/registry-governance/admission-engine/ports"
)

// PhaseAdvancer sweeps applications whose phase deadline passed and drives
// the permissionless transition each one is ripe for: round finalization,
// lame-duck entry, or downstream registration. Every transition is also
// callable over the API; the sweeper just guarantees progress without an
// external caller.
type PhaseAdvancer struct {
	Engine       commands.AdmissionUseCase
	Applications ports.ApplicationRepository
	Clock        ports.Clock
	BatchSize    int
	Logger       *slog.Logger
}

func (w PhaseAdvancer) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(w.Logger)
	now := time.Now().UTC()
	if w.Clock != nil {
		now = w.Clock.Now().UTC()
	}

	limit := w.BatchSize
	if limit <= 0 {
		limit = 50
	}

	ripe, err := w.Applications.ListRipeApplications(ctx, w.Engine.Policy.Kind, now, limit)
	if err != nil {
		logger.Error("admission phase sweep failed",
			"event", "admission_phase_sweep_failed",
			"module", "registry-governance/admission-engine",
			"layer", "worker",
			"kind", string(w.Engine.Policy.Kind),
			"error", err.Error(),
		)
		return err
	}

	advanced := 0
	for _, app := range ripe {
		var err error
		switch app.Phase {
		case entities.PhaseInitialVoting, entities.PhaseChallengeVoting:
			_, err = w.Engine.FinalizeRound(ctx, commands.FinalizeRoundCommand{Candidate: app.Candidate})
		case entities.PhaseChallengeWindow:
			_, err = w.Engine.EnterLameDuck(ctx, commands.EnterLameDuckCommand{Candidate: app.Candidate})
		case entities.PhaseLameDuck:
			_, err = w.Engine.Register(ctx, commands.RegisterCommand{Candidate: app.Candidate})
		default:
			continue
		}
		switch {
		case err == nil:
			advanced++
		case errors.Is(err, domainerrors.ErrQuorumNotMet):
			// A ripe round below quorum stays where it is; nothing can move
			// it, so the sweeper only notes it.
			logger.Warn("admission application stalled below quorum",
				"event", "admission_phase_sweep_quorum_stalled",
				"module", "registry-governance/admission-engine",
				"layer", "worker",
				"kind", string(app.Kind),
				"candidate", app.Candidate,
				"round_index", app.CurrentRound(),
			)
		default:
			// Transitions race with API callers; losing the race is fine and
			// the remaining candidates still get their sweep.
			logger.Warn("admission phase advance failed",
				"event", "admission_phase_advance_failed",
				"module", "registry-governance/admission-engine",
				"layer", "worker",
				"kind", string(app.Kind),
				"candidate", app.Candidate,
				"phase", string(app.Phase),
				"error", err.Error(),
			)
		}
	}

	if advanced > 0 {
		logger.Info("admission phase sweep completed",
			"event", "admission_phase_sweep_completed",
			"module", "registry-governance/admission-engine",
			"layer", "worker",
			"kind", string(w.Engine.Policy.Kind),
			"advanced_count", advanced,
		)
	}
	return nil
}
