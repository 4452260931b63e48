package commands

import (
	"context"
	"time"

	application "solon/contexts/registry-governance/admission-engine/application"
	"solon/contexts/registry-governance/admission-engine/domain/entities"
	domainerrors "solon/contexts/registry-governance/admission-engine/domain/errors"
)

// FinalizeRoundCommand closes the current round once its deadline passed.
// The operation is permissionless; Caller is kept for audit attribution only.
type FinalizeRoundCommand struct {
	Candidate string
	Caller    string
}

// FinalizeRoundResult reports the resolved round and the phase it produced.
type FinalizeRoundResult struct {
	ApplicationID string     `json:"application_id"`
	RoundIndex    int        `json:"round_index"`
	SupportTotal  uint64     `json:"support_total"`
	OpposeTotal   uint64     `json:"oppose_total"`
	SupportWon    bool       `json:"support_won"`
	Phase         string     `json:"phase"`
	PhaseDeadline *time.Time `json:"phase_deadline,omitempty"`
}

// FinalizeRound resolves the current round by strict majority: support must
// exceed oppose, ties resolve to oppose. Turnout below the quorum floor is
// rejected. A support win opens the challenge window and ratchets the
// cumulative support requirement up by the round's support total; an oppose
// win rejects the application for good.
func (uc AdmissionUseCase) FinalizeRound(ctx context.Context, cmd FinalizeRoundCommand) (FinalizeRoundResult, error) {
	logger := application.ResolveLogger(uc.Logger)

	candidate, err := uc.normalizeAddress(cmd.Candidate)
	if err != nil {
		return FinalizeRoundResult{}, err
	}
	caller := uc.optionalActor(cmd.Caller)

	unlock := uc.lockCandidate(candidate)
	defer unlock()

	now := uc.now()
	app, err := uc.Applications.GetApplication(ctx, uc.Policy.Kind, candidate)
	if err != nil {
		return FinalizeRoundResult{}, err
	}
	if !app.Phase.Voting() {
		return FinalizeRoundResult{}, domainerrors.ErrInvalidPhase
	}
	round, err := uc.Rounds.GetRound(ctx, app.ApplicationID, app.CurrentRound())
	if err != nil {
		return FinalizeRoundResult{}, err
	}
	if round.Resolved {
		return FinalizeRoundResult{}, domainerrors.ErrRoundResolved
	}
	if !now.After(round.EndsAt.UTC()) {
		return FinalizeRoundResult{}, domainerrors.ErrDeadlineNotReached
	}
	turnout, ok := round.Turnout()
	if !ok {
		return FinalizeRoundResult{}, domainerrors.ErrAmountOverflow
	}
	if turnout < uc.Policy.QuorumFloor {
		return FinalizeRoundResult{}, domainerrors.ErrQuorumNotMet
	}

	supportWon := round.SupportLeads()
	if supportWon {
		raised, ok := entities.AddAmount(app.CumulativeSupportRequired, round.SupportTotal)
		if !ok {
			return FinalizeRoundResult{}, domainerrors.ErrAmountOverflow
		}
		deadline := now.Add(uc.Policy.ChallengeWindowPeriod)
		app.CumulativeSupportRequired = raised
		app.Phase = entities.PhaseChallengeWindow
		app.PhaseDeadline = &deadline
	} else {
		app.Phase = entities.PhaseRejected
		app.PhaseDeadline = nil
		app.ResolvedAt = &now
	}
	app.UpdatedAt = now
	if err := uc.Applications.UpdateApplication(ctx, app); err != nil {
		return FinalizeRoundResult{}, err
	}

	round.Resolved = true
	round.SupportWon = supportWon
	round.UpdatedAt = now
	if err := uc.Rounds.SaveRound(ctx, round); err != nil {
		return FinalizeRoundResult{}, err
	}

	outcome := "oppose_won"
	if supportWon {
		outcome = "support_won"
	}
	if err := uc.annotate(ctx, app, round.RoundIndex, "round_finalized", caller, outcome); err != nil {
		return FinalizeRoundResult{}, err
	}
	if err := uc.appendAdmissionEvent(ctx, EventTypeRoundFinalized, app, now, map[string]any{
		"round_index":   round.RoundIndex,
		"support_total": round.SupportTotal,
		"oppose_total":  round.OpposeTotal,
		"support_won":   supportWon,
		"phase":         string(app.Phase),
	}); err != nil {
		return FinalizeRoundResult{}, err
	}

	logger.Info("admission round finalized",
		"event", "admission_round_finalized",
		"module", moduleName,
		"layer", "application",
		"kind", string(uc.Policy.Kind),
		"candidate", candidate,
		"round_index", round.RoundIndex,
		"support_won", supportWon,
		"phase", string(app.Phase),
	)
	return FinalizeRoundResult{
		ApplicationID: app.ApplicationID,
		RoundIndex:    round.RoundIndex,
		SupportTotal:  round.SupportTotal,
		OpposeTotal:   round.OpposeTotal,
		SupportWon:    supportWon,
		Phase:         string(app.Phase),
		PhaseDeadline: app.PhaseDeadline,
	}, nil
}

// optionalActor normalizes audit attribution for permissionless operations;
// callers that do not identify themselves are recorded as empty.
func (uc AdmissionUseCase) optionalActor(raw string) string {
	if uc.Addresses == nil {
		return ""
	}
	normalized, ok := uc.Addresses.Normalize(raw)
	if !ok {
		return ""
	}
	return normalized
}
