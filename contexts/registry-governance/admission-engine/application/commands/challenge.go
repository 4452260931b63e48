package commands

import (
	"context"
	"strings"
	"time"

	application "solon/contexts/registry-governance/admission-engine/application"
	"solon/contexts/registry-governance/admission-engine/domain/entities"
	domainerrors "solon/contexts/registry-governance/admission-engine/domain/errors"
)

// ChallengeCommand contests a provisional approval with escrowed stake.
type ChallengeCommand struct {
	Challenger     string
	Candidate      string
	Stake          uint64
	IdempotencyKey string
}

// ChallengeResult reports the challenge round opened by the stake.
type ChallengeResult struct {
	ApplicationID string    `json:"application_id"`
	RoundIndex    int       `json:"round_index"`
	Stake         uint64    `json:"stake"`
	Phase         string    `json:"phase"`
	PhaseDeadline time.Time `json:"phase_deadline"`
	Replayed      bool      `json:"-"`
}

// Challenge opens the next vote round against a candidate sitting in the
// challenge window or lame-duck phase. The stake must clear both the
// per-round minimum and the cumulative support requirement ratcheted up by
// every prior support win; it is escrowed as the challenger's oppose deposit
// in the new round.
func (uc AdmissionUseCase) Challenge(ctx context.Context, cmd ChallengeCommand) (ChallengeResult, error) {
	logger := application.ResolveLogger(uc.Logger)

	challenger, err := uc.normalizeAddress(cmd.Challenger)
	if err != nil {
		return ChallengeResult{}, err
	}
	candidate, err := uc.normalizeAddress(cmd.Candidate)
	if err != nil {
		return ChallengeResult{}, err
	}
	if cmd.Stake == 0 {
		return ChallengeResult{}, domainerrors.ErrInvalidInput
	}
	if strings.TrimSpace(cmd.IdempotencyKey) == "" {
		return ChallengeResult{}, domainerrors.ErrIdempotencyKeyRequired
	}

	now := uc.now()
	requestHash := hashPayload(map[string]any{
		"operation":  "challenge",
		"kind":       string(uc.Policy.Kind),
		"challenger": challenger,
		"candidate":  candidate,
		"stake":      cmd.Stake,
	})
	var replayed ChallengeResult
	if found, err := uc.replayIdempotent(ctx, cmd.IdempotencyKey, requestHash, now, &replayed); err != nil {
		return ChallengeResult{}, err
	} else if found {
		replayed.Replayed = true
		return replayed, nil
	}

	unlock := uc.lockCandidate(candidate)
	defer unlock()

	app, err := uc.Applications.GetApplication(ctx, uc.Policy.Kind, candidate)
	if err != nil {
		return ChallengeResult{}, err
	}
	if !app.Phase.Challengeable() {
		return ChallengeResult{}, domainerrors.ErrInvalidPhase
	}
	if cmd.Stake < uc.Policy.MinDeposit {
		return ChallengeResult{}, domainerrors.ErrBelowMinimumDeposit
	}
	if cmd.Stake < app.CumulativeSupportRequired {
		return ChallengeResult{}, domainerrors.ErrInsufficientStake
	}

	balance, err := uc.Asset.BalanceOf(ctx, challenger)
	if err != nil {
		return ChallengeResult{}, err
	}
	if balance < cmd.Stake {
		return ChallengeResult{}, domainerrors.ErrInsufficientBalance
	}
	if err := uc.Asset.TransferFrom(ctx, challenger, uc.Policy.EscrowAccount, cmd.Stake); err != nil {
		logger.Error("admission challenge stake transfer failed",
			"event", "admission_challenge_transfer_failed",
			"module", moduleName,
			"layer", "application",
			"candidate", candidate,
			"challenger", challenger,
			"error", err.Error(),
		)
		return ChallengeResult{}, err
	}

	deadline := now.Add(uc.Policy.ChallengeVotingPeriod)
	round := entities.VoteRound{
		ApplicationID:   app.ApplicationID,
		RoundIndex:      app.RoundCount,
		OpposeTotal:     cmd.Stake,
		StartedAt:       now,
		EndsAt:          deadline,
		Challenger:      challenger,
		ChallengerStake: cmd.Stake,
		UpdatedAt:       now,
	}
	if err := uc.Rounds.SaveRound(ctx, round); err != nil {
		return ChallengeResult{}, uc.refundOnFailure(ctx, challenger, cmd.Stake, err)
	}
	if err := uc.Deposits.SaveDeposit(ctx, entities.VoteDeposit{
		ApplicationID: app.ApplicationID,
		Participant:   challenger,
		RoundIndex:    round.RoundIndex,
		Side:          entities.SideOppose,
		Amount:        cmd.Stake,
		CreatedAt:     now,
		UpdatedAt:     now,
	}); err != nil {
		return ChallengeResult{}, uc.refundOnFailure(ctx, challenger, cmd.Stake, err)
	}

	app.RoundCount++
	app.Phase = entities.PhaseChallengeVoting
	app.PhaseDeadline = &deadline
	app.UpdatedAt = now
	if err := uc.Applications.UpdateApplication(ctx, app); err != nil {
		return ChallengeResult{}, uc.refundOnFailure(ctx, challenger, cmd.Stake, err)
	}

	if err := uc.annotate(ctx, app, round.RoundIndex, "challenged", challenger, "challenge round opened"); err != nil {
		return ChallengeResult{}, err
	}
	if err := uc.appendAdmissionEvent(ctx, EventTypeChallenged, app, now, map[string]any{
		"round_index": round.RoundIndex,
		"challenger":  challenger,
		"stake":       cmd.Stake,
	}); err != nil {
		return ChallengeResult{}, err
	}

	result := ChallengeResult{
		ApplicationID: app.ApplicationID,
		RoundIndex:    round.RoundIndex,
		Stake:         cmd.Stake,
		Phase:         string(app.Phase),
		PhaseDeadline: deadline,
	}
	if err := uc.storeIdempotent(ctx, cmd.IdempotencyKey, "challenge", requestHash, now, result); err != nil {
		return ChallengeResult{}, err
	}

	logger.Info("admission challenge accepted",
		"event", "admission_challenge_accepted",
		"module", moduleName,
		"layer", "application",
		"kind", string(uc.Policy.Kind),
		"candidate", candidate,
		"challenger", challenger,
		"round_index", round.RoundIndex,
		"stake", cmd.Stake,
	)
	return result, nil
}
