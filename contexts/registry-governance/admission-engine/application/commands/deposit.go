package commands

import (
	"context"
	"strings"

	application "solon/contexts/registry-governance/admission-engine/application"
	"solon/contexts/registry-governance/admission-engine/domain/entities"
	domainerrors "solon/contexts/registry-governance/admission-engine/domain/errors"
)

// PlaceDepositCommand escrows stake on one side of the current round.
type PlaceDepositCommand struct {
	Participant    string
	Candidate      string
	Side           entities.Side
	Amount         uint64
	IdempotencyKey string
}

// PlaceDepositResult returns the participant's accumulated position and the
// round totals after the deposit landed.
type PlaceDepositResult struct {
	ApplicationID string `json:"application_id"`
	RoundIndex    int    `json:"round_index"`
	Side          string `json:"side"`
	Placed        uint64 `json:"placed"`
	Total         uint64 `json:"total"`
	SupportTotal  uint64 `json:"support_total"`
	OpposeTotal   uint64 `json:"oppose_total"`
	Replayed      bool   `json:"-"`
}

// PlaceDeposit escrows Amount on the given side of the candidate's current
// round. Deposits accumulate per participant within a round; the side chosen
// by the first deposit is locked for that round. Every call must clear the
// per-round minimum and land before the round deadline.
func (uc AdmissionUseCase) PlaceDeposit(ctx context.Context, cmd PlaceDepositCommand) (PlaceDepositResult, error) {
	logger := application.ResolveLogger(uc.Logger)

	participant, err := uc.normalizeAddress(cmd.Participant)
	if err != nil {
		return PlaceDepositResult{}, err
	}
	candidate, err := uc.normalizeAddress(cmd.Candidate)
	if err != nil {
		return PlaceDepositResult{}, err
	}
	side, ok := entities.ParseSide(string(cmd.Side))
	if !ok || cmd.Amount == 0 {
		return PlaceDepositResult{}, domainerrors.ErrInvalidInput
	}
	if cmd.Amount < uc.Policy.MinDeposit {
		return PlaceDepositResult{}, domainerrors.ErrBelowMinimumDeposit
	}
	if strings.TrimSpace(cmd.IdempotencyKey) == "" {
		return PlaceDepositResult{}, domainerrors.ErrIdempotencyKeyRequired
	}

	now := uc.now()
	requestHash := hashPayload(map[string]any{
		"operation":   "deposit",
		"kind":        string(uc.Policy.Kind),
		"participant": participant,
		"candidate":   candidate,
		"side":        string(side),
		"amount":      cmd.Amount,
	})
	var replayed PlaceDepositResult
	if found, err := uc.replayIdempotent(ctx, cmd.IdempotencyKey, requestHash, now, &replayed); err != nil {
		return PlaceDepositResult{}, err
	} else if found {
		replayed.Replayed = true
		return replayed, nil
	}

	unlock := uc.lockCandidate(candidate)
	defer unlock()

	app, err := uc.Applications.GetApplication(ctx, uc.Policy.Kind, candidate)
	if err != nil {
		return PlaceDepositResult{}, err
	}
	if !app.Phase.Voting() {
		return PlaceDepositResult{}, domainerrors.ErrInvalidPhase
	}
	round, err := uc.Rounds.GetRound(ctx, app.ApplicationID, app.CurrentRound())
	if err != nil {
		return PlaceDepositResult{}, err
	}
	if !round.AcceptsDeposits(now) {
		return PlaceDepositResult{}, domainerrors.ErrRoundClosed
	}

	deposit, found, err := uc.Deposits.GetDeposit(ctx, app.ApplicationID, round.RoundIndex, participant)
	if err != nil {
		return PlaceDepositResult{}, err
	}
	if found && deposit.Side != side {
		return PlaceDepositResult{}, domainerrors.ErrSideLocked
	}
	if !found {
		deposit = entities.VoteDeposit{
			ApplicationID: app.ApplicationID,
			Participant:   participant,
			RoundIndex:    round.RoundIndex,
			Side:          side,
			CreatedAt:     now,
		}
	}
	accumulated, ok := entities.AddAmount(deposit.Amount, cmd.Amount)
	if !ok {
		return PlaceDepositResult{}, domainerrors.ErrAmountOverflow
	}

	sideTotal := round.SupportTotal
	if side == entities.SideOppose {
		sideTotal = round.OpposeTotal
	}
	newSideTotal, ok := entities.AddAmount(sideTotal, cmd.Amount)
	if !ok {
		return PlaceDepositResult{}, domainerrors.ErrAmountOverflow
	}

	balance, err := uc.Asset.BalanceOf(ctx, participant)
	if err != nil {
		return PlaceDepositResult{}, err
	}
	if balance < cmd.Amount {
		return PlaceDepositResult{}, domainerrors.ErrInsufficientBalance
	}
	if err := uc.Asset.TransferFrom(ctx, participant, uc.Policy.EscrowAccount, cmd.Amount); err != nil {
		logger.Error("admission deposit transfer failed",
			"event", "admission_deposit_transfer_failed",
			"module", moduleName,
			"layer", "application",
			"candidate", candidate,
			"participant", participant,
			"error", err.Error(),
		)
		return PlaceDepositResult{}, err
	}

	deposit.Amount = accumulated
	deposit.UpdatedAt = now
	if err := uc.Deposits.SaveDeposit(ctx, deposit); err != nil {
		return PlaceDepositResult{}, uc.refundOnFailure(ctx, participant, cmd.Amount, err)
	}
	if side == entities.SideSupport {
		round.SupportTotal = newSideTotal
	} else {
		round.OpposeTotal = newSideTotal
	}
	round.UpdatedAt = now
	if err := uc.Rounds.SaveRound(ctx, round); err != nil {
		return PlaceDepositResult{}, uc.refundOnFailure(ctx, participant, cmd.Amount, err)
	}

	if err := uc.annotate(ctx, app, round.RoundIndex, "deposit_placed", participant, string(side)); err != nil {
		return PlaceDepositResult{}, err
	}
	if err := uc.appendAdmissionEvent(ctx, EventTypeDepositPlaced, app, now, map[string]any{
		"round_index":   round.RoundIndex,
		"participant":   participant,
		"side":          string(side),
		"placed":        cmd.Amount,
		"support_total": round.SupportTotal,
		"oppose_total":  round.OpposeTotal,
	}); err != nil {
		return PlaceDepositResult{}, err
	}

	result := PlaceDepositResult{
		ApplicationID: app.ApplicationID,
		RoundIndex:    round.RoundIndex,
		Side:          string(side),
		Placed:        cmd.Amount,
		Total:         accumulated,
		SupportTotal:  round.SupportTotal,
		OpposeTotal:   round.OpposeTotal,
	}
	if err := uc.storeIdempotent(ctx, cmd.IdempotencyKey, "deposit", requestHash, now, result); err != nil {
		return PlaceDepositResult{}, err
	}

	logger.Info("admission deposit placed",
		"event", "admission_deposit_placed",
		"module", moduleName,
		"layer", "application",
		"kind", string(uc.Policy.Kind),
		"candidate", candidate,
		"participant", participant,
		"round_index", round.RoundIndex,
		"side", string(side),
		"amount", cmd.Amount,
	)
	return result, nil
}
