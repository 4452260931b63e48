package commands

import (
	"context"
	"strings"

	application "solon/contexts/registry-governance/admission-engine/application"
	"solon/contexts/registry-governance/admission-engine/domain/entities"
	domainerrors "solon/contexts/registry-governance/admission-engine/domain/errors"
)

// WithdrawCommand reclaims a participant's escrow after terminal resolution.
type WithdrawCommand struct {
	Participant    string
	Candidate      string
	IdempotencyKey string
}

// WithdrawResult reports the amount returned and how many deposit rows it
// covered.
type WithdrawResult struct {
	ApplicationID string `json:"application_id"`
	Amount        uint64 `json:"amount"`
	DepositCount  int    `json:"deposit_count"`
	Replayed      bool   `json:"-"`
}

// Withdraw returns every deposit the participant still holds across all
// rounds of a resolved application in one transfer. Deposits are refundable
// regardless of side; rows are flagged before the transfer and flipped back
// if it fails, so a deposit can never pay out twice.
func (uc AdmissionUseCase) Withdraw(ctx context.Context, cmd WithdrawCommand) (WithdrawResult, error) {
	logger := application.ResolveLogger(uc.Logger)

	participant, err := uc.normalizeAddress(cmd.Participant)
	if err != nil {
		return WithdrawResult{}, err
	}
	candidate, err := uc.normalizeAddress(cmd.Candidate)
	if err != nil {
		return WithdrawResult{}, err
	}
	if strings.TrimSpace(cmd.IdempotencyKey) == "" {
		return WithdrawResult{}, domainerrors.ErrIdempotencyKeyRequired
	}

	now := uc.now()
	requestHash := hashPayload(map[string]any{
		"operation":   "withdraw",
		"kind":        string(uc.Policy.Kind),
		"participant": participant,
		"candidate":   candidate,
	})
	var replayed WithdrawResult
	if found, err := uc.replayIdempotent(ctx, cmd.IdempotencyKey, requestHash, now, &replayed); err != nil {
		return WithdrawResult{}, err
	} else if found {
		replayed.Replayed = true
		return replayed, nil
	}

	unlock := uc.lockCandidate(candidate)
	defer unlock()

	app, err := uc.Applications.GetApplication(ctx, uc.Policy.Kind, candidate)
	if err != nil {
		return WithdrawResult{}, err
	}
	if !app.Terminal() {
		return WithdrawResult{}, domainerrors.ErrInvalidPhase
	}

	deposits, err := uc.Deposits.ListDepositsByParticipant(ctx, app.ApplicationID, participant)
	if err != nil {
		return WithdrawResult{}, err
	}
	var due []entities.VoteDeposit
	var total uint64
	for _, deposit := range deposits {
		if deposit.Withdrawn {
			continue
		}
		sum, ok := entities.AddAmount(total, deposit.Amount)
		if !ok {
			return WithdrawResult{}, domainerrors.ErrAmountOverflow
		}
		total = sum
		due = append(due, deposit)
	}
	if len(due) == 0 || total == 0 {
		return WithdrawResult{}, domainerrors.ErrNothingToWithdraw
	}

	// Flag rows first so a concurrent replay cannot count them again, then
	// pay out; a failed transfer flips the flags back under the lock.
	marked := make([]entities.VoteDeposit, 0, len(due))
	for _, deposit := range due {
		deposit.Withdrawn = true
		deposit.UpdatedAt = now
		if err := uc.Deposits.SaveDeposit(ctx, deposit); err != nil {
			uc.unmarkDeposits(ctx, marked)
			return WithdrawResult{}, err
		}
		marked = append(marked, deposit)
	}
	if err := uc.Asset.Transfer(ctx, participant, total); err != nil {
		logger.Error("admission withdrawal transfer failed",
			"event", "admission_withdraw_transfer_failed",
			"module", moduleName,
			"layer", "application",
			"candidate", candidate,
			"participant", participant,
			"amount", total,
			"error", err.Error(),
		)
		uc.unmarkDeposits(ctx, marked)
		return WithdrawResult{}, err
	}

	if err := uc.annotate(ctx, app, app.CurrentRound(), "withdrawn", participant, "escrow returned"); err != nil {
		return WithdrawResult{}, err
	}
	if err := uc.appendAdmissionEvent(ctx, EventTypeWithdrawn, app, now, map[string]any{
		"participant":   participant,
		"amount":        total,
		"deposit_count": len(due),
	}); err != nil {
		return WithdrawResult{}, err
	}

	result := WithdrawResult{
		ApplicationID: app.ApplicationID,
		Amount:        total,
		DepositCount:  len(due),
	}
	if err := uc.storeIdempotent(ctx, cmd.IdempotencyKey, "withdraw", requestHash, now, result); err != nil {
		return WithdrawResult{}, err
	}

	logger.Info("admission escrow withdrawn",
		"event", "admission_withdrawn",
		"module", moduleName,
		"layer", "application",
		"kind", string(uc.Policy.Kind),
		"candidate", candidate,
		"participant", participant,
		"amount", total,
		"deposit_count", len(due),
	)
	return result, nil
}

func (uc AdmissionUseCase) unmarkDeposits(ctx context.Context, deposits []entities.VoteDeposit) {
	logger := application.ResolveLogger(uc.Logger)
	for _, deposit := range deposits {
		deposit.Withdrawn = false
		if err := uc.Deposits.SaveDeposit(ctx, deposit); err != nil {
			logger.Error("admission withdrawal unmark failed",
				"event", "admission_withdraw_unmark_failed",
				"module", moduleName,
				"layer", "application",
				"application_id", deposit.ApplicationID,
				"participant", deposit.Participant,
				"round_index", deposit.RoundIndex,
				"error", err.Error(),
			)
		}
	}
}
