package queries

import (
	"context"

	"solon/contexts/registry-governance/admission-engine/domain/entities"
	domainerrors "solon/contexts/registry-governance/admission-engine/domain/errors"
	"solon/contexts/registry-governance/admission-engine/ports"
)

// StatusUseCase serves the read side of one admission track.
type StatusUseCase struct {
	Kind         entities.Kind
	Applications ports.ApplicationRepository
	Rounds       ports.RoundRepository
	Deposits     ports.DepositLedger
	Annotations  ports.AnnotationLog
	Addresses    ports.AddressCodec
}

// ApplicationStatus joins the admission record with its current round.
type ApplicationStatus struct {
	Application  entities.Application
	CurrentRound entities.VoteRound
}

// WithdrawableSummary lists what a participant can still reclaim.
type WithdrawableSummary struct {
	ApplicationID string
	Participant   string
	Total         uint64
	Deposits      []entities.VoteDeposit
	Withdrawable  bool
}

func (uc StatusUseCase) normalize(raw string) (string, error) {
	if uc.Addresses == nil {
		return "", domainerrors.ErrInvalidAddress
	}
	normalized, ok := uc.Addresses.Normalize(raw)
	if !ok {
		return "", domainerrors.ErrInvalidAddress
	}
	return normalized, nil
}

func (uc StatusUseCase) Application(ctx context.Context, candidate string) (ApplicationStatus, error) {
	normalized, err := uc.normalize(candidate)
	if err != nil {
		return ApplicationStatus{}, err
	}
	app, err := uc.Applications.GetApplication(ctx, uc.Kind, normalized)
	if err != nil {
		return ApplicationStatus{}, err
	}
	round, err := uc.Rounds.GetRound(ctx, app.ApplicationID, app.CurrentRound())
	if err != nil {
		return ApplicationStatus{}, err
	}
	return ApplicationStatus{Application: app, CurrentRound: round}, nil
}

func (uc StatusUseCase) Round(ctx context.Context, candidate string, roundIndex int) (entities.VoteRound, error) {
	normalized, err := uc.normalize(candidate)
	if err != nil {
		return entities.VoteRound{}, err
	}
	app, err := uc.Applications.GetApplication(ctx, uc.Kind, normalized)
	if err != nil {
		return entities.VoteRound{}, err
	}
	if roundIndex < 0 || roundIndex >= app.RoundCount {
		return entities.VoteRound{}, domainerrors.ErrRoundNotFound
	}
	return uc.Rounds.GetRound(ctx, app.ApplicationID, roundIndex)
}

func (uc StatusUseCase) Deposit(ctx context.Context, candidate string, roundIndex int, participant string) (entities.VoteDeposit, error) {
	normalizedCandidate, err := uc.normalize(candidate)
	if err != nil {
		return entities.VoteDeposit{}, err
	}
	normalizedParticipant, err := uc.normalize(participant)
	if err != nil {
		return entities.VoteDeposit{}, err
	}
	app, err := uc.Applications.GetApplication(ctx, uc.Kind, normalizedCandidate)
	if err != nil {
		return entities.VoteDeposit{}, err
	}
	deposit, found, err := uc.Deposits.GetDeposit(ctx, app.ApplicationID, roundIndex, normalizedParticipant)
	if err != nil {
		return entities.VoteDeposit{}, err
	}
	if !found {
		return entities.VoteDeposit{}, domainerrors.ErrDepositNotFound
	}
	return deposit, nil
}

// Withdrawable sums the participant's unwithdrawn escrow across all rounds.
// The summary is reported for non-terminal applications too, flagged as not
// yet withdrawable.
func (uc StatusUseCase) Withdrawable(ctx context.Context, candidate string, participant string) (WithdrawableSummary, error) {
	normalizedCandidate, err := uc.normalize(candidate)
	if err != nil {
		return WithdrawableSummary{}, err
	}
	normalizedParticipant, err := uc.normalize(participant)
	if err != nil {
		return WithdrawableSummary{}, err
	}
	app, err := uc.Applications.GetApplication(ctx, uc.Kind, normalizedCandidate)
	if err != nil {
		return WithdrawableSummary{}, err
	}
	deposits, err := uc.Deposits.ListDepositsByParticipant(ctx, app.ApplicationID, normalizedParticipant)
	if err != nil {
		return WithdrawableSummary{}, err
	}
	summary := WithdrawableSummary{
		ApplicationID: app.ApplicationID,
		Participant:   normalizedParticipant,
		Withdrawable:  app.Terminal(),
	}
	for _, deposit := range deposits {
		if deposit.Withdrawn {
			continue
		}
		total, ok := entities.AddAmount(summary.Total, deposit.Amount)
		if !ok {
			return WithdrawableSummary{}, domainerrors.ErrAmountOverflow
		}
		summary.Total = total
		summary.Deposits = append(summary.Deposits, deposit)
	}
	return summary, nil
}

func (uc StatusUseCase) ListAnnotations(ctx context.Context, candidate string, afterSeq uint64, limit int) ([]entities.Annotation, error) {
	normalized, err := uc.normalize(candidate)
	if err != nil {
		return nil, err
	}
	app, err := uc.Applications.GetApplication(ctx, uc.Kind, normalized)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return uc.Annotations.ListAnnotations(ctx, app.ApplicationID, afterSeq, limit)
}
