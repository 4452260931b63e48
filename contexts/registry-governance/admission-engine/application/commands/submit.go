package commands

import (
	"context"
	"errors"
	"strings"
	"time"

	application "solon/contexts/registry-governance/admission-engine/application"
	"solon/contexts/registry-governance/admission-engine/domain/entities"
	domainerrors "solon/contexts/registry-governance/admission-engine/domain/errors"
)

// SubmitApplicationCommand proposes a candidate address for admission.
// FeeOffered mirrors the payment attached by the caller; only the policy fee
// is actually pulled, the overage never moves. An empty Applicant credits the
// caller; naming a different applicant is reserved for the configured
// registry contract submitting on a third party's behalf.
type SubmitApplicationCommand struct {
	Caller         string
	Applicant      string
	Candidate      string
	TypeTag        string
	Title          string
	DisplayTitle   string
	MetadataURI    string
	CapabilityTags []string
	FeeOffered     uint64
	IdempotencyKey string
}

// SubmitApplicationResult returns the opened application and its first round.
type SubmitApplicationResult struct {
	ApplicationID string    `json:"application_id"`
	Kind          string    `json:"kind"`
	Candidate     string    `json:"candidate"`
	Phase         string    `json:"phase"`
	RoundIndex    int       `json:"round_index"`
	PhaseDeadline time.Time `json:"phase_deadline"`
	FeeCharged    uint64    `json:"fee_charged"`
	Replayed      bool      `json:"-"`
}

// SubmitApplication opens a fresh application for a candidate. A candidate
// already under consideration is rejected; a terminal record is replaced only
// once every deposit escrowed under it has been withdrawn. The submission fee
// is charged up front and never refunded.
func (uc AdmissionUseCase) SubmitApplication(ctx context.Context, cmd SubmitApplicationCommand) (SubmitApplicationResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	logger.Info("admission submit started",
		"event", "admission_submit_started",
		"module", moduleName,
		"layer", "application",
		"kind", string(uc.Policy.Kind),
		"candidate", strings.TrimSpace(cmd.Candidate),
		"caller", strings.TrimSpace(cmd.Caller),
	)

	caller, err := uc.normalizeAddress(cmd.Caller)
	if err != nil {
		return SubmitApplicationResult{}, err
	}
	applicant := caller
	if strings.TrimSpace(cmd.Applicant) != "" {
		applicant, err = uc.normalizeAddress(cmd.Applicant)
		if err != nil {
			return SubmitApplicationResult{}, err
		}
	}
	candidate, err := uc.normalizeAddress(cmd.Candidate)
	if err != nil {
		return SubmitApplicationResult{}, err
	}
	if applicant != caller {
		settings, err := uc.Settings.GetSettings(ctx, uc.Policy.Kind)
		if err != nil && !errors.Is(err, domainerrors.ErrSettingsNotFound) {
			return SubmitApplicationResult{}, err
		}
		if settings.RegistryAddress == "" || caller != settings.RegistryAddress {
			logger.Warn("admission submit on behalf rejected",
				"event", "admission_submit_on_behalf_rejected",
				"module", moduleName,
				"layer", "application",
				"caller", caller,
				"applicant", applicant,
			)
			return SubmitApplicationResult{}, domainerrors.ErrNotRegistrySubmitter
		}
	}
	typeTag := strings.TrimSpace(cmd.TypeTag)
	title := strings.TrimSpace(cmd.Title)
	if typeTag == "" || title == "" {
		logger.Warn("admission submit validation failed",
			"event", "admission_submit_validation_failed",
			"module", moduleName,
			"layer", "application",
			"candidate", candidate,
		)
		return SubmitApplicationResult{}, domainerrors.ErrInvalidInput
	}
	displayTitle := strings.TrimSpace(cmd.DisplayTitle)
	if displayTitle == "" {
		displayTitle = title
	}
	if strings.TrimSpace(cmd.IdempotencyKey) == "" {
		return SubmitApplicationResult{}, domainerrors.ErrIdempotencyKeyRequired
	}
	if cmd.FeeOffered < uc.Policy.SubmissionFee {
		return SubmitApplicationResult{}, domainerrors.ErrInsufficientFee
	}

	now := uc.now()
	requestHash := hashPayload(map[string]any{
		"operation": "submit",
		"kind":      string(uc.Policy.Kind),
		"caller":    caller,
		"applicant": applicant,
		"candidate": candidate,
		"type_tag":  typeTag,
		"title":     title,
	})
	var replayed SubmitApplicationResult
	if found, err := uc.replayIdempotent(ctx, cmd.IdempotencyKey, requestHash, now, &replayed); err != nil {
		return SubmitApplicationResult{}, err
	} else if found {
		replayed.Replayed = true
		return replayed, nil
	}

	unlock := uc.lockCandidate(candidate)
	defer unlock()

	replacesID := ""
	existing, err := uc.Applications.GetApplication(ctx, uc.Policy.Kind, candidate)
	switch {
	case err == nil:
		if !existing.Terminal() {
			return SubmitApplicationResult{}, domainerrors.ErrApplicationExists
		}
		held, err := uc.Deposits.HasUnwithdrawnDeposits(ctx, existing.ApplicationID)
		if err != nil {
			return SubmitApplicationResult{}, err
		}
		if held {
			return SubmitApplicationResult{}, domainerrors.ErrPriorDepositsOutstanding
		}
		replacesID = existing.ApplicationID
	case errors.Is(err, domainerrors.ErrApplicationNotFound):
	default:
		return SubmitApplicationResult{}, err
	}

	if uc.Policy.SubmissionFee > 0 {
		balance, err := uc.Asset.BalanceOf(ctx, caller)
		if err != nil {
			return SubmitApplicationResult{}, err
		}
		if balance < uc.Policy.SubmissionFee {
			return SubmitApplicationResult{}, domainerrors.ErrInsufficientBalance
		}
		if err := uc.Asset.TransferFrom(ctx, caller, uc.Policy.EscrowAccount, uc.Policy.SubmissionFee); err != nil {
			logger.Error("admission submit fee transfer failed",
				"event", "admission_submit_fee_transfer_failed",
				"module", moduleName,
				"layer", "application",
				"candidate", candidate,
				"error", err.Error(),
			)
			return SubmitApplicationResult{}, err
		}
	}

	applicationID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return SubmitApplicationResult{}, uc.refundOnFailure(ctx, caller, uc.Policy.SubmissionFee, err)
	}

	deadline := now.Add(uc.Policy.InitialVotingPeriod)
	round := entities.VoteRound{
		ApplicationID: applicationID,
		RoundIndex:    0,
		StartedAt:     now,
		EndsAt:        deadline,
		UpdatedAt:     now,
	}
	if err := uc.Rounds.SaveRound(ctx, round); err != nil {
		return SubmitApplicationResult{}, uc.refundOnFailure(ctx, caller, uc.Policy.SubmissionFee, err)
	}

	app := entities.Application{
		ApplicationID:     applicationID,
		Kind:              uc.Policy.Kind,
		Candidate:         candidate,
		Applicant:         applicant,
		TypeTag:           typeTag,
		Title:             title,
		DisplayTitle:      displayTitle,
		MetadataURI:       strings.TrimSpace(cmd.MetadataURI),
		CapabilityTags:    normalizeTags(cmd.CapabilityTags),
		Phase:             entities.PhaseInitialVoting,
		PhaseDeadline:     &deadline,
		RoundCount:        1,
		SubmissionFeePaid: uc.Policy.SubmissionFee,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if replacesID != "" {
		err = uc.Applications.ReplaceApplication(ctx, replacesID, app)
	} else {
		err = uc.Applications.CreateApplication(ctx, app)
	}
	if err != nil {
		return SubmitApplicationResult{}, uc.refundOnFailure(ctx, caller, uc.Policy.SubmissionFee, err)
	}

	if err := uc.annotate(ctx, app, 0, "submitted", applicant, "application opened"); err != nil {
		return SubmitApplicationResult{}, err
	}
	if err := uc.appendAdmissionEvent(ctx, EventTypeSubmitted, app, now, map[string]any{
		"round_index": 0,
		"fee_charged": uc.Policy.SubmissionFee,
	}); err != nil {
		return SubmitApplicationResult{}, err
	}

	result := SubmitApplicationResult{
		ApplicationID: applicationID,
		Kind:          string(app.Kind),
		Candidate:     candidate,
		Phase:         string(app.Phase),
		RoundIndex:    0,
		PhaseDeadline: deadline,
		FeeCharged:    uc.Policy.SubmissionFee,
	}
	if err := uc.storeIdempotent(ctx, cmd.IdempotencyKey, "submit", requestHash, now, result); err != nil {
		return SubmitApplicationResult{}, err
	}

	logger.Info("admission submit accepted",
		"event", "admission_submit_accepted",
		"module", moduleName,
		"layer", "application",
		"kind", string(app.Kind),
		"candidate", candidate,
		"application_id", applicationID,
	)
	return result, nil
}

// refundOnFailure returns escrowed funds when persistence fails after the
// asset already moved, then surfaces the original error.
func (uc AdmissionUseCase) refundOnFailure(ctx context.Context, to string, amount uint64, cause error) error {
	if amount == 0 {
		return cause
	}
	if err := uc.Asset.Transfer(ctx, to, amount); err != nil {
		logger := application.ResolveLogger(uc.Logger)
		logger.Error("admission compensating refund failed",
			"event", "admission_refund_failed",
			"module", moduleName,
			"layer", "application",
			"to", to,
			"amount", amount,
			"error", err.Error(),
		)
	}
	return cause
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
