package httpadapter

import (
	"context"
	"log/slog"

	application "solon/contexts/registry-governance/admission-engine/application"
	"solon/contexts/registry-governance/admission-engine/application/commands"
	"solon/contexts/registry-governance/admission-engine/application/queries"
	"solon/contexts/registry-governance/admission-engine/domain/entities"
	domainerrors "solon/contexts/registry-governance/admission-engine/domain/errors"
	httptransport "solon/contexts/registry-governance/admission-engine/transport/http"
)

// Track bundles the write and read sides of one admission track.
type Track struct {
	Admissions commands.AdmissionUseCase
	Status     queries.StatusUseCase
}

type Handler struct {
	Factory Track
	Vault   Track
	Logger  *slog.Logger
}

func (h Handler) track(kind string) (Track, error) {
	parsed, ok := entities.ParseKind(kind)
	if !ok {
		return Track{}, domainerrors.ErrInvalidInput
	}
	if parsed == entities.KindFactory {
		return h.Factory, nil
	}
	return h.Vault, nil
}

// SubmitApplicationHandler godoc
// @Summary Submit an admission application
// @Description Opens a deposit-backed application for a candidate contract and starts its first vote round. Only the configured registry contract may name an applicant other than the caller.
// @Tags admission-engine
// @Accept json
// @Produce json
// @Param Idempotency-Key header string true "Idempotency key"
// @Param kind path string true "Track: factory or vault"
// @Success 200 {object} httptransport.SubmitApplicationResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 402 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /v1/governance/{kind}/applications [post]
func (h Handler) SubmitApplicationHandler(
	ctx context.Context,
	kind string,
	caller string,
	idempotencyKey string,
	req httptransport.SubmitApplicationRequest,
) (httptransport.SubmitApplicationResponse, error) {
	logger := application.ResolveLogger(h.Logger)

	track, err := h.track(kind)
	if err != nil {
		return httptransport.SubmitApplicationResponse{}, err
	}
	result, err := track.Admissions.SubmitApplication(ctx, commands.SubmitApplicationCommand{
		Caller:         caller,
		Applicant:      req.Applicant,
		Candidate:      req.Candidate,
		TypeTag:        req.TypeTag,
		Title:          req.Title,
		DisplayTitle:   req.DisplayTitle,
		MetadataURI:    req.MetadataURI,
		CapabilityTags: req.CapabilityTags,
		FeeOffered:     req.FeeOffered,
		IdempotencyKey: idempotencyKey,
	})
	if err != nil {
		logger.Error("submit application request failed",
			"event", "http_submit_application_failed",
			"module", "registry-governance/admission-engine",
			"layer", "transport",
			"error", err.Error(),
		)
		return httptransport.SubmitApplicationResponse{}, err
	}
	return httptransport.SubmitApplicationResponse{
		ApplicationID: result.ApplicationID,
		Kind:          result.Kind,
		Candidate:     result.Candidate,
		Phase:         result.Phase,
		RoundIndex:    result.RoundIndex,
		PhaseDeadline: result.PhaseDeadline,
		FeeCharged:    result.FeeCharged,
		Replayed:      result.Replayed,
	}, nil
}

// PlaceDepositHandler godoc
// @Summary Place a vote deposit
// @Description Escrows tokens on the support or oppose side of the candidate's current round.
// @Tags admission-engine
// @Accept json
// @Produce json
// @Param Idempotency-Key header string true "Idempotency key"
// @Param kind path string true "Track: factory or vault"
// @Param candidate path string true "Candidate address"
// @Success 200 {object} httptransport.DepositResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 402 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /v1/governance/{kind}/applications/{candidate}/deposits [post]
func (h Handler) PlaceDepositHandler(
	ctx context.Context,
	kind string,
	candidate string,
	participant string,
	idempotencyKey string,
	req httptransport.PlaceDepositRequest,
) (httptransport.DepositResponse, error) {
	track, err := h.track(kind)
	if err != nil {
		return httptransport.DepositResponse{}, err
	}
	side, ok := entities.ParseSide(req.Side)
	if !ok {
		return httptransport.DepositResponse{}, domainerrors.ErrInvalidInput
	}
	result, err := track.Admissions.PlaceDeposit(ctx, commands.PlaceDepositCommand{
		Participant:    participant,
		Candidate:      candidate,
		Side:           side,
		Amount:         req.Amount,
		IdempotencyKey: idempotencyKey,
	})
	if err != nil {
		return httptransport.DepositResponse{}, err
	}
	return httptransport.DepositResponse{
		ApplicationID: result.ApplicationID,
		RoundIndex:    result.RoundIndex,
		Side:          result.Side,
		Placed:        result.Placed,
		Total:         result.Total,
		SupportTotal:  result.SupportTotal,
		OpposeTotal:   result.OpposeTotal,
		Replayed:      result.Replayed,
	}, nil
}

// FinalizeRoundHandler godoc
// @Summary Finalize the current vote round
// @Description Resolves a round whose deadline passed. Permissionless.
// @Tags admission-engine
// @Accept json
// @Produce json
// @Param kind path string true "Track: factory or vault"
// @Param candidate path string true "Candidate address"
// @Success 200 {object} httptransport.FinalizeRoundResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Failure 422 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /v1/governance/{kind}/applications/{candidate}/finalize [post]
func (h Handler) FinalizeRoundHandler(
	ctx context.Context,
	kind string,
	candidate string,
	req httptransport.FinalizeRoundRequest,
) (httptransport.FinalizeRoundResponse, error) {
	track, err := h.track(kind)
	if err != nil {
		return httptransport.FinalizeRoundResponse{}, err
	}
	result, err := track.Admissions.FinalizeRound(ctx, commands.FinalizeRoundCommand{
		Candidate: candidate,
		Caller:    req.Caller,
	})
	if err != nil {
		return httptransport.FinalizeRoundResponse{}, err
	}
	return httptransport.FinalizeRoundResponse{
		ApplicationID: result.ApplicationID,
		RoundIndex:    result.RoundIndex,
		SupportTotal:  result.SupportTotal,
		OpposeTotal:   result.OpposeTotal,
		SupportWon:    result.SupportWon,
		Phase:         result.Phase,
		PhaseDeadline: result.PhaseDeadline,
	}, nil
}

// ChallengeHandler godoc
// @Summary Challenge a winning application
// @Description Opens the next vote round by escalating stake against a candidate in the challenge window or lame-duck phase.
// @Tags admission-engine
// @Accept json
// @Produce json
// @Param Idempotency-Key header string true "Idempotency key"
// @Param kind path string true "Track: factory or vault"
// @Param candidate path string true "Candidate address"
// @Success 200 {object} httptransport.ChallengeResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 402 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /v1/governance/{kind}/applications/{candidate}/challenge [post]
func (h Handler) ChallengeHandler(
	ctx context.Context,
	kind string,
	candidate string,
	challenger string,
	idempotencyKey string,
	req httptransport.ChallengeRequest,
) (httptransport.ChallengeResponse, error) {
	track, err := h.track(kind)
	if err != nil {
		return httptransport.ChallengeResponse{}, err
	}
	result, err := track.Admissions.Challenge(ctx, commands.ChallengeCommand{
		Challenger:     challenger,
		Candidate:      candidate,
		Stake:          req.Stake,
		IdempotencyKey: idempotencyKey,
	})
	if err != nil {
		return httptransport.ChallengeResponse{}, err
	}
	return httptransport.ChallengeResponse{
		ApplicationID: result.ApplicationID,
		RoundIndex:    result.RoundIndex,
		Stake:         result.Stake,
		Phase:         result.Phase,
		PhaseDeadline: result.PhaseDeadline,
		Replayed:      result.Replayed,
	}, nil
}

// EnterLameDuckHandler godoc
// @Summary Advance a ripe challenge window into lame duck
// @Description Permissionless time-gated transition once the challenge window deadline passed.
// @Tags admission-engine
// @Accept json
// @Produce json
// @Param kind path string true "Track: factory or vault"
// @Param candidate path string true "Candidate address"
// @Success 200 {object} httptransport.LameDuckResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Failure 422 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /v1/governance/{kind}/applications/{candidate}/lame-duck [post]
func (h Handler) EnterLameDuckHandler(
	ctx context.Context,
	kind string,
	candidate string,
	req httptransport.AdvanceRequest,
) (httptransport.LameDuckResponse, error) {
	track, err := h.track(kind)
	if err != nil {
		return httptransport.LameDuckResponse{}, err
	}
	result, err := track.Admissions.EnterLameDuck(ctx, commands.EnterLameDuckCommand{
		Candidate: candidate,
		Caller:    req.Caller,
	})
	if err != nil {
		return httptransport.LameDuckResponse{}, err
	}
	return httptransport.LameDuckResponse{
		ApplicationID: result.ApplicationID,
		Phase:         result.Phase,
		PhaseDeadline: result.PhaseDeadline,
	}, nil
}

// RegisterHandler godoc
// @Summary Register a lame-duck survivor
// @Description Pushes the approved candidate to the downstream registry and closes the application.
// @Tags admission-engine
// @Accept json
// @Produce json
// @Param kind path string true "Track: factory or vault"
// @Param candidate path string true "Candidate address"
// @Success 200 {object} httptransport.RegisterResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Failure 422 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /v1/governance/{kind}/applications/{candidate}/register [post]
func (h Handler) RegisterHandler(
	ctx context.Context,
	kind string,
	candidate string,
	req httptransport.AdvanceRequest,
) (httptransport.RegisterResponse, error) {
	track, err := h.track(kind)
	if err != nil {
		return httptransport.RegisterResponse{}, err
	}
	result, err := track.Admissions.Register(ctx, commands.RegisterCommand{
		Candidate: candidate,
		Caller:    req.Caller,
	})
	if err != nil {
		return httptransport.RegisterResponse{}, err
	}
	return httptransport.RegisterResponse{
		ApplicationID: result.ApplicationID,
		Phase:         result.Phase,
		RegisteredAt:  result.RegisteredAt,
	}, nil
}

// WithdrawHandler godoc
// @Summary Withdraw all reclaimable deposits
// @Description Returns every unwithdrawn deposit the participant holds once the application is terminal.
// @Tags admission-engine
// @Accept json
// @Produce json
// @Param Idempotency-Key header string true "Idempotency key"
// @Param kind path string true "Track: factory or vault"
// @Param candidate path string true "Candidate address"
// @Success 200 {object} httptransport.WithdrawResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /v1/governance/{kind}/applications/{candidate}/withdrawals [post]
func (h Handler) WithdrawHandler(
	ctx context.Context,
	kind string,
	candidate string,
	participant string,
	idempotencyKey string,
) (httptransport.WithdrawResponse, error) {
	track, err := h.track(kind)
	if err != nil {
		return httptransport.WithdrawResponse{}, err
	}
	result, err := track.Admissions.Withdraw(ctx, commands.WithdrawCommand{
		Participant:    participant,
		Candidate:      candidate,
		IdempotencyKey: idempotencyKey,
	})
	if err != nil {
		return httptransport.WithdrawResponse{}, err
	}
	return httptransport.WithdrawResponse{
		ApplicationID: result.ApplicationID,
		Amount:        result.Amount,
		DepositCount:  result.DepositCount,
		Replayed:      result.Replayed,
	}, nil
}

// ApplicationStatusHandler godoc
// @Summary Get application status
// @Description Returns the admission record joined with its current round.
// @Tags admission-engine
// @Produce json
// @Param kind path string true "Track: factory or vault"
// @Param candidate path string true "Candidate address"
// @Success 200 {object} httptransport.ApplicationStatusResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /v1/governance/{kind}/applications/{candidate} [get]
func (h Handler) ApplicationStatusHandler(ctx context.Context, kind string, candidate string) (httptransport.ApplicationStatusResponse, error) {
	track, err := h.track(kind)
	if err != nil {
		return httptransport.ApplicationStatusResponse{}, err
	}
	status, err := track.Status.Application(ctx, candidate)
	if err != nil {
		return httptransport.ApplicationStatusResponse{}, err
	}
	app := status.Application
	return httptransport.ApplicationStatusResponse{
		ApplicationID:             app.ApplicationID,
		Kind:                      string(app.Kind),
		Candidate:                 app.Candidate,
		Applicant:                 app.Applicant,
		TypeTag:                   app.TypeTag,
		Title:                     app.Title,
		DisplayTitle:              app.DisplayTitle,
		MetadataURI:               app.MetadataURI,
		CapabilityTags:            app.CapabilityTags,
		Phase:                     string(app.Phase),
		PhaseDeadline:             app.PhaseDeadline,
		CumulativeSupportRequired: app.CumulativeSupportRequired,
		RoundCount:                app.RoundCount,
		SubmissionFeePaid:         app.SubmissionFeePaid,
		CreatedAt:                 app.CreatedAt,
		ResolvedAt:                app.ResolvedAt,
		CurrentRound:              mapRound(status.CurrentRound),
	}, nil
}

// RoundHandler godoc
// @Summary Get one vote round
// @Tags admission-engine
// @Produce json
// @Param kind path string true "Track: factory or vault"
// @Param candidate path string true "Candidate address"
// @Param round_index path int true "Round index"
// @Success 200 {object} httptransport.RoundItem
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /v1/governance/{kind}/applications/{candidate}/rounds/{round_index} [get]
func (h Handler) RoundHandler(ctx context.Context, kind string, candidate string, roundIndex int) (httptransport.RoundItem, error) {
	track, err := h.track(kind)
	if err != nil {
		return httptransport.RoundItem{}, err
	}
	round, err := track.Status.Round(ctx, candidate, roundIndex)
	if err != nil {
		return httptransport.RoundItem{}, err
	}
	return mapRound(round), nil
}

// DepositHandler godoc
// @Summary Get a participant's deposit in one round
// @Tags admission-engine
// @Produce json
// @Param kind path string true "Track: factory or vault"
// @Param candidate path string true "Candidate address"
// @Param round_index path int true "Round index"
// @Param participant path string true "Participant address"
// @Success 200 {object} httptransport.DepositStatusResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /v1/governance/{kind}/applications/{candidate}/rounds/{round_index}/deposits/{participant} [get]
func (h Handler) DepositHandler(ctx context.Context, kind string, candidate string, roundIndex int, participant string) (httptransport.DepositStatusResponse, error) {
	track, err := h.track(kind)
	if err != nil {
		return httptransport.DepositStatusResponse{}, err
	}
	deposit, err := track.Status.Deposit(ctx, candidate, roundIndex, participant)
	if err != nil {
		return httptransport.DepositStatusResponse{}, err
	}
	return httptransport.DepositStatusResponse{
		ApplicationID: deposit.ApplicationID,
		Participant:   deposit.Participant,
		RoundIndex:    deposit.RoundIndex,
		Side:          string(deposit.Side),
		Amount:        deposit.Amount,
		Withdrawn:     deposit.Withdrawn,
	}, nil
}

// WithdrawableHandler godoc
// @Summary List what a participant can reclaim
// @Tags admission-engine
// @Produce json
// @Param kind path string true "Track: factory or vault"
// @Param candidate path string true "Candidate address"
// @Param participant path string true "Participant address"
// @Success 200 {object} httptransport.WithdrawableResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /v1/governance/{kind}/applications/{candidate}/withdrawable/{participant} [get]
func (h Handler) WithdrawableHandler(ctx context.Context, kind string, candidate string, participant string) (httptransport.WithdrawableResponse, error) {
	track, err := h.track(kind)
	if err != nil {
		return httptransport.WithdrawableResponse{}, err
	}
	summary, err := track.Status.Withdrawable(ctx, candidate, participant)
	if err != nil {
		return httptransport.WithdrawableResponse{}, err
	}
	items := make([]httptransport.DepositItem, 0, len(summary.Deposits))
	for _, deposit := range summary.Deposits {
		items = append(items, httptransport.DepositItem{
			RoundIndex: deposit.RoundIndex,
			Side:       string(deposit.Side),
			Amount:     deposit.Amount,
			Withdrawn:  deposit.Withdrawn,
		})
	}
	return httptransport.WithdrawableResponse{
		ApplicationID: summary.ApplicationID,
		Participant:   summary.Participant,
		Total:         summary.Total,
		Withdrawable:  summary.Withdrawable,
		Deposits:      items,
	}, nil
}

// AnnotationsHandler godoc
// @Summary List application annotations
// @Description Returns the append-only action log for an application, ordered by sequence.
// @Tags admission-engine
// @Produce json
// @Param kind path string true "Track: factory or vault"
// @Param candidate path string true "Candidate address"
// @Param after query int false "Return annotations with seq greater than this"
// @Param limit query int false "Page size"
// @Success 200 {object} httptransport.AnnotationsResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /v1/governance/{kind}/applications/{candidate}/annotations [get]
func (h Handler) AnnotationsHandler(ctx context.Context, kind string, candidate string, afterSeq uint64, limit int) (httptransport.AnnotationsResponse, error) {
	track, err := h.track(kind)
	if err != nil {
		return httptransport.AnnotationsResponse{}, err
	}
	annotations, err := track.Status.ListAnnotations(ctx, candidate, afterSeq, limit)
	if err != nil {
		return httptransport.AnnotationsResponse{}, err
	}
	items := make([]httptransport.AnnotationItem, 0, len(annotations))
	for _, annotation := range annotations {
		items = append(items, httptransport.AnnotationItem{
			Seq:        annotation.Seq,
			RoundIndex: annotation.RoundIndex,
			Action:     annotation.Action,
			Actor:      annotation.Actor,
			Note:       annotation.Note,
			CreatedAt:  annotation.CreatedAt,
		})
	}
	return httptransport.AnnotationsResponse{Items: items}, nil
}

// SetAssetAddressHandler godoc
// @Summary Point the track at a new deposit-asset contract
// @Tags admission-engine
// @Accept json
// @Produce json
// @Param kind path string true "Track: factory or vault"
// @Success 200 {object} httptransport.SettingsResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /v1/governance/{kind}/settings/asset-address [put]
func (h Handler) SetAssetAddressHandler(ctx context.Context, kind string, caller string, req httptransport.UpdateAddressRequest) (httptransport.SettingsResponse, error) {
	track, err := h.track(kind)
	if err != nil {
		return httptransport.SettingsResponse{}, err
	}
	result, err := track.Admissions.SetAssetAddress(ctx, commands.SetAddressCommand{
		Caller:  caller,
		Address: req.Address,
	})
	if err != nil {
		return httptransport.SettingsResponse{}, err
	}
	return mapSettings(result), nil
}

// SetRegistryAddressHandler godoc
// @Summary Point the track at a new downstream registry contract
// @Tags admission-engine
// @Accept json
// @Produce json
// @Param kind path string true "Track: factory or vault"
// @Success 200 {object} httptransport.SettingsResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /v1/governance/{kind}/settings/registry-address [put]
func (h Handler) SetRegistryAddressHandler(ctx context.Context, kind string, caller string, req httptransport.UpdateAddressRequest) (httptransport.SettingsResponse, error) {
	track, err := h.track(kind)
	if err != nil {
		return httptransport.SettingsResponse{}, err
	}
	result, err := track.Admissions.SetRegistryAddress(ctx, commands.SetAddressCommand{
		Caller:  caller,
		Address: req.Address,
	})
	if err != nil {
		return httptransport.SettingsResponse{}, err
	}
	return mapSettings(result), nil
}

func mapRound(round entities.VoteRound) httptransport.RoundItem {
	return httptransport.RoundItem{
		RoundIndex:      round.RoundIndex,
		SupportTotal:    round.SupportTotal,
		OpposeTotal:     round.OpposeTotal,
		StartedAt:       round.StartedAt,
		EndsAt:          round.EndsAt,
		Challenger:      round.Challenger,
		ChallengerStake: round.ChallengerStake,
		Resolved:        round.Resolved,
		SupportWon:      round.SupportWon,
	}
}

func mapSettings(result commands.SettingsResult) httptransport.SettingsResponse {
	return httptransport.SettingsResponse{
		Kind:            result.Kind,
		AssetAddress:    result.AssetAddress,
		RegistryAddress: result.RegistryAddress,
	}
}
