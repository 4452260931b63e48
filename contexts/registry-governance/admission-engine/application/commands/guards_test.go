package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"solon/contexts/registry-governance/admission-engine/application/commands"
	"solon/contexts/registry-governance/admission-engine/domain/entities"
	domainerrors "solon/contexts/registry-governance/admission-engine/domain/errors"
)

func TestSubmitValidation(t *testing.T) {
	f := newEngine(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	f.mintDefaults()
	ctx := context.Background()

	base := commands.SubmitApplicationCommand{
		Caller:         applicantAddr,
		Candidate:      candidateAddr,
		TypeTag:        "factory.amm.v2",
		Title:          "AMM factory",
		FeeOffered:     50,
		IdempotencyKey: "idem-1",
	}

	noTag := base
	noTag.TypeTag = ""
	if _, err := f.uc.SubmitApplication(ctx, noTag); !errors.Is(err, domainerrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty type tag, got %v", err)
	}

	noTitle := base
	noTitle.Title = "   "
	if _, err := f.uc.SubmitApplication(ctx, noTitle); !errors.Is(err, domainerrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank title, got %v", err)
	}

	noKey := base
	noKey.IdempotencyKey = ""
	if _, err := f.uc.SubmitApplication(ctx, noKey); !errors.Is(err, domainerrors.ErrIdempotencyKeyRequired) {
		t.Fatalf("expected ErrIdempotencyKeyRequired, got %v", err)
	}

	lowFee := base
	lowFee.FeeOffered = 49
	if _, err := f.uc.SubmitApplication(ctx, lowFee); !errors.Is(err, domainerrors.ErrInsufficientFee) {
		t.Fatalf("expected ErrInsufficientFee for 49 against 50, got %v", err)
	}

	badCandidate := base
	badCandidate.Candidate = "not-an-address"
	if _, err := f.uc.SubmitApplication(ctx, badCandidate); !errors.Is(err, domainerrors.ErrInvalidAddress) {
		t.Fatalf("expected ErrInvalidAddress, got %v", err)
	}

	zeroCandidate := base
	zeroCandidate.Candidate = "0x0000000000000000000000000000000000000000"
	if _, err := f.uc.SubmitApplication(ctx, zeroCandidate); !errors.Is(err, domainerrors.ErrInvalidAddress) {
		t.Fatalf("expected ErrInvalidAddress for the zero address, got %v", err)
	}

	badApplicant := base
	badApplicant.Applicant = "0x123"
	if _, err := f.uc.SubmitApplication(ctx, badApplicant); !errors.Is(err, domainerrors.ErrInvalidAddress) {
		t.Fatalf("expected ErrInvalidAddress for a malformed applicant, got %v", err)
	}
}

func TestSubmitChargesNothingWhenBroke(t *testing.T) {
	f := newEngine(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	f.asset.Mint(applicantAddr, 10)
	ctx := context.Background()

	if _, err := f.uc.SubmitApplication(ctx, commands.SubmitApplicationCommand{
		Caller:         applicantAddr,
		Candidate:      candidateAddr,
		TypeTag:        "factory.amm.v2",
		Title:          "AMM factory",
		FeeOffered:     50,
		IdempotencyKey: "idem-1",
	}); !errors.Is(err, domainerrors.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}

	balance, err := f.asset.BalanceOf(ctx, applicantAddr)
	if err != nil {
		t.Fatalf("balance lookup failed: %v", err)
	}
	if balance != 10 {
		t.Fatalf("failed submit must not move funds, balance %d", balance)
	}
	if _, err := f.store.GetApplication(ctx, entities.KindFactory, candidateAddr); !errors.Is(err, domainerrors.ErrApplicationNotFound) {
		t.Fatalf("failed submit must not create an application, got %v", err)
	}
}

func TestSubmitRejectsOccupiedCandidate(t *testing.T) {
	f := newEngine(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	f.mintDefaults()
	ctx := context.Background()

	mustSubmit(t, f, "idem-1")

	if _, err := f.uc.SubmitApplication(ctx, commands.SubmitApplicationCommand{
		Caller:         supporterAddr,
		Candidate:      candidateAddr,
		TypeTag:        "factory.amm.v3",
		Title:          "Rival filing",
		FeeOffered:     50,
		IdempotencyKey: "idem-2",
	}); !errors.Is(err, domainerrors.ErrApplicationExists) {
		t.Fatalf("expected ErrApplicationExists while a run is live, got %v", err)
	}
}

func TestSubmitIdempotencyReplayAndConflict(t *testing.T) {
	f := newEngine(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	f.mintDefaults()
	ctx := context.Background()

	first := mustSubmit(t, f, "idem-1")
	balanceAfterFirst, err := f.asset.BalanceOf(ctx, applicantAddr)
	if err != nil {
		t.Fatalf("balance lookup failed: %v", err)
	}

	replayed := mustSubmit(t, f, "idem-1")
	if !replayed.Replayed {
		t.Fatalf("expected replay flag on the second identical call")
	}
	if replayed.ApplicationID != first.ApplicationID {
		t.Fatalf("replay must return the original application id")
	}
	balanceAfterReplay, err := f.asset.BalanceOf(ctx, applicantAddr)
	if err != nil {
		t.Fatalf("balance lookup failed: %v", err)
	}
	if balanceAfterReplay != balanceAfterFirst {
		t.Fatalf("replay must not charge a second fee: %d then %d", balanceAfterFirst, balanceAfterReplay)
	}

	conflict := commands.SubmitApplicationCommand{
		Caller:         applicantAddr,
		Candidate:      "0x6000000000000000000000000000000000000006",
		TypeTag:        "factory.amm.v2",
		Title:          "AMM factory",
		FeeOffered:     50,
		IdempotencyKey: "idem-1",
	}
	if _, err := f.uc.SubmitApplication(ctx, conflict); !errors.Is(err, domainerrors.ErrIdempotencyConflict) {
		t.Fatalf("expected ErrIdempotencyConflict for a reused key with a new payload, got %v", err)
	}
}

func TestSubmitOnBehalfRequiresRegistrySubmitter(t *testing.T) {
	f := newEngine(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	f.mintDefaults()
	ctx := context.Background()
	registrar := "0x6000000000000000000000000000000000000006"
	f.asset.Mint(registrar, 1_000)

	onBehalf := commands.SubmitApplicationCommand{
		Caller:         registrar,
		Applicant:      applicantAddr,
		Candidate:      candidateAddr,
		TypeTag:        "factory.amm.v2",
		Title:          "AMM factory",
		FeeOffered:     50,
		IdempotencyKey: "idem-behalf",
	}
	if _, err := f.uc.SubmitApplication(ctx, onBehalf); !errors.Is(err, domainerrors.ErrNotRegistrySubmitter) {
		t.Fatalf("expected ErrNotRegistrySubmitter before a registry is configured, got %v", err)
	}

	if _, err := f.uc.SetRegistryAddress(ctx, commands.SetAddressCommand{Caller: ownerAddr, Address: registrar}); err != nil {
		t.Fatalf("set registry address failed: %v", err)
	}

	impostor := onBehalf
	impostor.Caller = supporterAddr
	impostor.IdempotencyKey = "idem-impostor"
	if _, err := f.uc.SubmitApplication(ctx, impostor); !errors.Is(err, domainerrors.ErrNotRegistrySubmitter) {
		t.Fatalf("expected ErrNotRegistrySubmitter for a non-registry caller, got %v", err)
	}

	result, err := f.uc.SubmitApplication(ctx, onBehalf)
	if err != nil {
		t.Fatalf("registry on-behalf submit failed: %v", err)
	}
	app, err := f.store.GetApplication(ctx, entities.KindFactory, candidateAddr)
	if err != nil {
		t.Fatalf("application lookup failed: %v", err)
	}
	if app.ApplicationID != result.ApplicationID || app.Applicant != applicantAddr {
		t.Fatalf("expected the named applicant credited, got %+v", app)
	}

	registrarBalance, err := f.asset.BalanceOf(ctx, registrar)
	if err != nil {
		t.Fatalf("balance lookup failed: %v", err)
	}
	if registrarBalance != 950 {
		t.Fatalf("fee must come out of the registry caller, balance %d", registrarBalance)
	}
	applicantBalance, err := f.asset.BalanceOf(ctx, applicantAddr)
	if err != nil {
		t.Fatalf("balance lookup failed: %v", err)
	}
	if applicantBalance != 1_000 {
		t.Fatalf("applicant funds must not move on an on-behalf submit, balance %d", applicantBalance)
	}
}

func TestDepositGuards(t *testing.T) {
	f := newEngine(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	f.mintDefaults()
	ctx := context.Background()

	mustSubmit(t, f, "idem-submit")
	f.clock.now = f.clock.now.Add(time.Hour)

	if _, err := f.uc.PlaceDeposit(ctx, commands.PlaceDepositCommand{
		Participant:    supporterAddr,
		Candidate:      candidateAddr,
		Side:           entities.SideSupport,
		Amount:         0,
		IdempotencyKey: "idem-zero",
	}); !errors.Is(err, domainerrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for zero amount, got %v", err)
	}

	if _, err := f.uc.PlaceDeposit(ctx, commands.PlaceDepositCommand{
		Participant:    supporterAddr,
		Candidate:      candidateAddr,
		Side:           entities.SideSupport,
		Amount:         99,
		IdempotencyKey: "idem-low",
	}); !errors.Is(err, domainerrors.ErrBelowMinimumDeposit) {
		t.Fatalf("expected ErrBelowMinimumDeposit for 99 against 100, got %v", err)
	}

	// Side picked by the first deposit is locked for the round.
	mustDeposit(t, f, supporterAddr, "support", 400, "idem-dep-1")
	if _, err := f.uc.PlaceDeposit(ctx, commands.PlaceDepositCommand{
		Participant:    supporterAddr,
		Candidate:      candidateAddr,
		Side:           entities.SideOppose,
		Amount:         400,
		IdempotencyKey: "idem-flip",
	}); !errors.Is(err, domainerrors.ErrSideLocked) {
		t.Fatalf("expected ErrSideLocked on a side flip, got %v", err)
	}

	// Same side accumulates instead.
	topUp := mustDeposit(t, f, supporterAddr, "support", 300, "idem-dep-2")
	if topUp.Placed != 300 || topUp.Total != 700 {
		t.Fatalf("expected accumulation to 700, got placed %d total %d", topUp.Placed, topUp.Total)
	}
	if topUp.SupportTotal != 700 {
		t.Fatalf("expected round support total 700, got %d", topUp.SupportTotal)
	}

	broke := "0x8000000000000000000000000000000000000008"
	if _, err := f.uc.PlaceDeposit(ctx, commands.PlaceDepositCommand{
		Participant:    broke,
		Candidate:      candidateAddr,
		Side:           entities.SideSupport,
		Amount:         200,
		IdempotencyKey: "idem-broke",
	}); !errors.Is(err, domainerrors.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance for an unfunded participant, got %v", err)
	}

	// Deadline passes: the round stops accepting deposits before finalize runs.
	f.clock.now = f.clock.now.Add(24 * time.Hour)
	if _, err := f.uc.PlaceDeposit(ctx, commands.PlaceDepositCommand{
		Participant:    opposerAddr,
		Candidate:      candidateAddr,
		Side:           entities.SideOppose,
		Amount:         200,
		IdempotencyKey: "idem-late",
	}); !errors.Is(err, domainerrors.ErrRoundClosed) {
		t.Fatalf("expected ErrRoundClosed after the deadline, got %v", err)
	}
}

func TestDepositRejectedOutsideVotingPhases(t *testing.T) {
	f := newEngine(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	f.mintDefaults()
	ctx := context.Background()

	driveToChallengeWindow(t, f)

	if _, err := f.uc.PlaceDeposit(ctx, commands.PlaceDepositCommand{
		Participant:    supporterAddr,
		Candidate:      candidateAddr,
		Side:           entities.SideSupport,
		Amount:         200,
		IdempotencyKey: "idem-window",
	}); !errors.Is(err, domainerrors.ErrInvalidPhase) {
		t.Fatalf("expected ErrInvalidPhase in the challenge window, got %v", err)
	}

	if _, err := f.uc.PlaceDeposit(ctx, commands.PlaceDepositCommand{
		Participant:    supporterAddr,
		Candidate:      "0x6000000000000000000000000000000000000006",
		Side:           entities.SideSupport,
		Amount:         200,
		IdempotencyKey: "idem-ghost",
	}); !errors.Is(err, domainerrors.ErrApplicationNotFound) {
		t.Fatalf("expected ErrApplicationNotFound for an unknown candidate, got %v", err)
	}
}

func TestFinalizeGuards(t *testing.T) {
	f := newEngine(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	f.mintDefaults()
	ctx := context.Background()

	mustSubmit(t, f, "idem-submit")
	f.clock.now = f.clock.now.Add(time.Hour)
	mustDeposit(t, f, supporterAddr, "support", 1_100, "idem-dep-1")

	if _, err := f.uc.FinalizeRound(ctx, commands.FinalizeRoundCommand{Candidate: candidateAddr}); !errors.Is(err, domainerrors.ErrDeadlineNotReached) {
		t.Fatalf("expected ErrDeadlineNotReached mid-round, got %v", err)
	}

	f.clock.now = f.clock.now.Add(24 * time.Hour)
	if _, err := f.uc.FinalizeRound(ctx, commands.FinalizeRoundCommand{Candidate: candidateAddr}); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	// A second finalize has no live voting round left to resolve.
	if _, err := f.uc.FinalizeRound(ctx, commands.FinalizeRoundCommand{Candidate: candidateAddr}); !errors.Is(err, domainerrors.ErrInvalidPhase) {
		t.Fatalf("expected ErrInvalidPhase after resolution, got %v", err)
	}
}

func TestChallengeGuards(t *testing.T) {
	f := newEngine(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	f.mintDefaults()
	ctx := context.Background()

	mustSubmit(t, f, "idem-submit")
	if _, err := f.uc.Challenge(ctx, commands.ChallengeCommand{
		Challenger:     challengerAddr,
		Candidate:      candidateAddr,
		Stake:          800,
		IdempotencyKey: "idem-early",
	}); !errors.Is(err, domainerrors.ErrInvalidPhase) {
		t.Fatalf("expected ErrInvalidPhase during initial voting, got %v", err)
	}

	f.clock.now = f.clock.now.Add(time.Hour)
	mustDeposit(t, f, supporterAddr, "support", 800, "idem-dep-1")
	mustDeposit(t, f, opposerAddr, "oppose", 300, "idem-dep-2")
	f.clock.now = f.clock.now.Add(24 * time.Hour)
	if _, err := f.uc.FinalizeRound(ctx, commands.FinalizeRoundCommand{Candidate: candidateAddr}); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if _, err := f.uc.Challenge(ctx, commands.ChallengeCommand{
		Challenger:     challengerAddr,
		Candidate:      candidateAddr,
		Stake:          0,
		IdempotencyKey: "idem-zero",
	}); !errors.Is(err, domainerrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for zero stake, got %v", err)
	}

	if _, err := f.uc.Challenge(ctx, commands.ChallengeCommand{
		Challenger:     challengerAddr,
		Candidate:      candidateAddr,
		Stake:          800,
		IdempotencyKey: "",
	}); !errors.Is(err, domainerrors.ErrIdempotencyKeyRequired) {
		t.Fatalf("expected ErrIdempotencyKeyRequired, got %v", err)
	}

	if _, err := f.uc.Challenge(ctx, commands.ChallengeCommand{
		Challenger:     challengerAddr,
		Candidate:      candidateAddr,
		Stake:          99,
		IdempotencyKey: "idem-tiny",
	}); !errors.Is(err, domainerrors.ErrBelowMinimumDeposit) {
		t.Fatalf("expected ErrBelowMinimumDeposit for 99 against 100, got %v", err)
	}

	poor := "0x8000000000000000000000000000000000000008"
	f.asset.Mint(poor, 500)
	if _, err := f.uc.Challenge(ctx, commands.ChallengeCommand{
		Challenger:     poor,
		Candidate:      candidateAddr,
		Stake:          900,
		IdempotencyKey: "idem-poor",
	}); !errors.Is(err, domainerrors.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance for a 900 stake on 500, got %v", err)
	}
}

func TestChallengeIdempotentReplay(t *testing.T) {
	f := newEngine(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	f.mintDefaults()
	ctx := context.Background()

	driveToChallengeWindow(t, f)
	f.clock.now = f.clock.now.Add(time.Hour)

	first, err := f.uc.Challenge(ctx, commands.ChallengeCommand{
		Challenger:     challengerAddr,
		Candidate:      candidateAddr,
		Stake:          800,
		IdempotencyKey: "idem-chal",
	})
	if err != nil {
		t.Fatalf("challenge failed: %v", err)
	}
	balanceAfterFirst, err := f.asset.BalanceOf(ctx, challengerAddr)
	if err != nil {
		t.Fatalf("balance lookup failed: %v", err)
	}

	replayed, err := f.uc.Challenge(ctx, commands.ChallengeCommand{
		Challenger:     challengerAddr,
		Candidate:      candidateAddr,
		Stake:          800,
		IdempotencyKey: "idem-chal",
	})
	if err != nil {
		t.Fatalf("challenge replay failed: %v", err)
	}
	if !replayed.Replayed || replayed.RoundIndex != first.RoundIndex {
		t.Fatalf("expected replay of round %d, got %+v", first.RoundIndex, replayed)
	}
	balanceAfterReplay, err := f.asset.BalanceOf(ctx, challengerAddr)
	if err != nil {
		t.Fatalf("balance lookup failed: %v", err)
	}
	if balanceAfterReplay != balanceAfterFirst {
		t.Fatalf("replay must not escrow a second stake: %d then %d", balanceAfterFirst, balanceAfterReplay)
	}

	app, err := f.store.GetApplication(ctx, entities.KindFactory, candidateAddr)
	if err != nil {
		t.Fatalf("application lookup failed: %v", err)
	}
	if app.RoundCount != 2 {
		t.Fatalf("replay must not open another round, count %d", app.RoundCount)
	}
}

func TestAdvanceDeadlineGates(t *testing.T) {
	f := newEngine(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	f.mintDefaults()
	ctx := context.Background()

	driveToChallengeWindow(t, f)

	if _, err := f.uc.EnterLameDuck(ctx, commands.EnterLameDuckCommand{Candidate: candidateAddr}); !errors.Is(err, domainerrors.ErrDeadlineNotReached) {
		t.Fatalf("expected ErrDeadlineNotReached while the window is open, got %v", err)
	}
	if _, err := f.uc.Register(ctx, commands.RegisterCommand{Candidate: candidateAddr}); !errors.Is(err, domainerrors.ErrInvalidPhase) {
		t.Fatalf("expected ErrInvalidPhase for register out of the window, got %v", err)
	}

	f.clock.now = f.clock.now.Add(13 * time.Hour)
	if _, err := f.uc.EnterLameDuck(ctx, commands.EnterLameDuckCommand{Candidate: candidateAddr}); err != nil {
		t.Fatalf("enter lame duck failed: %v", err)
	}

	if _, err := f.uc.Register(ctx, commands.RegisterCommand{Candidate: candidateAddr}); !errors.Is(err, domainerrors.ErrDeadlineNotReached) {
		t.Fatalf("expected ErrDeadlineNotReached during the grace period, got %v", err)
	}

	f.clock.now = f.clock.now.Add(7 * time.Hour)
	if _, err := f.uc.Register(ctx, commands.RegisterCommand{Candidate: candidateAddr}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// Approved is terminal: neither transition applies a second time.
	if _, err := f.uc.Register(ctx, commands.RegisterCommand{Candidate: candidateAddr}); !errors.Is(err, domainerrors.ErrInvalidPhase) {
		t.Fatalf("expected ErrInvalidPhase on double register, got %v", err)
	}
	if len(f.registry.Entries()) != 1 {
		t.Fatalf("expected exactly one registry push, got %d", len(f.registry.Entries()))
	}
}

func TestSettingsOwnerGate(t *testing.T) {
	f := newEngine(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	assetContract := "0x6000000000000000000000000000000000000006"
	registryContract := "0x8000000000000000000000000000000000000008"

	if _, err := f.uc.SetAssetAddress(ctx, commands.SetAddressCommand{
		Caller:  supporterAddr,
		Address: assetContract,
	}); !errors.Is(err, domainerrors.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner for a non-owner caller, got %v", err)
	}

	if _, err := f.uc.SetAssetAddress(ctx, commands.SetAddressCommand{
		Caller:  ownerAddr,
		Address: "0x0000000000000000000000000000000000000000",
	}); !errors.Is(err, domainerrors.ErrInvalidAddress) {
		t.Fatalf("expected ErrInvalidAddress for the zero address, got %v", err)
	}

	updated, err := f.uc.SetAssetAddress(ctx, commands.SetAddressCommand{
		Caller:  ownerAddr,
		Address: assetContract,
	})
	if err != nil {
		t.Fatalf("set asset address failed: %v", err)
	}
	if updated.AssetAddress != assetContract {
		t.Fatalf("expected asset address %s, got %s", assetContract, updated.AssetAddress)
	}

	// The second update must not clobber the first field.
	updated, err = f.uc.SetRegistryAddress(ctx, commands.SetAddressCommand{
		Caller:  ownerAddr,
		Address: registryContract,
	})
	if err != nil {
		t.Fatalf("set registry address failed: %v", err)
	}
	if updated.AssetAddress != assetContract || updated.RegistryAddress != registryContract {
		t.Fatalf("expected both addresses retained, got %+v", updated)
	}

	settings, err := f.store.GetSettings(ctx, entities.KindFactory)
	if err != nil {
		t.Fatalf("settings lookup failed: %v", err)
	}
	if settings.AssetAddress != assetContract || settings.RegistryAddress != registryContract {
		t.Fatalf("persisted settings out of sync: %+v", settings)
	}
}
