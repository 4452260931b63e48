package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	evmadapter "solon/contexts/registry-governance/admission-engine/adapters/evm"
	"solon/contexts/registry-governance/admission-engine/adapters/memory"
	"solon/contexts/registry-governance/admission-engine/application/queries"
	"solon/contexts/registry-governance/admission-engine/domain/entities"
	domainerrors "solon/contexts/registry-governance/admission-engine/domain/errors"
)

const (
	statusCandidate   = "0x2000000000000000000000000000000000000002"
	statusSupporter   = "0x3000000000000000000000000000000000000003"
	statusBystander   = "0x4000000000000000000000000000000000000004"
	statusApplication = "app-1"
)

func newStatusFixture(t *testing.T) (queries.StatusUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	uc := queries.StatusUseCase{
		Kind:         entities.KindFactory,
		Applications: store,
		Rounds:       store,
		Deposits:     store,
		Annotations:  store,
		Addresses:    evmadapter.AddressCodec{},
	}

	ctx := context.Background()
	opened := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	deadline := opened.Add(24 * time.Hour)
	if err := store.CreateApplication(ctx, entities.Application{
		ApplicationID: statusApplication,
		Kind:          entities.KindFactory,
		Candidate:     statusCandidate,
		Applicant:     statusSupporter,
		TypeTag:       "factory.amm.v2",
		Title:         "AMM factory",
		Phase:         entities.PhaseInitialVoting,
		PhaseDeadline: &deadline,
		RoundCount:    1,
		CreatedAt:     opened,
		UpdatedAt:     opened,
	}); err != nil {
		t.Fatalf("seed application failed: %v", err)
	}
	if err := store.SaveRound(ctx, entities.VoteRound{
		ApplicationID: statusApplication,
		RoundIndex:    0,
		SupportTotal:  700,
		OpposeTotal:   200,
		StartedAt:     opened,
		EndsAt:        deadline,
	}); err != nil {
		t.Fatalf("seed round failed: %v", err)
	}
	if err := store.SaveDeposit(ctx, entities.VoteDeposit{
		ApplicationID: statusApplication,
		RoundIndex:    0,
		Participant:   statusSupporter,
		Side:          entities.SideSupport,
		Amount:        700,
		UpdatedAt:     opened,
	}); err != nil {
		t.Fatalf("seed deposit failed: %v", err)
	}
	return uc, store
}

func TestApplicationStatusJoinsCurrentRound(t *testing.T) {
	uc, _ := newStatusFixture(t)
	ctx := context.Background()

	status, err := uc.Application(ctx, statusCandidate)
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if status.Application.ApplicationID != statusApplication {
		t.Fatalf("unexpected application %s", status.Application.ApplicationID)
	}
	if status.CurrentRound.RoundIndex != 0 || status.CurrentRound.SupportTotal != 700 {
		t.Fatalf("unexpected joined round: %+v", status.CurrentRound)
	}

	if _, err := uc.Application(ctx, "0x9000000000000000000000000000000000000009"); !errors.Is(err, domainerrors.ErrApplicationNotFound) {
		t.Fatalf("expected ErrApplicationNotFound, got %v", err)
	}
	if _, err := uc.Application(ctx, "nonsense"); !errors.Is(err, domainerrors.ErrInvalidAddress) {
		t.Fatalf("expected ErrInvalidAddress, got %v", err)
	}
}

func TestRoundLookupBounds(t *testing.T) {
	uc, _ := newStatusFixture(t)
	ctx := context.Background()

	round, err := uc.Round(ctx, statusCandidate, 0)
	if err != nil {
		t.Fatalf("round lookup failed: %v", err)
	}
	if round.OpposeTotal != 200 {
		t.Fatalf("unexpected round: %+v", round)
	}

	if _, err := uc.Round(ctx, statusCandidate, 1); !errors.Is(err, domainerrors.ErrRoundNotFound) {
		t.Fatalf("expected ErrRoundNotFound past the round count, got %v", err)
	}
	if _, err := uc.Round(ctx, statusCandidate, -1); !errors.Is(err, domainerrors.ErrRoundNotFound) {
		t.Fatalf("expected ErrRoundNotFound for a negative index, got %v", err)
	}
}

func TestDepositLookup(t *testing.T) {
	uc, _ := newStatusFixture(t)
	ctx := context.Background()

	deposit, err := uc.Deposit(ctx, statusCandidate, 0, statusSupporter)
	if err != nil {
		t.Fatalf("deposit lookup failed: %v", err)
	}
	if deposit.Amount != 700 || deposit.Side != entities.SideSupport {
		t.Fatalf("unexpected deposit: %+v", deposit)
	}

	if _, err := uc.Deposit(ctx, statusCandidate, 0, statusBystander); !errors.Is(err, domainerrors.ErrDepositNotFound) {
		t.Fatalf("expected ErrDepositNotFound, got %v", err)
	}
}

func TestWithdrawableSummaryTracksTerminality(t *testing.T) {
	uc, store := newStatusFixture(t)
	ctx := context.Background()

	summary, err := uc.Withdrawable(ctx, statusCandidate, statusSupporter)
	if err != nil {
		t.Fatalf("withdrawable failed: %v", err)
	}
	if summary.Total != 700 || len(summary.Deposits) != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.Withdrawable {
		t.Fatalf("non-terminal application must not be withdrawable yet")
	}

	app, err := store.GetApplication(ctx, entities.KindFactory, statusCandidate)
	if err != nil {
		t.Fatalf("application lookup failed: %v", err)
	}
	resolved := time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC)
	app.Phase = entities.PhaseRejected
	app.PhaseDeadline = nil
	app.ResolvedAt = &resolved
	if err := store.UpdateApplication(ctx, app); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	summary, err = uc.Withdrawable(ctx, statusCandidate, statusSupporter)
	if err != nil {
		t.Fatalf("withdrawable failed: %v", err)
	}
	if !summary.Withdrawable {
		t.Fatalf("terminal application must be withdrawable")
	}

	// Withdrawn rows drop out of the summary.
	deposit, found, err := store.GetDeposit(ctx, statusApplication, 0, statusSupporter)
	if err != nil || !found {
		t.Fatalf("deposit lookup failed: found=%v err=%v", found, err)
	}
	deposit.Withdrawn = true
	if err := store.SaveDeposit(ctx, deposit); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	summary, err = uc.Withdrawable(ctx, statusCandidate, statusSupporter)
	if err != nil {
		t.Fatalf("withdrawable failed: %v", err)
	}
	if summary.Total != 0 || len(summary.Deposits) != 0 {
		t.Fatalf("withdrawn deposits must not count, got %+v", summary)
	}
}

func TestAnnotationListingClampsLimit(t *testing.T) {
	uc, store := newStatusFixture(t)
	ctx := context.Background()

	for i := 0; i < 150; i++ {
		if err := store.AppendAnnotation(ctx, entities.Annotation{
			ApplicationID: statusApplication,
			Kind:          entities.KindFactory,
			Candidate:     statusCandidate,
			Action:        "deposit_placed",
			Actor:         statusSupporter,
			CreatedAt:     time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
		}); err != nil {
			t.Fatalf("append annotation failed: %v", err)
		}
	}

	annotations, err := uc.ListAnnotations(ctx, statusCandidate, 0, 0)
	if err != nil {
		t.Fatalf("listing failed: %v", err)
	}
	if len(annotations) != 100 {
		t.Fatalf("expected the default page of 100, got %d", len(annotations))
	}

	annotations, err = uc.ListAnnotations(ctx, statusCandidate, 0, 10)
	if err != nil {
		t.Fatalf("listing failed: %v", err)
	}
	if len(annotations) != 10 {
		t.Fatalf("expected 10, got %d", len(annotations))
	}

	// Pagination resumes past the cursor.
	next, err := uc.ListAnnotations(ctx, statusCandidate, annotations[9].Seq, 10)
	if err != nil {
		t.Fatalf("listing failed: %v", err)
	}
	if len(next) != 10 {
		t.Fatalf("expected the next page of 10, got %d", len(next))
	}
	if next[0].Seq <= annotations[9].Seq {
		t.Fatalf("page must start after the cursor: %d then %d", annotations[9].Seq, next[0].Seq)
	}
}
