package commands_test

import (
	"context"
	"testing"
	"time"

	evmadapter "solon/contexts/registry-governance/admission-engine/adapters/evm"
	"solon/contexts/registry-governance/admission-engine/adapters/memory"
	"solon/contexts/registry-governance/admission-engine/application/commands"
	"solon/contexts/registry-governance/admission-engine/domain/entities"
	"solon/contexts/registry-governance/admission-engine/ports"
)

// All-digit addresses survive checksum normalization unchanged, so mint
// targets and command inputs can share the same literals.
const (
	applicantAddr  = "0x1000000000000000000000000000000000000001"
	candidateAddr  = "0x2000000000000000000000000000000000000002"
	supporterAddr  = "0x3000000000000000000000000000000000000003"
	opposerAddr    = "0x4000000000000000000000000000000000000004"
	challengerAddr = "0x5000000000000000000000000000000000000005"
	escrowAddr     = "0x7000000000000000000000000000000000000007"
	ownerAddr      = "0x9000000000000000000000000000000000000009"
)

type stepClock struct {
	now time.Time
}

func (c *stepClock) Now() time.Time {
	return c.now
}

type engineFixture struct {
	uc       commands.AdmissionUseCase
	store    *memory.Store
	asset    *memory.AssetLedger
	registry *memory.RegistryRecorder
	clock    *stepClock
}

func newEngine(start time.Time) engineFixture {
	store := memory.NewStore()
	asset := memory.NewAssetLedger(escrowAddr)
	registry := memory.NewRegistryRecorder()
	clock := &stepClock{now: start}

	uc := commands.AdmissionUseCase{
		Policy: ports.Policy{
			Kind:                  entities.KindFactory,
			Owner:                 ownerAddr,
			EscrowAccount:         escrowAddr,
			MinDeposit:            100,
			QuorumFloor:           1000,
			SubmissionFee:         50,
			InitialVotingPeriod:   24 * time.Hour,
			ChallengeWindowPeriod: 12 * time.Hour,
			ChallengeVotingPeriod: 24 * time.Hour,
			LameDuckPeriod:        6 * time.Hour,
		},
		Applications: store,
		Rounds:       store,
		Deposits:     store,
		Settings:     store,
		Annotations:  store,
		Asset:        asset,
		Registry:     registry,
		Addresses:    evmadapter.AddressCodec{},
		Idempotency:  store,
		Outbox:       store,
		Clock:        clock,
		IDGen:        store,
		Locks:        commands.NewCandidateLocks(),
	}
	return engineFixture{uc: uc, store: store, asset: asset, registry: registry, clock: clock}
}

func (f engineFixture) mintDefaults() {
	f.asset.Mint(applicantAddr, 1_000)
	f.asset.Mint(supporterAddr, 5_000)
	f.asset.Mint(opposerAddr, 5_000)
	f.asset.Mint(challengerAddr, 5_000)
}

func (f engineFixture) totalBalance(t *testing.T) uint64 {
	t.Helper()
	holders := []string{applicantAddr, supporterAddr, opposerAddr, challengerAddr, escrowAddr}
	var total uint64
	for _, holder := range holders {
		balance, err := f.asset.BalanceOf(context.Background(), holder)
		if err != nil {
			t.Fatalf("balance of %s failed: %v", holder, err)
		}
		total += balance
	}
	return total
}

func mustSubmit(t *testing.T, f engineFixture, idempotencyKey string) commands.SubmitApplicationResult {
	t.Helper()
	result, err := f.uc.SubmitApplication(context.Background(), commands.SubmitApplicationCommand{
		Caller:         applicantAddr,
		Candidate:      candidateAddr,
		TypeTag:        "factory.amm.v2",
		Title:          "AMM factory",
		DisplayTitle:   "AMM Factory v2",
		MetadataURI:    "ipfs://bafkreib",
		CapabilityTags: []string{"amm", "concentrated"},
		FeeOffered:     50,
		IdempotencyKey: idempotencyKey,
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	return result
}

func mustDeposit(t *testing.T, f engineFixture, participant string, side string, amount uint64, key string) commands.PlaceDepositResult {
	t.Helper()
	parsed, ok := entities.ParseSide(side)
	if !ok {
		t.Fatalf("bad side %q", side)
	}
	result, err := f.uc.PlaceDeposit(context.Background(), commands.PlaceDepositCommand{
		Participant:    participant,
		Candidate:      candidateAddr,
		Side:           parsed,
		Amount:         amount,
		IdempotencyKey: key,
	})
	if err != nil {
		t.Fatalf("deposit %s/%s failed: %v", participant, side, err)
	}
	return result
}

// driveToChallengeWindow runs a clean round 0: submit, 800 support vs 300
// oppose, then finalize after the deadline. Leaves the application in the
// challenge window with an 800 cumulative support requirement.
func driveToChallengeWindow(t *testing.T, f engineFixture) commands.FinalizeRoundResult {
	t.Helper()
	mustSubmit(t, f, "idem-submit-1")
	f.clock.now = f.clock.now.Add(time.Hour)
	mustDeposit(t, f, supporterAddr, "support", 800, "idem-dep-support-1")
	mustDeposit(t, f, opposerAddr, "oppose", 300, "idem-dep-oppose-1")

	f.clock.now = f.clock.now.Add(24 * time.Hour)
	result, err := f.uc.FinalizeRound(context.Background(), commands.FinalizeRoundCommand{Candidate: candidateAddr})
	if err != nil {
		t.Fatalf("finalize round 0 failed: %v", err)
	}
	if !result.SupportWon {
		t.Fatalf("expected support to win round 0")
	}
	return result
}
