package workers_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	evmadapter "solon/contexts/registry-governance/admission-engine/adapters/evm"
	"solon/contexts/registry-governance/admission-engine/adapters/memory"
	"solon/contexts/registry-governance/admission-engine/application/commands"
	"solon/contexts/registry-governance/admission-engine/application/workers"
	"solon/contexts/registry-governance/admission-engine/domain/entities"
	"solon/contexts/registry-governance/admission-engine/ports"
)

const (
	sweepApplicant = "0x1000000000000000000000000000000000000001"
	sweepCandidate = "0x2000000000000000000000000000000000000002"
	sweepSupporter = "0x3000000000000000000000000000000000000003"
	sweepOpposer   = "0x4000000000000000000000000000000000000004"
	sweepEscrow    = "0x7000000000000000000000000000000000000007"
	sweepOwner     = "0x9000000000000000000000000000000000000009"
)

type stepClock struct {
	now time.Time
}

func (c *stepClock) Now() time.Time {
	return c.now
}

type sweepFixture struct {
	uc       commands.AdmissionUseCase
	store    *memory.Store
	asset    *memory.AssetLedger
	registry *memory.RegistryRecorder
	clock    *stepClock
}

func newSweepFixture(start time.Time) sweepFixture {
	store := memory.NewStore()
	asset := memory.NewAssetLedger(sweepEscrow)
	registry := memory.NewRegistryRecorder()
	clock := &stepClock{now: start}

	uc := commands.AdmissionUseCase{
		Policy: ports.Policy{
			Kind:                  entities.KindFactory,
			Owner:                 sweepOwner,
			EscrowAccount:         sweepEscrow,
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
	asset.Mint(sweepApplicant, 1_000)
	asset.Mint(sweepSupporter, 5_000)
	asset.Mint(sweepOpposer, 5_000)
	return sweepFixture{uc: uc, store: store, asset: asset, registry: registry, clock: clock}
}

func (f sweepFixture) submitAndVote(t *testing.T, supportAmount, opposeAmount uint64) {
	t.Helper()
	ctx := context.Background()
	if _, err := f.uc.SubmitApplication(ctx, commands.SubmitApplicationCommand{
		Caller:         sweepApplicant,
		Candidate:      sweepCandidate,
		TypeTag:        "factory.amm.v2",
		Title:          "AMM factory",
		FeeOffered:     50,
		IdempotencyKey: "idem-submit",
	}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	f.clock.now = f.clock.now.Add(time.Hour)
	if supportAmount > 0 {
		if _, err := f.uc.PlaceDeposit(ctx, commands.PlaceDepositCommand{
			Participant:    sweepSupporter,
			Candidate:      sweepCandidate,
			Side:           entities.SideSupport,
			Amount:         supportAmount,
			IdempotencyKey: "idem-dep-support",
		}); err != nil {
			t.Fatalf("support deposit failed: %v", err)
		}
	}
	if opposeAmount > 0 {
		if _, err := f.uc.PlaceDeposit(ctx, commands.PlaceDepositCommand{
			Participant:    sweepOpposer,
			Candidate:      sweepCandidate,
			Side:           entities.SideOppose,
			Amount:         opposeAmount,
			IdempotencyKey: "idem-dep-oppose",
		}); err != nil {
			t.Fatalf("oppose deposit failed: %v", err)
		}
	}
}

func (f sweepFixture) phase(t *testing.T) entities.Phase {
	t.Helper()
	app, err := f.store.GetApplication(context.Background(), entities.KindFactory, sweepCandidate)
	if err != nil {
		t.Fatalf("application lookup failed: %v", err)
	}
	return app.Phase
}

func TestPhaseAdvancerDrivesRipeTransitions(t *testing.T) {
	f := newSweepFixture(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	f.submitAndVote(t, 800, 300)
	ctx := context.Background()

	sweeper := workers.PhaseAdvancer{
		Engine:       f.uc,
		Applications: f.store,
		Clock:        f.clock,
	}

	// Not ripe yet: the sweep is a no-op.
	if err := sweeper.RunOnce(ctx); err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if got := f.phase(t); got != entities.PhaseInitialVoting {
		t.Fatalf("unripe application must not move, got %s", got)
	}

	f.clock.now = f.clock.now.Add(24 * time.Hour)
	if err := sweeper.RunOnce(ctx); err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if got := f.phase(t); got != entities.PhaseChallengeWindow {
		t.Fatalf("expected finalize into challenge_window, got %s", got)
	}

	f.clock.now = f.clock.now.Add(13 * time.Hour)
	if err := sweeper.RunOnce(ctx); err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if got := f.phase(t); got != entities.PhaseLameDuck {
		t.Fatalf("expected lame_duck after the window, got %s", got)
	}

	f.clock.now = f.clock.now.Add(7 * time.Hour)
	if err := sweeper.RunOnce(ctx); err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if got := f.phase(t); got != entities.PhaseApproved {
		t.Fatalf("expected approved after the grace period, got %s", got)
	}
	if entries := f.registry.Entries(); len(entries) != 1 || entries[0].Candidate != sweepCandidate {
		t.Fatalf("sweeper must drive the registry push, entries %+v", entries)
	}

	// Terminal applications fall out of the ripe listing.
	f.clock.now = f.clock.now.Add(time.Hour)
	if err := sweeper.RunOnce(ctx); err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
}

func TestPhaseAdvancerLeavesStalledApplications(t *testing.T) {
	f := newSweepFixture(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	f.submitAndVote(t, 500, 0)
	ctx := context.Background()

	sweeper := workers.PhaseAdvancer{
		Engine:       f.uc,
		Applications: f.store,
		Clock:        f.clock,
	}

	f.clock.now = f.clock.now.Add(25 * time.Hour)
	if err := sweeper.RunOnce(ctx); err != nil {
		t.Fatalf("a quorum stall must not fail the sweep: %v", err)
	}
	if got := f.phase(t); got != entities.PhaseInitialVoting {
		t.Fatalf("stalled application must stay put, got %s", got)
	}

	// More support arriving later unblocks nothing until someone deposits:
	// the round is already past its deadline and closed to new escrow.
	if _, err := f.uc.PlaceDeposit(ctx, commands.PlaceDepositCommand{
		Participant:    sweepSupporter,
		Candidate:      sweepCandidate,
		Side:           entities.SideSupport,
		Amount:         600,
		IdempotencyKey: "idem-late",
	}); err == nil {
		t.Fatalf("expected the closed round to reject new deposits")
	}
}

type capturePublisher struct {
	events  []ports.EventEnvelope
	failAll bool
}

func (p *capturePublisher) PublishAdmissionEvent(_ context.Context, event ports.EventEnvelope) error {
	if p.failAll {
		return errors.New("broker unavailable")
	}
	p.events = append(p.events, event)
	return nil
}

func TestOutboxRelayPublishesAndAcks(t *testing.T) {
	f := newSweepFixture(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	f.submitAndVote(t, 800, 300)
	ctx := context.Background()

	publisher := &capturePublisher{}
	relay := workers.OutboxRelay{
		Outbox:    f.store,
		Publisher: publisher,
		Clock:     f.clock,
	}

	if err := relay.RunOnce(ctx); err != nil {
		t.Fatalf("relay failed: %v", err)
	}
	if len(publisher.events) != 3 {
		t.Fatalf("expected submit and two deposits published, got %d", len(publisher.events))
	}
	if publisher.events[0].EventType != commands.EventTypeSubmitted {
		t.Fatalf("expected commit order, first event %s", publisher.events[0].EventType)
	}

	pending, err := f.store.ListPendingOutbox(ctx, 10)
	if err != nil {
		t.Fatalf("outbox listing failed: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("published rows must be acknowledged, %d still pending", len(pending))
	}

	if err := relay.RunOnce(ctx); err != nil {
		t.Fatalf("relay failed: %v", err)
	}
	if len(publisher.events) != 3 {
		t.Fatalf("second pass must publish nothing new, got %d", len(publisher.events))
	}
}

func TestOutboxRelayKeepsRowsOnPublishFailure(t *testing.T) {
	f := newSweepFixture(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	f.submitAndVote(t, 800, 0)
	ctx := context.Background()

	publisher := &capturePublisher{failAll: true}
	relay := workers.OutboxRelay{
		Outbox:    f.store,
		Publisher: publisher,
		Clock:     f.clock,
	}

	if err := relay.RunOnce(ctx); err == nil {
		t.Fatalf("expected the broker failure to surface")
	}

	pending, err := f.store.ListPendingOutbox(ctx, 10)
	if err != nil {
		t.Fatalf("outbox listing failed: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("failed publishes must stay pending, got %d", len(pending))
	}
}

type stubSubscriber struct {
	group    string
	handlers map[string]func(context.Context, ports.EventEnvelope) error
}

func (s *stubSubscriber) Subscribe(_ context.Context, topic string, consumerGroup string, handler func(context.Context, ports.EventEnvelope) error) error {
	if s.handlers == nil {
		s.handlers = make(map[string]func(context.Context, ports.EventEnvelope) error)
	}
	s.group = consumerGroup
	s.handlers[topic] = handler
	return nil
}

type stubNotifier struct {
	messages []string
	fail     bool
}

func (n *stubNotifier) Announce(_ context.Context, message string) error {
	if n.fail {
		return errors.New("channel gone")
	}
	n.messages = append(n.messages, message)
	return nil
}

func registeredEnvelope(t *testing.T) ports.EventEnvelope {
	t.Helper()
	data, err := json.Marshal(map[string]any{
		"kind":      "factory",
		"candidate": sweepCandidate,
		"phase":     "approved",
	})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	return ports.EventEnvelope{
		EventID:   "evt-1",
		EventType: commands.EventTypeRegistered,
		Data:      data,
	}
}

func TestGovernanceAnnouncerSubscribesAndFormats(t *testing.T) {
	subscriber := &stubSubscriber{}
	notifier := &stubNotifier{}
	announcer := workers.GovernanceAnnouncer{
		Subscriber: subscriber,
		Notifier:   notifier,
	}
	ctx := context.Background()

	if err := announcer.Start(ctx); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if len(subscriber.handlers) != 4 {
		t.Fatalf("expected four milestone topics, got %d", len(subscriber.handlers))
	}
	if subscriber.group != "admission-engine-announcer-cg" {
		t.Fatalf("expected the default consumer group, got %s", subscriber.group)
	}
	for _, topic := range []string{
		commands.EventTypeSubmitted,
		commands.EventTypeChallenged,
		commands.EventTypeRoundFinalized,
		commands.EventTypeRegistered,
	} {
		if subscriber.handlers[topic] == nil {
			t.Fatalf("missing handler for %s", topic)
		}
	}

	handler := subscriber.handlers[commands.EventTypeRegistered]
	if err := handler(ctx, registeredEnvelope(t)); err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if len(notifier.messages) != 1 {
		t.Fatalf("expected one announcement, got %d", len(notifier.messages))
	}
	if !strings.Contains(notifier.messages[0], sweepCandidate) {
		t.Fatalf("announcement must name the candidate: %q", notifier.messages[0])
	}
	if !strings.Contains(notifier.messages[0], "registered") {
		t.Fatalf("announcement must describe the milestone: %q", notifier.messages[0])
	}

	// Unknown event types are dropped quietly.
	unknown := registeredEnvelope(t)
	unknown.EventType = "admission.settings_updated"
	if err := handler(ctx, unknown); err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if len(notifier.messages) != 1 {
		t.Fatalf("unhandled event types must not announce, got %d", len(notifier.messages))
	}
}

func TestGovernanceAnnouncerToleratesNotifierFailure(t *testing.T) {
	subscriber := &stubSubscriber{}
	notifier := &stubNotifier{fail: true}
	announcer := workers.GovernanceAnnouncer{
		Subscriber: subscriber,
		Notifier:   notifier,
	}
	ctx := context.Background()

	if err := announcer.Start(ctx); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	handler := subscriber.handlers[commands.EventTypeRegistered]
	if err := handler(ctx, registeredEnvelope(t)); err != nil {
		t.Fatalf("a failed notice must never bounce the event: %v", err)
	}
}

func TestGovernanceAnnouncerDisabled(t *testing.T) {
	subscriber := &stubSubscriber{}
	announcer := workers.GovernanceAnnouncer{
		Subscriber: subscriber,
		Notifier:   &stubNotifier{},
		Disabled:   true,
	}

	if err := announcer.Start(context.Background()); err != nil {
		t.Fatalf("disabled start failed: %v", err)
	}
	if len(subscriber.handlers) != 0 {
		t.Fatalf("disabled announcer must not subscribe, got %d topics", len(subscriber.handlers))
	}
}
