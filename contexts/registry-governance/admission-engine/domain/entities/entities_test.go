package entities_test

import (
	"math"
	"testing"
	"time"

	"solon/contexts/registry-governance/admission-engine/domain/entities"
)

func TestParseKind(t *testing.T) {
	cases := []struct {
		raw  string
		want entities.Kind
		ok   bool
	}{
		{"factory", entities.KindFactory, true},
		{"VAULT", entities.KindVault, true},
		{"  Factory ", entities.KindFactory, true},
		{"token", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := entities.ParseKind(tc.raw)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ParseKind(%q) = %q, %v; want %q, %v", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestParseSide(t *testing.T) {
	cases := []struct {
		raw  string
		want entities.Side
		ok   bool
	}{
		{"support", entities.SideSupport, true},
		{"OPPOSE", entities.SideOppose, true},
		{" Support ", entities.SideSupport, true},
		{"abstain", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := entities.ParseSide(tc.raw)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ParseSide(%q) = %q, %v; want %q, %v", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestPhasePredicates(t *testing.T) {
	cases := []struct {
		phase        entities.Phase
		terminal     bool
		voting       bool
		challengeble bool
	}{
		{entities.PhaseInitialVoting, false, true, false},
		{entities.PhaseChallengeWindow, false, false, true},
		{entities.PhaseChallengeVoting, false, true, false},
		{entities.PhaseLameDuck, false, false, true},
		{entities.PhaseApproved, true, false, false},
		{entities.PhaseRejected, true, false, false},
	}
	for _, tc := range cases {
		if got := tc.phase.Terminal(); got != tc.terminal {
			t.Fatalf("%s.Terminal() = %v, want %v", tc.phase, got, tc.terminal)
		}
		if got := tc.phase.Voting(); got != tc.voting {
			t.Fatalf("%s.Voting() = %v, want %v", tc.phase, got, tc.voting)
		}
		if got := tc.phase.Challengeable(); got != tc.challengeble {
			t.Fatalf("%s.Challengeable() = %v, want %v", tc.phase, got, tc.challengeble)
		}
	}
}

func TestAddAmount(t *testing.T) {
	if sum, ok := entities.AddAmount(700, 300); !ok || sum != 1000 {
		t.Fatalf("AddAmount(700, 300) = %d, %v", sum, ok)
	}
	if sum, ok := entities.AddAmount(math.MaxUint64, 0); !ok || sum != math.MaxUint64 {
		t.Fatalf("AddAmount(max, 0) = %d, %v", sum, ok)
	}
	if _, ok := entities.AddAmount(math.MaxUint64, 1); ok {
		t.Fatalf("AddAmount must refuse to overflow")
	}
	if _, ok := entities.AddAmount(math.MaxUint64-5, 10); ok {
		t.Fatalf("AddAmount must refuse to overflow")
	}
}

func TestRoundArithmetic(t *testing.T) {
	round := entities.VoteRound{SupportTotal: 600, OpposeTotal: 600}
	if round.SupportLeads() {
		t.Fatalf("a tie must not count as a support lead")
	}
	round.SupportTotal = 601
	if !round.SupportLeads() {
		t.Fatalf("601 vs 600 is a support lead")
	}

	turnout, ok := round.Turnout()
	if !ok || turnout != 1201 {
		t.Fatalf("Turnout() = %d, %v", turnout, ok)
	}
	round.SupportTotal = math.MaxUint64
	round.OpposeTotal = 1
	if _, ok := round.Turnout(); ok {
		t.Fatalf("turnout overflow must be reported")
	}
}

func TestRoundAcceptsDeposits(t *testing.T) {
	endsAt := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)
	round := entities.VoteRound{EndsAt: endsAt}

	if !round.AcceptsDeposits(endsAt.Add(-time.Minute)) {
		t.Fatalf("an open round accepts deposits before the deadline")
	}
	if !round.AcceptsDeposits(endsAt) {
		t.Fatalf("the deadline instant itself is still inside the round")
	}
	if round.AcceptsDeposits(endsAt.Add(time.Second)) {
		t.Fatalf("past the deadline the round is closed")
	}

	round.Resolved = true
	if round.AcceptsDeposits(endsAt.Add(-time.Hour)) {
		t.Fatalf("a resolved round never accepts deposits")
	}
}

func TestApplicationDeadlines(t *testing.T) {
	deadline := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)
	app := entities.Application{RoundCount: 3, PhaseDeadline: &deadline}

	if app.CurrentRound() != 2 {
		t.Fatalf("CurrentRound() = %d, want 2", app.CurrentRound())
	}
	if app.DeadlinePassed(deadline) {
		t.Fatalf("the deadline instant has not passed yet")
	}
	if !app.DeadlinePassed(deadline.Add(time.Second)) {
		t.Fatalf("one second later the deadline has passed")
	}

	app.PhaseDeadline = nil
	if app.DeadlinePassed(deadline.Add(24 * time.Hour)) {
		t.Fatalf("an application without a deadline never ripens")
	}
}
