package entities

import (
	"strings"
	"time"
)

// Kind discriminates the two admission tracks served by the engine.
type Kind string

const (
	KindFactory Kind = "factory"
	KindVault   Kind = "vault"
)

// ParseKind normalizes route or config input into a known track.
func ParseKind(raw string) (Kind, bool) {
	switch Kind(strings.ToLower(strings.TrimSpace(raw))) {
	case KindFactory:
		return KindFactory, true
	case KindVault:
		return KindVault, true
	default:
		return "", false
	}
}

// Phase is the lifecycle position of an admission application.
type Phase string

const (
	PhaseInitialVoting   Phase = "initial_voting"
	PhaseChallengeWindow Phase = "challenge_window"
	PhaseChallengeVoting Phase = "challenge_voting"
	PhaseLameDuck        Phase = "lame_duck"
	PhaseApproved        Phase = "approved"
	PhaseRejected        Phase = "rejected"
)

// Terminal reports whether the application has resolved for good.
func (p Phase) Terminal() bool {
	return p == PhaseApproved || p == PhaseRejected
}

// Voting reports whether deposits may be placed in the current round.
func (p Phase) Voting() bool {
	return p == PhaseInitialVoting || p == PhaseChallengeVoting
}

// Challengeable reports whether a provisional approval can still be contested.
// The guard is the phase alone: a ripe but not-yet-advanced window still
// accepts challenges until the next transition actually executes.
func (p Phase) Challengeable() bool {
	return p == PhaseChallengeWindow || p == PhaseLameDuck
}

// Application tracks one candidate address through deposit-weighted admission
// voting. Exactly one non-terminal application exists per (kind, candidate);
// a terminal record may be replaced by a fresh submission once every deposit
// escrowed under it has been withdrawn.
type Application struct {
	ApplicationID             string
	Kind                      Kind
	Candidate                 string
	Applicant                 string
	TypeTag                   string
	Title                     string
	DisplayTitle              string
	MetadataURI               string
	CapabilityTags            []string
	Phase                     Phase
	PhaseDeadline             *time.Time
	CumulativeSupportRequired uint64
	RoundCount                int
	SubmissionFeePaid         uint64
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
	ResolvedAt                *time.Time
}

// Terminal reports whether the record reached approved/rejected.
func (a Application) Terminal() bool {
	return a.Phase.Terminal()
}

// CurrentRound is the zero-based index of the latest vote round.
func (a Application) CurrentRound() int {
	return a.RoundCount - 1
}

// DeadlinePassed reports whether the running phase timer elapsed at now.
// Applications without a deadline (terminal records) never ripen.
func (a Application) DeadlinePassed(now time.Time) bool {
	return a.PhaseDeadline != nil && now.UTC().After(a.PhaseDeadline.UTC())
}
