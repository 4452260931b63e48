package entities

import (
	"strings"
	"time"
)

// Side is the direction of an escrowed vote deposit.
type Side string

const (
	SideSupport Side = "support"
	SideOppose  Side = "oppose"
)

// ParseSide normalizes request input into a known side.
func ParseSide(raw string) (Side, bool) {
	switch Side(strings.ToLower(strings.TrimSpace(raw))) {
	case SideSupport:
		return SideSupport, true
	case SideOppose:
		return SideOppose, true
	default:
		return "", false
	}
}

// VoteRound is one deposit-weighted voting window. Round 0 opens at
// submission; every later round opens with a challenge whose stake is
// booked as the challenger's oppose deposit.
type VoteRound struct {
	ApplicationID   string
	RoundIndex      int
	SupportTotal    uint64
	OpposeTotal     uint64
	StartedAt       time.Time
	EndsAt          time.Time
	Challenger      string
	ChallengerStake uint64
	Resolved        bool
	SupportWon      bool
	UpdatedAt       time.Time
}

// Turnout is the combined escrow committed to both sides. The second
// return is false when the sum would overflow.
func (r VoteRound) Turnout() (uint64, bool) {
	return AddAmount(r.SupportTotal, r.OpposeTotal)
}

// SupportLeads applies the strict-majority rule: ties resolve to oppose.
func (r VoteRound) SupportLeads() bool {
	return r.SupportTotal > r.OpposeTotal
}

// AcceptsDeposits reports whether new escrow may still enter the round.
func (r VoteRound) AcceptsDeposits(now time.Time) bool {
	return !r.Resolved && !now.UTC().After(r.EndsAt.UTC())
}
