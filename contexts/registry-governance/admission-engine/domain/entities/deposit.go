package entities

import "time"

// VoteDeposit is one participant's accumulated escrow on one side of one
// round. Rows are accumulated in place by repeat deposits and are never
// deleted; withdrawal only flips the Withdrawn flag so the trail stays
// auditable after the application resolves.
type VoteDeposit struct {
	ApplicationID string
	Participant   string
	RoundIndex    int
	Side          Side
	Amount        uint64
	Withdrawn     bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
