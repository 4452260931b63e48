package entities

import "time"

// Annotation is one append-only audit line attached to an application.
// Sequence numbers are assigned by the log and strictly increase per
// application.
type Annotation struct {
	Seq           uint64
	ApplicationID string
	Kind          Kind
	Candidate     string
	RoundIndex    int
	Action        string
	Actor         string
	Note          string
	CreatedAt     time.Time
}

// Settings carries the owner-managed chain addresses for one track.
type Settings struct {
	Kind            Kind
	AssetAddress    string
	RegistryAddress string
	UpdatedAt       time.Time
}
