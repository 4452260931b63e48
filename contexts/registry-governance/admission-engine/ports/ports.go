package ports

import (
	"context"
	"time"

	"solon/contexts/registry-governance/admission-engine/domain/entities"
	contractsv1 "solon/contracts/gen/events/v1"
)

// Policy fixes the per-track admission parameters at boot. Amounts are in
// asset base units; the escrow account is the engine's own asset holding.
type Policy struct {
	Kind                  entities.Kind
	Owner                 string
	EscrowAccount         string
	MinDeposit            uint64
	QuorumFloor           uint64
	SubmissionFee         uint64
	InitialVotingPeriod   time.Duration
	ChallengeWindowPeriod time.Duration
	ChallengeVotingPeriod time.Duration
	LameDuckPeriod        time.Duration
}

// ApplicationRepository stores the current admission record per candidate.
// ReplaceApplication swaps a terminal record for a fresh submission in one
// write; historical rounds and deposits keep the previous application ID.
type ApplicationRepository interface {
	CreateApplication(ctx context.Context, application entities.Application) error
	ReplaceApplication(ctx context.Context, previousID string, application entities.Application) error
	UpdateApplication(ctx context.Context, application entities.Application) error
	GetApplication(ctx context.Context, kind entities.Kind, candidate string) (entities.Application, error)
	ListRipeApplications(ctx context.Context, kind entities.Kind, now time.Time, limit int) ([]entities.Application, error)
}

// RoundRepository stores per-application vote rounds keyed by index.
type RoundRepository interface {
	SaveRound(ctx context.Context, round entities.VoteRound) error
	GetRound(ctx context.Context, applicationID string, roundIndex int) (entities.VoteRound, error)
	ListRounds(ctx context.Context, applicationID string) ([]entities.VoteRound, error)
}

// DepositLedger stores voter escrow rows. Rows accumulate in place and are
// never deleted; withdrawal flips the flag only.
type DepositLedger interface {
	SaveDeposit(ctx context.Context, deposit entities.VoteDeposit) error
	GetDeposit(ctx context.Context, applicationID string, roundIndex int, participant string) (entities.VoteDeposit, bool, error)
	ListDepositsByParticipant(ctx context.Context, applicationID string, participant string) ([]entities.VoteDeposit, error)
	ListDepositsByApplication(ctx context.Context, applicationID string) ([]entities.VoteDeposit, error)
	HasUnwithdrawnDeposits(ctx context.Context, applicationID string) (bool, error)
}

// SettingsRepository stores owner-managed per-track chain addresses.
type SettingsRepository interface {
	GetSettings(ctx context.Context, kind entities.Kind) (entities.Settings, error)
	PutSettings(ctx context.Context, settings entities.Settings) error
}

// AnnotationLog is the append-only audit trail for admission decisions.
type AnnotationLog interface {
	AppendAnnotation(ctx context.Context, annotation entities.Annotation) error
	ListAnnotations(ctx context.Context, applicationID string, afterSeq uint64, limit int) ([]entities.Annotation, error)
}

// AssetLedger moves the deposit asset between participants and the engine
// escrow. Transfer spends from the engine's own escrow holding; TransferFrom
// pulls pre-approved funds from a participant.
type AssetLedger interface {
	BalanceOf(ctx context.Context, holder string) (uint64, error)
	Transfer(ctx context.Context, to string, amount uint64) error
	TransferFrom(ctx context.Context, from string, to string, amount uint64) error
}

// RegistryEntry is the payload pushed to the downstream registry on approval.
type RegistryEntry struct {
	Candidate      string
	TypeTag        string
	Title          string
	DisplayTitle   string
	MetadataURI    string
	CapabilityTags []string
	Creator        string
}

// RegistryFinalizer performs the one-shot downstream registration of an
// approved candidate.
type RegistryFinalizer interface {
	RegisterApproved(ctx context.Context, entry RegistryEntry) error
}

// AddressCodec validates and canonicalizes chain account addresses.
type AddressCodec interface {
	Normalize(raw string) (string, bool)
}

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts UUID generation for applications and events.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// IdempotencyRecord stores request hash and previous response payload.
type IdempotencyRecord struct {
	Key             string
	Operation       string
	RequestHash     string
	ResponsePayload []byte
	ExpiresAt       time.Time
}

// IdempotencyStore guarantees replay/conflict behavior for mutating endpoints.
type IdempotencyStore interface {
	GetRecord(ctx context.Context, key string, now time.Time) (IdempotencyRecord, bool, error)
	PutRecord(ctx context.Context, record IdempotencyRecord) error
}

// EventEnvelope reuses the canonical cross-runtime envelope contract.
type EventEnvelope = contractsv1.Envelope

// OutboxWriter appends command-side events for asynchronous relay.
type OutboxWriter interface {
	AppendOutbox(ctx context.Context, envelope EventEnvelope) error
}

// OutboxMessage represents a pending relay message.
type OutboxMessage struct {
	OutboxID  string
	EventType string
	Payload   []byte
	CreatedAt time.Time
}

// OutboxRepository supports worker relay polling and acknowledgement.
type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

// EventPublisher emits admission events to the event bus adapter.
type EventPublisher interface {
	PublishAdmissionEvent(ctx context.Context, event EventEnvelope) error
}

// EventSubscriber attaches consumer-group handlers to admission topics.
type EventSubscriber interface {
	Subscribe(ctx context.Context, topic string, consumerGroup string, handler func(context.Context, EventEnvelope) error) error
}

// Announcer pushes human-readable admission notices to an external channel.
type Announcer interface {
	Announce(ctx context.Context, message string) error
}
