package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	domainerrors "solon/contexts/registry-governance/admission-engine/domain/errors"
	"solon/contexts/registry-governance/admission-engine/ports"
)

const moduleName = "registry-governance/admission-engine"

// AdmissionUseCase orchestrates deposit-weighted admission voting for one
// track (factory or vault): submission, escrow deposits, round finalization,
// challenges, the lame-duck grace window, downstream registration, and
// post-resolution withdrawals. Mutating commands are replay-safe via
// idempotency key + request hash validation and serialized per candidate.
type AdmissionUseCase struct {
	Policy         ports.Policy
	Applications   ports.ApplicationRepository
	Rounds         ports.RoundRepository
	Deposits       ports.DepositLedger
	Settings       ports.SettingsRepository
	Annotations    ports.AnnotationLog
	Asset          ports.AssetLedger
	Registry       ports.RegistryFinalizer
	Addresses      ports.AddressCodec
	Idempotency    ports.IdempotencyStore
	Outbox         ports.OutboxWriter
	Clock          ports.Clock
	IDGen          ports.IDGenerator
	IdempotencyTTL time.Duration
	Locks          *CandidateLocks
	Logger         *slog.Logger
}

// CandidateLocks serializes command execution per candidate so concurrent
// deposits, challenges, and withdrawals against the same application cannot
// interleave between read and write.
type CandidateLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewCandidateLocks() *CandidateLocks {
	return &CandidateLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *CandidateLocks) lock(key string) func() {
	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// lockCandidate acquires the per-candidate mutex and returns its release.
// Locks is optional for pure read/test wiring, so nil is treated as no-op.
func (uc AdmissionUseCase) lockCandidate(candidate string) func() {
	if uc.Locks == nil {
		return func() {}
	}
	return uc.Locks.lock(string(uc.Policy.Kind) + "/" + candidate)
}

func (uc AdmissionUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

func (uc AdmissionUseCase) idempotencyTTL() time.Duration {
	if uc.IdempotencyTTL > 0 {
		return uc.IdempotencyTTL
	}
	return 24 * time.Hour
}

// normalizeAddress canonicalizes a chain address for storage and comparison.
func (uc AdmissionUseCase) normalizeAddress(raw string) (string, error) {
	if uc.Addresses == nil {
		return "", domainerrors.ErrInvalidAddress
	}
	normalized, ok := uc.Addresses.Normalize(raw)
	if !ok {
		return "", domainerrors.ErrInvalidAddress
	}
	return normalized, nil
}

// replayIdempotent returns the stored response when the key was seen with an
// identical request, ErrIdempotencyConflict when it was seen with a different
// one, and found=false when the command should run.
func (uc AdmissionUseCase) replayIdempotent(
	ctx context.Context,
	key string,
	requestHash string,
	now time.Time,
	out any,
) (bool, error) {
	record, found, err := uc.Idempotency.GetRecord(ctx, key, now)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}
	if record.RequestHash != requestHash {
		return false, domainerrors.ErrIdempotencyConflict
	}
	if err := json.Unmarshal(record.ResponsePayload, out); err != nil {
		return false, err
	}
	return true, nil
}

func (uc AdmissionUseCase) storeIdempotent(
	ctx context.Context,
	key string,
	operation string,
	requestHash string,
	now time.Time,
	response any,
) error {
	payload, err := json.Marshal(response)
	if err != nil {
		return err
	}
	return uc.Idempotency.PutRecord(ctx, ports.IdempotencyRecord{
		Key:             key,
		Operation:       operation,
		RequestHash:     requestHash,
		ResponsePayload: payload,
		ExpiresAt:       now.Add(uc.idempotencyTTL()),
	})
}

// hashPayload builds the canonical request hash for idempotency records.
func hashPayload(fields map[string]any) string {
	payload, err := json.Marshal(fields)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
