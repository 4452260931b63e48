package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"solon/contexts/registry-governance/admission-engine/domain/entities"
	domainerrors "solon/contexts/registry-governance/admission-engine/domain/errors"
	"solon/contexts/registry-governance/admission-engine/ports"

	"github.com/google/uuid"
)

// Store is an in-memory adapter implementing the engine's storage ports.
// It is intended for tests and local development wiring.
type Store struct {
	mu sync.RWMutex

	applications map[string]entities.Application
	rounds       map[string]entities.VoteRound
	deposits     map[string]entities.VoteDeposit
	settings     map[entities.Kind]entities.Settings

	annotations   map[string][]entities.Annotation
	annotationSeq map[string]uint64

	idempotency map[string]ports.IdempotencyRecord

	outbox      map[string]outboxRow
	outboxOrder []string
}

type outboxRow struct {
	ports.OutboxMessage
	PublishedAt *time.Time
}

// NewStore builds an empty in-memory adapter.
func NewStore() *Store {
	return &Store{
		applications:  make(map[string]entities.Application),
		rounds:        make(map[string]entities.VoteRound),
		deposits:      make(map[string]entities.VoteDeposit),
		settings:      make(map[entities.Kind]entities.Settings),
		annotations:   make(map[string][]entities.Annotation),
		annotationSeq: make(map[string]uint64),
		idempotency:   make(map[string]ports.IdempotencyRecord),
		outbox:        make(map[string]outboxRow),
	}
}

func applicationKey(kind entities.Kind, candidate string) string {
	return string(kind) + "/" + candidate
}

func roundKey(applicationID string, roundIndex int) string {
	return fmt.Sprintf("%s/%d", applicationID, roundIndex)
}

func depositKey(applicationID string, roundIndex int, participant string) string {
	return fmt.Sprintf("%s/%d/%s", applicationID, roundIndex, participant)
}

func (s *Store) CreateApplication(_ context.Context, application entities.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := applicationKey(application.Kind, application.Candidate)
	if _, ok := s.applications[key]; ok {
		return domainerrors.ErrApplicationExists
	}
	s.applications[key] = cloneApplication(application)
	return nil
}

func (s *Store) ReplaceApplication(_ context.Context, previousID string, application entities.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := applicationKey(application.Kind, application.Candidate)
	current, ok := s.applications[key]
	if !ok || current.ApplicationID != previousID {
		return domainerrors.ErrApplicationNotFound
	}
	s.applications[key] = cloneApplication(application)
	return nil
}

func (s *Store) UpdateApplication(_ context.Context, application entities.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := applicationKey(application.Kind, application.Candidate)
	current, ok := s.applications[key]
	if !ok || current.ApplicationID != application.ApplicationID {
		return domainerrors.ErrApplicationNotFound
	}
	s.applications[key] = cloneApplication(application)
	return nil
}

func (s *Store) GetApplication(_ context.Context, kind entities.Kind, candidate string) (entities.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	application, ok := s.applications[applicationKey(kind, candidate)]
	if !ok {
		return entities.Application{}, domainerrors.ErrApplicationNotFound
	}
	return cloneApplication(application), nil
}

func (s *Store) ListRipeApplications(_ context.Context, kind entities.Kind, now time.Time, limit int) ([]entities.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ripe []entities.Application
	for _, application := range s.applications {
		if application.Kind != kind || application.Terminal() {
			continue
		}
		if application.DeadlinePassed(now) {
			ripe = append(ripe, cloneApplication(application))
		}
	}
	sort.Slice(ripe, func(i, j int) bool {
		if ripe[i].PhaseDeadline.Equal(*ripe[j].PhaseDeadline) {
			return ripe[i].Candidate < ripe[j].Candidate
		}
		return ripe[i].PhaseDeadline.Before(*ripe[j].PhaseDeadline)
	})
	if limit > 0 && len(ripe) > limit {
		ripe = ripe[:limit]
	}
	return ripe, nil
}

func (s *Store) SaveRound(_ context.Context, round entities.VoteRound) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rounds[roundKey(round.ApplicationID, round.RoundIndex)] = round
	return nil
}

func (s *Store) GetRound(_ context.Context, applicationID string, roundIndex int) (entities.VoteRound, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	round, ok := s.rounds[roundKey(applicationID, roundIndex)]
	if !ok {
		return entities.VoteRound{}, domainerrors.ErrRoundNotFound
	}
	return round, nil
}

func (s *Store) ListRounds(_ context.Context, applicationID string) ([]entities.VoteRound, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rounds []entities.VoteRound
	for _, round := range s.rounds {
		if round.ApplicationID == applicationID {
			rounds = append(rounds, round)
		}
	}
	sort.Slice(rounds, func(i, j int) bool {
		return rounds[i].RoundIndex < rounds[j].RoundIndex
	})
	return rounds, nil
}

func (s *Store) SaveDeposit(_ context.Context, deposit entities.VoteDeposit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deposits[depositKey(deposit.ApplicationID, deposit.RoundIndex, deposit.Participant)] = deposit
	return nil
}

func (s *Store) GetDeposit(_ context.Context, applicationID string, roundIndex int, participant string) (entities.VoteDeposit, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	deposit, ok := s.deposits[depositKey(applicationID, roundIndex, participant)]
	return deposit, ok, nil
}

func (s *Store) ListDepositsByParticipant(_ context.Context, applicationID string, participant string) ([]entities.VoteDeposit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var deposits []entities.VoteDeposit
	for _, deposit := range s.deposits {
		if deposit.ApplicationID == applicationID && deposit.Participant == participant {
			deposits = append(deposits, deposit)
		}
	}
	sort.Slice(deposits, func(i, j int) bool {
		return deposits[i].RoundIndex < deposits[j].RoundIndex
	})
	return deposits, nil
}

func (s *Store) ListDepositsByApplication(_ context.Context, applicationID string) ([]entities.VoteDeposit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var deposits []entities.VoteDeposit
	for _, deposit := range s.deposits {
		if deposit.ApplicationID == applicationID {
			deposits = append(deposits, deposit)
		}
	}
	sort.Slice(deposits, func(i, j int) bool {
		if deposits[i].RoundIndex == deposits[j].RoundIndex {
			return deposits[i].Participant < deposits[j].Participant
		}
		return deposits[i].RoundIndex < deposits[j].RoundIndex
	})
	return deposits, nil
}

func (s *Store) HasUnwithdrawnDeposits(_ context.Context, applicationID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, deposit := range s.deposits {
		if deposit.ApplicationID == applicationID && !deposit.Withdrawn {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) GetSettings(_ context.Context, kind entities.Kind) (entities.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	settings, ok := s.settings[kind]
	if !ok {
		return entities.Settings{}, domainerrors.ErrSettingsNotFound
	}
	return settings, nil
}

func (s *Store) PutSettings(_ context.Context, settings entities.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings[settings.Kind] = settings
	return nil
}

func (s *Store) AppendAnnotation(_ context.Context, annotation entities.Annotation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.annotationSeq[annotation.ApplicationID]++
	annotation.Seq = s.annotationSeq[annotation.ApplicationID]
	s.annotations[annotation.ApplicationID] = append(s.annotations[annotation.ApplicationID], annotation)
	return nil
}

func (s *Store) ListAnnotations(_ context.Context, applicationID string, afterSeq uint64, limit int) ([]entities.Annotation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var annotations []entities.Annotation
	for _, annotation := range s.annotations[applicationID] {
		if annotation.Seq <= afterSeq {
			continue
		}
		annotations = append(annotations, annotation)
		if limit > 0 && len(annotations) == limit {
			break
		}
	}
	return annotations, nil
}

func (s *Store) GetRecord(_ context.Context, key string, now time.Time) (ports.IdempotencyRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.idempotency[key]
	if !ok || record.ExpiresAt.Before(now) {
		return ports.IdempotencyRecord{}, false, nil
	}
	return record, true, nil
}

func (s *Store) PutRecord(_ context.Context, record ports.IdempotencyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.idempotency[record.Key] = record
	return nil
}

func (s *Store) AppendOutbox(_ context.Context, envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.outbox[envelope.EventID] = outboxRow{
		OutboxMessage: ports.OutboxMessage{
			OutboxID:  envelope.EventID,
			EventType: envelope.EventType,
			Payload:   payload,
			CreatedAt: envelope.OccurredAt,
		},
	}
	s.outboxOrder = append(s.outboxOrder, envelope.EventID)
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var pending []ports.OutboxMessage
	for _, id := range s.outboxOrder {
		row, ok := s.outbox[id]
		if !ok || row.PublishedAt != nil {
			continue
		}
		pending = append(pending, row.OutboxMessage)
		if limit > 0 && len(pending) == limit {
			break
		}
	}
	return pending, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, publishedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.outbox[outboxID]
	if !ok {
		return nil
	}
	row.PublishedAt = &publishedAt
	s.outbox[outboxID] = row
	return nil
}

// Now implements the Clock port for development wiring.
func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

// NewID implements the IDGenerator port.
func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func cloneApplication(application entities.Application) entities.Application {
	cloned := application
	if application.PhaseDeadline != nil {
		deadline := *application.PhaseDeadline
		cloned.PhaseDeadline = &deadline
	}
	if application.ResolvedAt != nil {
		resolved := *application.ResolvedAt
		cloned.ResolvedAt = &resolved
	}
	cloned.CapabilityTags = append([]string(nil), application.CapabilityTags...)
	return cloned
}
