package commands

import (
	"context"
	"encoding/json"
	"time"

	"solon/contexts/registry-governance/admission-engine/domain/entities"
	"solon/contexts/registry-governance/admission-engine/ports"
)

// Event types emitted through the outbox. Relay publishes each envelope on a
// topic equal to its event type.
const (
	EventTypeSubmitted       = "admission.submitted"
	EventTypeDepositPlaced   = "admission.deposit_placed"
	EventTypeRoundFinalized  = "admission.round_finalized"
	EventTypeChallenged      = "admission.challenged"
	EventTypeLameDuckEntered = "admission.lame_duck_entered"
	EventTypeRegistered      = "admission.registered"
	EventTypeWithdrawn       = "admission.withdrawn"
	EventTypeSettingsUpdated = "admission.settings_updated"
)

func newAdmissionEnvelope(
	eventID string,
	eventType string,
	partitionKey string,
	occurredAt time.Time,
	data map[string]any,
) (ports.EventEnvelope, error) {
	// Command-side events are partitioned by candidate for stable ordering on
	// candidate-scoped consumers.
	payload, err := json.Marshal(data)
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	return ports.EventEnvelope{
		EventID:          eventID,
		EventType:        eventType,
		OccurredAt:       occurredAt.UTC(),
		SourceService:    "admission-engine",
		TraceID:          eventID,
		SchemaVersion:    1,
		PartitionKeyPath: "candidate",
		PartitionKey:     partitionKey,
		Data:             payload,
	}, nil
}

func (uc AdmissionUseCase) appendAdmissionEvent(
	ctx context.Context,
	eventType string,
	app entities.Application,
	occurredAt time.Time,
	metadata map[string]any,
) error {
	// Outbox is optional for pure read/test wiring, so nil is treated as no-op.
	if uc.Outbox == nil {
		return nil
	}
	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	data := map[string]any{
		"application_id": app.ApplicationID,
		"kind":           string(app.Kind),
		"candidate":      app.Candidate,
		"phase":          string(app.Phase),
		"occurred_at":    occurredAt.Format(time.RFC3339),
	}
	for key, value := range metadata {
		data[key] = value
	}

	envelope, err := newAdmissionEnvelope(eventID, eventType, app.Candidate, occurredAt, data)
	if err != nil {
		return err
	}
	return uc.Outbox.AppendOutbox(ctx, envelope)
}

func (uc AdmissionUseCase) annotate(
	ctx context.Context,
	app entities.Application,
	roundIndex int,
	action string,
	actor string,
	note string,
) error {
	// The annotation log is optional for pure read/test wiring.
	if uc.Annotations == nil {
		return nil
	}
	return uc.Annotations.AppendAnnotation(ctx, entities.Annotation{
		ApplicationID: app.ApplicationID,
		Kind:          app.Kind,
		Candidate:     app.Candidate,
		RoundIndex:    roundIndex,
		Action:        action,
		Actor:         actor,
		Note:          note,
		CreatedAt:     uc.now(),
	})
}
