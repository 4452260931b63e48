package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	application "solon/contexts/registry-governance/admission-engine/application"
	"solon/contexts/registry-governance/admission-engine/application/commands"
	"solon/contexts/registry-governance/admission-engine/ports"
)

const defaultAnnouncerCG = "admission-engine-announcer-cg"

// GovernanceAnnouncer mirrors admission milestones to a human channel. It is
// strictly best effort: a failed notice never blocks or retries the bus.
type GovernanceAnnouncer struct {
	Subscriber    ports.EventSubscriber
	Notifier      ports.Announcer
	ConsumerGroup string
	Disabled      bool
	Logger        *slog.Logger
}

// Start subscribes the announcer to the milestone topics.
func (a GovernanceAnnouncer) Start(ctx context.Context) error {
	logger := application.ResolveLogger(a.Logger)
	if a.Disabled || a.Notifier == nil {
		logger.Info("governance announcer disabled",
			"event", "admission_announcer_disabled",
			"module", "registry-governance/admission-engine",
			"layer", "worker",
		)
		return nil
	}
	group := strings.TrimSpace(a.ConsumerGroup)
	if group == "" {
		group = defaultAnnouncerCG
	}

	topics := []string{
		commands.EventTypeSubmitted,
		commands.EventTypeChallenged,
		commands.EventTypeRoundFinalized,
		commands.EventTypeRegistered,
	}
	for _, topic := range topics {
		if err := a.Subscriber.Subscribe(ctx, topic, group, a.handle); err != nil {
			logger.Error("governance announcer subscribe failed",
				"event", "admission_announcer_subscribe_failed",
				"module", "registry-governance/admission-engine",
				"layer", "worker",
				"topic", topic,
				"consumer_group", group,
				"error", err.Error(),
			)
			return err
		}
	}
	logger.Info("governance announcer subscriptions active",
		"event", "admission_announcer_started",
		"module", "registry-governance/admission-engine",
		"layer", "worker",
		"consumer_group", group,
	)
	return nil
}

func (a GovernanceAnnouncer) handle(ctx context.Context, event ports.EventEnvelope) error {
	logger := application.ResolveLogger(a.Logger)
	message := formatAnnouncement(event)
	if message == "" {
		return nil
	}
	if err := a.Notifier.Announce(ctx, message); err != nil {
		logger.Warn("governance announcement failed",
			"event", "admission_announce_failed",
			"module", "registry-governance/admission-engine",
			"layer", "worker",
			"event_id", event.EventID,
			"error", err.Error(),
		)
	}
	return nil
}

func formatAnnouncement(event ports.EventEnvelope) string {
	var data struct {
		Kind         string `json:"kind"`
		Candidate    string `json:"candidate"`
		Title        string `json:"title"`
		RoundIndex   int    `json:"round_index"`
		SupportWon   bool   `json:"support_won"`
		Phase        string `json:"phase"`
		Challenger   string `json:"challenger"`
		Stake        uint64 `json:"stake"`
		SupportTotal uint64 `json:"support_total"`
		OpposeTotal  uint64 `json:"oppose_total"`
	}
	if err := json.Unmarshal(event.Data, &data); err != nil {
		return ""
	}

	switch event.EventType {
	case commands.EventTypeSubmitted:
		return fmt.Sprintf("New %s admission: `%s` entered initial voting (round %d).",
			data.Kind, data.Candidate, data.RoundIndex)
	case commands.EventTypeChallenged:
		return fmt.Sprintf("Challenge raised against %s candidate `%s`: round %d opened with %d staked.",
			data.Kind, data.Candidate, data.RoundIndex, data.Stake)
	case commands.EventTypeRoundFinalized:
		outcome := "oppose prevailed"
		if data.SupportWon {
			outcome = "support prevailed"
		}
		return fmt.Sprintf("Round %d for %s candidate `%s` closed: %s (%d vs %d), phase is now %s.",
			data.RoundIndex, data.Kind, data.Candidate, outcome, data.SupportTotal, data.OpposeTotal, data.Phase)
	case commands.EventTypeRegistered:
		return fmt.Sprintf("Candidate `%s` survived %s governance and is registered downstream.",
			data.Candidate, data.Kind)
	default:
		return ""
	}
}
