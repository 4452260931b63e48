package commands

import (
	"context"
	"time"

	application "solon/contexts/registry-governance/admission-engine/application"
	"solon/contexts/registry-governance/admission-engine/domain/entities"
	domainerrors "solon/contexts/registry-governance/admission-engine/domain/errors"
	"solon/contexts/registry-governance/admission-engine/ports"
)

// EnterLameDuckCommand moves an uncontested approval into the grace window.
type EnterLameDuckCommand struct {
	Candidate string
	Caller    string
}

// EnterLameDuckResult reports the opened grace window.
type EnterLameDuckResult struct {
	ApplicationID string    `json:"application_id"`
	Phase         string    `json:"phase"`
	PhaseDeadline time.Time `json:"phase_deadline"`
}

// EnterLameDuck advances a ripe challenge window into the lame-duck grace
// period. Permissionless and time-gated: anyone may call it once the window
// deadline passed.
func (uc AdmissionUseCase) EnterLameDuck(ctx context.Context, cmd EnterLameDuckCommand) (EnterLameDuckResult, error) {
	logger := application.ResolveLogger(uc.Logger)

	candidate, err := uc.normalizeAddress(cmd.Candidate)
	if err != nil {
		return EnterLameDuckResult{}, err
	}
	caller := uc.optionalActor(cmd.Caller)

	unlock := uc.lockCandidate(candidate)
	defer unlock()

	now := uc.now()
	app, err := uc.Applications.GetApplication(ctx, uc.Policy.Kind, candidate)
	if err != nil {
		return EnterLameDuckResult{}, err
	}
	if app.Phase != entities.PhaseChallengeWindow {
		return EnterLameDuckResult{}, domainerrors.ErrInvalidPhase
	}
	if !app.DeadlinePassed(now) {
		return EnterLameDuckResult{}, domainerrors.ErrDeadlineNotReached
	}

	deadline := now.Add(uc.Policy.LameDuckPeriod)
	app.Phase = entities.PhaseLameDuck
	app.PhaseDeadline = &deadline
	app.UpdatedAt = now
	if err := uc.Applications.UpdateApplication(ctx, app); err != nil {
		return EnterLameDuckResult{}, err
	}

	if err := uc.annotate(ctx, app, app.CurrentRound(), "lame_duck_entered", caller, "grace window opened"); err != nil {
		return EnterLameDuckResult{}, err
	}
	if err := uc.appendAdmissionEvent(ctx, EventTypeLameDuckEntered, app, now, map[string]any{
		"phase_deadline": deadline.Format(time.RFC3339),
	}); err != nil {
		return EnterLameDuckResult{}, err
	}

	logger.Info("admission lame duck entered",
		"event", "admission_lame_duck_entered",
		"module", moduleName,
		"layer", "application",
		"kind", string(uc.Policy.Kind),
		"candidate", candidate,
	)
	return EnterLameDuckResult{
		ApplicationID: app.ApplicationID,
		Phase:         string(app.Phase),
		PhaseDeadline: deadline,
	}, nil
}

// RegisterCommand pushes a surviving candidate into the downstream registry.
type RegisterCommand struct {
	Candidate string
	Caller    string
}

// RegisterResult reports the terminal approval.
type RegisterResult struct {
	ApplicationID string    `json:"application_id"`
	Phase         string    `json:"phase"`
	RegisteredAt  time.Time `json:"registered_at"`
}

// Register finalizes a lame-duck survivor: the candidate is pushed to the
// downstream registry, then the application flips to approved. The phase flip
// guards against a second registration; the registry call itself happens
// before the flip so a failed push leaves the application retryable.
func (uc AdmissionUseCase) Register(ctx context.Context, cmd RegisterCommand) (RegisterResult, error) {
	logger := application.ResolveLogger(uc.Logger)

	candidate, err := uc.normalizeAddress(cmd.Candidate)
	if err != nil {
		return RegisterResult{}, err
	}
	caller := uc.optionalActor(cmd.Caller)

	unlock := uc.lockCandidate(candidate)
	defer unlock()

	now := uc.now()
	app, err := uc.Applications.GetApplication(ctx, uc.Policy.Kind, candidate)
	if err != nil {
		return RegisterResult{}, err
	}
	if app.Phase != entities.PhaseLameDuck {
		return RegisterResult{}, domainerrors.ErrInvalidPhase
	}
	if !app.DeadlinePassed(now) {
		return RegisterResult{}, domainerrors.ErrDeadlineNotReached
	}

	entry := ports.RegistryEntry{
		Candidate:      app.Candidate,
		TypeTag:        app.TypeTag,
		Title:          app.Title,
		DisplayTitle:   app.DisplayTitle,
		MetadataURI:    app.MetadataURI,
		CapabilityTags: app.CapabilityTags,
		Creator:        app.Applicant,
	}
	if err := uc.Registry.RegisterApproved(ctx, entry); err != nil {
		logger.Error("admission registry push failed",
			"event", "admission_registry_push_failed",
			"module", moduleName,
			"layer", "application",
			"kind", string(uc.Policy.Kind),
			"candidate", candidate,
			"error", err.Error(),
		)
		return RegisterResult{}, err
	}

	app.Phase = entities.PhaseApproved
	app.PhaseDeadline = nil
	app.ResolvedAt = &now
	app.UpdatedAt = now
	if err := uc.Applications.UpdateApplication(ctx, app); err != nil {
		return RegisterResult{}, err
	}

	if err := uc.annotate(ctx, app, app.CurrentRound(), "registered", caller, "candidate registered downstream"); err != nil {
		return RegisterResult{}, err
	}
	if err := uc.appendAdmissionEvent(ctx, EventTypeRegistered, app, now, map[string]any{
		"type_tag": app.TypeTag,
		"title":    app.Title,
	}); err != nil {
		return RegisterResult{}, err
	}

	logger.Info("admission candidate registered",
		"event", "admission_registered",
		"module", moduleName,
		"layer", "application",
		"kind", string(uc.Policy.Kind),
		"candidate", candidate,
		"application_id", app.ApplicationID,
	)
	return RegisterResult{
		ApplicationID: app.ApplicationID,
		Phase:         string(app.Phase),
		RegisteredAt:  now,
	}, nil
}
