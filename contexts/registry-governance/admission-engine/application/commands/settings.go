package commands

import (
	"context"
	"errors"

	application "solon/contexts/registry-governance/admission-engine/application"
	"solon/contexts/registry-governance/admission-engine/domain/entities"
	domainerrors "solon/contexts/registry-governance/admission-engine/domain/errors"
)

// SetAddressCommand updates one owner-managed chain address for the track.
type SetAddressCommand struct {
	Caller  string
	Address string
}

// SettingsResult reports the track addresses after the update.
type SettingsResult struct {
	Kind            string `json:"kind"`
	AssetAddress    string `json:"asset_address"`
	RegistryAddress string `json:"registry_address"`
}

// SetAssetAddress points the track at a new deposit-asset contract. Owner
// only; zero or malformed addresses are rejected.
func (uc AdmissionUseCase) SetAssetAddress(ctx context.Context, cmd SetAddressCommand) (SettingsResult, error) {
	return uc.setAddress(ctx, cmd, "asset_address")
}

// SetRegistryAddress points the track at a new downstream registry contract.
// Owner only; zero or malformed addresses are rejected.
func (uc AdmissionUseCase) SetRegistryAddress(ctx context.Context, cmd SetAddressCommand) (SettingsResult, error) {
	return uc.setAddress(ctx, cmd, "registry_address")
}

func (uc AdmissionUseCase) setAddress(ctx context.Context, cmd SetAddressCommand, field string) (SettingsResult, error) {
	logger := application.ResolveLogger(uc.Logger)

	caller, err := uc.normalizeAddress(cmd.Caller)
	if err != nil {
		return SettingsResult{}, err
	}
	owner, err := uc.normalizeAddress(uc.Policy.Owner)
	if err != nil || caller != owner {
		return SettingsResult{}, domainerrors.ErrNotOwner
	}
	address, err := uc.normalizeAddress(cmd.Address)
	if err != nil {
		return SettingsResult{}, err
	}

	now := uc.now()
	settings, err := uc.Settings.GetSettings(ctx, uc.Policy.Kind)
	if err != nil {
		if !errors.Is(err, domainerrors.ErrSettingsNotFound) {
			return SettingsResult{}, err
		}
		settings = entities.Settings{Kind: uc.Policy.Kind}
	}
	if field == "asset_address" {
		settings.AssetAddress = address
	} else {
		settings.RegistryAddress = address
	}
	settings.UpdatedAt = now
	if err := uc.Settings.PutSettings(ctx, settings); err != nil {
		return SettingsResult{}, err
	}

	if uc.Outbox != nil {
		eventID, err := uc.IDGen.NewID(ctx)
		if err != nil {
			return SettingsResult{}, err
		}
		envelope, err := newAdmissionEnvelope(eventID, EventTypeSettingsUpdated, string(uc.Policy.Kind), now, map[string]any{
			"kind":    string(uc.Policy.Kind),
			"field":   field,
			"address": address,
		})
		if err != nil {
			return SettingsResult{}, err
		}
		if err := uc.Outbox.AppendOutbox(ctx, envelope); err != nil {
			return SettingsResult{}, err
		}
	}

	logger.Info("admission track settings updated",
		"event", "admission_settings_updated",
		"module", moduleName,
		"layer", "application",
		"kind", string(uc.Policy.Kind),
		"field", field,
		"address", address,
	)
	return SettingsResult{
		Kind:            string(settings.Kind),
		AssetAddress:    settings.AssetAddress,
		RegistryAddress: settings.RegistryAddress,
	}, nil
}
