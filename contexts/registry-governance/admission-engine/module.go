package admissionengine

import (
	"log/slog"
	"time"

	evmadapter "solon/contexts/registry-governance/admission-engine/adapters/evm"
	httpadapter "solon/contexts/registry-governance/admission-engine/adapters/http"
	"solon/contexts/registry-governance/admission-engine/adapters/memory"
	"solon/contexts/registry-governance/admission-engine/application/commands"
	"solon/contexts/registry-governance/admission-engine/application/queries"
	"solon/contexts/registry-governance/admission-engine/domain/entities"
	"solon/contexts/registry-governance/admission-engine/ports"
)

// Module is the admission-engine composition root exposed to runtime wiring.
// Store, Assets, and Registries are populated only by NewInMemoryModule.
type Module struct {
	Handler    httpadapter.Handler
	Store      *memory.Store
	Assets     map[entities.Kind]*memory.AssetLedger
	Registries map[entities.Kind]*memory.RegistryRecorder
}

// TrackDependencies carries the ports that differ between the factory and
// vault tracks.
type TrackDependencies struct {
	Policy   ports.Policy
	Asset    ports.AssetLedger
	Registry ports.RegistryFinalizer
}

// Dependencies captures all runtime ports/config required by NewModule.
// Storage is shared across tracks; rows are keyed by kind.
type Dependencies struct {
	Factory        TrackDependencies
	Vault          TrackDependencies
	Applications   ports.ApplicationRepository
	Rounds         ports.RoundRepository
	Deposits       ports.DepositLedger
	Settings       ports.SettingsRepository
	Annotations    ports.AnnotationLog
	Idempotency    ports.IdempotencyStore
	Outbox         ports.OutboxWriter
	Addresses      ports.AddressCodec
	Clock          ports.Clock
	IDGenerator    ports.IDGenerator
	IdempotencyTTL time.Duration
	Logger         *slog.Logger
}

// NewModule wires both admission tracks and the transport handler using
// explicit ports.
func NewModule(deps Dependencies) Module {
	locks := commands.NewCandidateLocks()
	buildTrack := func(track TrackDependencies) httpadapter.Track {
		admissions := commands.AdmissionUseCase{
			Policy:         track.Policy,
			Applications:   deps.Applications,
			Rounds:         deps.Rounds,
			Deposits:       deps.Deposits,
			Settings:       deps.Settings,
			Annotations:    deps.Annotations,
			Asset:          track.Asset,
			Registry:       track.Registry,
			Addresses:      deps.Addresses,
			Idempotency:    deps.Idempotency,
			Outbox:         deps.Outbox,
			Clock:          deps.Clock,
			IDGen:          deps.IDGenerator,
			IdempotencyTTL: deps.IdempotencyTTL,
			Locks:          locks,
			Logger:         deps.Logger,
		}
		status := queries.StatusUseCase{
			Kind:         track.Policy.Kind,
			Applications: deps.Applications,
			Rounds:       deps.Rounds,
			Deposits:     deps.Deposits,
			Annotations:  deps.Annotations,
			Addresses:    deps.Addresses,
		}
		return httpadapter.Track{
			Admissions: admissions,
			Status:     status,
		}
	}

	return Module{
		Handler: httpadapter.Handler{
			Factory: buildTrack(deps.Factory),
			Vault:   buildTrack(deps.Vault),
			Logger:  deps.Logger,
		},
	}
}

// NewInMemoryModule wires both tracks against in-process storage, asset
// ledgers, and registry recorders. Meant for development and tests.
func NewInMemoryModule(factoryPolicy ports.Policy, vaultPolicy ports.Policy, logger *slog.Logger) Module {
	store := memory.NewStore()
	assets := map[entities.Kind]*memory.AssetLedger{
		entities.KindFactory: memory.NewAssetLedger(factoryPolicy.EscrowAccount),
		entities.KindVault:   memory.NewAssetLedger(vaultPolicy.EscrowAccount),
	}
	registries := map[entities.Kind]*memory.RegistryRecorder{
		entities.KindFactory: memory.NewRegistryRecorder(),
		entities.KindVault:   memory.NewRegistryRecorder(),
	}

	module := NewModule(Dependencies{
		Factory: TrackDependencies{
			Policy:   factoryPolicy,
			Asset:    assets[entities.KindFactory],
			Registry: registries[entities.KindFactory],
		},
		Vault: TrackDependencies{
			Policy:   vaultPolicy,
			Asset:    assets[entities.KindVault],
			Registry: registries[entities.KindVault],
		},
		Applications:   store,
		Rounds:         store,
		Deposits:       store,
		Settings:       store,
		Annotations:    store,
		Idempotency:    store,
		Outbox:         store,
		Addresses:      evmadapter.AddressCodec{},
		Clock:          store,
		IDGenerator:    store,
		IdempotencyTTL: 24 * time.Hour,
		Logger:         logger,
	})
	module.Store = store
	module.Assets = assets
	module.Registries = registries
	return module
}
