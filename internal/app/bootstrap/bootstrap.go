package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"

	admissionengine "solon/contexts/registry-governance/admission-engine"
	discordadapter "solon/contexts/registry-governance/admission-engine/adapters/discord"
	evmadapter "solon/contexts/registry-governance/admission-engine/adapters/evm"
	postgresadapter "solon/contexts/registry-governance/admission-engine/adapters/postgres"
	redisadapter "solon/contexts/registry-governance/admission-engine/adapters/redis"
	workerapp "solon/contexts/registry-governance/admission-engine/application/workers"
	"solon/contexts/registry-governance/admission-engine/domain/entities"
	"solon/contexts/registry-governance/admission-engine/ports"
	"solon/internal/platform/config"
	"solon/internal/platform/db"
	"solon/internal/platform/httpserver"
	"solon/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres       *db.Postgres
	factorySweeper workerapp.PhaseAdvancer
	vaultSweeper   workerapp.PhaseAdvancer
	outboxRelay    workerapp.OutboxRelay
	announcer      workerapp.GovernanceAnnouncer
	pollInterval   time.Duration
	logger         *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}
	if strings.TrimSpace(cfg.ChainRPCURL) == "" {
		return nil, errors.New("CHAIN_RPC_URL is required")
	}
	if strings.TrimSpace(cfg.EscrowSignerKey) == "" {
		return nil, errors.New("ESCROW_SIGNER_KEY is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	repo := postgresadapter.NewRepository(pg.DB, logger)
	idempotency, err := buildIdempotency(cfg, repo)
	if err != nil {
		return nil, err
	}

	module, err := buildEngine(cfg, repo, idempotency, logger)
	if err != nil {
		return nil, err
	}

	server := httpserver.New(module, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}
	if strings.TrimSpace(cfg.ChainRPCURL) == "" {
		return nil, errors.New("CHAIN_RPC_URL is required")
	}
	if strings.TrimSpace(cfg.EscrowSignerKey) == "" {
		return nil, errors.New("ESCROW_SIGNER_KEY is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	kafka, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
	if err != nil {
		return nil, err
	}

	repo := postgresadapter.NewRepository(pg.DB, logger)
	idempotency, err := buildIdempotency(cfg, repo)
	if err != nil {
		return nil, err
	}

	module, err := buildEngine(cfg, repo, idempotency, logger)
	if err != nil {
		return nil, err
	}

	announcer := workerapp.GovernanceAnnouncer{
		Subscriber: kafka,
		Disabled:   cfg.AnnouncerDisabled || strings.TrimSpace(cfg.DiscordBotToken) == "",
		Logger:     logger,
	}
	if !announcer.Disabled {
		notifier, err := discordadapter.NewAnnouncer(cfg.DiscordBotToken, cfg.DiscordChannelID)
		if err != nil {
			return nil, err
		}
		announcer.Notifier = notifier
	}

	return &WorkerApp{
		postgres: pg,
		factorySweeper: workerapp.PhaseAdvancer{
			Engine:       module.Handler.Factory.Admissions,
			Applications: repo,
			Clock:        postgresadapter.SystemClock{},
			BatchSize:    cfg.SweepBatchSize,
			Logger:       logger,
		},
		vaultSweeper: workerapp.PhaseAdvancer{
			Engine:       module.Handler.Vault.Admissions,
			Applications: repo,
			Clock:        postgresadapter.SystemClock{},
			BatchSize:    cfg.SweepBatchSize,
			Logger:       logger,
		},
		outboxRelay: workerapp.OutboxRelay{
			Outbox:    repo,
			Publisher: kafka,
			Clock:     postgresadapter.SystemClock{},
			BatchSize: cfg.RelayBatchSize,
			Logger:    logger,
		},
		announcer:    announcer,
		pollInterval: cfg.SweepInterval,
		logger:       logger,
	}, nil
}

func buildEngine(cfg config.Config, repo *postgresadapter.Repository, idempotency ports.IdempotencyStore, logger *slog.Logger) (admissionengine.Module, error) {
	chain, err := evmadapter.Dial(context.Background(), cfg.ChainRPCURL)
	if err != nil {
		return admissionengine.Module{}, err
	}
	signer, err := evmadapter.NewSigner(cfg.EscrowSignerKey, big.NewInt(cfg.ChainID))
	if err != nil {
		return admissionengine.Module{}, err
	}

	factory, err := buildTrack(chain, signer, repo, entities.KindFactory, cfg.Factory, cfg.OwnerAddress, logger)
	if err != nil {
		return admissionengine.Module{}, err
	}
	vault, err := buildTrack(chain, signer, repo, entities.KindVault, cfg.Vault, cfg.OwnerAddress, logger)
	if err != nil {
		return admissionengine.Module{}, err
	}

	return admissionengine.NewModule(admissionengine.Dependencies{
		Factory:        factory,
		Vault:          vault,
		Applications:   repo,
		Rounds:         repo,
		Deposits:       repo,
		Settings:       repo,
		Annotations:    repo,
		Idempotency:    idempotency,
		Outbox:         repo,
		Addresses:      evmadapter.AddressCodec{},
		Clock:          postgresadapter.SystemClock{},
		IDGenerator:    postgresadapter.UUIDGenerator{},
		IdempotencyTTL: 7 * 24 * time.Hour,
		Logger:         logger,
	}), nil
}

func buildTrack(
	chain *ethclient.Client,
	signer *evmadapter.Signer,
	settings ports.SettingsRepository,
	kind entities.Kind,
	track config.TrackConfig,
	owner string,
	logger *slog.Logger,
) (admissionengine.TrackDependencies, error) {
	asset, err := evmadapter.NewAssetLedger(chain, signer, settings, kind, logger)
	if err != nil {
		return admissionengine.TrackDependencies{}, err
	}
	registry, err := evmadapter.NewRegistryFinalizer(chain, signer, settings, kind, logger)
	if err != nil {
		return admissionengine.TrackDependencies{}, err
	}

	// The engine escrows funds in its own signing account unless the track
	// points at a dedicated escrow contract.
	escrow := strings.TrimSpace(track.EscrowAccount)
	if escrow == "" {
		escrow = signer.Sender().Hex()
	}

	return admissionengine.TrackDependencies{
		Policy: ports.Policy{
			Kind:                  kind,
			Owner:                 owner,
			EscrowAccount:         escrow,
			MinDeposit:            track.MinDeposit,
			QuorumFloor:           track.QuorumFloor,
			SubmissionFee:         track.SubmissionFee,
			InitialVotingPeriod:   track.InitialVotingPeriod,
			ChallengeWindowPeriod: track.ChallengeWindowPeriod,
			ChallengeVotingPeriod: track.ChallengeVotingPeriod,
			LameDuckPeriod:        track.LameDuckPeriod,
		},
		Asset:    asset,
		Registry: registry,
	}, nil
}

func buildIdempotency(cfg config.Config, repo *postgresadapter.Repository) (ports.IdempotencyStore, error) {
	if strings.TrimSpace(cfg.RedisURL) == "" {
		return repo, nil
	}
	cache, err := redisadapter.NewClient(cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	return redisadapter.NewIdempotencyStore(cache), nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	if err := w.announcer.Start(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if err := w.factorySweeper.RunOnce(ctx); err != nil {
			return err
		}
		if err := w.vaultSweeper.RunOnce(ctx); err != nil {
			return err
		}
		if err := w.outboxRelay.RunOnce(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
