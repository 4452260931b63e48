package evmadapter

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"solon/contexts/registry-governance/admission-engine/domain/entities"
	"solon/contexts/registry-governance/admission-engine/ports"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
)

const registryABI = `[
	{"inputs":[
		{"name":"candidate","type":"address"},
		{"name":"typeTag","type":"string"},
		{"name":"title","type":"string"},
		{"name":"displayTitle","type":"string"},
		{"name":"metadataURI","type":"string"},
		{"name":"capabilityTags","type":"string[]"},
		{"name":"creator","type":"address"}
	],"name":"registerApproved","outputs":[],"stateMutability":"nonpayable","type":"function"}
]`

// RegistryFinalizer pushes an approved candidate into the downstream registry
// contract.
type RegistryFinalizer struct {
	client   *ethclient.Client
	signer   *Signer
	settings ports.SettingsRepository
	kind     entities.Kind
	registry abi.ABI
	logger   *slog.Logger
}

func NewRegistryFinalizer(client *ethclient.Client, signer *Signer, settings ports.SettingsRepository, kind entities.Kind, logger *slog.Logger) (*RegistryFinalizer, error) {
	parsed, err := abi.JSON(strings.NewReader(registryABI))
	if err != nil {
		return nil, fmt.Errorf("parse registry abi: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RegistryFinalizer{
		client:   client,
		signer:   signer,
		settings: settings,
		kind:     kind,
		registry: parsed,
		logger:   logger,
	}, nil
}

func (f *RegistryFinalizer) RegisterApproved(ctx context.Context, entry ports.RegistryEntry) error {
	settings, err := f.settings.GetSettings(ctx, f.kind)
	if err != nil {
		return err
	}
	if settings.RegistryAddress == "" {
		return fmt.Errorf("registry address not configured for kind %s", f.kind)
	}
	tags := entry.CapabilityTags
	if tags == nil {
		tags = []string{}
	}
	contract := bind.NewBoundContract(common.HexToAddress(settings.RegistryAddress), f.registry, f.client, f.client, f.client)
	tx, err := contract.Transact(f.signer.transactOpts(ctx), "registerApproved",
		common.HexToAddress(entry.Candidate),
		entry.TypeTag,
		entry.Title,
		entry.DisplayTitle,
		entry.MetadataURI,
		tags,
		common.HexToAddress(entry.Creator),
	)
	if err != nil {
		return f.logError("admission_registry_transact_failed", err, "candidate", entry.Candidate)
	}
	receipt, err := bind.WaitMined(ctx, f.client, tx)
	if err != nil {
		return f.logError("admission_registry_wait_mined_failed", err, "candidate", entry.Candidate, "tx_hash", tx.Hash().Hex())
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return f.logError("admission_registry_transact_reverted",
			fmt.Errorf("transaction %s reverted", tx.Hash().Hex()),
			"candidate", entry.Candidate,
		)
	}
	return nil
}

func (f *RegistryFinalizer) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "registry-governance/admission-engine",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	f.logger.Error("admission registry operation failed", fields...)
	return err
}
