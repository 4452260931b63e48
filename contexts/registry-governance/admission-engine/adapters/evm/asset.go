package evmadapter

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/big"
	"strings"

	"solon/contexts/registry-governance/admission-engine/domain/entities"
	"solon/contexts/registry-governance/admission-engine/ports"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
)

const erc20ABI = `[
	{"inputs":[{"name":"owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"name":"to","type":"address"},{"name":"value","type":"uint256"}],"name":"transfer","outputs":[{"name":"","type":"bool"}],"stateMutability":"nonpayable","type":"function"},
	{"inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"value","type":"uint256"}],"name":"transferFrom","outputs":[{"name":"","type":"bool"}],"stateMutability":"nonpayable","type":"function"}
]`

// AssetLedger moves the deposit token on chain. Outbound transfers spend from
// the escrow account held by the signer; inbound pulls require the
// participant's prior ERC-20 allowance to that account.
type AssetLedger struct {
	client   *ethclient.Client
	signer   *Signer
	settings ports.SettingsRepository
	kind     entities.Kind
	erc20    abi.ABI
	logger   *slog.Logger
}

func NewAssetLedger(client *ethclient.Client, signer *Signer, settings ports.SettingsRepository, kind entities.Kind, logger *slog.Logger) (*AssetLedger, error) {
	parsed, err := abi.JSON(strings.NewReader(erc20ABI))
	if err != nil {
		return nil, fmt.Errorf("parse erc20 abi: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AssetLedger{
		client:   client,
		signer:   signer,
		settings: settings,
		kind:     kind,
		erc20:    parsed,
		logger:   logger,
	}, nil
}

func (l *AssetLedger) BalanceOf(ctx context.Context, holder string) (uint64, error) {
	contract, err := l.bound(ctx)
	if err != nil {
		return 0, err
	}
	var out []interface{}
	if err := contract.Call(&bind.CallOpts{Context: ctx}, &out, "balanceOf", common.HexToAddress(holder)); err != nil {
		return 0, l.logError("admission_asset_balance_failed", err, "holder", holder)
	}
	if len(out) == 0 {
		return 0, fmt.Errorf("balanceOf returned no value")
	}
	balance, ok := out[0].(*big.Int)
	if !ok {
		return 0, fmt.Errorf("balanceOf returned unexpected type %T", out[0])
	}
	// Engine amounts are uint64 base units; any larger balance already
	// satisfies every affordability check the engine makes.
	if !balance.IsUint64() {
		return math.MaxUint64, nil
	}
	return balance.Uint64(), nil
}

func (l *AssetLedger) Transfer(ctx context.Context, to string, amount uint64) error {
	return l.transact(ctx, "transfer",
		common.HexToAddress(to),
		new(big.Int).SetUint64(amount),
	)
}

func (l *AssetLedger) TransferFrom(ctx context.Context, from string, to string, amount uint64) error {
	return l.transact(ctx, "transferFrom",
		common.HexToAddress(from),
		common.HexToAddress(to),
		new(big.Int).SetUint64(amount),
	)
}

func (l *AssetLedger) transact(ctx context.Context, method string, args ...interface{}) error {
	contract, err := l.bound(ctx)
	if err != nil {
		return err
	}
	tx, err := contract.Transact(l.signer.transactOpts(ctx), method, args...)
	if err != nil {
		return l.logError("admission_asset_transact_failed", err, "method", method)
	}
	receipt, err := bind.WaitMined(ctx, l.client, tx)
	if err != nil {
		return l.logError("admission_asset_wait_mined_failed", err, "method", method, "tx_hash", tx.Hash().Hex())
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return l.logError("admission_asset_transact_reverted",
			fmt.Errorf("transaction %s reverted", tx.Hash().Hex()),
			"method", method,
		)
	}
	return nil
}

func (l *AssetLedger) bound(ctx context.Context) (*bind.BoundContract, error) {
	settings, err := l.settings.GetSettings(ctx, l.kind)
	if err != nil {
		return nil, err
	}
	if settings.AssetAddress == "" {
		return nil, fmt.Errorf("asset address not configured for kind %s", l.kind)
	}
	address := common.HexToAddress(settings.AssetAddress)
	return bind.NewBoundContract(address, l.erc20, l.client, l.client, l.client), nil
}

func (l *AssetLedger) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "registry-governance/admission-engine",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	l.logger.Error("admission asset operation failed", fields...)
	return err
}
