package memory

import (
	"context"
	"sync"

	"solon/contexts/registry-governance/admission-engine/domain/entities"
	domainerrors "solon/contexts/registry-governance/admission-engine/domain/errors"
)

// AssetLedger is an in-memory stand-in for the chain asset adapter. Transfer
// spends from the configured escrow account, matching the on-chain adapter
// where the engine key holds the escrow.
type AssetLedger struct {
	mu       sync.Mutex
	escrow   string
	balances map[string]uint64
}

func NewAssetLedger(escrowAccount string) *AssetLedger {
	return &AssetLedger{
		escrow:   escrowAccount,
		balances: make(map[string]uint64),
	}
}

// Mint seeds a holder balance for tests and local development.
func (l *AssetLedger) Mint(holder string, amount uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[holder] += amount
}

func (l *AssetLedger) BalanceOf(_ context.Context, holder string) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[holder], nil
}

func (l *AssetLedger) Transfer(_ context.Context, to string, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.move(l.escrow, to, amount)
}

func (l *AssetLedger) TransferFrom(_ context.Context, from string, to string, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.move(from, to, amount)
}

func (l *AssetLedger) move(from string, to string, amount uint64) error {
	if l.balances[from] < amount {
		return domainerrors.ErrInsufficientBalance
	}
	received, ok := entities.AddAmount(l.balances[to], amount)
	if !ok {
		return domainerrors.ErrAmountOverflow
	}
	l.balances[from] -= amount
	l.balances[to] = received
	return nil
}
