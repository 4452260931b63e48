package memory_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"solon/contexts/registry-governance/admission-engine/adapters/memory"
	domainerrors "solon/contexts/registry-governance/admission-engine/domain/errors"
)

func TestAssetLedgerTransfers(t *testing.T) {
	escrow := "0x7000000000000000000000000000000000000007"
	holder := "0x3000000000000000000000000000000000000003"
	ledger := memory.NewAssetLedger(escrow)
	ctx := context.Background()

	ledger.Mint(holder, 1_000)

	if err := ledger.TransferFrom(ctx, holder, escrow, 400); err != nil {
		t.Fatalf("transfer from failed: %v", err)
	}
	balance, err := ledger.BalanceOf(ctx, holder)
	if err != nil || balance != 600 {
		t.Fatalf("expected holder at 600, got %d err=%v", balance, err)
	}

	if err := ledger.TransferFrom(ctx, holder, escrow, 601); !errors.Is(err, domainerrors.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}

	// Transfer spends from the escrow account.
	if err := ledger.Transfer(ctx, holder, 400); err != nil {
		t.Fatalf("transfer failed: %v", err)
	}
	balance, err = ledger.BalanceOf(ctx, escrow)
	if err != nil || balance != 0 {
		t.Fatalf("expected drained escrow, got %d err=%v", balance, err)
	}
	if err := ledger.Transfer(ctx, holder, 1); !errors.Is(err, domainerrors.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance from empty escrow, got %v", err)
	}
}

func TestAssetLedgerRefusesOverflow(t *testing.T) {
	escrow := "0x7000000000000000000000000000000000000007"
	holder := "0x3000000000000000000000000000000000000003"
	ledger := memory.NewAssetLedger(escrow)
	ctx := context.Background()

	ledger.Mint(holder, math.MaxUint64)
	ledger.Mint(escrow, 10)

	if err := ledger.Transfer(ctx, holder, 1); !errors.Is(err, domainerrors.ErrAmountOverflow) {
		t.Fatalf("expected ErrAmountOverflow, got %v", err)
	}
	balance, err := ledger.BalanceOf(ctx, escrow)
	if err != nil || balance != 10 {
		t.Fatalf("failed transfer must not move funds, escrow %d err=%v", balance, err)
	}
}
