package evmadapter

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Signer wraps the escrow account key used to send engine transactions.
type Signer struct {
	opts   *bind.TransactOpts
	sender common.Address
}

func NewSigner(privateKeyHex string, chainID *big.Int) (*Signer, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(privateKeyHex), "0x"))
	if err != nil {
		return nil, fmt.Errorf("parse signer key: %w", err)
	}
	opts, err := bind.NewKeyedTransactorWithChainID(key, chainID)
	if err != nil {
		return nil, fmt.Errorf("build transactor: %w", err)
	}
	return &Signer{
		opts:   opts,
		sender: crypto.PubkeyToAddress(key.PublicKey),
	}, nil
}

// Sender is the escrow account address derived from the signer key.
func (s *Signer) Sender() common.Address {
	return s.sender
}

func (s *Signer) transactOpts(ctx context.Context) *bind.TransactOpts {
	opts := *s.opts
	opts.Context = ctx
	return &opts
}
