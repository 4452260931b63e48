package evmadapter

import (
	"context"
	"time"

	"github.com/Rican7/retry"
	"github.com/Rican7/retry/backoff"
	"github.com/Rican7/retry/strategy"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Dial connects to the chain RPC endpoint, retrying with Fibonacci backoff
// while the node comes up.
func Dial(ctx context.Context, rpcURL string) (*ethclient.Client, error) {
	var client *ethclient.Client
	var err error

	action := func(attempt uint) error {
		client, err = ethclient.DialContext(ctx, rpcURL)
		if err != nil {
			return err
		}

		return nil
	}

	if err = retry.Retry(action, strategy.Limit(5), strategy.Backoff(backoff.Fibonacci(5*time.Second))); err != nil {
		return nil, err
	}

	return client, nil
}
