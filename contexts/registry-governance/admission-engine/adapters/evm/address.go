package evmadapter

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// AddressCodec canonicalizes hex account addresses to their EIP-55
// checksummed form. The zero address is rejected.
type AddressCodec struct{}

func (AddressCodec) Normalize(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if !common.IsHexAddress(trimmed) {
		return "", false
	}
	address := common.HexToAddress(trimmed)
	if address == (common.Address{}) {
		return "", false
	}
	return address.Hex(), true
}
