package chain

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"net"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
)

// DeriveAddress walks the non-hardened path from an extended public key and
// returns the P2PKH address of the resulting key.
func DeriveAddress(extendedKey string, params *chaincfg.Params, path ...uint32) (string, error) {
	key, err := hdkeychain.NewKeyFromString(extendedKey)
	if err != nil {
		return "", fmt.Errorf("parsing extended key: %w", err)
	}

	for _, i := range path {
		if i >= hdkeychain.HardenedKeyStart {
			return "", fmt.Errorf("hardened index %d in public derivation", i)
		}
		key, err = key.Derive(i)
		if err != nil {
			return "", fmt.Errorf("deriving child %d: %w", i, err)
		}
	}

	addr, err := key.Address(params)
	if err != nil {
		return "", fmt.Errorf("encoding address: %w", err)
	}
	return addr.EncodeAddress(), nil
}

// BranchForIP maps a client address to a stable non-hardened branch.
func BranchForIP(ip string) uint32 {
	if parsed := net.ParseIP(ip); parsed != nil {
		ip = parsed.String()
	}
	sum := sha256.Sum256([]byte(ip))
	return binary.BigEndian.Uint32(sum[:4]) % hdkeychain.HardenedKeyStart
}
