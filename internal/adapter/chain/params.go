// Package chain adapts the Bitcoin node and HD key derivation.
package chain

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg"
)

// Params returns the chain parameters for a configured network name.
func Params(network string) (*chaincfg.Params, error) {
	switch network {
	case "mainnet", "main", "":
		return &chaincfg.MainNetParams, nil
	case "testnet3", "testnet", "test":
		return &chaincfg.TestNet3Params, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	case "signet":
		return &chaincfg.SigNetParams, nil
	}
	return nil, fmt.Errorf("unknown network %q", network)
}
