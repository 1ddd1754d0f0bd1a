package bip70

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
)

// DestinationScript turns a payment destination into an output script.
// A base58 address for params yields its standard script, a hex string is
// decoded as a raw script, anything else is used as raw script bytes.
func DestinationScript(dest string, params *chaincfg.Params) []byte {
	if addr, err := btcutil.DecodeAddress(dest, params); err == nil && addr.IsForNet(params) {
		if script, err := txscript.PayToAddrScript(addr); err == nil {
			return script
		}
	}
	if raw, err := hex.DecodeString(dest); err == nil && len(raw) > 0 {
		return raw
	}
	return []byte(dest)
}

// ScriptAddress returns the single address a standard output script pays.
func ScriptAddress(script []byte, params *chaincfg.Params) (string, bool) {
	_, addrs, _, err := txscript.ExtractPkScriptAddrs(script, params)
	if err != nil || len(addrs) != 1 {
		return "", false
	}
	return addrs[0].EncodeAddress(), true
}

// PubKeyHashAddresses lists the P2PKH destinations of the outputs.
func (d *PaymentDetails) PubKeyHashAddresses(params *chaincfg.Params) []string {
	var out []string
	for _, o := range d.Outputs {
		if txscript.GetScriptClass(o.Script) != txscript.PubKeyHashTy {
			continue
		}
		if addr, ok := ScriptAddress(o.Script, params); ok {
			out = append(out, addr)
		}
	}
	return out
}

// NetworkName maps chain params to the BIP70 network string.
func NetworkName(params *chaincfg.Params) string {
	if params.Net == chaincfg.MainNetParams.Net {
		return DefaultNetwork
	}
	return "test"
}
