package util

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/pkg/errors"
)

// AddressScript is a function that converts a given address to a script.
// It first decodes the address, then generates a pay-to-address script from the decoded address.
// It returns the generated script and any error that occurred during the process.
func AddressScript(address string, params *chaincfg.Params) ([]byte, error) {
	decodeAddress, err := btcutil.DecodeAddress(address, params)
	if err != nil {
		return nil, errors.Wrapf(err, "decode address %s", address)
	}
	if !decodeAddress.IsForNet(params) {
		return nil, errors.Errorf("address %s is not for %s", address, params.Name)
	}
	return txscript.PayToAddrScript(decodeAddress)
}

// PubKeyHashAddress returns the pay-to-pubkey-hash address of a serialized public key.
func PubKeyHashAddress(pubKey []byte, params *chaincfg.Params) (string, error) {
	addr, err := btcutil.NewAddressPubKeyHash(btcutil.Hash160(pubKey), params)
	if err != nil {
		return "", err
	}
	return addr.EncodeAddress(), nil
}
