package util

import (
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/btcwallet/netparams"
)

// newChainParams derives the parameters of a legacy-address chain from a btcd
// base network, replacing the network magic and the base58 version bytes.
func newChainParams(base chaincfg.Params, name string, magic wire.BitcoinNet, pubKeyHashID, scriptHashID, privateKeyID byte) *chaincfg.Params {
	params := base
	params.Name = name
	params.Net = magic
	params.PubKeyHashAddrID = pubKeyHashID
	params.ScriptHashAddrID = scriptHashID
	params.PrivateKeyID = privateKeyID
	params.Bech32HRPSegwit = ""
	return &params
}

var (
	// MainNetParams are the bellscoin main network parameters.
	MainNetParams = netparams.Params{
		Params:        newChainParams(chaincfg.MainNetParams, "bells-mainnet", 0xc0c0c0c0, 0x19, 0x1e, 0x99),
		RPCClientPort: "19918",
		RPCServerPort: "19919",
	}

	// TestNetParams are the bellscoin test network parameters.
	TestNetParams = netparams.Params{
		Params:        newChainParams(chaincfg.TestNet3Params, "bells-testnet", 0xfcc1b7dc, 0x21, 0x16, 0xf1),
		RPCClientPort: "29918",
		RPCServerPort: "29919",
	}

	// ActiveNet is the network the commands operate on.
	ActiveNet = &MainNetParams
)

// UseTestNet switches ActiveNet to the test network.
func UseTestNet(testnet bool) {
	if testnet {
		ActiveNet = &TestNetParams
		return
	}
	ActiveNet = &MainNetParams
}
