package inscription

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/txscript"
)

// LockScript builds the redeem script committed by a P2SH output:
//
//	<pubkey> OP_CHECKSIGVERIFY OP_DROP... OP_TRUE
//
// with one OP_DROP per chunk of group, so the revealed chunks are discarded
// once the signature has been checked.
func LockScript(pubKey []byte, group []Chunk) ([]byte, error) {
	builder := txscript.NewScriptBuilder().
		AddData(pubKey).
		AddOp(txscript.OP_CHECKSIGVERIFY)
	for range group {
		builder.AddOp(txscript.OP_DROP)
	}
	return builder.AddOp(txscript.OP_TRUE).Script()
}

// P2SHScript returns OP_HASH160 <hash160(lock)> OP_EQUAL.
func P2SHScript(lock []byte) ([]byte, error) {
	return txscript.NewScriptBuilder().
		AddOp(txscript.OP_HASH160).
		AddData(btcutil.Hash160(lock)).
		AddOp(txscript.OP_EQUAL).
		Script()
}

// UnlockScript reveals group and lock: the chunks in order, the signature
// and finally the redeem script itself.
func UnlockScript(group []Chunk, sig, lock []byte) ([]byte, error) {
	builder := txscript.NewScriptBuilder()
	for _, c := range group {
		c.addTo(builder)
	}
	return builder.AddData(sig).AddData(lock).Script()
}
