package tables

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"gotest.tools/assert"
)

func TestChainTxLoadTx(t *testing.T) {
	tx := wire.NewMsgTx(1)
	tx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(&chainhash.Hash{3}, 1), []byte{0x51}, nil))
	tx.AddTxOut(wire.NewTxOut(1000, []byte{0x51}))
	buf := bytes.NewBuffer(nil)
	assert.NilError(t, tx.Serialize(buf))

	row := &ChainTx{TxId: tx.TxHash().String(), RawTx: hex.EncodeToString(buf.Bytes())}
	loaded, err := row.LoadTx()
	assert.NilError(t, err)
	assert.Equal(t, loaded.TxHash().String(), row.TxId)

	_, err = (&ChainTx{RawTx: "zz"}).LoadTx()
	assert.Assert(t, err != nil)
}
