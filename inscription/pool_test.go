package inscription

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawUtxo(t *testing.T, value int64) FundingUTXO {
	t.Helper()
	tx := wire.NewMsgTx(wire.TxVersion)
	tx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(&chainhash.Hash{byte(value)}, 0), nil, nil))
	tx.AddTxOut(wire.NewTxOut(value, []byte{0x51}))
	buf := bytes.NewBuffer(nil)
	require.NoError(t, tx.Serialize(buf))
	return FundingUTXO{
		TxId:  tx.TxHash().String(),
		Vout:  0,
		Value: value,
		Hex:   hex.EncodeToString(buf.Bytes()),
	}
}

func TestPoolIsAValue(t *testing.T) {
	utxos := []FundingUTXO{rawUtxo(t, 1), rawUtxo(t, 2)}
	pool := NewPool(utxos)
	utxos[0].Value = 100
	assert.Equal(t, int64(3), pool.Total())

	first, rest, ok := pool.Take()
	require.True(t, ok)
	assert.Equal(t, int64(1), first.Value)
	assert.Equal(t, 1, rest.Len())
	assert.Equal(t, 2, pool.Len())

	front := rest.Prepend(rawUtxo(t, 7))
	assert.Equal(t, []int64{7, 2}, []int64{front.Utxos()[0].Value, front.Utxos()[1].Value})
	assert.Equal(t, 1, rest.Len())

	_, empty, _ := rest.Take()
	_, _, ok = empty.Take()
	assert.False(t, ok)
}

func TestFundingUTXODecode(t *testing.T) {
	u := rawUtxo(t, 5000)
	op, tx, err := u.decode()
	require.NoError(t, err)
	assert.Equal(t, tx.TxHash(), op.Hash)
	assert.Equal(t, uint32(0), op.Index)

	wrongId := u
	wrongId.TxId = chainhash.Hash{9}.String()
	_, _, err = wrongId.decode()
	assert.ErrorContains(t, err, "hashes to")

	wrongVout := u
	wrongVout.Vout = 3
	_, _, err = wrongVout.decode()
	assert.ErrorContains(t, err, "out of range")

	badHex := u
	badHex.Hex = "zz"
	_, _, err = badHex.decode()
	assert.Error(t, err)
}
