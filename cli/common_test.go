package cli

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/inscription-c/pins/client"
	"github.com/inscription-c/pins/config"
	"github.com/inscription-c/pins/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawTx(t *testing.T, n byte) string {
	t.Helper()
	tx := wire.NewMsgTx(1)
	tx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(&chainhash.Hash{n}, 0), nil, nil))
	tx.AddTxOut(wire.NewTxOut(1000, []byte{0x51}))
	buf := bytes.NewBuffer(nil)
	require.NoError(t, tx.Serialize(buf))
	return hex.EncodeToString(buf.Bytes())
}

func TestChainTxs(t *testing.T) {
	raws := []string{rawTx(t, 1), rawTx(t, 2), rawTx(t, 3)}
	txs, err := chainTxs(raws, constants.TxKindCommit, constants.TxKindTerminal)
	require.NoError(t, err)
	require.Len(t, txs, 3)
	assert.Equal(t, constants.TxKindCommit, txs[0].Kind)
	assert.Equal(t, constants.TxKindTerminal, txs[2].Kind)
	assert.Equal(t, uint32(2), txs[2].Seq)
	for i, tx := range txs {
		loaded, err := tx.LoadTx()
		require.NoError(t, err)
		assert.Equal(t, loaded.TxHash().String(), tx.TxId, "tx %d", i)
	}

	_, err = chainTxs([]string{"zz"}, constants.TxKindCommit, constants.TxKindTerminal)
	assert.Error(t, err)
}

// rejectingNode accepts sendrawtransaction until failAt calls were made.
func rejectingNode(t *testing.T, failAt int, sent *[]string) *client.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := struct {
			Params []string `json:"params"`
		}{}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if len(*sent) == failAt {
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"result": nil,
				"error":  map[string]interface{}{"code": -26, "message": "mandatory-script-verify-flag-failed"},
			})
			return
		}
		*sent = append(*sent, req.Params[0])
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"result": "ok", "error": nil})
	}))
	t.Cleanup(srv.Close)
	cli, err := client.NewClient(client.WithClientHost(srv.URL))
	require.NoError(t, err)
	return cli
}

func TestBroadcastInOrder(t *testing.T) {
	txs, err := chainTxs([]string{rawTx(t, 1), rawTx(t, 2), rawTx(t, 3)}, constants.TxKindCommit, constants.TxKindTerminal)
	require.NoError(t, err)
	txs[0].Broadcast = true

	var sent []string
	cli := rejectingNode(t, -1, &sent)
	require.NoError(t, broadcast(context.Background(), cli, nil, 0, txs))
	assert.Equal(t, []string{txs[1].RawTx, txs[2].RawTx}, sent)
}

func TestBroadcastStopsAtFailure(t *testing.T) {
	txs, err := chainTxs([]string{rawTx(t, 1), rawTx(t, 2), rawTx(t, 3)}, constants.TxKindCommit, constants.TxKindTerminal)
	require.NoError(t, err)

	var sent []string
	cli := rejectingNode(t, 1, &sent)
	err = broadcast(context.Background(), cli, nil, 0, txs)
	assert.ErrorContains(t, err, "broadcast tx 1")
	assert.Equal(t, []string{txs[0].RawTx}, sent)
}

func TestInscribeProtocolFeeFlags(t *testing.T) {
	t.Cleanup(func() {
		config.ProtocolFee = constants.DefaultProtocolFee
		config.ProtocolFeeAddress = constants.DefaultProtocolFeeAddress
	})

	require.NoError(t, InscribeCmd.ParseFlags(nil))
	addr, fee := newInscriber().ProtocolFee()
	assert.Equal(t, constants.DefaultProtocolFeeAddress, addr)
	assert.Equal(t, int64(constants.DefaultProtocolFee), fee)

	require.NoError(t, InscribeCmd.ParseFlags([]string{"--protocol_fee", "5000", "--protocol_fee_addr", "BFeeAddr"}))
	addr, fee = newInscriber().ProtocolFee()
	assert.Equal(t, "BFeeAddr", addr)
	assert.Equal(t, int64(5000), fee)

	require.NoError(t, InscribeCmd.ParseFlags([]string{"--protocol_fee", "0"}))
	_, fee = newInscriber().ProtocolFee()
	assert.Zero(t, fee)
}
