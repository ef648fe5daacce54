package inscription_test

import (
	"bytes"
	"context"
	"encoding/hex"
	"math"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/gin-gonic/gin"
	"github.com/inscription-c/pins/constants"
	"github.com/inscription-c/pins/inscription"
	"github.com/inscription-c/pins/internal/util"
	"github.com/inscription-c/pins/signer"
	"github.com/inscription-c/pins/signer/server/handle"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const protocolFee = 1_000_000

type fixture struct {
	signer   *signer.KeySigner
	from     string
	dest     string
	feeAddr  string
	prevOuts map[wire.OutPoint]*wire.TxOut
	funded   uint32
}

func newAddress(t *testing.T) (string, *btcec.PrivateKey) {
	t.Helper()
	key, err := btcec.NewPrivateKey()
	require.NoError(t, err)
	addr, err := util.PubKeyHashAddress(key.PubKey().SerializeCompressed(), util.ActiveNet.Params)
	require.NoError(t, err)
	return addr, key
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	from, key := newAddress(t)
	dest, _ := newAddress(t)
	feeAddr, _ := newAddress(t)
	return &fixture{
		signer:   signer.NewKeySigner(key),
		from:     from,
		dest:     dest,
		feeAddr:  feeAddr,
		prevOuts: map[wire.OutPoint]*wire.TxOut{},
	}
}

// utxo creates a confirmed output of value paying the funding address.
func (f *fixture) utxo(t *testing.T, value int64) inscription.FundingUTXO {
	t.Helper()
	script, err := util.AddressScript(f.from, util.ActiveNet.Params)
	require.NoError(t, err)
	f.funded++
	tx := wire.NewMsgTx(wire.TxVersion)
	tx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(&chainhash.Hash{0xaa}, f.funded), nil, nil))
	tx.AddTxOut(wire.NewTxOut(value, script))
	buf := bytes.NewBuffer(nil)
	require.NoError(t, tx.Serialize(buf))

	hash := tx.TxHash()
	f.prevOuts[wire.OutPoint{Hash: hash, Index: 0}] = tx.TxOut[0]
	return inscription.FundingUTXO{
		TxId:  hash.String(),
		Vout:  0,
		Value: value,
		Hex:   hex.EncodeToString(buf.Bytes()),
	}
}

func (f *fixture) inscriber(opts ...inscription.Option) *inscription.Inscriber {
	opts = append([]inscription.Option{
		inscription.WithNet(util.ActiveNet.Params),
		inscription.WithProtocolFee(f.feeAddr, protocolFee),
	}, opts...)
	return inscription.NewInscriber(opts...)
}

func (f *fixture) params(data []byte, utxos ...inscription.FundingUTXO) *inscription.InscribeParams {
	return &inscription.InscribeParams{
		Destination: f.dest,
		ContentType: "text/plain",
		Data:        data,
		FeeRate:     1,
		Utxos:       utxos,
		PublicKey:   f.signer.PubKey(),
		Signer:      f.signer,
		FromAddress: f.from,
	}
}

// verify decodes raws and runs the script engine over every input. Inputs
// may only spend funding outputs or outputs of earlier transactions.
func (f *fixture) verify(t *testing.T, raws []string) []*wire.MsgTx {
	t.Helper()
	txs := make([]*wire.MsgTx, 0, len(raws))
	for i, raw := range raws {
		b, err := hex.DecodeString(raw)
		require.NoError(t, err)
		tx := wire.NewMsgTx(wire.TxVersion)
		require.NoError(t, tx.Deserialize(bytes.NewReader(b)))

		fetcher := txscript.NewMultiPrevOutFetcher(f.prevOuts)
		for idx, in := range tx.TxIn {
			prevOut, ok := f.prevOuts[in.PreviousOutPoint]
			require.True(t, ok, "tx %d input %d spends unknown %s", i, idx, in.PreviousOutPoint)
			vm, err := txscript.NewEngine(prevOut.PkScript, tx, idx, txscript.StandardVerifyFlags,
				nil, nil, prevOut.Value, fetcher)
			require.NoError(t, err)
			require.NoError(t, vm.Execute(), "tx %d input %d", i, idx)
			delete(f.prevOuts, in.PreviousOutPoint)
		}
		hash := tx.TxHash()
		for vout, out := range tx.TxOut {
			f.prevOuts[wire.OutPoint{Hash: hash, Index: uint32(vout)}] = out
		}
		txs = append(txs, tx)
	}
	return txs
}

// revealed returns the pushes of a reveal input without the signature and
// redeem script.
func revealed(t *testing.T, in *wire.TxIn) [][]byte {
	t.Helper()
	var pushes [][]byte
	tokenizer := txscript.MakeScriptTokenizer(0, in.SignatureScript)
	for tokenizer.Next() {
		if tokenizer.Data() != nil {
			pushes = append(pushes, tokenizer.Data())
		} else {
			pushes = append(pushes, []byte{tokenizer.Opcode()})
		}
	}
	require.NoError(t, tokenizer.Err())
	require.GreaterOrEqual(t, len(pushes), 2)
	return pushes[:len(pushes)-2]
}

func scriptOf(t *testing.T, addr string) []byte {
	t.Helper()
	script, err := util.AddressScript(addr, util.ActiveNet.Params)
	require.NoError(t, err)
	return script
}

func TestInscribeEmptyPayload(t *testing.T) {
	f := newFixture(t)
	raws, err := f.inscriber().Inscribe(context.Background(), f.params(nil, f.utxo(t, 10_000_000)))
	require.NoError(t, err)
	require.Len(t, raws, 2)
	txs := f.verify(t, raws)

	commit := txs[0]
	assert.Equal(t, int32(constants.TxVersion), commit.Version)
	require.Len(t, commit.TxIn, 1)
	assert.Equal(t, uint32(constants.FundingSequence), commit.TxIn[0].Sequence)
	require.Len(t, commit.TxOut, 2)
	assert.Equal(t, int64(constants.UtxoMinValue), commit.TxOut[0].Value)
	assert.True(t, txscript.IsPayToScriptHash(commit.TxOut[0].PkScript))
	assert.Equal(t, int64(10_000_000-226-1000), commit.TxOut[1].Value)

	terminal := txs[1]
	require.Len(t, terminal.TxIn, 2)
	assert.Equal(t, wire.OutPoint{Hash: commit.TxHash(), Index: 0}, terminal.TxIn[0].PreviousOutPoint)
	assert.Equal(t, wire.OutPoint{Hash: commit.TxHash(), Index: 1}, terminal.TxIn[1].PreviousOutPoint)
	require.Len(t, terminal.TxOut, 3)
	assert.Equal(t, int64(constants.UtxoMinValue), terminal.TxOut[0].Value)
	assert.Equal(t, scriptOf(t, f.dest), terminal.TxOut[0].PkScript)
	assert.Equal(t, int64(protocolFee), terminal.TxOut[1].Value)
	assert.Equal(t, scriptOf(t, f.feeAddr), terminal.TxOut[1].PkScript)
	assert.Equal(t, int64(10_000_000-226-1000-408-1000-protocolFee), terminal.TxOut[2].Value)
	assert.Equal(t, scriptOf(t, f.from), terminal.TxOut[2].PkScript)

	pushes := revealed(t, terminal.TxIn[0])
	require.Len(t, pushes, 3)
	assert.Equal(t, []byte("ord"), pushes[0])
	assert.Equal(t, []byte{txscript.OP_0}, pushes[1])
	assert.Equal(t, []byte("text/plain"), pushes[2])
}

func TestInscribeOneChunk(t *testing.T) {
	f := newFixture(t)
	data := bytes.Repeat([]byte{'x'}, constants.MaxChunkLen)
	raws, err := f.inscriber().Inscribe(context.Background(), f.params(data, f.utxo(t, 10_000_000)))
	require.NoError(t, err)
	require.Len(t, raws, 2)
	txs := f.verify(t, raws)

	pushes := revealed(t, txs[1].TxIn[0])
	require.Len(t, pushes, 5)
	assert.Equal(t, []byte{txscript.OP_1}, pushes[1])
	assert.Equal(t, []byte{txscript.OP_0}, pushes[3])
	assert.Equal(t, data, pushes[4])
}

func TestInscribeChain(t *testing.T) {
	f := newFixture(t)
	data := make([]byte, 12*constants.MaxChunkLen+17)
	for i := range data {
		data[i] = byte('a' + i%26)
	}

	groups := 0
	rest := []inscription.Chunk(inscription.NewInscription(data, "text/plain"))
	for first := true; first || len(rest) > 0; first = false {
		var err error
		_, rest, err = inscription.Window(rest, first)
		require.NoError(t, err)
		groups++
	}
	require.Greater(t, groups, 1)

	raws, err := f.inscriber().Inscribe(context.Background(), f.params(data, f.utxo(t, 3_000), f.utxo(t, 50_000_000)))
	require.NoError(t, err)
	require.Len(t, raws, groups+1)
	txs := f.verify(t, raws)

	// each transaction reveals the commitment of the one before
	var pushes [][]byte
	for i := 1; i < len(txs); i++ {
		prev := txs[i-1].TxHash()
		assert.Equal(t, wire.OutPoint{Hash: prev, Index: 0}, txs[i].TxIn[0].PreviousOutPoint)
		pushes = append(pushes, revealed(t, txs[i].TxIn[0])...)
	}
	var got []byte
	for i := 4; i < len(pushes); i += 2 {
		got = append(got, pushes[i]...)
	}
	assert.Equal(t, data, got)

	// change is spent before fresh funding
	for i := 1; i < len(txs)-1; i++ {
		if len(txs[i].TxIn) > 1 {
			assert.Equal(t, txs[i-1].TxHash(), txs[i].TxIn[1].PreviousOutPoint.Hash)
		}
	}
}

func TestInscribeLeavesUtxosUntouched(t *testing.T) {
	f := newFixture(t)
	utxos := []inscription.FundingUTXO{f.utxo(t, 5_000), f.utxo(t, 20_000_000)}
	before := append([]inscription.FundingUTXO(nil), utxos...)
	params := f.params(bytes.Repeat([]byte{'z'}, 3000), utxos...)
	_, err := f.inscriber().Inscribe(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, before, params.Utxos)
}

type countingSigner struct {
	inscription.Signer
	calls int32
}

func (c *countingSigner) SignPsbt(ctx context.Context, psbtHex string) (*inscription.SignResult, error) {
	atomic.AddInt32(&c.calls, 1)
	return c.Signer.SignPsbt(ctx, psbtHex)
}

func TestInscribeFailsBeforeSigning(t *testing.T) {
	f := newFixture(t)
	counting := &countingSigner{Signer: f.signer}
	params := f.params([]byte("hi"), f.utxo(t, constants.UtxoMinValue+100))
	params.Signer = counting

	raws, err := f.inscriber().Inscribe(context.Background(), params)
	assert.True(t, errors.Is(err, inscription.ErrInsufficientFunds), "%v", err)
	assert.Nil(t, raws)
	assert.Zero(t, atomic.LoadInt32(&counting.calls))
}

func TestInscribeFailsAtTerminal(t *testing.T) {
	f := newFixture(t)
	counting := &countingSigner{Signer: f.signer}
	params := f.params([]byte("hi"), f.utxo(t, 100_000))
	params.Signer = counting

	raws, err := f.inscriber().Inscribe(context.Background(), params)
	assert.True(t, errors.Is(err, inscription.ErrInsufficientFunds), "%v", err)
	assert.Nil(t, raws)
	assert.Equal(t, int32(1), atomic.LoadInt32(&counting.calls))
}

func TestInscribeEmptyPool(t *testing.T) {
	f := newFixture(t)
	_, err := f.inscriber().Inscribe(context.Background(), f.params([]byte("hi")))
	assert.True(t, errors.Is(err, inscription.ErrInsufficientFunds), "%v", err)
}

func TestInscribeSignerErrorPropagates(t *testing.T) {
	f := newFixture(t)
	boom := errors.New("signer unavailable")
	params := f.params([]byte("hi"), f.utxo(t, 10_000_000))
	params.Signer = inscription.SignerFunc(func(context.Context, string) (*inscription.SignResult, error) {
		return nil, boom
	})
	_, err := f.inscriber().Inscribe(context.Background(), params)
	assert.Equal(t, boom, err)
}

func TestInscribeWithoutProtocolFee(t *testing.T) {
	f := newFixture(t)
	raws, err := f.inscriber(inscription.WithProtocolFee("", 0)).
		Inscribe(context.Background(), f.params([]byte("hi"), f.utxo(t, 10_000)))
	require.NoError(t, err)
	txs := f.verify(t, raws)
	terminal := txs[len(txs)-1]
	require.Len(t, terminal.TxOut, 2)
	assert.Equal(t, scriptOf(t, f.dest), terminal.TxOut[0].PkScript)
	assert.Equal(t, scriptOf(t, f.from), terminal.TxOut[1].PkScript)
}

func TestInscribeRejectsInvalidParams(t *testing.T) {
	f := newFixture(t)
	params := f.params([]byte("hi"), f.utxo(t, 10_000_000))
	params.Signer = nil
	_, err := f.inscriber().Inscribe(context.Background(), params)
	assert.Error(t, err)

	params = f.params([]byte("hi"), f.utxo(t, 10_000_000))
	params.Destination = "not an address"
	_, err = f.inscriber().Inscribe(context.Background(), params)
	assert.Error(t, err)
}

func TestInscribeRejectsBadFeeRate(t *testing.T) {
	f := newFixture(t)
	for _, rate := range []float64{0, -1, math.Inf(1), math.NaN(), 100_001} {
		params := f.params([]byte("hi"), f.utxo(t, 10_000_000))
		params.FeeRate = rate
		_, err := f.inscriber().Inscribe(context.Background(), params)
		assert.ErrorContains(t, err, "FeeRate", "rate %v", rate)
	}

	_, err := f.inscriber().PrepareMultipleFundingOutputs(context.Background(),
		&inscription.PrepareParams{
			Signer:  f.signer,
			Utxos:   []inscription.FundingUTXO{f.utxo(t, 100_000)},
			FeeRate: math.Inf(1),
			Amount:  1,
			Cost:    1_000,
			Address: f.from,
		})
	assert.ErrorContains(t, err, "FeeRate")
}

func TestInscribeContentTypeLength(t *testing.T) {
	f := newFixture(t)
	counting := &countingSigner{Signer: f.signer}
	params := f.params([]byte("hi"), f.utxo(t, 10_000_000))
	params.Signer = counting
	params.ContentType = strings.Repeat("a", constants.MaxContentTypeLen+1)
	_, err := f.inscriber().Inscribe(context.Background(), params)
	assert.ErrorContains(t, err, "content type")
	assert.Zero(t, atomic.LoadInt32(&counting.calls))

	params = f.params([]byte("hi"), f.utxo(t, 10_000_000))
	params.ContentType = strings.Repeat("a", constants.MaxContentTypeLen)
	raws, err := f.inscriber().Inscribe(context.Background(), params)
	require.NoError(t, err)
	txs := f.verify(t, raws)
	pushes := revealed(t, txs[len(txs)-1].TxIn[0])
	assert.Equal(t, []byte(params.ContentType), pushes[2])
}

func TestInscribeThroughRemoteSigner(t *testing.T) {
	gin.SetMode(gin.TestMode)
	f := newFixture(t)
	h, err := handle.New(handle.WithSigner(f.signer))
	require.NoError(t, err)
	h.InitRoute()
	srv := httptest.NewServer(h.Engine())
	defer srv.Close()

	params := f.params(bytes.Repeat([]byte{'r'}, 2000), f.utxo(t, 10_000_000))
	params.Signer = signer.NewRemoteSigner(srv.URL, signer.WithHTTPClient(srv.Client()))
	raws, err := f.inscriber().Inscribe(context.Background(), params)
	require.NoError(t, err)
	f.verify(t, raws)
}
