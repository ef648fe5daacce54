package inscription

import (
	"bytes"
	"encoding/hex"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/pkg/errors"
)

// FundingUTXO is a spendable output used to pay for the chain, together with
// the raw transaction that created it.
type FundingUTXO struct {
	TxId  string `json:"txid" validate:"required,len=64,hexadecimal"`
	Vout  uint32 `json:"vout"`
	Value int64  `json:"value" validate:"gt=0"`
	Hex   string `json:"hex" validate:"required,hexadecimal"`
}

// decode returns the outpoint spent by u and its parent transaction, making
// sure the raw transaction matches the declared id and holds the output.
func (u FundingUTXO) decode() (*wire.OutPoint, *wire.MsgTx, error) {
	hash, err := chainhash.NewHashFromStr(u.TxId)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "utxo %s:%d", u.TxId, u.Vout)
	}
	raw, err := hex.DecodeString(u.Hex)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "utxo %s:%d raw tx", u.TxId, u.Vout)
	}
	tx := wire.NewMsgTx(wire.TxVersion)
	if err := tx.Deserialize(bytes.NewReader(raw)); err != nil {
		return nil, nil, errors.Wrapf(err, "utxo %s:%d raw tx", u.TxId, u.Vout)
	}
	if tx.TxHash() != *hash {
		return nil, nil, errors.Errorf("utxo %s:%d raw tx hashes to %s", u.TxId, u.Vout, tx.TxHash())
	}
	if int(u.Vout) >= len(tx.TxOut) {
		return nil, nil, errors.Errorf("utxo %s:%d output out of range", u.TxId, u.Vout)
	}
	return wire.NewOutPoint(hash, u.Vout), tx, nil
}

// Pool is an ordered set of funding outputs consumed from the front. It is a
// value: Take and Prepend return a new Pool and leave the receiver intact.
type Pool struct {
	utxos []FundingUTXO
}

// NewPool copies utxos into a new pool, so the caller's slice is never
// touched by the chain builder.
func NewPool(utxos []FundingUTXO) Pool {
	cp := make([]FundingUTXO, len(utxos))
	copy(cp, utxos)
	return Pool{utxos: cp}
}

func (p Pool) Len() int {
	return len(p.utxos)
}

// Total is the summed value of every output left in the pool.
func (p Pool) Total() int64 {
	var total int64
	for _, u := range p.utxos {
		total += u.Value
	}
	return total
}

// Take removes the first output. ok is false when the pool is empty.
func (p Pool) Take() (utxo FundingUTXO, rest Pool, ok bool) {
	if len(p.utxos) == 0 {
		return FundingUTXO{}, p, false
	}
	return p.utxos[0], Pool{utxos: p.utxos[1:]}, true
}

// Prepend returns a pool with u in front, preferred by the next Take.
func (p Pool) Prepend(u FundingUTXO) Pool {
	utxos := make([]FundingUTXO, 0, len(p.utxos)+1)
	utxos = append(utxos, u)
	utxos = append(utxos, p.utxos...)
	return Pool{utxos: utxos}
}

// Utxos returns a copy of the outputs left in the pool.
func (p Pool) Utxos() []FundingUTXO {
	cp := make([]FundingUTXO, len(p.utxos))
	copy(cp, p.utxos)
	return cp
}
