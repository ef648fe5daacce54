package inscription

import (
	"context"

	"github.com/btcsuite/btcd/btcutil/psbt"
	"github.com/btcsuite/btcd/wire"
	"github.com/davecgh/go-spew/spew"
	"github.com/inscription-c/pins/constants"
	"github.com/inscription-c/pins/inscription/log"
	"github.com/pkg/errors"
)

// Stage is the position of a chain in its build.
type Stage uint8

const (
	// StageInit has no pending commitment yet.
	StageInit Stage = iota
	// StageCommit has a pending P2SH output and groups left to commit.
	StageCommit
	// StageFinal has committed every group; only the terminal transaction is left.
	StageFinal
	// StageDone has built the terminal transaction.
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageInit:
		return "init"
	case StageCommit:
		return "commit"
	case StageFinal:
		return "final"
	case StageDone:
		return "done"
	}
	return "unknown"
}

// PendingInput describes the P2SH output of the last built transaction, to
// be spent as input 0 of the next one.
type PendingInput struct {
	OutPoint     wire.OutPoint
	PrevTx       *wire.MsgTx
	RedeemScript []byte
}

// ChainLink carries what the next transaction needs to reveal the previous
// commitment: the output itself and the lock script and group behind its hash.
type ChainLink struct {
	Pending    *PendingInput
	LockScript []byte
	Group      []Chunk
}

// chainState is threaded through every step of a build.
type chainState struct {
	stage     Stage
	link      ChainLink
	pool      Pool
	remaining []Chunk
	txs       []*wire.MsgTx
}

// chainRun holds the per call values shared by every step.
type chainRun struct {
	params       *InscribeParams
	changeScript []byte
	destScript   []byte
	feeScript    []byte
}

// step advances st by exactly one transaction.
func (i *Inscriber) step(ctx context.Context, run *chainRun, st chainState) (chainState, error) {
	switch st.stage {
	case StageInit, StageCommit:
		return i.commit(ctx, run, st)
	case StageFinal:
		return i.terminal(ctx, run, st)
	}
	return st, errors.Errorf("no step from stage %s", st.stage)
}

// commit builds the transaction committing to the next partial group. When a
// commitment is pending it is revealed by input 0 of the same transaction.
func (i *Inscriber) commit(ctx context.Context, run *chainRun, st chainState) (chainState, error) {
	group, rest, err := Window(st.remaining, st.stage == StageInit)
	if err != nil {
		return st, errors.Wrap(err, "window inscription")
	}
	lock, err := LockScript(run.params.PublicKey, group)
	if err != nil {
		return st, errors.Wrap(err, "lock script")
	}
	p2sh, err := P2SHScript(lock)
	if err != nil {
		return st, errors.Wrap(err, "p2sh script")
	}

	tx := wire.NewMsgTx(constants.TxVersion)
	var prevTxs []*wire.MsgTx
	var redeem []byte
	pending := st.link.Pending
	if pending != nil {
		tx.AddTxIn(wire.NewTxIn(&pending.OutPoint, nil, nil))
		prevTxs = append(prevTxs, pending.PrevTx)
		redeem = pending.RedeemScript
	}
	tx.AddTxOut(wire.NewTxOut(constants.UtxoMinValue, p2sh))

	// Only the opening transaction pays a fee; later ones spend the carried
	// commitment value instead.
	fee := func(inputs, outputs int) int64 {
		if pending != nil {
			return 0
		}
		return EstimateFee(inputs, outputs, run.params.FeeRate)
	}
	funded, err := fund(tx, st.pool, constants.UtxoMinValue, fee, run.changeScript)
	if err != nil {
		return st, err
	}

	final, err := i.sign(ctx, run.params.Signer, tx, append(prevTxs, funded.prevTxs...), redeem, st.link)
	if err != nil {
		return st, err
	}
	txId := final.TxHash()
	i.log.Infof("commit tx %d: %s, %d chunks, change %d", len(st.txs), txId, len(group), funded.change)

	next := chainState{
		stage:     StageCommit,
		pool:      funded.pool,
		remaining: rest,
		txs:       appendTx(st.txs, final),
		link: ChainLink{
			Pending: &PendingInput{
				OutPoint:     wire.OutPoint{Hash: txId, Index: 0},
				PrevTx:       final,
				RedeemScript: lock,
			},
			LockScript: lock,
			Group:      group,
		},
	}
	if len(rest) == 0 {
		next.stage = StageFinal
	}
	if funded.change > 0 {
		raw, err := serializeTx(final)
		if err != nil {
			return st, err
		}
		next.pool = next.pool.Prepend(FundingUTXO{
			TxId:  txId.String(),
			Vout:  1,
			Value: funded.change,
			Hex:   raw,
		})
	}
	return next, nil
}

type funding struct {
	prevTxs []*wire.MsgTx
	change  int64
	pool    Pool
}

// fund adds inputs from the front of pool to tx until they cover required
// plus the fee for the transaction's current shape with one more output.
// A positive remainder is paid back to changeScript.
func fund(tx *wire.MsgTx, pool Pool, required int64, fee func(inputs, outputs int) int64, changeScript []byte) (*funding, error) {
	res := &funding{pool: pool}
	var total, change int64
	for change <= 0 {
		utxo, rest, ok := res.pool.Take()
		if !ok {
			if change < 0 || len(res.prevTxs) == 0 {
				return nil, errors.Wrapf(ErrInsufficientFunds, "%d inputs cover %d of %d", len(res.prevTxs), total, total-change)
			}
			break
		}
		res.pool = rest

		outPoint, prevTx, err := utxo.decode()
		if err != nil {
			return nil, err
		}
		in := wire.NewTxIn(outPoint, nil, nil)
		in.Sequence = constants.FundingSequence
		tx.AddTxIn(in)
		res.prevTxs = append(res.prevTxs, prevTx)

		total += utxo.Value
		change = total - fee(len(tx.TxIn), len(tx.TxOut)+1) - required
	}
	if change > 0 {
		tx.AddTxOut(wire.NewTxOut(change, changeScript))
	}
	res.change = change
	return res, nil
}

// sign hands tx to signer as a PSBT and finalizes the result: input 0 with
// the reveal of link when a commitment is pending, every other input with the
// standard finalizer.
func (i *Inscriber) sign(ctx context.Context, signer Signer, tx *wire.MsgTx, prevTxs []*wire.MsgTx, redeem []byte, link ChainLink) (*wire.MsgTx, error) {
	p, err := psbt.NewFromUnsignedTx(tx)
	if err != nil {
		return nil, errors.Wrap(err, "new psbt")
	}
	for idx := range p.Inputs {
		p.Inputs[idx].NonWitnessUtxo = prevTxs[idx]
	}
	if redeem != nil {
		p.Inputs[0].RedeemScript = redeem
	}
	unsigned, err := EncodePsbt(p)
	if err != nil {
		return nil, err
	}

	res, err := signer.SignPsbt(ctx, unsigned)
	if err != nil {
		return nil, err
	}
	signed, err := DecodePsbt(res.PsbtHex)
	if err != nil {
		return nil, err
	}
	if err := finalizePacket(signed, link, res.Signatures); err != nil {
		return nil, err
	}
	final, err := psbt.Extract(signed)
	if err != nil {
		return nil, errors.Wrap(err, "extract tx")
	}
	i.log.Debugf("signed tx: %v", log.NewClosure(func() string {
		return spew.Sdump(final)
	}))
	return final, nil
}

func appendTx(txs []*wire.MsgTx, tx *wire.MsgTx) []*wire.MsgTx {
	out := make([]*wire.MsgTx, 0, len(txs)+1)
	out = append(out, txs...)
	return append(out, tx)
}
