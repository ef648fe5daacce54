package inscription

import (
	"context"

	"github.com/btcsuite/btcd/wire"
	"github.com/inscription-c/pins/constants"
	"github.com/pkg/errors"
)

// terminal closes the chain: it reveals the last commitment, pays the
// carrier value to the destination and the protocol fee, and returns the
// remaining funds as change.
func (i *Inscriber) terminal(ctx context.Context, run *chainRun, st chainState) (chainState, error) {
	pending := st.link.Pending
	if pending == nil {
		return st, errors.New("terminal transaction without pending commitment")
	}

	tx := wire.NewMsgTx(constants.TxVersion)
	tx.AddTxIn(wire.NewTxIn(&pending.OutPoint, nil, nil))
	tx.AddTxOut(wire.NewTxOut(constants.UtxoMinValue, run.destScript))
	required := int64(constants.UtxoMinValue)
	if i.protocolFee > 0 {
		tx.AddTxOut(wire.NewTxOut(i.protocolFee, run.feeScript))
		required += i.protocolFee
	}

	fee := func(inputs, outputs int) int64 {
		return EstimateFee(inputs, outputs, run.params.FeeRate)
	}
	funded, err := fund(tx, st.pool, required, fee, run.changeScript)
	if err != nil {
		return st, err
	}

	prevTxs := append([]*wire.MsgTx{pending.PrevTx}, funded.prevTxs...)
	final, err := i.sign(ctx, run.params.Signer, tx, prevTxs, pending.RedeemScript, st.link)
	if err != nil {
		return st, err
	}
	i.log.Infof("terminal tx %d: %s, change %d", len(st.txs), final.TxHash(), funded.change)

	return chainState{
		stage: StageDone,
		pool:  funded.pool,
		txs:   appendTx(st.txs, final),
	}, nil
}
