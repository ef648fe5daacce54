package inscription

import (
	"context"

	"github.com/btcsuite/btcd/wire"
	"github.com/inscription-c/pins/constants"
	"github.com/inscription-c/pins/internal/util"
	"github.com/pkg/errors"
)

// PrepareParams describes a split of funds into Amount equal outputs, each
// able to fund one later chain on its own.
type PrepareParams struct {
	Signer  Signer        `validate:"required"`
	Utxos   []FundingUTXO `validate:"required,dive"`
	FeeRate float64       `validate:"gt=0,lte=100000"`
	Amount  int           `validate:"gt=0"`
	Cost    int64         `validate:"gt=0"`
	// Address receives the equal outputs and the change.
	Address string `validate:"required"`
}

// PrepareMultipleFundingOutputs spends every utxo of params into Amount
// outputs of Cost plus one change output, and returns the signed raw
// transaction.
func PrepareMultipleFundingOutputs(ctx context.Context, params *PrepareParams) (string, error) {
	return NewInscriber().PrepareMultipleFundingOutputs(ctx, params)
}

func (i *Inscriber) PrepareMultipleFundingOutputs(ctx context.Context, params *PrepareParams) (string, error) {
	if err := validate.Struct(params); err != nil {
		return "", errors.Wrap(err, "prepare params")
	}
	script, err := util.AddressScript(params.Address, i.net)
	if err != nil {
		return "", err
	}

	tx := wire.NewMsgTx(wire.TxVersion)
	prevTxs := make([]*wire.MsgTx, 0, len(params.Utxos))
	var total int64
	for _, utxo := range params.Utxos {
		outPoint, prevTx, err := utxo.decode()
		if err != nil {
			return "", err
		}
		tx.AddTxIn(wire.NewTxIn(outPoint, nil, nil))
		prevTxs = append(prevTxs, prevTx)
		total += utxo.Value
	}
	for n := 0; n < params.Amount; n++ {
		tx.AddTxOut(wire.NewTxOut(params.Cost, script))
	}

	change := total - params.Cost*int64(params.Amount) - EstimateFee(len(params.Utxos), params.Amount+1, params.FeeRate)
	if change < 0 {
		return "", errors.Wrapf(ErrInsufficientFunds, "short by %d", -change)
	}
	if change < constants.MinPrepareChange {
		return "", errors.Wrapf(ErrChangeBelowMinimum, "change %d", change)
	}
	tx.AddTxOut(wire.NewTxOut(change, script))

	final, err := i.sign(ctx, params.Signer, tx, prevTxs, nil, ChainLink{})
	if err != nil {
		return "", err
	}
	i.log.Infof("prepare tx %s: %d outputs of %d, change %d", final.TxHash(), params.Amount, params.Cost, change)
	return serializeTx(final)
}
