package inscription

import (
	"bytes"
	"context"
	"encoding/hex"

	"github.com/btcsuite/btcd/wire"
	"github.com/inscription-c/pins/constants"
	"github.com/inscription-c/pins/internal/util"
	"github.com/pkg/errors"
)

// InscribeParams is everything one chain is built from.
type InscribeParams struct {
	// Destination receives the carrier output of the terminal transaction.
	Destination string `validate:"required"`
	ContentType string
	Data        []byte
	// FeeRate is in units per byte of the linear size estimate.
	FeeRate float64       `validate:"gt=0,lte=100000"`
	Utxos   []FundingUTXO `validate:"dive"`
	// PublicKey is the serialized key checked by every lock script.
	PublicKey []byte `validate:"required"`
	Signer    Signer `validate:"required"`
	// FromAddress receives every change output.
	FromAddress string `validate:"required"`
}

// Inscribe builds the commit/reveal chain for params with a default
// Inscriber.
func Inscribe(ctx context.Context, params *InscribeParams) ([]string, error) {
	return NewInscriber().Inscribe(ctx, params)
}

// Inscribe builds and signs the whole chain and returns the raw transactions
// in broadcast order, the terminal transaction last. Nothing is returned when
// any step fails. params.Utxos is left untouched.
func (i *Inscriber) Inscribe(ctx context.Context, params *InscribeParams) ([]string, error) {
	if err := validate.Struct(params); err != nil {
		return nil, errors.Wrap(err, "inscribe params")
	}
	if len(params.ContentType) > constants.MaxContentTypeLen {
		return nil, errors.Errorf("content type is %d bytes, at most %d allowed", len(params.ContentType), constants.MaxContentTypeLen)
	}
	run := &chainRun{params: params}
	var err error
	if run.destScript, err = util.AddressScript(params.Destination, i.net); err != nil {
		return nil, err
	}
	if run.changeScript, err = util.AddressScript(params.FromAddress, i.net); err != nil {
		return nil, err
	}
	if i.protocolFee > 0 {
		if run.feeScript, err = util.AddressScript(i.protocolFeeAddress, i.net); err != nil {
			return nil, err
		}
	}

	st := chainState{
		stage:     StageInit,
		pool:      NewPool(params.Utxos),
		remaining: NewInscription(params.Data, params.ContentType),
	}
	i.log.Infof("inscribing %d bytes of %s to %s", len(params.Data), params.ContentType, params.Destination)
	for st.stage != StageDone {
		if st, err = i.step(ctx, run, st); err != nil {
			return nil, err
		}
	}

	txs := make([]string, 0, len(st.txs))
	for _, tx := range st.txs {
		raw, err := serializeTx(tx)
		if err != nil {
			return nil, err
		}
		txs = append(txs, raw)
	}
	return txs, nil
}

func serializeTx(tx *wire.MsgTx) (string, error) {
	buf := bytes.NewBuffer(make([]byte, 0, tx.SerializeSize()))
	if err := tx.Serialize(buf); err != nil {
		return "", errors.Wrap(err, "serialize tx")
	}
	return hex.EncodeToString(buf.Bytes()), nil
}
