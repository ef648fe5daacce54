package signer

import (
	"context"
	"encoding/hex"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/psbt"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/inscription-c/pins/inscription"
	"github.com/pkg/errors"
)

// KeySigner signs every input of a PSBT with a single private key.
//
// Inputs carrying a redeem script are P2SH commitments whose signature script
// is assembled by the caller, so their signatures are returned raw in
// SignResult.Signatures. All other inputs are pay-to-pubkey-hash and get a
// partial signature inside the PSBT.
type KeySigner struct {
	key    *btcec.PrivateKey
	pubKey []byte
}

// NewKeySigner returns a signer for key using its compressed public key.
func NewKeySigner(key *btcec.PrivateKey) *KeySigner {
	return &KeySigner{
		key:    key,
		pubKey: key.PubKey().SerializeCompressed(),
	}
}

// NewKeySignerFromWIF decodes a wallet import format key of params.
func NewKeySignerFromWIF(wifKey string, params *chaincfg.Params) (*KeySigner, error) {
	wif, err := btcutil.DecodeWIF(wifKey)
	if err != nil {
		return nil, errors.Wrap(err, "decode wif")
	}
	if !wif.IsForNet(params) {
		return nil, errors.Errorf("wif is not for %s", params.Name)
	}
	return &KeySigner{
		key:    wif.PrivKey,
		pubKey: wif.SerializePubKey(),
	}, nil
}

// PubKey returns the serialized public key matching the signatures.
func (s *KeySigner) PubKey() []byte {
	pk := make([]byte, len(s.pubKey))
	copy(pk, s.pubKey)
	return pk
}

func (s *KeySigner) SignPsbt(ctx context.Context, psbtHex string) (*inscription.SignResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := inscription.DecodePsbt(psbtHex)
	if err != nil {
		return nil, err
	}
	updater, err := psbt.NewUpdater(p)
	if err != nil {
		return nil, errors.Wrap(err, "psbt updater")
	}

	res := &inscription.SignResult{}
	tx := p.UnsignedTx
	for i := range p.Inputs {
		in := p.Inputs[i]
		if in.FinalScriptSig != nil || in.FinalScriptWitness != nil {
			continue
		}
		if in.RedeemScript != nil {
			sig, err := txscript.RawTxInSignature(tx, i, in.RedeemScript, txscript.SigHashAll, s.key)
			if err != nil {
				return nil, errors.Wrapf(err, "sign input %d", i)
			}
			res.Signatures = append(res.Signatures, hex.EncodeToString(sig))
			continue
		}

		if in.NonWitnessUtxo == nil {
			return nil, errors.Errorf("input %d has no previous transaction", i)
		}
		prevOut := tx.TxIn[i].PreviousOutPoint
		if int(prevOut.Index) >= len(in.NonWitnessUtxo.TxOut) {
			return nil, errors.Errorf("input %d spends missing output %s", i, prevOut)
		}
		pkScript := in.NonWitnessUtxo.TxOut[prevOut.Index].PkScript
		sig, err := txscript.RawTxInSignature(tx, i, pkScript, txscript.SigHashAll, s.key)
		if err != nil {
			return nil, errors.Wrapf(err, "sign input %d", i)
		}
		if _, err := updater.Sign(i, sig, s.pubKey, nil, nil); err != nil {
			return nil, errors.Wrapf(err, "add signature to input %d", i)
		}
	}

	if res.PsbtHex, err = inscription.EncodePsbt(p); err != nil {
		return nil, err
	}
	return res, nil
}
