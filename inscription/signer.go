package inscription

import (
	"bytes"
	"context"
	"encoding/hex"

	"github.com/btcsuite/btcd/btcutil/psbt"
	"github.com/pkg/errors"
)

// SignResult is what a signing service hands back for an unsigned PSBT: the
// signed (possibly partially finalized) PSBT and one raw signature per input
// that needs a custom unlock script, in input order.
type SignResult struct {
	PsbtHex    string   `json:"psbt_hex"`
	Signatures []string `json:"signatures"`
}

// Signer signs hex encoded PSBTs. It is the only blocking collaborator of the
// chain builder.
type Signer interface {
	SignPsbt(ctx context.Context, psbtHex string) (*SignResult, error)
}

// SignerFunc adapts a plain function to Signer.
type SignerFunc func(ctx context.Context, psbtHex string) (*SignResult, error)

func (f SignerFunc) SignPsbt(ctx context.Context, psbtHex string) (*SignResult, error) {
	return f(ctx, psbtHex)
}

// EncodePsbt serializes p as hex.
func EncodePsbt(p *psbt.Packet) (string, error) {
	buf := bytes.NewBuffer(nil)
	if err := p.Serialize(buf); err != nil {
		return "", errors.Wrap(err, "serialize psbt")
	}
	return hex.EncodeToString(buf.Bytes()), nil
}

// DecodePsbt parses a hex encoded PSBT.
func DecodePsbt(psbtHex string) (*psbt.Packet, error) {
	raw, err := hex.DecodeString(psbtHex)
	if err != nil {
		return nil, errors.Wrap(err, "decode psbt hex")
	}
	p, err := psbt.NewFromRawBytes(bytes.NewReader(raw), false)
	if err != nil {
		return nil, errors.Wrap(err, "parse psbt")
	}
	return p, nil
}

type unlockKind uint8

const (
	// unlockStandard leaves the input to the PSBT finalizer.
	unlockStandard unlockKind = iota
	// unlockReveal spends a P2SH commitment with the revealed chunks.
	unlockReveal
)

// unlockStrategy is how one input of a chain transaction gets its final
// signature script.
type unlockStrategy struct {
	kind  unlockKind
	group []Chunk
	lock  []byte
}

// strategyFor picks the strategy of input idx: input 0 reveals the pending
// commitment of link, every other input is standard.
func strategyFor(idx int, link ChainLink) unlockStrategy {
	if idx == 0 && link.Pending != nil {
		return unlockStrategy{kind: unlockReveal, group: link.Group, lock: link.LockScript}
	}
	return unlockStrategy{kind: unlockStandard}
}

// finalizePacket finalizes every input of p. Custom signatures are consumed
// in order by the reveal inputs.
func finalizePacket(p *psbt.Packet, link ChainLink, signatures []string) error {
	next := 0
	for i := range p.Inputs {
		in := &p.Inputs[i]
		s := strategyFor(i, link)
		switch s.kind {
		case unlockReveal:
			if next >= len(signatures) {
				return errors.Errorf("missing signature for input %d", i)
			}
			sig, err := hex.DecodeString(signatures[next])
			if err != nil {
				return errors.Wrapf(err, "signature for input %d", i)
			}
			next++
			script, err := UnlockScript(s.group, sig, s.lock)
			if err != nil {
				return errors.Wrapf(err, "unlock script for input %d", i)
			}
			final := psbt.NewPsbtInput(in.NonWitnessUtxo, nil)
			final.FinalScriptSig = script
			p.Inputs[i] = *final
		default:
			if in.FinalScriptSig != nil || in.FinalScriptWitness != nil {
				continue
			}
			if err := psbt.Finalize(p, i); err != nil {
				return errors.Wrapf(err, "finalize input %d", i)
			}
		}
	}
	return nil
}
