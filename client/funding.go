package client

import (
	"context"
	"sort"
	"strings"

	"github.com/inscription-c/pins/inscription"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// maxRawTxFetch bounds concurrent getrawtransaction calls.
const maxRawTxFetch = 8

// FundingUtxos lists the spendable outputs of addresses not named in
// exclude, largest first, with the raw transaction of each attached.
func (c *Client) FundingUtxos(ctx context.Context, addresses []string, exclude []string) ([]inscription.FundingUTXO, error) {
	skip := make(map[OutPoint]struct{}, len(exclude))
	for _, v := range exclude {
		op := StringToOutpoint(v)
		if op == nil {
			return nil, errors.Errorf("invalid outpoint %q", v)
		}
		skip[*op] = struct{}{}
	}

	unspent, err := c.ListUnspent(ctx, &ListUnspentReq{Min: 1, Addresses: addresses})
	if err != nil {
		return nil, err
	}
	utxos := make([]inscription.FundingUTXO, 0, len(unspent))
	for _, u := range unspent {
		op := OutPoint{Txid: strings.ToLower(u.Txid), Vout: u.Vout}
		if _, ok := skip[op]; ok {
			continue
		}
		utxos = append(utxos, inscription.FundingUTXO{
			TxId:  op.Txid,
			Vout:  op.Vout,
			Value: u.Amount.Sat(),
		})
	}
	sort.SliceStable(utxos, func(i, j int) bool {
		return utxos[i].Value > utxos[j].Value
	})

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxRawTxFetch)
	for i := range utxos {
		i := i
		g.Go(func() error {
			raw, err := c.GetRawTransactionHex(gctx, utxos[i].TxId)
			if err != nil {
				return err
			}
			utxos[i].Hex = raw
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return utxos, nil
}
