package client

import (
	"context"

	"github.com/inscription-c/pins/constants"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type ListUnspentReq struct {
	Min       int `validate:"gte=0"`
	Max       int `validate:"gtefield=Min"`
	Addresses []string
}

type ListUnspentResp struct {
	OutPoint
	Address       string `json:"address"`
	ScriptPubKey  string `json:"scriptPubKey"`
	Amount        Amount `json:"amount"`
	Confirmations int64  `json:"confirmations"`
	Spendable     bool   `json:"spendable"`
}

func (c *Client) ListUnspent(ctx context.Context, req *ListUnspentReq) ([]ListUnspentResp, error) {
	if req.Max == 0 {
		req.Max = 9999999
	}
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	resp := make([]ListUnspentResp, 0)
	if err := c.SendRequest(ctx, "listunspent", &resp, req.Min, req.Max, req.Addresses); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetRawTransactionHex returns the serialized transaction txid. Transactions
// are immutable, so answers are kept in an LRU cache.
func (c *Client) GetRawTransactionHex(ctx context.Context, txid string) (string, error) {
	if v, ok := c.rawTxs.Lookup(txid); ok {
		return v.(string), nil
	}
	raw := ""
	if err := c.SendRequest(ctx, "getrawtransaction", &raw, txid, 0); err != nil {
		return "", err
	}
	if raw == "" {
		return "", errors.Errorf("getrawtransaction %s: empty reply", txid)
	}
	c.rawTxs.Add(txid, raw)
	return raw, nil
}

func (c *Client) SendRawTransaction(ctx context.Context, rawTx string) (txHash string, err error) {
	if err := c.SendRequest(ctx, "sendrawtransaction", &txHash, rawTx); err != nil {
		return "", err
	}
	return txHash, nil
}

// EstimateFee returns the node's fee estimate for confirmation within
// nBlock blocks, in base units per byte. A node without an estimate yields
// constants.DefaultFeeRate.
func (c *Client) EstimateFee(ctx context.Context, nBlock int64) (float64, error) {
	perKb := new(float64)
	if err := c.SendRequest(ctx, "estimatefee", perKb, nBlock); err != nil {
		return 0, err
	}
	if *perKb <= 0 {
		return constants.DefaultFeeRate, nil
	}
	rate, _ := decimal.NewFromFloat(*perKb).
		Mul(decimal.NewFromInt(constants.OneBtc)).
		Div(decimal.NewFromInt(1000)).
		Float64()
	return rate, nil
}
