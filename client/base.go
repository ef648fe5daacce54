package client

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/gogf/gf/v2/util/gconv"
	"github.com/inscription-c/pins/constants"
	"github.com/shopspring/decimal"
)

var outpointRegexp = regexp.MustCompile(`^[a-f0-9]{64}:\d+$`)

type Response struct {
	Result interface{}       `json:"result"`
	Error  *btcjson.RPCError `json:"error"`
	ID     *interface{}      `json:"id"`
}

// Amount is a coin amount as the node reports it.
type Amount float64

// Sat converts a to base units without float rounding.
func (a Amount) Sat() int64 {
	return decimal.NewFromFloat(float64(a)).
		Mul(decimal.NewFromInt(constants.OneBtc)).
		Round(0).IntPart()
}

type OutPoint struct {
	Txid string `json:"txid"`
	Vout uint32 `json:"vout"`
}

func (o OutPoint) String() string {
	return fmt.Sprintf("%s:%d", o.Txid, o.Vout)
}

// StringToOutpoint parses txid:vout, returning nil when s is malformed.
func StringToOutpoint(s string) *OutPoint {
	s = strings.ToLower(strings.TrimSpace(s))
	if !outpointRegexp.MatchString(s) {
		return nil
	}
	parts := strings.Split(s, ":")
	return &OutPoint{
		Txid: parts[0],
		Vout: gconv.Uint32(parts[1]),
	}
}
