package tables

import (
	"bytes"
	"encoding/hex"
	"time"

	"github.com/btcsuite/btcd/wire"
	"github.com/inscription-c/pins/constants"
)

// ChainTx is one signed transaction of a job. Seq is its position in the
// broadcast order.
type ChainTx struct {
	Id        uint64           `gorm:"column:id;primary_key;AUTO_INCREMENT;NOT NULL"`
	JobId     uint64           `gorm:"column:job_id;type:bigint unsigned;uniqueIndex:uk_job_seq;NOT NULL"`
	Seq       uint32           `gorm:"column:seq;type:int unsigned;uniqueIndex:uk_job_seq;NOT NULL"`
	Kind      constants.TxKind `gorm:"column:kind;type:varchar(16);NOT NULL"`
	TxId      string           `gorm:"column:tx_id;type:varchar(64);index:idx_tx_id;NOT NULL"`
	RawTx     string           `gorm:"column:raw_tx;type:mediumtext;NOT NULL"`
	Broadcast bool             `gorm:"column:broadcast;default:false;NOT NULL"`
	CreatedAt time.Time        `gorm:"column:created_at;type:timestamp;default:CURRENT_TIMESTAMP;NOT NULL"`
	UpdatedAt time.Time        `gorm:"column:updated_at;type:timestamp;default:CURRENT_TIMESTAMP;NOT NULL"`
}

func (c *ChainTx) TableName() string {
	return "chain_txs"
}

// LoadTx decodes RawTx.
func (c *ChainTx) LoadTx() (*wire.MsgTx, error) {
	raw, err := hex.DecodeString(c.RawTx)
	if err != nil {
		return nil, err
	}
	tx := wire.NewMsgTx(wire.TxVersion)
	if err := tx.Deserialize(bytes.NewReader(raw)); err != nil {
		return nil, err
	}
	return tx, nil
}
