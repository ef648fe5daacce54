package tables

import (
	"time"

	"github.com/inscription-c/pins/constants"
)

// InscribeJob is one inscribe or prepare run whose transactions wait to be
// broadcast in order.
// ContentType holds at most constants.MaxContentTypeLen bytes.
type InscribeJob struct {
	Id          uint64              `gorm:"column:id;primary_key;AUTO_INCREMENT;NOT NULL"`
	Kind        constants.TxKind    `gorm:"column:kind;type:varchar(16);NOT NULL"`
	Destination string              `gorm:"column:destination;type:varchar(128);default:'';NOT NULL"`
	FromAddress string              `gorm:"column:from_address;type:varchar(128);default:'';NOT NULL"`
	ContentType string              `gorm:"column:content_type;type:varchar(255);default:'';NOT NULL"`
	ContentSize uint64              `gorm:"column:content_size;type:bigint unsigned;default:0;NOT NULL"`
	FeeRate     float64             `gorm:"column:fee_rate;type:double;default:0;NOT NULL"`
	TxCount     uint32              `gorm:"column:tx_count;type:int unsigned;default:0;NOT NULL"`
	Status      constants.JobStatus `gorm:"column:status;type:varchar(16);index:idx_status;NOT NULL"`
	CreatedAt   time.Time           `gorm:"column:created_at;type:timestamp;default:CURRENT_TIMESTAMP;NOT NULL"`
	UpdatedAt   time.Time           `gorm:"column:updated_at;type:timestamp;default:CURRENT_TIMESTAMP;NOT NULL"`
}

func (j *InscribeJob) TableName() string {
	return "inscribe_jobs"
}
