package dao

import (
	"github.com/inscription-c/pins/constants"
	"github.com/inscription-c/pins/inscription/tables"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ErrJobNotFound is returned for an unknown job id.
var ErrJobNotFound = errors.New("job not found")

// SaveJob stores job and its transactions in one database transaction,
// numbering the transactions in the given order.
func (d *DB) SaveJob(job *tables.InscribeJob, txs []*tables.ChainTx) error {
	return d.Transaction(func(tx *DB) error {
		job.TxCount = uint32(len(txs))
		if job.Status == "" {
			job.Status = constants.JobStatusBuilt
		}
		if err := tx.Create(job).Error; err != nil {
			return err
		}
		for i, v := range txs {
			v.JobId = job.Id
			v.Seq = uint32(i)
		}
		if len(txs) == 0 {
			return nil
		}
		return tx.Create(txs).Error
	})
}

// GetJob returns the job with id or ErrJobNotFound.
func (d *DB) GetJob(id uint64) (*tables.InscribeJob, error) {
	job := &tables.InscribeJob{}
	err := d.Where("id = ?", id).First(job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrapf(ErrJobNotFound, "id %d", id)
	}
	if err != nil {
		return nil, err
	}
	return job, nil
}

// JobTxs returns the transactions of a job in broadcast order.
func (d *DB) JobTxs(jobId uint64) (list []*tables.ChainTx, err error) {
	err = d.Where("job_id = ?", jobId).Order("seq asc").Find(&list).Error
	return
}

// MarkBroadcast flags the transaction at seq of a job as sent.
func (d *DB) MarkBroadcast(jobId uint64, seq uint32) error {
	res := d.Model(&tables.ChainTx{}).
		Where("job_id = ? AND seq = ?", jobId, seq).
		Update("broadcast", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.Errorf("job %d has no tx %d", jobId, seq)
	}
	return nil
}

// SetJobStatus updates the status of a job.
func (d *DB) SetJobStatus(jobId uint64, status constants.JobStatus) error {
	return d.Model(&tables.InscribeJob{}).
		Where("id = ?", jobId).
		Update("status", status).Error
}
