package constants

const (
	DefaultDBName = "pins"
	DefaultDBUser = "root"
	DefaultDBPass = ""

	// MaxRawTxCache is the number of raw funding transactions kept by the node client.
	MaxRawTxCache = 1_024
)

// JobStatus is the lifecycle of a persisted inscribe job.
type JobStatus string

const (
	JobStatusBuilt        JobStatus = "built"
	JobStatusBroadcasting JobStatus = "broadcasting"
	JobStatusDone         JobStatus = "done"
	JobStatusFailed       JobStatus = "failed"
)

// TxKind tells what role a persisted transaction plays in its job.
type TxKind string

const (
	TxKindCommit   TxKind = "commit"
	TxKindTerminal TxKind = "terminal"
	TxKindPrepare  TxKind = "prepare"
)
