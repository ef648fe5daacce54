package config

var (
	// Username node rpc server user name
	Username string
	// Password node rpc server password
	Password string
	// Testnet use the bellscoin test network
	Testnet bool
	// RpcConnect node rpc server url
	RpcConnect string
	// RPCCert node rpc server cert path
	RPCCert string
	// TLSSkipVerify skip verify server tls
	TLSSkipVerify bool
	// LogLevel log level of every subsystem
	LogLevel string

	// FilePath inscription filepath
	FilePath string
	// ContentType overrides the content type derived from FilePath
	ContentType string
	// Destination address receiving the inscription
	Destination string
	// From funding address, also receives change
	From string
	// PubKey hex public key checked by the lock scripts, fetched from the signer when empty
	PubKey string
	// FeeRate fee per byte, estimated by the node when zero
	FeeRate float64
	// Exclude funding outpoints to leave untouched
	Exclude []string
	// DryRun build and sign, but don't persist or broadcast
	DryRun bool
	// Broadcast send the transactions right after building them
	Broadcast bool

	// SignerUrl remote signer server url
	SignerUrl string
	// SignerToken bearer token sent to the remote signer
	SignerToken string
	// WIF local signing key, used when SignerUrl is empty
	WIF string

	// ProtocolFee value paid to ProtocolFeeAddress by the terminal transaction, none when zero
	ProtocolFee int64
	// ProtocolFeeAddress receives the protocol fee
	ProtocolFeeAddress string

	// Amount number of equal outputs built by prepare
	Amount int
	// Cost value of each output built by prepare
	Cost int64

	// JobId persisted job to broadcast
	JobId uint64

	// MysqlAddr job database addr, jobs are not persisted when empty
	MysqlAddr string
	// MysqlUser job database user
	MysqlUser string
	// MysqlPassword job database password
	MysqlPassword string
	// MysqlDBName job database name
	MysqlDBName string
)
