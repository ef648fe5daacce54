package cli

import (
	"context"
	"encoding/hex"
	"fmt"
	"path/filepath"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/inscription-c/pins/client"
	"github.com/inscription-c/pins/config"
	"github.com/inscription-c/pins/constants"
	"github.com/inscription-c/pins/inscription"
	"github.com/inscription-c/pins/inscription/dao"
	"github.com/inscription-c/pins/inscription/log"
	"github.com/inscription-c/pins/inscription/tables"
	"github.com/inscription-c/pins/internal/prompt"
	"github.com/inscription-c/pins/internal/util"
	"github.com/inscription-c/pins/signer"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// feeEstimateBlocks is the confirmation target used when no fee rate is given.
const feeEstimateBlocks = 6

func addNodeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&config.Username, "user", "u", "", "node rpc server username")
	cmd.Flags().StringVarP(&config.Password, "password", "P", "", "node rpc server password")
	cmd.Flags().BoolVarP(&config.Testnet, "testnet", "t", false, "bellscoin testnet")
	cmd.Flags().StringVarP(&config.RpcConnect, "rpcconnect", "s", "", "the URL of the node RPC server (default http://localhost:19918, testnet: http://localhost:29918)")
	cmd.Flags().StringVarP(&config.RPCCert, "rpccert", "", "", "node rpc server certificate")
	cmd.Flags().BoolVarP(&config.TLSSkipVerify, "skipverify", "", false, "skip node rpc server tls verification")
	cmd.Flags().StringVarP(&config.LogLevel, "loglevel", "", "info", "log level")
}

func addSignerFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&config.SignerUrl, "signer", "", "", "URL of a pins signer server")
	cmd.Flags().StringVarP(&config.SignerToken, "signer_token", "", "", "bearer token of the signer server")
	cmd.Flags().StringVarP(&config.WIF, "wif", "", "", "local signing key, prompted for when neither --signer nor --wif is given")
	cmd.Flags().StringVarP(&config.PubKey, "pubkey", "", "", "hex public key of the signing key, fetched from the signer when empty")
}

func addFundingFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&config.From, "from", "", "", "funding address, also receives change")
	cmd.Flags().Float64VarP(&config.FeeRate, "feerate", "", 0, "fee per byte, estimated by the node when zero")
	cmd.Flags().StringSliceVarP(&config.Exclude, "exclude", "", nil, "funding outpoints txid:vout to leave untouched")
	cmd.Flags().BoolVarP(&config.DryRun, "dryrun", "", false, "build and sign, but don't persist or broadcast")
	cmd.Flags().BoolVarP(&config.Broadcast, "broadcast", "", false, "broadcast the transactions once built")
}

func addDBFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&config.MysqlAddr, "mysql_addr", "d", "", "job database addr, jobs are not persisted when empty")
	cmd.Flags().StringVarP(&config.MysqlUser, "mysql_user", "", constants.DefaultDBUser, "job database user")
	cmd.Flags().StringVarP(&config.MysqlPassword, "mysql_pass", "", constants.DefaultDBPass, "job database password")
	cmd.Flags().StringVarP(&config.MysqlDBName, "db", "", constants.DefaultDBName, "job database name")
}

func mustMarkRequired(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		if err := cmd.MarkFlagRequired(name); err != nil {
			panic(err)
		}
	}
}

// setup selects the network and starts logging for command name.
func setup(name string) {
	util.UseTestNet(config.Testnet)
	if config.RpcConnect == "" {
		config.RpcConnect = fmt.Sprintf("http://localhost:%s", util.ActiveNet.RPCClientPort)
	}
	logFile := btcutil.AppDataDir(filepath.Join(constants.AppName, name, "logs", name+".log"), false)
	log.InitLogRotator(logFile)
	log.SetLogLevels(config.LogLevel)
}

func newClient() (*client.Client, error) {
	opts := []client.ClientOption{
		client.WithClientHost(config.RpcConnect),
		client.WithClientUser(config.Username),
		client.WithClientPassword(config.Password),
	}
	if config.RPCCert != "" {
		opts = append(opts, client.WithClientCert(config.RPCCert, config.TLSSkipVerify))
	}
	return client.NewClient(opts...)
}

func newInscriber() *inscription.Inscriber {
	return inscription.NewInscriber(
		inscription.WithNet(util.ActiveNet.Params),
		inscription.WithProtocolFee(config.ProtocolFeeAddress, config.ProtocolFee),
	)
}

// newSigner returns the configured signer and the public key it signs for.
func newSigner(ctx context.Context) (inscription.Signer, []byte, error) {
	var pubKey []byte
	if config.PubKey != "" {
		var err error
		if pubKey, err = hex.DecodeString(config.PubKey); err != nil {
			return nil, nil, errors.Wrap(err, "decode pubkey")
		}
	}

	if config.SignerUrl != "" {
		remote := signer.NewRemoteSigner(config.SignerUrl, signer.WithToken(config.SignerToken))
		if pubKey == nil {
			var err error
			if pubKey, err = remote.PubKey(ctx); err != nil {
				return nil, nil, err
			}
		}
		return remote, pubKey, nil
	}

	wif := config.WIF
	if wif == "" {
		var err error
		if wif, err = prompt.Secret("Signing key (WIF): "); err != nil {
			return nil, nil, err
		}
	}
	local, err := signer.NewKeySignerFromWIF(wif, util.ActiveNet.Params)
	if err != nil {
		return nil, nil, err
	}
	if pubKey == nil {
		pubKey = local.PubKey()
	}
	return local, pubKey, nil
}

func feeRate(ctx context.Context, cli *client.Client) (float64, error) {
	if config.FeeRate > 0 {
		return config.FeeRate, nil
	}
	rate, err := cli.EstimateFee(ctx, feeEstimateBlocks)
	if err != nil {
		return 0, errors.Wrap(err, "estimate fee")
	}
	log.Log.Infof("estimated fee rate %.3f per byte", rate)
	return rate, nil
}

// openDB connects to the job database, or returns nil when none is configured.
func openDB() (*dao.DB, error) {
	if config.MysqlAddr == "" {
		return nil, nil
	}
	return dao.NewDB(
		dao.WithAddr(config.MysqlAddr),
		dao.WithUser(config.MysqlUser),
		dao.WithPassword(config.MysqlPassword),
		dao.WithDBName(config.MysqlDBName),
		dao.WithAutoMigrateTables(tables.Tables...),
	)
}

// chainTxs wraps raw transactions as job rows. The last one gets lastKind,
// every other one kind.
func chainTxs(raws []string, kind, lastKind constants.TxKind) ([]*tables.ChainTx, error) {
	list := make([]*tables.ChainTx, 0, len(raws))
	for i, raw := range raws {
		row := &tables.ChainTx{Seq: uint32(i), Kind: kind, RawTx: raw}
		if i == len(raws)-1 {
			row.Kind = lastKind
		}
		tx, err := row.LoadTx()
		if err != nil {
			return nil, errors.Wrapf(err, "tx %d", i)
		}
		row.TxId = tx.TxHash().String()
		list = append(list, row)
	}
	return list, nil
}

// finish persists the job when a database is configured and broadcasts it
// when asked to.
func finish(ctx context.Context, cli *client.Client, job *tables.InscribeJob, txs []*tables.ChainTx) error {
	for i, tx := range txs {
		log.Log.Infof("tx %d (%s): %s", i, tx.Kind, tx.TxId)
	}
	if config.DryRun {
		for _, tx := range txs {
			fmt.Println(tx.RawTx)
		}
		return nil
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	if db != nil {
		if err := db.SaveJob(job, txs); err != nil {
			return errors.Wrap(err, "save job")
		}
		log.Log.Infof("saved job %d", job.Id)
		fmt.Println("job:", job.Id)
	}
	if !config.Broadcast {
		return nil
	}
	return broadcast(ctx, cli, db, job.Id, txs)
}

// broadcast sends the unsent txs in order, recording each in db when it is
// not nil, and stops at the first failure.
func broadcast(ctx context.Context, cli *client.Client, db *dao.DB, jobId uint64, txs []*tables.ChainTx) error {
	if db != nil {
		if err := db.SetJobStatus(jobId, constants.JobStatusBroadcasting); err != nil {
			return err
		}
	}
	for _, tx := range txs {
		if tx.Broadcast {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		hash, err := cli.SendRawTransaction(ctx, tx.RawTx)
		if err != nil {
			if db != nil {
				if serr := db.SetJobStatus(jobId, constants.JobStatusFailed); serr != nil {
					log.Log.Errorf("set job %d status: %v", jobId, serr)
				}
			}
			return errors.Wrapf(err, "broadcast tx %d (%s)", tx.Seq, tx.TxId)
		}
		log.Log.Infof("broadcast tx %d: %s", tx.Seq, hash)
		fmt.Println(hash)
		if db != nil {
			if err := db.MarkBroadcast(jobId, tx.Seq); err != nil {
				return err
			}
		}
	}
	if db != nil {
		return db.SetJobStatus(jobId, constants.JobStatusDone)
	}
	return nil
}
