package cli

import (
	"fmt"
	"os"

	"github.com/inscription-c/pins/config"
	"github.com/inscription-c/pins/constants"
	"github.com/inscription-c/pins/inscription"
	"github.com/inscription-c/pins/inscription/log"
	"github.com/inscription-c/pins/inscription/tables"
	"github.com/inscription-c/pins/internal/signal"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// InscribeCmd builds, signs and optionally broadcasts an inscription chain.
var InscribeCmd = &cobra.Command{
	Use:   "inscribe",
	Short: "inscribe a file through a chain of p2sh commit transactions",
	Run: func(cmd *cobra.Command, args []string) {
		if err := inscribe(); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		signal.SimulateInterrupt()
		<-signal.InterruptHandlersDone
	},
}

func init() {
	addNodeFlags(InscribeCmd)
	addSignerFlags(InscribeCmd)
	addFundingFlags(InscribeCmd)
	addDBFlags(InscribeCmd)
	InscribeCmd.Flags().StringVarP(&config.FilePath, "filepath", "f", "", "inscription file path")
	InscribeCmd.Flags().StringVarP(&config.ContentType, "contenttype", "", "", "content type, derived from the file extension when empty")
	InscribeCmd.Flags().Int64VarP(&config.ProtocolFee, "protocol_fee", "", constants.DefaultProtocolFee, "protocol fee paid by the terminal transaction, none when zero")
	InscribeCmd.Flags().StringVarP(&config.ProtocolFeeAddress, "protocol_fee_addr", "", constants.DefaultProtocolFeeAddress, "protocol fee address")
	InscribeCmd.Flags().StringVarP(&config.Destination, "dest", "", "", "send the inscription to <DESTINATION> address")
	mustMarkRequired(InscribeCmd, "filepath", "dest", "from")
}

func inscribe() error {
	setup("inscribe")
	ctx := signal.ShutdownContext()

	contentType := config.ContentType
	if contentType == "" {
		ct, err := inscription.ContentTypeForPath(config.FilePath)
		if err != nil {
			return err
		}
		contentType = ct.String()
	}
	data, err := os.ReadFile(config.FilePath)
	if err != nil {
		return errors.Wrap(err, "read inscription file")
	}

	cli, err := newClient()
	if err != nil {
		return err
	}
	rate, err := feeRate(ctx, cli)
	if err != nil {
		return err
	}
	utxos, err := cli.FundingUtxos(ctx, []string{config.From}, config.Exclude)
	if err != nil {
		return err
	}
	log.Log.Infof("found %d funding utxos", len(utxos))

	s, pubKey, err := newSigner(ctx)
	if err != nil {
		return err
	}

	raws, err := newInscriber().Inscribe(ctx, &inscription.InscribeParams{
		Destination: config.Destination,
		ContentType: contentType,
		Data:        data,
		FeeRate:     rate,
		Utxos:       utxos,
		PublicKey:   pubKey,
		Signer:      s,
		FromAddress: config.From,
	})
	if err != nil {
		return err
	}

	txs, err := chainTxs(raws, constants.TxKindCommit, constants.TxKindTerminal)
	if err != nil {
		return err
	}
	job := &tables.InscribeJob{
		Kind:        constants.TxKindCommit,
		Destination: config.Destination,
		FromAddress: config.From,
		ContentType: contentType,
		ContentSize: uint64(len(data)),
		FeeRate:     rate,
	}
	return finish(ctx, cli, job, txs)
}
