package cli

import (
	"fmt"
	"os"

	"github.com/inscription-c/pins/config"
	"github.com/inscription-c/pins/constants"
	"github.com/inscription-c/pins/inscription"
	"github.com/inscription-c/pins/inscription/tables"
	"github.com/inscription-c/pins/internal/signal"
	"github.com/spf13/cobra"
)

// PrepareCmd splits the funds of an address into equal funding outputs.
var PrepareCmd = &cobra.Command{
	Use:   "prepare",
	Short: "split funds into equal outputs, one per later inscription",
	Run: func(cmd *cobra.Command, args []string) {
		if err := prepare(); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		signal.SimulateInterrupt()
		<-signal.InterruptHandlersDone
	},
}

func init() {
	addNodeFlags(PrepareCmd)
	addSignerFlags(PrepareCmd)
	addFundingFlags(PrepareCmd)
	addDBFlags(PrepareCmd)
	PrepareCmd.Flags().IntVarP(&config.Amount, "amount", "n", 0, "number of outputs")
	PrepareCmd.Flags().Int64VarP(&config.Cost, "cost", "", 0, "value of each output")
	mustMarkRequired(PrepareCmd, "amount", "cost", "from")
}

func prepare() error {
	setup("prepare")
	ctx := signal.ShutdownContext()

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
	s, _, err := newSigner(ctx)
	if err != nil {
		return err
	}

	raw, err := newInscriber().PrepareMultipleFundingOutputs(ctx, &inscription.PrepareParams{
		Signer:  s,
		Utxos:   utxos,
		FeeRate: rate,
		Amount:  config.Amount,
		Cost:    config.Cost,
		Address: config.From,
	})
	if err != nil {
		return err
	}

	txs, err := chainTxs([]string{raw}, constants.TxKindPrepare, constants.TxKindPrepare)
	if err != nil {
		return err
	}
	job := &tables.InscribeJob{
		Kind:        constants.TxKindPrepare,
		Destination: config.From,
		FromAddress: config.From,
		FeeRate:     rate,
	}
	return finish(ctx, cli, job, txs)
}
