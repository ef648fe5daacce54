package cli

import (
	"fmt"
	"os"

	"github.com/inscription-c/pins/config"
	"github.com/inscription-c/pins/constants"
	"github.com/inscription-c/pins/internal/signal"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// BroadcastCmd resumes sending a persisted job.
var BroadcastCmd = &cobra.Command{
	Use:   "broadcast",
	Short: "broadcast the unsent transactions of a saved job in order",
	Run: func(cmd *cobra.Command, args []string) {
		if err := broadcastJob(); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		signal.SimulateInterrupt()
		<-signal.InterruptHandlersDone
	},
}

func init() {
	addNodeFlags(BroadcastCmd)
	addDBFlags(BroadcastCmd)
	BroadcastCmd.Flags().Uint64VarP(&config.JobId, "job", "j", 0, "job id")
	mustMarkRequired(BroadcastCmd, "job", "mysql_addr")
}

func broadcastJob() error {
	setup("broadcast")
	ctx := signal.ShutdownContext()

	db, err := openDB()
	if err != nil {
		return err
	}
	job, err := db.GetJob(config.JobId)
	if err != nil {
		return err
	}
	if job.Status == constants.JobStatusDone {
		return errors.Errorf("job %d already broadcast", job.Id)
	}
	txs, err := db.JobTxs(job.Id)
	if err != nil {
		return err
	}
	cli, err := newClient()
	if err != nil {
		return err
	}
	return broadcast(ctx, cli, db, job.Id, txs)
}
