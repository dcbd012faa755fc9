package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"reportdesk/internal/jobs"
	"reportdesk/pkg/utils"

	"github.com/spf13/cobra"
)

var (
	sampleRequired []string
	sampleEnvelope bool
)

var jobCmd = &cobra.Command{
	Use:   "job",
	Short: "Run standalone jobs",
}

var sampleJobCmd = &cobra.Command{
	Use:   "sample [params-json]",
	Short: "Run the simulated sample job",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var params string
		if len(args) > 0 {
			params = args[0]
		}

		sample := &jobs.Sample{
			Steps:    cfg.Job.Steps,
			Interval: cfg.Job.StepInterval,
			Now:      utils.TimeNowUTC,
			Out:      cmd.OutOrStdout(),
			Required: sampleRequired,
			Envelope: sampleEnvelope,
		}
		if err := sample.Run(ctx, params); err != nil {
			_ = jobs.WriteError(cmd.ErrOrStderr(), err, utils.TimeNowUTC())
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	sampleJobCmd.Flags().StringSliceVar(&sampleRequired, "require", nil, "parameter keys that must be present")
	sampleJobCmd.Flags().BoolVar(&sampleEnvelope, "envelope", false, "wrap the result with a timestamp and format version")
	jobCmd.AddCommand(sampleJobCmd)
}
