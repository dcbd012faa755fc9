package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"reportdesk/internal/apiclient"
	"reportdesk/pkg/httpclient"

	"github.com/spf13/cobra"
)

func newAPIClient() (*apiclient.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return apiclient.New(httpclient.New(cfg.Client.BaseURL, cfg.Client.Timeout)), nil
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Inspect reports through a running API",
}

var reportsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List reports, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		reports, err := client.ListReports(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd, reports)
	},
}

var reportsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one report and its active tasks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid report id %q", args[0])
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}
		report, err := client.GetReport(cmd.Context(), id)
		if err != nil {
			return err
		}
		tasks, err := client.ListReportTasks(cmd.Context(), id)
		if err != nil {
			return err
		}
		return printJSON(cmd, map[string]interface{}{"report": report, "tasks": tasks})
	},
}

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Inspect tasks through a running API",
}

var tasksDueCmd = &cobra.Command{
	Use:   "due",
	Short: "List active scheduled tasks with their next run",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		tasks, err := client.DueTasks(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd, tasks)
	},
}

func init() {
	reportsCmd.AddCommand(reportsListCmd)
	reportsCmd.AddCommand(reportsGetCmd)
	tasksCmd.AddCommand(tasksDueCmd)
}
