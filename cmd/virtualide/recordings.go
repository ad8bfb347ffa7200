package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/virtualide/internal/cli"
	"github.com/spf13/cobra"
)

var recordingsCmd = &cobra.Command{
	Use:   "recordings",
	Short: "Inspect stored recordings",
}

var recordingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored recording IDs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stores, err := cli.OpenStores(cmd.Context(), cfg.Store, logger)
		if err != nil {
			return err
		}
		defer stores.Close()

		ids, err := stores.Recordings.List(cmd.Context())
		if err != nil {
			return err
		}
		for _, id := range ids {
			fmt.Fprintln(cmd.OutOrStdout(), id)
		}
		return nil
	},
}

var recordingsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a stored recording, or one frame of it, as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stores, err := cli.OpenStores(cmd.Context(), cfg.Store, logger)
		if err != nil {
			return err
		}
		defer stores.Close()

		rec, err := stores.Recordings.Load(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		var payload any = rec
		if step, _ := cmd.Flags().GetInt("step"); step >= 0 {
			frame, ok := rec.Frame(step)
			if !ok {
				return fmt.Errorf("recording %s has no frame %d", rec.ID, step)
			}
			payload = frame
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	},
}

var recordingsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored recording",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stores, err := cli.OpenStores(cmd.Context(), cfg.Store, logger)
		if err != nil {
			return err
		}
		defer stores.Close()
		return stores.Recordings.Delete(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(recordingsCmd)
	recordingsCmd.AddCommand(recordingsListCmd, recordingsShowCmd, recordingsDeleteCmd)
	recordingsShowCmd.Flags().Int("step", -1, "Print only the frame for this step")
}
