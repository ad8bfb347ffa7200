package main

import (
	"github.com/aretw0/virtualide/internal/cli"
	"github.com/aretw0/virtualide/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var replayOpts cli.ReplayOptions

var replayCmd = &cobra.Command{
	Use:   "replay <script>",
	Short: "Replay a script and print the resulting IDE state",
	Long: `Replays a YAML or JSON script on a fresh virtual IDE and prints a frame:
the final one by default, or the one after --step actions.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		replayOpts.ScriptPath = args[0]
		out := cmd.OutOrStdout()
		noColor, _ := cmd.Flags().GetBool("no-color")
		replayOpts.Color = !noColor && replayOpts.Format == cli.FormatText && cli.IsTerminal(out)
		replayOpts.Width = cli.TerminalWidth(out)

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		newIDE := cli.NewIDEFactory(logger, nil)

		if watch, _ := cmd.Flags().GetBool("watch"); watch {
			if replayOpts.Color {
				tui.PrintBanner(out, rootVersion())
			}
			return cli.HandleExecutionError(cli.RunWatch(ctx, replayOpts, newIDE, out, logger))
		}

		stores, err := cli.OpenStores(ctx, cfg.Store, logger)
		if err != nil {
			return err
		}
		defer stores.Close()

		_, err = cli.Replay(ctx, replayOpts, newIDE, stores.Recordings, out, logger)
		return cli.HandleExecutionError(err)
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().StringVarP(&replayOpts.Format, "format", "f", cli.FormatText, "Output format: text, json or mermaid")
	replayCmd.Flags().IntVar(&replayOpts.Step, "step", -1, "Print the frame after this many actions (default: final frame)")
	replayCmd.Flags().BoolVar(&replayOpts.Record, "record", false, "Store the recording under the script name")
	replayCmd.Flags().BoolVar(&replayOpts.ContinueOnError, "continue", false, "Skip rejected actions instead of stopping")
	replayCmd.Flags().Bool("watch", false, "Replay again whenever the script changes")
	replayCmd.Flags().Bool("no-color", false, "Print plain markdown")
}
