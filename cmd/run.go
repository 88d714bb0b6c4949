package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/noshow-cli/internal/pipeline"
)

var runSkipInfo bool

var runPipelineCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Generate every cohort comparison chart",
	Long: `Generate, in order: the Alcoholism count and comparison charts, the
appointment weekday pies, then Diabetes, Handicap, Hypertension and SMS.
The input defaults to input_path from the config.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := settings()
		ds, err := openDataset(c, inputPath(c, args))
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if !runSkipInfo {
			ds.Describe().WriteTable(out)
		}
		r, err := newRenderer(c)
		if err != nil {
			return err
		}
		res, err := pipeline.Run(ds, r, pipelineOptions(c))
		if err != nil {
			if res != nil && len(res.Artifacts) > 0 {
				warn.Fprintf(cmd.ErrOrStderr(), "⚠ Warning: %d chart(s) written before the failure\n", len(res.Artifacts))
			}
			return err
		}
		res.WriteSummary(out)
		color.Green("✓ Wrote %d charts to %s (run %s)", len(res.Artifacts), r.Dir(), res.RunID[:8])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runPipelineCmd)
	runPipelineCmd.Flags().BoolVar(&runSkipInfo, "skip-info", false, "do not print the dataset info table")
	runPipelineCmd.Flags().StringVar(&sheetName, "sheet", "", "XLSX: sheet name (default first sheet)")
}
