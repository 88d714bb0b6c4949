package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/noshow-cli/internal/analysis"
	"github.com/KaramelBytes/noshow-cli/internal/pipeline"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <attribute|appointmentday> [file]",
	Short: "Generate the charts of a single attribute",
	Long: `Generate the count chart and the Show/NoShow comparison of one attribute,
or the weekday pies when the name is "appointmentday".
Attributes: hypertension, diabetes, alcoholism, handicap, sms (or SMS_received).`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		c := settings()
		var spec analysis.AttributeSpec
		weekday := strings.EqualFold(name, pipeline.WeekdayTitle)
		if !weekday {
			s, ok := analysis.Lookup(name)
			if !ok {
				return fmt.Errorf("unknown attribute %q (use one of: %s)", name, attributeNames())
			}
			spec = s
		}
		ds, err := openDataset(c, inputPath(c, args[1:]))
		if err != nil {
			return err
		}
		r, err := newRenderer(c)
		if err != nil {
			return err
		}
		var res *pipeline.Result
		if weekday {
			res, err = pipeline.RunWeekday(ds, r, pipelineOptions(c))
		} else {
			res, err = pipeline.RunAttribute(ds, r, pipelineOptions(c), spec)
		}
		if err != nil {
			return err
		}
		res.WriteSummary(cmd.OutOrStdout())
		for _, a := range res.Artifacts {
			color.Green("✓ Wrote %s", a)
		}
		return nil
	},
}

func attributeNames() string {
	names := make([]string, 0, len(analysis.Attributes)+1)
	for _, a := range analysis.Attributes {
		names = append(names, strings.ToLower(a.Title))
	}
	names = append(names, strings.ToLower(pipeline.WeekdayTitle))
	return strings.Join(names, ", ")
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVar(&sheetName, "sheet", "", "XLSX: sheet name (default first sheet)")
}
