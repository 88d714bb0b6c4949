package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Describe the dataset columns and duplicated rows",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := settings()
		ds, err := openDataset(c, inputPath(c, args))
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		ds.Describe().WriteTable(out)
		fmt.Fprintf(out, "Analyzed columns: %s\n", strings.Join(ds.Columns(), ", "))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().StringVar(&sheetName, "sheet", "", "XLSX: sheet name (default first sheet)")
}
