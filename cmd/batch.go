package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var batchDetails bool

var batchCmd = &cobra.Command{
	Use:   "batch [dir]",
	Short: "Score every Python file in a directory",
	Long: `Train on the normal-code directory (or load a saved profile), then score
each Python file in the given directory and print a results table. Files
that cannot be read or scored are skipped.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir := args[0]
		log := newLogger(cmd)

		ctx := context.Background()
		d, err := buildDetector(ctx, cmd, log)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error building detector: %v\n", err)
			os.Exit(1)
		}

		results, err := d.EvaluateDirectory(ctx, dir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error evaluating %s: %v\n", dir, err)
			os.Exit(1)
		}

		printResultsTable(results, "CODE ANOMALY DETECTION RESULTS")
		if batchDetails {
			printDetailedMetrics(results)
		}
		printSummary(results, d.Policy())
	},
}

func init() {
	batchCmd.Flags().BoolVarP(&batchDetails, "details", "d", false, "Print per-file structural metrics")
	rootCmd.AddCommand(batchCmd)
}
