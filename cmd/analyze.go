package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"codeanomaly/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Score a single Python file against the normal baseline",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		filename := args[0]
		log := newLogger(cmd)

		data, err := os.ReadFile(filename)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading file %s: %v\n", filename, err)
			os.Exit(1)
		}

		ctx := context.Background()
		d, err := buildDetector(ctx, cmd, log)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error building detector: %v\n", err)
			os.Exit(1)
		}

		result, err := d.Score(ctx, string(data))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error analyzing %s: %v\n", filename, err)
			os.Exit(1)
		}

		printDetailedMetrics([]types.FileResult{{File: filename, Result: result}})
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
