package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"codeanomaly/detector"
)

var trainOutput string

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train a baseline profile and save it to disk",
	Long: `Compute the baseline profile (mean embedding and mean structural metrics)
over the normal-code directory and save it as TOML. Later runs can pass the
file via --profile to skip the training pass.`,
	Run: func(cmd *cobra.Command, args []string) {
		log := newLogger(cmd)

		provider, err := buildProvider(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		policy, err := buildPolicy(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		d := detector.New(provider, policy, log)

		normalDir, _ := cmd.Flags().GetString("normal-dir")
		ctx := context.Background()
		if err := d.TrainFromDirectory(ctx, normalDir); err != nil {
			fmt.Fprintf(os.Stderr, "Error training on %s: %v\n", normalDir, err)
			os.Exit(1)
		}

		if err := detector.SaveProfile(d.Profile(), trainOutput); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving profile: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Baseline profile saved to %s\n", trainOutput)
	},
}

func init() {
	trainCmd.Flags().StringVarP(&trainOutput, "output", "O", "baseline.toml", "Output path for the baseline profile")
	rootCmd.AddCommand(trainCmd)
}
