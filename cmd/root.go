package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "codeanomaly",
	Short: "codeanomaly scores Python code for anomalousness against a normal baseline",
	Long: `codeanomaly detects anomalous Python code by combining two signals: the
semantic distance between a sample's embedding and the mean embedding of a
reference corpus of normal code, and the dispersion of the sample's
structural shape (functions, loops, conditionals, nesting depth) extracted
with Tree-sitter. The weighted, scaled combination is compared against a
threshold to classify each sample as NORMAL or ANOMALOUS.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringP("normal-dir", "n", "normal_code", "Directory of normal code used as the training baseline")
	rootCmd.PersistentFlags().StringP("api-key", "k", "", "OpenAI API key (can also be set via OPENAI_API_KEY env var)")
	rootCmd.PersistentFlags().BoolP("offline", "o", false, "Use the deterministic offline embedding provider instead of the OpenAI API")
	rootCmd.PersistentFlags().String("policy", "", "Path to a TOML scoring policy file")
	rootCmd.PersistentFlags().Bool("balanced", false, "Use the balanced scoring preset (0.6/0.4 weights, threshold 2.5)")
	rootCmd.PersistentFlags().String("profile", "", "Path to a saved baseline profile (skips the training pass)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")
}
