package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"codeanomaly/detector"
	"codeanomaly/embedding"
	"codeanomaly/types"
)

// newLogger builds the console logger shared by all commands
func newLogger(cmd *cobra.Command) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

// buildProvider picks the embedding provider from the command flags
func buildProvider(cmd *cobra.Command) (embedding.Provider, error) {
	if offline, _ := cmd.Flags().GetBool("offline"); offline {
		return embedding.NewHashProvider(embedding.DefaultOfflineDimension), nil
	}

	apiKey, _ := cmd.Flags().GetString("api-key")
	if apiKey == "" {
		apiKey = embedding.GetAPIKey()
		if apiKey == "" {
			return nil, fmt.Errorf("OpenAI API key not provided. Use --api-key, set OPENAI_API_KEY, or use --offline mode")
		}
	}
	return embedding.NewOpenAIClient(apiKey), nil
}

// buildPolicy picks the scoring policy from the command flags
func buildPolicy(cmd *cobra.Command) (detector.Policy, error) {
	if path, _ := cmd.Flags().GetString("policy"); path != "" {
		return detector.LoadPolicy(path)
	}
	if balanced, _ := cmd.Flags().GetBool("balanced"); balanced {
		return detector.BalancedPolicy(), nil
	}
	return detector.DefaultPolicy(), nil
}

// buildDetector assembles a ready detector: provider + policy, then either
// a saved profile or a training pass over the normal-code directory
func buildDetector(ctx context.Context, cmd *cobra.Command, log zerolog.Logger) (*detector.Detector, error) {
	provider, err := buildProvider(cmd)
	if err != nil {
		return nil, err
	}

	policy, err := buildPolicy(cmd)
	if err != nil {
		return nil, err
	}

	d := detector.New(provider, policy, log)

	if profilePath, _ := cmd.Flags().GetString("profile"); profilePath != "" {
		profile, err := detector.LoadProfile(profilePath)
		if err != nil {
			return nil, err
		}
		if err := d.SetProfile(profile); err != nil {
			return nil, err
		}
		log.Info().Str("profile", profilePath).Int("samples", profile.SampleCount).Msg("baseline profile loaded")
		return d, nil
	}

	normalDir, _ := cmd.Flags().GetString("normal-dir")
	log.Info().Str("dir", normalDir).Msg("training on normal code files")
	if err := d.TrainFromDirectory(ctx, normalDir); err != nil {
		return nil, err
	}

	return d, nil
}

// printResultsTable prints one row per analyzed file
func printResultsTable(results []types.FileResult, title string) {
	if len(results) == 0 {
		fmt.Println("No results to display.")
		return
	}

	line := "======================================================================"
	fmt.Println()
	fmt.Println(line)
	fmt.Printf("%35s\n", title)
	fmt.Println(line)
	fmt.Printf("%-35s %-15s %-15s\n", "File", "Anomaly Score", "Classification")
	fmt.Println("----------------------------------------------------------------------")

	for _, r := range results {
		fmt.Printf("%-35s %-15.3f %-15s\n", r.File, r.Result.Score, r.Result.Classification)
	}

	fmt.Println(line)
	fmt.Println()
}

// printDetailedMetrics prints the per-file structural counters and scores
func printDetailedMetrics(results []types.FileResult) {
	for _, r := range results {
		fmt.Printf("\nFile: %s\n", r.File)
		fmt.Printf("  - Functions: %d\n", r.Result.Metrics.Functions)
		fmt.Printf("  - Loops: %d\n", r.Result.Metrics.Loops)
		fmt.Printf("  - Conditionals: %d\n", r.Result.Metrics.Conditionals)
		fmt.Printf("  - Max Nesting Depth: %d\n", r.Result.Metrics.MaxDepth)
		fmt.Printf("  - Semantic Score: %.3f\n", r.Result.SemanticScore)
		fmt.Printf("  - Structural Score: %.3f\n", r.Result.StructuralScore)
		fmt.Printf("  - Anomaly Score: %.3f\n", r.Result.Score)
		fmt.Printf("  - Classification: %s\n", r.Result.Classification)
	}
	fmt.Println()
}

// printSummary prints aggregate counts and average metrics for a batch
func printSummary(results []types.FileResult, policy detector.Policy) {
	if len(results) == 0 {
		return
	}

	var normal, anomalous int
	var functions, loops, conditionals, depth float64
	for _, r := range results {
		if r.Result.Classification == types.ClassAnomalous {
			anomalous++
		} else {
			normal++
		}
		functions += float64(r.Result.Metrics.Functions)
		loops += float64(r.Result.Metrics.Loops)
		conditionals += float64(r.Result.Metrics.Conditionals)
		depth += float64(r.Result.Metrics.MaxDepth)
	}
	n := float64(len(results))

	fmt.Printf("SUMMARY: %d Normal | %d Anomalous\n", normal, anomalous)
	fmt.Printf("Threshold: >= %.1f is ANOMALOUS\n", policy.Threshold)
	fmt.Println("\nAVERAGE METRICS ACROSS ALL FILES:")
	fmt.Printf("  - Average Functions: %.2f\n", functions/n)
	fmt.Printf("  - Average Loops: %.2f\n", loops/n)
	fmt.Printf("  - Average Conditionals: %.2f\n", conditionals/n)
	fmt.Printf("  - Average Max Depth: %.2f\n", depth/n)
}
