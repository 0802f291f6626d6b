package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"codeanomaly/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the detector over HTTP",
	Long: `Train the detector (or load a saved profile), then expose it over HTTP:
POST /analyze scores a code sample, GET /status reports readiness, and
GET /healthz is a liveness probe.`,
	Run: func(cmd *cobra.Command, args []string) {
		log := newLogger(cmd)

		ctx := context.Background()
		d, err := buildDetector(ctx, cmd, log)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error building detector: %v\n", err)
			os.Exit(1)
		}

		srv := server.New(d, log)
		if err := srv.ListenAndServe(serveAddr); err != nil {
			fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", ":5000", "Address to listen on")
	rootCmd.AddCommand(serveCmd)
}
