package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/facturatools/dte-processor/internal/render"
	"github.com/facturatools/dte-processor/internal/server"
)

var (
	serveAddress string
	serveToken   string
	serveDebug   bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP conversion service",
	Long: `Serve starts an HTTP server exposing the conversion pipeline:

  GET  /healthz   liveness probe
  POST /render    DTE XML body -> application/pdf
  POST /parse     DTE XML body -> canonical model JSON

When a token is configured, /render and /parse require
"Authorization: Bearer <token>".`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveAddress, "address", "a", ":8080", "Listen address")
	serveCmd.Flags().StringVar(&serveToken, "token", "", "Bearer token required on API routes (env: API_TOKEN)")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Enable request logging")
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveToken == "" {
		serveToken = os.Getenv("API_TOKEN")
	}

	style, err := loadStylesheet()
	if err != nil {
		return err
	}

	srv := server.NewServer(&server.Config{
		Address:      serveAddress,
		Token:        serveToken,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		Debug:        serveDebug,
	}, render.NewRenderer(style))

	fmt.Printf("Listening on %s\n", serveAddress)
	return srv.Run()
}
