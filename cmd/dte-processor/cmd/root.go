package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/facturatools/dte-processor/internal/render"
)

var (
	version = "1.0.0"

	// Global flags
	verbose        bool
	stylesheetPath string
)

var rootCmd = &cobra.Command{
	Use:   "dte-processor",
	Short: "Convert Chilean electronic tax documents (DTE XML) to PDF",
	Long: `dte-processor parses SII electronic tax documents and renders them as
printable PDFs carrying the mandatory verification barcode.

Examples:
  # Convert a single DTE
  dte-processor convert factura.xml

  # Convert a whole folder, skipping failing documents
  dte-processor convert-folder ./input -o ./output/pdf

  # Build an XLSX listing of a folder
  dte-processor export ./input -o listado.xlsx

  # Inspect the canonical model
  dte-processor info factura.xml`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&stylesheetPath, "stylesheet", "", "Path to a YAML stylesheet overriding the bundled style (env: DTE_STYLESHEET)")

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	if stylesheetPath == "" {
		stylesheetPath = os.Getenv("DTE_STYLESHEET")
	}
}

// loadStylesheet resolves the effective stylesheet for rendering commands.
func loadStylesheet() (render.Stylesheet, error) {
	if stylesheetPath == "" {
		return render.DefaultStylesheet(), nil
	}
	return render.LoadStylesheet(stylesheetPath)
}

func printVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Printf(format, args...)
	}
}
