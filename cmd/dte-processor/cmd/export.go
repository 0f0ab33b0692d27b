package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/facturatools/dte-processor/internal/export"
	"github.com/facturatools/dte-processor/internal/parser"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export <dir>",
	Short: "Extract an XLSX listing from a folder of DTE XML files",
	Long: `Export parses every *.xml file in a directory and writes one spreadsheet
row per document (issuer RUT, date, folio, net amount, type, name, items
as JSON). Failing documents are reported and skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "output/listado_xml.xlsx", "Output XLSX path")
}

func runExport(cmd *cobra.Command, args []string) error {
	files, err := filepath.Glob(filepath.Join(args[0], "*.xml"))
	if err != nil {
		return err
	}

	var entries []export.Entry
	for _, file := range files {
		doc, err := parser.ParseFile(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "skipping %s: %v\n", filepath.Base(file), err)
			continue
		}
		entries = append(entries, export.Entry{File: filepath.Base(file), Document: doc})
	}
	if len(entries) == 0 {
		return fmt.Errorf("no parseable XML files in %s", args[0])
	}

	if err := os.MkdirAll(filepath.Dir(exportOut), 0o755); err != nil {
		return err
	}
	f, err := os.Create(exportOut)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := export.WriteListing(entries, f); err != nil {
		return err
	}
	fmt.Printf("Excel generado: %s (%d documentos)\n", exportOut, len(entries))
	return nil
}
