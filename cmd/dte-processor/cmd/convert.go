package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/facturatools/dte-processor/internal/format"
	"github.com/facturatools/dte-processor/internal/parser"
	"github.com/facturatools/dte-processor/internal/render"
)

var convertOut string

var convertCmd = &cobra.Command{
	Use:   "convert <xml>",
	Short: "Convert a DTE XML file to PDF",
	Long: `Convert parses a single DTE XML file and writes the rendered PDF.

Without -o the output lands next to the working directory under
"output/pdf" with the canonical name
"<fecha> <tipo> <razón social> <folio>.pdf".`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

var convertFolderCmd = &cobra.Command{
	Use:   "convert-folder <dir>",
	Short: "Convert every DTE XML in a folder to PDF",
	Long: `Convert-folder renders all *.xml files in a directory. Conversions run
concurrently, bounded by the number of CPUs. A document that fails to
parse or render is reported and skipped; the batch continues.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvertFolder,
}

func init() {
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(convertFolderCmd)

	convertCmd.Flags().StringVarP(&convertOut, "out", "o", "", "Output file or directory")
	convertFolderCmd.Flags().StringVarP(&convertOut, "out", "o", "", "Output directory")
}

func runConvert(cmd *cobra.Command, args []string) error {
	style, err := loadStylesheet()
	if err != nil {
		return err
	}
	renderer := render.NewRenderer(style)

	outPath, err := convertOne(renderer, args[0], convertOut)
	if err != nil {
		return err
	}
	fmt.Printf("PDF generado: %s\n", outPath)
	return nil
}

func runConvertFolder(cmd *cobra.Command, args []string) error {
	style, err := loadStylesheet()
	if err != nil {
		return err
	}
	renderer := render.NewRenderer(style)

	if convertOut != "" {
		if err := os.MkdirAll(convertOut, 0o755); err != nil {
			return err
		}
	}

	files, err := filepath.Glob(filepath.Join(args[0], "*.xml"))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no XML files in %s", args[0])
	}
	printVerbose("Found %d XML files\n", len(files))

	// The pipeline itself is synchronous and share-nothing; concurrency
	// is bounded here, at the caller, to available CPU capacity.
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())

	var mu sync.Mutex
	converted, skipped := 0, 0

	for _, file := range files {
		g.Go(func() error {
			outPath, err := convertOne(renderer, file, convertOut)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				skipped++
				fmt.Fprintf(os.Stderr, "skipping %s: %v\n", filepath.Base(file), err)
				return nil
			}
			converted++
			printVerbose("PDF generado: %s\n", outPath)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Printf("%d converted, %d skipped\n", converted, skipped)
	return nil
}

func convertOne(renderer *render.Renderer, xmlPath, out string) (string, error) {
	doc, err := parser.ParseFile(xmlPath)
	if err != nil {
		return "", err
	}

	pdf, err := renderer.Render(doc)
	if err != nil {
		return "", err
	}

	name := format.OutputFileName(doc, "pdf")
	var outPath string
	switch {
	case out == "":
		outPath = filepath.Join("output", "pdf", name)
	case strings.HasSuffix(out, string(os.PathSeparator)) || isDir(out):
		outPath = filepath.Join(out, name)
	default:
		outPath = out
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(outPath, pdf, 0o644); err != nil {
		return "", err
	}
	return outPath, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
